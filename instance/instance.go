// Package instance defines the immutable Max-Min Diversity Problem input:
// n items, the target subset size p and the n×n distance matrix d.
//
// An *Instance is created once and then shared by pointer across every
// solution, heuristic and driver call; nothing in this module mutates it.
//
// Construction paths:
//   - New / FromRows validate the matrix (square, finite, zero diagonal,
//     non-negative, symmetric) and 2 ≤ p ≤ n.
//   - NewUnchecked skips validation for callers that already validated the
//     data; an inconsistent instance then only surfaces downstream (for
//     example as construct.ErrCandidateListExhausted).
//   - Read / ReadFile parse the benchmark file formats (see reader.go).
package instance

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/mmdp/matrix"
)

var (
	// ErrInvalidP is returned when p is outside [2, n].
	ErrInvalidP = errors.New("instance: p must satisfy 2 <= p <= n")

	// ErrTooSmall is returned when the ground set has fewer than two items.
	ErrTooSmall = errors.New("instance: n must be >= 2")
)

// Instance is an immutable MDP input.
type Instance struct {
	n    int
	p    int
	d    *matrix.Dense
	rows [][]float64 // row views into d for allocation-free hot-loop reads
	name string
}

// New validates d and p and returns the instance. d is retained, not copied;
// the caller must not modify it afterwards.
// Complexity: O(n²).
func New(d *matrix.Dense, p int) (*Instance, error) {
	if d == nil {
		return nil, matrix.ErrNilMatrix
	}
	if err := matrix.ValidateDistance(d, matrix.DefaultTol); err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}
	if d.Rows() < 2 {
		return nil, ErrTooSmall
	}
	if p < 2 || p > d.Rows() {
		return nil, fmt.Errorf("instance: p=%d n=%d: %w", p, d.Rows(), ErrInvalidP)
	}

	return NewUnchecked(d, p), nil
}

// FromRows copies rows into a dense matrix and validates it like New.
func FromRows(rows [][]float64, p int) (*Instance, error) {
	d, err := matrix.NewFromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}

	return New(d, p)
}

// NewUnchecked wraps d and p without any validation.
// d must be square; everything else is the caller's responsibility.
func NewUnchecked(d *matrix.Dense, p int) *Instance {
	n := d.Rows()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = d.Row(i)
	}

	return &Instance{n: n, p: p, d: d, rows: rows}
}

// N returns the ground-set size.
func (in *Instance) N() int { return in.n }

// P returns the target subset size.
func (in *Instance) P() int { return in.p }

// Name returns the source name (file base name for instances read from disk).
func (in *Instance) Name() string { return in.name }

// Dist returns d(i, j). No bounds checks beyond the slice's own.
func (in *Instance) Dist(i, j int) float64 { return in.rows[i][j] }

// Row returns the distances from i to every item. Read-only view.
func (in *Instance) Row(i int) []float64 { return in.rows[i] }

// Matrix returns the underlying distance matrix. Read-only by convention.
func (in *Instance) Matrix() *matrix.Dense { return in.d }

// WithP returns a new instance sharing the same matrix with a different p.
func (in *Instance) WithP(p int) (*Instance, error) {
	if p < 2 || p > in.n {
		return nil, fmt.Errorf("instance: p=%d n=%d: %w", p, in.n, ErrInvalidP)
	}
	cp := *in
	cp.p = p

	return &cp, nil
}

// String implements fmt.Stringer.
func (in *Instance) String() string {
	if in.name != "" {
		return fmt.Sprintf("%s(n=%d, p=%d)", in.name, in.n, in.p)
	}

	return fmt.Sprintf("Instance(n=%d, p=%d)", in.n, in.p)
}
