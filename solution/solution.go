// Package solution holds a partial or complete Max-Min diversity selection
// together with its incrementally maintained objective.
//
// Contract (checked by tests after every mutation):
//
//	after Add, Remove, Swap or ApplySwap returns, Objective() equals the
//	minimum pairwise distance over the selected items when Size() ≥ 2,
//	and 0 otherwise.
//
// Costs:
//   - Add is O(|S|): adding an item can only lower the minimum, and the new
//     minimum is min(old, min distance from the item to the members).
//   - Remove is O(|S|²): the removed item may have defined the minimum, so
//     the objective is recomputed from scratch.
//   - ApplySwap is O(|S|) and trusts a caller-supplied objective; path
//     relinking uses it with values from its exact nearest-neighbour tables.
//
// Ownership: a *Solution is owned by one component at a time. Clone returns
// a deep, independent copy; archives and best-so-far snapshots must store
// clones, never the live working solution.
package solution

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/yourbasic/bit"

	"github.com/katalvlaran/mmdp/instance"
)

// NoExclusion tells DistanceTo to consider every member.
const NoExclusion = -1

var (
	// ErrOutOfRange indicates an item index outside [0, n).
	ErrOutOfRange = errors.New("solution: item out of range")

	// ErrAlreadySelected indicates Add of an item that is already a member.
	ErrAlreadySelected = errors.New("solution: item already selected")

	// ErrNotSelected indicates Remove of an item that is not a member.
	ErrNotSelected = errors.New("solution: item not selected")
)

// Solution is a selected subset S with cached objective of.
type Solution struct {
	inst    *instance.Instance
	in      *bit.Set // membership; also yields ascending order for display
	members []int    // iteration order for hot loops
	of      float64
}

// New returns an empty solution bound to inst.
func New(inst *instance.Instance) *Solution {
	return &Solution{
		inst:    inst,
		in:      new(bit.Set),
		members: make([]int, 0, inst.P()),
	}
}

// FromItems builds a solution by adding items in order.
func FromItems(inst *instance.Instance, items ...int) (*Solution, error) {
	s := New(inst)
	for _, u := range items {
		if err := s.Add(u); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Instance returns the shared instance.
func (s *Solution) Instance() *instance.Instance { return s.inst }

// Size returns |S|.
func (s *Solution) Size() int { return len(s.members) }

// Objective returns the cached Max-Min value.
func (s *Solution) Objective() float64 { return s.of }

// IsFeasible reports |S| == p.
func (s *Solution) IsFeasible() bool { return len(s.members) == s.inst.P() }

// Contains reports whether u is selected. Out-of-range u is never selected.
func (s *Solution) Contains(u int) bool {
	return u >= 0 && u < s.inst.N() && s.in.Contains(u)
}

// Members returns the members in iteration order. The slice is a view:
// do not modify it, and do not hold it across mutations.
func (s *Solution) Members() []int { return s.members }

// Items returns a fresh ascending copy of the selected items.
func (s *Solution) Items() []int {
	out := make([]int, 0, len(s.members))
	s.in.Visit(func(u int) (skip bool) {
		out = append(out, u)
		return false
	})

	return out
}

func (s *Solution) checkRange(u int) error {
	if u < 0 || u >= s.inst.N() {
		return fmt.Errorf("item %d (n=%d): %w", u, s.inst.N(), ErrOutOfRange)
	}

	return nil
}

// Add inserts u and updates the objective incrementally.
// Complexity: O(|S|).
func (s *Solution) Add(u int) error {
	if err := s.checkRange(u); err != nil {
		return err
	}
	if s.in.Contains(u) {
		return fmt.Errorf("item %d: %w", u, ErrAlreadySelected)
	}

	switch len(s.members) {
	case 0:
		s.of = 0
	case 1:
		s.of = s.inst.Dist(u, s.members[0])
	default:
		s.of = math.Min(s.of, s.DistanceTo(u, NoExclusion))
	}
	s.in.Add(u)
	s.members = append(s.members, u)

	return nil
}

// Remove erases u and recomputes the objective from scratch.
// Complexity: O(|S|²).
func (s *Solution) Remove(u int) error {
	if !s.Contains(u) {
		return fmt.Errorf("item %d: %w", u, ErrNotSelected)
	}
	s.erase(u)
	s.of = s.Evaluate()

	return nil
}

func (s *Solution) erase(u int) {
	s.in.Delete(u)
	if k := slices.Index(s.members, u); k >= 0 {
		s.members = slices.Delete(s.members, k, k+1)
	}
}

// Swap removes out and adds in.
func (s *Solution) Swap(out, in int) error {
	if err := s.checkRange(in); err != nil {
		return err
	}
	if s.Contains(in) {
		return fmt.Errorf("item %d: %w", in, ErrAlreadySelected)
	}
	if err := s.Remove(out); err != nil {
		return err
	}

	return s.Add(in)
}

// ApplySwap replaces out with in and sets the objective to of without
// recomputation. The caller guarantees that of is the exact objective of
// the resulting set.
// Complexity: O(|S|).
func (s *Solution) ApplySwap(out, in int, of float64) error {
	if !s.Contains(out) {
		return fmt.Errorf("item %d: %w", out, ErrNotSelected)
	}
	if err := s.checkRange(in); err != nil {
		return err
	}
	if s.in.Contains(in) {
		return fmt.Errorf("item %d: %w", in, ErrAlreadySelected)
	}
	s.erase(out)
	s.in.Add(in)
	s.members = append(s.members, in)
	s.of = of

	return nil
}

// DistanceTo returns the minimum distance from u to the members other than
// excluding, or +Inf when there is no such member. u itself may or may not
// be a member; pass excluding=u for members.
// Complexity: O(|S|).
func (s *Solution) DistanceTo(u, excluding int) float64 {
	var (
		row  = s.inst.Row(u)
		best = math.Inf(1)
	)
	for _, v := range s.members {
		if v == excluding {
			continue
		}
		if row[v] < best {
			best = row[v]
		}
	}

	return best
}

// Evaluate recomputes the objective from scratch without touching the cache.
// Complexity: O(|S|²).
func (s *Solution) Evaluate() float64 {
	return Evaluate(s.inst, s.members)
}

// Evaluate returns the minimum pairwise distance over items, or 0 when
// fewer than two items are given.
func Evaluate(inst *instance.Instance, items []int) float64 {
	if len(items) < 2 {
		return 0
	}
	var (
		best = math.Inf(1)
		i, j int
		row  []float64
	)
	for i = 0; i < len(items); i++ {
		row = inst.Row(items[i])
		for j = i + 1; j < len(items); j++ {
			if row[items[j]] < best {
				best = row[items[j]]
			}
		}
	}

	return best
}

// Intersection returns |S ∩ other.S|.
func (s *Solution) Intersection(other *Solution) int {
	return new(bit.Set).SetAnd(s.in, other.in).Size()
}

// Equal reports whether both solutions select the same items.
func (s *Solution) Equal(other *Solution) bool {
	return s.in.Equal(other.in)
}

// Clone returns a deep, independent copy sharing only the instance.
func (s *Solution) Clone() *Solution {
	members := make([]int, len(s.members), max(cap(s.members), s.inst.P()))
	copy(members, s.members)

	return &Solution{
		inst:    s.inst,
		in:      new(bit.Set).Set(s.in),
		members: members,
		of:      s.of,
	}
}

// String implements fmt.Stringer: ascending items and the objective.
func (s *Solution) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for k, u := range s.Items() {
		if k > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", u)
	}
	fmt.Fprintf(&sb, "} of=%g", s.of)

	return sb.String()
}
