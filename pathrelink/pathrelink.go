package pathrelink

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/mmdp/solution"
)

var (
	// ErrNilSolution indicates a nil endpoint.
	ErrNilSolution = errors.New("pathrelink: nil solution")

	// ErrInstanceMismatch indicates endpoints bound to different instances.
	ErrInstanceMismatch = errors.New("pathrelink: solutions belong to different instances")

	// ErrSizeMismatch indicates endpoints of different cardinality.
	ErrSizeMismatch = errors.New("pathrelink: solutions differ in size")
)

// Move is one applied swap and the objective right after it.
type Move struct {
	Out, In   int
	Objective float64
}

// Stats describes one relinking walk.
type Stats struct {
	Distance int    // |I \ G|, the number of swaps separating the endpoints
	Steps    int    // swaps applied
	BestStep int    // step that produced the returned solution; 0 is the initiating one
	Backward bool   // set by Bidirectional when the guiding→initiating walk won
	Moves    []Move // applied swaps, in order
}

// Greedy relinks initiating towards guiding and returns a deep copy of the
// best solution along the path (the initiating solution included). Ties
// keep the earlier solution. Swap candidates are scanned in ascending
// (i, j) order and the first strict maximum wins.
//
// Neither argument is modified.
//
// Complexity: O(r·(p² + r·p + r²)) with r = |I \ G|.
func Greedy(initiating, guiding *solution.Solution) (*solution.Solution, Stats, error) {
	if err := checkEndpoints(initiating, guiding); err != nil {
		return nil, Stats{}, err
	}

	var (
		a    = difference(initiating, guiding)
		b    = difference(guiding, initiating)
		w    = newWalker(initiating.Clone())
		best = initiating.Clone()
		st   = Stats{Distance: len(a), Moves: make([]Move, 0, len(a))}
	)
	for len(a) > 0 && len(b) > 0 {
		ia, jb, of := w.bestSwap(a, b)
		if err := w.cur.ApplySwap(a[ia], b[jb], of); err != nil {
			return nil, st, fmt.Errorf("pathrelink: step %d: %w", st.Steps+1, err)
		}
		st.Steps++
		st.Moves = append(st.Moves, Move{Out: a[ia], In: b[jb], Objective: of})
		a = slices.Delete(a, ia, ia+1)
		b = slices.Delete(b, jb, jb+1)

		if of > best.Objective() {
			best = w.cur.Clone()
			st.BestStep = st.Steps
		}
	}

	return best, st, nil
}

// Bidirectional relinks in both directions and returns the better result;
// the forward walk (a towards b) wins only when strictly better.
func Bidirectional(a, b *solution.Solution) (*solution.Solution, Stats, error) {
	fwd, fst, err := Greedy(a, b)
	if err != nil {
		return nil, Stats{}, err
	}
	bwd, bst, err := Greedy(b, a)
	if err != nil {
		return nil, Stats{}, err
	}
	if fwd.Objective() > bwd.Objective() {
		return fwd, fst, nil
	}
	bst.Backward = true

	return bwd, bst, nil
}

func checkEndpoints(initiating, guiding *solution.Solution) error {
	switch {
	case initiating == nil || guiding == nil:
		return ErrNilSolution
	case initiating.Instance() != guiding.Instance():
		return ErrInstanceMismatch
	case initiating.Size() != guiding.Size():
		return fmt.Errorf("pathrelink: %d vs %d items: %w", initiating.Size(), guiding.Size(), ErrSizeMismatch)
	}

	return nil
}

// difference returns x \ y in ascending order.
func difference(x, y *solution.Solution) []int {
	items := x.Items()
	out := items[:0]
	for _, v := range items {
		if !y.Contains(v) {
			out = append(out, v)
		}
	}

	return out
}

// walker owns the working solution and the per-step distance tables.
type walker struct {
	cur *solution.Solution

	// Inside S, indexed by item: nearest and second-nearest member distance,
	// and the member giving the nearest one.
	nn1, nn2 []float64
	nnArg    []int

	// Per position in A: objective of S without A[k].
	ofWithout []float64

	// Per position in B: nearest and second-nearest distance to S, and the
	// member giving the nearest one.
	b1, b2 []float64
	bArg   []int
}

func newWalker(cur *solution.Solution) *walker {
	n := cur.Instance().N()

	return &walker{
		cur:   cur,
		nn1:   make([]float64, n),
		nn2:   make([]float64, n),
		nnArg: make([]int, n),
	}
}

// bestSwap returns the positions in a and b of the best swap and the
// objective it yields.
func (w *walker) bestSwap(a, b []int) (ia, jb int, of float64) {
	w.nearestInside()
	short := w.cur.Size()-1 < 2
	w.objectiveWithout(a, short)
	w.nearestTo(b)

	var (
		base, dj, cand float64
		i              int
	)
	of = math.Inf(-1)
	for ka := range a {
		i = a[ka]
		base = w.ofWithout[ka]
		for kb := range b {
			dj = w.b1[kb]
			if w.bArg[kb] == i {
				dj = w.b2[kb]
			}
			// With one member left the new pair defines the objective alone.
			cand = dj
			if !short {
				cand = math.Min(base, dj)
			}
			if cand > of {
				ia, jb, of = ka, kb, cand
			}
		}
	}

	return ia, jb, of
}

// nearestInside fills nn1, nn2, nnArg for the members of S.
// Complexity: O(p²).
func (w *walker) nearestInside() {
	var (
		inst    = w.cur.Instance()
		members = w.cur.Members()
		u, v    int
		d       float64
	)
	for _, u = range members {
		w.nn1[u], w.nn2[u], w.nnArg[u] = math.Inf(1), math.Inf(1), -1
	}
	for x := 0; x < len(members); x++ {
		u = members[x]
		row := inst.Row(u)
		for y := x + 1; y < len(members); y++ {
			v = members[y]
			d = row[v]
			w.push(u, v, d)
			w.push(v, u, d)
		}
	}
}

func (w *walker) push(u, v int, d float64) {
	switch {
	case d < w.nn1[u]:
		w.nn2[u] = w.nn1[u]
		w.nn1[u], w.nnArg[u] = d, v
	case d < w.nn2[u]:
		w.nn2[u] = d
	}
}

// objectiveWithout fills ofWithout for every i ∈ a; 0 when fewer than two
// members would remain.
// Complexity: O(|A|·p).
func (w *walker) objectiveWithout(a []int, short bool) {
	w.ofWithout = slices.Grow(w.ofWithout[:0], len(a))[:len(a)]
	members := w.cur.Members()
	for k, i := range a {
		if short {
			w.ofWithout[k] = 0
			continue
		}
		m := math.Inf(1)
		for _, s := range members {
			if s == i {
				continue
			}
			if w.nnArg[s] == i {
				m = math.Min(m, w.nn2[s])
			} else {
				m = math.Min(m, w.nn1[s])
			}
		}
		w.ofWithout[k] = m
	}
}

// nearestTo fills b1, b2, bArg for every j ∈ b.
// Complexity: O(|B|·p).
func (w *walker) nearestTo(b []int) {
	n := len(b)
	w.b1 = slices.Grow(w.b1[:0], n)[:n]
	w.b2 = slices.Grow(w.b2[:0], n)[:n]
	w.bArg = slices.Grow(w.bArg[:0], n)[:n]

	members := w.cur.Members()
	for k, j := range b {
		row := w.cur.Instance().Row(j)
		b1, b2, arg := math.Inf(1), math.Inf(1), -1
		for _, s := range members {
			switch d := row[s]; {
			case d < b1:
				b2 = b1
				b1, arg = d, s
			case d < b2:
				b2 = d
			}
		}
		w.b1[k], w.b2[k], w.bArg[k] = b1, b2, arg
	}
}
