package localsearch

import (
	"cmp"
	"math"
	"math/rand"
	"slices"

	"github.com/katalvlaran/mmdp/randutil"
	"github.com/katalvlaran/mmdp/solution"
)

// imlsEps is the tolerance for "equals the objective" and "strictly better".
const imlsEps = 1e-9

// IMLSOptions configures IMLS.
type IMLSOptions struct {
	// K is the number of smallest distances summed by the density score e(x).
	K int

	// Shuffle randomizes the order among critical items and among
	// candidates with equal e(x). When false, ties break by item index.
	Shuffle bool
}

// DefaultIMLSOptions returns K=3, no shuffling.
func DefaultIMLSOptions() IMLSOptions {
	return IMLSOptions{K: 3}
}

// IMLS runs tie-aware local search until no critical item admits an
// accepted swap, or for at most maxIter rounds when maxIter > 0.
//
// Per round:
//  1. critical items: members whose DistanceTo(i, i) equals the objective
//     (within 1e-9); if none match, members at the observed minimum;
//  2. critical items in ascending e(i), where e(x) is the sum of the K
//     smallest distances from x to the other members, the r-th divided by r;
//  3. for each critical i*, unselected candidates in descending e(j)
//     measured against S \ {i*}; the first tentative swap i*→j that raises
//     the objective, or keeps it and lowers the critical count, is kept.
//     Rejected swaps are reverted.
//
// Complexity: O(p²·(n−p)) per critical item examined.
func IMLS(sol *solution.Solution, maxIter int, rng *rand.Rand, opts IMLSOptions) bool {
	if opts.K <= 0 {
		opts.K = DefaultIMLSOptions().K
	}
	rng = randutil.OrDefault(rng)
	s := imlsState{sol: sol, k: opts.K, shuffle: opts.Shuffle, rng: rng}

	var (
		improved bool
		it       int
	)
	for it = 0; maxIter <= 0 || it < maxIter; it++ {
		if !s.round() {
			break
		}
		improved = true
	}

	return improved
}

type imlsState struct {
	sol     *solution.Solution
	k       int
	shuffle bool
	rng     *rand.Rand
	scratch []float64
}

type scored struct {
	e  float64
	id int
}

func (s *imlsState) round() bool {
	sol := s.sol
	if sol.Size() < 2 {
		return false
	}
	members := slices.Clone(sol.Members())
	critical := s.critical(members)
	if s.shuffle {
		randutil.ShuffleInts(critical, s.rng)
	}

	order := make([]scored, len(critical))
	for k, i := range critical {
		order[k] = scored{e: s.density(i, members, i), id: i}
	}
	s.sortScored(order, false)

	_, unselected := partition(sol)
	cands := make([]scored, len(unselected))
	for _, o := range order {
		iStar := o.id
		if s.shuffle {
			randutil.ShuffleInts(unselected, s.rng)
		}
		for k, j := range unselected {
			cands[k] = scored{e: s.density(j, members, iStar), id: j}
		}
		s.sortScored(cands, true)

		ofOld := sol.Objective()
		critOld := countCritical(sol)
		for _, c := range cands {
			mustSwap(sol, iStar, c.id)

			ofNew := sol.Objective()
			if ofNew > ofOld+imlsEps ||
				(math.Abs(ofNew-ofOld) <= imlsEps && countCritical(sol) < critOld) {
				return true
			}

			mustSwap(sol, c.id, iStar)
		}
	}

	return false
}

// critical returns the members tied at the objective.
func (s *imlsState) critical(members []int) []int {
	var (
		sol   = s.sol
		dStar = sol.Objective()
		di    = make([]float64, len(members))
		minDi = math.Inf(1)
		out   []int
	)
	for k, i := range members {
		di[k] = sol.DistanceTo(i, i)
		minDi = math.Min(minDi, di[k])
	}
	for k, i := range members {
		if math.Abs(di[k]-dStar) <= imlsEps {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		for k, i := range members {
			if math.Abs(di[k]-minDi) <= imlsEps {
				out = append(out, i)
			}
		}
	}
	if !s.shuffle {
		slices.Sort(out)
	}

	return out
}

// density is e(x): the K smallest distances from x to members other than x
// and exclude, the r-th divided by r. +Inf when no distance is left.
func (s *imlsState) density(x int, members []int, exclude int) float64 {
	row := s.sol.Instance().Row(x)
	s.scratch = s.scratch[:0]
	for _, v := range members {
		if v == x || v == exclude {
			continue
		}
		s.scratch = append(s.scratch, row[v])
	}
	if len(s.scratch) == 0 {
		return math.Inf(1)
	}
	slices.Sort(s.scratch)

	var (
		kk  = min(s.k, len(s.scratch))
		sum float64
	)
	for r := 0; r < kk; r++ {
		sum += s.scratch[r] / float64(r+1)
	}

	return sum
}

// sortScored orders by e (descending when desc). Without shuffling, ties
// break by id in the same direction; with shuffling the current (random)
// order of tied entries is kept.
func (s *imlsState) sortScored(v []scored, desc bool) {
	cmpFn := func(a, b scored) int {
		c := cmp.Compare(a.e, b.e)
		if c == 0 && !s.shuffle {
			c = cmp.Compare(a.id, b.id)
		}
		if desc {
			return -c
		}
		return c
	}
	slices.SortStableFunc(v, cmpFn)
}

// countCritical counts members whose nearest-member distance equals the objective.
func countCritical(sol *solution.Solution) int {
	if sol.Size() < 2 {
		return 0
	}
	var (
		dStar = sol.Objective()
		cnt   int
	)
	for _, i := range sol.Members() {
		if math.Abs(sol.DistanceTo(i, i)-dStar) <= imlsEps {
			cnt++
		}
	}

	return cnt
}
