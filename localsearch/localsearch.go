package localsearch

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/katalvlaran/mmdp/randutil"
	"github.com/katalvlaran/mmdp/solution"
)

const (
	// DefaultFirstImprovementIters bounds FirstImprovement rounds when maxIter ≤ 0.
	DefaultFirstImprovementIters = 200

	// DefaultBestImprovementIters bounds BestImprovement rounds when maxIter ≤ 0.
	DefaultBestImprovementIters = 50
)

// ErrUnknownMethod is returned by ParseMethod for an unrecognized name.
var ErrUnknownMethod = errors.New("localsearch: unknown method")

// mustSwap applies a swap whose preconditions the caller has already proven.
func mustSwap(sol *solution.Solution, out, in int) {
	if err := sol.Swap(out, in); err != nil {
		panic(fmt.Sprintf("localsearch: swap %d->%d: %v", out, in, err))
	}
}

// partition splits 0..n-1 into selected and unselected items.
func partition(sol *solution.Solution) (selected, unselected []int) {
	n := sol.Instance().N()
	selected = make([]int, 0, sol.Size())
	unselected = make([]int, 0, n-sol.Size())
	for v := 0; v < n; v++ {
		if sol.Contains(v) {
			selected = append(selected, v)
		} else {
			unselected = append(unselected, v)
		}
	}

	return selected, unselected
}

// FirstImprovement runs up to maxIter rounds (DefaultFirstImprovementIters
// when maxIter ≤ 0). Each round visits selected items and, for each, the
// unselected items, both in random order, and applies the first swap with
// DistanceTo(u, s) > DistanceTo(s, s). The search stops at the first round
// without a swap.
//
// Complexity: O(p·(n−p)·p) per round.
func FirstImprovement(sol *solution.Solution, maxIter int, rng *rand.Rand) bool {
	if maxIter <= 0 {
		maxIter = DefaultFirstImprovementIters
	}
	rng = randutil.OrDefault(rng)

	var (
		improved bool
		it       int
	)
	for it = 0; it < maxIter; it++ {
		if !firstImprovementRound(sol, rng) {
			break
		}
		improved = true
	}

	return improved
}

func firstImprovementRound(sol *solution.Solution, rng *rand.Rand) bool {
	selected, unselected := partition(sol)
	randutil.ShuffleInts(selected, rng)
	randutil.ShuffleInts(unselected, rng)

	var ds, du float64
	for _, s := range selected {
		ds = sol.DistanceTo(s, s)
		for _, u := range unselected {
			du = sol.DistanceTo(u, s)
			if du > ds {
				mustSwap(sol, s, u)
				return true
			}
		}
	}

	return false
}

// BestImprovement runs up to maxIter rounds (DefaultBestImprovementIters when
// maxIter ≤ 0). Each round picks the selected item sel with the smallest
// DistanceTo(sel, sel) and the unselected item with the largest positive
// DistanceTo(u, sel), and swaps them iff the latter strictly exceeds the
// former. The global objective is not re-evaluated before accepting.
//
// Complexity: O(n·p) per round plus O(p²) per applied swap.
func BestImprovement(sol *solution.Solution, maxIter int, rng *rand.Rand) bool {
	if maxIter <= 0 {
		maxIter = DefaultBestImprovementIters
	}

	var (
		improved bool
		it       int
	)
	for it = 0; it < maxIter; it++ {
		sel, selScore, unsel, unselScore := selectInterchange(sol)
		if sel < 0 || unsel < 0 || !(selScore < unselScore) {
			break
		}
		mustSwap(sol, sel, unsel)
		improved = true
	}

	return improved
}

// selectInterchange returns the worst member and the best non-member
// measured against the solution without that member.
func selectInterchange(sol *solution.Solution) (sel int, selScore float64, unsel int, unselScore float64) {
	sel, unsel = -1, -1
	selScore = math.Inf(1) // a lone member (+Inf) is never chosen
	for _, v := range sol.Members() {
		if d := sol.DistanceTo(v, v); d < selScore {
			sel, selScore = v, d
		}
	}

	n := sol.Instance().N()
	for v := 0; v < n; v++ {
		if sol.Contains(v) {
			continue
		}
		if d := sol.DistanceTo(v, sel); d > unselScore {
			unsel, unselScore = v, d
		}
	}

	return sel, selScore, unsel, unselScore
}

// Improver mutates sol in place and reports whether any swap was applied.
type Improver interface {
	Improve(sol *solution.Solution, maxIter int, rng *rand.Rand) bool
}

// Method is the closed set of local search policies.
type Method int

const (
	MethodFirstImprovement Method = iota
	MethodBestImprovement
	MethodIMLS
)

var _ Improver = MethodFirstImprovement

// Improve dispatches to the selected policy. IMLS runs with DefaultIMLSOptions.
// An invalid Method leaves sol untouched and returns false.
func (m Method) Improve(sol *solution.Solution, maxIter int, rng *rand.Rand) bool {
	switch m {
	case MethodFirstImprovement:
		return FirstImprovement(sol, maxIter, rng)
	case MethodBestImprovement:
		return BestImprovement(sol, maxIter, rng)
	case MethodIMLS:
		return IMLS(sol, maxIter, rng, DefaultIMLSOptions())
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MethodFirstImprovement:
		return "first"
	case MethodBestImprovement:
		return "best"
	case MethodIMLS:
		return "imls"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps a name (case-insensitive) to a Method.
// Accepted: first/lsfirstimp, best/lsbestimp, imls.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first", "lsfirstimp", "first-improvement":
		return MethodFirstImprovement, nil
	case "best", "lsbestimp", "best-improvement":
		return MethodBestImprovement, nil
	case "imls":
		return MethodIMLS, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
	}
}
