package construct

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/randutil"
	"github.com/katalvlaran/mmdp/solution"
)

// rclTol absorbs floating-point noise in the RCL threshold comparison.
const rclTol = 1e-12

var (
	// ErrCandidateListExhausted is returned when no candidate is left while
	// the solution is still infeasible (for example p > n). No partial
	// solution is returned.
	ErrCandidateListExhausted = errors.New("construct: candidate list exhausted before feasibility")

	// ErrUnknownMethod is returned by ParseMethod and by Construct on an
	// invalid Method value.
	ErrUnknownMethod = errors.New("construct: unknown method")
)

// start adds a uniformly random first item and scores the rest.
func start(inst *instance.Instance, rng *rand.Rand) (*solution.Solution, *CandidateList, error) {
	sol := solution.New(inst)
	if err := sol.Add(rng.Intn(inst.N())); err != nil {
		return nil, nil, err
	}

	return sol, NewCandidateList(sol), nil
}

func exhausted(sol *solution.Solution) error {
	inst := sol.Instance()

	return fmt.Errorf("n=%d p=%d |S|=%d: %w", inst.N(), inst.P(), sol.Size(), ErrCandidateListExhausted)
}

// CGR builds a solution with the adaptive-threshold greedy randomized rule.
//
// alpha ∈ [0,1]: 0 keeps only maximum-score candidates, 1 accepts all of
// them. A negative alpha is replaced once per call by a uniform draw from
// [0,1). A nil rng uses the default seed.
//
// Complexity: O(p·n).
func CGR(inst *instance.Instance, alpha float64, rng *rand.Rand) (*solution.Solution, error) {
	rng = randutil.OrDefault(rng)
	sol, cl, err := start(inst, rng)
	if err != nil {
		return nil, err
	}
	if alpha < 0 {
		alpha = rng.Float64()
	}

	var (
		gmin, gmax float64
		threshold  float64
		rcl        = make([]int, 0, cl.Len()) // positions in cl
		k          int
	)
	for !sol.IsFeasible() {
		if cl.Len() == 0 {
			return nil, exhausted(sol)
		}

		gmin, gmax = cl.Bounds()
		threshold = gmax - alpha*(gmax-gmin)

		rcl = rcl[:0]
		for k = 0; k < cl.Len(); k++ {
			if cl.At(k).Score >= threshold-rclTol {
				rcl = append(rcl, k)
			}
		}
		if len(rcl) == 0 {
			// Unreachable for finite scores; fall back to the full list.
			for k = 0; k < cl.Len(); k++ {
				rcl = append(rcl, k)
			}
		}

		if err = cl.Select(rcl[rng.Intn(len(rcl))]); err != nil {
			return nil, err
		}
	}

	return sol, nil
}

// CGR2 builds a solution with the random-then-greedy rule: sample
// q = clamp(ceil(beta·|CL|), 1, |CL|) candidates without replacement and
// add the best-scored one (first in sample order on ties).
//
// beta ≤ 0 is replaced once per call by a uniform draw from (0,1].
// A nil rng uses the default seed.
//
// Complexity: O(p·n).
func CGR2(inst *instance.Instance, beta float64, rng *rand.Rand) (*solution.Solution, error) {
	rng = randutil.OrDefault(rng)
	sol, cl, err := start(inst, rng)
	if err != nil {
		return nil, err
	}
	if beta <= 0 {
		beta = 1 - rng.Float64()
	}

	var (
		idx       = make([]int, 0, cl.Len()) // positions, partially shuffled
		q, k, j   int
		best      int
		bestScore float64
	)
	for !sol.IsFeasible() {
		if cl.Len() == 0 {
			return nil, exhausted(sol)
		}

		q = int(math.Ceil(beta * float64(cl.Len())))
		q = min(max(q, 1), cl.Len())

		idx = idx[:0]
		for k = 0; k < cl.Len(); k++ {
			idx = append(idx, k)
		}
		// Partial Fisher–Yates: the first q slots become a uniform sample.
		best, bestScore = -1, math.Inf(-1)
		for k = 0; k < q; k++ {
			j = k + rng.Intn(len(idx)-k)
			idx[k], idx[j] = idx[j], idx[k]
			if s := cl.At(idx[k]).Score; best < 0 || s > bestScore {
				best, bestScore = idx[k], s
			}
		}

		if err = cl.Select(best); err != nil {
			return nil, err
		}
	}

	return sol, nil
}

// Constructor builds a feasible solution for inst. param is the method's
// randomization knob (alpha for CGR, beta for CGR2).
type Constructor interface {
	Construct(inst *instance.Instance, param float64, rng *rand.Rand) (*solution.Solution, error)
}

// Method is the closed set of constructive heuristics.
type Method int

const (
	MethodCGR Method = iota
	MethodCGR2
)

var _ Constructor = MethodCGR

// Construct dispatches to the selected heuristic.
func (m Method) Construct(inst *instance.Instance, param float64, rng *rand.Rand) (*solution.Solution, error) {
	switch m {
	case MethodCGR:
		return CGR(inst, param, rng)
	case MethodCGR2:
		return CGR2(inst, param, rng)
	default:
		return nil, fmt.Errorf("%d: %w", int(m), ErrUnknownMethod)
	}
}

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case MethodCGR:
		return "cgr"
	case MethodCGR2:
		return "cgr2"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "cgr" / "cgr2" (case-insensitive) to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cgr", "grasp":
		return MethodCGR, nil
	case "cgr2", "grasp2":
		return MethodCGR2, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownMethod)
	}
}
