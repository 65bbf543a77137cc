package experiment

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/mmdp/construct"
	"github.com/katalvlaran/mmdp/grasp"
	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/localsearch"
	"github.com/katalvlaran/mmdp/solution"
)

// Method is a named solution procedure. Solve must draw all randomness
// from rng.
type Method struct {
	Name  string
	Solve func(inst *instance.Instance, rng *rand.Rand) (*solution.Solution, error)
}

// ConstructImprove builds one solution with c (parameter param) and
// improves it with imp for at most iters rounds (0 = the improver's
// default). The name is "<constructor>+<improver>".
func ConstructImprove(c construct.Method, param float64, imp localsearch.Method, iters int) Method {
	return Method{
		Name: fmt.Sprintf("%s+%s", c, imp),
		Solve: func(inst *instance.Instance, rng *rand.Rand) (*solution.Solution, error) {
			sol, err := c.Construct(inst, param, rng)
			if err != nil {
				return nil, err
			}
			imp.Improve(sol, iters, rng)

			return sol, nil
		},
	}
}

// GRASP runs grasp.Run with opts; the generator of each run replaces
// opts.Rng.
func GRASP(name string, opts grasp.Options) Method {
	return Method{
		Name: name,
		Solve: func(inst *instance.Instance, rng *rand.Rand) (*solution.Solution, error) {
			o := opts
			o.Rng = rng
			res, err := grasp.Run(inst, o)
			if err != nil {
				return nil, err
			}

			return res.Best, nil
		},
	}
}
