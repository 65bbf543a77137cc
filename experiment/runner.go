package experiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/mmdp/construct"
	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/localsearch"
	"github.com/katalvlaran/mmdp/randutil"
)

// eps is the tolerance for objective equality and for checking returned
// solutions against a full recomputation.
const eps = 1e-9

var (
	// ErrInvalidRuns indicates Runner.Runs < 1.
	ErrInvalidRuns = errors.New("experiment: runs must be ≥ 1")

	// ErrInvalidSolution indicates a run returned an infeasible solution or
	// one whose cached objective disagrees with a full recomputation.
	ErrInvalidSolution = errors.New("experiment: invalid solution")
)

// Record is the outcome of one Method on one instance.
type Record struct {
	Method   string
	Instance string
	N, P     int
	Runs     int

	Objective Stats
	TimeMs    Stats // Best here is the slowest run

	Objectives []float64 // per run, in seed order
}

// Runner executes each Method Runs times with seeds derived from BaseSeed.
type Runner struct {
	Runs     int
	BaseSeed int64
	Logger   zerolog.Logger
}

// DefaultRunner returns 10 runs from randutil.DefaultSeed with a
// discarding logger.
func DefaultRunner() Runner {
	return Runner{Runs: 10, BaseSeed: randutil.DefaultSeed, Logger: zerolog.Nop()}
}

// RunCase runs m on inst. Run i uses randutil.DeriveSeed(BaseSeed, i), so
// every (instance, method) pair sees the same seed sequence. ctx is checked
// between runs.
func (r Runner) RunCase(ctx context.Context, inst *instance.Instance, m Method) (Record, error) {
	if r.Runs < 1 {
		return Record{}, fmt.Errorf("%w: got %d", ErrInvalidRuns, r.Runs)
	}

	var (
		objs  = make([]float64, 0, r.Runs)
		times = make([]float64, 0, r.Runs)
	)
	for i := 0; i < r.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return Record{}, fmt.Errorf("experiment: %s run %d: %w", m.Name, i, err)
		}
		rng := randutil.FromSeed(randutil.DeriveSeed(r.BaseSeed, uint64(i)))

		start := time.Now()
		sol, err := m.Solve(inst, rng)
		dur := time.Since(start)
		if err != nil {
			return Record{}, fmt.Errorf("experiment: %s run %d: %w", m.Name, i, err)
		}
		if !sol.IsFeasible() || math.Abs(sol.Objective()-sol.Evaluate()) > eps {
			return Record{}, fmt.Errorf("experiment: %s run %d: %v: %w", m.Name, i, sol, ErrInvalidSolution)
		}

		objs = append(objs, sol.Objective())
		times = append(times, float64(dur.Microseconds())/1000.0)
	}

	rec := Record{
		Method:     m.Name,
		Instance:   inst.String(),
		N:          inst.N(),
		P:          inst.P(),
		Runs:       r.Runs,
		Objective:  CalcStats(objs),
		TimeMs:     CalcStats(times),
		Objectives: objs,
	}
	r.Logger.Info().
		Str("method", rec.Method).
		Str("instance", rec.Instance).
		Float64("best", rec.Objective.Best).
		Float64("mean", rec.Objective.Mean).
		Float64("std", rec.Objective.Std).
		Float64("time_mean_ms", rec.TimeMs.Mean).
		Msg("experiment: case done")

	return rec, nil
}

// Run executes every method on every instance, instances outermost.
func (r Runner) Run(ctx context.Context, insts []*instance.Instance, methods []Method) ([]Record, error) {
	out := make([]Record, 0, len(insts)*len(methods))
	for _, inst := range insts {
		for _, m := range methods {
			rec, err := r.RunCase(ctx, inst, m)
			if err != nil {
				return out, err
			}
			out = append(out, rec)
		}
	}

	return out, nil
}

// DefaultAlphas returns the calibration grid 0.1, 0.2, …, 0.9.
func DefaultAlphas() []float64 {
	out := make([]float64, 9)
	for k := range out {
		out[k] = float64(k+1) / 10
	}

	return out
}

// Calibrate runs CGR with each alpha followed by first-improvement local
// search (at most lsIters rounds) on every instance, one Method per alpha
// named "alpha=<a>".
func (r Runner) Calibrate(ctx context.Context, insts []*instance.Instance, alphas []float64, lsIters int) ([]Record, error) {
	methods := make([]Method, len(alphas))
	for k, a := range alphas {
		methods[k] = ConstructImprove(construct.MethodCGR, a, localsearch.MethodFirstImprovement, lsIters)
		methods[k].Name = fmt.Sprintf("alpha=%g", a)
	}

	return r.Run(ctx, insts, methods)
}
