package grasp

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/mmdp/elite"
	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/pathrelink"
	"github.com/katalvlaran/mmdp/randutil"
	"github.com/katalvlaran/mmdp/solution"
)

// Phase is the driver state.
type Phase int

const (
	PhaseConstructing Phase = iota
	PhaseRelinking
	PhaseDone
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseConstructing:
		return "constructing"
	case PhaseRelinking:
		return "relinking"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Result is the outcome of Run.
type Result struct {
	Best *solution.Solution // deep copy, owned by the caller

	Iterations       int // construction iterations
	RelinkedPairs    int // elite pairs relinked in both directions
	EliteSize        int // archive size when relinking started
	EliteUpdates     int // path solutions admitted to the archive
	PathImprovements int // relinking results that raised the best objective

	Elapsed          time.Duration
	ConstructElapsed time.Duration
	RelinkElapsed    time.Duration
}

// Execute runs GRASP+PR with CGR construction and first-improvement local
// search, as configured by DefaultOptions apart from the arguments, and
// returns the best solution and the number of construction iterations.
func Execute(
	inst *instance.Instance,
	alpha float64,
	eliteSize int,
	timeLimit time.Duration,
	graspFraction float64,
	rng *rand.Rand,
) (*solution.Solution, int, error) {
	opts := DefaultOptions()
	opts.Alpha = alpha
	opts.EliteSize = eliteSize
	opts.TimeLimit = timeLimit
	opts.GraspFraction = graspFraction
	opts.Rng = rng

	res, err := Run(inst, opts)
	if err != nil {
		return nil, 0, err
	}

	return res.Best, res.Iterations, nil
}

// Run executes the driver until its budget is spent or no elite pair is
// left to relink. Construction errors abort the run and are returned
// unchanged together with a zero Result.
func Run(inst *instance.Instance, opts Options) (Result, error) {
	if inst == nil {
		return Result{}, ErrNilInstance
	}
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	es, err := elite.New(opts.EliteSize)
	if err != nil {
		return Result{}, err
	}

	d := &driver{
		inst:  inst,
		opts:  opts,
		rng:   opts.Rng,
		clock: opts.Clock,
		log:   opts.Logger.With().Str("instance", inst.String()).Logger(),
		es:    es,
	}
	if d.rng == nil {
		d.rng = randutil.FromSeed(opts.Seed)
	}
	if d.clock == nil {
		d.clock = time.Now
	}

	return d.run()
}

type driver struct {
	inst  *instance.Instance
	opts  Options
	rng   *rand.Rand
	clock func() time.Time
	log   zerolog.Logger

	es    *elite.Set
	best  *solution.Solution
	start time.Time
	phase Phase
	res   Result
}

func (d *driver) elapsed() time.Duration { return d.clock().Sub(d.start) }

func (d *driver) run() (Result, error) {
	d.start = d.clock()
	for d.phase != PhaseDone {
		switch d.phase {
		case PhaseConstructing:
			if err := d.construct(); err != nil {
				return Result{}, err
			}
			d.res.ConstructElapsed = d.elapsed()
			d.res.EliteSize = d.es.Len()
			d.enter(PhaseRelinking)
		case PhaseRelinking:
			if err := d.relink(); err != nil {
				return Result{}, err
			}
			d.res.RelinkElapsed = d.elapsed() - d.res.ConstructElapsed
			d.enter(PhaseDone)
		}
	}

	d.res.Best = d.best
	d.res.Elapsed = d.elapsed()
	d.log.Info().
		Float64("objective", d.best.Objective()).
		Int("iterations", d.res.Iterations).
		Int("relinked_pairs", d.res.RelinkedPairs).
		Int("path_improvements", d.res.PathImprovements).
		Dur("elapsed", d.res.Elapsed).
		Msg("grasp: done")

	return d.res, nil
}

func (d *driver) enter(p Phase) {
	d.phase = p
	d.log.Debug().
		Str("phase", p.String()).
		Int("elite", d.es.Len()).
		Dur("elapsed", d.elapsed()).
		Msg("grasp: phase")
}

// constructDone is the exit test evaluated before every construction.
func (d *driver) constructDone() bool {
	var (
		el    = d.elapsed()
		share = time.Duration(float64(d.opts.TimeLimit) * d.opts.GraspFraction)
	)
	switch {
	case d.res.Iterations == 0:
		return false
	case el > share && d.es.Full():
		return true
	case el > d.opts.TimeLimit-d.opts.margin():
		return true
	case d.opts.MaxIterations > 0 && d.res.Iterations >= d.opts.MaxIterations:
		return true
	}

	return false
}

func (d *driver) construct() error {
	for !d.constructDone() {
		d.res.Iterations++
		sol, err := d.opts.Constructor.Construct(d.inst, d.opts.Alpha, d.rng)
		if err != nil {
			return err
		}
		d.opts.Improver.Improve(sol, d.opts.ImproveIters, d.rng)
		if _, err = d.es.Insert(sol); err != nil {
			return err
		}
		d.offer(sol, "construction")
	}

	return nil
}

// offer replaces the best solution with a copy of sol when sol is strictly
// better, and reports whether it did.
func (d *driver) offer(sol *solution.Solution, source string) bool {
	if d.best != nil && !(sol.Objective() > d.best.Objective()) {
		return false
	}
	if d.best != nil {
		d.log.Debug().
			Str("source", source).
			Float64("from", d.best.Objective()).
			Float64("to", sol.Objective()).
			Int("iteration", d.res.Iterations).
			Msg("grasp: new best")
	}
	d.best = sol.Clone()

	return true
}

func (d *driver) relink() error {
	var (
		done    = make(map[[2]uint64]struct{})
		pending = d.pendingPairs(done)
	)
	for len(pending) > 0 {
		if d.elapsed() > d.opts.TimeLimit {
			d.log.Debug().Int("pending", len(pending)).Msg("grasp: time limit reached while relinking")
			break
		}
		pr := pending[0]
		pending = pending[1:]
		done[pr.Key()] = struct{}{}

		fwd, _, err := pathrelink.Greedy(pr.A.Solution, pr.B.Solution)
		if err != nil {
			return err
		}
		if d.elapsed() > d.opts.TimeLimit {
			if d.offer(fwd, "relinking") {
				d.res.PathImprovements++
			}
			break
		}
		bwd, _, err := pathrelink.Greedy(pr.B.Solution, pr.A.Solution)
		if err != nil {
			return err
		}
		path := bwd
		if fwd.Objective() > bwd.Objective() {
			path = fwd
		}
		d.opts.Improver.Improve(path, d.opts.ImproveIters, d.rng)
		d.res.RelinkedPairs++

		if d.offer(path, "relinking") {
			d.res.PathImprovements++
		}
		admitted, err := d.es.Insert(path)
		if err != nil {
			return err
		}
		d.log.Debug().
			Uint64("a", pr.A.ID).
			Uint64("b", pr.B.ID).
			Float64("objective", path.Objective()).
			Bool("admitted", admitted).
			Msg("grasp: relinked")
		if admitted {
			d.res.EliteUpdates++
			pending = d.pendingPairs(done)
		}
	}

	return nil
}

// pendingPairs lists the current elite pairs that have not been relinked.
func (d *driver) pendingPairs(done map[[2]uint64]struct{}) []elite.Pair {
	all := d.es.Pairs()
	out := all[:0]
	for _, pr := range all {
		if _, ok := done[pr.Key()]; !ok {
			out = append(out, pr)
		}
	}

	return out
}
