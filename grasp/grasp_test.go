package grasp_test

import (
	"bytes"
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/mmdp/construct"
	"github.com/katalvlaran/mmdp/grasp"
	"github.com/katalvlaran/mmdp/instance"
	"github.com/katalvlaran/mmdp/localsearch"
	"github.com/katalvlaran/mmdp/matrix"
	"github.com/katalvlaran/mmdp/solution"
)

// stepClock advances by a fixed step on every reading.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

// jumpClock stands still until its at-th reading, then jumps by jump.
type jumpClock struct {
	t     time.Time
	calls int
	at    int
	jump  time.Duration
}

func (c *jumpClock) Now() time.Time {
	c.calls++
	if c.calls == c.at {
		c.t = c.t.Add(c.jump)
	}
	return c.t
}

// scripted hands out fixed selections in turn.
type scripted struct {
	sets [][]int
	next int
}

func (c *scripted) Construct(inst *instance.Instance, _ float64, _ *rand.Rand) (*solution.Solution, error) {
	items := c.sets[c.next%len(c.sets)]
	c.next++
	return solution.FromItems(inst, items...)
}

// lateImprover leaves the first skip solutions untouched and runs
// first-improvement on the rest.
type lateImprover struct {
	skip, calls int
}

func (m *lateImprover) Improve(sol *solution.Solution, maxIter int, rng *rand.Rand) bool {
	m.calls++
	if m.calls <= m.skip {
		return false
	}
	return localsearch.FirstImprovement(sol, maxIter, rng)
}

// lineInstance places points at 0, 1, 2, 4, 8 and selects three.
func lineInstance(t *testing.T) *instance.Instance {
	d, err := matrix.Euclidean([][]float64{{0}, {1}, {2}, {4}, {8}})
	require.NoError(t, err)
	inst, err := instance.New(d, 3)
	require.NoError(t, err)

	return inst
}

// GraspSuite exercises the driver on a small random Euclidean instance.
type GraspSuite struct {
	suite.Suite
	inst *instance.Instance
}

func (s *GraspSuite) SetupTest() {
	rng := rand.New(rand.NewSource(7))
	pts := make([][]float64, 30)
	for i := range pts {
		pts[i] = []float64{rng.Float64() * 100, rng.Float64() * 100}
	}
	d, err := matrix.Euclidean(pts)
	require.NoError(s.T(), err)
	s.inst, err = instance.New(d, 8)
	require.NoError(s.T(), err)
}

func (s *GraspSuite) fakeClockOptions(limit time.Duration, elite int) grasp.Options {
	opts := grasp.DefaultOptions()
	opts.TimeLimit = limit
	opts.EliteSize = elite
	opts.Clock = (&stepClock{t: time.Unix(0, 0), step: time.Second}).Now

	return opts
}

func (s *GraspSuite) requireExact(res grasp.Result) {
	require.NotNil(s.T(), res.Best)
	require.True(s.T(), res.Best.IsFeasible())
	require.InDelta(s.T(), res.Best.Evaluate(), res.Best.Objective(), 1e-9)
}

// TestValidate checks every option guard.
func (s *GraspSuite) TestValidate() {
	cases := []struct {
		name string
		mut  func(*grasp.Options)
		want error
	}{
		{"alpha", func(o *grasp.Options) { o.Alpha = 1.5 }, grasp.ErrInvalidAlpha},
		{"alpha NaN", func(o *grasp.Options) { o.Alpha = math.NaN() }, grasp.ErrInvalidAlpha},
		{"elite", func(o *grasp.Options) { o.EliteSize = 0 }, grasp.ErrInvalidEliteSize},
		{"time", func(o *grasp.Options) { o.TimeLimit = -time.Second }, grasp.ErrInvalidTimeLimit},
		{"fraction", func(o *grasp.Options) { o.GraspFraction = 1.1 }, grasp.ErrInvalidFraction},
		{"iterations", func(o *grasp.Options) { o.MaxIterations = -1 }, grasp.ErrInvalidIterations},
		{"constructor", func(o *grasp.Options) { o.Constructor = nil }, grasp.ErrNilStrategy},
	}
	for _, tc := range cases {
		opts := grasp.DefaultOptions()
		tc.mut(&opts)
		_, err := grasp.Run(s.inst, opts)
		require.ErrorIs(s.T(), err, tc.want, tc.name)
	}
	require.NoError(s.T(), grasp.DefaultOptions().Validate())

	_, err := grasp.Run(nil, grasp.DefaultOptions())
	require.ErrorIs(s.T(), err, grasp.ErrNilInstance)
}

// TestZeroBudgetRunsOnce verifies that one construction always happens.
func (s *GraspSuite) TestZeroBudgetRunsOnce() {
	opts := s.fakeClockOptions(0, 5)
	opts.SafetyMargin = false

	res, err := grasp.Run(s.inst, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, res.Iterations)
	require.Equal(s.T(), 1, res.EliteSize)
	require.Zero(s.T(), res.RelinkedPairs)
	s.requireExact(res)
}

// TestConstructionStopsAtFractionWhenEliteFull uses a clock that advances
// one second per reading: with a full archive, construction ends at the
// first check past 40 % of 100 s.
func (s *GraspSuite) TestConstructionStopsAtFractionWhenEliteFull() {
	res, err := grasp.Run(s.inst, s.fakeClockOptions(100*time.Second, 1))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 40, res.Iterations)
	require.Equal(s.T(), 1, res.EliteSize)
	s.requireExact(res)
}

// TestConstructionIgnoresFractionUntilEliteFull checks the safety margin
// path: the archive never fills, so construction runs until 99 s.
func (s *GraspSuite) TestConstructionIgnoresFractionUntilEliteFull() {
	res, err := grasp.Run(s.inst, s.fakeClockOptions(100*time.Second, 1000))
	require.NoError(s.T(), err)
	require.Equal(s.T(), 99, res.Iterations)
	require.Equal(s.T(), 99, res.EliteSize)
	require.Zero(s.T(), res.RelinkedPairs, "no budget left for relinking")

	opts := s.fakeClockOptions(100*time.Second, 1000)
	opts.SafetyMargin = false
	res, err = grasp.Run(s.inst, opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 100, res.Iterations)
}

// TestDeterministicWithIterationCap relinks every pair and is reproducible
// for a fixed seed.
func (s *GraspSuite) TestDeterministicWithIterationCap() {
	run := func() grasp.Result {
		opts := grasp.DefaultOptions()
		opts.TimeLimit = time.Hour
		opts.MaxIterations = 12
		opts.EliteSize = 5
		opts.Seed = 42
		res, err := grasp.Run(s.inst, opts)
		require.NoError(s.T(), err)
		return res
	}

	a, b := run(), run()
	s.requireExact(a)
	require.Equal(s.T(), 12, a.Iterations)
	require.Equal(s.T(), 5, a.EliteSize)
	require.GreaterOrEqual(s.T(), a.RelinkedPairs, 10)
	require.Equal(s.T(), a.Best.Items(), b.Best.Items())
	require.Equal(s.T(), a.Best.Objective(), b.Best.Objective())
	require.Equal(s.T(), a.RelinkedPairs, b.RelinkedPairs)
}

// TestStrategies runs every constructor/improver combination.
func (s *GraspSuite) TestStrategies() {
	for _, c := range []construct.Method{construct.MethodCGR, construct.MethodCGR2} {
		for _, m := range []localsearch.Method{
			localsearch.MethodFirstImprovement,
			localsearch.MethodBestImprovement,
			localsearch.MethodIMLS,
		} {
			opts := grasp.DefaultOptions()
			opts.Constructor, opts.Improver = c, m
			opts.Alpha = 0.3
			opts.TimeLimit = time.Hour
			opts.MaxIterations = 6
			opts.EliteSize = 3
			res, err := grasp.Run(s.inst, opts)
			require.NoError(s.T(), err, "%s/%s", c, m)
			s.requireExact(res)
		}
	}
}

// TestRealClockBudget bounds wall time on a short budget.
func (s *GraspSuite) TestRealClockBudget() {
	opts := grasp.DefaultOptions()
	opts.TimeLimit = 100 * time.Millisecond
	opts.SafetyMargin = false
	opts.EliteSize = 4

	res, err := grasp.Run(s.inst, opts)
	require.NoError(s.T(), err)
	s.requireExact(res)
	require.GreaterOrEqual(s.T(), res.Iterations, 1)
	require.Less(s.T(), res.Elapsed, 5*time.Second)
	require.LessOrEqual(s.T(), res.ConstructElapsed, res.Elapsed)
}

// TestConstructionErrorPropagates uses an inconsistent unchecked instance
// (p > n) to make construction fail.
func (s *GraspSuite) TestConstructionErrorPropagates() {
	bad := instance.NewUnchecked(s.inst.Matrix(), s.inst.N()+1)
	res, err := grasp.Run(bad, grasp.DefaultOptions())
	require.ErrorIs(s.T(), err, construct.ErrCandidateListExhausted)
	require.Nil(s.T(), res.Best)
}

// TestLogging checks the structured summary line.
func (s *GraspSuite) TestLogging() {
	var buf bytes.Buffer
	opts := grasp.DefaultOptions()
	opts.TimeLimit = time.Hour
	opts.MaxIterations = 3
	opts.EliteSize = 2
	opts.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := grasp.Run(s.inst, opts)
	require.NoError(s.T(), err)
	out := buf.String()
	require.Contains(s.T(), out, `"message":"grasp: phase"`)
	require.Contains(s.T(), out, `"phase":"relinking"`)
	require.Contains(s.T(), out, `"message":"grasp: done"`)
	require.Contains(s.T(), out, `"iterations":3`)
}

// TestExecute covers the positional wrapper.
func (s *GraspSuite) TestExecute() {
	best, iters, err := grasp.Execute(s.inst, 0.1, 3, 50*time.Millisecond, 0.4, rand.New(rand.NewSource(1)))
	require.NoError(s.T(), err)
	require.GreaterOrEqual(s.T(), iters, 1)
	require.True(s.T(), best.IsFeasible())

	_, _, err = grasp.Execute(s.inst, 0.1, 0, time.Second, 0.4, nil)
	require.ErrorIs(s.T(), err, grasp.ErrInvalidEliteSize)
}

// TestRelinkRefreshesPairs seeds the archive with three poor selections.
// Every relinked pair improves to the optimum {0,4,8}, which enters the
// archive three times: each admission adds pairs with the new entry and
// drops the unrelinked pairs of the evicted one.
func (s *GraspSuite) TestRelinkRefreshesPairs() {
	var buf bytes.Buffer
	opts := grasp.DefaultOptions()
	opts.TimeLimit = time.Hour
	opts.MaxIterations = 3
	opts.EliteSize = 3
	opts.Constructor = &scripted{sets: [][]int{{0, 1, 2}, {1, 2, 3}, {0, 1, 4}}}
	opts.Improver = &lateImprover{skip: 3}
	opts.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)

	res, err := grasp.Run(lineInstance(s.T()), opts)
	require.NoError(s.T(), err)
	s.requireExact(res)
	require.Equal(s.T(), []int{0, 3, 4}, res.Best.Items())
	require.Equal(s.T(), 3, res.EliteUpdates)
	require.Equal(s.T(), 6, res.RelinkedPairs)
	require.Equal(s.T(), 1, res.PathImprovements)

	type relinked struct {
		Message  string `json:"message"`
		A        uint64 `json:"a"`
		B        uint64 `json:"b"`
		Admitted bool   `json:"admitted"`
	}
	var (
		got      [][2]uint64
		admitted []bool
	)
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var ev relinked
		require.NoError(s.T(), dec.Decode(&ev))
		if ev.Message == "grasp: relinked" {
			got = append(got, [2]uint64{ev.A, ev.B})
			admitted = append(admitted, ev.Admitted)
		}
	}
	// Entry 3 is evicted first, so (1,3) and (2,3) are never relinked.
	require.Equal(s.T(), [][2]uint64{{1, 2}, {1, 4}, {2, 5}, {5, 6}, {4, 5}, {4, 6}}, got)
	require.Equal(s.T(), []bool{true, true, true, false, false, false}, admitted)
}

// TestTimeoutBetweenDirections lets the budget expire right after the
// forward walk: its result still competes for best, the pair is not
// counted and the backward walk never runs.
func (s *GraspSuite) TestTimeoutBetweenDirections() {
	opts := grasp.DefaultOptions()
	opts.TimeLimit = time.Minute
	opts.MaxIterations = 2
	opts.EliteSize = 2
	opts.Constructor = &scripted{sets: [][]int{{0, 1, 3}, {1, 2, 4}}}
	opts.Improver = &lateImprover{skip: math.MaxInt}
	// Readings: start, three construction checks, construction elapsed,
	// phase log, the check before the pair, then the check after the
	// forward walk.
	opts.Clock = (&jumpClock{t: time.Unix(0, 0), at: 8, jump: 2 * time.Minute}).Now

	res, err := grasp.Run(lineInstance(s.T()), opts)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, res.Iterations)
	require.Zero(s.T(), res.RelinkedPairs)
	require.Zero(s.T(), res.EliteUpdates)
	require.Equal(s.T(), 1, res.PathImprovements)
	// {0,1,4} -> {1,2,8}: the first step reaches {1,4,8} with objective 3.
	require.Equal(s.T(), []int{1, 3, 4}, res.Best.Items())
	require.Equal(s.T(), 3.0, res.Best.Objective())
}

func TestGraspSuite(t *testing.T) {
	suite.Run(t, new(GraspSuite))
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "constructing", grasp.PhaseConstructing.String())
	require.Equal(t, "relinking", grasp.PhaseRelinking.String())
	require.Equal(t, "done", grasp.PhaseDone.String())
	require.Equal(t, "Phase(9)", grasp.Phase(9).String())
}
