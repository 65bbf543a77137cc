package grasp

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/mmdp/construct"
	"github.com/katalvlaran/mmdp/localsearch"
	"github.com/katalvlaran/mmdp/randutil"
)

// Defaults used by DefaultOptions.
const (
	DefaultAlpha         = 0.1
	DefaultEliteSize     = 10
	DefaultTimeLimit     = 30 * time.Second
	DefaultGraspFraction = 0.4

	// SafetyMargin is subtracted from TimeLimit in the construction exit
	// test when Options.SafetyMargin is set.
	SafetyMargin = time.Second
)

var (
	// ErrNilInstance indicates Run(nil, ...).
	ErrNilInstance = errors.New("grasp: nil instance")

	// ErrInvalidAlpha indicates a NaN or > 1 construction parameter.
	ErrInvalidAlpha = errors.New("grasp: alpha must be ≤ 1")

	// ErrInvalidEliteSize indicates EliteSize < 1.
	ErrInvalidEliteSize = errors.New("grasp: elite size must be ≥ 1")

	// ErrInvalidTimeLimit indicates a negative TimeLimit.
	ErrInvalidTimeLimit = errors.New("grasp: time limit must be ≥ 0")

	// ErrInvalidFraction indicates GraspFraction outside [0, 1].
	ErrInvalidFraction = errors.New("grasp: grasp fraction must be in [0, 1]")

	// ErrInvalidIterations indicates a negative iteration bound.
	ErrInvalidIterations = errors.New("grasp: iteration bounds must be ≥ 0")

	// ErrNilStrategy indicates a nil Constructor or Improver.
	ErrNilStrategy = errors.New("grasp: nil constructor or improver")
)

// Options configures Run.
//
// GraspFraction only applies once the elite archive is full: until then
// construction continues up to TimeLimit (minus the safety margin).
type Options struct {
	Alpha         float64       // CGR alpha or CGR2 beta; negative draws one per construction
	EliteSize     int           // elite archive capacity
	TimeLimit     time.Duration // total wall-clock budget
	GraspFraction float64       // share of TimeLimit spent constructing
	SafetyMargin  bool          // stop constructing SafetyMargin before TimeLimit
	MaxIterations int           // cap on construction iterations, 0 = time only
	ImproveIters  int           // round bound passed to the Improver, 0 = its default

	Constructor construct.Constructor
	Improver    localsearch.Improver

	// Rng drives every random decision; when nil, one is seeded from Seed.
	Rng  *rand.Rand
	Seed int64

	Logger zerolog.Logger

	// Clock reads the wall clock; nil means time.Now.
	Clock func() time.Time
}

// DefaultOptions returns the settings of the reference configuration:
// CGR with alpha 0.1, first-improvement local search, an elite archive of
// 10, a 30 s budget of which 40 % goes to construction, the one-second
// safety margin, seed randutil.DefaultSeed and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Alpha:         DefaultAlpha,
		EliteSize:     DefaultEliteSize,
		TimeLimit:     DefaultTimeLimit,
		GraspFraction: DefaultGraspFraction,
		SafetyMargin:  true,
		Constructor:   construct.MethodCGR,
		Improver:      localsearch.MethodFirstImprovement,
		Seed:          randutil.DefaultSeed,
		Logger:        zerolog.Nop(),
	}
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	switch {
	case math.IsNaN(o.Alpha) || o.Alpha > 1:
		return fmt.Errorf("%w: got %g", ErrInvalidAlpha, o.Alpha)
	case o.EliteSize < 1:
		return fmt.Errorf("%w: got %d", ErrInvalidEliteSize, o.EliteSize)
	case o.TimeLimit < 0:
		return fmt.Errorf("%w: got %s", ErrInvalidTimeLimit, o.TimeLimit)
	case math.IsNaN(o.GraspFraction) || o.GraspFraction < 0 || o.GraspFraction > 1:
		return fmt.Errorf("%w: got %g", ErrInvalidFraction, o.GraspFraction)
	case o.MaxIterations < 0 || o.ImproveIters < 0:
		return ErrInvalidIterations
	case o.Constructor == nil || o.Improver == nil:
		return ErrNilStrategy
	}

	return nil
}

// margin returns the construction safety margin.
func (o Options) margin() time.Duration {
	if o.SafetyMargin {
		return SafetyMargin
	}

	return 0
}
