package ptp

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

var (
	// ErrInvalidBounds is returned for empty or inverted bounds.
	ErrInvalidBounds = errors.New("ptp: invalid bounds")

	// ErrInvalidOptions is returned for non-positive budgets or steps.
	ErrInvalidOptions = errors.New("ptp: invalid options")
)

// Bounds is the axis-aligned box the configuration space is sampled from.
type Bounds struct {
	Lo, Hi planning.State
}

// Dim returns the configuration space dimension.
func (b Bounds) Dim() int { return len(b.Lo) }

// Contains reports whether s lies inside the box.
func (b Bounds) Contains(s planning.State) bool {
	if len(s) != len(b.Lo) {
		return false
	}
	for i, x := range s {
		if x < b.Lo[i] || x > b.Hi[i] {
			return false
		}
	}

	return true
}

func (b Bounds) sample(rng *rand.Rand) planning.State {
	s := make(planning.State, len(b.Lo))
	for i := range s {
		s[i] = b.Lo[i] + rng.Float64()*(b.Hi[i]-b.Lo[i])
	}

	return s
}

func (b Bounds) validate() error {
	if len(b.Lo) == 0 || len(b.Lo) != len(b.Hi) {
		return fmt.Errorf("%w: dims %d and %d", ErrInvalidBounds, len(b.Lo), len(b.Hi))
	}
	for i := range b.Lo {
		if !(b.Lo[i] < b.Hi[i]) {
			return fmt.Errorf("%w: axis %d [%g, %g]", ErrInvalidBounds, i, b.Lo[i], b.Hi[i])
		}
	}

	return nil
}

// Defaults.
const (
	DefaultTimeLimit          = time.Second
	DefaultMaxIterations      = 5000
	DefaultStep               = 0.1
	DefaultShortcutIterations = 100
	DefaultGoalSamples        = 10
)

// Options configures a Planner.
type Options struct {
	// TimeLimit bounds a single PlanToState or PlanToGoal call.
	TimeLimit time.Duration

	// MaxIterations bounds tree growth per connection attempt.
	MaxIterations int

	// Step is the maximum extension length.
	Step float64

	// ShortcutIterations is the number of random shortcut attempts applied
	// to every found path; 0 disables simplification of query results.
	ShortcutIterations int

	// GoalSamples is the number of goal-region samples PlanToGoal tries.
	GoalSamples int

	// Seed drives sampling.
	Seed int64
}

// DefaultOptions returns the recommended configuration.
func DefaultOptions() Options {
	return Options{
		TimeLimit:          DefaultTimeLimit,
		MaxIterations:      DefaultMaxIterations,
		Step:               DefaultStep,
		ShortcutIterations: DefaultShortcutIterations,
		GoalSamples:        DefaultGoalSamples,
	}
}

// Validate checks budgets and step sizes.
func (o Options) Validate() error {
	if o.TimeLimit <= 0 || o.MaxIterations <= 0 || o.Step <= 0 || o.ShortcutIterations < 0 || o.GoalSamples <= 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidOptions, o)
	}

	return nil
}

// Planner is an RRT-Connect point-to-point planner.
type Planner struct {
	bounds   Bounds
	validity Validity
	opts     Options
	rng      *rand.Rand
	logger   *zap.Logger
}

var (
	_ planning.PointToPoint      = (*Planner)(nil)
	_ planning.Simplifier        = (*Planner)(nil)
	_ planning.MotionValidator   = (*Planner)(nil)
	_ planning.StateValidator    = (*Planner)(nil)
	_ planning.ParameterReporter = (*Planner)(nil)
)

// New returns a planner over bounds. logger may be nil.
func New(bounds Bounds, validity Validity, opts Options, logger *zap.Logger) (*Planner, error) {
	if err := bounds.validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Planner{
		bounds:   bounds,
		validity: validity,
		opts:     opts,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		logger:   logger.Named("ptp"),
	}, nil
}

// Parameters reports the planner configuration.
func (p *Planner) Parameters() planning.Params {
	return planning.Params{
		"planner":             "rrt_connect",
		"lucky_shot":          true,
		"time_limit_s":        p.opts.TimeLimit.Seconds(),
		"max_iterations":      p.opts.MaxIterations,
		"step":                p.opts.Step,
		"shortcut_iterations": p.opts.ShortcutIterations,
		"goal_samples":        p.opts.GoalSamples,
	}
}

// IsValid reports whether s is inside the bounds and collision-free.
func (p *Planner) IsValid(s planning.State) bool {
	return p.bounds.Contains(s) && p.validity.IsValid(s)
}

// ValidPath reports whether every state and every motion of path is valid.
func (p *Planner) ValidPath(path planning.Path) bool {
	if path.Empty() {
		return false
	}
	for i, s := range path {
		if !p.IsValid(s) {
			return false
		}
		if i > 0 && !p.validity.CheckMotion(path[i-1], s) {
			return false
		}
	}

	return true
}

// PlanToState finds a valid path from start to end. The path begins with
// start and ends with end exactly.
func (p *Planner) PlanToState(start, end planning.State) (planning.Path, bool) {
	deadline := time.Now().Add(p.opts.TimeLimit)
	if !p.IsValid(start) || !p.IsValid(end) {
		return nil, false
	}
	path, ok := p.connect(start, end, deadline)
	if !ok {
		p.logger.Debug("no path found", zap.Int("dim", len(start)))
		return nil, false
	}

	return p.finish(path), true
}

// PlanToGoal samples valid goal configurations and plans to them, nearest
// first, until one connects or the time limit expires.
func (p *Planner) PlanToGoal(start planning.State, goal planning.Goal) (planning.Path, bool) {
	deadline := time.Now().Add(p.opts.TimeLimit)
	if !p.IsValid(start) {
		return nil, false
	}

	n := min(p.opts.GoalSamples, goal.MaxSampleCount())
	candidates := make([]planning.State, 0, n)
	for k := 0; k < n; k++ {
		if s := goal.Sample(p.rng); s != nil && p.IsValid(s) {
			candidates = append(candidates, s)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return start.Distance(candidates[i]) < start.Distance(candidates[j])
	})

	for _, c := range candidates {
		if !time.Now().Before(deadline) {
			break
		}
		if path, ok := p.connect(start, c, deadline); ok {
			return p.finish(path), true
		}
	}

	return nil, false
}

// finish simplifies a found path when shortcutting is enabled.
func (p *Planner) finish(path planning.Path) planning.Path {
	if p.opts.ShortcutIterations > 0 {
		return p.Simplify(path)
	}

	return path
}

// Simplify shortens path by replacing random sub-paths with straight
// motions when those are valid. Endpoints are kept.
func (p *Planner) Simplify(path planning.Path) planning.Path {
	out := append(planning.Path(nil), path...)
	for k := 0; k < p.opts.ShortcutIterations && len(out) > 2; k++ {
		i := p.rng.Intn(len(out) - 2)
		j := i + 2 + p.rng.Intn(len(out)-i-2)
		if p.validity.CheckMotion(out[i], out[j]) {
			out = append(out[:i+1], out[j:]...)
		}
	}

	return out
}
