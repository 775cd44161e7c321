package approach

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

// Name identifies the strategy in parameter reports and experiment output.
const Name = "AT2Opt"

// Defaults.
const (
	DefaultSamplesPerGoal = 50
	DefaultKeepBest       = 5
	DefaultTimeBudget     = 10 * time.Second

	// ChainTolerance is the endpoint tolerance used when validating tours.
	ChainTolerance = 1e-9
)

// MissingGoalPass is invoked after the local search finishes a first
// position, with the goals currently absent from the tour. It may modify
// sol; the tour is re-validated afterwards.
type MissingGoalPass func(ptp planning.PointToPoint, table Table, sol *Solution, missing []int, after int)

// Options configures the strategy.
type Options struct {
	// SamplesPerGoal is the number of goal samples drawn per goal.
	SamplesPerGoal int

	// KeepBest is the number of samples kept per goal after pruning.
	KeepBest int

	// TimeBudget bounds the local search. Zero returns the initial tour.
	TimeBudget time.Duration

	// MaxRounds bounds the number of full sweeps; 0 means unlimited.
	MaxRounds int

	// Seed drives sampling and the initial order.
	Seed int64

	// Objective compares segments and ranks samples; nil means planning.PathLength{}.
	Objective planning.Objective

	// MissingGoalPass is an optional re-insertion hook. nil disables it.
	MissingGoalPass MissingGoalPass
}

// DefaultOptions returns the recommended configuration.
func DefaultOptions() Options {
	return Options{
		SamplesPerGoal: DefaultSamplesPerGoal,
		KeepBest:       DefaultKeepBest,
		TimeBudget:     DefaultTimeBudget,
	}
}

// Validate rejects negative counts and budgets.
func (o Options) Validate() error {
	if o.SamplesPerGoal < 0 || o.KeepBest < 0 || o.TimeBudget < 0 || o.MaxRounds < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidOptions, o)
	}

	return nil
}

// Option configures a Planner beyond Options.
type Option func(*Planner)

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l.Named("at2opt")
		}
	}
}

// WithPTPParameters includes the point-to-point planner configuration in
// the parameter report under the "ptp." prefix.
func WithPTPParameters(r planning.ParameterReporter) Option {
	return func(p *Planner) {
		p.ptpReport = r
	}
}

// Planner is the approach-table 2-opt strategy.
type Planner struct {
	opts      Options
	ptpReport planning.ParameterReporter
	logger    *zap.Logger
}

var _ planning.MultiGoalPlanner = (*Planner)(nil)

// New returns a planner with opts.
func New(opts Options, extra ...Option) *Planner {
	if opts.Objective == nil {
		opts.Objective = planning.PathLength{}
	}
	p := &Planner{opts: opts, logger: zap.NewNop()}
	for _, o := range extra {
		o(p)
	}

	return p
}

// Name implements planning.MultiGoalPlanner.
func (p *Planner) Name() string { return Name }

// Parameters reports the planner configuration.
func (p *Planner) Parameters() planning.Params {
	out := planning.Params{
		"planner":           Name,
		"samples_per_goal":  p.opts.SamplesPerGoal,
		"keep_best":         p.opts.KeepBest,
		"time_budget_s":     p.opts.TimeBudget.Seconds(),
		"max_rounds":        p.opts.MaxRounds,
		"missing_goal_pass": p.opts.MissingGoalPass != nil,
	}
	if p.ptpReport != nil {
		out.Merge("ptp", p.ptpReport.Parameters())
	}

	return out
}

// Plan samples the approach table, builds a random initial tour and refines
// it until the time budget expires. ptp is also used as a
// planning.StateValidator for the samples when it implements one.
// Cancelling ctx ends the search early with the tour found so far.
func (p *Planner) Plan(ctx context.Context, ptp planning.PointToPoint, start planning.State, goals []planning.Goal) (planning.Result, error) {
	if err := p.opts.Validate(); err != nil {
		return nil, err
	}
	deadline := time.Now().Add(p.opts.TimeBudget)
	rng := rand.New(rand.NewSource(p.opts.Seed))

	validity, _ := ptp.(planning.StateValidator)
	table := TakeGoalSamples(goals, p.opts.SamplesPerGoal, rng, validity)
	KeepBest(p.opts.Objective, table, p.opts.KeepBest)

	sol, dropped := RandomInitialSolution(ptp, table, start, rng)
	for _, g := range dropped {
		p.logger.Warn("dropping goal", zap.Int("goal", g), zap.String("reason", "initial connection failed"))
	}
	if err := sol.Validate(table, ChainTolerance); err != nil {
		return nil, err
	}

	if _, err := p.refine(ctx, ptp, table, sol, deadline); err != nil {
		return nil, err
	}

	return sol.Result(), nil
}

// RefineStats summarises a local search.
type RefineStats struct {
	Rounds    int
	Proposals int
	Accepted  int
}

// Refine runs the local search on sol in place until the time budget from
// now expires, MaxRounds sweeps are done or ctx is cancelled. The cost of
// sol never increases.
func (p *Planner) Refine(ctx context.Context, ptp planning.PointToPoint, table Table, sol *Solution) (RefineStats, error) {
	if err := p.opts.Validate(); err != nil {
		return RefineStats{}, err
	}

	return p.refine(ctx, ptp, table, sol, time.Now().Add(p.opts.TimeBudget))
}

func (p *Planner) refine(ctx context.Context, ptp planning.PointToPoint, table Table, sol *Solution, deadline time.Time) (RefineStats, error) {
	var st RefineStats
	expired := func() bool { return ctx.Err() != nil || !time.Now().Before(deadline) }

	for !expired() && sol.Len() >= 2 {
		if p.opts.MaxRounds > 0 && st.Rounds >= p.opts.MaxRounds {
			break
		}
		st.Rounds++
		for i := 0; i < sol.Len(); i++ {
			for j := i + 1; j < sol.Len(); j++ {
				if expired() {
					return st, nil
				}
				accepted, err := p.trySwap(ptp, table, sol, i, j)
				if err != nil {
					return st, err
				}
				st.Proposals++
				if accepted {
					st.Accepted++
				}
			}
			if p.opts.MissingGoalPass != nil {
				if missing := MissingTargets(sol, table); len(missing) > 0 {
					p.opts.MissingGoalPass(ptp, table, sol, missing, i)
					if err := sol.Validate(table, ChainTolerance); err != nil {
						return st, fmt.Errorf("after missing goal pass: %w", err)
					}
				}
			}
		}
		p.logger.Debug("round done",
			zap.Int("round", st.Rounds),
			zap.Int("accepted", st.Accepted),
			zap.Float64("cost", sol.Cost(p.opts.Objective)))
	}

	return st, nil
}

// trySwap proposes exchanging positions i and j and applies the proposal
// when it is a strict improvement.
func (p *Planner) trySwap(ptp planning.PointToPoint, table Table, sol *Solution, i, j int) (bool, error) {
	reps, err := ReplacementsForSwap(sol, i, j)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBrokenInvariant, err)
	}
	if err := ValidateReplacements(reps, sol.Len()); err != nil {
		return false, fmt.Errorf("%w: %w", ErrBrokenInvariant, err)
	}
	repl, ok := ComputeNewSegments(ptp, table, sol, reps)
	if !ok || !sol.IsImprovement(p.opts.Objective, repl) {
		return false, nil
	}
	sol.Apply(repl)
	if err := sol.Validate(table, ChainTolerance); err != nil {
		return false, err
	}

	return true, nil
}
