package shellpath

import (
	"go.uber.org/zap"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/tsp"
)

// Defaults for exit optimisation.
const (
	DefaultExitSamples = 10
	DefaultExitStddev  = 0.1
)

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger for per-goal failures. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l.Named("shellpath")
		}
	}
}

// WithObjective sets the objective used to compare exit candidates.
// Default: planning.PathLength{}.
func WithObjective(obj planning.Objective) Option {
	return func(p *Planner) {
		if obj != nil {
			p.objective = obj
		}
	}
}

// WithExitOptimization enables sliding the shell end of every approach.
// samples is the number of gaussian resamples tried per goal, stddev their
// spread on the surface.
func WithExitOptimization(samples int, stddev float64) Option {
	return func(p *Planner) {
		p.optimizeExit = samples > 0
		p.exitSamples = samples
		p.exitStddev = stddev
	}
}

// WithTSP overrides the ordering solver options. StartVertex and Symmetric
// are always forced to 0 and false.
func WithTSP(opts tsp.Options) Option {
	return func(p *Planner) {
		p.tspOpts = opts
	}
}

// WithSeed seeds exit resampling and the ordering solver restarts.
func WithSeed(seed int64) Option {
	return func(p *Planner) {
		p.seed = seed
	}
}

// WithPTPParameters includes the point-to-point planner configuration in
// the parameter report under the "ptp." prefix.
func WithPTPParameters(r planning.ParameterReporter) Option {
	return func(p *Planner) {
		p.ptpReport = r
	}
}
