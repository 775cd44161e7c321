package planning

import (
	"context"
	"math/rand"

	"github.com/golang/geo/r3"
)

// Goal is a sampleable region in configuration space.
type Goal interface {
	// Sample draws a configuration from the region.
	Sample(rng *rand.Rand) State
	// Distance is zero inside the region and grows outside it.
	Distance(s State) float64
	// Satisfied reports membership.
	Satisfied(s State) bool
	// MaxSampleCount bounds the number of distinct samples; 1 for a single state.
	MaxSampleCount() int
}

// Targeted is implemented by goals that have a representative point in the
// workspace, such as the centre of a fruit.
type Targeted interface {
	Target() r3.Vector
}

// PointToPoint plans single motions. Both methods return false on ordinary
// failure (timeout, no solution) and never panic. Budgets and the
// optimisation objective are the implementation's own.
type PointToPoint interface {
	PlanToGoal(start State, goal Goal) (Path, bool)
	PlanToState(start, end State) (Path, bool)
}

// Simplifier shortens a valid path without invalidating it.
type Simplifier interface {
	Simplify(p Path) Path
}

// MotionValidator checks that a whole path is collision-free.
type MotionValidator interface {
	ValidPath(p Path) bool
}

// StateValidator checks a single configuration.
type StateValidator interface {
	IsValid(s State) bool
}

// Objective scores candidate tours. PathCost is used to compare tours,
// StateCost ranks goal samples (lower is better).
type Objective interface {
	PathCost(p Path) float64
	StateCost(s State) float64
}

// Kinematics maps between configurations and the workspace.
type Kinematics interface {
	// EndEffector returns the workspace position of the tool for s.
	EndEffector(s State) r3.Vector
	// StateAt returns a configuration placing the tool at position, pointing
	// against approach (the outward direction the tool came from).
	StateAt(position, approach r3.Vector) State
}

// ParameterReporter exposes a flat configuration report.
type ParameterReporter interface {
	Parameters() Params
}

// MultiGoalPlanner is a tour strategy. Plan returns an empty Result, not an
// error, when no goal can be reached; errors are reserved for structural
// defects. ctx is only observed between planning steps.
type MultiGoalPlanner interface {
	ParameterReporter
	Name() string
	Plan(ctx context.Context, ptp PointToPoint, start State, goals []Goal) (Result, error)
}
