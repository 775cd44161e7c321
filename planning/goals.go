package planning

import (
	"math"
	"math/rand"

	"github.com/golang/geo/r3"
)

// SphereGoal is satisfied when the end effector lies within Radius of Center.
// Samples are drawn uniformly from the ball and turned into configurations
// through Kin, approaching along the sampled radial direction.
type SphereGoal struct {
	Center r3.Vector
	Radius float64
	Kin    Kinematics
}

var (
	_ Goal     = SphereGoal{}
	_ Targeted = SphereGoal{}
)

// Target returns the sphere centre.
func (g SphereGoal) Target() r3.Vector { return g.Center }

// Sample draws a configuration whose end effector lies inside the ball.
func (g SphereGoal) Sample(rng *rand.Rand) State {
	dir := randomUnitVector(rng)
	r := g.Radius * math.Cbrt(rng.Float64())

	return g.Kin.StateAt(g.Center.Add(dir.Mul(r)), dir)
}

// Distance is the end-effector distance to the ball, zero inside.
func (g SphereGoal) Distance(s State) float64 {
	return math.Max(0, g.Kin.EndEffector(s).Distance(g.Center)-g.Radius)
}

// Satisfied reports whether the end effector is inside the ball.
func (g SphereGoal) Satisfied(s State) bool {
	return g.Kin.EndEffector(s).Distance(g.Center) <= g.Radius
}

// MaxSampleCount is unbounded for a continuous region.
func (g SphereGoal) MaxSampleCount() int { return math.MaxInt }

// StateGoal is a single goal configuration with a tolerance.
type StateGoal struct {
	State     State
	Tolerance float64
}

var _ Goal = StateGoal{}

// Sample returns a copy of the goal state.
func (g StateGoal) Sample(*rand.Rand) State { return g.State.Clone() }

// Distance is the configuration-space distance to the goal state.
func (g StateGoal) Distance(s State) float64 { return s.Distance(g.State) }

// Satisfied reports whether s is within Tolerance.
func (g StateGoal) Satisfied(s State) bool { return g.Distance(s) <= g.Tolerance }

// MaxSampleCount is 1.
func (g StateGoal) MaxSampleCount() int { return 1 }

// UnionSampler is the union of several goal regions. Sample cycles through
// the members round-robin; the cursor is owned by the sampler, so a
// UnionSampler must not be shared between concurrent plans.
type UnionSampler struct {
	goals []Goal
	next  int
}

var _ Goal = (*UnionSampler)(nil)

// NewUnionSampler returns a sampler over goals.
func NewUnionSampler(goals ...Goal) *UnionSampler {
	return &UnionSampler{goals: append([]Goal(nil), goals...)}
}

// Next returns the index of the member the next Sample will draw from.
func (u *UnionSampler) Next() int { return u.next }

// Sample draws from the current member and advances the cursor.
// An empty union returns nil.
func (u *UnionSampler) Sample(rng *rand.Rand) State {
	if len(u.goals) == 0 {
		return nil
	}
	g := u.goals[u.next]
	u.next = (u.next + 1) % len(u.goals)

	return g.Sample(rng)
}

// Distance is the minimum member distance.
func (u *UnionSampler) Distance(s State) float64 {
	best := math.Inf(1)
	for _, g := range u.goals {
		best = math.Min(best, g.Distance(s))
	}

	return best
}

// Satisfied reports whether any member is satisfied.
func (u *UnionSampler) Satisfied(s State) bool {
	for _, g := range u.goals {
		if g.Satisfied(s) {
			return true
		}
	}

	return false
}

// MaxSampleCount sums the members, saturating at math.MaxInt.
func (u *UnionSampler) MaxSampleCount() int {
	total := 0
	for _, g := range u.goals {
		c := g.MaxSampleCount()
		if c > math.MaxInt-total {
			return math.MaxInt
		}
		total += c
	}

	return total
}

// randomUnitVector draws a direction uniformly from the unit sphere.
func randomUnitVector(rng *rand.Rand) r3.Vector {
	for {
		v := r3.Vector{X: rng.NormFloat64(), Y: rng.NormFloat64(), Z: rng.NormFloat64()}
		if n := v.Norm(); n > 1e-9 {
			return v.Mul(1 / n)
		}
	}
}
