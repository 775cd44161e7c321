package ptp_test

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/ptp"
)

const tol = 1e-12

var square = ptp.Bounds{Lo: planning.State{-2, -2}, Hi: planning.State{2, 2}}

// disc blocks the open disc of radius r around the origin.
func disc(r float64) ptp.StateChecker {
	return ptp.StateChecker{
		Valid:      func(s planning.State) bool { return s[0]*s[0]+s[1]*s[1] > r*r },
		Resolution: 0.005,
	}
}

func newPlanner(t *testing.T, v ptp.Validity) *ptp.Planner {
	t.Helper()
	opts := ptp.DefaultOptions()
	opts.Seed = 1
	p, err := ptp.New(square, v, opts, zaptest.NewLogger(t))
	require.NoError(t, err)

	return p
}

func TestPlanToState_LuckyShot(t *testing.T) {
	p := newPlanner(t, ptp.StateChecker{})
	a, b := planning.State{-1, -1}, planning.State{1, 0.5}

	path, ok := p.PlanToState(a, b)
	require.True(t, ok)
	assert.Equal(t, planning.Path{a, b}, path)
}

func TestPlanToState_AroundObstacle(t *testing.T) {
	p := newPlanner(t, disc(0.5))
	a, b := planning.State{-1.5, 0}, planning.State{1.5, 0}

	path, ok := p.PlanToState(a, b)
	require.True(t, ok)
	assert.True(t, path.Start().Equal(a, tol))
	assert.True(t, path.End().Equal(b, tol))
	assert.True(t, p.ValidPath(path))
	assert.Greater(t, path.Length(), 3.0)
}

func TestPlanToState_InvalidEndpoints(t *testing.T) {
	p := newPlanner(t, disc(0.5))

	_, ok := p.PlanToState(planning.State{0, 0}, planning.State{1.5, 0})
	assert.False(t, ok, "start inside the obstacle")
	_, ok = p.PlanToState(planning.State{-1.5, 0}, planning.State{3, 0})
	assert.False(t, ok, "goal outside the bounds")
}

func TestPlanToState_Unreachable(t *testing.T) {
	// A ring wall separates the centre from the outside.
	wall := ptp.StateChecker{
		Valid: func(s planning.State) bool {
			r2 := s[0]*s[0] + s[1]*s[1]
			return r2 < 0.5*0.5 || r2 > 1
		},
		Resolution: 0.005,
	}
	opts := ptp.DefaultOptions()
	opts.MaxIterations = 300
	p, err := ptp.New(square, wall, opts, nil)
	require.NoError(t, err)

	_, ok := p.PlanToState(planning.State{0, 0}, planning.State{1.5, 1.5})
	assert.False(t, ok)
}

func TestPlanToGoal(t *testing.T) {
	p := newPlanner(t, disc(0.5))
	goal := planning.SphereGoal{Center: r3.Vector{X: 1.5}, Radius: 0.2, Kin: planar{}}

	path, ok := p.PlanToGoal(planning.State{-1.5, 0}, goal)
	require.True(t, ok)
	assert.True(t, path.Start().Equal(planning.State{-1.5, 0}, tol))
	assert.True(t, goal.Satisfied(path.End()))
	assert.True(t, p.ValidPath(path))
}

func TestPlanToGoal_InsideObstacle(t *testing.T) {
	p := newPlanner(t, disc(0.5))
	goal := planning.StateGoal{State: planning.State{0.1, 0}}

	_, ok := p.PlanToGoal(planning.State{-1.5, 0}, goal)
	assert.False(t, ok)
}

func TestSimplify_KeepsEndpointsAndValidity(t *testing.T) {
	p := newPlanner(t, disc(0.5))
	zigzag := planning.Path{{-1.5, 0}, {-1.5, 1}, {-1, 1.2}, {0, 1.5}, {1, 1.2}, {1.5, 1}, {1.5, 0}}
	require.True(t, p.ValidPath(zigzag))

	short := p.Simplify(zigzag)
	assert.Equal(t, zigzag.Start(), short.Start())
	assert.Equal(t, zigzag.End(), short.End())
	assert.True(t, p.ValidPath(short))
	assert.LessOrEqual(t, short.Length(), zigzag.Length())
	assert.Len(t, zigzag, 7, "input is not modified")
}

func TestStateChecker_CheckMotion(t *testing.T) {
	c := disc(0.5)
	assert.True(t, c.CheckMotion(planning.State{-1, 1}, planning.State{1, 1}))
	assert.False(t, c.CheckMotion(planning.State{-1, 0}, planning.State{1, 0}))
	assert.False(t, c.CheckMotion(planning.State{-1, 0}, planning.State{1, 0, 0}))
}

func TestNew_Validation(t *testing.T) {
	_, err := ptp.New(ptp.Bounds{Lo: planning.State{0}, Hi: planning.State{0}}, ptp.StateChecker{}, ptp.DefaultOptions(), nil)
	assert.ErrorIs(t, err, ptp.ErrInvalidBounds)

	opts := ptp.DefaultOptions()
	opts.Step = 0
	_, err = ptp.New(square, ptp.StateChecker{}, opts, nil)
	assert.ErrorIs(t, err, ptp.ErrInvalidOptions)
}

func TestParameters(t *testing.T) {
	params := newPlanner(t, ptp.StateChecker{}).Parameters()
	assert.Equal(t, "rrt_connect", params["planner"])
	assert.Equal(t, ptp.DefaultMaxIterations, params["max_iterations"])
	assert.Equal(t, ptp.DefaultStep, params["step"])
}

// planar maps 2D states to the z=0 plane.
type planar struct{}

func (planar) EndEffector(s planning.State) r3.Vector { return r3.Vector{X: s[0], Y: s[1]} }
func (planar) StateAt(p, _ r3.Vector) planning.State  { return planning.State{p.X, p.Y} }
