package planning_test

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

func TestPathBasics(t *testing.T) {
	p := planning.Path{{0, 0}, {3, 0}, {3, 4}}
	assert.InDelta(t, 7.0, p.Length(), 1e-12)
	assert.Equal(t, planning.State{0, 0}, p.Start())
	assert.Equal(t, planning.State{3, 4}, p.End())
	assert.Equal(t, planning.Path{{3, 4}, {3, 0}, {0, 0}}, p.Reversed())

	var empty planning.Path
	assert.True(t, empty.Empty())
	assert.Nil(t, empty.Start())
	assert.Nil(t, empty.End())
}

func TestPathConcatDropsJoinDuplicate(t *testing.T) {
	a := planning.Path{{0}, {1}}
	b := planning.Path{{1}, {2}}
	c := planning.Path{{5}}

	got := a.Concat(b, nil, c)
	assert.Equal(t, planning.Path{{0}, {1}, {2}, {5}}, got)
	assert.Len(t, a, 2, "receiver must not grow")
}

func TestPathSubdivide(t *testing.T) {
	p := planning.Path{{0}, {1}}
	got := p.Subdivide(0.3)
	require.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Distance(got[i]), 0.3+1e-12)
	}
	assert.Equal(t, p.End(), got.End())
}

func TestStateHelpers(t *testing.T) {
	s := planning.State{1, 2}
	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 1.0, s[0])
	assert.True(t, s.Equal(planning.State{1, 2 + 1e-10}, 1e-9))
	assert.False(t, s.Equal(planning.State{1}, 1))
	assert.True(t, math.IsInf(s.Distance(planning.State{1}), 1))
	assert.Equal(t, planning.State{0.5, 1}, planning.Interpolate(planning.State{0, 0}, s, 0.5))
}

func TestResultValidateChaining(t *testing.T) {
	ok := planning.Result{
		{Goal: 0, Path: planning.Path{{0}, {1}}},
		{Goal: 2, Path: planning.Path{{1}, {4}}},
	}
	require.NoError(t, ok.Validate(1e-9))
	assert.Equal(t, []int{0, 2}, ok.Goals())
	assert.InDelta(t, 4.0, ok.Length(), 1e-12)
	assert.InDelta(t, 4.0, ok.Cost(planning.PathLength{}), 1e-12)
	assert.Equal(t, planning.Path{{0}, {1}, {4}}, ok.Path())

	broken := planning.Result{
		{Goal: 0, Path: planning.Path{{0}, {1}}},
		{Goal: 1, Path: planning.Path{{2}, {4}}},
	}
	assert.ErrorIs(t, broken.Validate(1e-9), planning.ErrBrokenChain)

	assert.True(t, planning.Result{}.Empty())
	assert.NoError(t, planning.Result{}.Validate(0))
}

func TestSphereGoalSamplesSatisfy(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := planning.SphereGoal{Center: r3.Vector{X: 1, Y: 2, Z: 3}, Radius: 0.5, Kin: planning.PointRobot{}}
	for i := 0; i < 100; i++ {
		s := g.Sample(rng)
		require.True(t, g.Satisfied(s))
		require.Zero(t, g.Distance(s))
	}
	assert.InDelta(t, 1.5, g.Distance(planning.State{1, 2, 5}), 1e-12)
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, g.Target())
}

func TestUnionSamplerRoundRobin(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := planning.StateGoal{State: planning.State{0}}
	b := planning.StateGoal{State: planning.State{10}}
	u := planning.NewUnionSampler(a, b)

	assert.Equal(t, planning.State{0}, u.Sample(rng))
	assert.Equal(t, 1, u.Next())
	assert.Equal(t, planning.State{10}, u.Sample(rng))
	assert.Equal(t, planning.State{0}, u.Sample(rng))

	assert.InDelta(t, 1.0, u.Distance(planning.State{9}), 1e-12)
	assert.True(t, u.Satisfied(planning.State{10}))
	assert.False(t, u.Satisfied(planning.State{5}))
	assert.Equal(t, 2, u.MaxSampleCount())

	inf := planning.NewUnionSampler(planning.SphereGoal{Kin: planning.PointRobot{}}, a)
	assert.Equal(t, math.MaxInt, inf.MaxSampleCount())
	assert.Nil(t, planning.NewUnionSampler().Sample(rng))
}

func TestParamsMerge(t *testing.T) {
	p := planning.Params{"planner": "shell"}
	p.Merge("ptp", planning.Params{"max_iterations": 100})
	p = p.Merge("", planning.Params{"seed": 3})

	assert.Equal(t, []string{"planner", "ptp.max_iterations", "seed"}, p.Keys())

	raw, err := p.JSON()
	require.NoError(t, err)
	var back map[string]any
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, float64(100), back["ptp.max_iterations"])

	var nilParams planning.Params
	assert.Len(t, nilParams.Merge("x", planning.Params{"a": 1}), 1)
}

func TestPointRobotKinematics(t *testing.T) {
	var k planning.PointRobot
	s := k.StateAt(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{Z: 1})
	assert.Equal(t, planning.State{1, 2, 3}, s)
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, k.EndEffector(s))
	assert.Equal(t, r3.Vector{X: 1}, k.EndEffector(planning.State{1}))

	obj := planning.PathLength{Clearance: func(s planning.State) float64 { return s[0] }, ClearanceWeight: 2}
	assert.Equal(t, -4.0, obj.StateCost(planning.State{2}))
	assert.Zero(t, planning.PathLength{}.StateCost(planning.State{2}))
}
