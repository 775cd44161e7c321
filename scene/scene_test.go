package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/scene"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/shell"
)

func smallConfig() scene.Config {
	cfg := scene.DefaultConfig()
	cfg.Leaves = 15
	cfg.Apples = 5

	return cfg
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := scene.Generate(smallConfig())
	require.NoError(t, err)
	b, err := scene.Generate(smallConfig())
	require.NoError(t, err)

	assert.Equal(t, a.Leaves(), b.Leaves())
	assert.Equal(t, a.Apples(), b.Apples())
	assert.Len(t, a.Leaves(), 15)
	assert.Len(t, a.Apples(), 5)
}

func TestGenerate_ApplesInFreeSpace(t *testing.T) {
	cfg := smallConfig()
	s, err := scene.Generate(cfg)
	require.NoError(t, err)

	for _, a := range s.Apples() {
		assert.Greater(t, s.Distance(a), cfg.AppleRadius+cfg.Clearance)
		assert.LessOrEqual(t, a.Distance(s.CanopyCentre()), cfg.CanopyRadius+1e-9)
	}
	for _, l := range s.Leaves() {
		assert.Less(t, s.Distance(l), 0.0)
	}
}

func TestValidityAndGoals(t *testing.T) {
	s, err := scene.Generate(smallConfig())
	require.NoError(t, err)
	kin := planning.PointRobot{}
	v := s.Validity(kin)

	start := s.Start(0.5)
	assert.True(t, v.IsValid(start))
	assert.True(t, s.Bounds(0.5).Contains(start))

	leaf := s.Leaves()[0]
	assert.False(t, v.IsValid(planning.State{leaf.X, leaf.Y, leaf.Z}))

	goals := s.Goals(kin)
	require.Len(t, goals, len(s.Apples()))
	for i, g := range goals {
		a := s.Apples()[i]
		assert.True(t, g.Satisfied(planning.State{a.X, a.Y, a.Z}))
	}

	assert.Greater(t, s.Clearance(kin)(start), 0.0)
}

func TestObstacleVertices_WrapCanopy(t *testing.T) {
	cfg := smallConfig()
	s, err := scene.Generate(cfg)
	require.NoError(t, err)

	verts, err := s.ObstacleVertices()
	require.NoError(t, err)
	require.NotEmpty(t, verts)

	cell := 2 * cfg.CanopyRadius / float64(cfg.MeshCells)
	for _, v := range verts {
		assert.Less(t, s.Distance(v), cell)
	}

	hull, err := shell.BuildShell(verts, 0.1)
	require.NoError(t, err)
	for _, l := range s.Leaves() {
		assert.True(t, hull.Contains(l))
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := scene.DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.LeafRadius = 0
	assert.ErrorIs(t, cfg.Validate(), scene.ErrInvalidConfig)

	cfg = scene.DefaultConfig()
	cfg.MeshCells = 0
	_, err := scene.Generate(cfg)
	assert.ErrorIs(t, err, scene.ErrInvalidConfig)
}

func TestDescribe(t *testing.T) {
	s, err := scene.Generate(smallConfig())
	require.NoError(t, err)
	d := s.Describe()
	assert.Equal(t, 15, d["leaves"])
	assert.Equal(t, 5, d["apples"])
}
