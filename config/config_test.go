package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/approach"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/config"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/shellpath"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/tsp"
)

const sample = `
log:
  level: debug
  format: console
scene:
  seed: 7
  apples: 4
ptp:
  time_limit: 250ms
shell:
  padding: 0.25
  optimize_exit: true
at2opt:
  samples_per_goal: 20
  time_budget: 3s
tsp:
  algo: 2opt
experiment:
  runs: 3
  parallelism: 2
  planners: [AT2Opt]
  database: runs.db
`

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{shellpath.Name, approach.Name}, cfg.Experiment.Planners)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "multigoal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, int64(7), cfg.Scene.Seed)
	assert.Equal(t, 4, cfg.Scene.Apples)
	assert.Equal(t, config.Default().Scene.Leaves, cfg.Scene.Leaves, "unset keys keep defaults")
	assert.Equal(t, 250*time.Millisecond, cfg.PTP.TimeLimit)
	assert.InDelta(t, 0.25, cfg.Shell.Padding, 1e-12)
	assert.True(t, cfg.Shell.OptimizeExit)
	assert.Equal(t, 20, cfg.AT2Opt.SamplesPerGoal)
	assert.Equal(t, 3*time.Second, cfg.AT2Opt.TimeBudget)
	assert.Equal(t, []string{approach.Name}, cfg.Experiment.Planners)
	assert.Equal(t, "runs.db", cfg.Experiment.Database)

	opts, err := cfg.TSPOptions()
	require.NoError(t, err)
	assert.Equal(t, tsp.NearestNeighborTwoOpt, opts.Algo)
	assert.Equal(t, int64(7), opts.Seed)
	assert.Equal(t, int64(7), cfg.AT2OptOptions().Seed)
	assert.Equal(t, int64(11), cfg.PTPOptions(11).Seed)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParse_EnvOverridesFile(t *testing.T) {
	t.Setenv("MULTIGOAL_SHELL_PADDING", "0.4")
	t.Setenv("MULTIGOAL_AT2OPT_SAMPLES_PER_GOAL", "8")
	t.Setenv("MULTIGOAL_EXPERIMENT_PARALLELISM", "6")

	cfg, err := config.Parse([]byte(sample))
	require.NoError(t, err)

	assert.InDelta(t, 0.4, cfg.Shell.Padding, 1e-12)
	assert.Equal(t, 8, cfg.AT2Opt.SamplesPerGoal)
	assert.Equal(t, 6, cfg.Experiment.Parallelism)
	assert.Equal(t, 3, cfg.Experiment.Runs)
}

func TestParse_BadYAML(t *testing.T) {
	_, err := config.Parse([]byte("shell: [unclosed"))
	assert.Error(t, err)
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Format = "xml"
	cfg.Shell.Padding = -1
	cfg.TSP.Algo = "annealing"
	cfg.Experiment.Runs = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)
	assert.Len(t, multierr.Errors(err), 4)

	_, err = config.Parse([]byte("experiment:\n  parallelism: 0\n"))
	assert.ErrorIs(t, err, config.ErrInvalid)
}
