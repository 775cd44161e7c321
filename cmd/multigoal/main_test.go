package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/approach"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/experiment"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/shellpath"
)

// smallScene keeps every command fast.
func smallScene(t *testing.T) {
	t.Helper()
	t.Setenv("MULTIGOAL_LOG_LEVEL", "error")
	t.Setenv("MULTIGOAL_SCENE_LEAVES", "10")
	t.Setenv("MULTIGOAL_SCENE_APPLES", "2")
	t.Setenv("MULTIGOAL_SCENE_MESH_CELLS", "20")
	t.Setenv("MULTIGOAL_PTP_TIME_LIMIT", "200ms")
	t.Setenv("MULTIGOAL_AT2OPT_SAMPLES_PER_GOAL", "4")
	t.Setenv("MULTIGOAL_AT2OPT_TIME_BUDGET", "200ms")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func TestParamsCmd(t *testing.T) {
	smallScene(t)

	out, err := execute(t, "params")
	require.NoError(t, err)
	assert.Contains(t, out, "planner="+shellpath.Name+"\n")
	assert.Contains(t, out, "ptp.planner=rrt_connect\n")

	out, err = execute(t, "params", "--planner", approach.Name)
	require.NoError(t, err)
	assert.Contains(t, out, "samples_per_goal=4\n")
}

func TestPlanCmd(t *testing.T) {
	smallScene(t)

	out, err := execute(t, "plan", "--planner", approach.Name, "--seed", "5")
	require.NoError(t, err)

	var doc planOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, int64(5), doc.Record.Seed)
	assert.Equal(t, 2, doc.Record.Goals)
	assert.Len(t, doc.Tour, len(doc.Record.Visited))
	assert.Equal(t, doc.Tour.Goals(), doc.Record.Visited)
}

func TestPlanCmd_UnknownPlanner(t *testing.T) {
	smallScene(t)

	_, err := execute(t, "plan", "--planner", "annealing")
	assert.ErrorIs(t, err, experiment.ErrUnknownPlanner)
}

func TestExperimentAndSummaryCmds(t *testing.T) {
	smallScene(t)
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")
	t.Setenv("MULTIGOAL_EXPERIMENT_OUTPUT", filepath.Join(dir, "runs.json"))
	t.Setenv("MULTIGOAL_EXPERIMENT_DATABASE", db)

	out, err := execute(t, "experiment")
	require.NoError(t, err)
	assert.Contains(t, out, shellpath.Name)
	assert.Contains(t, out, approach.Name)

	f, err := os.Open(filepath.Join(dir, "runs.json"))
	require.NoError(t, err)
	defer f.Close()
	records, err := experiment.ReadJSON(f)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	out, err = execute(t, "summary", "--database", db)
	require.NoError(t, err)
	assert.Contains(t, out, "mean cost")
	assert.Contains(t, out, shellpath.Name)
	assert.Contains(t, out, approach.Name)
}

func TestBadConfig(t *testing.T) {
	_, err := execute(t, "params", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
