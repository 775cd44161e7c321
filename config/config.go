// Package config loads the settings shared by the multigoal tools.
//
// Precedence, highest first:
//  1. Environment variables prefixed with MULTIGOAL_
//  2. A YAML file
//  3. Default()
package config

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/approach"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/logging"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/ptp"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/scene"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/shellpath"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/tsp"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete configuration.
type Config struct {
	Log        logging.Config   `koanf:"log"`
	Scene      scene.Config     `koanf:"scene"`
	PTP        PTPConfig        `koanf:"ptp"`
	Shell      ShellConfig      `koanf:"shell"`
	AT2Opt     AT2OptConfig     `koanf:"at2opt"`
	TSP        TSPConfig        `koanf:"tsp"`
	Experiment ExperimentConfig `koanf:"experiment"`
}

// PTPConfig configures the point-to-point planner.
type PTPConfig struct {
	TimeLimit          time.Duration `koanf:"time_limit"`
	MaxIterations      int           `koanf:"max_iterations"`
	Step               float64       `koanf:"step"`
	ShortcutIterations int           `koanf:"shortcut_iterations"`
	GoalSamples        int           `koanf:"goal_samples"`

	// Margin grows the scene box into the configuration bounds.
	Margin float64 `koanf:"margin"`
}

// ShellConfig configures the shell planner.
type ShellConfig struct {
	Padding      float64 `koanf:"padding"`
	OptimizeExit bool    `koanf:"optimize_exit"`
	ExitSamples  int     `koanf:"exit_samples"`
	ExitStddev   float64 `koanf:"exit_stddev"`
}

// AT2OptConfig configures the approach-table 2-opt planner.
type AT2OptConfig struct {
	SamplesPerGoal int           `koanf:"samples_per_goal"`
	KeepBest       int           `koanf:"keep_best"`
	TimeBudget     time.Duration `koanf:"time_budget"`
	MaxRounds      int           `koanf:"max_rounds"`
}

// TSPConfig configures goal ordering.
type TSPConfig struct {
	Algo      string `koanf:"algo"`
	ExactMaxN int    `koanf:"exact_max_n"`
	Restarts  int    `koanf:"restarts"`
}

// ExperimentConfig configures batch runs.
type ExperimentConfig struct {
	// Runs is the number of scenes, each planned by every planner.
	Runs        int      `koanf:"runs"`
	Parallelism int      `koanf:"parallelism"`
	Planners    []string `koanf:"planners"`

	// Output is a JSON file; empty disables it.
	Output string `koanf:"output"`

	// Database is a sqlite file; empty disables it.
	Database string `koanf:"database"`
}

// Default returns the built-in configuration.
func Default() Config {
	po := ptp.DefaultOptions()
	ao := approach.DefaultOptions()
	to := tsp.DefaultOptions()

	return Config{
		Log:   logging.DefaultConfig(),
		Scene: scene.DefaultConfig(),
		PTP: PTPConfig{
			TimeLimit:          po.TimeLimit,
			MaxIterations:      po.MaxIterations,
			Step:               po.Step,
			ShortcutIterations: po.ShortcutIterations,
			GoalSamples:        po.GoalSamples,
			Margin:             0.5,
		},
		Shell: ShellConfig{
			Padding:      0.1,
			OptimizeExit: false,
			ExitSamples:  shellpath.DefaultExitSamples,
			ExitStddev:   shellpath.DefaultExitStddev,
		},
		AT2Opt: AT2OptConfig{
			SamplesPerGoal: ao.SamplesPerGoal,
			KeepBest:       ao.KeepBest,
			TimeBudget:     ao.TimeBudget,
			MaxRounds:      ao.MaxRounds,
		},
		TSP: TSPConfig{
			Algo:      to.Algo.String(),
			ExactMaxN: to.ExactMaxN,
			Restarts:  to.Restarts,
		},
		Experiment: ExperimentConfig{
			Runs:        1,
			Parallelism: 1,
			Planners:    []string{shellpath.Name, approach.Name},
		},
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var err error
	if e := c.Log.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("%w: log: %w", ErrInvalid, e))
	}
	if e := c.Scene.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("%w: scene: %w", ErrInvalid, e))
	}
	if e := c.PTPOptions(c.Scene.Seed).Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("%w: ptp: %w", ErrInvalid, e))
	}
	if c.PTP.Margin < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: ptp.margin %g < 0", ErrInvalid, c.PTP.Margin))
	}
	if c.Shell.Padding < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: shell.padding %g < 0", ErrInvalid, c.Shell.Padding))
	}
	if c.Shell.ExitSamples < 0 || c.Shell.ExitStddev < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: shell exit sampling must be non-negative", ErrInvalid))
	}
	if e := c.AT2OptOptions().Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("%w: at2opt: %w", ErrInvalid, e))
	}
	if _, e := c.TSPOptions(); e != nil {
		err = multierr.Append(err, fmt.Errorf("%w: tsp: %w", ErrInvalid, e))
	}
	if c.Experiment.Runs <= 0 || c.Experiment.Parallelism <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: experiment runs %d, parallelism %d", ErrInvalid, c.Experiment.Runs, c.Experiment.Parallelism))
	}
	if len(c.Experiment.Planners) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: experiment.planners is empty", ErrInvalid))
	}

	return err
}

// PTPOptions returns the point-to-point planner options seeded with seed.
func (c Config) PTPOptions(seed int64) ptp.Options {
	return ptp.Options{
		TimeLimit:          c.PTP.TimeLimit,
		MaxIterations:      c.PTP.MaxIterations,
		Step:               c.PTP.Step,
		ShortcutIterations: c.PTP.ShortcutIterations,
		GoalSamples:        c.PTP.GoalSamples,
		Seed:               seed,
	}
}

// AT2OptOptions returns the approach planner options; Seed is the scene seed.
func (c Config) AT2OptOptions() approach.Options {
	o := approach.DefaultOptions()
	o.SamplesPerGoal = c.AT2Opt.SamplesPerGoal
	o.KeepBest = c.AT2Opt.KeepBest
	o.TimeBudget = c.AT2Opt.TimeBudget
	o.MaxRounds = c.AT2Opt.MaxRounds
	o.Seed = c.Scene.Seed

	return o
}

// TSPOptions returns the ordering options; Seed is the scene seed.
func (c Config) TSPOptions() (tsp.Options, error) {
	algo, err := tsp.ParseAlgorithm(c.TSP.Algo)
	if err != nil {
		return tsp.Options{}, err
	}
	o := tsp.DefaultOptions()
	o.Algo = algo
	o.ExactMaxN = c.TSP.ExactMaxN
	o.Restarts = c.TSP.Restarts
	o.Seed = c.Scene.Seed
	if o.ExactMaxN < 0 || o.ExactMaxN > tsp.MaxExactN || o.Restarts < 0 {
		return tsp.Options{}, fmt.Errorf("%w: exact_max_n %d, restarts %d", tsp.ErrDimensionMismatch, o.ExactMaxN, o.Restarts)
	}

	return o, nil
}
