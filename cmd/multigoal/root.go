package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/config"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/logging"
)

// globals holds the persistent flags.
type globals struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "multigoal",
		Short: "Multi-goal motion planning for fruit picking",
		Long: `multigoal plans tours that visit every apple of a generated tree.

Configuration is read from a YAML file (--config) and MULTIGOAL_ environment
variables, e.g. MULTIGOAL_SHELL_PADDING=0.2 or MULTIGOAL_AT2OPT_TIME_BUDGET=5s.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Override log.level (debug, info, warn, error)")

	root.AddCommand(
		newPlanCmd(g),
		newExperimentCmd(g),
		newParamsCmd(g),
		newSummaryCmd(g),
	)

	return root
}

// load reads the configuration and builds the logger it describes.
func (g *globals) load() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, logger, nil
}
