package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/experiment"
)

func newParamsCmd(g *globals) *cobra.Command {
	var planner string
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the parameter report of a configured planner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			setup, err := experiment.NewSetup(*cfg, cfg.Scene.Seed, logger)
			if err != nil {
				return err
			}
			p, err := experiment.NewPlanner(planner, *cfg, setup, logger)
			if err != nil {
				return err
			}

			params := p.Parameters()
			for _, k := range params.Keys() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%v\n", k, params[k])
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&planner, "planner", experiment.Planners()[0], "Planner name")

	return cmd
}
