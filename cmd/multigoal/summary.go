package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/experiment"
)

func newSummaryCmd(g *globals) *cobra.Command {
	var database string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarise the runs stored in an experiment database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			if database == "" {
				cfg, _, err := g.load()
				if err != nil {
					return err
				}
				database = cfg.Experiment.Database
			}
			if database == "" {
				return fmt.Errorf("no database: set --database or experiment.database")
			}

			store, err := experiment.OpenStore(database, nil)
			if err != nil {
				return err
			}
			defer func() { err = multierr.Append(err, store.Close()) }()

			sums, err := store.Summaries(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-18s %5s %10s %9s %9s\n", "planner", "runs", "mean cost", "mean s", "visited")
			for _, s := range sums {
				fmt.Fprintf(w, "%-18s %5d %10.3f %9.2f %4d/%-4d\n", s.Planner, s.Runs, s.MeanCost, s.MeanSeconds, s.GoalsVisited, s.GoalsTotal)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&database, "database", "", "SQLite database (default: experiment.database)")

	return cmd
}
