package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/experiment"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/shellpath"
)

// planOutput is the JSON document printed by plan.
type planOutput struct {
	Record experiment.Record `json:"record"`
	Tour   planning.Result   `json:"tour"`
}

func newPlanCmd(g *globals) *cobra.Command {
	var (
		planner string
		seed    int64
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a single tour and print it as JSON",
		Long: `Plan a tour over the scene generated from --seed and print the run record
together with every path segment.

Examples:
  multigoal plan
  multigoal plan --planner AT2Opt --seed 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Scene.Seed
			}

			setup, err := experiment.NewSetup(*cfg, seed, logger)
			if err != nil {
				return err
			}
			p, err := experiment.NewPlanner(planner, *cfg, setup, logger)
			if err != nil {
				return err
			}
			res, err := p.Plan(cmd.Context(), setup.PTP, setup.Start, setup.Goals)
			if err != nil {
				return err
			}
			if err := experiment.CheckTour(res, setup.Start, setup.Goals); err != nil {
				return err
			}
			logger.Info("tour planned", zap.Ints("visited", res.Goals()), zap.Int("goals", len(setup.Goals)))

			out := planOutput{
				Record: experiment.Record{
					Seed:       seed,
					Planner:    planner,
					Status:     statusOf(res),
					Goals:      len(setup.Goals),
					Visited:    res.Goals(),
					Length:     res.Length(),
					Cost:       res.Cost(setup.Objective),
					Parameters: p.Parameters().Merge("scene", setup.Scene.Describe()),
				},
				Tour: res,
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("failed to encode tour: %w", err)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&planner, "planner", shellpath.Name, "Planner name")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Scene seed (default: scene.seed)")

	return cmd
}

func statusOf(res planning.Result) string {
	if res.Empty() {
		return experiment.StatusEmpty
	}

	return experiment.StatusOK
}
