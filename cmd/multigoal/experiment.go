package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/experiment"
)

func newExperimentCmd(g *globals) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Run every configured planner on a batch of scenes",
		Long: `Run experiment.planners on experiment.runs scenes. Records are written to
experiment.output as JSON and to experiment.database as SQLite when set.

Examples:
  multigoal experiment --config orchard.yaml
  MULTIGOAL_EXPERIMENT_RUNS=20 multigoal experiment --metrics-addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, logger, err := g.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			reg := prometheus.NewRegistry()
			opts := []experiment.Option{
				experiment.WithLogger(logger),
				experiment.WithMetrics(experiment.NewMetrics(reg)),
			}

			if metricsAddr != "" {
				srv := &http.Server{
					Addr:              metricsAddr,
					Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics server failed", zap.Error(err))
					}
				}()
				defer func() {
					ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					err = multierr.Append(err, srv.Shutdown(ctx))
				}()
			}

			var store *experiment.Store
			if cfg.Experiment.Database != "" {
				store, err = experiment.OpenStore(cfg.Experiment.Database, logger)
				if err != nil {
					return err
				}
				defer func() { err = multierr.Append(err, store.Close()) }()
				opts = append(opts, experiment.WithStore(store))
			}

			runner, err := experiment.NewRunner(*cfg, opts...)
			if err != nil {
				return err
			}
			records, runErr := runner.Run(cmd.Context())
			if cfg.Experiment.Output != "" {
				runErr = multierr.Append(runErr, experiment.WriteJSONFile(cfg.Experiment.Output, records))
			}
			if runErr != nil {
				return runErr
			}

			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "run %d %-18s %-6s visited %d/%d cost %.3f in %.2fs\n",
					r.Run, r.Planner, r.Status, len(r.Visited), r.Goals, r.Cost, r.Seconds)
			}

			return nil
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while running")

	return cmd
}
