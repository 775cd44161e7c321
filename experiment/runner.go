package experiment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/config"
	"github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/planning"
)

const tracerName = "github.com/werner291/Multigoal-Agricultural-Motion-Planning-Library/experiment"

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l.Named("experiment")
		}
	}
}

// WithMetrics records every run in m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithTracerProvider traces runs with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Runner) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithStore persists every record as soon as its run finishes.
func WithStore(s *Store) Option {
	return func(r *Runner) { r.store = s }
}

// Runner executes a batch of runs.
type Runner struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *Metrics
	tracer  trace.Tracer
	store   *Store
}

// NewRunner validates cfg and returns a Runner for it.
func NewRunner(cfg config.Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:    cfg,
		logger: zap.NewNop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, o := range opts {
		o(r)
	}

	return r, nil
}

// Run plans every configured planner on Runs scenes, seeded
// Scene.Seed, Scene.Seed+1, and so on. Records are ordered by run, then by
// the configured planner order. On cancellation or a store failure the
// records finished so far are returned with the error.
func (r *Runner) Run(ctx context.Context) ([]Record, error) {
	planners := r.cfg.Experiment.Planners
	records := make([]Record, r.cfg.Experiment.Runs*len(planners))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Experiment.Parallelism)
	for run := 0; run < r.cfg.Experiment.Runs; run++ {
		for j, name := range planners {
			i := run*len(planners) + j
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				rec := r.RunOne(gctx, run, name)
				records[i] = rec
				if r.store != nil {
					return r.store.Insert(gctx, rec)
				}

				return nil
			})
		}
	}
	err := g.Wait()

	done := records[:0]
	for _, rec := range records {
		if rec.ID != "" {
			done = append(done, rec)
		}
	}
	if err != nil {
		return done, err
	}
	r.logger.Info("experiment finished", zap.Int("records", len(done)))

	return done, nil
}

// RunOne plans with the named planner on the scene of run. Failures are
// reported on the Record.
func (r *Runner) RunOne(ctx context.Context, run int, name string) Record {
	seed := r.cfg.Scene.Seed + int64(run)
	rec := Record{
		ID:        uuid.NewString(),
		Run:       run,
		Seed:      seed,
		Planner:   name,
		Visited:   []int{},
		StartedAt: time.Now().UTC(),
	}
	logger := r.logger.With(zap.String("run_id", rec.ID), zap.String("planner", name), zap.Int64("seed", seed))

	ctx, span := r.tracer.Start(ctx, "experiment.run", trace.WithAttributes(
		attribute.String("run.id", rec.ID),
		attribute.String("planner", name),
		attribute.Int64("seed", seed),
	))
	defer span.End()

	if err := r.execute(ctx, &rec, logger); err != nil {
		rec.Status = StatusError
		rec.Error = err.Error()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("run failed", zap.Error(err))
	} else {
		span.SetStatus(codes.Ok, "")
		logger.Info("run finished",
			zap.String("status", rec.Status),
			zap.Ints("visited", rec.Visited),
			zap.Int("goals", rec.Goals),
			zap.Float64("cost", rec.Cost),
			zap.Float64("seconds", rec.Seconds),
		)
	}
	span.SetAttributes(
		attribute.String("status", rec.Status),
		attribute.Int("goals", rec.Goals),
		attribute.Int("visited", len(rec.Visited)),
		attribute.Float64("cost", rec.Cost),
	)
	r.metrics.observe(rec)

	return rec
}

func (r *Runner) execute(ctx context.Context, rec *Record, logger *zap.Logger) error {
	setup, err := NewSetup(r.cfg, rec.Seed, logger)
	if err != nil {
		return err
	}
	rec.Goals = len(setup.Goals)

	planner, err := NewPlanner(rec.Planner, r.cfg, setup, logger)
	if err != nil {
		return err
	}
	rec.Parameters = planning.Params{}.
		Merge("", planner.Parameters()).
		Merge("scene", setup.Scene.Describe())

	t0 := time.Now()
	res, err := planner.Plan(ctx, setup.PTP, setup.Start, setup.Goals)
	rec.Seconds = time.Since(t0).Seconds()
	if err != nil {
		return err
	}
	if err := CheckTour(res, setup.Start, setup.Goals); err != nil {
		return err
	}

	rec.Visited = res.Goals()
	rec.Length = res.Length()
	rec.Cost = res.Cost(setup.Objective)
	rec.Status = StatusOK
	if res.Empty() {
		rec.Status = StatusEmpty
	}

	return nil
}
