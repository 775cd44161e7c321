package experiment

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus collectors updated after every run.
//
// Metrics:
//   - multigoal_runs_total{planner,status}
//   - multigoal_goal_failures_total{planner}: goals left out of a tour
//   - multigoal_tour_cost{planner}
//   - multigoal_planning_seconds{planner}
type Metrics struct {
	RunsTotal         *prometheus.CounterVec
	GoalFailuresTotal *prometheus.CounterVec
	TourCost          *prometheus.HistogramVec
	PlanningSeconds   *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg. Use a fresh
// prometheus.NewRegistry per Runner in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		RunsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multigoal_runs_total",
				Help: "Total number of planner runs by outcome",
			},
			[]string{"planner", "status"},
		),
		GoalFailuresTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "multigoal_goal_failures_total",
				Help: "Total number of goals dropped from tours",
			},
			[]string{"planner"},
		),
		TourCost: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "multigoal_tour_cost",
				Help:    "Objective cost of completed tours",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			},
			[]string{"planner"},
		),
		PlanningSeconds: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "multigoal_planning_seconds",
				Help:    "Wall time of a single Plan call in seconds",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
			},
			[]string{"planner"},
		),
	}
}

func (m *Metrics) observe(r Record) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(r.Planner, r.Status).Inc()
	m.GoalFailuresTotal.WithLabelValues(r.Planner).Add(float64(r.Failed()))
	m.PlanningSeconds.WithLabelValues(r.Planner).Observe(r.Seconds)
	if r.Status == StatusOK {
		m.TourCost.WithLabelValues(r.Planner).Observe(r.Cost)
	}
}
