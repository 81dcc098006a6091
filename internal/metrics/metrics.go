package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for analytics runs.
type Metrics struct {
	Runs           *prometheus.CounterVec
	SourceErrors   *prometheus.CounterVec
	PopulationSize prometheus.Histogram
	RunDuration    prometheus.Histogram
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// the service and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "analytics_runs_total",
			Help: "Completed demographic analytics runs by segment",
		}, []string{"segment"}),
		SourceErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "analytics_source_errors_total",
			Help: "Failed population fetches by segment",
		}, []string{"segment"}),
		PopulationSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "analytics_population_size",
			Help:    "Number of people per analytics run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "analytics_run_duration_seconds",
			Help:    "Fetch plus analysis time per run",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveRun records a successful run.
func (m *Metrics) ObserveRun(segment string, population int, took time.Duration) {
	m.Runs.WithLabelValues(segment).Inc()
	m.PopulationSize.Observe(float64(population))
	m.RunDuration.Observe(took.Seconds())
}

// IncrementSourceErrors counts a failed fetch.
func (m *Metrics) IncrementSourceErrors(segment string) {
	m.SourceErrors.WithLabelValues(segment).Inc()
}
