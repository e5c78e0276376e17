// Package metrics holds the Prometheus collectors for placement runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

const namespace = "placement"

// Outcome labels for RunsTotal.
const (
	OutcomeCompleted = "completed"
	OutcomeInvalid   = "invalid"
	OutcomeFailed    = "failed"
)

type Metrics struct {
	RunsTotal          *prometheus.CounterVec
	RunDuration        prometheus.Histogram
	IndividualsTotal   *prometheus.CounterVec
	DisplacementsTotal prometheus.Counter
}

// New registers the collectors with reg. Pass prometheus.DefaultRegisterer to
// expose them on the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Placement runs by outcome.",
		}, []string{"outcome"}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of successful placement runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		IndividualsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "individuals_total",
			Help:      "Individuals processed by eligibility status.",
		}, []string{"status"}),
		DisplacementsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "displacements_total",
			Help:      "Individuals placed somewhere other than their top choice because it was full.",
		}),
	}
}

// ObserveRun records a completed run.
func (m *Metrics) ObserveRun(res *vikor.Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(OutcomeCompleted).Inc()
	m.RunDuration.Observe(elapsed.Seconds())
	m.IndividualsTotal.WithLabelValues("qualified").Add(float64(res.Metadata.QualifiedCount))
	m.IndividualsTotal.WithLabelValues("disqualified").Add(float64(res.Metadata.DisqualifiedCount))
	m.DisplacementsTotal.Add(float64(res.Metadata.DisplacedCount))
}

// ObserveFailure records a run that produced no result.
func (m *Metrics) ObserveFailure(outcome string) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
}
