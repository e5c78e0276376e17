package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/MikeSquared-Agency/Placement/internal/vikor"
)

func TestObserveRun(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveRun(&vikor.Result{Metadata: vikor.RunMetadata{
		QualifiedCount:    4,
		DisqualifiedCount: 3,
		DisplacedCount:    2,
	}}, 20*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(OutcomeCompleted)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.IndividualsTotal.WithLabelValues("qualified")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.IndividualsTotal.WithLabelValues("disqualified")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DisplacementsTotal))
}

func TestObserveFailure(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveFailure(OutcomeInvalid)
	m.ObserveFailure(OutcomeInvalid)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(OutcomeFailed)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRun(&vikor.Result{}, time.Second)
	m.ObserveFailure(OutcomeFailed)
}
