package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveEvaluation(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.ObserveEvaluation("AufenthG", "blocked", 1, time.Millisecond)
	m.ObserveEvaluation("AufenthG", "completed", 0, time.Millisecond)
	m.ObserveEvaluation("AufenthG", "completed", 3, time.Millisecond)
	m.IncEvaluationError("BGB")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EvaluationsTotal.WithLabelValues("AufenthG", "blocked")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.EvaluationsTotal.WithLabelValues("AufenthG", "completed")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.RuleFailuresTotal.WithLabelValues("AufenthG")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EvaluationErrors.WithLabelValues("BGB")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.EvaluationDuration))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveEvaluation("StAG", "completed", 2, time.Second)
		m.IncEvaluationError("StAG")
	})
}
