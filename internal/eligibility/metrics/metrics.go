// Package metrics exposes Prometheus metrics for rule evaluation. Every
// method is safe to call on a nil *Metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EvaluationsTotal   *prometheus.CounterVec   // Evaluations by law and terminal state
	EvaluationDuration *prometheus.HistogramVec // Wall time of one law evaluation
	RuleFailuresTotal  *prometheus.CounterVec   // Unsatisfied rule results by law
	EvaluationErrors   *prometheus.CounterVec   // Configuration and lookup errors by law
}

// New registers the metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the metrics with reg; tests pass a fresh
// prometheus.NewRegistry().
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EvaluationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalcheck_evaluations_total",
			Help: "Total number of law evaluations by terminal state",
		}, []string{"law", "state"}),
		EvaluationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "legalcheck_evaluation_duration_seconds",
			Help:    "Duration of one law evaluation",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"law"}),
		RuleFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalcheck_rule_failures_total",
			Help: "Total number of unsatisfied rule results by law",
		}, []string{"law"}),
		EvaluationErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalcheck_evaluation_errors_total",
			Help: "Total number of evaluations rejected before any rule ran",
		}, []string{"law"}),
	}
}

// ObserveEvaluation records one finished evaluation.
func (m *Metrics) ObserveEvaluation(law, state string, failures int, took time.Duration) {
	if m == nil {
		return
	}
	m.EvaluationsTotal.WithLabelValues(law, state).Inc()
	m.EvaluationDuration.WithLabelValues(law).Observe(took.Seconds())
	if failures > 0 {
		m.RuleFailuresTotal.WithLabelValues(law).Add(float64(failures))
	}
}

func (m *Metrics) IncEvaluationError(law string) {
	if m == nil {
		return
	}
	m.EvaluationErrors.WithLabelValues(law).Inc()
}
