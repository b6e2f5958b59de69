package request

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level collectors shared by every route.
type Metrics struct {
	EndpointLatency *prometheus.HistogramVec
	Responses       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer lets tests and routers use a private registry.
func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "legalcheck_http_request_duration_seconds",
			Help:    "Latency of HTTP endpoints in seconds, labelled by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		Responses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "legalcheck_http_responses_total",
			Help: "HTTP responses by route pattern, method and status class (2xx, 4xx, ...)",
		}, []string{"endpoint", "method", "class"}),
	}
}

func (m *Metrics) ObserveEndpointLatency(route string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.EndpointLatency.WithLabelValues(route).Observe(durationSeconds)
}

// CountResponse buckets status into its class so 404 floods on random
// paths cannot grow the label set.
func (m *Metrics) CountResponse(route, method string, status int) {
	if m == nil {
		return
	}
	m.Responses.WithLabelValues(route, method, strconv.Itoa(status/100)+"xx").Inc()
}
