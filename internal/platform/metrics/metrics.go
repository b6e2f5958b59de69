package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the account and document counters of the application.
// Evaluation metrics live with the eligibility package.
type Metrics struct {
	UsersCreated      prometheus.Counter
	LoginsTotal       prometheus.Counter
	AuthFailures      prometheus.Counter
	PersonsCreated    prometheus.Counter
	DocumentsUploaded *prometheus.CounterVec
	DocumentBytes     prometheus.Histogram
}

// New creates and registers all metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UsersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "legalcheck_users_created_total",
			Help: "Total number of users registered",
		}),
		LoginsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "legalcheck_logins_total",
			Help: "Total number of successful logins",
		}),
		AuthFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "legalcheck_auth_failures_total",
			Help: "Total number of rejected logins",
		}),
		PersonsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "legalcheck_persons_created_total",
			Help: "Total number of applicant profiles created",
		}),
		DocumentsUploaded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "legalcheck_documents_uploaded_total",
			Help: "Total number of evidence documents stored, labeled by evidence type",
		}, []string{"type"}),
		DocumentBytes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "legalcheck_document_size_bytes",
			Help:    "Size of stored evidence documents in bytes",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 6),
		}),
	}
}

// IncrementUsersCreated increments the users created counter by 1
func (m *Metrics) IncrementUsersCreated() {
	if m == nil {
		return
	}
	m.UsersCreated.Inc()
}

func (m *Metrics) IncrementLogins() {
	if m == nil {
		return
	}
	m.LoginsTotal.Inc()
}

func (m *Metrics) IncrementAuthFailures() {
	if m == nil {
		return
	}
	m.AuthFailures.Inc()
}

func (m *Metrics) IncrementPersonsCreated() {
	if m == nil {
		return
	}
	m.PersonsCreated.Inc()
}

// ObserveDocumentUploaded counts one stored document and its size.
func (m *Metrics) ObserveDocumentUploaded(docType string, sizeBytes int64) {
	if m == nil {
		return
	}
	m.DocumentsUploaded.WithLabelValues(docType).Inc()
	m.DocumentBytes.Observe(float64(sizeBytes))
}
