package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Submissions counts invite submissions by kind (full|partial) and result (created|invalid|error).
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsvp_submissions_total",
			Help: "Total number of invite submissions",
		},
		[]string{"kind", "result"},
	)

	// CredentialChecks counts gate checks by result (match|mismatch|empty|invalid|misconfigured).
	CredentialChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsvp_credential_checks_total",
			Help: "Total number of gate credential checks",
		},
		[]string{"result"},
	)

	// Notifications counts operator mails by result (sent|failed|skipped).
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rsvp_notifications_total",
			Help: "Total number of operator notification attempts",
		},
		[]string{"result"},
	)

	// RequestDuration measures HTTP request latencies.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rsvp_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
