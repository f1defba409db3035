package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records sign-in attempts by result (success|failure|unverified).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "munjiz_auth_attempts_total",
			Help: "Total number of credential sign-in attempts",
		},
		[]string{"result"},
	)

	// Registrations counts registration outcomes (created|rejected|error).
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "munjiz_registrations_total",
			Help: "Total number of registration attempts",
		},
		[]string{"result"},
	)

	// EmailVerifications counts verification outcomes (verified|already_verified|invalid).
	EmailVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "munjiz_email_verifications_total",
			Help: "Total number of email verification attempts",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "munjiz_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
