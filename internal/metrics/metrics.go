package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inkpost_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "inkpost_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	HTTPRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inkpost_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inkpost_tokens_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	TokenVerificationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inkpost_token_verifications_failed_total",
			Help: "Total number of failed session token verifications",
		},
	)

	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inkpost_posts_created_total",
			Help: "Total number of posts created",
		},
	)

	PostsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inkpost_posts_updated_total",
			Help: "Total number of posts updated",
		},
	)

	UploadsStored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "inkpost_uploads_stored_total",
			Help: "Total number of cover uploads stored",
		},
	)
)
