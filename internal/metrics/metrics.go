// Package metrics defines the Prometheus collectors for the service. All
// collectors are registered via promauto at init; the api package exposes
// them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clearpath_http_requests_total",
			Help: "Total HTTP requests by method and status code",
		},
		[]string{"method", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "clearpath_http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
		},
		[]string{"method"},
	)

	AssistantRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clearpath_assistant_requests_total",
			Help: "Assistant messages handled, by serving mode (demo or live)",
		},
		[]string{"mode"},
	)

	WebhookFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clearpath_assistant_webhook_fallbacks_total",
			Help: "Live webhook calls that failed and fell back to the demo corpus",
		},
	)

	ScoringRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clearpath_scoring_runs_total",
			Help: "Questionnaire scoring invocations",
		},
	)
)
