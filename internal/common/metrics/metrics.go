// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DashboardBoards = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "panel_dashboard_boards",
			Help: "Admin dashboard snapshots currently held in memory",
		},
	)

	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests sent to the backend API",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Duration of backend API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	Decisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_decisions_total",
			Help: "Admin approve/reject decisions by entity and outcome",
		},
		[]string{"entity", "decision", "outcome"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_validation_failures_total",
			Help: "Number of rejected form submissions",
		},
		[]string{"form"},
	)

	DemoFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "panel_demo_fallbacks_total",
			Help: "Dashboard loads served from demonstration data after a known backend defect",
		},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_notifications_total",
			Help: "Decision notifications by channel and result",
		},
		[]string{"channel", "status"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "panel_http_requests_total",
			Help: "Requests served by the panel API",
		},
		[]string{"method", "route", "status"},
	)
)
