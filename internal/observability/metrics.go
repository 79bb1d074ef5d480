package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every custom metric the application exposes.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Task metrics
	TasksCreatedTotal   prometheus.Counter
	TasksCompletedTotal prometheus.Counter
	TasksDeletedTotal   prometheus.Counter

	// Auth metrics
	LoginsTotal      *prometheus.CounterVec
	SessionsRejected *prometheus.CounterVec

	// Cache (Redis) metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		TasksCreatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tasks_created_total",
				Help: "Total number of tasks created",
			},
		),

		TasksCompletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tasks_completed_total",
				Help: "Total number of tasks marked completed",
			},
		),

		TasksDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tasks_deleted_total",
				Help: "Total number of tasks deleted",
			},
		),

		LoginsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logins_total",
				Help: "Total number of login attempts",
			},
			[]string{"outcome"}, // success, failure
		),

		SessionsRejected: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sessions_rejected_total",
				Help: "Total number of requests rejected by the session guard",
			},
			[]string{"reason"}, // missing, expired, invalid
		),

		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_hits_total",
				Help: "Total number of cache hits",
			},
			[]string{"key_type"},
		),

		CacheMissesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_misses_total",
				Help: "Total number of cache misses",
			},
			[]string{"key_type"},
		),
	}
}

// GlobalMetrics is the application-wide metrics instance.
var GlobalMetrics *Metrics

func InitMetrics() {
	GlobalMetrics = NewMetrics()
}
