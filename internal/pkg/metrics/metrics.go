package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recipehub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CounterStoreFailures 计数层失败次数，这些失败不会返回给调用方
	CounterStoreFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_counter_store_failures_total",
			Help: "Best-effort counter store operations that failed",
		},
		[]string{"operation"},
	)

	BestRecipesCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_best_recipes_cache_total",
			Help: "Best recipes cache lookups by result",
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "recipehub_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"},
	)

	ModerationEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipehub_moderation_events_total",
			Help: "Moderation events by stage and result",
		},
		[]string{"stage", "result"},
	)
)

// ObserveHTTP 记录一次请求
func ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func RecordCounterFailure(operation string) {
	CounterStoreFailures.WithLabelValues(operation).Inc()
}

func RecordBestRecipesCache(hit bool) {
	if hit {
		BestRecipesCache.WithLabelValues("hit").Inc()
		return
	}
	BestRecipesCache.WithLabelValues("miss").Inc()
}
