package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	backendRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contracts_admin",
		Subsystem: "backend",
		Name:      "requests_total",
		Help:      "Backend API calls broken down by method and status code.",
	}, []string{"method", "status"})

	backendLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "contracts_admin",
		Subsystem: "backend",
		Name:      "request_duration_seconds",
		Help:      "Latency of backend API calls.",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"method"})

	queryCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contracts_admin",
		Subsystem: "query",
		Name:      "cache_total",
		Help:      "Query cache lookups by result (hit, miss, dedup).",
	}, []string{"result"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "contracts_admin",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Pages and API routes served, by route and status code.",
	}, []string{"route", "status"})
)

// ObserveBackend records one backend round trip. status 0 means the call
// never produced a response (timeout, connection refused).
func ObserveBackend(method string, status int, elapsed time.Duration) {
	backendRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	backendLatency.WithLabelValues(method).Observe(elapsed.Seconds())
}

func CacheHit()   { queryCache.WithLabelValues("hit").Inc() }
func CacheMiss()  { queryCache.WithLabelValues("miss").Inc() }
func CacheDedup() { queryCache.WithLabelValues("dedup").Inc() }

func ObserveHTTP(route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
