package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jobboard_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	transitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_status_transitions_total",
		Help: "Count of lifecycle state transitions by entity and edge",
	}, []string{"entity", "from", "to"})

	denialsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jobboard_authz_denials_total",
		Help: "Count of authorization denials by reason",
	}, []string{"reason"})
)

// ObserveHTTPRequest records one handled request.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveTransition records a committed state-machine edge.
func ObserveTransition(entity, from, to string) {
	transitionsTotal.WithLabelValues(entity, from, to).Inc()
}

// ObserveDenial records an authorization deny by machine-readable reason.
func ObserveDenial(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	denialsTotal.WithLabelValues(reason).Inc()
}
