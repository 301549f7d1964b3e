package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devhub_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AuthRejections counts rejected requests at the access guard by reason
	// (missing_token, bad_signature, token_expired).
	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devhub_auth_rejections_total",
		Help: "Total number of requests rejected by the auth guard, by reason",
	}, []string{"reason"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devhub_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// LikeConflicts counts like/unlike mutations rejected by the store's
	// conditional primitives (already liked / not liked).
	LikeConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devhub_like_conflicts_total",
		Help: "Total like/unlike mutations rejected as conflicts, by kind",
	}, []string{"kind"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
