package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QueryMetrics holds all Prometheus metrics for the query service.
type QueryMetrics struct {
	SpeedHits           prometheus.Counter
	SpeedMisses         prometheus.Counter
	SpeedLookupFailures prometheus.Counter
	FallbackQueries     prometheus.Counter
	SeriesQueryDuration prometheus.Histogram
	AnalyticsQueries    *prometheus.CounterVec
}

// NewQueryMetrics initializes and registers the Prometheus metrics.
func NewQueryMetrics() *QueryMetrics {
	return &QueryMetrics{
		SpeedHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "seamline",
			Subsystem: "speed",
			Name:      "hits_total",
			Help:      "Total number of speed-layer bucket lookups answered from the speed store.",
		}),
		SpeedMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "seamline",
			Subsystem: "speed",
			Name:      "misses_total",
			Help:      "Total number of speed-layer bucket lookups that missed and went to fallback.",
		}),
		SpeedLookupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "seamline",
			Subsystem: "speed",
			Name:      "lookup_failures_total",
			Help:      "Total number of speed-layer lookups that failed and were treated as misses.",
		}),
		FallbackQueries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "seamline",
			Subsystem: "speed",
			Name:      "fallback_queries_total",
			Help:      "Total number of single-bucket fallback queries issued against the batch store.",
		}),
		SeriesQueryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: "seamline",
			Subsystem: "series",
			Name:      "query_duration_seconds",
			Help:      "Latency of reconciled order-series queries.",
			Buckets:   prometheus.DefBuckets,
		}),
		AnalyticsQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "seamline",
			Subsystem: "analytics",
			Name:      "queries_total",
			Help:      "Total number of aggregate analytics queries by kind.",
		}, []string{"query"}), // query: daily_sales, province_ranking, user_behavior, product_rank, realtime, funnel
	}
}

// SeriesQueryTimer starts a timer observing into SeriesQueryDuration.
func (m *QueryMetrics) SeriesQueryTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.SeriesQueryDuration)
}
