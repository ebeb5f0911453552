package logger

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ResolveTotal counts carrier text recomputes by trigger
	ResolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrierd_resolve_total",
			Help: "Total number of carrier text recomputes",
		},
		[]string{"trigger"},
	)

	// ResolveDuration measures recompute latency
	ResolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "carrierd_resolve_duration_seconds",
			Help:    "Carrier text recompute duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// DisplayTextChanges counts transitions of the displayed text
	DisplayTextChanges = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "carrierd_display_text_changes_total",
			Help: "Total number of display text transitions",
		},
	)

	// SimErrorFlag tracks the sticky per-slot SIM I/O error flags
	SimErrorFlag = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "carrierd_sim_error_flag",
			Help: "Sticky SIM I/O error flag per physical slot (1 = faulty)",
		},
		[]string{"slot"},
	)

	// CacheHitTotal counts carrier name cache hits and misses
	CacheHitTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrierd_cache_hit_total",
			Help: "Total number of carrier name cache hits and misses",
		},
		[]string{"result"}, // "hit" or "miss"
	)

	// EventsConsumedTotal counts telephony change events by type and outcome
	EventsConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrierd_events_consumed_total",
			Help: "Total number of telephony change events consumed",
		},
		[]string{"type", "status"},
	)
)

// InitMetrics registers Prometheus metrics
func InitMetrics() {
	prometheus.MustRegister(ResolveTotal)
	prometheus.MustRegister(ResolveDuration)
	prometheus.MustRegister(DisplayTextChanges)
	prometheus.MustRegister(SimErrorFlag)
	prometheus.MustRegister(CacheHitTotal)
	prometheus.MustRegister(EventsConsumedTotal)
}

// MetricsHandler returns HTTP handler for Prometheus metrics
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
