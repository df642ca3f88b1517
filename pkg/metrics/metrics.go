package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TradeMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trade_mutations_total",
		Help: "Total number of trade create/update/delete operations",
	}, []string{"operation", "status"})

	StatsRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stats_requests_total",
		Help: "Total number of statistics requests",
	}, []string{"cached"})

	AuthRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_requests_total",
		Help: "Total number of register/login attempts",
	}, []string{"operation", "status"})

	AnalysisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ai_analysis_requests_total",
		Help: "Total number of AI critique requests",
	}, []string{"status"})

	AnalysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ai_analysis_duration_seconds",
		Help:    "Duration of AI critique calls",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
	})

	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total number of cache hits",
	})

	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total number of cache misses",
	})

	DatabaseQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "database_queries_total",
		Help: "Total number of database queries",
	}, []string{"query_type", "status"})

	DatabaseQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "database_query_duration_seconds",
		Help:    "Duration of database queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"query_type"})
)

func RecordCacheHit() {
	CacheHits.Inc()
}

func RecordCacheMiss() {
	CacheMisses.Inc()
}

func RecordTradeMutation(operation, status string) {
	TradeMutations.WithLabelValues(operation, status).Inc()
}

func RecordStatsRequest(cached bool) {
	cachedStr := "false"
	if cached {
		cachedStr = "true"
	}
	StatsRequests.WithLabelValues(cachedStr).Inc()
}

func RecordAuthRequest(operation, status string) {
	AuthRequests.WithLabelValues(operation, status).Inc()
}

func RecordAnalysisRequest(status string, duration time.Duration) {
	AnalysisRequests.WithLabelValues(status).Inc()
	AnalysisDuration.Observe(duration.Seconds())
}

type Timer struct {
	start time.Time
}

func NewTimer() *Timer {
	return &Timer{
		start: time.Now(),
	}
}

func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(time.Since(t.start).Seconds())
}

func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
