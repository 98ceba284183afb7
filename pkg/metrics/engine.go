package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the hybrid recommendation endpoint
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_recommend_latency_seconds",
		Help:    "Latency of the hybrid recommendations handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "engine_recommend_requests_total",
		Help: "Total number of recommendation requests",
	})

	// Latency of trend analysis runs
	TrendAnalysisLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "engine_trend_analysis_latency_seconds",
		Help:    "Latency of trend analysis runs",
		Buckets: prometheus.DefBuckets,
	})

	// Total feedback events recorded, labeled by interaction type
	FeedbackEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "engine_feedback_events_total",
		Help: "Total feedback events recorded",
	}, []string{"interaction_type"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		TrendAnalysisLatency,
		FeedbackEvents,
	)
}
