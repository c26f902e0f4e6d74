package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "cv_analyzer"

// Analysis pipeline metrics.
var (
	AnalysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of resume analyses by outcome",
		},
		[]string{"mode", "status"}, // mode: sync / async
	)

	AnalysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Time spent extracting, parsing and scoring one resume",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"format"},
	)

	OverallScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "overall_score",
			Help:      "Distribution of overall resume scores",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)

	ExtractionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failures_total",
			Help:      "Documents whose text could not be extracted",
		},
		[]string{"format", "kind"},
	)

	JobMatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_match_total",
			Help:      "Job title lookups against the keyword catalog",
		},
		[]string{"result"}, // "matched" / "unmatched"
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_queue_depth",
			Help:      "Analyses waiting in the worker queue",
		},
	)
)

func init() {
	prometheus.MustRegister(AnalysesTotal)
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(OverallScore)
	prometheus.MustRegister(ExtractionFailuresTotal)
	prometheus.MustRegister(JobMatchTotal)
	prometheus.MustRegister(WorkerQueueDepth)
}
