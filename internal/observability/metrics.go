package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abdellahzou/HiResume/internal/ats"
	"github.com/abdellahzou/HiResume/internal/autofit"
)

var (
	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hiresume_exports_total",
			Help: "Total number of exports by format and outcome",
		},
		[]string{"format", "status"},
	)

	ExportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hiresume_export_duration_seconds",
			Help:    "Duration of one export in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	FitIterations = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hiresume_autofit_iterations",
			Help:    "Measurements taken by one auto-fit run",
			Buckets: prometheus.LinearBuckets(1, 2, 10),
		},
		[]string{"status"},
	)

	FitScale = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hiresume_autofit_scale",
			Help:    "Scale factor chosen by auto-fit",
			Buckets: prometheus.LinearBuckets(0.5, 0.05, 11),
		},
	)

	ATSTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hiresume_ats_transitions_total",
			Help: "ATS pipeline state transitions",
		},
		[]string{"to"},
	)

	ATSScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hiresume_ats_score",
			Help:    "Distribution of ATS scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hiresume_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hiresume_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveExport records one export.
func ObserveExport(format string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	ExportsTotal.WithLabelValues(format, status).Inc()
	ExportDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// ObserveFit records one auto-fit run.
func ObserveFit(r autofit.Result) {
	FitIterations.WithLabelValues(string(r.Status)).Observe(float64(r.Iterations))
	FitScale.Observe(r.Params.Scale)
}

// ATSObserver counts pipeline transitions.
func ATSObserver() ats.Observer {
	return func(_, to ats.State) {
		ATSTransitions.WithLabelValues(string(to)).Inc()
	}
}
