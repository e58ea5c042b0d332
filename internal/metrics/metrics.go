// Package metrics provides Prometheus metrics for the report pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/hostelops/reportgen/internal/repository"
)

var (
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportgen_reports_generated_total",
			Help: "Total number of reports generated successfully",
		},
		[]string{"section", "format"},
	)
	ReportFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportgen_report_failures_total",
			Help: "Total number of report generations that failed",
		},
		[]string{"section", "format"},
	)
	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reportgen_report_duration_seconds",
			Help:    "Report generation duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"section", "format"},
	)
	JobsEnqueued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportgen_jobs_enqueued_total",
			Help: "Total number of report jobs enqueued",
		},
		[]string{"section", "format"},
	)
	JobsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reportgen_jobs_by_status",
			Help: "Current number of jobs in the store by status and section",
		},
		[]string{"status", "section"},
	)
	QueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reportgen_queue_depth",
			Help: "Current depth of the report job queue",
		},
	)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportgen_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reportgen_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func RecordReportGenerated(section, format string, duration time.Duration) {
	ReportsGenerated.WithLabelValues(section, format).Inc()
	ReportDuration.WithLabelValues(section, format).Observe(duration.Seconds())
}

func RecordReportFailed(section, format string, duration time.Duration) {
	ReportFailures.WithLabelValues(section, format).Inc()
	ReportDuration.WithLabelValues(section, format).Observe(duration.Seconds())
}

func RecordJobEnqueued(section, format string) {
	JobsEnqueued.WithLabelValues(section, format).Inc()
}

func UpdateJobGauges(stats []repository.JobStats) {
	JobsByStatus.Reset()
	for _, s := range stats {
		JobsByStatus.WithLabelValues(s.Status, s.Section).Set(float64(s.Count))
	}
}

func UpdateQueueDepth(depth int64) {
	QueueDepth.Set(float64(depth))
}

func RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
