// Package metrics defines the Prometheus collectors exported by the
// service, registered via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downfiles_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "downfiles_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "downfiles_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Extraction pipeline metrics.
var (
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downfiles_extractions_total",
			Help: "Total number of extractor invocations by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	ExtractionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "downfiles_extractions_active",
			Help: "Number of extractor processes currently running",
		},
	)

	BytesStreamedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "downfiles_bytes_streamed_total",
			Help: "Total artifact bytes streamed to clients",
		},
	)

	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "downfiles_jobs_total",
			Help: "Total number of asynchronous jobs by terminal status",
		},
		[]string{"status"},
	)

	JobQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "downfiles_job_queue_depth",
			Help: "Number of jobs waiting for a worker",
		},
	)
)
