package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Node store metrics
	NodesTotal = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "opcua_nodes_total",
			Help: "Total number of nodes in the address space by namespace",
		},
		[]string{"namespace"},
	)

	ReferencesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "opcua_references_total",
			Help: "Total number of references stored across all nodes",
		},
	)

	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opcua_store_operation_duration_seconds",
			Help:    "Time taken for a node store operation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// Server runtime metrics
	JobsDispatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opcua_jobs_dispatched_total",
			Help: "Total number of jobs dispatched by the main loop, by kind and dispatch path",
		},
		[]string{"kind", "path"},
	)

	RepeatedJobsFiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "opcua_repeated_jobs_fired_total",
			Help: "Total number of repeated jobs popped due by the scheduler",
		},
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "opcua_worker_queue_depth",
			Help: "Current number of jobs waiting in the worker pool queue",
		},
	)

	WorkerJobPanicsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "opcua_worker_job_panics_total",
			Help: "Total number of dispatched jobs that panicked in a worker goroutine",
		},
	)

	// Service layer metrics
	ServiceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "opcua_service_requests_total",
			Help: "Total number of service requests by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	ServiceRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "opcua_service_request_duration_seconds",
			Help:    "Service request duration in seconds by operation",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(NodesTotal)
	prometheus.MustRegister(ReferencesTotal)
	prometheus.MustRegister(StoreOperationDuration)
	prometheus.MustRegister(JobsDispatchedTotal)
	prometheus.MustRegister(RepeatedJobsFiredTotal)
	prometheus.MustRegister(WorkerQueueDepth)
	prometheus.MustRegister(WorkerJobPanicsTotal)
	prometheus.MustRegister(ServiceRequestsTotal)
	prometheus.MustRegister(ServiceRequestDuration)
}

// Handler returns the Prometheus HTTP handler, for an embedder that wants
// to serve /metrics itself.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for timing operations.
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time to histogram.
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// ObserveDurationVec records the elapsed time to a histogram vec with labels.
func (t *Timer) ObserveDurationVec(histogram prometheus.ObserverVec, labels ...string) {
	histogram.WithLabelValues(labels...).Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since the timer started.
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
