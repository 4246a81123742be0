package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the registry exposed on /api/metrics. A dedicated registry
// keeps the default Go collectors out of scrape output unless added here.
var Registry = prometheus.NewRegistry()

var (
	// Custom histogram buckets for response times ranging from milliseconds
	// to the multi-second provisioning chains.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Upstream gateway client metrics
	GatewayRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fsel_gateway_operation_duration_seconds",
			Help:    "FSEL gateway operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"gateway", "operation", "status"},
	)

	GatewayRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fsel_gateway_operation_total",
			Help: "Total number of FSEL gateway operations",
		},
		[]string{"gateway", "operation", "status"},
	)

	// Business metrics
	ProvisioningRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_console_provisioning_runs_total",
			Help: "Total provisioning workflow invocations",
		},
		[]string{"workflow", "status"},
	)

	ProvisioningStepFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_console_provisioning_step_failures_total",
			Help: "Provisioning step failures by step tag",
		},
		[]string{"workflow", "step"},
	)

	StudentSearches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_console_student_searches_total",
			Help: "Total student search requests",
		},
		[]string{"status"},
	)

	AdminLogins = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_console_gateway_logins_total",
			Help: "Total upstream admin authentication attempts",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// Init registers all collectors, stamping every series with the service name
func Init(service string) {
	reg := prometheus.WrapRegistererWith(prometheus.Labels{"service_name": service}, Registry)
	reg.MustRegister(
		HTTPRequestDuration,
		HTTPRequestTotal,
		ActiveRequests,
		GatewayRequestDuration,
		GatewayRequestTotal,
		ProvisioningRuns,
		ProvisioningStepFailures,
		StudentSearches,
		AdminLogins,
		GoRoutines,
		HeapAlloc,
	)
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
