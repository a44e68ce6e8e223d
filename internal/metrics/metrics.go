package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, path and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and path",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	PayrollRowsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payroll_rows_generated_total",
			Help: "Payroll rows successfully computed and persisted",
		},
	)

	PayrollRowFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payroll_row_failures_total",
			Help: "Payroll rows that failed during batch generation, by reason",
		},
		[]string{"reason"},
	)

	ProvisioningTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provisioning_operations_total",
			Help: "Provisioning operations by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)
