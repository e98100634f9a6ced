package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catcatalog_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// CatOperations counts store operations by name and outcome (success|not_found|error).
	CatOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catcatalog_cat_operations_total",
			Help: "Total number of cat store operations",
		},
		[]string{"operation", "result"},
	)

	// SeedImported counts cats persisted by the upstream import.
	SeedImported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catcatalog_seed_imported_total",
			Help: "Total number of cats imported from the upstream API",
		},
	)

	// SeedRuns counts import attempts by result (success|failure|skipped).
	SeedRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catcatalog_seed_runs_total",
			Help: "Total number of upstream import runs",
		},
		[]string{"result"},
	)

	// HealthCheckUp reports the last observed state of each health probe (1 up, 0 otherwise).
	HealthCheckUp = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catcatalog_health_check_up",
			Help: "Outcome of the most recent health probe per component",
		},
		[]string{"component"},
	)
)
