// Package metrics provides Prometheus metrics recording for internal packages.
// This package exists to avoid import cycles between database, storage and middleware packages.
package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SlowQueryThreshold marks a query as slow for logging and counting
const SlowQueryThreshold = 100 * time.Millisecond

var (
	// dbQueryDuration tracks database query duration in seconds
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clientintake_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"database", "operation"},
	)

	// dbQueryTotal tracks total database queries
	dbQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clientintake_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"database", "operation"},
	)

	// dbQueryErrors tracks database query errors
	dbQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clientintake_db_query_errors_total",
			Help: "Total number of database query errors",
		},
		[]string{"database", "operation"},
	)

	// dbSlowQueries tracks slow database queries
	dbSlowQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clientintake_db_slow_queries_total",
			Help: "Total number of slow database queries (>100ms)",
		},
		[]string{"database", "operation"},
	)

	// blobOperations tracks document store calls by backend and outcome
	blobOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clientintake_blob_operations_total",
			Help: "Total number of document store operations",
		},
		[]string{"backend", "operation", "outcome"},
	)

	// circuitState exposes each circuit breaker's state: 0 closed, 1 open, 2 half-open
	circuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clientintake_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)
)

// RecordDBQuery records database query metrics
func RecordDBQuery(database, operation string, duration time.Duration) {
	dbQueryTotal.WithLabelValues(database, operation).Inc()
	dbQueryDuration.WithLabelValues(database, operation).Observe(duration.Seconds())

	if duration > SlowQueryThreshold {
		dbSlowQueries.WithLabelValues(database, operation).Inc()
	}
}

// RecordDBError records a database query error
func RecordDBError(database, operation string) {
	dbQueryErrors.WithLabelValues(database, operation).Inc()
}

// RecordBlobOp records a document store call
func RecordBlobOp(backend, operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	blobOperations.WithLabelValues(backend, operation, outcome).Inc()
}

// SetCircuitState records a circuit breaker transition
func SetCircuitState(name string, state int) {
	circuitState.WithLabelValues(name).Set(float64(state))
}

// SQLOperation returns the leading SQL keyword in lower case, used as a metric label.
func SQLOperation(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
