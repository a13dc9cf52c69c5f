// Package metrics exposes the Prometheus collectors of the API.
package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wellnessflow"

// Outcome labels a finished operation
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeNotFound Outcome = "not_found"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeRejected Outcome = "rejected"
	OutcomeError    Outcome = "error"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route pattern and status code",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route pattern",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	sessionOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "sessions",
		Name:      "operations_total",
		Help:      "Session service operations by name and outcome",
	}, []string{"operation", "outcome"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "attempts_total",
		Help:      "Registration and login attempts by outcome",
	}, []string{"action", "outcome"})

	schemaVersion = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "database",
		Name:      "schema_version",
		Help:      "Current database schema version",
	}, []string{"dirty"})
)

// ObserveHTTPRequest records one served request
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncSessionOperation counts a session service call
func IncSessionOperation(operation string, outcome Outcome) {
	m, err := sessionOperations.GetMetricWithLabelValues(operation, string(outcome))
	if err != nil {
		slog.Warn("get metric", "metric", "sessions_operations_total", "error", err)
		return
	}
	m.Inc()
}

// IncAuthAttempt counts a register or login attempt
func IncAuthAttempt(action string, outcome Outcome) {
	m, err := authAttempts.GetMetricWithLabelValues(action, string(outcome))
	if err != nil {
		slog.Warn("get metric", "metric", "auth_attempts_total", "error", err)
		return
	}
	m.Inc()
}

// SetSchemaVersion publishes the migration version after startup
func SetSchemaVersion(version uint, dirty bool) {
	m, err := schemaVersion.GetMetricWithLabelValues(strconv.FormatBool(dirty))
	if err != nil {
		slog.Warn("get metric", "metric", "database_schema_version", "error", err)
		return
	}
	m.Set(float64(version))
}

// Handler serves the default registry in the Prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
