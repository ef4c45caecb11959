// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles every collector the service registers.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CommitAttemptsTotal  *prometheus.CounterVec
	CommitConflictsTotal *prometheus.CounterVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	DBOpenConnections *prometheus.GaugeVec
	DBIdleConnections *prometheus.GaugeVec
}

// New creates and registers the collectors on the default registry.
func New(serviceName string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "http_requests_total",
				Help:        "HTTP requests by method, route and status code.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "http_request_duration_seconds",
				Help:        "HTTP request duration by method and route.",
				ConstLabels: prometheus.Labels{"service": serviceName},
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CommitAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "day_commit_attempts_total",
				Help:        "Optimistic day-record commits by operation and result.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"operation", "result"},
		),
		CommitConflictsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "day_commit_conflicts_total",
				Help:        "Version conflicts hit while committing day records.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"operation"},
		),
		DBQueryDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:        "db_query_duration_seconds",
				Help:        "Database query duration by query kind.",
				ConstLabels: prometheus.Labels{"service": serviceName},
				Buckets:     prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		DBQueryErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name:        "db_query_errors_total",
				Help:        "Database query errors by query kind.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"query"},
		),
		DBOpenConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_open_connections",
				Help:        "Open connections in the pool.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"state"},
		),
		DBIdleConnections: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "db_idle_connections",
				Help:        "Idle connections in the pool.",
				ConstLabels: prometheus.Labels{"service": serviceName},
			},
			[]string{"state"},
		),
	}

	prometheus.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CommitAttemptsTotal,
		m.CommitConflictsTotal,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBIdleConnections,
	)

	return m
}

// ObserveHTTP records one finished HTTP request.
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// ObserveCommit records the outcome of one commit attempt.
func (m *Metrics) ObserveCommit(operation, result string) {
	m.CommitAttemptsTotal.WithLabelValues(operation, result).Inc()
}

// IncCommitConflict records one optimistic-concurrency conflict.
func (m *Metrics) IncCommitConflict(operation string) {
	m.CommitConflictsTotal.WithLabelValues(operation).Inc()
}

// ObserveDBQuery records one database query execution.
func (m *Metrics) ObserveDBQuery(query string, seconds float64, err error) {
	m.DBQueryDuration.WithLabelValues(query).Observe(seconds)
	if err != nil {
		m.DBQueryErrors.WithLabelValues(query).Inc()
	}
}
