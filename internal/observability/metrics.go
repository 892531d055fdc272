package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session manager metrics
	AuthOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_operations_total",
			Help: "Total number of auth operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	AuthOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_operation_duration_seconds",
			Help:    "Auth operation latency in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	RefreshCallsCoalesced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_refresh_calls_coalesced_total",
			Help: "Refresh callers served by an already in-flight or just-settled refresh",
		},
	)

	SessionRestores = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_session_restores_total",
			Help: "Session restorations by source (cache or whoami)",
		},
		[]string{"source"},
	)

	// Transport metrics
	TransportRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_requests_total",
			Help: "Outbound HTTP requests by method and status",
		},
		[]string{"method", "status"},
	)

	TransportRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "transport_retries_total",
			Help: "Requests retried after a coordinated session refresh",
		},
	)

	TransportRecoveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_recoveries_total",
			Help: "Refresh-then-retry cycles by outcome",
		},
		[]string{"outcome"},
	)

	// Session store metrics
	SecureStorageAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "secure_storage_available",
			Help: "1 when the on-disk session store is writable, 0 when degraded to memory-only",
		},
	)

	// Stub backend HTTP metrics
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backend_requests_total",
			Help: "Stub backend HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backend_request_duration_seconds",
			Help:    "Stub backend HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path", "status"},
	)

	// Stub backend database metrics
	DBConnectionsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of open database connections",
		},
	)

	DBConnectionsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Number of database connections currently in use",
		},
	)
)
