// Package metrics defines and registers all custom Prometheus metrics for
// the Rently client. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are promauto-registered with the default registry at import time;
// a long-lived client embedding this module can expose them however it
// chooses.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rently"

// SessionOperationsTotal counts session-mutating operations by outcome.
// Labels:
//   - operation: "register", "login", or "logout"
//   - outcome: "success" or the failure class (e.g. "conflict", "transport")
var SessionOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_operations_total",
		Help:      "Total number of session operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// DirectoryRequestsTotal counts identity directory round-trips.
// Labels:
//   - backend: "local", "remote", or "mongo"
//   - outcome: "success" or "error"
var DirectoryRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "directory_requests_total",
		Help:      "Total number of identity directory requests, by backend and outcome.",
	},
	[]string{"backend", "outcome"},
)
