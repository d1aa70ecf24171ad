// Package metrics defines and registers all custom Prometheus metrics for
// the school portal gateway. It is the single source of truth for metric
// names, labels, and help strings; importing the package registers the
// metrics with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// LoginsTotal counts credential exchanges by outcome.
// Labels:
//   - result: "success", "rejected" (backend 4xx) or "error" (transport)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// GuardDecisionsTotal counts authentication-guard outcomes per request.
// Labels:
//   - outcome: "authenticated" (valid session; the role gate may still add
//     a "forbidden" count for the same request), "substituted" (login view
//     rendered in place) or "forbidden" (role gate rejection)
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of authentication guard decisions, by outcome.",
	},
	[]string{"outcome"},
)

// SessionsActive tracks the number of sessions currently held in the store.
// Best-effort: incremented on login, decremented on logout; expiry in the
// store is not observed.
var SessionsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Approximate number of active sessions.",
	},
)

// BackendRequestDuration measures round trips to the school backend.
// Labels:
//   - endpoint: logical endpoint name (e.g. "students.list", "auth.login")
//   - status: "ok" or "error"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of HTTP requests to the school backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "status"},
)
