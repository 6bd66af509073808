// Package metrics defines and registers all custom Prometheus metrics for
// the auth gateway. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package load; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "authgw"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "rate_limited",
//     "upstream_error", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// TokenValidationFailures counts session tokens that failed validation.
// Label:
//   - reason: "invalid_token", "unknown_user", "role_mismatch", "inactive"
var TokenValidationFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_validation_failures_total",
		Help:      "Total number of session token validations that failed.",
	},
	[]string{"reason"},
)

// UpstreamRequestsTotal counts proxied calls to the backend API.
// Labels:
//   - path: the upstream path ("/token", "/user", "/admin", "/health")
//   - outcome: "ok", "rejected", "unreachable"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of calls forwarded to the upstream API.",
	},
	[]string{"path", "outcome"},
)

// UpstreamRequestDuration measures upstream call latency end-to-end.
// Label:
//   - path: the upstream path
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of calls to the upstream API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"path"},
)
