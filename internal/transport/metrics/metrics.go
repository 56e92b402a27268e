// Package metrics defines and registers the Prometheus metrics emitted by
// the HTTP pipeline. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "backoffice"

// RequestsTotal counts outgoing API requests.
// Labels:
//   - method: HTTP method
//   - status: numeric response status, or "error" on transport failure
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of outgoing API requests, by method and status.",
	},
	[]string{"method", "status"},
)

// RequestDuration measures a single request round trip.
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of outgoing API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// TokenRefreshTotal counts refresh attempts triggered by the pipeline.
// Label:
//   - result: "success", "failure", or "coalesced" (another request already
//     refreshed while this one waited)
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of token refresh attempts, by result.",
	},
	[]string{"result"},
)

// RetriesTotal counts requests replayed after a successful refresh.
var RetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retries_total",
		Help:      "Total number of requests replayed after a 401-triggered refresh.",
	},
)
