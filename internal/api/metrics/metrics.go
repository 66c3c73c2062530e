// Package metrics defines and registers all custom Prometheus metrics for the
// IAM API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Registration happens at import time via promauto; the router exposes the
// default registry on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "iam"

// ── Authorization metrics ─────────────────────────────────────────────────────

// AuthzDecisionsTotal counts permission resolutions.
// Labels:
//   - result: "allow" or "deny"
//   - resource: the resource the caller asked about (e.g. "policies")
var AuthzDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_decisions_total",
		Help:      "Total number of authorization decisions, by result and resource.",
	},
	[]string{"result", "resource"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// EntityMutationsTotal counts successful store mutations.
// Labels:
//   - entity: "user", "group", "policy", or "access_request"
//   - op: "create", "update", or "delete"
var EntityMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_mutations_total",
		Help:      "Total number of successful entity mutations, by entity and operation.",
	},
	[]string{"entity", "op"},
)

// SnapshotFlushDuration measures how long one durable snapshot write takes.
var SnapshotFlushDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_flush_duration_seconds",
		Help:      "Duration of serializing and writing the store snapshot to disk.",
		Buckets:   prometheus.DefBuckets,
	},
)

// SnapshotFlushFailures counts snapshot writes that failed. Each failure
// aborted the mutation's success report.
var SnapshotFlushFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_flush_failures_total",
		Help:      "Total number of failed snapshot writes.",
	},
)

// ── Access request metrics ────────────────────────────────────────────────────

// RequestTransitionsTotal counts access request adjudications.
// Label:
//   - outcome: "approved" or "denied"
var RequestTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_request_transitions_total",
		Help:      "Total number of access requests processed, by outcome.",
	},
	[]string{"outcome"},
)
