// Package metrics defines the custom Prometheus metrics of the CRM API.
// HTTP request metrics come from the echoprometheus middleware registered
// in the router; everything here is domain-level.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// ── Ledger metrics ────────────────────────────────────────────────────────────

// ClientsSubmittedTotal counts client submissions accepted by the ledger.
// Label:
//   - path: "created" for a new client, "merged" when folded into an existing one
var ClientsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_submitted_total",
		Help:      "Total number of client submissions, by ledger path (created/merged).",
	},
	[]string{"path"},
)

// TasksDeletedTotal counts task deletions.
// Label:
//   - outcome: reconciliation outcome, "applied" or "skipped"
var TasksDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_deleted_total",
		Help:      "Total number of deleted tasks, by client total reconciliation outcome.",
	},
	[]string{"outcome"},
)

// ReconciledAmountTotal sums the task amounts subtracted from client totals.
var ReconciledAmountTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reconciled_amount_total",
		Help:      "Sum of task amounts subtracted from client totals on task deletion.",
	},
)

// ── Activity trail ────────────────────────────────────────────────────────────

// ActivityQueueDepth tracks the number of trail entries waiting in each
// dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
