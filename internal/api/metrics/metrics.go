// Package metrics defines and registers all custom Prometheus metrics for the
// canteen ordering API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "canteen"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersPlacedTotal counts orders entering the pending state.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed.",
	},
)

// OrdersSettledTotal counts orders flipped from pending to paid at checkout.
var OrdersSettledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_settled_total",
		Help:      "Total number of orders settled (pending to paid) at checkout.",
	},
)

// OrdersCompletedTotal counts orders an admin marked done.
var OrdersCompletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_completed_total",
		Help:      "Total number of orders marked done by an admin.",
	},
)

// SettlementDuration measures the end-to-end time of a checkout confirmation.
var SettlementDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "settlement_duration_seconds",
		Help:      "Duration of a checkout confirmation from request to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Menu metrics ──────────────────────────────────────────────────────────────

// MenuMutationsTotal counts admin writes to the menu catalog.
// Label:
//   - op: "create", "update", or "delete"
var MenuMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "menu_mutations_total",
		Help:      "Total number of admin menu catalog writes, by operation.",
	},
	[]string{"op"},
)

// ImageUploadsTotal counts menu image uploads to object storage.
// Label:
//   - result: "ok" or "error"
var ImageUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_uploads_total",
		Help:      "Total number of menu image uploads, by result.",
	},
	[]string{"result"},
)
