// Package metrics declares the custom Prometheus collectors of the site API.
// They register with the default registry on import and are exposed at /metrics
// next to the echoprometheus request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "numerology"

// OrdersCreatedTotal counts checkouts that persisted an order.
// Label service_type is report, consultation or remedy.
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created at checkout, by service type.",
	},
	[]string{"service_type"},
)

// PaymentTransitionsTotal counts applied payment status changes.
// Labels:
//   - status: the terminal status reached
//   - source: "verify" or "cancel"
var PaymentTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_transitions_total",
		Help:      "Total number of order payment status transitions.",
	},
	[]string{"status", "source"},
)

// PaymentLockContentionTotal counts callbacks rejected because another one held the order lock.
var PaymentLockContentionTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_lock_contention_total",
		Help:      "Total number of payment callbacks rejected while the order was locked.",
	},
)

// WebhooksReceivedTotal counts gateway webhook deliveries.
// Label outcome is "accepted", "rejected" or "error".
var WebhooksReceivedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhooks_received_total",
		Help:      "Total number of payment gateway webhooks received, by outcome.",
	},
	[]string{"outcome"},
)

// GateDecisionsTotal counts page access decisions.
// Label decision is "allow", "redirect_login" or "redirect_home".
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of access gate decisions, by outcome.",
	},
	[]string{"decision"},
)

var SampleReportsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sample_reports_created_total",
		Help:      "Total number of sample report requests submitted.",
	},
)

// AdminStatsDuration measures how long the dashboard aggregate takes.
var AdminStatsDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "admin_stats_duration_seconds",
		Help:      "Duration of the admin dashboard aggregate.",
		Buckets:   prometheus.DefBuckets,
	},
)
