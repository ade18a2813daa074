// Package metrics defines and registers the custom Prometheus metrics of the
// WorkSync session agent. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors are registered with the default registry through promauto, so
// importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "worksync"

// ── Session metrics ───────────────────────────────────────────────────────────

// BootstrapTotal counts bootstrap runs.
// Label:
//   - outcome: "anonymous", "authenticated" or "rejected"
var BootstrapTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bootstrap_total",
		Help:      "Total number of session bootstrap runs, by outcome.",
	},
	[]string{"outcome"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// PollCyclesTotal counts notification fetches.
// Label:
//   - result: "ok", "error", or "stale" (response discarded as out of order)
var PollCyclesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_polls_total",
		Help:      "Total number of notification fetches, by result.",
	},
	[]string{"result"},
)

// UnreadNotifications tracks the unread count of the current collection.
var UnreadNotifications = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_unread",
		Help:      "Number of unread notifications held for the signed-in user.",
	},
)

// PollDuration measures how long a notification fetch takes.
var PollDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_poll_duration_seconds",
		Help:      "Duration of a notification list request.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── User action metrics ───────────────────────────────────────────────────────

// ActionsTotal counts user-initiated operations.
// Labels:
//   - action: e.g. "mark_read", "clear_all", "mark_attendance", "reset_system"
//   - result: "ok", "error" or "declined"
var ActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Total number of user-initiated operations, by action and result.",
	},
	[]string{"action", "result"},
)

// ObserveAction records the result of a user action from its error.
func ObserveAction(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	ActionsTotal.WithLabelValues(action, result).Inc()
}
