// Package metrics provides Prometheus metrics for habitd — check-in
// transitions, due evaluation, notification delivery, and history
// reconstruction latency.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Check-ins ──────────────────────────────────────────────────────────────

// CheckinsTotal counts applied streak transitions by outcome.
var CheckinsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "habitd",
	Name:      "checkins_total",
	Help:      "Streak transitions applied, by outcome.",
}, []string{"outcome"})

// CheckinNoops counts same-day repeat check-ins ignored by the
// one-transition-per-day guard.
var CheckinNoops = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habitd",
	Name:      "checkin_noops_total",
	Help:      "Same-day repeat check-ins ignored.",
})

// BadgesAwarded counts milestone badges handed out.
var BadgesAwarded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habitd",
	Name:      "badges_awarded_total",
	Help:      "Milestone badges awarded.",
})

// ─── Due evaluation ─────────────────────────────────────────────────────────

// DueHabits counts habits found due at evaluation ticks.
var DueHabits = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habitd",
	Name:      "due_habits_total",
	Help:      "Habits selected as due for a reminder.",
})

// DueEvalErrors counts per-user evaluation failures. These are
// isolated — one user's failure never aborts the rest.
var DueEvalErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habitd",
	Name:      "due_eval_errors_total",
	Help:      "Per-user due-evaluation failures.",
})

// ─── Notifications ──────────────────────────────────────────────────────────

// NotificationsSent counts reminder batches delivered to the sink.
var NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habitd",
	Name:      "notifications_sent_total",
	Help:      "Reminder batches handed to the notification sink.",
})

// NotificationErrors counts delivery failures reported by the sink.
var NotificationErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "habitd",
	Name:      "notification_errors_total",
	Help:      "Reminder delivery failures.",
})

// ─── History reconstruction ─────────────────────────────────────────────────

// ReconstructSeconds tracks timeline reconstruction duration.
var ReconstructSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "habitd",
	Name:      "reconstruct_seconds",
	Help:      "History reconstruction duration in seconds.",
	Buckets:   prometheus.DefBuckets,
})
