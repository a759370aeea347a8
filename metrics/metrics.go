// Package metrics exposes Prometheus collectors for the reconciliation
// core. Registered on the default registry and served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fintrack_split_expenses_created_total",
		Help: "Split expenses successfully persisted.",
	})

	DebtsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fintrack_debts_created_total",
		Help: "Debt records created, including fan-out debts.",
	})

	DebtsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fintrack_debt_allocations_failed_total",
		Help: "Per-participant debt creations that failed during fan-out.",
	})

	CascadeDeletes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fintrack_cascade_deletes_total",
		Help: "Split-expense cascade deletions attempted.",
	})

	ConsistencyGaps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fintrack_consistency_gaps_total",
		Help: "Cascade deletions that left expense and debts out of sync.",
	})

	NotificationsSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fintrack_notifications_sent_total",
		Help: "Participant notifications delivered.",
	})

	OrphanedDebts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fintrack_orphaned_debts",
		Help: "Orphaned split debts observed by the last summary computation.",
	})
)
