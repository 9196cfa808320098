package tracker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	expensesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "expensebot",
		Subsystem: "ledger",
		Name:      "expenses_recorded_total",
	})
	expensesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "expensebot",
		Subsystem: "ledger",
		Name:      "expenses_rejected_total",
	}, []string{"reason"})
	expensesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "expensebot",
		Subsystem: "ledger",
		Name:      "expenses_deleted_total",
	})
	dailyResets = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "expensebot",
		Subsystem: "ledger",
		Name:      "daily_resets_total",
	})
)
