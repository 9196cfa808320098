package tracker

import (
	"github.com/shopspring/decimal"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/model/reports"
)

type Kind int

const (
	KindPromptCategory Kind = iota + 1
	KindPromptAmount
	KindPromptComment
	KindSaved
	KindRejected
	KindCancelled
	KindNoSession
	KindBalance
	KindToday
	KindWeekly
	KindDeleted
)

// Result is what the core answers to one inbound event. Err carries a
// customerr value the user has to be told about, NotPersisted is set when
// the change is applied in memory but could not be written out.
type Result struct {
	Kind         Kind
	Err          error
	NotPersisted bool

	Categories []string
	Category   string
	Expense    expense.Expense
	Expenses   []expense.Expense
	Balance    decimal.Decimal
	Report     reports.Report
}
