package reports

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/opentracing/opentracing-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/logger"
)

// WeekDays is the length of the weekly window, today included.
const WeekDays = 7

var hundred = decimal.NewFromInt(100)

type expensesReader interface {
	Expenses(userID int64, day expense.Day) []expense.Expense
	ExpensesBetween(userID int64, from, to expense.Day) []expense.Expense
}

type reportCache interface {
	GetReport(userID int64, option string) (string, error)
	CacheReport(userID int64, option string, report string) error
	InvalidateCache(userID int64, options []string) error
}

type Record struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  float64         `json:"percent"`
}

type Report struct {
	From    expense.Day     `json:"from"`
	To      expense.Day     `json:"to"`
	Records []Record        `json:"records"`
	Total   decimal.Decimal `json:"total"`
}

// Empty is true when nothing was spent in the window, percentages are then undefined.
func (r Report) Empty() bool {
	return !r.Total.IsPositive()
}

type Generator struct {
	reader expensesReader
	cache  reportCache
}

func NewGenerator(reader expensesReader, cache reportCache) *Generator {
	return &Generator{
		reader: reader,
		cache:  cache,
	}
}

func (g *Generator) Today(userID int64, day expense.Day) []expense.Expense {
	return g.reader.Expenses(userID, day)
}

func (g *Generator) WeeklyReport(ctx context.Context, userID int64, today expense.Day) Report {
	span, _ := opentracing.StartSpanFromContext(ctx, "weeklyReport")
	defer span.Finish()

	option := WeekOption(today)
	if cached, ok := g.fromCache(userID, option); ok {
		span.SetTag("cached", true)
		return cached
	}

	logger.Info("WeeklyReport - start", zap.Int64("userID", userID), zap.String("to", string(today)))
	defer logger.Info("WeeklyReport - end")

	from := today.AddDays(-(WeekDays - 1))
	report := groupExpenses(g.reader.ExpensesBetween(userID, from, today))
	report.From, report.To = from, today

	g.toCache(userID, option, report)
	return report
}

// Invalidate drops cached reports whose window ends on day.
func (g *Generator) Invalidate(userID int64, day expense.Day) {
	err := g.cache.InvalidateCache(userID, []string{WeekOption(day)})
	if err != nil {
		logger.Warn("cannot invalidate report cache", zap.Int64("userID", userID), zap.Error(err))
	}
}

func WeekOption(day expense.Day) string {
	return "week:" + string(day)
}

func (g *Generator) fromCache(userID int64, option string) (Report, bool) {
	raw, err := g.cache.GetReport(userID, option)
	if err != nil {
		logger.Debug("report cache miss", zap.Int64("userID", userID), zap.String("option", option), zap.Error(err))
		return Report{}, false
	}
	var report Report
	if err = json.Unmarshal([]byte(raw), &report); err != nil {
		logger.Warn("cannot decode cached report", zap.Int64("userID", userID), zap.Error(err))
		return Report{}, false
	}
	return report, true
}

func (g *Generator) toCache(userID int64, option string, report Report) {
	raw, err := json.Marshal(report)
	if err != nil {
		logger.Warn("cannot encode report", zap.Error(err))
		return
	}
	if err = g.cache.CacheReport(userID, option, string(raw)); err != nil {
		logger.Warn("cannot cache report", zap.Int64("userID", userID), zap.Error(err))
	}
}

func groupExpenses(exps []expense.Expense) Report {
	m := make(map[string]decimal.Decimal)
	for _, exp := range exps {
		m[exp.Category] = m[exp.Category].Add(exp.Amount)
	}

	total := decimal.Zero
	records := make([]Record, 0, len(m))
	for cat, am := range m {
		records = append(records, Record{Category: cat, Amount: am})
		total = total.Add(am)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Amount.Equal(records[j].Amount) {
			return records[i].Category < records[j].Category
		}
		return records[i].Amount.GreaterThan(records[j].Amount)
	})

	if total.IsPositive() {
		for i := range records {
			records[i].Percent, _ = records[i].Amount.Mul(hundred).Div(total).Float64()
		}
	}

	return Report{
		Records: records,
		Total:   total,
	}
}
