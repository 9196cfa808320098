package tracker

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/logger"
	"max.ks1230/expense-bot/internal/model/customerr"
	"max.ks1230/expense-bot/internal/model/flow"
	"max.ks1230/expense-bot/internal/model/reports"
	"max.ks1230/expense-bot/internal/utils"
)

type ledgerService interface {
	CurrentBalance(ctx context.Context, userID int64, day expense.Day) decimal.Decimal
	RecordExpense(ctx context.Context, userID int64, day expense.Day, draft expense.Draft) (expense.Expense, error)
	DeleteLast(ctx context.Context, userID int64, day expense.Day) (expense.Expense, error)
	ResetAll(ctx context.Context, asOf expense.Day) (int, error)
	Users() []int64
}

type reportService interface {
	Today(userID int64, day expense.Day) []expense.Expense
	WeeklyReport(ctx context.Context, userID int64, today expense.Day) reports.Report
	Invalidate(userID int64, day expense.Day)
}

type config interface {
	Categories() []string
	Location() *time.Location
}

// User identifies who sent an event and where to answer.
type User struct {
	ID     int64
	ChatID int64
	Name   string
}

func (u User) key() flow.Key {
	return flow.Key{ChatID: u.ChatID, UserID: u.ID}
}

type Tracker struct {
	ledger   ledgerService
	reports  reportService
	machine  *flow.Machine
	sessions *flow.Sessions
	location *time.Location
	clock    utils.Clock
}

func New(ledger ledgerService, reports reportService, config config, clock utils.Clock) *Tracker {
	return &Tracker{
		ledger:   ledger,
		reports:  reports,
		machine:  flow.NewMachine(config.Categories()),
		sessions: flow.NewSessions(),
		location: config.Location(),
		clock:    clock,
	}
}

// Today is the current calendar day in the configured time zone.
func (t *Tracker) Today() expense.Day {
	return expense.DayOf(t.clock.Now().In(t.location))
}

func (t *Tracker) Categories() []string {
	return t.machine.Categories()
}

// Stage reports where the user's entry flow is, ok is false without one.
func (t *Tracker) Stage(u User) (flow.Stage, bool) {
	st, ok := t.sessions.Get(u.key())
	if !ok {
		return 0, false
	}
	return st.Stage(), true
}

// StartSession begins a new entry flow, abandoning any unfinished one.
func (t *Tracker) StartSession(_ context.Context, u User) Result {
	if _, ok := t.sessions.Get(u.key()); ok {
		logger.Info("abandoning stale entry flow", zap.Int64("userID", u.ID))
	}
	st, _ := t.machine.Start()
	t.sessions.Put(u.key(), st)
	return Result{Kind: KindPromptCategory, Categories: t.machine.Categories()}
}

func (t *Tracker) SelectCategory(ctx context.Context, u User, category string) Result {
	return t.step(ctx, u, flow.CategorySelected{Category: category})
}

func (t *Tracker) SubmitAmount(ctx context.Context, u User, text string) Result {
	return t.step(ctx, u, flow.AmountSubmitted{Text: text})
}

func (t *Tracker) SubmitComment(ctx context.Context, u User, text string) Result {
	return t.step(ctx, u, flow.CommentSubmitted{Text: text})
}

func (t *Tracker) SkipComment(ctx context.Context, u User) Result {
	return t.step(ctx, u, flow.CommentSkipped{})
}

func (t *Tracker) CancelSession(ctx context.Context, u User) Result {
	return t.step(ctx, u, flow.Cancelled{})
}

// SubmitText routes free text to whatever the running entry flow waits for.
func (t *Tracker) SubmitText(ctx context.Context, u User, text string) Result {
	st, ok := t.sessions.Get(u.key())
	if !ok {
		return Result{Kind: KindNoSession}
	}
	switch st.Stage() {
	case flow.StageCategory:
		return t.SelectCategory(ctx, u, text)
	case flow.StageAmount:
		return t.SubmitAmount(ctx, u, text)
	default:
		return t.SubmitComment(ctx, u, text)
	}
}

func (t *Tracker) step(ctx context.Context, u User, ev flow.Event) Result {
	st, ok := t.sessions.Get(u.key())
	if !ok {
		if _, cancel := ev.(flow.Cancelled); cancel {
			return Result{Kind: KindCancelled}
		}
		return Result{Kind: KindNoSession}
	}

	next, eff := t.machine.Step(st, ev)
	t.sessions.Put(u.key(), next)

	switch eff.Kind {
	case flow.PromptCategory:
		return Result{Kind: KindPromptCategory, Categories: t.machine.Categories()}
	case flow.PromptAmount:
		res := Result{Kind: KindPromptAmount, Err: eff.Err}
		if amt, ok := next.(flow.AwaitingAmount); ok {
			res.Category = amt.Category
		}
		return res
	case flow.PromptComment:
		return Result{Kind: KindPromptComment}
	case flow.Commit:
		return t.commit(ctx, u, eff.Draft)
	default:
		return Result{Kind: KindCancelled}
	}
}

func (t *Tracker) commit(ctx context.Context, u User, draft expense.Draft) Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, "commitExpense")
	defer span.Finish()

	day := t.Today()
	draft.Author = u.Name

	exp, err := t.ledger.RecordExpense(ctx, u.ID, day, draft)
	res := Result{Kind: KindSaved, Expense: exp}
	switch {
	case err == nil:
	case errors.Is(err, customerr.ErrPersistenceUnavailable):
		res.NotPersisted = true
	default:
		var balanceErr *customerr.InsufficientBalanceError
		reason := "invalid"
		if errors.As(err, &balanceErr) {
			reason = "balance"
		}
		expensesRejected.WithLabelValues(reason).Inc()
		logger.Info("expense rejected", zap.Int64("userID", u.ID), zap.Error(err))
		return Result{
			Kind:    KindRejected,
			Err:     err,
			Balance: t.ledger.CurrentBalance(ctx, u.ID, day),
		}
	}

	expensesRecorded.Inc()
	t.reports.Invalidate(u.ID, day)
	res.Balance = t.ledger.CurrentBalance(ctx, u.ID, day)
	return res
}

func (t *Tracker) QueryBalance(ctx context.Context, u User) Result {
	return Result{
		Kind:    KindBalance,
		Balance: t.ledger.CurrentBalance(ctx, u.ID, t.Today()),
	}
}

func (t *Tracker) QueryToday(_ context.Context, u User) Result {
	return Result{
		Kind:     KindToday,
		Expenses: t.reports.Today(u.ID, t.Today()),
	}
}

func (t *Tracker) QueryWeeklyStats(ctx context.Context, u User) Result {
	return Result{
		Kind:   KindWeekly,
		Report: t.reports.WeeklyReport(ctx, u.ID, t.Today()),
	}
}

func (t *Tracker) DeleteLast(ctx context.Context, u User) Result {
	day := t.Today()

	exp, err := t.ledger.DeleteLast(ctx, u.ID, day)
	res := Result{Kind: KindDeleted, Expense: exp}
	switch {
	case err == nil:
	case errors.Is(err, customerr.ErrPersistenceUnavailable):
		res.NotPersisted = true
	default:
		res.Err = err
		return res
	}

	expensesDeleted.Inc()
	t.reports.Invalidate(u.ID, day)
	res.Balance = t.ledger.CurrentBalance(ctx, u.ID, day)
	return res
}

// ResetAll is the single entry point for the midnight job.
func (t *Tracker) ResetAll(ctx context.Context) error {
	return t.ResetDay(ctx, t.Today())
}

// ResetDay refills every known user's bucket for day.
func (t *Tracker) ResetDay(ctx context.Context, day expense.Day) error {
	logger.Info("ResetAll - start", zap.String("day", string(day)))
	defer logger.Info("ResetAll - end")

	users, err := t.ledger.ResetAll(ctx, day)
	for _, userID := range t.ledger.Users() {
		t.reports.Invalidate(userID, day)
	}
	dailyResets.Inc()
	logger.Info("daily balances reset", zap.Int("users", users), zap.String("day", string(day)))
	return errors.Wrap(err, "reset all")
}
