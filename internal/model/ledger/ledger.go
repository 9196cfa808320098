package ledger

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/logger"
	"max.ks1230/expense-bot/internal/model/customerr"
	"max.ks1230/expense-bot/internal/utils"
)

type stateStorage interface {
	Load(ctx context.Context) expense.State
	Save(ctx context.Context, state expense.State) error
}

type config interface {
	DailyLimit() decimal.Decimal
	EnforceLimit() bool
}

// Ledger owns the expense state. Every mutation runs load-modify-save
// under one lock, so the nightly reset and user commands never interleave.
type Ledger struct {
	mu      sync.Mutex
	storage stateStorage
	state   expense.State
	limit   decimal.Decimal
	enforce bool
	clock   utils.Clock
}

func New(ctx context.Context, storage stateStorage, config config, clock utils.Clock) *Ledger {
	state := storage.Load(ctx)
	if state == nil {
		state = expense.NewState()
	}
	if rebased := rebase(state, config.DailyLimit()); rebased > 0 {
		logger.Warn("daily limit changed, stored balances rebased",
			zap.Int("buckets", rebased),
			zap.String("dailyLimit", config.DailyLimit().String()))
	}
	logger.Info("ledger loaded",
		zap.Int("users", len(state)),
		zap.String("dailyLimit", config.DailyLimit().String()),
		zap.Bool("enforceLimit", config.EnforceLimit()))

	return &Ledger{
		storage: storage,
		state:   state,
		limit:   config.DailyLimit(),
		enforce: config.EnforceLimit(),
		clock:   clock,
	}
}

// EnsureDay creates the (user, day) bucket with a full balance if it is missing.
func (l *Ledger) EnsureDay(ctx context.Context, userID int64, day expense.Day) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, created := l.ensure(userID, day); created {
		return l.persist(ctx, "ensure day")
	}
	return nil
}

func (l *Ledger) CurrentBalance(ctx context.Context, userID int64, day expense.Day) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, created := l.ensure(userID, day)
	if created {
		if err := l.persist(ctx, "current balance"); err != nil {
			logger.Warn("cannot persist new day", zap.Int64("userID", userID), zap.Error(err))
		}
	}
	return bucket.Balance
}

func (l *Ledger) RecordExpense(ctx context.Context, userID int64, day expense.Day, draft expense.Draft) (expense.Expense, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "recordExpense")
	defer span.Finish()

	if !draft.Amount.IsPositive() {
		return expense.Expense{}, errors.Wrap(customerr.ErrInvalidAmount, "record expense")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	bucket, _ := l.ensure(userID, day)
	if l.enforce && draft.Amount.GreaterThan(bucket.Balance) {
		return expense.Expense{}, errors.Wrap(&customerr.InsufficientBalanceError{
			Balance: bucket.Balance,
			Amount:  draft.Amount,
		}, "record expense")
	}

	exp := expense.Expense{
		ID:        uuid.NewString(),
		UserID:    userID,
		Author:    draft.Author,
		Date:      day,
		Category:  draft.Category,
		Amount:    draft.Amount,
		Comment:   draft.Comment,
		CreatedAt: l.clock.Now(),
	}
	bucket.Expenses = append(bucket.Expenses, exp)
	bucket.Balance = bucket.Balance.Sub(exp.Amount)

	logger.Info("expense recorded",
		zap.Int64("userID", userID),
		zap.String("day", string(day)),
		zap.String("category", exp.Category),
		zap.String("amount", exp.Amount.String()),
		zap.String("balance", bucket.Balance.String()))

	if err := l.persist(ctx, "record expense"); err != nil {
		ext.Error.Set(span, true)
		return exp, err
	}
	return exp, nil
}

// DeleteLast removes the most recently recorded expense of the day and credits it back.
func (l *Ledger) DeleteLast(ctx context.Context, userID int64, day expense.Day) (expense.Expense, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "deleteLast")
	defer span.Finish()

	l.mu.Lock()
	defer l.mu.Unlock()

	bucket := l.state[userID][day]
	if bucket == nil || len(bucket.Expenses) == 0 {
		return expense.Expense{}, errors.Wrap(customerr.ErrNothingToDelete, "delete last")
	}

	last := bucket.Expenses[len(bucket.Expenses)-1]
	bucket.Expenses = bucket.Expenses[:len(bucket.Expenses)-1]
	bucket.Balance = bucket.Balance.Add(last.Amount)

	logger.Info("expense deleted",
		zap.Int64("userID", userID),
		zap.String("day", string(day)),
		zap.String("id", last.ID),
		zap.String("balance", bucket.Balance.String()))

	if err := l.persist(ctx, "delete last"); err != nil {
		ext.Error.Set(span, true)
		return last, err
	}
	return last, nil
}

// ResetAll gives every known user a fresh bucket for asOf. Earlier days stay untouched.
func (l *Ledger) ResetAll(ctx context.Context, asOf expense.Day) (int, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "resetAll")
	defer span.Finish()
	span.SetTag("day", string(asOf))

	l.mu.Lock()
	defer l.mu.Unlock()

	for userID, days := range l.state {
		if days == nil {
			days = make(expense.Days)
			l.state[userID] = days
		}
		days[asOf] = expense.NewBucket(l.limit)
	}

	if err := l.persist(ctx, "reset all"); err != nil {
		ext.Error.Set(span, true)
		return len(l.state), err
	}
	return len(l.state), nil
}

// Expenses returns a copy of the day's expenses in insertion order.
func (l *Ledger) Expenses(userID int64, day expense.Day) []expense.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	bucket := l.state[userID][day]
	if bucket == nil {
		return []expense.Expense{}
	}
	res := make([]expense.Expense, len(bucket.Expenses))
	copy(res, bucket.Expenses)
	return res
}

// ExpensesBetween returns the user's expenses dated within [from, to], oldest day first.
func (l *Ledger) ExpensesBetween(userID int64, from, to expense.Day) []expense.Expense {
	l.mu.Lock()
	defer l.mu.Unlock()

	days := make([]expense.Day, 0)
	for day := range l.state[userID] {
		if day.Within(from, to) {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i] < days[j]
	})

	res := make([]expense.Expense, 0)
	for _, day := range days {
		res = append(res, l.state[userID][day].Expenses...)
	}
	return res
}

func (l *Ledger) Users() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	res := make([]int64, 0, len(l.state))
	for userID := range l.state {
		res = append(res, userID)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})
	return res
}

// ensure must be called with l.mu held.
func (l *Ledger) ensure(userID int64, day expense.Day) (*expense.Bucket, bool) {
	days, ok := l.state[userID]
	if !ok || days == nil {
		days = make(expense.Days)
		l.state[userID] = days
	}
	if bucket, ok := days[day]; ok && bucket != nil {
		return bucket, false
	}
	bucket := expense.NewBucket(l.limit)
	days[day] = bucket
	return bucket, true
}

// persist must be called with l.mu held. The in-memory state stays
// authoritative when saving fails.
func (l *Ledger) persist(ctx context.Context, op string) error {
	if err := l.storage.Save(ctx, l.state); err != nil {
		logger.Error("failed to save state", zap.String("op", op), zap.Error(err))
		return customerr.Persistence(err, op)
	}
	return nil
}

// rebase recomputes every balance that disagrees with limit minus spent,
// which happens when the configured limit changed between runs.
func rebase(state expense.State, limit decimal.Decimal) int {
	rebased := 0
	for _, days := range state {
		for _, bucket := range days {
			if bucket == nil {
				continue
			}
			want := limit.Sub(bucket.Spent())
			if !bucket.Balance.Equal(want) {
				bucket.Balance = want
				rebased++
			}
		}
	}
	return rebased
}
