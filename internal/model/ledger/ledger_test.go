package ledger

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/gojuno/minimock/v3"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/model/customerr"
	"max.ks1230/expense-bot/internal/model/ledger/mock"
	"max.ks1230/expense-bot/internal/model/storage"
	"max.ks1230/expense-bot/internal/utils"
)

const (
	userID = int64(123)
	today  = expense.Day("2026-10-19")
)

type testConfig struct {
	limit   decimal.Decimal
	enforce bool
}

func (c testConfig) DailyLimit() decimal.Decimal {
	return c.limit
}

func (c testConfig) EnforceLimit() bool {
	return c.enforce
}

func newLedger(t *testing.T, enforce bool) (*Ledger, *storage.InMemStorage) {
	t.Helper()
	store := storage.NewInMemStorage()
	clock := &utils.MockClock{FixedNow: time.Date(2026, 10, 19, 13, 0, 0, 0, time.UTC)}
	return New(context.Background(), store, testConfig{limit: decimal.NewFromInt(60), enforce: enforce}, clock), store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func assertInvariant(t *testing.T, l *Ledger, user int64, day expense.Day) {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	bucket := l.state[user][day]
	require.NotNil(t, bucket)
	assertAmount(t, l.limit.Sub(bucket.Spent()).String(), bucket.Balance)
}

func Test_OnRecordAndDelete_ShouldRestoreBalance(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t, true)

	exp, err := l.RecordExpense(ctx, userID, today, expense.Draft{
		Category: "Food",
		Amount:   dec("12.50"),
		Comment:  "lunch",
		Author:   "Max",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, exp.ID)
	assert.Equal(t, today, exp.Date)

	assertAmount(t, "47.50", l.CurrentBalance(ctx, userID, today))
	assert.Len(t, l.Expenses(userID, today), 1)

	deleted, err := l.DeleteLast(ctx, userID, today)
	require.NoError(t, err)
	assert.Equal(t, exp, deleted)

	assertAmount(t, "60.00", l.CurrentBalance(ctx, userID, today))
	assert.Empty(t, l.Expenses(userID, today))
	assertAmount(t, "60", store.Load(ctx)[userID][today].Balance)
}

func Test_OnOverspend_ShouldRejectWithInsufficientBalance(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, true)

	_, err := l.RecordExpense(ctx, userID, today, expense.Draft{Category: "Food", Amount: dec("75")})

	var balanceErr *customerr.InsufficientBalanceError
	require.True(t, errors.As(err, &balanceErr))
	assertAmount(t, "60", balanceErr.Balance)
	assertAmount(t, "75", balanceErr.Amount)
	assert.Empty(t, l.Expenses(userID, today))
	assertAmount(t, "60", l.CurrentBalance(ctx, userID, today))
}

func Test_OnExactBalance_ShouldAllowSpendingToZero(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, true)

	_, err := l.RecordExpense(ctx, userID, today, expense.Draft{Category: "Food", Amount: dec("60")})

	require.NoError(t, err)
	assertAmount(t, "0", l.CurrentBalance(ctx, userID, today))
}

func Test_OnPermissiveMode_ShouldAllowNegativeBalance(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, false)

	_, err := l.RecordExpense(ctx, userID, today, expense.Draft{Category: "Food", Amount: dec("75")})

	require.NoError(t, err)
	assertAmount(t, "-15", l.CurrentBalance(ctx, userID, today))
	assertInvariant(t, l, userID, today)
}

func Test_OnNonPositiveAmount_ShouldRejectWithInvalidAmount(t *testing.T) {
	l, store := newLedger(t, true)

	for _, amount := range []string{"0", "-3"} {
		_, err := l.RecordExpense(context.Background(), userID, today, expense.Draft{Category: "Food", Amount: dec(amount)})
		assert.True(t, errors.Is(err, customerr.ErrInvalidAmount))
	}
	assert.Equal(t, 0, store.Saves())
}

func Test_OnEmptyDay_ShouldReportNothingToDelete(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t, true)

	_, err := l.DeleteLast(ctx, userID, today)
	assert.True(t, errors.Is(err, customerr.ErrNothingToDelete))

	require.NoError(t, l.EnsureDay(ctx, userID, today))
	saves := store.Saves()

	_, err = l.DeleteLast(ctx, userID, today)
	assert.True(t, errors.Is(err, customerr.ErrNothingToDelete))
	assert.Equal(t, saves, store.Saves())
}

func Test_OnDeleteLast_ShouldUndoOnlyMostRecent(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, true)

	first, err := l.RecordExpense(ctx, userID, today, expense.Draft{Category: "Food", Amount: dec("10"), Comment: "a"})
	require.NoError(t, err)
	before := l.CurrentBalance(ctx, userID, today)
	second, err := l.RecordExpense(ctx, userID, today, expense.Draft{Category: "Cafe", Amount: dec("4.20"), Comment: "b"})
	require.NoError(t, err)

	deleted, err := l.DeleteLast(ctx, userID, today)
	require.NoError(t, err)

	assert.Equal(t, second, deleted)
	assert.Equal(t, []expense.Expense{first}, l.Expenses(userID, today))
	assertAmount(t, before.String(), l.CurrentBalance(ctx, userID, today))
}

func Test_OnEnsureDay_ShouldBeIdempotent(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t, true)

	require.NoError(t, l.EnsureDay(ctx, userID, today))
	_, err := l.RecordExpense(ctx, userID, today, expense.Draft{Category: "Food", Amount: dec("5")})
	require.NoError(t, err)
	saves := store.Saves()

	require.NoError(t, l.EnsureDay(ctx, userID, today))

	assert.Equal(t, saves, store.Saves())
	assertAmount(t, "55", l.CurrentBalance(ctx, userID, today))
}

func Test_OnRandomSequence_ShouldKeepBalanceInvariant(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, true)
	rnd := rand.New(rand.NewSource(7))

	for i := 0; i < 300; i++ {
		if rnd.Intn(3) == 0 {
			_, _ = l.DeleteLast(ctx, userID, today)
		} else {
			cents := rnd.Int63n(2500) + 1
			_, _ = l.RecordExpense(ctx, userID, today, expense.Draft{
				Category: "Food",
				Amount:   decimal.New(cents, -2),
			})
		}
		assertInvariant(t, l, userID, today)
		assert.False(t, l.CurrentBalance(ctx, userID, today).IsNegative())
	}
}

func Test_OnResetAll_ShouldRefillTodayAndKeepPriorDays(t *testing.T) {
	ctx := context.Background()
	l, store := newLedger(t, true)
	yesterday := today.AddDays(-1)

	_, err := l.RecordExpense(ctx, userID, yesterday, expense.Draft{Category: "Food", Amount: dec("20")})
	require.NoError(t, err)
	_, err = l.RecordExpense(ctx, 456, today, expense.Draft{Category: "Pets", Amount: dec("8")})
	require.NoError(t, err)
	saves := store.Saves()

	users, err := l.ResetAll(ctx, today)
	require.NoError(t, err)

	assert.Equal(t, 2, users)
	assert.Equal(t, saves+1, store.Saves())
	for _, id := range []int64{userID, 456} {
		assertAmount(t, "60", l.CurrentBalance(ctx, id, today))
		assert.Empty(t, l.Expenses(id, today))
	}
	assert.Len(t, l.Expenses(userID, yesterday), 1)
	assertAmount(t, "40", l.CurrentBalance(ctx, userID, yesterday))
}

func Test_OnExpensesBetween_ShouldFilterByDayInclusive(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, true)

	for _, offset := range []int{-7, -6, -3, 0} {
		_, err := l.RecordExpense(ctx, userID, today.AddDays(offset), expense.Draft{Category: "Food", Amount: dec("1")})
		require.NoError(t, err)
	}

	exps := l.ExpensesBetween(userID, today.AddDays(-6), today)

	require.Len(t, exps, 3)
	assert.Equal(t, today.AddDays(-6), exps[0].Date)
	assert.Equal(t, today, exps[2].Date)
	assert.Empty(t, l.ExpensesBetween(789, today.AddDays(-6), today))
}

func Test_OnStoredState_ShouldStartFromIt(t *testing.T) {
	m := minimock.NewController(t)
	defer m.Finish()
	store := mock.NewStateStorageMock(m)

	state := expense.NewState()
	state[userID] = expense.Days{today: {Balance: dec("30"), Expenses: []expense.Expense{{Amount: dec("30"), Date: today}}}}
	store.LoadMock.Return(state)

	l := New(context.Background(), store, testConfig{limit: decimal.NewFromInt(60), enforce: true}, utils.SystemClock{})

	assertAmount(t, "30", l.CurrentBalance(context.Background(), userID, today))
	assert.Equal(t, []int64{userID}, l.Users())
}

func Test_OnChangedDailyLimit_ShouldRebaseStoredBalances(t *testing.T) {
	m := minimock.NewController(t)
	defer m.Finish()
	store := mock.NewStateStorageMock(m)

	yesterday := today.AddDays(-1)
	state := expense.NewState()
	state[userID] = expense.Days{
		today:     {Balance: dec("50"), Expenses: []expense.Expense{{Amount: dec("10"), Date: today}}},
		yesterday: {Balance: dec("60"), Expenses: []expense.Expense{}},
	}
	store.LoadMock.Return(state)

	l := New(context.Background(), store, testConfig{limit: decimal.NewFromInt(80), enforce: true}, utils.SystemClock{})

	assertAmount(t, "70", l.CurrentBalance(context.Background(), userID, today))
	assertAmount(t, "80", l.CurrentBalance(context.Background(), userID, yesterday))
	assertInvariant(t, l, userID, today)
}

func Test_OnSaveFailure_ShouldKeepMemoryAndReportPersistence(t *testing.T) {
	ctx := context.Background()
	m := minimock.NewController(t)
	defer m.Finish()
	store := mock.NewStateStorageMock(m)

	store.LoadMock.Return(expense.NewState())
	store.SaveMock.Return(errors.New("disk full"))

	l := New(ctx, store, testConfig{limit: decimal.NewFromInt(60), enforce: true}, utils.SystemClock{})
	exp, err := l.RecordExpense(ctx, userID, today, expense.Draft{Category: "Food", Amount: dec("10")})

	assert.True(t, errors.Is(err, customerr.ErrPersistenceUnavailable))
	assert.Equal(t, "Food", exp.Category)
	assert.Len(t, l.Expenses(userID, today), 1)
	assertInvariant(t, l, userID, today)
}

func Test_OnConcurrentResetAndRecord_ShouldNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	l, _ := newLedger(t, false)
	yesterday := today.AddDays(-1)
	require.NoError(t, l.EnsureDay(ctx, userID, today))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = l.RecordExpense(ctx, userID, yesterday, expense.Draft{Category: "Food", Amount: dec("1")})
		}()
		go func() {
			defer wg.Done()
			_, _ = l.ResetAll(ctx, today)
		}()
	}
	wg.Wait()

	assert.Len(t, l.Expenses(userID, yesterday), 50)
	assertInvariant(t, l, userID, yesterday)
	assertInvariant(t, l, userID, today)
}
