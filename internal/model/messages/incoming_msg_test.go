package messages

import (
	"context"
	"testing"
	"time"

	"github.com/gojuno/minimock/v3"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/expense-bot/internal/clients/cache"
	"max.ks1230/expense-bot/internal/entity/category"
	"max.ks1230/expense-bot/internal/entity/chat"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/model/ledger"
	ledgermock "max.ks1230/expense-bot/internal/model/ledger/mock"
	"max.ks1230/expense-bot/internal/model/messages/mock"
	"max.ks1230/expense-bot/internal/model/reports"
	"max.ks1230/expense-bot/internal/model/storage"
	"max.ks1230/expense-bot/internal/model/tracker"
	"max.ks1230/expense-bot/internal/utils"
)

const (
	userID int64 = 123
	chatID int64 = 456
)

type testConfig struct{}

func (testConfig) DailyLimit() decimal.Decimal { return decimal.NewFromInt(60) }
func (testConfig) EnforceLimit() bool          { return true }
func (testConfig) Categories() []string        { return category.Defaults }
func (testConfig) Location() *time.Location    { return time.UTC }
func (testConfig) CurrencySymbol() string      { return "$" }

func newTracker() *tracker.Tracker {
	ctx := context.Background()
	clock := &utils.MockClock{FixedNow: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	l := ledger.New(ctx, storage.NewInMemStorage(), testConfig{}, clock)
	return tracker.New(l, reports.NewGenerator(l, cache.NoCache{}), testConfig{}, clock)
}

// recorder collects every reply the service sends.
type recorder struct {
	sent []chat.Reply
}

func (r *recorder) last() chat.Reply {
	if len(r.sent) == 0 {
		return chat.Reply{}
	}
	return r.sent[len(r.sent)-1]
}

func newRecordingService(t *testing.T) (*Service, *recorder) {
	m := minimock.NewController(t)
	t.Cleanup(m.Finish)

	rec := &recorder{}
	sender := mock.NewMessageSenderMock(m)
	sender.SendMessageMock.Set(func(reply chat.Reply) error {
		rec.sent = append(rec.sent, reply)
		return nil
	})
	return NewService(sender, newTracker(), testConfig{}), rec
}

func send(t *testing.T, s *Service, text string) {
	t.Helper()
	require.NoError(t, s.HandleIncomingMessage(context.Background(), Message{
		Text:     text,
		UserID:   userID,
		ChatID:   chatID,
		UserName: "Max",
	}))
}

func press(t *testing.T, s *Service, data string) {
	t.Helper()
	require.NoError(t, s.HandleIncomingMessage(context.Background(), Message{
		CallbackData: data,
		UserID:       userID,
		ChatID:       chatID,
		UserName:     "Max",
	}))
}

func Test_OnStartCommand_ShouldAnswerWithIntroMessage(t *testing.T) {
	m := minimock.NewController(t)
	defer m.Finish()
	sender := mock.NewMessageSenderMock(m)

	sender.SendMessageMock.
		Expect(chat.Reply{ChatID: chatID, Text: "Hello! I'm your expense tracking bot.", Keyboard: mainMenu}).
		Return(nil)

	model := NewService(sender, newTracker(), testConfig{})
	err := model.HandleIncomingMessage(context.Background(), Message{
		Text:   "/start",
		UserID: userID,
		ChatID: chatID,
	})

	assert.NoError(t, err)
}

func Test_OnUnknownCommand_ShouldAnswerWithHelpMessage(t *testing.T) {
	m := minimock.NewController(t)
	defer m.Finish()
	sender := mock.NewMessageSenderMock(m)

	sender.SendMessageMock.
		Expect(chat.Reply{ChatID: chatID, Text: "I don't understand you :("}).
		Return(nil)

	model := NewService(sender, newTracker(), testConfig{})
	err := model.HandleIncomingMessage(context.Background(), Message{
		Text:   "/none",
		UserID: userID,
		ChatID: chatID,
	})

	assert.NoError(t, err)
}

func Test_OnTextWithoutFlow_ShouldAnswerWithSmallTalk(t *testing.T) {
	s, rec := newRecordingService(t)

	send(t, s, "how are you?")

	assert.Equal(t, "I would love to talk about it more!", rec.last().Text)
}

func Test_OnFullEntryFlow_ShouldSaveAndReport(t *testing.T) {
	s, rec := newRecordingService(t)

	send(t, s, "➕ Add Expense")
	reply := rec.last()
	assert.Equal(t, "Choose a category:", reply.Text)
	require.NotNil(t, reply.Keyboard)
	assert.True(t, reply.Keyboard.Inline)
	require.Len(t, reply.Keyboard.Rows, len(category.Defaults)+1)
	assert.Equal(t, "category:Food", reply.Keyboard.Rows[0][0].Data)
	assert.Equal(t, "flow:cancel", reply.Keyboard.Rows[len(category.Defaults)][0].Data)

	press(t, s, "category:Food")
	assert.Equal(t, "Category: Food\nNow enter amount in $:", rec.last().Text)

	send(t, s, "12,5")
	assert.Equal(t, "Add a comment or type /skip to skip:", rec.last().Text)

	send(t, s, "lunch")
	assert.Equal(t, "Expense saved.\n💰 Today's balance: $47.50", rec.last().Text)

	send(t, s, "📄 Expenses")
	assert.Equal(t, "📄 Today's Expenses:\n- Food: $12.50 (lunch) — Max", rec.last().Text)

	send(t, s, "stats")
	assert.Equal(t, "📊 Stats for last 7 days:\n- Food: $12.50 (100.0%)\n\nTotal: $12.50", rec.last().Text)

	send(t, s, "/delete")
	assert.Equal(t, "Deleted: Food $12.50 by Max\n💰 Today's balance: $60.00", rec.last().Text)

	send(t, s, "💰 Balance")
	assert.Equal(t, "💰 Today's balance: $60.00", rec.last().Text)
}

func Test_OnInvalidAmount_ShouldAskAgain(t *testing.T) {
	s, rec := newRecordingService(t)

	send(t, s, "/add")
	press(t, s, "category:Cafe")
	send(t, s, "abc")
	assert.Equal(t, "Please enter a valid positive number.", rec.last().Text)

	send(t, s, "-5")
	assert.Equal(t, "Please enter a valid positive number.", rec.last().Text)

	send(t, s, "4.20")
	assert.Equal(t, "Add a comment or type /skip to skip:", rec.last().Text)
}

func Test_OnOverspend_ShouldRejectWithoutSaving(t *testing.T) {
	s, rec := newRecordingService(t)

	send(t, s, "/add")
	press(t, s, "category:Shopping")
	send(t, s, "70")
	send(t, s, "/skip")
	assert.Equal(t, "Not enough balance: $60.00 left, $70.00 requested. Nothing was saved.", rec.last().Text)

	send(t, s, "/expenses")
	assert.Equal(t, "No expenses for today.", rec.last().Text)
}

func Test_OnCommentLookingLikeCommand_ShouldKeepItAsComment(t *testing.T) {
	s, rec := newRecordingService(t)

	send(t, s, "/add")
	press(t, s, "category:Food")
	send(t, s, "3")
	send(t, s, "balance top-up snack")
	assert.Equal(t, "Expense saved.\n💰 Today's balance: $57.00", rec.last().Text)

	send(t, s, "/expenses")
	assert.Equal(t, "📄 Today's Expenses:\n- Food: $3.00 (balance top-up snack) — Max", rec.last().Text)
}

func Test_OnSkipButton_ShouldSaveWithoutComment(t *testing.T) {
	s, rec := newRecordingService(t)

	send(t, s, "/add")
	press(t, s, "category:Pets")
	send(t, s, "10")
	reply := rec.last()
	require.NotNil(t, reply.Keyboard)
	assert.Equal(t, "comment:skip", reply.Keyboard.Rows[0][0].Data)

	press(t, s, "comment:skip")
	assert.Equal(t, "Expense saved.\n💰 Today's balance: $50.00", rec.last().Text)

	send(t, s, "/expenses")
	assert.Equal(t, "📄 Today's Expenses:\n- Pets: $10.00 — Max", rec.last().Text)
}

func Test_OnCancel_ShouldDropFlow(t *testing.T) {
	s, rec := newRecordingService(t)

	send(t, s, "/add")
	press(t, s, "category:Food")
	press(t, s, "flow:cancel")
	assert.Equal(t, "Cancelled.", rec.last().Text)

	send(t, s, "12")
	assert.Equal(t, "I would love to talk about it more!", rec.last().Text)
}

func Test_OnSaveFailure_ShouldWarnChangeMayBeLost(t *testing.T) {
	ctx := context.Background()
	m := minimock.NewController(t)
	defer m.Finish()

	store := ledgermock.NewStateStorageMock(m)
	store.LoadMock.Return(expense.NewState())
	store.SaveMock.Return(errors.New("disk full"))

	clock := &utils.MockClock{FixedNow: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	l := ledger.New(ctx, store, testConfig{}, clock)
	tr := tracker.New(l, reports.NewGenerator(l, cache.NoCache{}), testConfig{}, clock)

	rec := &recorder{}
	sender := mock.NewMessageSenderMock(m)
	sender.SendMessageMock.Set(func(reply chat.Reply) error {
		rec.sent = append(rec.sent, reply)
		return nil
	})
	s := NewService(sender, tr, testConfig{})

	send(t, s, "/add")
	press(t, s, "category:Food")
	send(t, s, "10")
	send(t, s, "/skip")
	assert.Equal(t, "Expense saved.\n💰 Today's balance: $50.00\n"+
		"⚠️ Could not write to storage, this change may be lost on restart.", rec.last().Text)

	send(t, s, "/delete")
	assert.Contains(t, rec.last().Text, "Deleted: Food $10.00 by Max")
	assert.Contains(t, rec.last().Text, "may be lost on restart")
}

func Test_OnEmptyQueries_ShouldAnswerNoData(t *testing.T) {
	s, rec := newRecordingService(t)

	send(t, s, "/stats")
	assert.Equal(t, "No expenses in the last 7 days.", rec.last().Text)

	send(t, s, "❌ Delete Last")
	assert.Equal(t, "No expenses to delete.", rec.last().Text)
}

func Test_OnUnknownCallback_ShouldApologizeAndFail(t *testing.T) {
	m := minimock.NewController(t)
	defer m.Finish()
	sender := mock.NewMessageSenderMock(m)

	sender.SendMessageMock.
		Expect(chat.Reply{ChatID: chatID, Text: "Sorry, something wrong happened..."}).
		Return(nil)

	model := NewService(sender, newTracker(), testConfig{})
	err := model.HandleIncomingMessage(context.Background(), Message{
		CallbackData: "bogus",
		UserID:       userID,
		ChatID:       chatID,
	})

	assert.Error(t, err)
}

func Test_ParseCommand(t *testing.T) {
	cmd, arg := parseCommand("/Add@expense_bot  now ")
	assert.Equal(t, "/add", cmd)
	assert.Equal(t, "now", arg)

	cmd, arg = parseCommand("  lunch with Bob ")
	assert.Equal(t, "", cmd)
	assert.Equal(t, "lunch with Bob", arg)
}

func Test_ResolveAlias(t *testing.T) {
	assert.Equal(t, addCommand, resolveAlias("➕ Add Expense", false))
	assert.Equal(t, addCommand, resolveAlias("Add expense please", false))
	assert.Equal(t, statsCommand, resolveAlias("STATS", false))
	assert.Equal(t, "", resolveAlias("stats", true))
	assert.Equal(t, statsCommand, resolveAlias("📊 Stats", true))
	assert.Equal(t, "", resolveAlias("coffee", false))
}

func Test_FormatMoney(t *testing.T) {
	assert.Equal(t, "$12.50", formatMoney("$", decimal.RequireFromString("12.5")))
	assert.Equal(t, "-$3.00", formatMoney("$", decimal.NewFromInt(-3)))
}
