package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"max.ks1230/expense-bot/internal/entity/category"
	"max.ks1230/expense-bot/internal/entity/chat"
	"max.ks1230/expense-bot/internal/model/customerr"
	"max.ks1230/expense-bot/internal/model/flow"
	"max.ks1230/expense-bot/internal/model/tracker"
)

const (
	dontUnderstandMessage = "I don't understand you :("
	helloMessage          = "Hello! I'm your expense tracking bot."
	loveToTalkMessage     = "I would love to talk about it more!"

	chooseCategoryMessage  = "Choose a category:"
	enterAmountMessage     = "Category: %s\nNow enter amount in %s:"
	invalidAmountMessage   = "Please enter a valid positive number."
	enterCommentMessage    = "Add a comment or type /skip to skip:"
	savedMessage           = "Expense saved."
	notEnoughMessage       = "Not enough balance: %s left, %s requested. Nothing was saved."
	notSavedMessage        = "The expense was not saved."
	cancelledMessage       = "Cancelled."
	balanceMessage         = "💰 Today's balance: %s"
	noExpensesTodayMessage = "No expenses for today."
	todayHeader            = "📄 Today's Expenses:"
	noStatsMessage         = "No expenses in the last 7 days."
	statsHeader            = "📊 Stats for last 7 days:"
	deletedMessage         = "Deleted: %s %s by %s"
	nothingToDeleteMessage = "No expenses to delete."
	notPersistedMessage    = "⚠️ Could not write to storage, this change may be lost on restart."
)

const (
	startCommand    = "/start"
	addCommand      = "/add"
	skipCommand     = "/skip"
	cancelCommand   = "/cancel"
	balanceCommand  = "/balance"
	expensesCommand = "/expenses"
	statsCommand    = "/stats"
	deleteCommand   = "/delete"
)

const (
	addButton      = "➕ Add Expense"
	balanceButton  = "💰 Balance"
	expensesButton = "📄 Expenses"
	statsButton    = "📊 Stats"
	deleteButton   = "❌ Delete Last"
	skipButton     = "Skip"
	cancelButton   = "Cancel"
)

const (
	categoryCallbackPrefix = category.CallbackPrefix
	skipCallback           = "comment:skip"
	cancelCallback         = "flow:cancel"
)

var buttonCommands = map[string]string{
	addButton:      addCommand,
	balanceButton:  balanceCommand,
	expensesButton: expensesCommand,
	statsButton:    statsCommand,
	deleteButton:   deleteCommand,
}

var textPrefixes = []struct {
	prefix  string
	command string
}{
	{"add expense", addCommand},
	{"balance", balanceCommand},
	{"expenses", expensesCommand},
	{"stats", statsCommand},
	{"delete", deleteCommand},
}

var mainMenu = &chat.Keyboard{
	Rows: [][]chat.Button{
		{{Text: addButton}},
		{{Text: balanceButton}, {Text: expensesButton}},
		{{Text: statsButton}, {Text: deleteButton}},
	},
}

type expenseTracker interface {
	Stage(u tracker.User) (flow.Stage, bool)
	StartSession(ctx context.Context, u tracker.User) tracker.Result
	SelectCategory(ctx context.Context, u tracker.User, category string) tracker.Result
	SubmitText(ctx context.Context, u tracker.User, text string) tracker.Result
	SkipComment(ctx context.Context, u tracker.User) tracker.Result
	CancelSession(ctx context.Context, u tracker.User) tracker.Result
	QueryBalance(ctx context.Context, u tracker.User) tracker.Result
	QueryToday(ctx context.Context, u tracker.User) tracker.Result
	QueryWeeklyStats(ctx context.Context, u tracker.User) tracker.Result
	DeleteLast(ctx context.Context, u tracker.User) tracker.Result
}

type config interface {
	CurrencySymbol() string
}

type handler func(ctx context.Context, u tracker.User, arg string) (chat.Reply, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	tracker     expenseTracker
	symbol      string
}

func newHandler(tracker expenseTracker, config config) *HandlerService {
	res := &HandlerService{
		handlersMap: nil,
		tracker:     tracker,
		symbol:      config.CurrencySymbol(),
	}
	res.handlersMap = newMap(res)
	return res
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[addCommand] = s.handleAdd
	m[skipCommand] = s.handleSkip
	m[cancelCommand] = s.handleCancel
	m[balanceCommand] = s.handleBalance
	m[expensesCommand] = s.handleExpenses
	m[statsCommand] = s.handleStats
	m[deleteCommand] = s.handleDelete

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) HandleMessage(ctx context.Context, msg Message) (chat.Reply, error) {
	u := tracker.User{ID: msg.UserID, ChatID: msg.ChatID, Name: msg.UserName}

	if msg.CallbackData != "" {
		countCommand("callback")
		return s.handleCallback(ctx, u, msg.CallbackData)
	}

	cmd, arg := parseCommand(msg.Text)
	if cmd == "" {
		_, inFlow := s.tracker.Stage(u)
		cmd = resolveAlias(msg.Text, inFlow)
	}

	handler, ok := s.handlersMap[cmd]
	if !ok {
		return s.reply(u, dontUnderstandMessage), nil
	}
	countCommand(cmd)
	return handler(ctx, u, arg)
}

func (s *HandlerService) handleCallback(ctx context.Context, u tracker.User, data string) (chat.Reply, error) {
	switch {
	case strings.HasPrefix(data, categoryCallbackPrefix):
		name := strings.TrimPrefix(data, categoryCallbackPrefix)
		return s.render(u, s.tracker.SelectCategory(ctx, u, name)), nil
	case data == skipCallback:
		return s.render(u, s.tracker.SkipComment(ctx, u)), nil
	case data == cancelCallback:
		return s.render(u, s.tracker.CancelSession(ctx, u)), nil
	}
	return chat.Reply{}, errors.Wrap(fmt.Errorf("unknown callback %q", data), "handle callback")
}

func (s *HandlerService) handleStart(_ context.Context, u tracker.User, _ string) (chat.Reply, error) {
	reply := s.reply(u, helloMessage)
	reply.Keyboard = mainMenu
	return reply, nil
}

func (s *HandlerService) handleAdd(ctx context.Context, u tracker.User, _ string) (chat.Reply, error) {
	return s.render(u, s.tracker.StartSession(ctx, u)), nil
}

func (s *HandlerService) handleSkip(ctx context.Context, u tracker.User, _ string) (chat.Reply, error) {
	return s.render(u, s.tracker.SkipComment(ctx, u)), nil
}

func (s *HandlerService) handleCancel(ctx context.Context, u tracker.User, _ string) (chat.Reply, error) {
	return s.render(u, s.tracker.CancelSession(ctx, u)), nil
}

func (s *HandlerService) handleBalance(ctx context.Context, u tracker.User, _ string) (chat.Reply, error) {
	return s.render(u, s.tracker.QueryBalance(ctx, u)), nil
}

func (s *HandlerService) handleExpenses(ctx context.Context, u tracker.User, _ string) (chat.Reply, error) {
	return s.render(u, s.tracker.QueryToday(ctx, u)), nil
}

func (s *HandlerService) handleStats(ctx context.Context, u tracker.User, _ string) (chat.Reply, error) {
	return s.render(u, s.tracker.QueryWeeklyStats(ctx, u)), nil
}

func (s *HandlerService) handleDelete(ctx context.Context, u tracker.User, _ string) (chat.Reply, error) {
	return s.render(u, s.tracker.DeleteLast(ctx, u)), nil
}

// handleNoCommand feeds free text into the running entry flow.
func (s *HandlerService) handleNoCommand(ctx context.Context, u tracker.User, arg string) (chat.Reply, error) {
	res := s.tracker.SubmitText(ctx, u, arg)
	if res.Kind == tracker.KindNoSession {
		return s.reply(u, loveToTalkMessage), nil
	}
	return s.render(u, res), nil
}

func (s *HandlerService) reply(u tracker.User, text string) chat.Reply {
	return chat.Reply{ChatID: u.ChatID, Text: text}
}

func (s *HandlerService) render(u tracker.User, res tracker.Result) chat.Reply {
	reply := s.reply(u, s.renderText(res))
	switch res.Kind {
	case tracker.KindPromptCategory:
		reply.Keyboard = categoryKeyboard(res.Categories)
	case tracker.KindPromptComment:
		reply.Keyboard = &chat.Keyboard{
			Inline: true,
			Rows:   [][]chat.Button{{{Text: skipButton, Data: skipCallback}, {Text: cancelButton, Data: cancelCallback}}},
		}
	}
	if res.NotPersisted {
		reply.Text += "\n" + notPersistedMessage
	}
	return reply
}

func (s *HandlerService) renderText(res tracker.Result) string {
	switch res.Kind {
	case tracker.KindPromptCategory:
		return chooseCategoryMessage
	case tracker.KindPromptAmount:
		if res.Err != nil {
			return invalidAmountMessage
		}
		return fmt.Sprintf(enterAmountMessage, res.Category, s.symbol)
	case tracker.KindPromptComment:
		return enterCommentMessage
	case tracker.KindSaved:
		return savedMessage + "\n" + fmt.Sprintf(balanceMessage, formatMoney(s.symbol, res.Balance))
	case tracker.KindRejected:
		var balanceErr *customerr.InsufficientBalanceError
		if errors.As(res.Err, &balanceErr) {
			return fmt.Sprintf(notEnoughMessage,
				formatMoney(s.symbol, balanceErr.Balance),
				formatMoney(s.symbol, balanceErr.Amount))
		}
		return notSavedMessage
	case tracker.KindCancelled:
		return cancelledMessage
	case tracker.KindBalance:
		return fmt.Sprintf(balanceMessage, formatMoney(s.symbol, res.Balance))
	case tracker.KindToday:
		return s.renderToday(res)
	case tracker.KindWeekly:
		return s.renderWeekly(res)
	case tracker.KindDeleted:
		if errors.Is(res.Err, customerr.ErrNothingToDelete) {
			return nothingToDeleteMessage
		}
		return fmt.Sprintf(deletedMessage, res.Expense.Category, formatMoney(s.symbol, res.Expense.Amount), res.Expense.Author) +
			"\n" + fmt.Sprintf(balanceMessage, formatMoney(s.symbol, res.Balance))
	}
	return loveToTalkMessage
}

func (s *HandlerService) renderToday(res tracker.Result) string {
	if len(res.Expenses) == 0 {
		return noExpensesTodayMessage
	}
	lines := make([]string, 0, len(res.Expenses)+1)
	lines = append(lines, todayHeader)
	for _, exp := range res.Expenses {
		line := fmt.Sprintf("- %s: %s", exp.Category, formatMoney(s.symbol, exp.Amount))
		if exp.Comment != "" {
			line += fmt.Sprintf(" (%s)", exp.Comment)
		}
		if exp.Author != "" {
			line += " — " + exp.Author
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (s *HandlerService) renderWeekly(res tracker.Result) string {
	if res.Report.Empty() {
		return noStatsMessage
	}
	lines := make([]string, 0, len(res.Report.Records)+3)
	lines = append(lines, statsHeader)
	for _, rec := range res.Report.Records {
		lines = append(lines, fmt.Sprintf("- %s: %s (%.1f%%)", rec.Category, formatMoney(s.symbol, rec.Amount), rec.Percent))
	}
	lines = append(lines, "", "Total: "+formatMoney(s.symbol, res.Report.Total))
	return strings.Join(lines, "\n")
}

func categoryKeyboard(categories []string) *chat.Keyboard {
	rows := make([][]chat.Button, 0, len(categories)+1)
	for _, c := range categories {
		rows = append(rows, []chat.Button{{Text: c, Data: categoryCallbackPrefix + c}})
	}
	rows = append(rows, []chat.Button{{Text: cancelButton, Data: cancelCallback}})
	return &chat.Keyboard{Inline: true, Rows: rows}
}
