package tg

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/expense-bot/internal/entity/chat"
	"max.ks1230/expense-bot/internal/logger"
	"max.ks1230/expense-bot/internal/model/messages"
)

const (
	defaultUpdateOffset = 0
	timeoutSeconds      = 5
)

type config interface {
	Token() string
	Debug() bool
}

type incomingHandler interface {
	HandleIncomingMessage(ctx context.Context, msg messages.Message) error
}

type Client struct {
	client *tgbotapi.BotAPI
}

func New(config config) (*Client, error) {
	client, err := tgbotapi.NewBotAPI(config.Token())
	if err != nil {
		return nil, errors.Wrap(err, "cannot NewBotApi")
	}
	client.Debug = config.Debug()
	return &Client{client}, nil
}

func (c *Client) SendMessage(reply chat.Reply) error {
	msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
	if markup := toMarkup(reply.Keyboard); markup != nil {
		msg.ReplyMarkup = markup
	}
	_, err := c.client.Send(msg)
	if err != nil {
		return errors.Wrap(err, "client.Send")
	}
	return nil
}

func toMarkup(kb *chat.Keyboard) interface{} {
	switch {
	case kb == nil:
		return nil
	case kb.Remove:
		return tgbotapi.NewRemoveKeyboard(false)
	case kb.Inline:
		rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
			}
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
		}
		return tgbotapi.NewInlineKeyboardMarkup(rows...)
	default:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
		for _, row := range kb.Rows {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, b := range row {
				buttons = append(buttons, tgbotapi.NewKeyboardButton(b.Text))
			}
			rows = append(rows, tgbotapi.NewKeyboardButtonRow(buttons...))
		}
		markup := tgbotapi.NewReplyKeyboard(rows...)
		markup.ResizeKeyboard = true
		return markup
	}
}

// ListenUpdates handles updates one at a time until ctx is done.
func (c *Client) ListenUpdates(ctx context.Context, msgModel incomingHandler) {
	u := tgbotapi.NewUpdate(defaultUpdateOffset)
	u.Timeout = 60

	updates := c.client.GetUpdatesChan(u)

	logger.Info("Start listening for messages")

	for {
		select {
		case <-ctx.Done():
			c.client.StopReceivingUpdates()
			logger.Info("Stop listening for messages")
			return
		case update := <-updates:
			c.listenOnce(ctx, update, msgModel)
		}
	}
}

func (c *Client) listenOnce(ctx context.Context, update tgbotapi.Update, msgModel incomingHandler) {
	msg, ok := toMessage(update)
	if !ok {
		return
	}
	logger.Info("incoming update",
		zap.Int64("user", msg.UserID),
		zap.String("text", msg.Text),
		zap.String("callback", msg.CallbackData))

	if update.CallbackQuery != nil {
		if _, err := c.client.Request(tgbotapi.NewCallback(update.CallbackQuery.ID, "")); err != nil {
			logger.Warn("cannot answer callback", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*timeoutSeconds)
	defer cancel()

	err := msgModel.HandleIncomingMessage(ctx, msg)
	if err != nil {
		logger.Error("error processing message:", zap.Error(err))
	}
}

func toMessage(update tgbotapi.Update) (messages.Message, bool) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		return messages.Message{
			Text:     update.Message.Text,
			UserID:   update.Message.From.ID,
			ChatID:   update.Message.Chat.ID,
			UserName: displayName(update.Message.From),
		}, true
	case update.CallbackQuery != nil && update.CallbackQuery.Message != nil:
		return messages.Message{
			CallbackData: update.CallbackQuery.Data,
			UserID:       update.CallbackQuery.From.ID,
			ChatID:       update.CallbackQuery.Message.Chat.ID,
			UserName:     displayName(update.CallbackQuery.From),
		}, true
	}
	return messages.Message{}, false
}

func displayName(u *tgbotapi.User) string {
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}
