package messages

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"max.ks1230/expense-bot/internal/entity/chat"
)

const somethingWrongMessage = "Sorry, something wrong happened..."

type messageSender interface {
	SendMessage(reply chat.Reply) error
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, msg Message) (chat.Reply, error)
}

type Service struct {
	tgClient messageSender
	handler  MessageHandler
}

func NewService(tgClient messageSender, tracker expenseTracker, config config) *Service {
	return &Service{
		tgClient: tgClient,
		handler:  newHandler(tracker, config),
	}
}

// Message is either a text message or an inline button press (CallbackData set).
type Message struct {
	Text         string
	CallbackData string
	UserID       int64
	ChatID       int64
	UserName     string
}

func (s *Service) HandleIncomingMessage(ctx context.Context, msg Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "handleMessage")
	defer span.Finish()

	start := time.Now()
	err := s.handle(ctx, msg)
	elapsed := time.Since(start)

	observeResponse(elapsed, err != nil)
	if err != nil {
		ext.Error.Set(span, true)
	}
	return err
}

func (s *Service) handle(ctx context.Context, msg Message) error {
	reply, err := s.handler.HandleMessage(ctx, msg)
	if err != nil {
		_ = s.tgClient.SendMessage(chat.Reply{ChatID: msg.ChatID, Text: somethingWrongMessage})
		return err
	}
	return s.tgClient.SendMessage(reply)
}
