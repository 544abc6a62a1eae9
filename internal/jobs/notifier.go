package jobs

import (
	"context"
	"fmt"

	"aeroportal/flightops/internal/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier delivers a rendered alert digest.
type Notifier interface {
	Notify(ctx context.Context, text string) error
	Name() string
}

// telegramSender is the part of tgbotapi.BotAPI the notifier uses.
type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts digests to one chat.
type TelegramNotifier struct {
	api    telegramSender
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	return nil
}

func (n *TelegramNotifier) Name() string { return "telegram" }

// LogNotifier writes digests to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, text string) error {
	logging.Warn("Maintenance alerts", "digest", text)
	return nil
}

func (LogNotifier) Name() string { return "log" }
