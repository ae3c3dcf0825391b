package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/patitas/patitas/internal/match"
)

// TelegramNotifier sends alerts to a fixed Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// NotifyAlert sends the alert as a plain message.
func (n *TelegramNotifier) NotifyAlert(ctx context.Context, alert *match.Alert, sourceName string) error {
	text := fmt.Sprintf(
		"🚨 Posible coincidencia: el reporte de %q (#%d) coincide al %.0f%% con %q (#%d).",
		sourceName, alert.SourceID, alert.FusedScore*100, alert.MatchedName, alert.MatchedID,
	)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		return errors.Wrap(err, "failed to send telegram alert")
	}
	return nil
}
