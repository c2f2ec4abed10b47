package transport

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akshata29/corporateactions-sub000/internal/domain"
)

// Telegram pushes rendered payloads through the Bot API when the delivery
// target's conversation id is a chat id.
type Telegram struct {
	bot *tgbotapi.BotAPI
}

var _ domain.Transport = (*Telegram)(nil)

// NewTelegram authorizes the bot.
func NewTelegram(token string) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorize bot: %w", err)
	}
	return &Telegram{bot: bot}, nil
}

// Deliver sends the payload as one message to the subscriber's chat.
func (t *Telegram) Deliver(ctx context.Context, sub domain.Subscription, payload domain.NotificationPayload) error {
	chatID, err := strconv.ParseInt(sub.Target.ConversationID, 10, 64)
	if err != nil {
		return fmt.Errorf("conversation id %q is not a chat id: %w", sub.Target.ConversationID, err)
	}
	msg := tgbotapi.NewMessage(chatID, payload.Title+"\n\n"+payload.Body)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}
