package telegram

import (
	"fmt"

	"gopkg.in/telebot.v3"
)

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
}

// SendMessageError wraps a failed outbound delivery. Delivery failures are
// reported, never fatal: the poll loop keeps running.
type SendMessageError struct {
	Err error
}

func (e *SendMessageError) Error() string {
	return fmt.Sprintf("telegram message delivery failed: %v", e.Err)
}

func (e *SendMessageError) Unwrap() error { return e.Err }
