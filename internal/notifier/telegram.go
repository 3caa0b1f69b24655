// Package notifier delivers status messages to a Telegram chat.
package notifier

import (
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends messages to a single configured chat.
type Telegram struct {
	api    telegramAPI
	chatID int64
	log    *slog.Logger
}

// New creates a Telegram notifier with the given bot token.
func New(token string, chatID int64, log *slog.Logger) *Telegram {
	return NewWithClient(token, chatID, http.DefaultClient, log)
}

// NewWithClient creates a Telegram notifier that talks to the Bot API through
// client. Unlike tgbotapi.NewBotAPI it does not call getMe, so a network
// outage at startup only shows up on the first send.
func NewWithClient(token string, chatID int64, client tgbotapi.HTTPClient, log *slog.Logger) *Telegram {
	api := &tgbotapi.BotAPI{
		Token:  token,
		Client: client,
		Buffer: 100,
	}
	api.SetAPIEndpoint(tgbotapi.APIEndpoint)
	return NewWithAPI(api, chatID, log)
}

// NewWithAPI creates a Telegram notifier on top of an existing API client.
func NewWithAPI(api telegramAPI, chatID int64, log *slog.Logger) *Telegram {
	return &Telegram{api: api, chatID: chatID, log: log}
}

// Notify sends text to the configured chat. Delivery failures are logged and
// never returned.
func (t *Telegram) Notify(text string) {
	t.log.Debug("sending telegram message", "chat_id", t.chatID, "text", text)

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := t.api.Send(msg); err != nil {
		t.log.Error("send message", "chat_id", t.chatID, "error", err)
		return
	}

	t.log.Debug("telegram message sent", "chat_id", t.chatID)
}
