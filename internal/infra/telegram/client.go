// internal/infra/telegram/client.go
package telegram

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gopkg.in/telebot.v3"
)

// chatUsername addresses a public chat or channel by its @username.
type chatUsername string

func (u chatUsername) Recipient() string {
	return string(u)
}

// NewBot creates a send-only bot without calling getMe, so an unreachable
// Telegram API at startup is not an error. The bot is never started; the
// HTTP client timeout bounds every send.
func NewBot(token string, timeout time.Duration) (*telebot.Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:   token,
		Client:  &http.Client{Timeout: timeout},
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("telebot.NewBot: %w", err)
	}
	return bot, nil
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(chatID string, text string) error {
	_, err := tba.bot.Send(recipient(chatID), text)
	return err
}

func recipient(chatID string) telebot.Recipient {
	if id, err := strconv.ParseInt(chatID, 10, 64); err == nil {
		return telebot.ChatID(id)
	}
	return chatUsername(chatID)
}
