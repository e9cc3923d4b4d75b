package telegram

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	// SendMessage sends text to chatID, a numeric chat id or an @username.
	SendMessage(chatID string, text string) error
}
