// Package notify sends optional Telegram summaries after scrape cycles.
package notify

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Min interval between messages to the same chat to stay under Telegram's
// per-chat rate limit.
const sendInterval = 2 * time.Second

// TelegramNotifier posts a one-line summary per scrape cycle. A nil
// notifier is valid and does nothing, so callers need no token checks.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier creates the notifier, verifying the token against the
// Bot API. Returns nil on failure; notifications are best effort.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	bot.Debug = false

	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to get telegram bot info", "error", err)
		return nil
	}

	return &TelegramNotifier{bot: bot, chatID: chatID}
}

// NotifyCycle reports how many lines a cycle produced and how long it took.
func (n *TelegramNotifier) NotifyCycle(count int, elapsed time.Duration) {
	if n == nil {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if since := time.Since(n.lastSend); since < sendInterval {
		time.Sleep(sendInterval - since)
	}

	text := fmt.Sprintf("Scrape cycle finished: %d betting lines in %s",
		count, elapsed.Round(time.Millisecond))
	if _, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, text)); err != nil {
		slog.Warn("Failed to send telegram notification", "error", err)
	}
	n.lastSend = time.Now()
}
