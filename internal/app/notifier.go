package app

import (
	"time"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/jellydator/ttlcache/v3"
	"github.com/sirupsen/logrus"
)

// Notifier delivers messages to the operator chat and remembers the last
// text that actually went out. It is not safe for concurrent use.
type Notifier struct {
	telegramClient domainTelegram.Client
	chatID         string
	logger         *logrus.Entry

	lastSent string
	// recentAlerts is nil when failure alerts are never suppressed.
	recentAlerts *ttlcache.Cache[string, struct{}]
}

func NewNotifier(tc domainTelegram.Client, chatID string, alertCooldown time.Duration, logger *logrus.Entry) *Notifier {
	n := &Notifier{
		telegramClient: tc,
		chatID:         chatID,
		logger:         logger,
	}
	if alertCooldown > 0 {
		n.recentAlerts = ttlcache.New[string, struct{}](
			ttlcache.WithTTL[string, struct{}](alertCooldown),
			ttlcache.WithDisableTouchOnHit[string, struct{}](),
		)
	}
	return n
}

// LastSent returns the text of the last successfully delivered message.
func (n *Notifier) LastSent() string {
	return n.lastSent
}

// Delivery is the outcome of NotifyIfChanged.
type Delivery int

const (
	DeliveryUnchanged Delivery = iota
	DeliverySent
	DeliveryFailed
)

// NotifyIfChanged sends text unless it equals the last delivered message.
func (n *Notifier) NotifyIfChanged(text string) Delivery {
	if text == n.lastSent {
		n.logger.Debug("Status not changed, nothing to send")
		return DeliveryUnchanged
	}
	if !n.send(text) {
		return DeliveryFailed
	}
	return DeliverySent
}

// Alert sends an operator-facing failure message regardless of what was sent
// before. Identical alerts inside the cooldown window are only logged.
func (n *Notifier) Alert(text string) bool {
	if n.recentAlerts != nil {
		// The cache runs no janitor goroutine; expired texts are dropped here.
		n.recentAlerts.DeleteExpired()
		if n.recentAlerts.Get(text) != nil {
			n.logger.WithField("text", text).Info("Same failure already reported recently, alert suppressed")
			return false
		}
	}
	if !n.send(text) {
		return false
	}
	if n.recentAlerts != nil {
		n.recentAlerts.Set(text, struct{}{}, ttlcache.DefaultTTL)
	}
	return true
}

// send never returns an error: a failed dispatch is logged and the
// remembered text is left as it was, so the next poll tries again.
func (n *Notifier) send(text string) bool {
	if err := n.telegramClient.SendMessage(n.chatID, text); err != nil {
		n.logger.WithError(err).WithField("text", text).Error("Message not sent")
		return false
	}
	n.lastSent = text
	n.logger.WithField("text", text).Info("Message sent")
	return true
}
