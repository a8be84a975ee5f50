// internal/app/notifier.go
package app

import (
	"context"
	"database/sql"
	"time"

	"homework_status_bot/internal/domain/notification"
	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Notifier delivers a text to the tracked chat. Implementations never fail
// from the caller's point of view.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// ChatNotifier sends messages to a single Telegram chat on a best-effort basis.
// A non-positive rate disables throttling.
type ChatNotifier struct {
	telegramClient domainTelegram.Client
	chatID         int64
	limiter        *rate.Limiter
	journal        notification.Journal
	logger         *logrus.Entry
}

func NewChatNotifier(
	tc domainTelegram.Client,
	chatID int64,
	ratePerMinute int,
	journal notification.Journal,
	logger *logrus.Entry,
) *ChatNotifier {
	if journal == nil {
		journal = notification.NopJournal{}
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if ratePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), ratePerMinute)
	}
	return &ChatNotifier{
		telegramClient: tc,
		chatID:         chatID,
		limiter:        limiter,
		journal:        journal,
		logger:         logger.WithField("chat_id", chatID),
	}
}

// Notify sends message and swallows any delivery failure after logging it.
func (n *ChatNotifier) Notify(ctx context.Context, message string) {
	delivery := &notification.Delivery{ChatID: n.chatID, Message: message}

	err := n.limiter.Wait(ctx)
	if err == nil {
		err = n.telegramClient.SendMessage(n.chatID, message, nil)
	}
	if err != nil {
		n.logger.WithError(err).Error("Failed to send message to Telegram")
		delivery.DeliveryError = sql.NullString{String: err.Error(), Valid: true}
	} else {
		n.logger.Debug("Message sent to Telegram")
		delivery.Delivered = true
	}

	if errJournal := n.journal.Record(ctx, delivery); errJournal != nil {
		n.logger.WithError(errJournal).Error("Failed to record notification delivery")
	}
}
