// internal/app/status_watcher.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/config"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// FailureMessagePrefix starts every operator alert about a failed poll.
const FailureMessagePrefix = "Сбой в работе программы: "

// HomeworkFetcher returns the raw decoded API response for homeworks
// updated since fromDate (unix seconds).
type HomeworkFetcher interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (any, error)
}

// StatusWatcher runs one poll at a time: fetch, validate, format, notify.
// It holds the only mutable state of the bot, the from_date cursor.
type StatusWatcher struct {
	fetcher   HomeworkFetcher
	formatter *homework.Formatter
	notifier  *Notifier
	policy    config.CursorPolicy
	logger    *logrus.Entry
	now       func() time.Time

	cursor int64
}

// NewStatusWatcher starts the cursor at fromDate, or at the current time when fromDate is 0.
func NewStatusWatcher(
	fetcher HomeworkFetcher,
	formatter *homework.Formatter,
	notifier *Notifier,
	policy config.CursorPolicy,
	fromDate int64,
	logger *logrus.Entry,
) *StatusWatcher {
	w := &StatusWatcher{
		fetcher:   fetcher,
		formatter: formatter,
		notifier:  notifier,
		policy:    policy,
		logger:    logger,
		now:       time.Now,
		cursor:    fromDate,
	}
	if w.cursor == 0 {
		w.cursor = w.now().Unix()
	}
	return w
}

// Cursor returns the from_date the next poll will use.
func (w *StatusWatcher) Cursor() int64 {
	return w.cursor
}

// Poll performs one iteration. Any stage failure is reported to the operator
// chat and returned; an empty homework list is not a failure.
func (w *StatusWatcher) Poll(ctx context.Context) error {
	startedAt := w.now().Unix()
	pollLogger := w.logger.WithFields(logrus.Fields{
		"poll_id":   uuid.NewString(),
		"from_date": w.cursor,
	})
	pollLogger.Debug("Polling homework statuses")

	delivery, err := w.checkStatus(ctx, pollLogger)
	if err != nil {
		message := FailureMessagePrefix + err.Error()
		pollLogger.WithError(err).Error(message)
		w.notifier.Alert(message)
		return err
	}

	// An undelivered change keeps the window open so the next poll sees it again.
	if delivery == DeliveryFailed {
		return nil
	}
	if delivery == DeliverySent || w.policy == config.CursorEveryPoll {
		w.cursor = startedAt
	}
	return nil
}

func (w *StatusWatcher) checkStatus(ctx context.Context, pollLogger *logrus.Entry) (Delivery, error) {
	payload, err := w.fetcher.HomeworkStatuses(ctx, w.cursor)
	if err != nil {
		return DeliveryUnchanged, fmt.Errorf("fetch homework statuses: %w", err)
	}
	pollLogger.Info("Homework API answered")

	record, err := homework.Latest(payload)
	if errors.Is(err, homework.ErrNoHomeworks) {
		pollLogger.Debug("No reviewed homework in response")
		return DeliveryUnchanged, nil
	}
	if err != nil {
		return DeliveryUnchanged, fmt.Errorf("check response: %w", err)
	}

	message, err := w.formatter.Format(record)
	if err != nil {
		return DeliveryUnchanged, fmt.Errorf("parse status: %w", err)
	}

	return w.notifier.NotifyIfChanged(message), nil
}
