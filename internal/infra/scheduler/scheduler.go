package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// FallbackInterval is the wait used when the schedule has no next activation.
const FallbackInterval = 600 * time.Second

// Poller runs a single poll iteration.
type Poller interface {
	Poll(ctx context.Context) error
}

// RetryPolicy shortens the wait after failures that Retryable accepts.
// A zero Interval disables it.
type RetryPolicy struct {
	Interval  time.Duration
	Retryable func(error) bool
}

// PollScheduler drives a Poller on one goroutine: poll, sleep until the
// next activation, repeat. Iterations never overlap.
type PollScheduler struct {
	poller   Poller
	schedule cron.Schedule
	retry    RetryPolicy
	logger   *logrus.Entry
	now      func() time.Time
}

func NewPollScheduler(poller Poller, schedule cron.Schedule, retry RetryPolicy, logger *logrus.Entry) *PollScheduler {
	return &PollScheduler{
		poller:   poller,
		schedule: schedule,
		retry:    retry,
		logger:   logger,
		now:      time.Now,
	}
}

// Run polls immediately and then on schedule until ctx is cancelled.
func (s *PollScheduler) Run(ctx context.Context) {
	s.logger.Info("Starting homework status polling...")

	for {
		err := s.poller.Poll(ctx)

		next := s.nextRun(err)
		wait := next.Sub(s.now())
		s.logger.WithField("next_poll", next.Format(time.DateTime)).Debugf("Sleeping for %s", wait.Round(time.Second))

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Homework status polling stopped.")
			return
		case <-timer.C:
		}
	}
}

func (s *PollScheduler) nextRun(err error) time.Time {
	now := s.now()
	if err != nil && s.retry.Interval > 0 && s.retry.Retryable != nil && s.retry.Retryable(err) {
		s.logger.WithError(err).Infof("Transient failure, retrying in %s", s.retry.Interval)
		return now.Add(s.retry.Interval)
	}
	next := s.schedule.Next(now)
	if !next.After(now) {
		s.logger.WithField("next_poll", next).Warnf("Schedule has no future activation, waiting %s", FallbackInterval)
		return now.Add(FallbackInterval)
	}
	return next
}
