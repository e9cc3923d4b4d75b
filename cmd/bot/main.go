package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/domain/homework"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

var errInvalidConfig = errors.New("missing or invalid configuration")

type botFactory func(token string, timeout time.Duration) (*telebot.Bot, error)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger.Get(), telegram.NewBot); err != nil {
		logger.Get().WithField("component", "main").Fatalf("Exiting: %v", err)
	}
}

// run validates cfg before building any client, then polls until ctx is done.
func run(ctx context.Context, cfg *config.AppConfig, log *logrus.Logger, newBot botFactory) error {
	mainLogger := log.WithField("component", "main")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", errInvalidConfig, err)
	}
	schedule, err := cfg.Schedule()
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidConfig, err)
	}

	mainLogger.WithFields(logrus.Fields{
		"environment":   cfg.Environment,
		"schedule":      cfg.PollSchedule,
		"cursor_policy": cfg.CursorPolicy,
	}).Info("Configuration loaded")

	// Initialize Telegram Bot
	bot, err := newBot(cfg.TelegramToken, cfg.TelegramTimeout)
	if err != nil {
		return fmt.Errorf("create Telegram bot: %w", err)
	}

	notifier := app.NewNotifier(
		telegram.NewTelebotAdapter(bot),
		cfg.TelegramChatID,
		cfg.FailureNotifyCooldown,
		log.WithField("component", "notifier"),
	)

	watcher := app.NewStatusWatcher(
		practicum.NewClient(cfg.PracticumEndpoint, cfg.PracticumToken, cfg.PracticumTimeout),
		homework.NewFormatter(homework.DefaultVerdicts()),
		notifier,
		cfg.CursorPolicy,
		cfg.InitialFromDate,
		log.WithField("component", "watcher"),
	)

	pollScheduler := scheduler.NewPollScheduler(
		watcher,
		schedule,
		scheduler.RetryPolicy{Interval: cfg.RetryInterval, Retryable: practicum.IsTransient},
		log.WithField("component", "scheduler"),
	)

	pollScheduler.Run(ctx)
	mainLogger.Info("Application shut down gracefully.")
	return nil
}
