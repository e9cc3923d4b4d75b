package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// CursorPolicy controls when the from_date cursor moves forward.
type CursorPolicy string

const (
	// CursorEveryPoll moves the cursor after every successful poll.
	CursorEveryPoll CursorPolicy = "every_poll"
	// CursorOnChange moves the cursor only after a status change was sent.
	CursorOnChange CursorPolicy = "on_change"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string `env:"PRACTICUM_TOKEN" env-description:"OAuth token for the homework API" validate:"required"`
	TelegramToken  string `env:"TELEGRAM_TOKEN" env-description:"Telegram bot token" validate:"required"`
	TelegramChatID string `env:"TELEGRAM_CHAT_ID" env-description:"Chat to notify: numeric id or @channel" validate:"required"`

	PracticumEndpoint string        `env:"PRACTICUM_ENDPOINT" env-default:"https://practicum.yandex.ru/api/user_api/homework_statuses/" validate:"url"`
	PracticumTimeout  time.Duration `env:"PRACTICUM_TIMEOUT" env-default:"30s" validate:"gt=0"`
	TelegramTimeout   time.Duration `env:"TELEGRAM_TIMEOUT" env-default:"30s" validate:"gt=0"`

	PollSchedule          string        `env:"POLL_SCHEDULE" env-default:"@every 600s" env-description:"cron spec of poll activations"`
	RetryInterval         time.Duration `env:"RETRY_INTERVAL" env-default:"0s" env-description:"delay before retrying a transient failure, 0 disables"`
	CursorPolicy          CursorPolicy  `env:"CURSOR_POLICY" env-default:"every_poll" validate:"oneof=every_poll on_change"`
	InitialFromDate       int64         `env:"INITIAL_FROM_DATE" env-default:"0" env-description:"first from_date, 0 means process start time" validate:"gte=0"`
	FailureNotifyCooldown time.Duration `env:"FAILURE_NOTIFY_COOLDOWN" env-default:"0s" env-description:"suppress identical failure alerts for this long, 0 disables"`

	LogLevel    string `env:"LOG_LEVEL" env-default:"info"`
	LogFile     string `env:"LOG_FILE" env-default:"program.log"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`
}

// Load reads configuration from environment variables and .env file (if present).
// Credentials are not checked here; call Validate once logging is set up.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		help, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("read environment: %w\n%s", err, help)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)
	cfg.CursorPolicy = CursorPolicy(strings.ToLower(string(cfg.CursorPolicy)))

	return cfg, nil
}

// Validate reports every missing credential and malformed setting by env var name.
func (c *AppConfig) Validate() error {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("env")
	})

	var problems []string
	if err := v.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate config: %w", err)
		}
		for _, fe := range fieldErrs {
			if fe.Tag() == "required" {
				problems = append(problems, fmt.Sprintf("%s is not set", fe.Field()))
			} else {
				problems = append(problems, fmt.Sprintf("invalid %s (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
			}
		}
	}

	if sched, err := c.Schedule(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid POLL_SCHEDULE: %v", err))
	} else if sched.Next(time.Now()).IsZero() {
		problems = append(problems, fmt.Sprintf("invalid POLL_SCHEDULE: %q never fires", c.PollSchedule))
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Schedule parses PollSchedule. Standard five-field specs and descriptors
// such as "@every 10m" or "@hourly" are accepted.
func (c *AppConfig) Schedule() (cron.Schedule, error) {
	return cron.ParseStandard(c.PollSchedule)
}
