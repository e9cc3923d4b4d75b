// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// writerHook copies every formatted entry to all writers.
type writerHook struct {
	Writer    []io.Writer
	LogLevels []logrus.Level
}

func (hook *writerHook) Levels() []logrus.Level {
	return hook.LogLevels
}

func (hook *writerHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Bytes()
	if err != nil {
		return err
	}
	for _, w := range hook.Writer {
		_, _ = w.Write(line)
	}
	return nil
}

// Init configures the global logger: level and format from cfg, output
// mirrored to stdout and the append-only log file.
func Init(cfg *config.AppConfig) {
	Configure(Log, cfg, os.Stdout)
}

// Configure applies cfg to l, writing to console and cfg.LogFile.
// If the file cannot be opened only console output is kept.
func Configure(l *logrus.Logger, cfg *config.AppConfig, console io.Writer) {
	writers := []io.Writer{console}
	var fileErr error
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
		if err != nil {
			fileErr = err
		} else {
			writers = append(writers, f)
		}
	}

	l.SetOutput(io.Discard)
	l.ReplaceHooks(make(logrus.LevelHooks))
	l.AddHook(&writerHook{Writer: writers, LogLevels: logrus.AllLevels})

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		l.SetLevel(logrus.InfoLevel)
		l.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		l.SetLevel(level)
	}

	// Set Log Formatter
	if cfg.Environment == "production" || cfg.Environment == "staging" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   true, // same bytes go to the log file
		})
	}

	if fileErr != nil {
		l.Warnf("Could not open log file '%s', logging to console only: %v", cfg.LogFile, fileErr)
	}
	l.Debugf("Log level set to: %s", l.GetLevel().String())
}

// Get returns the configured global logger.
func Get() *logrus.Logger {
	return Log
}
