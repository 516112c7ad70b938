package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// slogLogger adapts a slog.Logger to the printf-free Logger interface used
// across the shop.
type slogLogger struct {
	logger *slog.Logger
}

func newSlogLogger(handler slog.Handler) *slogLogger {
	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Debug(args ...interface{}) {
	l.logger.Debug(formatArgs(args...))
}

func (l *slogLogger) Info(args ...interface{}) {
	l.logger.Info(formatArgs(args...))
}

func (l *slogLogger) Warn(args ...interface{}) {
	l.logger.Warn(formatArgs(args...))
}

func (l *slogLogger) Error(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
}

// Fatal logs at error level and exits.
func (l *slogLogger) Fatal(args ...interface{}) {
	l.logger.Error(formatArgs(args...))
	os.Exit(1)
}

// Panic logs at error level and panics with the message.
func (l *slogLogger) Panic(args ...interface{}) {
	msg := formatArgs(args...)
	l.logger.Error(msg)
	panic(msg)
}

func (l *slogLogger) With(keyValues ...interface{}) Logger {
	return &slogLogger{logger: l.logger.With(keyValues...)}
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}
