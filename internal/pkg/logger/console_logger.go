package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/drinkbox/storefront/internal/pkg/config"
)

// NewConsoleLogger creates a logger writing to stdout. format is
// config.LogFormatText or config.LogFormatJSON.
func NewConsoleLogger(level, format string) Logger {
	return newConsoleLoggerTo(os.Stdout, level, format)
}

func newConsoleLoggerTo(w io.Writer, level, format string) *slogLogger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if format == config.LogFormatJSON {
		return newSlogLogger(slog.NewJSONHandler(w, opts))
	}
	return newSlogLogger(slog.NewTextHandler(w, opts))
}
