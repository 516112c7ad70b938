package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/drinkbox/storefront/internal/pkg/config"
)

var (
	loggerInstance Logger
	loggerErr      error
	loggerOnce     sync.Once
)

// InitLogger builds the process-wide logger once; later calls return the
// outcome of the first.
func InitLogger(settings *config.LoggerSettings) error {
	loggerOnce.Do(func() {
		loggerInstance, loggerErr = newLogger(settings)
	})
	return loggerErr
}

// GetLogger returns the logger built by InitLogger.
func GetLogger() (Logger, error) {
	if loggerInstance == nil {
		return nil, errors.New("logger not initialized: call InitLogger first")
	}
	return loggerInstance, nil
}

func newLogger(c *config.LoggerSettings) (Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var l Logger
	switch c.LogType {
	case config.LogTypeConsole:
		l = NewConsoleLogger(c.LogLevel, c.Format)
	case config.LogTypeFile:
		l = NewFileLogger(c.LogLevel, c.FilePath, c.MaxSize, c.MaxBackups, c.MaxAge)
	default:
		return nil, fmt.Errorf("unsupported log type: %s", c.LogType)
	}

	if c.Service != "" {
		l = l.With("service", c.Service)
	}
	return l, nil
}

// parseLevel maps config levels onto slog; critical has no slog counterpart
// and is logged as error.
func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError, config.LogLevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
