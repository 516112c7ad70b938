package logger

import (
	"log/slog"

	"github.com/natefinch/lumberjack"
)

// NewFileLogger creates a logger writing JSON lines to filePath, rotated
// after maxSize megabytes. maxBackups old files are kept for maxAge days.
func NewFileLogger(level string, filePath string, maxSize int, maxBackups int, maxAge int) Logger {
	writer := &lumberjack.Logger{
		Filename:   filePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAge,
		Compress:   true,
	}
	return newSlogLogger(slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(level)}))
}
