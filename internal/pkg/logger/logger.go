// Package logger provides the leveled logger shared by services, repositories
// and command handlers. Console output uses a slog text (or JSON) handler,
// file output a slog JSON handler behind lumberjack rotation.
package logger

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
	// With returns a logger that adds the given key-value pairs to every record,
	// e.g. log.With("order", order.Number).
	With(keyValues ...interface{}) Logger
}
