package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log levels
const (
	LogLevelDebug    = "debug"
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelCritical = "critical"
)

// Log outputs
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Console record formats. File output is always JSON.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LoggerSettings selects the log output. File output rotates through
// lumberjack and needs FilePath plus the Max* rotation limits.
type LoggerSettings struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warning error critical"`
	LogType  string `mapstructure:"log_type" validate:"required,oneof=console file"`
	Format   string `mapstructure:"format" validate:"omitempty,oneof=text json"`
	// Service is attached to every record as service=<name> when set.
	Service string `mapstructure:"service"`

	FilePath   string `mapstructure:"file_path" validate:"required_if=LogType file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// Validate checks that all fields in LoggerSettings are valid
func (s *LoggerSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}
	if s.LogType != LogTypeFile {
		return nil
	}

	var errs []error
	if s.MaxSize < 1 || s.MaxSize > 100 {
		errs = append(errs, errors.New("max_size must be between 1 and 100 MB"))
	}
	if s.MaxBackups < 1 || s.MaxBackups > 10 {
		errs = append(errs, errors.New("max_backups must be between 1 and 10"))
	}
	if s.MaxAge < 1 || s.MaxAge > 365 {
		errs = append(errs, errors.New("max_age must be between 1 and 365 days"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid file logger rotation: %w", errors.Join(errs...))
	}
	return nil
}
