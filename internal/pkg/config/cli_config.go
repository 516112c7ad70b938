package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CliConfig holds the settings used by storefront-cli.
type CliConfig struct {
	Database DatabaseSettings `mapstructure:"database"`
	Logger   LoggerSettings   `mapstructure:"logger"`
}

// Validate checks that all fields in CliConfig are valid
func (c *CliConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validation failed for CliConfig: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	return c.Logger.Validate()
}

// InitializeCliConfig loads the CLI configuration. The CLI reads the same
// file as the REST API and ignores the server-only sections.
func InitializeCliConfig(path string) (*CliConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)

	if err := bindEnvKeys(v, "database.dsn", "database.name"); err != nil {
		return nil, err
	}

	var cfg CliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
