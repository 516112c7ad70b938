package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

// Database type constants
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

var databaseNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)

// DatabaseSettings holds the connection settings of the relational store.
// For postgres, Name is created on first connect when it does not exist.
type DatabaseSettings struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN  string `mapstructure:"dsn" validate:"required_if=Type postgres"`
	Name string `mapstructure:"name"`

	// Pool limits; zero keeps the database/sql defaults. SQLite always
	// runs on a single connection.
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`

	// Statements slower than this are logged as warnings. Zero disables it.
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold" validate:"gte=0"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}

	// Name ends up in a CREATE DATABASE statement
	if s.Name != "" && !databaseNamePattern.MatchString(s.Name) {
		return fmt.Errorf("invalid database name %q", s.Name)
	}

	return nil
}
