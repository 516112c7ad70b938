package persistence

import (
	"context"
	"fmt"

	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/config"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDBConnection opens the configured store and applies its pool limits.
// gorm's own diagnostics go through log.
func NewDBConnection(settings config.DatabaseSettings, log logger.Logger) (*gorm.DB, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{Logger: newGormLogger(log, settings.SlowQueryThreshold)}

	switch settings.Type {
	case config.PostgresDbType:
		return openPostgres(settings, gormCfg)
	case config.SqliteDbType:
		return openSQLite(settings, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}
}

func openPostgres(settings config.DatabaseSettings, gormCfg *gorm.Config) (*gorm.DB, error) {
	dsn := settings.DSN
	if settings.Name != "" {
		if err := ensurePostgresDatabase(settings.DSN, settings.Name, gormCfg); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("%s dbname=%s", settings.DSN, settings.Name)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}
	if settings.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(settings.MaxIdleConns)
	}
	if settings.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}
	return db, nil
}

// ensurePostgresDatabase creates name on the server behind adminDSN unless
// it already exists. name has been checked against the identifier pattern.
func ensurePostgresDatabase(adminDSN, name string, gormCfg *gorm.Config) error {
	admin, err := gorm.Open(postgres.Open(adminDSN), gormCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer func() { _ = CloseDB(admin) }()

	var exists bool
	if err := admin.Raw("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = ?)", name).Scan(&exists).Error; err != nil {
		return fmt.Errorf("failed to look up database '%s': %w", name, err)
	}
	if exists {
		return nil
	}
	if err := admin.Exec(fmt.Sprintf("CREATE DATABASE %s", name)).Error; err != nil {
		return fmt.Errorf("failed to create database '%s': %w", name, err)
	}
	return nil
}

func openSQLite(settings config.DatabaseSettings, gormCfg *gorm.Config) (*gorm.DB, error) {
	dsn := settings.DSN
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	// Each connection to :memory: sees its own database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// Migrate creates or updates the tables of every model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Ping checks that the store answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// DropDatabase removes a PostgreSQL database; tests use it to clean up
// their per-test databases.
func DropDatabase(adminDSN, dbName string) error {
	db, err := gorm.Open(postgres.Open(adminDSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer func() { _ = CloseDB(db) }()

	if err := db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", dbName)).Error; err != nil {
		return fmt.Errorf("failed to drop database '%s': %w", dbName, err)
	}
	return nil
}
