package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables overriding file settings,
// e.g. STOREFRONT_DATABASE_DSN overrides database.dsn.
const EnvPrefix = "STOREFRONT"

// RestConfig holds the settings of the REST API server.
type RestConfig struct {
	Port      string            `mapstructure:"port" validate:"required,numeric"`
	Database  DatabaseSettings  `mapstructure:"database"`
	Logger    LoggerSettings    `mapstructure:"logger"`
	Payments  PaymentSettings   `mapstructure:"payments"`
	Session   SessionSettings   `mapstructure:"session"`
	Admin     AdminSettings     `mapstructure:"admin"`
	Redis     RedisSettings     `mapstructure:"redis"`
	RateLimit RateLimitSettings `mapstructure:"rate_limit"`
	CORS      CORSSettings      `mapstructure:"cors"`
}

// CORSSettings lists the origins allowed to call the API from a browser.
type CORSSettings struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// Validate checks that all fields in RestConfig are valid
func (c *RestConfig) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validation failed for RestConfig: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	return c.Payments.Validate()
}

// InitializeRestConfig loads the REST configuration from path, applies
// environment overrides and validates the result.
func InitializeRestConfig(path string) (*RestConfig, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	setRestDefaults(v)
	if err := bindEnvKeys(v, restSecretKeys...); err != nil {
		return nil, err
	}

	var cfg RestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setRestDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("database.type", SqliteDbType)
	v.SetDefault("logger.log_level", LogLevelInfo)
	v.SetDefault("logger.log_type", LogTypeConsole)
	v.SetDefault("payments.barion.environment", BarionEnvironmentTest)
	v.SetDefault("payments.barion.locale", "hu-HU")
	v.SetDefault("payments.barion.timeout", 15*time.Second)
	v.SetDefault("session.max_age_days", 30)
	v.SetDefault("redis.cache_ttl", 10*time.Minute)
	v.SetDefault("rate_limit.requests_per_second", 5.0)
	v.SetDefault("rate_limit.burst", 10)
	v.SetDefault("cors.allow_origins", []string{"*"})
}

// restSecretKeys are usually supplied only through the environment, so viper
// has to learn about them explicitly.
var restSecretKeys = []string{
	"database.dsn",
	"database.name",
	"session.secret",
	"admin.api_key",
	"redis.url",
	"payments.barion.enabled",
	"payments.barion.pos_key",
	"payments.barion.payee",
	"payments.barion.redirect_url",
	"payments.barion.callback_url",
	"payments.stripe.enabled",
	"payments.stripe.secret_key",
	"payments.stripe.webhook_secret",
	"payments.stripe.success_url",
	"payments.stripe.cancel_url",
}

func bindEnvKeys(v *viper.Viper, keys ...string) error {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// newViper reads the YAML file at path (when present) with STOREFRONT_* overrides.
func newViper(path string) (*viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return v, nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return v, nil
}
