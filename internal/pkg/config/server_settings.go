package config

import "time"

// SessionSettings configures the storefront cookie session that carries the cart ID.
type SessionSettings struct {
	Secret     string `mapstructure:"secret" validate:"required,min=32"`
	Secure     bool   `mapstructure:"secure"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"min=1,max=365"`
}

// AdminSettings configures access to the back-office routes.
type AdminSettings struct {
	APIKey string `mapstructure:"api_key" validate:"required,min=16"`
}

// RedisSettings configures the optional settings cache. An empty URL disables it.
type RedisSettings struct {
	URL      string        `mapstructure:"url" validate:"omitempty,url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// RateLimitSettings configures the per-client limiter on checkout and payment routes.
type RateLimitSettings struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"min=1"`
}
