package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/infrastructure/metrics"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
)

const (
	settingsCacheKey        = "storefront:shop_settings"
	defaultSettingsCacheTTL = 5 * time.Minute
)

type redisSettingsCache struct {
	rdb    goredis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisSettingsCache creates a ShopSettingsCache stored under one Redis key.
// Cache failures are logged and reported as misses.
func NewRedisSettingsCache(rdb goredis.Cmdable, ttl time.Duration, logger logger.Logger) settings.ShopSettingsCache {
	if ttl <= 0 {
		ttl = defaultSettingsCacheTTL
	}
	return &redisSettingsCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *redisSettingsCache) Get(ctx context.Context) (*settings.ShopSettings, bool) {
	data, err := c.rdb.Get(ctx, settingsCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.logger.Warn("Redis settings cache GET failed: ", err)
		}
		metrics.SettingsCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}

	var s settings.ShopSettings
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.Warn("Failed to unmarshal cached shop settings: ", err)
		metrics.SettingsCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.SettingsCacheTotal.WithLabelValues("hit").Inc()
	return &s, true
}

func (c *redisSettingsCache) Set(ctx context.Context, s *settings.ShopSettings) error {
	encoded, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal shop settings: %w", err)
	}
	if err := c.rdb.Set(ctx, settingsCacheKey, encoded, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to populate settings cache: %w", err)
	}
	return nil
}

func (c *redisSettingsCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, settingsCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate settings cache: %w", err)
	}
	return nil
}
