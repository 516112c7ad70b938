package app

import (
	"context"
	"errors"

	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// shopSettingsService implements the ShopSettingsService interface. Reads go
// through the optional cache; concurrent misses share one repository load.
type shopSettingsService struct {
	settingsRepo settings.ShopSettingsRepository
	cache        settings.ShopSettingsCache
	loads        singleflight.Group
	clock        clockwork.Clock
	logger       logger.Logger
}

// NewShopSettingsService creates a new instance of ShopSettingsService. cache may be nil.
func NewShopSettingsService(
	settingsRepo settings.ShopSettingsRepository,
	cache settings.ShopSettingsCache,
	clock clockwork.Clock,
	logger logger.Logger,
) (settings.ShopSettingsService, error) {
	return &shopSettingsService{
		settingsRepo: settingsRepo,
		cache:        cache,
		clock:        clock,
		logger:       logger,
	}, nil
}

func (s *shopSettingsService) Get(ctx context.Context) (*settings.ShopSettings, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx); ok {
			return cached, nil
		}
	}

	v, err, _ := s.loads.Do("shop_settings", func() (interface{}, error) {
		stored, err := s.settingsRepo.Get(ctx)
		if errors.Is(err, settings.ErrNotFound) {
			stored, err = settings.Default(), nil
		}
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, stored); err != nil {
				s.logger.Warn("Failed to cache shop settings: ", err)
			}
		}
		return stored, nil
	})
	if err != nil {
		return nil, err
	}
	// Each caller gets its own copy; the shared value came from singleflight.
	copied := *v.(*settings.ShopSettings)
	copied.DeliveryWeekdays = copied.SortedWeekdays()
	return &copied, nil
}

func (s *shopSettingsService) Update(ctx context.Context, updated *settings.ShopSettings) (*settings.ShopSettings, error) {
	if err := updated.Validate(); err != nil {
		return nil, err
	}
	updated.DeliveryWeekdays = updated.SortedWeekdays()
	updated.DateTimeUpdated = s.clock.Now().UTC()
	if err := s.settingsRepo.Save(ctx, updated); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate cached shop settings: ", err)
		}
	}
	s.logger.Info("Updated shop settings, shop open=", updated.ShopOpen)
	return updated, nil
}
