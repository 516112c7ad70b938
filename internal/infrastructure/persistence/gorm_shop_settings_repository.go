package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormShopSettingsRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormShopSettingsRepository creates a new GORM-based ShopSettingsRepository implementation
func NewGormShopSettingsRepository(db *gorm.DB, logger logger.Logger) (settings.ShopSettingsRepository, error) {
	return &gormShopSettingsRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormShopSettingsRepository) Get(ctx context.Context) (*settings.ShopSettings, error) {
	var model models.ShopSettingsModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", models.ShopSettingsID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, settings.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch shop settings: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormShopSettingsRepository) Save(ctx context.Context, s *settings.ShopSettings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ShopSettingsModel{}
	model.FromDomain(s)

	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return fmt.Errorf("failed to save shop settings: %w", err)
	}

	r.logger.Info("Saved shop settings")
	return nil
}
