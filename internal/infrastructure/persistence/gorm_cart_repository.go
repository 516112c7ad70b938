package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/carts"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormCartRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCartRepository creates a new GORM-based CartRepository implementation
func NewGormCartRepository(db *gorm.DB, logger logger.Logger) (carts.CartRepository, error) {
	return &gormCartRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCartRepository) Create(ctx context.Context, cart *carts.Cart) error {
	model := &models.CartModel{}
	model.FromDomain(cart)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug("Created cart with id ", cart.ID)
	return nil
}

func (r *gormCartRepository) GetByID(ctx context.Context, cartID string) (*carts.Cart, error) {
	var model models.CartModel
	err := dbFromContext(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Where("id = ?", cartID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", carts.ErrNotFound, cartID)
		}
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormCartRepository) Save(ctx context.Context, cart *carts.Cart) error {
	model := &models.CartModel{}
	model.FromDomain(cart)

	err := inTransaction(ctx, r.db, func(tx *gorm.DB) error {
		res := tx.Model(&models.CartModel{}).Where("id = ?", cart.ID).
			Updates(map[string]interface{}{
				"coupon_code":       model.CouponCode,
				"date_time_updated": model.DateTimeUpdated,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", carts.ErrNotFound, cart.ID)
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	if err != nil {
		if errors.Is(err, carts.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *gormCartRepository) DeleteByID(ctx context.Context, cartID string) error {
	err := inTransaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", cartID).Delete(&models.CartModel{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	r.logger.Debug("Deleted cart with id ", cartID)
	return nil
}
