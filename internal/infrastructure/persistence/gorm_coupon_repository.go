package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"gorm.io/gorm"
)

type gormCouponRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormCouponRepository creates a new GORM-based CouponRepository implementation
func NewGormCouponRepository(db *gorm.DB, logger logger.Logger) (coupons.CouponRepository, error) {
	return &gormCouponRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormCouponRepository) Create(ctx context.Context, coupon *coupons.Coupon) error {
	if err := coupon.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if err := r.ensureCodeFree(ctx, coupon.Code, coupon.ID); err != nil {
		return err
	}

	model := &models.CouponModel{}
	model.FromDomain(coupon)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}

	r.logger.Info("Created coupon with id ", coupon.ID)
	return nil
}

func (r *gormCouponRepository) List(ctx context.Context, query *coupons.CouponQuery) ([]*coupons.Coupon, error) {
	var modelList []*models.CouponModel
	dbQuery := dbFromContext(ctx, r.db).Model(&models.CouponModel{})
	if query.ActiveOnly {
		dbQuery = dbQuery.Where("active = ?", true)
	}
	dbQuery = paginate(dbQuery.Order("code asc"), query.Limit, query.Offset)

	if err := dbQuery.Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch coupons: %w", err)
	}

	domainList := make([]*coupons.Coupon, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList, nil
}

func (r *gormCouponRepository) GetByID(ctx context.Context, couponID string) (*coupons.Coupon, error) {
	return r.getBy(ctx, "id = ?", couponID)
}

func (r *gormCouponRepository) GetByCode(ctx context.Context, code string) (*coupons.Coupon, error) {
	return r.getBy(ctx, "code = ?", coupons.NormalizeCode(code))
}

func (r *gormCouponRepository) getBy(ctx context.Context, cond, value string) (*coupons.Coupon, error) {
	var model models.CouponModel
	if err := dbFromContext(ctx, r.db).Where(cond, value).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", coupons.ErrNotFound, value)
		}
		return nil, fmt.Errorf("failed to fetch coupon: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormCouponRepository) UpdateByID(ctx context.Context, coupon *coupons.Coupon) error {
	if err := coupon.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if err := r.ensureCodeFree(ctx, coupon.Code, coupon.ID); err != nil {
		return err
	}

	model := &models.CouponModel{}
	model.FromDomain(coupon)

	res := dbFromContext(ctx, r.db).Model(&models.CouponModel{}).Where("id = ?", coupon.ID).
		Select("*").Omit("id", "usage_count", "date_time_created").Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to update coupon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", coupons.ErrNotFound, coupon.ID)
	}

	r.logger.Info("Updated coupon with id ", coupon.ID)
	return nil
}

func (r *gormCouponRepository) DeleteByID(ctx context.Context, couponID string) error {
	res := dbFromContext(ctx, r.db).Where("id = ?", couponID).Delete(&models.CouponModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", coupons.ErrNotFound, couponID)
	}

	r.logger.Info("Deleted coupon with id ", couponID)
	return nil
}

func (r *gormCouponRepository) IncrementUsage(ctx context.Context, couponID string) error {
	res := dbFromContext(ctx, r.db).Model(&models.CouponModel{}).
		Where("id = ? AND (usage_limit = 0 OR usage_count < usage_limit)", couponID).
		Update("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to redeem coupon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, couponID); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s", coupons.ErrCouponUsageExceeded, couponID)
	}

	r.logger.Info("Redeemed coupon with id ", couponID)
	return nil
}

func (r *gormCouponRepository) ensureCodeFree(ctx context.Context, code, couponID string) error {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&models.CouponModel{}).
		Where("code = ? AND id <> ?", code, couponID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check coupon code: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: %s", coupons.ErrDuplicateCode, code)
	}
	return nil
}
