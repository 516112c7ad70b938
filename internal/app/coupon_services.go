package app

import (
	"context"

	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// couponService implements the CouponService interface
type couponService struct {
	couponRepo coupons.CouponRepository
	clock      clockwork.Clock
	logger     logger.Logger
}

// NewCouponService creates a new instance of CouponService
func NewCouponService(couponRepo coupons.CouponRepository, clock clockwork.Clock, logger logger.Logger) (coupons.CouponService, error) {
	return &couponService{
		couponRepo: couponRepo,
		clock:      clock,
		logger:     logger,
	}, nil
}

func (s *couponService) Create(ctx context.Context, coupon *coupons.Coupon) (*coupons.Coupon, error) {
	coupon.ID = uuid.NewString()
	coupon.Code = coupons.NormalizeCode(coupon.Code)
	coupon.UsageCount = 0
	coupon.DateTimeCreated = s.clock.Now().UTC()
	if coupon.ValidFrom.IsZero() {
		coupon.ValidFrom = coupon.DateTimeCreated
	}
	if err := coupon.Validate(); err != nil {
		return nil, err
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, err
	}
	s.logger.Info("Created coupon ", coupon.Code, " with id ", coupon.ID)
	return coupon, nil
}

func (s *couponService) List(ctx context.Context, query *coupons.CouponQuery) ([]*coupons.Coupon, error) {
	if query == nil {
		query = &coupons.CouponQuery{Limit: 50}
	}
	return s.couponRepo.List(ctx, query)
}

func (s *couponService) GetByID(ctx context.Context, couponID string) (*coupons.Coupon, error) {
	return s.couponRepo.GetByID(ctx, couponID)
}

func (s *couponService) GetByCode(ctx context.Context, code string) (*coupons.Coupon, error) {
	return s.couponRepo.GetByCode(ctx, coupons.NormalizeCode(code))
}

// Update keeps the code, usage count and creation time of the stored coupon.
func (s *couponService) Update(ctx context.Context, coupon *coupons.Coupon) (*coupons.Coupon, error) {
	existing, err := s.couponRepo.GetByID(ctx, coupon.ID)
	if err != nil {
		return nil, err
	}
	coupon.Code = existing.Code
	coupon.UsageCount = existing.UsageCount
	coupon.DateTimeCreated = existing.DateTimeCreated
	if coupon.ValidFrom.IsZero() {
		coupon.ValidFrom = existing.ValidFrom
	}
	if err := coupon.Validate(); err != nil {
		return nil, err
	}
	if err := s.couponRepo.UpdateByID(ctx, coupon); err != nil {
		return nil, err
	}
	s.logger.Info("Updated coupon ", coupon.Code)
	return coupon, nil
}

func (s *couponService) DeleteByID(ctx context.Context, couponID string) error {
	if err := s.couponRepo.DeleteByID(ctx, couponID); err != nil {
		return err
	}
	s.logger.Info("Deleted coupon with id ", couponID)
	return nil
}
