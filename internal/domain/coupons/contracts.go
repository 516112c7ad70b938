package coupons

import "context"

// CouponQuery pages the admin coupon listing.
type CouponQuery struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}

// CouponService manages coupons from the back-office.
type CouponService interface {
	Create(ctx context.Context, coupon *Coupon) (*Coupon, error)
	List(ctx context.Context, query *CouponQuery) ([]*Coupon, error)
	GetByID(ctx context.Context, couponID string) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	Update(ctx context.Context, coupon *Coupon) (*Coupon, error)
	DeleteByID(ctx context.Context, couponID string) error
}

// CouponRepository defines the interface for Coupon-related operations
type CouponRepository interface {
	Create(ctx context.Context, coupon *Coupon) error
	List(ctx context.Context, query *CouponQuery) ([]*Coupon, error)
	GetByID(ctx context.Context, couponID string) (*Coupon, error)
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	UpdateByID(ctx context.Context, coupon *Coupon) error
	DeleteByID(ctx context.Context, couponID string) error
	// IncrementUsage counts one redemption and fails with ErrCouponUsageExceeded
	// when the limit was reached in the meantime.
	IncrementUsage(ctx context.Context, couponID string) error
}
