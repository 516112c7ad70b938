// Package coupons defines discount coupons and the rules deciding whether a
// coupon applies to an order.
package coupons

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drinkbox/storefront/internal/pkg/validators"

	"github.com/shopspring/decimal"
)

// Coupon kinds
const (
	KindPercent = "percent"
	KindFixed   = "fixed"
)

var (
	// ErrNotFound is returned when no coupon matches the lookup.
	ErrNotFound = errors.New("coupon not found")
	// ErrCouponExpired is returned for inactive coupons and outside the validity window.
	ErrCouponExpired = errors.New("coupon is not valid at this time")
	// ErrCouponUsageExceeded is returned once the usage limit is reached.
	ErrCouponUsageExceeded = errors.New("coupon usage limit reached")
	// ErrCouponMinimumNotMet is returned when the subtotal is below the coupon minimum.
	ErrCouponMinimumNotMet = errors.New("order subtotal below coupon minimum")
	// ErrCouponNotApplicable is returned for subscription-only coupons on one-time orders.
	ErrCouponNotApplicable = errors.New("coupon only applies to subscriptions")
	// ErrDuplicateCode is returned when another coupon already uses the code.
	ErrDuplicateCode = errors.New("coupon code already exists")
)

// Coupon entity
type Coupon struct {
	ID               string          `validate:"required,uuid4"`
	Code             string          `validate:"required,couponcode"`
	Kind             string          `validate:"required,oneof=percent fixed"`
	Value            decimal.Decimal `validate:"gt=0"`
	MinOrderAmount   decimal.Decimal `validate:"gte=0"`
	ValidFrom        time.Time       `validate:"required"`
	ValidUntil       *time.Time
	UsageLimit       int `validate:"min=0"`
	UsageCount       int `validate:"min=0"`
	Active           bool
	SubscriptionOnly bool
	DateTimeCreated  time.Time
}

// NormalizeCode upper-cases and trims a code entered by a customer.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validate for validating Coupon struct
func (c *Coupon) Validate() error {
	if err := validators.Struct(c); err != nil {
		return fmt.Errorf("coupon %s: %w", c.Code, err)
	}
	if c.Kind == KindPercent && c.Value.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("coupon %s: percent value must not exceed 100", c.Code)
	}
	if c.ValidUntil != nil && !c.ValidUntil.After(c.ValidFrom) {
		return fmt.Errorf("coupon %s: valid until must be after valid from", c.Code)
	}
	return nil
}

// CheckApplicable reports why the coupon cannot be used for an order with
// the given subtotal at time now, or nil when it can.
func (c *Coupon) CheckApplicable(subtotal decimal.Decimal, isSubscription bool, now time.Time) error {
	if !c.Active || now.Before(c.ValidFrom) || (c.ValidUntil != nil && !now.Before(*c.ValidUntil)) {
		return fmt.Errorf("%w: %s", ErrCouponExpired, c.Code)
	}
	if c.UsageLimit > 0 && c.UsageCount >= c.UsageLimit {
		return fmt.Errorf("%w: %s", ErrCouponUsageExceeded, c.Code)
	}
	if subtotal.LessThan(c.MinOrderAmount) {
		return fmt.Errorf("%w: %s requires %s", ErrCouponMinimumNotMet, c.Code, c.MinOrderAmount.String())
	}
	if c.SubscriptionOnly && !isSubscription {
		return fmt.Errorf("%w: %s", ErrCouponNotApplicable, c.Code)
	}
	return nil
}
