//go:build unit
// +build unit

package coupons

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)

func testCoupon() *Coupon {
	return &Coupon{
		ID:              uuid.NewString(),
		Code:            "TAVASZ10",
		Kind:            KindPercent,
		Value:           decimal.NewFromInt(10),
		MinOrderAmount:  decimal.NewFromInt(5000),
		ValidFrom:       testNow.AddDate(0, 0, -1),
		Active:          true,
		DateTimeCreated: testNow,
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "TAVASZ10", NormalizeCode("  tavasz10 "))
}

func TestCoupon_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Coupon)
		wantErr bool
	}{
		{"valid", func(c *Coupon) {}, false},
		{"lowercase code", func(c *Coupon) { c.Code = "tavasz10" }, true},
		{"unknown kind", func(c *Coupon) { c.Kind = "bogo" }, true},
		{"zero value", func(c *Coupon) { c.Value = decimal.Zero }, true},
		{"percent over 100", func(c *Coupon) { c.Value = decimal.NewFromInt(101) }, true},
		{"fixed over 100", func(c *Coupon) { c.Kind = KindFixed; c.Value = decimal.NewFromInt(1500) }, false},
		{"until before from", func(c *Coupon) {
			until := c.ValidFrom.Add(-time.Hour)
			c.ValidUntil = &until
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCoupon()
			tt.modify(c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCoupon_CheckApplicable(t *testing.T) {
	enough := decimal.NewFromInt(6000)

	tests := []struct {
		name         string
		modify       func(c *Coupon)
		subtotal     decimal.Decimal
		subscription bool
		want         error
	}{
		{"applies", func(c *Coupon) {}, enough, false, nil},
		{"inactive", func(c *Coupon) { c.Active = false }, enough, false, ErrCouponExpired},
		{"not yet valid", func(c *Coupon) { c.ValidFrom = testNow.Add(time.Hour) }, enough, false, ErrCouponExpired},
		{"expired at boundary", func(c *Coupon) {
			until := testNow
			c.ValidUntil = &until
		}, enough, false, ErrCouponExpired},
		{"usage exhausted", func(c *Coupon) { c.UsageLimit, c.UsageCount = 3, 3 }, enough, false, ErrCouponUsageExceeded},
		{"unlimited usage", func(c *Coupon) { c.UsageCount = 1000 }, enough, false, nil},
		{"below minimum", func(c *Coupon) {}, decimal.NewFromInt(4999), false, ErrCouponMinimumNotMet},
		{"minimum exactly met", func(c *Coupon) {}, decimal.NewFromInt(5000), false, nil},
		{"subscription only on one-time", func(c *Coupon) { c.SubscriptionOnly = true }, enough, false, ErrCouponNotApplicable},
		{"subscription only on subscription", func(c *Coupon) { c.SubscriptionOnly = true }, enough, true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testCoupon()
			tt.modify(c)
			err := c.CheckApplicable(tt.subtotal, tt.subscription, testNow)
			if tt.want == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.want)
			}
		})
	}
}
