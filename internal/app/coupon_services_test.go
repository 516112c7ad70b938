//go:build unit
// +build unit

package app

import (
	"context"
	"testing"

	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponService_Lifecycle(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	created, err := ts.CouponService.Create(ctx, &coupons.Coupon{
		Code:   " nyar15 ",
		Kind:   coupons.KindPercent,
		Value:  decimal.NewFromInt(15),
		Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "NYAR15", created.Code)
	assert.Equal(t, TestNow, created.ValidFrom)

	_, err = ts.CouponService.Create(ctx, &coupons.Coupon{
		Code:  "NYAR15",
		Kind:  coupons.KindFixed,
		Value: decimal.NewFromInt(1000),
	})
	assert.ErrorIs(t, err, coupons.ErrDuplicateCode)

	byCode, err := ts.CouponService.GetByCode(ctx, "nyar15")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	updated, err := ts.CouponService.Update(ctx, &coupons.Coupon{
		ID:         created.ID,
		Code:       "IGNORED",
		Kind:       coupons.KindFixed,
		Value:      decimal.NewFromInt(2000),
		UsageLimit: 10,
		UsageCount: 99,
		Active:     false,
	})
	require.NoError(t, err)
	assert.Equal(t, "NYAR15", updated.Code)
	assert.Equal(t, 0, updated.UsageCount)
	assert.False(t, updated.Active)

	require.NoError(t, ts.CouponService.DeleteByID(ctx, created.ID))
	_, err = ts.CouponService.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, coupons.ErrNotFound)
}

func TestCouponService_CreateRejectsInvalid(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)

	_, err := ts.CouponService.Create(context.Background(), &coupons.Coupon{
		Code:  "HALF",
		Kind:  coupons.KindPercent,
		Value: decimal.NewFromInt(150),
	})
	require.Error(t, err)
}
