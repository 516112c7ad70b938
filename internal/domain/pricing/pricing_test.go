//go:build unit
// +build unit

package pricing

import (
	"testing"
	"time"

	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/domain/settings"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound(t *testing.T) {
	assert.True(t, d("1235").Equal(Round(d("1234.5"), "HUF")))
	assert.True(t, d("1234").Equal(Round(d("1234.49"), "HUF")))
	assert.True(t, d("12.35").Equal(Round(d("12.345"), "EUR")))
	assert.Equal(t, int32(0), MinorUnits("HUF"))
	assert.Equal(t, int32(2), MinorUnits("USD"))
}

func TestSubtotal(t *testing.T) {
	lines := []Line{
		{UnitPrice: d("4990"), Quantity: 2},
		{UnitPrice: d("350"), Quantity: 6},
	}
	assert.True(t, d("12080").Equal(Subtotal(lines)))
	assert.True(t, decimal.Zero.Equal(Subtotal(nil)))
}

func TestDiscount(t *testing.T) {
	percent := &coupons.Coupon{Kind: coupons.KindPercent, Value: d("15")}
	fixed := &coupons.Coupon{Kind: coupons.KindFixed, Value: d("3000")}

	tests := []struct {
		name     string
		coupon   *coupons.Coupon
		subtotal string
		want     string
	}{
		{"no coupon", nil, "10000", "0"},
		{"percent rounds half up", percent, "3333", "500"},
		{"fixed below subtotal", fixed, "10000", "3000"},
		{"fixed capped at subtotal", fixed, "2000", "2000"},
		{"empty subtotal", percent, "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Discount(tt.coupon, d(tt.subtotal), "HUF")
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestShippingFee(t *testing.T) {
	s := settings.Default()

	assert.True(t, d("1490").Equal(ShippingFee(s, d("19999"))))
	assert.True(t, decimal.Zero.Equal(ShippingFee(s, d("20000"))))
	assert.True(t, decimal.Zero.Equal(ShippingFee(s, decimal.Zero)))

	s.FreeShippingThreshold = decimal.Zero
	assert.True(t, d("1490").Equal(ShippingFee(s, d("100000"))))
}

func TestCalculate_OneTime(t *testing.T) {
	s := settings.Default()
	c := &coupons.Coupon{Kind: coupons.KindPercent, Value: d("10"), ValidFrom: time.Now()}

	q := Calculate([]Line{{UnitPrice: d("4990"), Quantity: 3}}, c, s, false)

	assert.Equal(t, "HUF", q.Currency)
	assert.True(t, d("14970").Equal(q.Subtotal))
	assert.True(t, d("1497").Equal(q.CouponDiscount))
	assert.True(t, decimal.Zero.Equal(q.SubscriptionDiscount))
	assert.True(t, d("1490").Equal(q.Shipping))
	assert.True(t, d("14963").Equal(q.Total))
}

func TestCalculate_Subscription(t *testing.T) {
	s := settings.Default()

	q := Calculate([]Line{{UnitPrice: d("10000"), Quantity: 2}}, nil, s, true)

	assert.True(t, d("20000").Equal(q.Subtotal))
	assert.True(t, d("1000").Equal(q.SubscriptionDiscount))
	// 19000 is below the free shipping threshold after the discount
	assert.True(t, d("1490").Equal(q.Shipping))
	assert.True(t, d("20490").Equal(q.Total))
}

func TestCalculate_FixedCouponCoversEverything(t *testing.T) {
	s := settings.Default()
	c := &coupons.Coupon{Kind: coupons.KindFixed, Value: d("50000")}

	q := Calculate([]Line{{UnitPrice: d("990"), Quantity: 1}}, c, s, false)

	assert.True(t, d("990").Equal(q.CouponDiscount))
	assert.True(t, decimal.Zero.Equal(q.Shipping))
	assert.True(t, decimal.Zero.Equal(q.Total))
}

func TestMultiply(t *testing.T) {
	assert.True(t, d("61470").Equal(Multiply(d("20490"), 3)))
}
