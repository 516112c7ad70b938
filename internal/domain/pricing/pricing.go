// Package pricing holds the pure money arithmetic of the shop: line totals,
// coupon and subscription discounts, shipping and order quotes. Amounts are
// rounded half away from zero to the minor unit of the currency.
package pricing

import (
	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/domain/settings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is one priced position of a cart or order.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Quote is the price breakdown of one order, or of one delivery of a subscription.
type Quote struct {
	Subtotal             decimal.Decimal
	CouponDiscount       decimal.Decimal
	SubscriptionDiscount decimal.Decimal
	Shipping             decimal.Decimal
	Total                decimal.Decimal
	Currency             string
}

// MinorUnits returns the number of decimals an amount in currency is kept at.
func MinorUnits(currency string) int32 {
	switch currency {
	case "HUF", "JPY", "KRW":
		return 0
	default:
		return 2
	}
}

// Round rounds amount to the minor unit of currency.
func Round(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Round(MinorUnits(currency))
}

// LineTotal returns unitPrice × qty.
func LineTotal(unitPrice decimal.Decimal, qty int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// Multiply returns amount × n.
func Multiply(amount decimal.Decimal, n int) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(int64(n)))
}

// Subtotal sums the line totals.
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineTotal(l.UnitPrice, l.Quantity))
	}
	return sum
}

// Discount returns the coupon discount for subtotal; it is never negative and
// never larger than subtotal. A nil coupon gives no discount.
func Discount(c *coupons.Coupon, subtotal decimal.Decimal, currency string) decimal.Decimal {
	if c == nil || !subtotal.IsPositive() {
		return decimal.Zero
	}

	var d decimal.Decimal
	switch c.Kind {
	case coupons.KindPercent:
		d = Round(subtotal.Mul(c.Value).Div(hundred), currency)
	case coupons.KindFixed:
		d = c.Value
	default:
		return decimal.Zero
	}
	return clamp(d, subtotal)
}

// SubscriptionDiscount returns percent % of amount, rounded.
func SubscriptionDiscount(percent, amount decimal.Decimal, currency string) decimal.Decimal {
	if !percent.IsPositive() || !amount.IsPositive() {
		return decimal.Zero
	}
	return clamp(Round(amount.Mul(percent).Div(hundred), currency), amount)
}

// ShippingFee returns the fee for an order worth amount after discounts:
// nothing for an empty order or when a positive free-shipping threshold is reached.
func ShippingFee(s *settings.ShopSettings, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}
	if s.FreeShippingThreshold.IsPositive() && amount.GreaterThanOrEqual(s.FreeShippingThreshold) {
		return decimal.Zero
	}
	return s.ShippingFee
}

// Calculate prices lines with an optional coupon. For subscriptions the
// quote is per delivery and includes the subscription discount.
func Calculate(lines []Line, c *coupons.Coupon, s *settings.ShopSettings, isSubscription bool) Quote {
	currency := s.Currency
	q := Quote{Currency: currency}

	q.Subtotal = Round(Subtotal(lines), currency)
	q.CouponDiscount = Discount(c, q.Subtotal, currency)

	afterCoupon := q.Subtotal.Sub(q.CouponDiscount)
	if isSubscription {
		q.SubscriptionDiscount = SubscriptionDiscount(s.SubscriptionDiscountPercent, afterCoupon, currency)
	} else {
		q.SubscriptionDiscount = decimal.Zero
	}

	afterDiscounts := afterCoupon.Sub(q.SubscriptionDiscount)
	q.Shipping = ShippingFee(s, afterDiscounts)
	q.Total = afterDiscounts.Add(q.Shipping)
	return q
}

func clamp(d, max decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(max) {
		return max
	}
	return d
}
