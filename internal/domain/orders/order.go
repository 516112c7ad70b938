// Package orders defines orders, their status machine and the checkout
// contracts that turn a cart into an order.
package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/pkg/validators"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tells one-time orders from subscriptions.
type Kind string

// Order kinds
const (
	KindOneTime      Kind = "one_time"
	KindSubscription Kind = "subscription"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

// Payment methods
const (
	PaymentBarion         PaymentMethod = "barion"
	PaymentStripe         PaymentMethod = "stripe"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Online reports whether the method is collected through a payment provider.
func (m PaymentMethod) Online() bool {
	return m == PaymentBarion || m == PaymentStripe
}

var (
	// ErrNotFound is returned when no order matches the lookup.
	ErrNotFound = errors.New("order not found")
	// ErrEmptyCart is returned when checking out a cart without items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrShopClosed is returned when checkout is attempted while the shop is closed.
	ErrShopClosed = errors.New("shop is closed")
	// ErrPaymentStartFailed is returned when the payment provider could not start a payment.
	ErrPaymentStartFailed = errors.New("payment could not be started")
	// ErrNotPayable is returned when a payment is requested for an order that cannot be paid online.
	ErrNotPayable = errors.New("order cannot be paid online")
	// ErrNotSubscribable is returned when a subscription contains a product not offered by subscription.
	ErrNotSubscribable = errors.New("product is not available by subscription")
	// ErrInvalidCheckout is returned for checkout requests with an invalid kind, method or schedule.
	ErrInvalidCheckout = errors.New("invalid checkout request")
)

// OrderItem is a price snapshot of one product taken at checkout.
type OrderItem struct {
	ProductID   string          `validate:"required,uuid4"`
	ProductName string          `validate:"required"`
	UnitPrice   decimal.Decimal `validate:"gt=0"`
	Quantity    int             `validate:"min=1,max=99"`
	LineTotal   decimal.Decimal
}

// Order entity. For subscriptions the money fields are per delivery.
type Order struct {
	ID                   string `validate:"required,uuid4"`
	Number               string `validate:"required"`
	CustomerID           string `validate:"required,uuid4"`
	Kind                 Kind   `validate:"required,oneof=one_time subscription"`
	Recurrence           deliveries.Recurrence
	DeliveryCount        int           `validate:"min=1"`
	Status               Status        `validate:"required"`
	PaymentMethod        PaymentMethod `validate:"required,oneof=barion stripe bank_transfer cash_on_delivery"`
	CouponCode           string
	Subtotal             decimal.Decimal
	CouponDiscount       decimal.Decimal
	SubscriptionDiscount decimal.Decimal
	ShippingFee          decimal.Decimal
	Total                decimal.Decimal
	Currency             string      `validate:"required,currency"`
	Items                []OrderItem `validate:"required,min=1,dive"`
	ShippingAddress      customers.Address
	PaymentProviderRef   string
	DateTimeCreated      time.Time
	DateTimeUpdated      time.Time
}

// Validate for validating Order struct
func (o *Order) Validate() error {
	if err := validators.Struct(o); err != nil {
		return fmt.Errorf("order %s: %w", o.Number, err)
	}
	if o.Kind == KindSubscription && !o.Recurrence.Valid() {
		return fmt.Errorf("order %s: subscription requires a recurrence", o.Number)
	}
	if o.Kind == KindOneTime && o.DeliveryCount != 1 {
		return fmt.Errorf("order %s: one-time order has exactly one delivery", o.Number)
	}
	return nil
}

// TransitionTo moves the order to next, stamping the update time.
func (o *Order) TransitionTo(next Status, now time.Time) error {
	if err := CheckTransition(o.Status, next); err != nil {
		return fmt.Errorf("order %s: %w", o.Number, err)
	}
	if o.Status != next {
		o.Status = next
		o.DateTimeUpdated = now
	}
	return nil
}

// IsSubscription reports whether the order recurs.
func (o *Order) IsSubscription() bool {
	return o.Kind == KindSubscription
}

// NewOrderNumber returns a human readable order number like SO-20240102-3F9A1C.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("SO-%s-%s", now.UTC().Format("20060102"), suffix)
}
