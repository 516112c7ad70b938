// Package payments defines the payment provider ports, the mapping of
// provider statuses onto order statuses and the audit trail of processed
// provider notifications.
package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/orders"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Provider names a payment provider.
type Provider string

// Providers
const (
	ProviderBarion Provider = "barion"
	ProviderStripe Provider = "stripe"
)

// StatusStarted is the provider status recorded when the shop starts a payment.
const StatusStarted = "Started"

var (
	// ErrUnknownProviderStatus is returned for provider statuses without a mapping.
	ErrUnknownProviderStatus = errors.New("unknown provider payment status")
	// ErrInvalidSignature is returned when a webhook signature does not verify.
	ErrInvalidSignature = errors.New("invalid webhook signature")
	// ErrProviderDisabled is returned when the requested provider is not configured.
	ErrProviderDisabled = errors.New("payment provider is not enabled")
	// ErrUnknownPayment is returned when a notification references no known order.
	ErrUnknownPayment = errors.New("unknown payment")
)

// ChargeItem is one line shown on the provider's payment page.
type ChargeItem struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Charge asks a provider to collect Amount for an order. Reference is
// unique per payment attempt of an installment.
type Charge struct {
	Order     *orders.Order
	Reference string
	Amount    decimal.Decimal
	Items     []ChargeItem
}

// StartResult is the provider reference of a started payment and the page
// the customer is redirected to.
type StartResult struct {
	ProviderRef string
	RedirectURL string
	Status      string
}

// Gateway starts payments at a provider.
type Gateway interface {
	Provider() Provider
	Start(ctx context.Context, charge *Charge) (*StartResult, error)
}

// BarionState is the state of a Barion payment as reported by GetPaymentState.
type BarionState struct {
	PaymentID        string
	PaymentRequestID string
	Status           string
	Total            decimal.Decimal
	Currency         string
}

// BarionGateway is the Barion Smart Gateway.
type BarionGateway interface {
	Gateway
	GetPaymentState(ctx context.Context, paymentID string) (*BarionState, error)
}

// StripeEvent is the part of a verified Stripe webhook event the shop acts on.
type StripeEvent struct {
	ID            string
	Type          string
	SessionID     string
	OrderID       string
	PaymentStatus string
}

// StripeGateway is the Stripe Checkout integration.
type StripeGateway interface {
	Gateway
	// ParseWebhook verifies the Stripe-Signature header and decodes the event.
	ParseWebhook(payload []byte, signatureHeader string) (*StripeEvent, error)
}

// PaymentEvent is the audit record of one processed provider notification.
type PaymentEvent struct {
	ID              string
	OrderID         string
	Provider        Provider
	ProviderRef     string
	ProviderStatus  string
	MappedStatus    orders.Status
	Applied         bool
	DateTimeCreated time.Time
}

// BarionCallbackService reconciles orders from Barion callbacks.
type BarionCallbackService interface {
	HandleCallback(ctx context.Context, paymentID string) (*PaymentEvent, error)
}

// StripeWebhookService reconciles orders from Stripe webhooks. It returns a
// nil event for event types the shop ignores.
type StripeWebhookService interface {
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (*PaymentEvent, error)
}

// PaymentEventRepository defines the interface for PaymentEvent-related operations
type PaymentEventRepository interface {
	Create(ctx context.Context, event *PaymentEvent) error
	// FindOrderID returns the order a provider reference was issued for;
	// ErrUnknownPayment when the trail has no such reference.
	FindOrderID(ctx context.Context, provider Provider, ref string) (string, error)
	ListByOrder(ctx context.Context, orderID string) ([]*PaymentEvent, error)
}

// BuildCharge prices the online payment of group. A one-time order without
// discounts lists its items and shipping; everything else is charged as one
// line naming the order and installment.
func BuildCharge(order *orders.Order, group *billing.PaymentGroup, groupCount int) *Charge {
	charge := &Charge{
		Order:     order,
		Reference: fmt.Sprintf("%s-%d-%s", order.Number, group.Sequence, strings.ToUpper(uuid.NewString()[:4])),
		Amount:    group.AmountDue,
	}

	if !order.IsSubscription() && order.CouponDiscount.IsZero() && order.SubscriptionDiscount.IsZero() {
		for _, it := range order.Items {
			charge.Items = append(charge.Items, ChargeItem{
				Name:      it.ProductName,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Total:     it.LineTotal,
			})
		}
		if order.ShippingFee.IsPositive() {
			charge.Items = append(charge.Items, ChargeItem{
				Name:      "Shipping",
				Quantity:  1,
				UnitPrice: order.ShippingFee,
				Total:     order.ShippingFee,
			})
		}
		return charge
	}

	name := fmt.Sprintf("Order %s", order.Number)
	if groupCount > 1 {
		name = fmt.Sprintf("Order %s, payment %d of %d", order.Number, group.Sequence, groupCount)
	}
	charge.Items = []ChargeItem{{
		Name:      name,
		Quantity:  1,
		UnitPrice: group.AmountDue,
		Total:     group.AmountDue,
	}}
	return charge
}
