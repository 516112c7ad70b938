package orders

import (
	"context"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/pkg/validators"
)

// CheckoutRequest carries everything needed to turn a cart into an order.
type CheckoutRequest struct {
	CartID        string
	Customer      customers.Customer
	Kind          Kind
	Recurrence    deliveries.Recurrence
	StartDate     time.Time
	DeliveryCount int
	PaymentMethod PaymentMethod
}

// CheckoutResult is the created order. RedirectURL is set for online
// payment methods and points at the provider's hosted payment page.
type CheckoutResult struct {
	Order         *Order
	Deliveries    []*deliveries.Delivery
	PaymentGroups []*billing.PaymentGroup
	RedirectURL   string
}

// OrderQuery filters and pages the admin order listing.
type OrderQuery struct {
	Status     Status `validate:"omitempty,oneof=pending awaiting_payment paid payment_failed processing shipped completed cancelled refunded"`
	Kind       Kind   `validate:"omitempty,oneof=one_time subscription"`
	CustomerID string `validate:"omitempty,uuid4"`
	From       *time.Time
	To         *time.Time
	Limit      int `validate:"min=0,max=200"`
	Offset     int `validate:"min=0"`
}

// CheckoutService creates orders and starts their online payment.
type CheckoutService interface {
	Checkout(ctx context.Context, req *CheckoutRequest) (*CheckoutResult, error)
	// StartPayment (re)starts the online payment of an order in pending,
	// awaiting_payment or payment_failed and returns the redirect URL.
	StartPayment(ctx context.Context, orderNumber string) (string, error)
}

// OrderService reads and administers orders.
type OrderService interface {
	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetByNumber(ctx context.Context, number string) (*Order, error)
	List(ctx context.Context, query *OrderQuery) ([]*Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error)
	// Cancel cancels the order, its remaining deliveries and restores stock
	// when nothing was shipped yet.
	Cancel(ctx context.Context, orderID string) (*Order, error)
}

// OrderRepository defines the interface for Order-related operations
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	GetByNumber(ctx context.Context, number string) (*Order, error)
	GetByProviderRef(ctx context.Context, ref string) (*Order, error)
	List(ctx context.Context, query *OrderQuery) ([]*Order, error)
	// UpdateByID stores status, provider reference and update time.
	UpdateByID(ctx context.Context, order *Order) error
}

// Validate for validating OrderQuery struct
func (q *OrderQuery) Validate() error {
	return validators.Struct(q)
}
