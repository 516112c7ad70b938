package payments

import (
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/orders"
)

var barionStatuses = map[string]orders.Status{
	"Succeeded":          orders.StatusPaid,
	"PartiallySucceeded": orders.StatusPaid,
	"Canceled":           orders.StatusCancelled,
	"Expired":            orders.StatusCancelled,
	"Failed":             orders.StatusPaymentFailed,
	"Prepared":           orders.StatusAwaitingPayment,
	"Started":            orders.StatusAwaitingPayment,
	"InProgress":         orders.StatusAwaitingPayment,
	"Waiting":            orders.StatusAwaitingPayment,
	"Reserved":           orders.StatusAwaitingPayment,
	"Authorized":         orders.StatusAwaitingPayment,
}

// MapBarionStatus maps a Barion payment status onto an order status.
func MapBarionStatus(status string) (orders.Status, error) {
	s, ok := barionStatuses[status]
	if !ok {
		return "", fmt.Errorf("%w: barion %q", ErrUnknownProviderStatus, status)
	}
	return s, nil
}

// Stripe checkout session events
const (
	StripeSessionCompleted             = "checkout.session.completed"
	StripeSessionAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
	StripeSessionAsyncPaymentFailed    = "checkout.session.async_payment_failed"
	StripeSessionExpired               = "checkout.session.expired"
)

// MapStripeEvent maps a checkout session event onto an order status. handled
// is false for events the shop does not act on.
func MapStripeEvent(eventType, paymentStatus string) (status orders.Status, handled bool) {
	switch eventType {
	case StripeSessionCompleted:
		switch paymentStatus {
		case "paid", "no_payment_required":
			return orders.StatusPaid, true
		default:
			return orders.StatusAwaitingPayment, true
		}
	case StripeSessionAsyncPaymentSucceeded:
		return orders.StatusPaid, true
	case StripeSessionAsyncPaymentFailed:
		return orders.StatusPaymentFailed, true
	case StripeSessionExpired:
		return orders.StatusCancelled, true
	}
	return "", false
}
