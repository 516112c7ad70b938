package orders

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of an order.
type Status string

// Order statuses
const (
	StatusPending         Status = "pending"
	StatusAwaitingPayment Status = "awaiting_payment"
	StatusPaid            Status = "paid"
	StatusPaymentFailed   Status = "payment_failed"
	StatusProcessing      Status = "processing"
	StatusShipped         Status = "shipped"
	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusRefunded        Status = "refunded"
)

// ErrInvalidTransition is returned when a status change is not allowed.
var ErrInvalidTransition = errors.New("invalid order status transition")

var transitions = map[Status][]Status{
	StatusPending:         {StatusAwaitingPayment, StatusProcessing, StatusCancelled},
	StatusAwaitingPayment: {StatusPaid, StatusPaymentFailed, StatusCancelled},
	StatusPaymentFailed:   {StatusAwaitingPayment, StatusCancelled},
	StatusPaid:            {StatusProcessing, StatusRefunded},
	StatusProcessing:      {StatusShipped, StatusCancelled},
	StatusShipped:         {StatusCompleted},
	StatusCompleted:       {StatusRefunded},
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAwaitingPayment, StatusPaid, StatusPaymentFailed, StatusProcessing,
		StatusShipped, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
// Staying in the same status is always allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition leaves s.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CheckTransition returns ErrInvalidTransition when s may not move to next.
func CheckTransition(from, to Status) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, to)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}
