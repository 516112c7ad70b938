// Package billing defines order payment groups: the installments a
// subscription (or a one-time order) is billed and paid in.
package billing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/pricing"
	"github.com/drinkbox/storefront/internal/pkg/validators"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when no payment group matches the lookup.
	ErrNotFound = errors.New("payment group not found")
	// ErrBillNotCreated is returned when marking a bill sent before it was created.
	ErrBillNotCreated = errors.New("bill has not been created")
	// ErrAlreadyPaid is returned when changing the bill of a paid group.
	ErrAlreadyPaid = errors.New("payment group already paid")
	// ErrVoided is returned when billing a group of a cancelled or refunded order.
	ErrVoided = errors.New("payment group is void")
)

// PaymentGroup entity
type PaymentGroup struct {
	ID              string
	OrderID         string
	Sequence        int
	AmountDue       decimal.Decimal
	Currency        string
	DueDate         time.Time
	DeliveryIDs     []string
	BillCreated     bool
	BillCreatedAt   *time.Time
	BillSent        bool
	BillSentAt      *time.Time
	Paid            bool
	PaidAt          *time.Time
	Voided          bool
	VoidedAt        *time.Time
	DateTimeCreated time.Time
}

// MarkBillCreated flags the bill of the group as created.
func (g *PaymentGroup) MarkBillCreated(now time.Time) {
	if g.BillCreated {
		return
	}
	g.BillCreated = true
	g.BillCreatedAt = &now
}

// MarkBillSent flags the bill as sent; the bill must have been created.
func (g *PaymentGroup) MarkBillSent(now time.Time) error {
	if g.Voided {
		return fmt.Errorf("payment group %d: %w", g.Sequence, ErrVoided)
	}
	if !g.BillCreated {
		return fmt.Errorf("payment group %d: %w", g.Sequence, ErrBillNotCreated)
	}
	if !g.BillSent {
		g.BillSent = true
		g.BillSentAt = &now
	}
	return nil
}

// MarkPaid flags the group as paid.
func (g *PaymentGroup) MarkPaid(now time.Time) {
	if g.Paid {
		return
	}
	g.Paid = true
	g.PaidAt = &now
}

// Void takes an unpaid group out of billing. Paid groups keep their record
// and report false.
func (g *PaymentGroup) Void(now time.Time) bool {
	if g.Paid || g.Voided {
		return false
	}
	g.Voided = true
	g.VoidedAt = &now
	return true
}

// Outstanding reports whether the group still has to be billed or paid.
func (g *PaymentGroup) Outstanding() bool {
	return !g.Paid && !g.Voided
}

// Overdue reports whether the group is outstanding and its due date lies before today.
func (g *PaymentGroup) Overdue(today time.Time) bool {
	return g.Outstanding() && g.DueDate.Before(deliveries.Day(today))
}

// PlanOneTime returns the single group of a one-time order.
func PlanOneTime(orderID string, orderDate time.Time, total decimal.Decimal, currency string,
	delivery *deliveries.Delivery, bankTransfer bool, dueDays int,
) *PaymentGroup {
	var ids []string
	if delivery != nil {
		ids = []string{delivery.ID}
	}
	return &PaymentGroup{
		ID:              uuid.NewString(),
		OrderID:         orderID,
		Sequence:        1,
		AmountDue:       total,
		Currency:        currency,
		DueDate:         firstDueDate(orderDate, bankTransfer, dueDays),
		DeliveryIDs:     ids,
		DateTimeCreated: orderDate,
	}
}

// PlanSubscription groups the deliveries of a subscription by calendar month.
// Each group owes perDelivery for every delivery it covers. The first group
// is due at checkout (bank transfer: dueDays later); later groups are due
// dueDays before their earliest delivery but never before the order date.
func PlanSubscription(orderID string, orderDate time.Time, perDelivery decimal.Decimal, currency string,
	scheduled []*deliveries.Delivery, bankTransfer bool, dueDays int,
) []*PaymentGroup {
	sorted := append([]*deliveries.Delivery(nil), scheduled...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ScheduledDate.Before(sorted[j].ScheduledDate)
	})

	orderDay := deliveries.Day(orderDate)
	var groups []*PaymentGroup
	var current *PaymentGroup
	var currentMonth string
	var earliest time.Time

	flush := func() {
		if current == nil {
			return
		}
		current.AmountDue = pricing.Multiply(perDelivery, len(current.DeliveryIDs))
		if current.Sequence == 1 {
			current.DueDate = firstDueDate(orderDate, bankTransfer, dueDays)
		} else {
			due := earliest.AddDate(0, 0, -dueDays)
			if due.Before(orderDay) {
				due = orderDay
			}
			current.DueDate = due
		}
		groups = append(groups, current)
	}

	for _, d := range sorted {
		month := d.ScheduledDate.UTC().Format("2006-01")
		if current == nil || month != currentMonth {
			flush()
			current = &PaymentGroup{
				ID:              uuid.NewString(),
				OrderID:         orderID,
				Sequence:        len(groups) + 1,
				Currency:        currency,
				DateTimeCreated: orderDate,
			}
			currentMonth = month
			earliest = deliveries.Day(d.ScheduledDate)
		}
		current.DeliveryIDs = append(current.DeliveryIDs, d.ID)
	}
	flush()
	return groups
}

func firstDueDate(orderDate time.Time, bankTransfer bool, dueDays int) time.Time {
	day := deliveries.Day(orderDate)
	if bankTransfer {
		return day.AddDate(0, 0, dueDays)
	}
	return day
}

// PaymentGroupQuery filters the admin listing of payment groups.
type PaymentGroupQuery struct {
	OrderID     string `validate:"omitempty,uuid4"`
	DueBefore   *time.Time
	BillCreated *bool
	BillSent    *bool
	Paid        *bool
	// Void groups belong to cancelled or refunded orders and are left out
	// unless asked for.
	IncludeVoided bool
	Limit         int `validate:"min=0,max=500"`
	Offset        int `validate:"min=0"`
}

// PaymentGroupService tracks billing of order payment groups.
type PaymentGroupService interface {
	ListByOrder(ctx context.Context, orderID string) ([]*PaymentGroup, error)
	ListPending(ctx context.Context, query *PaymentGroupQuery) ([]*PaymentGroup, error)
	MarkBillCreated(ctx context.Context, groupID string) (*PaymentGroup, error)
	MarkBillSent(ctx context.Context, groupID string) (*PaymentGroup, error)
	MarkPaid(ctx context.Context, groupID string) (*PaymentGroup, error)
	// Overdue lists unpaid groups whose due date lies before today.
	Overdue(ctx context.Context) ([]*PaymentGroup, error)
	// DueWithin lists unpaid groups without a bill that fall due in the next days.
	DueWithin(ctx context.Context, days int) ([]*PaymentGroup, error)
}

// PaymentGroupRepository defines the interface for PaymentGroup-related operations
type PaymentGroupRepository interface {
	CreateBatch(ctx context.Context, groups []*PaymentGroup) error
	GetByID(ctx context.Context, groupID string) (*PaymentGroup, error)
	ListByOrder(ctx context.Context, orderID string) ([]*PaymentGroup, error)
	List(ctx context.Context, query *PaymentGroupQuery) ([]*PaymentGroup, error)
	UpdateByID(ctx context.Context, group *PaymentGroup) error
}

// Validate for validating PaymentGroupQuery struct
func (q *PaymentGroupQuery) Validate() error {
	return validators.Struct(q)
}
