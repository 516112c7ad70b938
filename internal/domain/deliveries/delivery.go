package deliveries

import (
	"context"
	"errors"
	"time"

	"github.com/drinkbox/storefront/internal/pkg/validators"
)

// Status of a single delivery.
type Status string

// Delivery statuses
const (
	StatusScheduled Status = "scheduled"
	StatusDelivered Status = "delivered"
	StatusSkipped   Status = "skipped"
	StatusCancelled Status = "cancelled"
)

var (
	// ErrNotFound is returned when no delivery matches the lookup.
	ErrNotFound = errors.New("delivery not found")
	// ErrNotScheduled is returned when changing a delivery that is no longer scheduled.
	ErrNotScheduled = errors.New("delivery is not scheduled")
	// ErrInvalidDate is returned when a reschedule date breaks the schedule order or weekdays.
	ErrInvalidDate = errors.New("invalid delivery date")
)

// Delivery entity
type Delivery struct {
	ID              string
	OrderID         string
	Sequence        int
	ScheduledDate   time.Time
	Status          Status
	DeliveredAt     *time.Time
	DateTimeCreated time.Time
	DateTimeUpdated time.Time
}

// DeliveryQuery filters the admin listing of upcoming deliveries.
type DeliveryQuery struct {
	OrderID string `validate:"omitempty,uuid4"`
	From    *time.Time
	To      *time.Time
	Status  Status `validate:"omitempty,oneof=scheduled delivered skipped cancelled"`
	Limit   int    `validate:"min=0,max=500"`
	Offset  int    `validate:"min=0"`
}

// DeliveryService manages scheduled deliveries.
type DeliveryService interface {
	ListByOrder(ctx context.Context, orderID string) ([]*Delivery, error)
	ListDue(ctx context.Context, query *DeliveryQuery) ([]*Delivery, error)
	MarkDelivered(ctx context.Context, deliveryID string) (*Delivery, error)
	// Skip marks the delivery skipped and appends a replacement after the
	// last delivery of the order.
	Skip(ctx context.Context, deliveryID string) (*Delivery, error)
	// Reschedule moves a delivery to date; it must fall on a delivery weekday
	// strictly between its neighbours.
	Reschedule(ctx context.Context, deliveryID string, date time.Time) (*Delivery, error)
}

// DeliveryRepository defines the interface for Delivery-related operations
type DeliveryRepository interface {
	CreateBatch(ctx context.Context, deliveries []*Delivery) error
	GetByID(ctx context.Context, deliveryID string) (*Delivery, error)
	ListByOrder(ctx context.Context, orderID string) ([]*Delivery, error)
	List(ctx context.Context, query *DeliveryQuery) ([]*Delivery, error)
	UpdateByID(ctx context.Context, delivery *Delivery) error
	// CancelScheduled cancels the still scheduled deliveries of an order and
	// reports how many were cancelled.
	CancelScheduled(ctx context.Context, orderID string) (int, error)
}

// Validate for validating DeliveryQuery struct
func (q *DeliveryQuery) Validate() error {
	return validators.Struct(q)
}
