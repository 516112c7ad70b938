package models

import (
	"time"

	"github.com/drinkbox/storefront/internal/domain/deliveries"
)

// DeliveryModel is the GORM database model for scheduled deliveries
type DeliveryModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	OrderID         string    `gorm:"not null;type:uuid;uniqueIndex:idx_delivery_order_seq"`
	Sequence        int       `gorm:"not null;uniqueIndex:idx_delivery_order_seq"`
	ScheduledDate   time.Time `gorm:"not null;index"`
	Status          string    `gorm:"not null;type:varchar(16);index"`
	DeliveredAt     *time.Time
	DateTimeCreated time.Time `gorm:"not null"`
	DateTimeUpdated time.Time
}

// TableName specifies the table name for GORM
func (DeliveryModel) TableName() string {
	return "deliveries"
}

// ToDomain converts GORM model to domain entity
func (m *DeliveryModel) ToDomain() *deliveries.Delivery {
	return &deliveries.Delivery{
		ID:              m.ID,
		OrderID:         m.OrderID,
		Sequence:        m.Sequence,
		ScheduledDate:   m.ScheduledDate.UTC(),
		Status:          deliveries.Status(m.Status),
		DeliveredAt:     m.DeliveredAt,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *DeliveryModel) FromDomain(d *deliveries.Delivery) {
	m.ID = d.ID
	m.OrderID = d.OrderID
	m.Sequence = d.Sequence
	m.ScheduledDate = d.ScheduledDate
	m.Status = string(d.Status)
	m.DeliveredAt = d.DeliveredAt
	m.DateTimeCreated = d.DateTimeCreated
	m.DateTimeUpdated = d.DateTimeUpdated
}
