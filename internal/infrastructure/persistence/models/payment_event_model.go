package models

import (
	"time"

	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/payments"
)

// PaymentEventModel is the GORM database model for processed provider notifications
type PaymentEventModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	OrderID         string    `gorm:"not null;type:uuid;index"`
	Provider        string    `gorm:"not null;type:varchar(16)"`
	ProviderRef     string    `gorm:"not null;type:varchar(255);index"`
	ProviderStatus  string    `gorm:"not null;type:varchar(64)"`
	MappedStatus    string    `gorm:"not null;type:varchar(32)"`
	Applied         bool      `gorm:"not null"`
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PaymentEventModel) TableName() string {
	return "payment_events"
}

// ToDomain converts GORM model to domain entity
func (m *PaymentEventModel) ToDomain() *payments.PaymentEvent {
	return &payments.PaymentEvent{
		ID:              m.ID,
		OrderID:         m.OrderID,
		Provider:        payments.Provider(m.Provider),
		ProviderRef:     m.ProviderRef,
		ProviderStatus:  m.ProviderStatus,
		MappedStatus:    orders.Status(m.MappedStatus),
		Applied:         m.Applied,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PaymentEventModel) FromDomain(e *payments.PaymentEvent) {
	m.ID = e.ID
	m.OrderID = e.OrderID
	m.Provider = string(e.Provider)
	m.ProviderRef = e.ProviderRef
	m.ProviderStatus = e.ProviderStatus
	m.MappedStatus = string(e.MappedStatus)
	m.Applied = e.Applied
	m.DateTimeCreated = e.DateTimeCreated
}
