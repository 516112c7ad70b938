package models

import (
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"

	"github.com/shopspring/decimal"
)

// PaymentGroupModel is the GORM database model for order payment groups
type PaymentGroupModel struct {
	ID              string          `gorm:"primaryKey;type:uuid"`
	OrderID         string          `gorm:"not null;type:uuid;uniqueIndex:idx_group_order_seq"`
	Sequence        int             `gorm:"not null;uniqueIndex:idx_group_order_seq"`
	AmountDue       decimal.Decimal `gorm:"not null;type:numeric(12,2)"`
	Currency        string          `gorm:"not null;type:char(3)"`
	DueDate         time.Time       `gorm:"not null;index"`
	DeliveryIDs     string          `gorm:"type:text"`
	BillCreated     bool            `gorm:"not null;default:false"`
	BillCreatedAt   *time.Time
	BillSent        bool `gorm:"not null;default:false"`
	BillSentAt      *time.Time
	Paid            bool `gorm:"not null;default:false;index"`
	PaidAt          *time.Time
	Voided          bool `gorm:"not null;default:false;index"`
	VoidedAt        *time.Time
	DateTimeCreated time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (PaymentGroupModel) TableName() string {
	return "order_payment_groups"
}

// ToDomain converts GORM model to domain entity
func (m *PaymentGroupModel) ToDomain() *billing.PaymentGroup {
	return &billing.PaymentGroup{
		ID:              m.ID,
		OrderID:         m.OrderID,
		Sequence:        m.Sequence,
		AmountDue:       m.AmountDue,
		Currency:        m.Currency,
		DueDate:         m.DueDate.UTC(),
		DeliveryIDs:     splitStrings(m.DeliveryIDs),
		BillCreated:     m.BillCreated,
		BillCreatedAt:   m.BillCreatedAt,
		BillSent:        m.BillSent,
		BillSentAt:      m.BillSentAt,
		Paid:            m.Paid,
		PaidAt:          m.PaidAt,
		Voided:          m.Voided,
		VoidedAt:        m.VoidedAt,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *PaymentGroupModel) FromDomain(g *billing.PaymentGroup) {
	m.ID = g.ID
	m.OrderID = g.OrderID
	m.Sequence = g.Sequence
	m.AmountDue = g.AmountDue
	m.Currency = g.Currency
	m.DueDate = g.DueDate
	m.DeliveryIDs = joinStrings(g.DeliveryIDs)
	m.BillCreated = g.BillCreated
	m.BillCreatedAt = g.BillCreatedAt
	m.BillSent = g.BillSent
	m.BillSentAt = g.BillSentAt
	m.Paid = g.Paid
	m.PaidAt = g.PaidAt
	m.Voided = g.Voided
	m.VoidedAt = g.VoidedAt
	m.DateTimeCreated = g.DateTimeCreated
}
