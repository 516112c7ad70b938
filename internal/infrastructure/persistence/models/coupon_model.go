package models

import (
	"time"

	"github.com/drinkbox/storefront/internal/domain/coupons"

	"github.com/shopspring/decimal"
)

// CouponModel is the GORM database model for coupons
type CouponModel struct {
	ID               string          `gorm:"primaryKey;type:uuid"`
	Code             string          `gorm:"not null;type:varchar(32);uniqueIndex"`
	Kind             string          `gorm:"not null;type:varchar(16)"`
	Value            decimal.Decimal `gorm:"not null;type:numeric(12,2)"`
	MinOrderAmount   decimal.Decimal `gorm:"not null;type:numeric(12,2)"`
	ValidFrom        time.Time       `gorm:"not null"`
	ValidUntil       *time.Time
	UsageLimit       int       `gorm:"not null;default:0"`
	UsageCount       int       `gorm:"not null;default:0"`
	Active           bool      `gorm:"not null;default:true"`
	SubscriptionOnly bool      `gorm:"not null;default:false"`
	DateTimeCreated  time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (CouponModel) TableName() string {
	return "coupons"
}

// ToDomain converts GORM model to domain entity
func (m *CouponModel) ToDomain() *coupons.Coupon {
	return &coupons.Coupon{
		ID:               m.ID,
		Code:             m.Code,
		Kind:             m.Kind,
		Value:            m.Value,
		MinOrderAmount:   m.MinOrderAmount,
		ValidFrom:        m.ValidFrom,
		ValidUntil:       m.ValidUntil,
		UsageLimit:       m.UsageLimit,
		UsageCount:       m.UsageCount,
		Active:           m.Active,
		SubscriptionOnly: m.SubscriptionOnly,
		DateTimeCreated:  m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CouponModel) FromDomain(c *coupons.Coupon) {
	m.ID = c.ID
	m.Code = c.Code
	m.Kind = c.Kind
	m.Value = c.Value
	m.MinOrderAmount = c.MinOrderAmount
	m.ValidFrom = c.ValidFrom
	m.ValidUntil = c.ValidUntil
	m.UsageLimit = c.UsageLimit
	m.UsageCount = c.UsageCount
	m.Active = c.Active
	m.SubscriptionOnly = c.SubscriptionOnly
	m.DateTimeCreated = c.DateTimeCreated
}
