package models

import (
	"time"

	"github.com/drinkbox/storefront/internal/domain/settings"

	"github.com/shopspring/decimal"
)

// ShopSettingsID is the primary key of the single settings row.
const ShopSettingsID = 1

// ShopSettingsModel is the GORM database model for the shop settings
type ShopSettingsModel struct {
	ID                          uint            `gorm:"primaryKey"`
	ShopOpen                    bool            `gorm:"not null"`
	Currency                    string          `gorm:"not null;type:char(3)"`
	ShippingFee                 decimal.Decimal `gorm:"not null;type:numeric(12,2)"`
	FreeShippingThreshold       decimal.Decimal `gorm:"not null;type:numeric(12,2)"`
	DeliveryWeekdays            string          `gorm:"not null;type:varchar(20)"`
	MinLeadDays                 int             `gorm:"not null"`
	MaxSubscriptionDeliveries   int             `gorm:"not null"`
	BankTransferDueDays         int             `gorm:"not null"`
	SubscriptionDiscountPercent decimal.Decimal `gorm:"not null;type:numeric(5,2)"`
	DateTimeUpdated             time.Time
}

// TableName specifies the table name for GORM
func (ShopSettingsModel) TableName() string {
	return "shop_settings"
}

// ToDomain converts GORM model to domain entity
func (m *ShopSettingsModel) ToDomain() *settings.ShopSettings {
	return &settings.ShopSettings{
		ShopOpen:                    m.ShopOpen,
		Currency:                    m.Currency,
		ShippingFee:                 m.ShippingFee,
		FreeShippingThreshold:       m.FreeShippingThreshold,
		DeliveryWeekdays:            splitWeekdays(m.DeliveryWeekdays),
		MinLeadDays:                 m.MinLeadDays,
		MaxSubscriptionDeliveries:   m.MaxSubscriptionDeliveries,
		BankTransferDueDays:         m.BankTransferDueDays,
		SubscriptionDiscountPercent: m.SubscriptionDiscountPercent,
		DateTimeUpdated:             m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ShopSettingsModel) FromDomain(s *settings.ShopSettings) {
	m.ID = ShopSettingsID
	m.ShopOpen = s.ShopOpen
	m.Currency = s.Currency
	m.ShippingFee = s.ShippingFee
	m.FreeShippingThreshold = s.FreeShippingThreshold
	m.DeliveryWeekdays = joinWeekdays(s.SortedWeekdays())
	m.MinLeadDays = s.MinLeadDays
	m.MaxSubscriptionDeliveries = s.MaxSubscriptionDeliveries
	m.BankTransferDueDays = s.BankTransferDueDays
	m.SubscriptionDiscountPercent = s.SubscriptionDiscountPercent
	m.DateTimeUpdated = s.DateTimeUpdated
}
