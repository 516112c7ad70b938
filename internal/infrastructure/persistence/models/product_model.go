package models

import (
	"time"

	"github.com/drinkbox/storefront/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

// ProductModel is the GORM database model for products
type ProductModel struct {
	ID                   string          `gorm:"primaryKey;type:uuid"`
	Name                 string          `gorm:"not null;type:varchar(255);index"`
	Slug                 string          `gorm:"not null;type:varchar(255);uniqueIndex"`
	Description          string          `gorm:"type:text"`
	Category             string          `gorm:"not null;type:varchar(50);index"`
	UnitPrice            decimal.Decimal `gorm:"not null;type:numeric(12,2)"`
	Currency             string          `gorm:"not null;type:char(3)"`
	Stock                int             `gorm:"not null;default:0"`
	Active               bool            `gorm:"not null;default:true;index"`
	SubscriptionEligible bool            `gorm:"not null;default:false"`
	ImageURL             string          `gorm:"type:varchar(1024)"`
	DateTimeCreated      time.Time       `gorm:"not null"`
	DateTimeUpdated      time.Time
}

// TableName specifies the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts GORM model to domain entity
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		ID:                   m.ID,
		Name:                 m.Name,
		Slug:                 m.Slug,
		Description:          m.Description,
		Category:             m.Category,
		UnitPrice:            m.UnitPrice,
		Currency:             m.Currency,
		Stock:                m.Stock,
		Active:               m.Active,
		SubscriptionEligible: m.SubscriptionEligible,
		ImageURL:             m.ImageURL,
		DateTimeCreated:      m.DateTimeCreated,
		DateTimeUpdated:      m.DateTimeUpdated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.ID = p.ID
	m.Name = p.Name
	m.Slug = p.Slug
	m.Description = p.Description
	m.Category = p.Category
	m.UnitPrice = p.UnitPrice
	m.Currency = p.Currency
	m.Stock = p.Stock
	m.Active = p.Active
	m.SubscriptionEligible = p.SubscriptionEligible
	m.ImageURL = p.ImageURL
	m.DateTimeCreated = p.DateTimeCreated
	m.DateTimeUpdated = p.DateTimeUpdated
}
