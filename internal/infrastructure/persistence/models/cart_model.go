package models

import (
	"time"

	"github.com/drinkbox/storefront/internal/domain/carts"
)

// CartModel is the GORM database model for carts
type CartModel struct {
	ID              string          `gorm:"primaryKey;type:uuid"`
	CouponCode      string          `gorm:"type:varchar(32)"`
	Items           []CartItemModel `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	DateTimeCreated time.Time       `gorm:"not null"`
	DateTimeUpdated time.Time
}

// CartItemModel is the GORM database model for cart lines
type CartItemModel struct {
	CartID    string `gorm:"primaryKey;type:uuid"`
	ProductID string `gorm:"primaryKey;type:uuid"`
	Position  int    `gorm:"not null"`
	Quantity  int    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// TableName specifies the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts GORM model to domain entity
func (m *CartModel) ToDomain() *carts.Cart {
	c := &carts.Cart{
		ID:              m.ID,
		CouponCode:      m.CouponCode,
		DateTimeCreated: m.DateTimeCreated,
		DateTimeUpdated: m.DateTimeUpdated,
	}
	for _, it := range m.Items {
		c.Items = append(c.Items, carts.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return c
}

// FromDomain converts domain entity to GORM model
func (m *CartModel) FromDomain(c *carts.Cart) {
	m.ID = c.ID
	m.CouponCode = c.CouponCode
	m.DateTimeCreated = c.DateTimeCreated
	m.DateTimeUpdated = c.DateTimeUpdated
	m.Items = make([]CartItemModel, len(c.Items))
	for i, it := range c.Items {
		m.Items[i] = CartItemModel{CartID: c.ID, ProductID: it.ProductID, Position: i, Quantity: it.Quantity}
	}
}
