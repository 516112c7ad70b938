package models

import (
	"time"

	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"

	"github.com/shopspring/decimal"
)

// OrderModel is the GORM database model for orders
type OrderModel struct {
	ID                   string           `gorm:"primaryKey;type:uuid"`
	Number               string           `gorm:"not null;type:varchar(32);uniqueIndex"`
	CustomerID           string           `gorm:"not null;type:uuid;index"`
	Kind                 string           `gorm:"not null;type:varchar(16);index"`
	Recurrence           string           `gorm:"type:varchar(16)"`
	DeliveryCount        int              `gorm:"not null"`
	Status               string           `gorm:"not null;type:varchar(32);index"`
	PaymentMethod        string           `gorm:"not null;type:varchar(32)"`
	CouponCode           string           `gorm:"type:varchar(32)"`
	Subtotal             decimal.Decimal  `gorm:"not null;type:numeric(12,2)"`
	CouponDiscount       decimal.Decimal  `gorm:"not null;type:numeric(12,2)"`
	SubscriptionDiscount decimal.Decimal  `gorm:"not null;type:numeric(12,2)"`
	ShippingFee          decimal.Decimal  `gorm:"not null;type:numeric(12,2)"`
	Total                decimal.Decimal  `gorm:"not null;type:numeric(12,2)"`
	Currency             string           `gorm:"not null;type:char(3)"`
	ShippingAddress      AddressModel     `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentProviderRef   string           `gorm:"type:varchar(255);index"`
	Items                []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	DateTimeCreated      time.Time        `gorm:"not null;index"`
	DateTimeUpdated      time.Time
}

// OrderItemModel is the GORM database model for order lines
type OrderItemModel struct {
	OrderID     string          `gorm:"primaryKey;type:uuid"`
	Position    int             `gorm:"primaryKey"`
	ProductID   string          `gorm:"not null;type:uuid;index"`
	ProductName string          `gorm:"not null;type:varchar(255)"`
	UnitPrice   decimal.Decimal `gorm:"not null;type:numeric(12,2)"`
	Quantity    int             `gorm:"not null"`
	LineTotal   decimal.Decimal `gorm:"not null;type:numeric(12,2)"`
}

// TableName specifies the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// TableName specifies the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts GORM model to domain entity
func (m *OrderModel) ToDomain() *orders.Order {
	o := &orders.Order{
		ID:                   m.ID,
		Number:               m.Number,
		CustomerID:           m.CustomerID,
		Kind:                 orders.Kind(m.Kind),
		Recurrence:           deliveries.Recurrence(m.Recurrence),
		DeliveryCount:        m.DeliveryCount,
		Status:               orders.Status(m.Status),
		PaymentMethod:        orders.PaymentMethod(m.PaymentMethod),
		CouponCode:           m.CouponCode,
		Subtotal:             m.Subtotal,
		CouponDiscount:       m.CouponDiscount,
		SubscriptionDiscount: m.SubscriptionDiscount,
		ShippingFee:          m.ShippingFee,
		Total:                m.Total,
		Currency:             m.Currency,
		ShippingAddress:      m.ShippingAddress.toDomain(),
		PaymentProviderRef:   m.PaymentProviderRef,
		DateTimeCreated:      m.DateTimeCreated,
		DateTimeUpdated:      m.DateTimeUpdated,
	}
	for _, it := range m.Items {
		o.Items = append(o.Items, orders.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal,
		})
	}
	return o
}

// FromDomain converts domain entity to GORM model
func (m *OrderModel) FromDomain(o *orders.Order) {
	m.ID = o.ID
	m.Number = o.Number
	m.CustomerID = o.CustomerID
	m.Kind = string(o.Kind)
	m.Recurrence = string(o.Recurrence)
	m.DeliveryCount = o.DeliveryCount
	m.Status = string(o.Status)
	m.PaymentMethod = string(o.PaymentMethod)
	m.CouponCode = o.CouponCode
	m.Subtotal = o.Subtotal
	m.CouponDiscount = o.CouponDiscount
	m.SubscriptionDiscount = o.SubscriptionDiscount
	m.ShippingFee = o.ShippingFee
	m.Total = o.Total
	m.Currency = o.Currency
	m.ShippingAddress = addressFromDomain(o.ShippingAddress)
	m.PaymentProviderRef = o.PaymentProviderRef
	m.DateTimeCreated = o.DateTimeCreated
	m.DateTimeUpdated = o.DateTimeUpdated
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, it := range o.Items {
		m.Items[i] = OrderItemModel{
			OrderID:     o.ID,
			Position:    i,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			LineTotal:   it.LineTotal,
		}
	}
}
