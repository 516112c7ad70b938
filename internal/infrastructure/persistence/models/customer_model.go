package models

import (
	"time"

	"github.com/drinkbox/storefront/internal/domain/customers"
)

// AddressModel is embedded into tables holding postal addresses
type AddressModel struct {
	PostalCode string `gorm:"type:varchar(10)"`
	City       string `gorm:"type:varchar(100)"`
	Street     string `gorm:"type:varchar(255)"`
	Note       string `gorm:"type:varchar(500)"`
}

func (a AddressModel) toDomain() customers.Address {
	return customers.Address{PostalCode: a.PostalCode, City: a.City, Street: a.Street, Note: a.Note}
}

func addressFromDomain(a customers.Address) AddressModel {
	return AddressModel{PostalCode: a.PostalCode, City: a.City, Street: a.Street, Note: a.Note}
}

// CustomerModel is the GORM database model for customers
type CustomerModel struct {
	ID              string       `gorm:"primaryKey;type:uuid"`
	Email           string       `gorm:"not null;type:varchar(255);uniqueIndex"`
	FullName        string       `gorm:"not null;type:varchar(255)"`
	Phone           string       `gorm:"type:varchar(32)"`
	ShippingAddress AddressModel `gorm:"embedded;embeddedPrefix:shipping_"`
	BillingAddress  AddressModel `gorm:"embedded;embeddedPrefix:billing_"`
	DateTimeCreated time.Time    `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts GORM model to domain entity
func (m *CustomerModel) ToDomain() *customers.Customer {
	return &customers.Customer{
		ID:              m.ID,
		Email:           m.Email,
		FullName:        m.FullName,
		Phone:           m.Phone,
		ShippingAddress: m.ShippingAddress.toDomain(),
		BillingAddress:  m.BillingAddress.toDomain(),
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *CustomerModel) FromDomain(c *customers.Customer) {
	m.ID = c.ID
	m.Email = c.Email
	m.FullName = c.FullName
	m.Phone = c.Phone
	m.ShippingAddress = addressFromDomain(c.ShippingAddress)
	m.BillingAddress = addressFromDomain(c.BillingAddress)
	m.DateTimeCreated = c.DateTimeCreated
}
