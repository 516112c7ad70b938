// Package customers defines the guest customer records created at checkout.
package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/drinkbox/storefront/internal/pkg/validators"
)

// ErrNotFound is returned when no customer matches the lookup.
var ErrNotFound = errors.New("customer not found")

// Address is a Hungarian style postal address.
type Address struct {
	PostalCode string `validate:"required,min=3,max=10"`
	City       string `validate:"required,max=100"`
	Street     string `validate:"required,max=255"`
	Note       string `validate:"max=500"`
}

// IsZero reports whether no field of the address is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Customer entity
type Customer struct {
	ID              string `validate:"required,uuid4"`
	Email           string `validate:"required,email,max=255"`
	FullName        string `validate:"required,min=2,max=255"`
	Phone           string `validate:"omitempty,e164"`
	ShippingAddress Address
	BillingAddress  Address
	DateTimeCreated time.Time
}

// Normalize lower-cases the email and defaults the billing address to the shipping address.
func (c *Customer) Normalize() {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.FullName = strings.TrimSpace(c.FullName)
	if c.BillingAddress.IsZero() {
		c.BillingAddress = c.ShippingAddress
	}
}

// Validate for validating Customer struct
func (c *Customer) Validate() error {
	if err := validators.Struct(c); err != nil {
		return fmt.Errorf("customer: %w", err)
	}
	return nil
}

// CustomerQuery pages the admin customer listing.
type CustomerQuery struct {
	Email  string
	Limit  int `validate:"min=0,max=200"`
	Offset int `validate:"min=0"`
}

// Validate for validating CustomerQuery struct
func (q *CustomerQuery) Validate() error {
	return validators.Struct(q)
}

// CustomerService manages customers.
type CustomerService interface {
	// FindOrCreate returns the customer with the same email, refreshing its
	// contact details, or creates a new one.
	FindOrCreate(ctx context.Context, customer *Customer) (*Customer, error)
	GetByID(ctx context.Context, customerID string) (*Customer, error)
	List(ctx context.Context, query *CustomerQuery) ([]*Customer, error)
}

// CustomerRepository defines the interface for Customer-related operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, customerID string) (*Customer, error)
	GetByEmail(ctx context.Context, email string) (*Customer, error)
	List(ctx context.Context, query *CustomerQuery) ([]*Customer, error)
	UpdateByID(ctx context.Context, customer *Customer) error
}
