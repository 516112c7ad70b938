package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/drinkbox/storefront/internal/pkg/validators"

	"github.com/shopspring/decimal"
)

// Product categories
const (
	CategoryWine      = "wine"
	CategoryBeer      = "beer"
	CategorySpirits   = "spirits"
	CategorySoftDrink = "soft-drink"
	CategoryWater     = "water"
	CategoryCoffee    = "coffee"
	CategoryBundle    = "bundle"
)

// DefaultCurrency is used when a product is created without a currency.
const DefaultCurrency = "HUF"

var (
	// ErrNotFound is returned when no product matches the lookup.
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when a stock change would go below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductInactive is returned when an inactive product is ordered.
	ErrProductInactive = errors.New("product is not available")
	// ErrDuplicateSlug is returned when another product already uses the slug.
	ErrDuplicateSlug = errors.New("product slug already exists")
)

// Product entity
type Product struct {
	ID                   string          `validate:"required,uuid4"`
	Name                 string          `validate:"required,min=1,max=255"`
	Slug                 string          `validate:"required,max=255,slug"`
	Description          string          `validate:"max=4000"`
	Category             string          `validate:"required,oneof=wine beer spirits soft-drink water coffee bundle"`
	UnitPrice            decimal.Decimal `validate:"gt=0"`
	Currency             string          `validate:"required,currency"`
	Stock                int             `validate:"min=0"`
	Active               bool
	SubscriptionEligible bool
	ImageURL             string    `validate:"omitempty,url,max=1024"`
	DateTimeCreated      time.Time `validate:"required"`
	DateTimeUpdated      time.Time
}

// Validate for validating Product struct
func (p *Product) Validate() error {
	if err := validators.Struct(p); err != nil {
		return fmt.Errorf("product %s: %w", p.Slug, err)
	}
	return nil
}

// Orderable reports whether qty units of the product can be ordered now.
func (p *Product) Orderable(qty int) error {
	if !p.Active {
		return fmt.Errorf("%w: %s", ErrProductInactive, p.Name)
	}
	if p.Stock < qty {
		return fmt.Errorf("%w: %s has %d, requested %d", ErrInsufficientStock, p.Name, p.Stock, qty)
	}
	return nil
}
