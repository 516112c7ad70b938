// Package carts defines the anonymous shopping cart and its priced view.
package carts

import (
	"context"
	"errors"
	"time"

	"github.com/drinkbox/storefront/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

// MaxItemQuantity caps the quantity of a single cart line.
const MaxItemQuantity = 99

var (
	// ErrNotFound is returned when no cart matches the ID.
	ErrNotFound = errors.New("cart not found")
	// ErrItemNotFound is returned when the product is not in the cart.
	ErrItemNotFound = errors.New("cart item not found")
	// ErrInvalidQuantity is returned for quantities outside 1..MaxItemQuantity.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// CartItem is one product line of a cart.
type CartItem struct {
	ProductID string
	Quantity  int
}

// Cart entity
type Cart struct {
	ID              string
	Items           []CartItem
	CouponCode      string
	DateTimeCreated time.Time
	DateTimeUpdated time.Time
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Quantity returns the quantity of productID in the cart, 0 when absent.
func (c *Cart) Quantity(productID string) int {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it.Quantity
		}
	}
	return 0
}

// SetQuantity sets the quantity of productID, adding the line when absent and
// removing it for qty 0.
func (c *Cart) SetQuantity(productID string, qty int) error {
	if qty < 0 || qty > MaxItemQuantity {
		return ErrInvalidQuantity
	}
	for i, it := range c.Items {
		if it.ProductID != productID {
			continue
		}
		if qty == 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = qty
		}
		return nil
	}
	if qty > 0 {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty})
	}
	return nil
}

// Remove drops productID from the cart.
func (c *Cart) Remove(productID string) error {
	for i, it := range c.Items {
		if it.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// PricedLine is a cart item joined with the current product data.
type PricedLine struct {
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	LineTotal   decimal.Decimal
	Available   bool
}

// CartQuote is the priced view of a cart.
type CartQuote struct {
	CartID     string
	Lines      []PricedLine
	CouponCode string
	// CouponError explains why the cart's coupon was left out of the quote.
	CouponError    string
	IsSubscription bool
	pricing.Quote
}

// CartService manages carts for the storefront.
type CartService interface {
	Create(ctx context.Context) (*Cart, error)
	Get(ctx context.Context, cartID string) (*Cart, error)
	// AddItem merges qty into the existing line of productID.
	AddItem(ctx context.Context, cartID, productID string, qty int) (*Cart, error)
	// UpdateItem sets the quantity; 0 removes the line.
	UpdateItem(ctx context.Context, cartID, productID string, qty int) (*Cart, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*Cart, error)
	ApplyCoupon(ctx context.Context, cartID, code string) (*Cart, error)
	RemoveCoupon(ctx context.Context, cartID string) (*Cart, error)
	Quote(ctx context.Context, cartID string, isSubscription bool) (*CartQuote, error)
}

// CartRepository defines the interface for Cart-related operations
type CartRepository interface {
	Create(ctx context.Context, cart *Cart) error
	GetByID(ctx context.Context, cartID string) (*Cart, error)
	// Save replaces the cart row and its items.
	Save(ctx context.Context, cart *Cart) error
	DeleteByID(ctx context.Context, cartID string) error
}
