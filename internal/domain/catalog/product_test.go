//go:build unit
// +build unit

package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct() *Product {
	return &Product{
		ID:              uuid.NewString(),
		Name:            "Furmint 2022",
		Slug:            "furmint-2022",
		Category:        CategoryWine,
		UnitPrice:       decimal.NewFromInt(3290),
		Currency:        DefaultCurrency,
		Stock:           10,
		Active:          true,
		DateTimeCreated: time.Now().UTC(),
	}
}

func TestProduct_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(p *Product)
		wantErr bool
	}{
		{"valid", func(p *Product) {}, false},
		{"bad slug", func(p *Product) { p.Slug = "Furmint 2022" }, true},
		{"unknown category", func(p *Product) { p.Category = "cider" }, true},
		{"zero price", func(p *Product) { p.UnitPrice = decimal.Zero }, true},
		{"negative stock", func(p *Product) { p.Stock = -1 }, true},
		{"bad image url", func(p *Product) { p.ImageURL = "not a url" }, true},
		{"missing id", func(p *Product) { p.ID = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProduct()
			tt.modify(p)
			err := p.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestProduct_Orderable(t *testing.T) {
	p := testProduct()
	require.NoError(t, p.Orderable(10))
	assert.ErrorIs(t, p.Orderable(11), ErrInsufficientStock)

	p.Active = false
	assert.ErrorIs(t, p.Orderable(1), ErrProductInactive)
}

func TestProductQuery_Validate(t *testing.T) {
	require.NoError(t, NewProductQuery().Validate())
	require.Error(t, (&ProductQuery{Limit: 201}).Validate())
	require.Error(t, (&ProductQuery{SortBy: "stock"}).Validate())
	require.Error(t, (&ProductQuery{SortOrder: "up"}).Validate())
	require.NoError(t, (&ProductQuery{Category: CategoryCoffee, SortBy: "unit_price", SortOrder: "desc"}).Validate())
}
