package catalog

import (
	"github.com/drinkbox/storefront/internal/pkg/validators"
)

// ProductQuery filters, sorts and pages product listings.
type ProductQuery struct {
	Name             string
	Category         string `validate:"omitempty,oneof=wine beer spirits soft-drink water coffee bundle"`
	ActiveOnly       bool
	SubscriptionOnly bool
	Limit            int    `validate:"min=0,max=200"`
	Offset           int    `validate:"min=0"`
	SortBy           string `validate:"omitempty,oneof=name unit_price date_time_created"`
	SortOrder        string `validate:"omitempty,oneof=asc desc"`
}

// NewProductQuery returns a query with the default page size.
func NewProductQuery() *ProductQuery {
	return &ProductQuery{Limit: 50}
}

// Validate for validating ProductQuery struct
func (q *ProductQuery) Validate() error {
	return validators.Struct(q)
}
