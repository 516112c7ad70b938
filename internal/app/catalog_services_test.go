//go:build unit
// +build unit

package app

import (
	"context"
	"testing"

	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence"
	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCatalogService_HidesInactive(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	active := persistence.CreateTestProduct(t, "etyeki-chardonnay", 3900, 4)
	inactive := persistence.CreateTestProduct(t, "matrai-muskotaly", 2900, 4)
	inactive.Active = false
	ts.DBContext.MustSeed(t, active, inactive)

	list, err := ts.ProductCatalogService.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	_, err = ts.ProductCatalogService.GetBySlug(ctx, "matrai-muskotaly")
	assert.ErrorIs(t, err, catalog.ErrNotFound)

	p, err := ts.ProductAdminService.GetByID(ctx, inactive.ID)
	require.NoError(t, err)
	assert.False(t, p.Active)
}

func TestProductAdminService_Import(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	existing := persistence.CreateTestProduct(t, "kunsagi-roze", 1900, 1)
	ts.DBContext.MustSeed(t, existing)

	created, updated, err := ts.ProductAdminService.Import(ctx, []*catalog.Product{
		{
			Name:      "Kunsági rozé",
			Slug:      "Kunsagi-Roze",
			Category:  catalog.CategoryWine,
			UnitPrice: decimal.NewFromInt(2100),
			Stock:     24,
			Active:    true,
		},
		{
			Name:                 "Szentkirályi ásványvíz 6x1.5l",
			Slug:                 "szentkiralyi-6x15",
			Category:             catalog.CategoryWater,
			UnitPrice:            decimal.NewFromInt(1290),
			Stock:                100,
			Active:               true,
			SubscriptionEligible: true,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, updated)

	p, err := ts.ProductAdminService.GetByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "2100", p.UnitPrice.String())
	assert.Equal(t, 24, p.Stock)

	water, err := ts.ProductCatalogService.GetBySlug(ctx, "szentkiralyi-6x15")
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultCurrency, water.Currency)
}

func TestProductAdminService_ImportRollsBackOnInvalidProduct(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	_, _, err := ts.ProductAdminService.Import(ctx, []*catalog.Product{
		{Name: "Valid", Slug: "valid", Category: catalog.CategoryBeer, UnitPrice: decimal.NewFromInt(690), Active: true},
		{Name: "Free beer", Slug: "free-beer", Category: catalog.CategoryBeer, UnitPrice: decimal.Zero},
	})
	require.Error(t, err)

	list, err := ts.ProductAdminService.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}
