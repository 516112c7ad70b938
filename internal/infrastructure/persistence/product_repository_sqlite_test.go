//go:build unit
// +build unit

package persistence

import (
	"context"
	"testing"

	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence/models"
	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductSqliteRepository_CreateAndGet(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	p := CreateTestProduct(t, "egri-bikaver", 3490, 10)

	require.NoError(t, tc.ProductRepo.Create(context.Background(), p))

	var model models.ProductModel
	require.NoError(t, tc.DB.First(&model, "id = ?", p.ID).Error)
	assert.Equal(t, p.Slug, model.Slug)

	got, err := tc.ProductRepo.GetBySlug(context.Background(), "egri-bikaver")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, decimal.NewFromInt(3490).Equal(got.UnitPrice))
}

func TestProductSqliteRepository_Create_Invalid(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	err := tc.ProductRepo.Create(context.Background(), &catalog.Product{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestProductSqliteRepository_DuplicateSlug(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	tc.MustSeed(t, CreateTestProduct(t, "tokaji", 4990, 1))

	err := tc.ProductRepo.Create(context.Background(), CreateTestProduct(t, "tokaji", 5990, 1))
	assert.ErrorIs(t, err, catalog.ErrDuplicateSlug)
}

func TestProductSqliteRepository_GetByID_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	_, err := tc.ProductRepo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestProductSqliteRepository_AdjustStock(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	p := CreateTestProduct(t, "palinka", 8990, 3)
	tc.MustSeed(t, p)

	require.NoError(t, tc.ProductRepo.AdjustStock(context.Background(), p.ID, -2))
	got, err := tc.ProductRepo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stock)

	err = tc.ProductRepo.AdjustStock(context.Background(), p.ID, -2)
	assert.ErrorIs(t, err, catalog.ErrInsufficientStock)

	err = tc.ProductRepo.AdjustStock(context.Background(), "missing", 1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestProductSqliteRepository_ListFilters(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	active := CreateTestProduct(t, "soda-water", 290, 50)
	active.Category = catalog.CategoryWater
	inactive := CreateTestProduct(t, "old-vintage", 12990, 1)
	inactive.Active = false
	tc.MustSeed(t, active, inactive)

	q := catalog.NewProductQuery()
	q.ActiveOnly = true
	list, err := tc.ProductRepo.List(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID, list[0].ID)

	q = catalog.NewProductQuery()
	q.Category = catalog.CategoryWine
	list, err = tc.ProductRepo.List(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inactive.ID, list[0].ID)

	q.SortBy = "drop table"
	_, err = tc.ProductRepo.List(context.Background(), q)
	assert.Error(t, err)
}

func TestProductSqliteRepository_UpdateAndDelete(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	p := CreateTestProduct(t, "rose", 2990, 5)
	tc.MustSeed(t, p)

	p.UnitPrice = decimal.NewFromInt(3190)
	p.Active = false
	require.NoError(t, tc.ProductRepo.UpdateByID(context.Background(), p))

	got, err := tc.ProductRepo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.True(t, decimal.NewFromInt(3190).Equal(got.UnitPrice))

	require.NoError(t, tc.ProductRepo.DeleteByID(context.Background(), p.ID))
	assert.ErrorIs(t, tc.ProductRepo.DeleteByID(context.Background(), p.ID), catalog.ErrNotFound)
}
