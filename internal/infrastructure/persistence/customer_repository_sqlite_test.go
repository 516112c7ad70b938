//go:build unit
// +build unit

package persistence

import (
	"context"
	"testing"

	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerSqliteRepository_CreateAndGet(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	customer := CreateTestCustomer(t, "anna@example.com")
	customer.ShippingAddress.Note = "ring twice"
	require.NoError(t, tc.CustomerRepo.Create(ctx, customer))

	byID, err := tc.CustomerRepo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", byID.Email)
	assert.Equal(t, "ring twice", byID.ShippingAddress.Note)
	assert.Equal(t, "Budapest", byID.BillingAddress.City)

	byEmail, err := tc.CustomerRepo.GetByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, byEmail.ID)
}

func TestCustomerSqliteRepository_NotFound(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)

	_, err := tc.CustomerRepo.GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, customers.ErrNotFound)
}

func TestCustomerSqliteRepository_DuplicateEmail(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	require.NoError(t, tc.CustomerRepo.Create(ctx, CreateTestCustomer(t, "anna@example.com")))
	assert.Error(t, tc.CustomerRepo.Create(ctx, CreateTestCustomer(t, "anna@example.com")))
}

func TestCustomerSqliteRepository_ListFiltersByEmail(t *testing.T) {
	tc := SetupTestDB(t, config.SqliteDbType)
	ctx := context.Background()

	for _, email := range []string{"anna@example.com", "bela@example.com", "anna.kiss@example.org"} {
		require.NoError(t, tc.CustomerRepo.Create(ctx, CreateTestCustomer(t, email)))
	}

	list, err := tc.CustomerRepo.List(ctx, &customers.CustomerQuery{Email: "anna"})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	page, err := tc.CustomerRepo.List(ctx, &customers.CustomerQuery{Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
