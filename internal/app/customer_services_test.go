//go:build unit
// +build unit

package app

import (
	"context"
	"fmt"
	"testing"

	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/pkg/config"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_FindOrCreateMatchesEmail(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	first, err := ts.CustomerService.FindOrCreate(ctx, &customers.Customer{
		Email:           "Bela.Nagy@example.com",
		FullName:        "Nagy Béla",
		ShippingAddress: customers.Address{PostalCode: "4025", City: "Debrecen", Street: "Piac utca 12"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bela.nagy@example.com", first.Email)
	assert.Equal(t, first.ShippingAddress, first.BillingAddress)

	second, err := ts.CustomerService.FindOrCreate(ctx, &customers.Customer{
		Email:           "bela.nagy@EXAMPLE.com ",
		FullName:        "Nagy Béla Péter",
		Phone:           "+36201234567",
		ShippingAddress: customers.Address{PostalCode: "4026", City: "Debrecen", Street: "Kossuth utca 3"},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	stored, err := ts.CustomerService.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nagy Béla Péter", stored.FullName)
	assert.Equal(t, "Kossuth utca 3", stored.ShippingAddress.Street)

	list, err := ts.CustomerService.List(ctx, &customers.CustomerQuery{Email: "bela", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCustomerService_GetByIDNotFound(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)

	_, err := ts.CustomerService.GetByID(context.Background(), "6f1c2b8e-5d1a-4c3e-9a77-0c2f4b9d8e11")
	assert.ErrorIs(t, err, customers.ErrNotFound)
}

// capturingLogger keeps every message it is given.
type capturingLogger struct {
	messages *[]string
}

func (l capturingLogger) add(args ...interface{}) {
	*l.messages = append(*l.messages, fmt.Sprint(args...))
}

func (l capturingLogger) Debug(args ...interface{})           { l.add(args...) }
func (l capturingLogger) Info(args ...interface{})            { l.add(args...) }
func (l capturingLogger) Warn(args ...interface{})            { l.add(args...) }
func (l capturingLogger) Error(args ...interface{})           { l.add(args...) }
func (l capturingLogger) Fatal(args ...interface{})           { l.add(args...) }
func (l capturingLogger) Panic(args ...interface{})           { l.add(args...) }
func (l capturingLogger) With(_ ...interface{}) logger.Logger { return l }

func TestCustomerService_CreateLeavesLoggingToRepository(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	messages := []string{}
	svc, err := NewCustomerService(ts.DBContext.CustomerRepo, ts.Clock, capturingLogger{messages: &messages})
	require.NoError(t, err)

	_, err = svc.FindOrCreate(context.Background(), &customers.Customer{
		Email:           "zsofi@example.com",
		FullName:        "Szabó Zsófia",
		ShippingAddress: customers.Address{PostalCode: "6720", City: "Szeged", Street: "Kárász utca 5"},
	})
	require.NoError(t, err)

	for _, m := range messages {
		assert.NotContains(t, m, "Created customer")
	}
}
