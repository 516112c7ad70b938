//go:build unit
// +build unit

package app

import (
	"context"
	"testing"

	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence"
	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_CancelReleasesStockAndDeliveries(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	product := persistence.CreateTestProduct(t, "tokaji-aszu", 8990, 5)
	ts.DBContext.MustSeed(t, product)
	cart := ts.CreateCartWith(t, product, 3)

	result, err := ts.CheckoutService.Checkout(ctx, TestCheckoutRequest(cart.ID, orders.KindOneTime, orders.PaymentCashOnDelivery))
	require.NoError(t, err)

	stored, err := ts.DBContext.ProductRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 2, stored.Stock)

	cancelled, err := ts.OrderService.Cancel(ctx, result.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusCancelled, cancelled.Status)

	stored, err = ts.DBContext.ProductRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)

	list, err := ts.DeliveryService.ListByOrder(ctx, result.Order.ID)
	require.NoError(t, err)
	for _, d := range list {
		assert.Equal(t, deliveries.StatusCancelled, d.Status)
	}

	// Cancelling twice is a no-op and must not restore stock again
	_, err = ts.OrderService.Cancel(ctx, result.Order.ID)
	require.NoError(t, err)
	stored, err = ts.DBContext.ProductRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, stored.Stock)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	product := persistence.CreateTestProduct(t, "villanyi-cuvee", 5490, 10)
	ts.DBContext.MustSeed(t, product)
	cart := ts.CreateCartWith(t, product, 1)

	result, err := ts.CheckoutService.Checkout(ctx, TestCheckoutRequest(cart.ID, orders.KindOneTime, orders.PaymentCashOnDelivery))
	require.NoError(t, err)
	orderID := result.Order.ID

	_, err = ts.OrderService.UpdateStatus(ctx, orderID, orders.StatusPaid)
	assert.ErrorIs(t, err, orders.ErrInvalidTransition)

	_, err = ts.OrderService.UpdateStatus(ctx, orderID, orders.Status("lost"))
	assert.ErrorIs(t, err, orders.ErrInvalidTransition)

	shipped, err := ts.OrderService.UpdateStatus(ctx, orderID, orders.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusShipped, shipped.Status)

	completed, err := ts.OrderService.UpdateStatus(ctx, orderID, orders.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusCompleted, completed.Status)

	_, err = ts.OrderService.Cancel(ctx, orderID)
	assert.ErrorIs(t, err, orders.ErrInvalidTransition)

	byNumber, err := ts.OrderService.GetByNumber(ctx, result.Order.Number)
	require.NoError(t, err)
	assert.Equal(t, orders.StatusCompleted, byNumber.Status)
}

func TestOrderService_List(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	product := persistence.CreateTestProduct(t, "soproni-ipa", 690, 100)
	ts.DBContext.MustSeed(t, product)

	first, err := ts.CheckoutService.Checkout(ctx, TestCheckoutRequest(ts.CreateCartWith(t, product, 6).ID, orders.KindOneTime, orders.PaymentCashOnDelivery))
	require.NoError(t, err)
	_, err = ts.CheckoutService.Checkout(ctx, TestCheckoutRequest(ts.CreateCartWith(t, product, 12).ID, orders.KindOneTime, orders.PaymentBankTransfer))
	require.NoError(t, err)

	_, err = ts.OrderService.Cancel(ctx, first.Order.ID)
	require.NoError(t, err)

	all, err := ts.OrderService.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cancelled, err := ts.OrderService.List(ctx, &orders.OrderQuery{Status: orders.StatusCancelled, Limit: 10})
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.Order.ID, cancelled[0].ID)

	_, err = ts.OrderService.List(ctx, &orders.OrderQuery{Limit: -1})
	require.Error(t, err)
}
