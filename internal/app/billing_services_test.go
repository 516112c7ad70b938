//go:build unit
// +build unit

package app

import (
	"context"
	"testing"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence"
	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentGroupService_BillingCycle(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	product := persistence.CreateTestProduct(t, "dreher-classic", 450, 200)
	ts.DBContext.MustSeed(t, product)
	cart := ts.CreateCartWith(t, product, 24)

	req := TestCheckoutRequest(cart.ID, orders.KindSubscription, orders.PaymentBankTransfer)
	req.Recurrence = deliveries.RecurrenceMonthly
	req.DeliveryCount = 2
	result, err := ts.CheckoutService.Checkout(ctx, req)
	require.NoError(t, err)
	require.Len(t, result.PaymentGroups, 2)
	first, second := result.PaymentGroups[0], result.PaymentGroups[1]

	// First group due 12 March, second 1 April.
	due, err := ts.PaymentGroupService.DueWithin(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, due)

	due, err = ts.PaymentGroupService.DueWithin(ctx, 8)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, first.ID, due[0].ID)

	_, err = ts.PaymentGroupService.MarkBillSent(ctx, first.ID)
	assert.ErrorIs(t, err, billing.ErrBillNotCreated)

	_, err = ts.PaymentGroupService.MarkBillCreated(ctx, first.ID)
	require.NoError(t, err)
	sent, err := ts.PaymentGroupService.MarkBillSent(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, sent.BillSent)

	ts.Clock.Advance(10 * 24 * time.Hour)
	overdue, err := ts.PaymentGroupService.Overdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, first.ID, overdue[0].ID)

	_, err = ts.PaymentGroupService.MarkPaid(ctx, first.ID)
	require.NoError(t, err)
	overdue, err = ts.PaymentGroupService.Overdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	pending, err := ts.PaymentGroupService.ListPending(ctx, &billing.PaymentGroupQuery{OrderID: result.Order.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)
}

func TestPaymentGroupService_CancelledOrderLeavesBilling(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	product := persistence.CreateTestProduct(t, "egri-bikaver", 3290, 100)
	ts.DBContext.MustSeed(t, product)
	cart := ts.CreateCartWith(t, product, 2)

	req := TestCheckoutRequest(cart.ID, orders.KindSubscription, orders.PaymentBankTransfer)
	req.Recurrence = deliveries.RecurrenceMonthly
	req.DeliveryCount = 6
	result, err := ts.CheckoutService.Checkout(ctx, req)
	require.NoError(t, err)
	require.Len(t, result.PaymentGroups, 6)

	due, err := ts.PaymentGroupService.DueWithin(ctx, 365)
	require.NoError(t, err)
	require.Len(t, due, 6)

	_, err = ts.OrderService.Cancel(ctx, result.Order.ID)
	require.NoError(t, err)

	due, err = ts.PaymentGroupService.DueWithin(ctx, 365)
	require.NoError(t, err)
	assert.Empty(t, due)

	pending, err := ts.PaymentGroupService.ListPending(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, pending)

	ts.Clock.Advance(400 * 24 * time.Hour)
	overdue, err := ts.PaymentGroupService.Overdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)

	// The order still shows its void installments
	groups, err := ts.PaymentGroupService.ListByOrder(ctx, result.Order.ID)
	require.NoError(t, err)
	require.Len(t, groups, 6)
	for _, g := range groups {
		assert.True(t, g.Voided)
		assert.NotNil(t, g.VoidedAt)
	}

	_, err = ts.PaymentGroupService.MarkBillCreated(ctx, groups[0].ID)
	assert.ErrorIs(t, err, billing.ErrVoided)
}

func TestPaymentGroupService_RefundedOrderKeepsPaidGroups(t *testing.T) {
	ts := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	product := persistence.CreateTestProduct(t, "szekszardi-kadarka", 2990, 20)
	ts.DBContext.MustSeed(t, product)
	cart := ts.CreateCartWith(t, product, 1)

	result, err := ts.CheckoutService.Checkout(ctx, TestCheckoutRequest(cart.ID, orders.KindOneTime, orders.PaymentCashOnDelivery))
	require.NoError(t, err)
	orderID := result.Order.ID

	for _, status := range []orders.Status{orders.StatusShipped, orders.StatusCompleted, orders.StatusRefunded} {
		_, err = ts.OrderService.UpdateStatus(ctx, orderID, status)
		require.NoError(t, err)
	}

	groups, err := ts.PaymentGroupService.ListByOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.True(t, groups[0].Voided)

	overdue, err := ts.PaymentGroupService.Overdue(ctx)
	require.NoError(t, err)
	assert.Empty(t, overdue)
}
