//go:build unit
// +build unit

package models

import (
	"testing"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/settings"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopSettingsModel_Weekdays(t *testing.T) {
	s := settings.Default()
	s.DeliveryWeekdays = []time.Weekday{time.Friday, time.Monday}

	m := &ShopSettingsModel{}
	m.FromDomain(s)

	assert.Equal(t, uint(ShopSettingsID), m.ID)
	assert.Equal(t, "1,5", m.DeliveryWeekdays)
	assert.Equal(t, []time.Weekday{time.Monday, time.Friday}, m.ToDomain().DeliveryWeekdays)
}

func TestOrderModel_FromDomain(t *testing.T) {
	o := &orders.Order{
		ID:            "6f1c1b3e-3c55-4f0e-9b3c-0b1f1f1e2d3c",
		Number:        "SO-20240301-ABCDEF",
		Kind:          orders.KindSubscription,
		Recurrence:    deliveries.RecurrenceMonthly,
		DeliveryCount: 3,
		Status:        orders.StatusAwaitingPayment,
		PaymentMethod: orders.PaymentBarion,
		Total:         decimal.NewFromInt(20490),
		Currency:      "HUF",
		ShippingAddress: customers.Address{
			PostalCode: "1051", City: "Budapest", Street: "Nádor u. 7",
		},
		Items: []orders.OrderItem{
			{ProductID: "p1", ProductName: "Tokaji", UnitPrice: decimal.NewFromInt(4990), Quantity: 2, LineTotal: decimal.NewFromInt(9980)},
			{ProductID: "p2", ProductName: "Mineral water", UnitPrice: decimal.NewFromInt(350), Quantity: 6, LineTotal: decimal.NewFromInt(2100)},
		},
	}

	m := &OrderModel{}
	m.FromDomain(o)

	require.Len(t, m.Items, 2)
	assert.Equal(t, o.ID, m.Items[1].OrderID)
	assert.Equal(t, 1, m.Items[1].Position)
	assert.Equal(t, "Budapest", m.ShippingAddress.City)
	assert.Equal(t, "monthly", m.Recurrence)

	back := m.ToDomain()
	assert.Equal(t, o.Items, back.Items)
	assert.Equal(t, o.ShippingAddress, back.ShippingAddress)
	assert.Equal(t, orders.StatusAwaitingPayment, back.Status)
}

func TestPaymentGroupModel_DeliveryIDs(t *testing.T) {
	g := &billing.PaymentGroup{ID: "g1", DeliveryIDs: []string{"d1", "d2"}}

	m := &PaymentGroupModel{}
	m.FromDomain(g)
	assert.Equal(t, "d1,d2", m.DeliveryIDs)
	assert.Equal(t, []string{"d1", "d2"}, m.ToDomain().DeliveryIDs)

	m.DeliveryIDs = ""
	assert.Nil(t, m.ToDomain().DeliveryIDs)
}
