//go:build unit
// +build unit

package billing

import (
	"testing"
	"time"

	"github.com/drinkbox/storefront/internal/domain/deliveries"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func scheduled(dates ...time.Time) []*deliveries.Delivery {
	out := make([]*deliveries.Delivery, len(dates))
	for i, d := range dates {
		out[i] = &deliveries.Delivery{ID: d.Format("0102"), Sequence: i + 1, ScheduledDate: d, Status: deliveries.StatusScheduled}
	}
	return out
}

func TestPlanSubscription_GroupsByMonth(t *testing.T) {
	orderDate := time.Date(2024, time.March, 1, 14, 30, 0, 0, time.UTC)
	ds := scheduled(
		date(2024, time.March, 5), date(2024, time.March, 19),
		date(2024, time.April, 2), date(2024, time.April, 16), date(2024, time.April, 30),
		date(2024, time.May, 14),
	)

	groups := PlanSubscription("order-1", orderDate, decimal.NewFromInt(20490), "HUF", ds, true, 8)
	require.Len(t, groups, 3)

	assert.Equal(t, 1, groups[0].Sequence)
	assert.Equal(t, []string{"0305", "0319"}, groups[0].DeliveryIDs)
	assert.True(t, decimal.NewFromInt(40980).Equal(groups[0].AmountDue))
	assert.Equal(t, date(2024, time.March, 9), groups[0].DueDate)

	assert.Equal(t, 2, groups[1].Sequence)
	assert.True(t, decimal.NewFromInt(61470).Equal(groups[1].AmountDue))
	assert.Equal(t, date(2024, time.March, 25), groups[1].DueDate)

	assert.Equal(t, 3, groups[2].Sequence)
	assert.Equal(t, date(2024, time.May, 6), groups[2].DueDate)

	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.AmountDue)
		assert.Equal(t, "order-1", g.OrderID)
		assert.Equal(t, "HUF", g.Currency)
	}
	assert.True(t, decimal.NewFromInt(20490*6).Equal(total))
}

func TestPlanSubscription_OnlinePaymentDueAtOrder(t *testing.T) {
	orderDate := date(2024, time.March, 28)
	ds := scheduled(date(2024, time.April, 2), date(2024, time.May, 2))

	groups := PlanSubscription("o", orderDate, decimal.NewFromInt(1000), "HUF", ds, false, 8)
	require.Len(t, groups, 2)
	assert.Equal(t, orderDate, groups[0].DueDate)
	assert.Equal(t, date(2024, time.April, 24), groups[1].DueDate)
}

func TestPlanSubscription_DueNeverBeforeOrderDate(t *testing.T) {
	orderDate := date(2024, time.March, 30)
	ds := scheduled(date(2024, time.March, 31), date(2024, time.April, 2))

	groups := PlanSubscription("o", orderDate, decimal.NewFromInt(1000), "HUF", ds, false, 8)
	require.Len(t, groups, 2)
	assert.Equal(t, orderDate, groups[1].DueDate)
}

func TestPlanOneTime(t *testing.T) {
	orderDate := date(2024, time.March, 1)
	d := &deliveries.Delivery{ID: "d1"}

	g := PlanOneTime("o", orderDate, decimal.NewFromInt(5000), "HUF", d, true, 8)
	assert.Equal(t, 1, g.Sequence)
	assert.Equal(t, []string{"d1"}, g.DeliveryIDs)
	assert.Equal(t, date(2024, time.March, 9), g.DueDate)

	g = PlanOneTime("o", orderDate, decimal.NewFromInt(5000), "HUF", d, false, 8)
	assert.Equal(t, orderDate, g.DueDate)
}

func TestPaymentGroup_Bills(t *testing.T) {
	now := date(2024, time.March, 1)
	g := &PaymentGroup{Sequence: 1, DueDate: date(2024, time.February, 20)}

	assert.ErrorIs(t, g.MarkBillSent(now), ErrBillNotCreated)

	g.MarkBillCreated(now)
	require.NoError(t, g.MarkBillSent(now))
	assert.True(t, g.BillSent)
	assert.True(t, g.Overdue(now))

	g.MarkPaid(now)
	assert.False(t, g.Overdue(now))
	assert.Equal(t, now, *g.PaidAt)
}

func TestPaymentGroup_Void(t *testing.T) {
	now := date(2024, 3, 20)

	open := &PaymentGroup{Sequence: 2, DueDate: date(2024, 3, 10)}
	require.True(t, open.Overdue(now))
	assert.True(t, open.Void(now))
	assert.False(t, open.Outstanding())
	assert.False(t, open.Overdue(now))
	assert.False(t, open.Void(now), "voiding twice changes nothing")
	assert.ErrorIs(t, open.MarkBillSent(now), ErrVoided)

	paid := &PaymentGroup{Sequence: 1, DueDate: date(2024, 3, 1)}
	paid.MarkPaid(now)
	assert.False(t, paid.Void(now))
	assert.False(t, paid.Voided)
}
