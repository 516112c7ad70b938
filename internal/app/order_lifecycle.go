package app

import (
	"context"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/jonboulle/clockwork"
)

// orderLifecycle applies status changes together with their side effects on
// payment groups, deliveries and stock. Callers run it inside a transaction.
type orderLifecycle struct {
	orders     orders.OrderRepository
	products   catalog.ProductRepository
	deliveries deliveries.DeliveryRepository
	groups     billing.PaymentGroupRepository
	clock      clockwork.Clock
	logger     logger.Logger
}

// apply moves order to status and reports whether anything changed. A
// repeated status is a no-op.
func (l *orderLifecycle) apply(ctx context.Context, order *orders.Order, status orders.Status) (bool, error) {
	if order.Status == status {
		return false, nil
	}
	now := l.clock.Now().UTC()
	if err := order.TransitionTo(status, now); err != nil {
		return false, err
	}

	switch status {
	case orders.StatusPaid:
		if err := l.markEarliestGroupPaid(ctx, order); err != nil {
			return false, err
		}
	case orders.StatusCancelled:
		if err := l.releaseOrder(ctx, order); err != nil {
			return false, err
		}
	case orders.StatusRefunded:
		if err := l.voidOutstandingGroups(ctx, order); err != nil {
			return false, err
		}
	}

	if err := l.orders.UpdateByID(ctx, order); err != nil {
		return false, err
	}
	l.logger.Info("Order ", order.Number, " is now ", order.Status)
	return true, nil
}

func (l *orderLifecycle) markEarliestGroupPaid(ctx context.Context, order *orders.Order) error {
	groups, err := l.groups.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	group := earliestUnpaid(groups)
	if group == nil {
		return nil
	}
	group.MarkPaid(l.clock.Now().UTC())
	return l.groups.UpdateByID(ctx, group)
}

// voidOutstandingGroups takes the unpaid installments of order out of billing.
func (l *orderLifecycle) voidOutstandingGroups(ctx context.Context, order *orders.Order) error {
	groups, err := l.groups.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	now := l.clock.Now().UTC()
	voided := 0
	for _, g := range groups {
		if !g.Void(now) {
			continue
		}
		if err := l.groups.UpdateByID(ctx, g); err != nil {
			return err
		}
		voided++
	}
	if voided > 0 {
		l.logger.Info("Voided ", voided, " payment groups of order ", order.Number)
	}
	return nil
}

// releaseOrder cancels the remaining deliveries and unpaid installments and
// returns the reserved stock unless a delivery already went out.
func (l *orderLifecycle) releaseOrder(ctx context.Context, order *orders.Order) error {
	if err := l.voidOutstandingGroups(ctx, order); err != nil {
		return err
	}

	list, err := l.deliveries.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	delivered := false
	for _, d := range list {
		if d.Status == deliveries.StatusDelivered {
			delivered = true
		}
	}

	if _, err := l.deliveries.CancelScheduled(ctx, order.ID); err != nil {
		return err
	}
	if delivered {
		return nil
	}
	for _, it := range order.Items {
		if err := l.products.AdjustStock(ctx, it.ProductID, it.Quantity); err != nil {
			return fmt.Errorf("failed to restore stock of %s: %w", it.ProductName, err)
		}
	}
	return nil
}

func earliestUnpaid(groups []*billing.PaymentGroup) *billing.PaymentGroup {
	var found *billing.PaymentGroup
	for _, g := range groups {
		if !g.Outstanding() {
			continue
		}
		if found == nil || g.DueDate.Before(found.DueDate) ||
			(g.DueDate.Equal(found.DueDate) && g.Sequence < found.Sequence) {
			found = g
		}
	}
	return found
}
