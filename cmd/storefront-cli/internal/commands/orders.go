package commands

import (
	"context"

	"github.com/drinkbox/storefront/internal/domain/orders"
)

// orderLookup memoizes order lookups while a report is rendered.
type orderLookup struct {
	repo   orders.OrderRepository
	orders map[string]*orders.Order
}

func newOrderLookup(repo orders.OrderRepository) *orderLookup {
	return &orderLookup{repo: repo, orders: make(map[string]*orders.Order)}
}

func (l *orderLookup) get(ctx context.Context, orderID string) (*orders.Order, error) {
	if o, ok := l.orders[orderID]; ok {
		return o, nil
	}
	o, err := l.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	l.orders[orderID] = o
	return o, nil
}
