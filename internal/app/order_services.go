package app

import (
	"context"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/uow"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/jonboulle/clockwork"
)

// orderService implements the OrderService interface
type orderService struct {
	orderRepo  orders.OrderRepository
	transactor uow.Transactor
	lifecycle  *orderLifecycle
	logger     logger.Logger
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(
	transactor uow.Transactor,
	orderRepo orders.OrderRepository,
	productRepo catalog.ProductRepository,
	deliveryRepo deliveries.DeliveryRepository,
	groupRepo billing.PaymentGroupRepository,
	clock clockwork.Clock,
	logger logger.Logger,
) (orders.OrderService, error) {
	return &orderService{
		orderRepo:  orderRepo,
		transactor: transactor,
		lifecycle: &orderLifecycle{
			orders:     orderRepo,
			products:   productRepo,
			deliveries: deliveryRepo,
			groups:     groupRepo,
			clock:      clock,
			logger:     logger,
		},
		logger: logger,
	}, nil
}

func (s *orderService) GetByID(ctx context.Context, orderID string) (*orders.Order, error) {
	return s.orderRepo.GetByID(ctx, orderID)
}

func (s *orderService) GetByNumber(ctx context.Context, number string) (*orders.Order, error) {
	return s.orderRepo.GetByNumber(ctx, number)
}

func (s *orderService) List(ctx context.Context, query *orders.OrderQuery) ([]*orders.Order, error) {
	if query == nil {
		query = &orders.OrderQuery{Limit: 50}
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid order query: %w", err)
	}
	return s.orderRepo.List(ctx, query)
}

// UpdateStatus moves the order along the status machine. Paid settles the
// earliest open payment group; cancelled releases deliveries and stock.
func (s *orderService) UpdateStatus(ctx context.Context, orderID string, status orders.Status) (*orders.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", orders.ErrInvalidTransition, status)
	}
	var order *orders.Order
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		if order, err = s.orderRepo.GetByID(ctx, orderID); err != nil {
			return err
		}
		_, err = s.lifecycle.apply(ctx, order, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Cancel(ctx context.Context, orderID string) (*orders.Order, error) {
	return s.UpdateStatus(ctx, orderID, orders.StatusCancelled)
}
