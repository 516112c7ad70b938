package app

import (
	"context"
	"fmt"
	"time"

	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/domain/uow"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// deliveryService implements the DeliveryService interface
type deliveryService struct {
	transactor      uow.Transactor
	deliveryRepo    deliveries.DeliveryRepository
	orderRepo       orders.OrderRepository
	settingsService settings.ShopSettingsService
	clock           clockwork.Clock
	logger          logger.Logger
}

// NewDeliveryService creates a new instance of DeliveryService
func NewDeliveryService(
	transactor uow.Transactor,
	deliveryRepo deliveries.DeliveryRepository,
	orderRepo orders.OrderRepository,
	settingsService settings.ShopSettingsService,
	clock clockwork.Clock,
	logger logger.Logger,
) (deliveries.DeliveryService, error) {
	return &deliveryService{
		transactor:      transactor,
		deliveryRepo:    deliveryRepo,
		orderRepo:       orderRepo,
		settingsService: settingsService,
		clock:           clock,
		logger:          logger,
	}, nil
}

func (s *deliveryService) ListByOrder(ctx context.Context, orderID string) ([]*deliveries.Delivery, error) {
	return s.deliveryRepo.ListByOrder(ctx, orderID)
}

// ListDue defaults to scheduled deliveries from today on.
func (s *deliveryService) ListDue(ctx context.Context, query *deliveries.DeliveryQuery) ([]*deliveries.Delivery, error) {
	if query == nil {
		query = &deliveries.DeliveryQuery{Limit: 100}
	}
	if query.Status == "" {
		query.Status = deliveries.StatusScheduled
	}
	if query.From == nil {
		today := deliveries.Day(s.clock.Now())
		query.From = &today
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid delivery query: %w", err)
	}
	return s.deliveryRepo.List(ctx, query)
}

func (s *deliveryService) MarkDelivered(ctx context.Context, deliveryID string) (*deliveries.Delivery, error) {
	d, err := s.scheduled(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now().UTC()
	d.Status = deliveries.StatusDelivered
	d.DeliveredAt = &now
	d.DateTimeUpdated = now
	if err := s.deliveryRepo.UpdateByID(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Info("Delivery ", d.Sequence, " of order ", d.OrderID, " delivered")
	return d, nil
}

// Skip is only offered for subscriptions. The replacement keeps the
// subscription length and is covered by the payment of the skipped delivery.
func (s *deliveryService) Skip(ctx context.Context, deliveryID string) (*deliveries.Delivery, error) {
	shop, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}

	var replacement *deliveries.Delivery
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		d, err := s.scheduled(ctx, deliveryID)
		if err != nil {
			return err
		}
		order, err := s.orderRepo.GetByID(ctx, d.OrderID)
		if err != nil {
			return err
		}
		if !order.IsSubscription() {
			return fmt.Errorf("%w: only subscription deliveries can be skipped", deliveries.ErrNotScheduled)
		}

		all, err := s.deliveryRepo.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		last := d
		for _, other := range all {
			if other.Sequence > last.Sequence {
				last = other
			}
		}
		date, err := deliveries.NextAllowed(order.Recurrence.Next(last.ScheduledDate), shop.DeliveryWeekdays)
		if err != nil {
			return err
		}

		now := s.clock.Now().UTC()
		d.Status = deliveries.StatusSkipped
		d.DateTimeUpdated = now
		if err := s.deliveryRepo.UpdateByID(ctx, d); err != nil {
			return err
		}
		replacement = &deliveries.Delivery{
			ID:              uuid.NewString(),
			OrderID:         order.ID,
			Sequence:        last.Sequence + 1,
			ScheduledDate:   date,
			Status:          deliveries.StatusScheduled,
			DateTimeCreated: now,
			DateTimeUpdated: now,
		}
		return s.deliveryRepo.CreateBatch(ctx, []*deliveries.Delivery{replacement})
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Skipped delivery ", deliveryID, ", replacement scheduled for ", replacement.ScheduledDate.Format(time.DateOnly))
	return replacement, nil
}

// Reschedule accepts a delivery weekday no earlier than the lead time that
// keeps the order's deliveries strictly increasing.
func (s *deliveryService) Reschedule(ctx context.Context, deliveryID string, date time.Time) (*deliveries.Delivery, error) {
	shop, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}
	day := deliveries.Day(date)
	earliest := deliveries.Day(s.clock.Now()).AddDate(0, 0, shop.MinLeadDays)
	if day.Before(earliest) {
		return nil, fmt.Errorf("%w: %s is before %s", deliveries.ErrInvalidDate, day.Format(time.DateOnly), earliest.Format(time.DateOnly))
	}
	if !deliveries.IsAllowed(day, shop.DeliveryWeekdays) {
		return nil, fmt.Errorf("%w: no deliveries on %s", deliveries.ErrInvalidDate, day.Weekday())
	}

	var moved *deliveries.Delivery
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		d, err := s.scheduled(ctx, deliveryID)
		if err != nil {
			return err
		}
		all, err := s.deliveryRepo.ListByOrder(ctx, d.OrderID)
		if err != nil {
			return err
		}
		for _, other := range all {
			if other.ID == d.ID || other.Status == deliveries.StatusCancelled {
				continue
			}
			if other.Sequence < d.Sequence && !day.After(other.ScheduledDate) {
				return fmt.Errorf("%w: must be after delivery %d on %s", deliveries.ErrInvalidDate,
					other.Sequence, other.ScheduledDate.Format(time.DateOnly))
			}
			if other.Sequence > d.Sequence && !day.Before(other.ScheduledDate) {
				return fmt.Errorf("%w: must be before delivery %d on %s", deliveries.ErrInvalidDate,
					other.Sequence, other.ScheduledDate.Format(time.DateOnly))
			}
		}
		d.ScheduledDate = day
		d.DateTimeUpdated = s.clock.Now().UTC()
		moved = d
		return s.deliveryRepo.UpdateByID(ctx, d)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Rescheduled delivery ", deliveryID, " to ", day.Format(time.DateOnly))
	return moved, nil
}

func (s *deliveryService) scheduled(ctx context.Context, deliveryID string) (*deliveries.Delivery, error) {
	d, err := s.deliveryRepo.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, err
	}
	if d.Status != deliveries.StatusScheduled {
		return nil, fmt.Errorf("%w: delivery %d is %s", deliveries.ErrNotScheduled, d.Sequence, d.Status)
	}
	return d, nil
}
