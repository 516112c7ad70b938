package app

import (
	"context"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/jonboulle/clockwork"
)

// paymentGroupService implements the PaymentGroupService interface
type paymentGroupService struct {
	groupRepo billing.PaymentGroupRepository
	clock     clockwork.Clock
	logger    logger.Logger
}

// NewPaymentGroupService creates a new instance of PaymentGroupService
func NewPaymentGroupService(groupRepo billing.PaymentGroupRepository, clock clockwork.Clock, logger logger.Logger) (billing.PaymentGroupService, error) {
	return &paymentGroupService{
		groupRepo: groupRepo,
		clock:     clock,
		logger:    logger,
	}, nil
}

func (s *paymentGroupService) ListByOrder(ctx context.Context, orderID string) ([]*billing.PaymentGroup, error) {
	return s.groupRepo.ListByOrder(ctx, orderID)
}

// ListPending lists unpaid groups unless the query asks otherwise.
func (s *paymentGroupService) ListPending(ctx context.Context, query *billing.PaymentGroupQuery) ([]*billing.PaymentGroup, error) {
	if query == nil {
		query = &billing.PaymentGroupQuery{Limit: 100}
	}
	if query.Paid == nil {
		unpaid := false
		query.Paid = &unpaid
	}
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payment group query: %w", err)
	}
	return s.groupRepo.List(ctx, query)
}

func (s *paymentGroupService) MarkBillCreated(ctx context.Context, groupID string) (*billing.PaymentGroup, error) {
	return s.update(ctx, groupID, "bill created", func(g *billing.PaymentGroup) error {
		if g.Paid {
			return fmt.Errorf("%w: group %d", billing.ErrAlreadyPaid, g.Sequence)
		}
		if g.Voided {
			return fmt.Errorf("%w: group %d", billing.ErrVoided, g.Sequence)
		}
		g.MarkBillCreated(s.clock.Now().UTC())
		return nil
	})
}

func (s *paymentGroupService) MarkBillSent(ctx context.Context, groupID string) (*billing.PaymentGroup, error) {
	return s.update(ctx, groupID, "bill sent", func(g *billing.PaymentGroup) error {
		return g.MarkBillSent(s.clock.Now().UTC())
	})
}

func (s *paymentGroupService) MarkPaid(ctx context.Context, groupID string) (*billing.PaymentGroup, error) {
	return s.update(ctx, groupID, "paid", func(g *billing.PaymentGroup) error {
		g.MarkPaid(s.clock.Now().UTC())
		return nil
	})
}

func (s *paymentGroupService) Overdue(ctx context.Context) ([]*billing.PaymentGroup, error) {
	today := deliveries.Day(s.clock.Now())
	unpaid := false
	return s.groupRepo.List(ctx, &billing.PaymentGroupQuery{DueBefore: &today, Paid: &unpaid, Limit: 500})
}

// DueWithin returns the groups falling due before the end of the day that
// lies days from today.
func (s *paymentGroupService) DueWithin(ctx context.Context, days int) ([]*billing.PaymentGroup, error) {
	if days < 0 {
		return nil, fmt.Errorf("days must not be negative: %d", days)
	}
	limit := deliveries.Day(s.clock.Now()).AddDate(0, 0, days+1)
	unpaid, noBill := false, false
	return s.groupRepo.List(ctx, &billing.PaymentGroupQuery{
		DueBefore:   &limit,
		Paid:        &unpaid,
		BillCreated: &noBill,
		Limit:       500,
	})
}

func (s *paymentGroupService) update(ctx context.Context, groupID, what string, fn func(*billing.PaymentGroup) error) (*billing.PaymentGroup, error) {
	g, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := fn(g); err != nil {
		return nil, err
	}
	if err := s.groupRepo.UpdateByID(ctx, g); err != nil {
		return nil, err
	}
	s.logger.Info("Payment group ", g.Sequence, " of order ", g.OrderID, " marked ", what)
	return g, nil
}
