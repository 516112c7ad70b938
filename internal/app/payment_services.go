package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/domain/uow"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// paymentReconciler applies provider notifications to orders and keeps the
// audit trail of every notification it saw.
type paymentReconciler struct {
	transactor uow.Transactor
	orderRepo  orders.OrderRepository
	eventRepo  payments.PaymentEventRepository
	lifecycle  *orderLifecycle
	clock      clockwork.Clock
	logger     logger.Logger
}

// PaymentRepositories groups the repositories the notification handlers write to.
type PaymentRepositories struct {
	Orders     orders.OrderRepository
	Products   catalog.ProductRepository
	Deliveries deliveries.DeliveryRepository
	Groups     billing.PaymentGroupRepository
	Events     payments.PaymentEventRepository
}

func newPaymentReconciler(transactor uow.Transactor, repos PaymentRepositories, clock clockwork.Clock, logger logger.Logger) *paymentReconciler {
	return &paymentReconciler{
		transactor: transactor,
		orderRepo:  repos.Orders,
		eventRepo:  repos.Events,
		lifecycle: &orderLifecycle{
			orders:     repos.Orders,
			products:   repos.Products,
			deliveries: repos.Deliveries,
			groups:     repos.Groups,
			clock:      clock,
			logger:     logger,
		},
		clock:  clock,
		logger: logger,
	}
}

// reconcile records the notification and, when apply is set, moves the order
// to mapped. Transitions the status machine forbids, such as a late failure
// after the order was paid, are recorded as not applied.
func (r *paymentReconciler) reconcile(ctx context.Context, orderID string, provider payments.Provider,
	ref, providerStatus string, mapped orders.Status, apply bool,
) (*payments.PaymentEvent, error) {
	event := &payments.PaymentEvent{
		ID:              uuid.NewString(),
		OrderID:         orderID,
		Provider:        provider,
		ProviderRef:     ref,
		ProviderStatus:  providerStatus,
		MappedStatus:    mapped,
		DateTimeCreated: r.clock.Now().UTC(),
	}

	err := r.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if apply {
			order, err := r.orderRepo.GetByID(ctx, orderID)
			if err != nil {
				return err
			}
			applied, err := r.lifecycle.apply(ctx, order, mapped)
			switch {
			case errors.Is(err, orders.ErrInvalidTransition):
				r.logger.Warn("Ignoring ", provider, " status ", providerStatus, " for order ", order.Number, ": ", err)
			case err != nil:
				return err
			}
			event.Applied = applied
		}
		return r.eventRepo.Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}
	return event, nil
}

// barionCallbackService implements the BarionCallbackService interface
type barionCallbackService struct {
	gateway    payments.BarionGateway
	reconciler *paymentReconciler
	logger     logger.Logger
}

// NewBarionCallbackService creates a new instance of BarionCallbackService
func NewBarionCallbackService(
	gateway payments.BarionGateway,
	transactor uow.Transactor,
	repos PaymentRepositories,
	clock clockwork.Clock,
	logger logger.Logger,
) (payments.BarionCallbackService, error) {
	if gateway == nil {
		return nil, fmt.Errorf("%w: barion", payments.ErrProviderDisabled)
	}
	log := logger.With("provider", "barion")
	return &barionCallbackService{
		gateway:    gateway,
		reconciler: newPaymentReconciler(transactor, repos, clock, log),
		logger:     log,
	}, nil
}

// HandleCallback trusts nothing but the payment ID: the state is fetched
// from Barion before the order is touched.
func (s *barionCallbackService) HandleCallback(ctx context.Context, paymentID string) (*payments.PaymentEvent, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, fmt.Errorf("%w: missing payment id", payments.ErrUnknownPayment)
	}

	order, err := s.findOrder(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	current := order.PaymentProviderRef == paymentID
	if !current {
		s.logger.Warn("Barion payment ", paymentID, " is not the current payment of order ", order.Number)
	}

	state, err := s.gateway.GetPaymentState(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	mapped, err := payments.MapBarionStatus(state.Status)
	if err != nil {
		return nil, err
	}

	event, err := s.reconciler.reconcile(ctx, order.ID, payments.ProviderBarion, paymentID, state.Status, mapped, current)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Barion payment ", paymentID, " of order ", order.Number, " is ", state.Status, " applied=", event.Applied)
	return event, nil
}

// findOrder resolves paymentID to its order: the current payment first,
// then any earlier payment recorded in the event trail.
func (s *barionCallbackService) findOrder(ctx context.Context, paymentID string) (*orders.Order, error) {
	order, err := s.reconciler.orderRepo.GetByProviderRef(ctx, paymentID)
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, orders.ErrNotFound) {
		return nil, err
	}

	orderID, err := s.reconciler.eventRepo.FindOrderID(ctx, payments.ProviderBarion, paymentID)
	if err != nil {
		return nil, err
	}
	order, err = s.reconciler.orderRepo.GetByID(ctx, orderID)
	if errors.Is(err, orders.ErrNotFound) {
		return nil, fmt.Errorf("%w: barion payment %s", payments.ErrUnknownPayment, paymentID)
	}
	return order, err
}

// stripeWebhookService implements the StripeWebhookService interface
type stripeWebhookService struct {
	gateway    payments.StripeGateway
	reconciler *paymentReconciler
	logger     logger.Logger
}

// NewStripeWebhookService creates a new instance of StripeWebhookService
func NewStripeWebhookService(
	gateway payments.StripeGateway,
	transactor uow.Transactor,
	repos PaymentRepositories,
	clock clockwork.Clock,
	logger logger.Logger,
) (payments.StripeWebhookService, error) {
	if gateway == nil {
		return nil, fmt.Errorf("%w: stripe", payments.ErrProviderDisabled)
	}
	log := logger.With("provider", "stripe")
	return &stripeWebhookService{
		gateway:    gateway,
		reconciler: newPaymentReconciler(transactor, repos, clock, log),
		logger:     log,
	}, nil
}

// HandleWebhook verifies and applies a Checkout Session event. Events for a
// session that is no longer the order's current payment are only recorded.
func (s *stripeWebhookService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (*payments.PaymentEvent, error) {
	ev, err := s.gateway.ParseWebhook(payload, signatureHeader)
	if err != nil {
		return nil, err
	}
	mapped, handled := payments.MapStripeEvent(ev.Type, ev.PaymentStatus)
	if !handled {
		s.logger.Debug("Ignoring stripe event ", ev.ID, " of type ", ev.Type)
		return nil, nil
	}

	var order *orders.Order
	if ev.OrderID != "" {
		order, err = s.reconciler.orderRepo.GetByID(ctx, ev.OrderID)
	} else {
		order, err = s.reconciler.orderRepo.GetByProviderRef(ctx, ev.SessionID)
	}
	if errors.Is(err, orders.ErrNotFound) {
		return nil, fmt.Errorf("%w: stripe session %s", payments.ErrUnknownPayment, ev.SessionID)
	}
	if err != nil {
		return nil, err
	}

	current := order.PaymentProviderRef == ev.SessionID
	if !current {
		s.logger.Warn("Stripe session ", ev.SessionID, " is not the current payment of order ", order.Number)
	}
	event, err := s.reconciler.reconcile(ctx, order.ID, payments.ProviderStripe, ev.SessionID, ev.Type, mapped, current)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Stripe event ", ev.Type, " for order ", order.Number, " applied=", event.Applied)
	return event, nil
}
