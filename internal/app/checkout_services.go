package app

import (
	"context"
	"fmt"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/carts"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/domain/pricing"
	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/domain/uow"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

// checkoutService implements the CheckoutService interface
type checkoutService struct {
	transactor      uow.Transactor
	cartRepo        carts.CartRepository
	productRepo     catalog.ProductRepository
	couponRepo      coupons.CouponRepository
	orderRepo       orders.OrderRepository
	deliveryRepo    deliveries.DeliveryRepository
	groupRepo       billing.PaymentGroupRepository
	eventRepo       payments.PaymentEventRepository
	customerService customers.CustomerService
	settingsService settings.ShopSettingsService
	gateways        map[orders.PaymentMethod]payments.Gateway
	clock           clockwork.Clock
	logger          logger.Logger
}

// NewCheckoutService creates a new instance of CheckoutService. Online
// payment methods without a gateway in gateways are rejected at checkout.
func NewCheckoutService(
	transactor uow.Transactor,
	cartRepo carts.CartRepository,
	productRepo catalog.ProductRepository,
	couponRepo coupons.CouponRepository,
	orderRepo orders.OrderRepository,
	deliveryRepo deliveries.DeliveryRepository,
	groupRepo billing.PaymentGroupRepository,
	eventRepo payments.PaymentEventRepository,
	customerService customers.CustomerService,
	settingsService settings.ShopSettingsService,
	gateways []payments.Gateway,
	clock clockwork.Clock,
	logger logger.Logger,
) (orders.CheckoutService, error) {
	byMethod := make(map[orders.PaymentMethod]payments.Gateway, len(gateways))
	for _, gw := range gateways {
		if gw == nil {
			continue
		}
		byMethod[orders.PaymentMethod(gw.Provider())] = gw
	}
	return &checkoutService{
		transactor:      transactor,
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		couponRepo:      couponRepo,
		orderRepo:       orderRepo,
		deliveryRepo:    deliveryRepo,
		groupRepo:       groupRepo,
		eventRepo:       eventRepo,
		customerService: customerService,
		settingsService: settingsService,
		gateways:        byMethod,
		clock:           clock,
		logger:          logger,
	}, nil
}

// Checkout turns the cart into an order with its deliveries and payment
// groups in one transaction, then starts the online payment if the method
// needs one. When the provider refuses, the order is kept in payment_failed
// and ErrPaymentStartFailed is returned.
func (s *checkoutService) Checkout(ctx context.Context, req *orders.CheckoutRequest) (*orders.CheckoutResult, error) {
	shop, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}
	if !shop.ShopOpen {
		return nil, orders.ErrShopClosed
	}
	if err := s.checkRequest(req, shop); err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	result := &orders.CheckoutResult{}

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.cartRepo.GetByID(ctx, req.CartID)
		if err != nil {
			return err
		}
		if cart.IsEmpty() {
			return orders.ErrEmptyCart
		}

		items, lines, err := s.snapshotItems(ctx, cart, req.Kind, shop.Currency)
		if err != nil {
			return err
		}

		var coupon *coupons.Coupon
		if cart.CouponCode != "" {
			if coupon, err = s.redeemCoupon(ctx, cart.CouponCode, pricing.Subtotal(lines), req.Kind, now); err != nil {
				return err
			}
		}
		quote := pricing.Calculate(lines, coupon, shop, req.Kind == orders.KindSubscription)
		couponCode := ""
		if coupon != nil {
			couponCode = coupon.Code
		}

		customer, err := s.customerService.FindOrCreate(ctx, &req.Customer)
		if err != nil {
			return err
		}

		// Stock is reserved for one delivery's worth of items.
		for _, it := range items {
			if err := s.productRepo.AdjustStock(ctx, it.ProductID, -it.Quantity); err != nil {
				return err
			}
		}

		order := &orders.Order{
			ID:                   uuid.NewString(),
			Number:               orders.NewOrderNumber(now),
			CustomerID:           customer.ID,
			Kind:                 req.Kind,
			Recurrence:           req.Recurrence,
			DeliveryCount:        req.DeliveryCount,
			Status:               orders.StatusPending,
			PaymentMethod:        req.PaymentMethod,
			CouponCode:           couponCode,
			Subtotal:             quote.Subtotal,
			CouponDiscount:       quote.CouponDiscount,
			SubscriptionDiscount: quote.SubscriptionDiscount,
			ShippingFee:          quote.Shipping,
			Total:                quote.Total,
			Currency:             shop.Currency,
			Items:                items,
			ShippingAddress:      customer.ShippingAddress,
			DateTimeCreated:      now,
			DateTimeUpdated:      now,
		}
		if !req.PaymentMethod.Online() {
			if err := order.TransitionTo(orders.StatusProcessing, now); err != nil {
				return err
			}
		}
		if err := order.Validate(); err != nil {
			return err
		}
		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		scheduled, err := s.scheduleDeliveries(order, req, shop, now)
		if err != nil {
			return err
		}
		if err := s.deliveryRepo.CreateBatch(ctx, scheduled); err != nil {
			return err
		}

		bankTransfer := req.PaymentMethod == orders.PaymentBankTransfer
		var groups []*billing.PaymentGroup
		if order.IsSubscription() {
			groups = billing.PlanSubscription(order.ID, now, order.Total, order.Currency, scheduled, bankTransfer, shop.BankTransferDueDays)
		} else {
			groups = []*billing.PaymentGroup{
				billing.PlanOneTime(order.ID, now, order.Total, order.Currency, scheduled[0], bankTransfer, shop.BankTransferDueDays),
			}
		}
		if err := s.groupRepo.CreateBatch(ctx, groups); err != nil {
			return err
		}

		if err := s.cartRepo.DeleteByID(ctx, cart.ID); err != nil {
			return err
		}

		result.Order = order
		result.Deliveries = scheduled
		result.PaymentGroups = groups
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Created ", result.Order.Kind, " order ", result.Order.Number, " paid by ", result.Order.PaymentMethod)

	if result.Order.PaymentMethod.Online() {
		redirect, err := s.startPayment(ctx, result.Order, result.PaymentGroups)
		if err != nil {
			return result, err
		}
		result.RedirectURL = redirect
	}
	return result, nil
}

// StartPayment retries the online payment of an order whose earlier attempt
// failed or was abandoned.
func (s *checkoutService) StartPayment(ctx context.Context, orderNumber string) (string, error) {
	order, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return "", err
	}
	if !order.PaymentMethod.Online() {
		return "", fmt.Errorf("%w: %s is paid by %s", orders.ErrNotPayable, order.Number, order.PaymentMethod)
	}
	switch order.Status {
	case orders.StatusPending, orders.StatusAwaitingPayment, orders.StatusPaymentFailed:
	default:
		return "", fmt.Errorf("%w: %s is %s", orders.ErrNotPayable, order.Number, order.Status)
	}

	groups, err := s.groupRepo.ListByOrder(ctx, order.ID)
	if err != nil {
		return "", err
	}
	return s.startPayment(ctx, order, groups)
}

// startPayment charges the earliest unpaid payment group. The order moves to
// awaiting_payment on success and to payment_failed otherwise.
func (s *checkoutService) startPayment(ctx context.Context, order *orders.Order, groups []*billing.PaymentGroup) (string, error) {
	group := earliestUnpaid(groups)
	if group == nil {
		return "", fmt.Errorf("%w: %s has no unpaid payment", orders.ErrNotPayable, order.Number)
	}
	gw, ok := s.gateways[order.PaymentMethod]
	if !ok {
		return "", fmt.Errorf("%w: %s", payments.ErrProviderDisabled, order.PaymentMethod)
	}

	now := s.clock.Now().UTC()
	if err := order.TransitionTo(orders.StatusAwaitingPayment, now); err != nil {
		return "", err
	}

	res, startErr := gw.Start(ctx, payments.BuildCharge(order, group, len(groups)))
	if startErr != nil {
		if err := order.TransitionTo(orders.StatusPaymentFailed, now); err != nil {
			return "", err
		}
		if err := s.orderRepo.UpdateByID(ctx, order); err != nil {
			s.logger.Error("Failed to store failed payment of order ", order.Number, ": ", err)
		}
		s.logger.Warn("Payment start failed for order ", order.Number, ": ", startErr)
		return "", fmt.Errorf("%w: order %s: %v", orders.ErrPaymentStartFailed, order.Number, startErr)
	}

	order.PaymentProviderRef = res.ProviderRef
	if err := s.orderRepo.UpdateByID(ctx, order); err != nil {
		return "", err
	}
	// The trail keeps every reference ever issued for the order, so
	// notifications for a superseded payment can still be matched.
	started := &payments.PaymentEvent{
		ID:              uuid.NewString(),
		OrderID:         order.ID,
		Provider:        gw.Provider(),
		ProviderRef:     res.ProviderRef,
		ProviderStatus:  payments.StatusStarted,
		MappedStatus:    order.Status,
		Applied:         true,
		DateTimeCreated: now,
	}
	if err := s.eventRepo.Create(ctx, started); err != nil {
		s.logger.Error("Failed to record payment start of order ", order.Number, ": ", err)
	}
	s.logger.Info("Started ", gw.Provider(), " payment ", res.ProviderRef, " for order ", order.Number)
	return res.RedirectURL, nil
}

func (s *checkoutService) checkRequest(req *orders.CheckoutRequest, shop *settings.ShopSettings) error {
	switch req.PaymentMethod {
	case orders.PaymentBankTransfer, orders.PaymentCashOnDelivery:
	case orders.PaymentBarion, orders.PaymentStripe:
		if _, ok := s.gateways[req.PaymentMethod]; !ok {
			return fmt.Errorf("%w: %s", payments.ErrProviderDisabled, req.PaymentMethod)
		}
	default:
		return fmt.Errorf("%w: unknown payment method %q", orders.ErrInvalidCheckout, req.PaymentMethod)
	}

	switch req.Kind {
	case orders.KindOneTime:
		req.Recurrence = ""
		req.DeliveryCount = 1
	case orders.KindSubscription:
		if !req.Recurrence.Valid() {
			return fmt.Errorf("%w: %w: %q", orders.ErrInvalidCheckout, deliveries.ErrInvalidRecurrence, req.Recurrence)
		}
		if req.DeliveryCount < 1 || req.DeliveryCount > shop.MaxSubscriptionDeliveries {
			return fmt.Errorf("%w: %w: %d (1..%d)", orders.ErrInvalidCheckout, deliveries.ErrInvalidCount,
				req.DeliveryCount, shop.MaxSubscriptionDeliveries)
		}
	default:
		return fmt.Errorf("%w: unknown order kind %q", orders.ErrInvalidCheckout, req.Kind)
	}

	// The customer gets its ID inside the transaction; validate the rest up front.
	candidate := req.Customer
	candidate.Normalize()
	candidate.ID = uuid.NewString()
	return candidate.Validate()
}

func (s *checkoutService) snapshotItems(ctx context.Context, cart *carts.Cart, kind orders.Kind, currency string) ([]orders.OrderItem, []pricing.Line, error) {
	items := make([]orders.OrderItem, 0, len(cart.Items))
	lines := make([]pricing.Line, 0, len(cart.Items))
	for _, it := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, nil, err
		}
		if err := product.Orderable(it.Quantity); err != nil {
			return nil, nil, err
		}
		if kind == orders.KindSubscription && !product.SubscriptionEligible {
			return nil, nil, fmt.Errorf("%w: %s", orders.ErrNotSubscribable, product.Name)
		}
		if product.Currency != currency {
			return nil, nil, fmt.Errorf("%w: %s is priced in %s, the shop sells in %s",
				orders.ErrInvalidCheckout, product.Name, product.Currency, currency)
		}
		items = append(items, orders.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.UnitPrice,
			Quantity:    it.Quantity,
			LineTotal:   pricing.LineTotal(product.UnitPrice, it.Quantity),
		})
		lines = append(lines, pricing.Line{UnitPrice: product.UnitPrice, Quantity: it.Quantity})
	}
	return items, lines, nil
}

// redeemCoupon validates the cart's coupon against the order and counts one
// use. A coupon that no longer applies fails the checkout.
func (s *checkoutService) redeemCoupon(ctx context.Context, code string, subtotal decimal.Decimal, kind orders.Kind, now time.Time) (*coupons.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := coupon.CheckApplicable(subtotal, kind == orders.KindSubscription, now); err != nil {
		return nil, err
	}
	if err := s.couponRepo.IncrementUsage(ctx, coupon.ID); err != nil {
		return nil, err
	}
	return coupon, nil
}

func (s *checkoutService) scheduleDeliveries(order *orders.Order, req *orders.CheckoutRequest, shop *settings.ShopSettings, now time.Time) ([]*deliveries.Delivery, error) {
	earliest := deliveries.Day(now).AddDate(0, 0, shop.MinLeadDays)
	start := req.StartDate
	if start.IsZero() {
		start = earliest
	}

	recurrence := order.Recurrence
	if !order.IsSubscription() {
		recurrence = deliveries.RecurrenceWeekly
	}
	dates, err := deliveries.Schedule(start, recurrence, order.DeliveryCount, shop.DeliveryWeekdays, earliest)
	if err != nil {
		return nil, err
	}

	scheduled := make([]*deliveries.Delivery, 0, len(dates))
	for i, d := range dates {
		scheduled = append(scheduled, &deliveries.Delivery{
			ID:              uuid.NewString(),
			OrderID:         order.ID,
			Sequence:        i + 1,
			ScheduledDate:   d,
			Status:          deliveries.StatusScheduled,
			DateTimeCreated: now,
			DateTimeUpdated: now,
		})
	}
	return scheduled, nil
}
