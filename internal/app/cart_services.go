package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/carts"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/domain/pricing"
	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// cartService implements the CartService interface
type cartService struct {
	cartRepo        carts.CartRepository
	productRepo     catalog.ProductRepository
	couponRepo      coupons.CouponRepository
	settingsService settings.ShopSettingsService
	clock           clockwork.Clock
	logger          logger.Logger
}

// NewCartService creates a new instance of CartService
func NewCartService(
	cartRepo carts.CartRepository,
	productRepo catalog.ProductRepository,
	couponRepo coupons.CouponRepository,
	settingsService settings.ShopSettingsService,
	clock clockwork.Clock,
	logger logger.Logger,
) (carts.CartService, error) {
	return &cartService{
		cartRepo:        cartRepo,
		productRepo:     productRepo,
		couponRepo:      couponRepo,
		settingsService: settingsService,
		clock:           clock,
		logger:          logger,
	}, nil
}

func (s *cartService) Create(ctx context.Context) (*carts.Cart, error) {
	now := s.clock.Now().UTC()
	cart := &carts.Cart{
		ID:              uuid.NewString(),
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
	if err := s.cartRepo.Create(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.Debug("Created cart with id ", cart.ID)
	return cart, nil
}

func (s *cartService) Get(ctx context.Context, cartID string) (*carts.Cart, error) {
	return s.cartRepo.GetByID(ctx, cartID)
}

// AddItem merges qty into the product's line. The merged quantity must be in
// stock and must not exceed MaxItemQuantity.
func (s *cartService) AddItem(ctx context.Context, cartID, productID string, qty int) (*carts.Cart, error) {
	if qty < 1 {
		return nil, fmt.Errorf("%w: %d", carts.ErrInvalidQuantity, qty)
	}
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.setQuantity(ctx, cart, productID, cart.Quantity(productID)+qty)
}

func (s *cartService) UpdateItem(ctx context.Context, cartID, productID string, qty int) (*carts.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if qty == 0 {
		if err := cart.Remove(productID); err != nil {
			return nil, err
		}
		return s.save(ctx, cart)
	}
	if cart.Quantity(productID) == 0 {
		return nil, fmt.Errorf("%w: %s", carts.ErrItemNotFound, productID)
	}
	return s.setQuantity(ctx, cart, productID, qty)
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, productID string) (*carts.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := cart.Remove(productID); err != nil {
		return nil, err
	}
	return s.save(ctx, cart)
}

// ApplyCoupon stores the code when the coupon is currently usable for the
// cart. Subscription-only coupons are accepted here and checked against the
// order kind at quote and checkout time.
func (s *cartService) ApplyCoupon(ctx context.Context, cartID, code string) (*carts.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	coupon, err := s.couponRepo.GetByCode(ctx, coupons.NormalizeCode(code))
	if err != nil {
		return nil, err
	}
	_, lines, err := s.priceLines(ctx, cart)
	if err != nil {
		return nil, err
	}
	if err := coupon.CheckApplicable(pricing.Subtotal(lines), true, s.clock.Now().UTC()); err != nil {
		return nil, err
	}
	cart.CouponCode = coupon.Code
	return s.save(ctx, cart)
}

func (s *cartService) RemoveCoupon(ctx context.Context, cartID string) (*carts.Cart, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.CouponCode = ""
	return s.save(ctx, cart)
}

// Quote prices the cart with current product prices. Unavailable lines are
// listed but not priced; a coupon that no longer applies is reported in
// CouponError and left out.
func (s *cartService) Quote(ctx context.Context, cartID string, isSubscription bool) (*carts.CartQuote, error) {
	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	shop, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}
	priced, lines, err := s.priceLines(ctx, cart)
	if err != nil {
		return nil, err
	}

	quote := &carts.CartQuote{
		CartID:         cart.ID,
		Lines:          priced,
		IsSubscription: isSubscription,
	}

	var coupon *coupons.Coupon
	if cart.CouponCode != "" {
		c, err := s.couponRepo.GetByCode(ctx, cart.CouponCode)
		switch {
		case errors.Is(err, coupons.ErrNotFound):
			quote.CouponError = err.Error()
		case err != nil:
			return nil, err
		default:
			if err := c.CheckApplicable(pricing.Subtotal(lines), isSubscription, s.clock.Now().UTC()); err != nil {
				quote.CouponError = err.Error()
			} else {
				coupon = c
				quote.CouponCode = c.Code
			}
		}
	}

	quote.Quote = pricing.Calculate(lines, coupon, shop, isSubscription)
	return quote, nil
}

func (s *cartService) setQuantity(ctx context.Context, cart *carts.Cart, productID string, qty int) (*carts.Cart, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(productID, qty); err != nil {
		return nil, fmt.Errorf("%w: %d", err, qty)
	}
	if err := product.Orderable(qty); err != nil {
		return nil, err
	}
	return s.save(ctx, cart)
}

func (s *cartService) save(ctx context.Context, cart *carts.Cart) (*carts.Cart, error) {
	cart.DateTimeUpdated = s.clock.Now().UTC()
	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) priceLines(ctx context.Context, cart *carts.Cart) ([]carts.PricedLine, []pricing.Line, error) {
	priced := make([]carts.PricedLine, 0, len(cart.Items))
	var lines []pricing.Line
	for _, it := range cart.Items {
		product, err := s.productRepo.GetByID(ctx, it.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			priced = append(priced, carts.PricedLine{ProductID: it.ProductID, Quantity: it.Quantity})
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		line := carts.PricedLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.UnitPrice,
			Quantity:    it.Quantity,
			Available:   product.Orderable(it.Quantity) == nil,
		}
		if line.Available {
			line.LineTotal = pricing.LineTotal(product.UnitPrice, it.Quantity)
			lines = append(lines, pricing.Line{UnitPrice: product.UnitPrice, Quantity: it.Quantity})
		}
		priced = append(priced, line)
	}
	return priced, lines, nil
}
