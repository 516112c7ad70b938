package persistence

import (
	"fmt"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/carts"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/domain/uow"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"gorm.io/gorm"
)

// Repositories holds every gorm repository sharing one connection and its transactor
type Repositories struct {
	Transactor    uow.Transactor
	Products      catalog.ProductRepository
	Customers     customers.CustomerRepository
	Settings      settings.ShopSettingsRepository
	Coupons       coupons.CouponRepository
	Carts         carts.CartRepository
	Orders        orders.OrderRepository
	Deliveries    deliveries.DeliveryRepository
	PaymentGroups billing.PaymentGroupRepository
	PaymentEvents payments.PaymentEventRepository
}

// NewRepositories creates all repositories on db
func NewRepositories(db *gorm.DB, logger logger.Logger) (*Repositories, error) {
	r := &Repositories{Transactor: NewGormTransactor(db)}
	var err error

	if r.Products, err = NewGormProductRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create product repository: %w", err)
	}
	if r.Customers, err = NewGormCustomerRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create customer repository: %w", err)
	}
	if r.Settings, err = NewGormShopSettingsRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create settings repository: %w", err)
	}
	if r.Coupons, err = NewGormCouponRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create coupon repository: %w", err)
	}
	if r.Carts, err = NewGormCartRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create cart repository: %w", err)
	}
	if r.Orders, err = NewGormOrderRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create order repository: %w", err)
	}
	if r.Deliveries, err = NewGormDeliveryRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create delivery repository: %w", err)
	}
	if r.PaymentGroups, err = NewGormPaymentGroupRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create payment group repository: %w", err)
	}
	if r.PaymentEvents, err = NewGormPaymentEventRepository(db, logger); err != nil {
		return nil, fmt.Errorf("failed to create payment event repository: %w", err)
	}
	return r, nil
}
