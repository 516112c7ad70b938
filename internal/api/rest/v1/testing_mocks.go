//go:build unit
// +build unit

package v1

import (
	"context"
	"time"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/carts"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/domain/settings"

	"github.com/stretchr/testify/mock"
)

func ptrOrNil[T any](args mock.Arguments, i int) *T {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).(*T)
}

func sliceOrNil[T any](args mock.Arguments, i int) []*T {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]*T)
}

// MockProductCatalogService is a mock implementation of ProductCatalogService
type MockProductCatalogService struct {
	mock.Mock
}

func (m *MockProductCatalogService) List(ctx context.Context, query *catalog.ProductQuery) ([]*catalog.Product, error) {
	args := m.Called(ctx, query)
	return sliceOrNil[catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductCatalogService) GetByID(ctx context.Context, productID string) (*catalog.Product, error) {
	args := m.Called(ctx, productID)
	return ptrOrNil[catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductCatalogService) GetBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	args := m.Called(ctx, slug)
	return ptrOrNil[catalog.Product](args, 0), args.Error(1)
}

// MockProductAdminService is a mock implementation of ProductAdminService
type MockProductAdminService struct {
	mock.Mock
}

func (m *MockProductAdminService) Create(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	args := m.Called(ctx, product)
	return ptrOrNil[catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductAdminService) List(ctx context.Context, query *catalog.ProductQuery) ([]*catalog.Product, error) {
	args := m.Called(ctx, query)
	return sliceOrNil[catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductAdminService) GetByID(ctx context.Context, productID string) (*catalog.Product, error) {
	args := m.Called(ctx, productID)
	return ptrOrNil[catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductAdminService) Update(ctx context.Context, product *catalog.Product) (*catalog.Product, error) {
	args := m.Called(ctx, product)
	return ptrOrNil[catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductAdminService) SetActive(ctx context.Context, productID string, active bool) (*catalog.Product, error) {
	args := m.Called(ctx, productID, active)
	return ptrOrNil[catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductAdminService) AdjustStock(ctx context.Context, productID string, delta int) (*catalog.Product, error) {
	args := m.Called(ctx, productID, delta)
	return ptrOrNil[catalog.Product](args, 0), args.Error(1)
}

func (m *MockProductAdminService) DeleteByID(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockProductAdminService) Import(ctx context.Context, products []*catalog.Product) (int, int, error) {
	args := m.Called(ctx, products)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockCartService is a mock implementation of CartService
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Create(ctx context.Context) (*carts.Cart, error) {
	args := m.Called(ctx)
	return ptrOrNil[carts.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, cartID string) (*carts.Cart, error) {
	args := m.Called(ctx, cartID)
	return ptrOrNil[carts.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, cartID, productID string, qty int) (*carts.Cart, error) {
	args := m.Called(ctx, cartID, productID, qty)
	return ptrOrNil[carts.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) UpdateItem(ctx context.Context, cartID, productID string, qty int) (*carts.Cart, error) {
	args := m.Called(ctx, cartID, productID, qty)
	return ptrOrNil[carts.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID, productID string) (*carts.Cart, error) {
	args := m.Called(ctx, cartID, productID)
	return ptrOrNil[carts.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) ApplyCoupon(ctx context.Context, cartID, code string) (*carts.Cart, error) {
	args := m.Called(ctx, cartID, code)
	return ptrOrNil[carts.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) RemoveCoupon(ctx context.Context, cartID string) (*carts.Cart, error) {
	args := m.Called(ctx, cartID)
	return ptrOrNil[carts.Cart](args, 0), args.Error(1)
}

func (m *MockCartService) Quote(ctx context.Context, cartID string, isSubscription bool) (*carts.CartQuote, error) {
	args := m.Called(ctx, cartID, isSubscription)
	return ptrOrNil[carts.CartQuote](args, 0), args.Error(1)
}

// MockCheckoutService is a mock implementation of CheckoutService
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, req *orders.CheckoutRequest) (*orders.CheckoutResult, error) {
	args := m.Called(ctx, req)
	return ptrOrNil[orders.CheckoutResult](args, 0), args.Error(1)
}

func (m *MockCheckoutService) StartPayment(ctx context.Context, orderNumber string) (string, error) {
	args := m.Called(ctx, orderNumber)
	return args.String(0), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) GetByID(ctx context.Context, orderID string) (*orders.Order, error) {
	args := m.Called(ctx, orderID)
	return ptrOrNil[orders.Order](args, 0), args.Error(1)
}

func (m *MockOrderService) GetByNumber(ctx context.Context, number string) (*orders.Order, error) {
	args := m.Called(ctx, number)
	return ptrOrNil[orders.Order](args, 0), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, query *orders.OrderQuery) ([]*orders.Order, error) {
	args := m.Called(ctx, query)
	return sliceOrNil[orders.Order](args, 0), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID string, status orders.Status) (*orders.Order, error) {
	args := m.Called(ctx, orderID, status)
	return ptrOrNil[orders.Order](args, 0), args.Error(1)
}

func (m *MockOrderService) Cancel(ctx context.Context, orderID string) (*orders.Order, error) {
	args := m.Called(ctx, orderID)
	return ptrOrNil[orders.Order](args, 0), args.Error(1)
}

// MockDeliveryService is a mock implementation of DeliveryService
type MockDeliveryService struct {
	mock.Mock
}

func (m *MockDeliveryService) ListByOrder(ctx context.Context, orderID string) ([]*deliveries.Delivery, error) {
	args := m.Called(ctx, orderID)
	return sliceOrNil[deliveries.Delivery](args, 0), args.Error(1)
}

func (m *MockDeliveryService) ListDue(ctx context.Context, query *deliveries.DeliveryQuery) ([]*deliveries.Delivery, error) {
	args := m.Called(ctx, query)
	return sliceOrNil[deliveries.Delivery](args, 0), args.Error(1)
}

func (m *MockDeliveryService) MarkDelivered(ctx context.Context, deliveryID string) (*deliveries.Delivery, error) {
	args := m.Called(ctx, deliveryID)
	return ptrOrNil[deliveries.Delivery](args, 0), args.Error(1)
}

func (m *MockDeliveryService) Skip(ctx context.Context, deliveryID string) (*deliveries.Delivery, error) {
	args := m.Called(ctx, deliveryID)
	return ptrOrNil[deliveries.Delivery](args, 0), args.Error(1)
}

func (m *MockDeliveryService) Reschedule(ctx context.Context, deliveryID string, date time.Time) (*deliveries.Delivery, error) {
	args := m.Called(ctx, deliveryID, date)
	return ptrOrNil[deliveries.Delivery](args, 0), args.Error(1)
}

// MockPaymentGroupService is a mock implementation of PaymentGroupService
type MockPaymentGroupService struct {
	mock.Mock
}

func (m *MockPaymentGroupService) ListByOrder(ctx context.Context, orderID string) ([]*billing.PaymentGroup, error) {
	args := m.Called(ctx, orderID)
	return sliceOrNil[billing.PaymentGroup](args, 0), args.Error(1)
}

func (m *MockPaymentGroupService) ListPending(ctx context.Context, query *billing.PaymentGroupQuery) ([]*billing.PaymentGroup, error) {
	args := m.Called(ctx, query)
	return sliceOrNil[billing.PaymentGroup](args, 0), args.Error(1)
}

func (m *MockPaymentGroupService) MarkBillCreated(ctx context.Context, groupID string) (*billing.PaymentGroup, error) {
	args := m.Called(ctx, groupID)
	return ptrOrNil[billing.PaymentGroup](args, 0), args.Error(1)
}

func (m *MockPaymentGroupService) MarkBillSent(ctx context.Context, groupID string) (*billing.PaymentGroup, error) {
	args := m.Called(ctx, groupID)
	return ptrOrNil[billing.PaymentGroup](args, 0), args.Error(1)
}

func (m *MockPaymentGroupService) MarkPaid(ctx context.Context, groupID string) (*billing.PaymentGroup, error) {
	args := m.Called(ctx, groupID)
	return ptrOrNil[billing.PaymentGroup](args, 0), args.Error(1)
}

func (m *MockPaymentGroupService) Overdue(ctx context.Context) ([]*billing.PaymentGroup, error) {
	args := m.Called(ctx)
	return sliceOrNil[billing.PaymentGroup](args, 0), args.Error(1)
}

func (m *MockPaymentGroupService) DueWithin(ctx context.Context, days int) ([]*billing.PaymentGroup, error) {
	args := m.Called(ctx, days)
	return sliceOrNil[billing.PaymentGroup](args, 0), args.Error(1)
}

// MockCouponService is a mock implementation of CouponService
type MockCouponService struct {
	mock.Mock
}

func (m *MockCouponService) Create(ctx context.Context, coupon *coupons.Coupon) (*coupons.Coupon, error) {
	args := m.Called(ctx, coupon)
	return ptrOrNil[coupons.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponService) List(ctx context.Context, query *coupons.CouponQuery) ([]*coupons.Coupon, error) {
	args := m.Called(ctx, query)
	return sliceOrNil[coupons.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponService) GetByID(ctx context.Context, couponID string) (*coupons.Coupon, error) {
	args := m.Called(ctx, couponID)
	return ptrOrNil[coupons.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponService) GetByCode(ctx context.Context, code string) (*coupons.Coupon, error) {
	args := m.Called(ctx, code)
	return ptrOrNil[coupons.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponService) Update(ctx context.Context, coupon *coupons.Coupon) (*coupons.Coupon, error) {
	args := m.Called(ctx, coupon)
	return ptrOrNil[coupons.Coupon](args, 0), args.Error(1)
}

func (m *MockCouponService) DeleteByID(ctx context.Context, couponID string) error {
	args := m.Called(ctx, couponID)
	return args.Error(0)
}

// MockCustomerService is a mock implementation of CustomerService
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) FindOrCreate(ctx context.Context, customer *customers.Customer) (*customers.Customer, error) {
	args := m.Called(ctx, customer)
	return ptrOrNil[customers.Customer](args, 0), args.Error(1)
}

func (m *MockCustomerService) GetByID(ctx context.Context, customerID string) (*customers.Customer, error) {
	args := m.Called(ctx, customerID)
	return ptrOrNil[customers.Customer](args, 0), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context, query *customers.CustomerQuery) ([]*customers.Customer, error) {
	args := m.Called(ctx, query)
	return sliceOrNil[customers.Customer](args, 0), args.Error(1)
}

// MockShopSettingsService is a mock implementation of ShopSettingsService
type MockShopSettingsService struct {
	mock.Mock
}

func (m *MockShopSettingsService) Get(ctx context.Context) (*settings.ShopSettings, error) {
	args := m.Called(ctx)
	return ptrOrNil[settings.ShopSettings](args, 0), args.Error(1)
}

func (m *MockShopSettingsService) Update(ctx context.Context, s *settings.ShopSettings) (*settings.ShopSettings, error) {
	args := m.Called(ctx, s)
	return ptrOrNil[settings.ShopSettings](args, 0), args.Error(1)
}

// MockBarionCallbackService is a mock implementation of BarionCallbackService
type MockBarionCallbackService struct {
	mock.Mock
}

func (m *MockBarionCallbackService) HandleCallback(ctx context.Context, paymentID string) (*payments.PaymentEvent, error) {
	args := m.Called(ctx, paymentID)
	return ptrOrNil[payments.PaymentEvent](args, 0), args.Error(1)
}

// MockStripeWebhookService is a mock implementation of StripeWebhookService
type MockStripeWebhookService struct {
	mock.Mock
}

func (m *MockStripeWebhookService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) (*payments.PaymentEvent, error) {
	args := m.Called(ctx, payload, signatureHeader)
	return ptrOrNil[payments.PaymentEvent](args, 0), args.Error(1)
}
