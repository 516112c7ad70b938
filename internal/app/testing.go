//go:build unit || integration
// +build unit integration

package app

import (
	"context"
	"testing"
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
	"github.com/drinkbox/storefront/internal/infrastructure/persistence"
	"github.com/drinkbox/storefront/internal/pkg/testutil"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestNow is the fake clock's start: Monday 4 March 2024, 10:00 UTC. With the
// default settings (Tuesday and Thursday, two days lead) the first possible
// delivery is Thursday 7 March.
var TestNow = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

// MockBarionGateway is a testify mock of payments.BarionGateway
type MockBarionGateway struct {
	mock.Mock
}

func (m *MockBarionGateway) Provider() payments.Provider { return payments.ProviderBarion }

func (m *MockBarionGateway) Start(ctx context.Context, charge *payments.Charge) (*payments.StartResult, error) {
	args := m.Called(ctx, charge)
	res, _ := args.Get(0).(*payments.StartResult)
	return res, args.Error(1)
}

func (m *MockBarionGateway) GetPaymentState(ctx context.Context, paymentID string) (*payments.BarionState, error) {
	args := m.Called(ctx, paymentID)
	res, _ := args.Get(0).(*payments.BarionState)
	return res, args.Error(1)
}

// MockStripeGateway is a testify mock of payments.StripeGateway
type MockStripeGateway struct {
	mock.Mock
}

func (m *MockStripeGateway) Provider() payments.Provider { return payments.ProviderStripe }

func (m *MockStripeGateway) Start(ctx context.Context, charge *payments.Charge) (*payments.StartResult, error) {
	args := m.Called(ctx, charge)
	res, _ := args.Get(0).(*payments.StartResult)
	return res, args.Error(1)
}

func (m *MockStripeGateway) ParseWebhook(payload []byte, signatureHeader string) (*payments.StripeEvent, error) {
	args := m.Called(payload, signatureHeader)
	res, _ := args.Get(0).(*payments.StripeEvent)
	return res, args.Error(1)
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	ProductCatalogService catalog.ProductCatalogService
	ProductAdminService   catalog.ProductAdminService
	CustomerService       customers.CustomerService
	SettingsService       settings.ShopSettingsService
	CouponService         coupons.CouponService
	CartService           carts.CartService
	CheckoutService       orders.CheckoutService
	OrderService          orders.OrderService
	DeliveryService       deliveries.DeliveryService
	PaymentGroupService   billing.PaymentGroupService
	BarionCallbackService payments.BarionCallbackService
	StripeWebhookService  payments.StripeWebhookService

	Barion *MockBarionGateway
	Stripe *MockStripeGateway
	Clock  *clockwork.FakeClock

	// Infrastructure
	DBContext *persistence.TestContext
}

// SetupTestServices initializes all application services on a fresh database
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	log := testutil.SetupTestLogger(t)
	db := persistence.SetupTestDB(t, dbType)
	clock := clockwork.NewFakeClockAt(TestNow)

	ts := &TestServices{
		Barion:    &MockBarionGateway{},
		Stripe:    &MockStripeGateway{},
		Clock:     clock,
		DBContext: db,
	}
	var err error

	ts.ProductCatalogService, err = NewProductCatalogService(db.ProductRepo, log)
	require.NoError(t, err)
	ts.ProductAdminService, err = NewProductAdminService(db.ProductRepo, db.Transactor, clock, log)
	require.NoError(t, err)
	ts.CustomerService, err = NewCustomerService(db.CustomerRepo, clock, log)
	require.NoError(t, err)
	ts.SettingsService, err = NewShopSettingsService(db.SettingsRepo, nil, clock, log)
	require.NoError(t, err)
	ts.CouponService, err = NewCouponService(db.CouponRepo, clock, log)
	require.NoError(t, err)
	ts.CartService, err = NewCartService(db.CartRepo, db.ProductRepo, db.CouponRepo, ts.SettingsService, clock, log)
	require.NoError(t, err)
	ts.CheckoutService, err = NewCheckoutService(
		db.Transactor, db.CartRepo, db.ProductRepo, db.CouponRepo, db.OrderRepo, db.DeliveryRepo,
		db.PaymentGroupRepo, db.PaymentEventRepo, ts.CustomerService, ts.SettingsService,
		[]payments.Gateway{ts.Barion, ts.Stripe}, clock, log,
	)
	require.NoError(t, err)
	ts.OrderService, err = NewOrderService(db.Transactor, db.OrderRepo, db.ProductRepo, db.DeliveryRepo, db.PaymentGroupRepo, clock, log)
	require.NoError(t, err)
	ts.DeliveryService, err = NewDeliveryService(db.Transactor, db.DeliveryRepo, db.OrderRepo, ts.SettingsService, clock, log)
	require.NoError(t, err)
	ts.PaymentGroupService, err = NewPaymentGroupService(db.PaymentGroupRepo, clock, log)
	require.NoError(t, err)

	repos := PaymentRepositories{
		Orders:     db.OrderRepo,
		Products:   db.ProductRepo,
		Deliveries: db.DeliveryRepo,
		Groups:     db.PaymentGroupRepo,
		Events:     db.PaymentEventRepo,
	}
	ts.BarionCallbackService, err = NewBarionCallbackService(ts.Barion, db.Transactor, repos, clock, log)
	require.NoError(t, err)
	ts.StripeWebhookService, err = NewStripeWebhookService(ts.Stripe, db.Transactor, repos, clock, log)
	require.NoError(t, err)

	return ts
}

// CreateCartWith creates a cart holding qty of product
func (ts *TestServices) CreateCartWith(t *testing.T, product *catalog.Product, qty int) *carts.Cart {
	t.Helper()

	ctx := context.Background()
	cart, err := ts.CartService.Create(ctx)
	require.NoError(t, err)
	cart, err = ts.CartService.AddItem(ctx, cart.ID, product.ID, qty)
	require.NoError(t, err)
	return cart
}

// TestCheckoutRequest returns a checkout of cartID by a Budapest customer
func TestCheckoutRequest(cartID string, kind orders.Kind, method orders.PaymentMethod) *orders.CheckoutRequest {
	return &orders.CheckoutRequest{
		CartID: cartID,
		Customer: customers.Customer{
			Email:    "Anna.Kovacs@Example.com",
			FullName: "Kovács Anna",
			ShippingAddress: customers.Address{
				PostalCode: "1051",
				City:       "Budapest",
				Street:     "Nádor utca 7",
			},
		},
		Kind:          kind,
		DeliveryCount: 1,
		PaymentMethod: method,
	}
}
