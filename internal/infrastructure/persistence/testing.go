//go:build unit || integration
// +build unit integration

package persistence

import (
	"context"
	"fmt"
	"strings"
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
	"github.com/drinkbox/storefront/internal/domain/uow"
	"github.com/drinkbox/storefront/internal/pkg/config"
	"github.com/drinkbox/storefront/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	Transactor       uow.Transactor
	ProductRepo      catalog.ProductRepository
	CustomerRepo     customers.CustomerRepository
	SettingsRepo     settings.ShopSettingsRepository
	CouponRepo       coupons.CouponRepository
	CartRepo         carts.CartRepository
	OrderRepo        orders.OrderRepository
	DeliveryRepo     deliveries.DeliveryRepository
	PaymentGroupRepo billing.PaymentGroupRepository
	PaymentEventRepo payments.PaymentEventRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	log := testutil.SetupTestLogger(t)
	db, err := NewDBConnection(settings, log)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	repos, err := NewRepositories(db, log)
	require.NoError(t, err, "Failed to create repositories")

	tc := &TestContext{
		DB:               db,
		Transactor:       repos.Transactor,
		ProductRepo:      repos.Products,
		CustomerRepo:     repos.Customers,
		SettingsRepo:     repos.Settings,
		CouponRepo:       repos.Coupons,
		CartRepo:         repos.Carts,
		OrderRepo:        repos.Orders,
		DeliveryRepo:     repos.Deliveries,
		PaymentGroupRepo: repos.PaymentGroups,
		PaymentEventRepo: repos.PaymentEvents,
	}

	return tc
}

// CreateTestProduct creates an active product with the given slug, price and stock
func CreateTestProduct(t *testing.T, slug string, price int64, stock int) *catalog.Product {
	t.Helper()

	return &catalog.Product{
		ID:                   uuid.NewString(),
		Name:                 strings.ReplaceAll(slug, "-", " "),
		Slug:                 slug,
		Category:             catalog.CategoryWine,
		UnitPrice:            decimal.NewFromInt(price),
		Currency:             catalog.DefaultCurrency,
		Stock:                stock,
		Active:               true,
		SubscriptionEligible: true,
		DateTimeCreated:      time.Now().UTC(),
	}
}

// CreateTestCustomer creates a customer with a Budapest address
func CreateTestCustomer(t *testing.T, email string) *customers.Customer {
	t.Helper()

	addr := customers.Address{PostalCode: "1051", City: "Budapest", Street: "Nádor utca 7"}
	return &customers.Customer{
		ID:              uuid.NewString(),
		Email:           email,
		FullName:        "Kovács Anna",
		ShippingAddress: addr,
		BillingAddress:  addr,
		DateTimeCreated: time.Now().UTC(),
	}
}

// CreateTestOrder creates an order of one product for customer
func CreateTestOrder(t *testing.T, customer *customers.Customer, product *catalog.Product, qty int) *orders.Order {
	t.Helper()

	now := time.Now().UTC()
	line := product.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
	return &orders.Order{
		ID:             uuid.NewString(),
		Number:         orders.NewOrderNumber(now),
		CustomerID:     customer.ID,
		Kind:           orders.KindOneTime,
		DeliveryCount:  1,
		Status:         orders.StatusPending,
		PaymentMethod:  orders.PaymentBarion,
		Subtotal:       line,
		CouponDiscount: decimal.Zero,
		ShippingFee:    decimal.Zero,
		Total:          line,
		Currency:       product.Currency,
		Items: []orders.OrderItem{{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.UnitPrice,
			Quantity:    qty,
			LineTotal:   line,
		}},
		ShippingAddress: customer.ShippingAddress,
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
}

// CreateTestDeliveries creates n weekly deliveries for order starting at start
func CreateTestDeliveries(t *testing.T, orderID string, start time.Time, n int) []*deliveries.Delivery {
	t.Helper()

	out := make([]*deliveries.Delivery, n)
	for i := range out {
		out[i] = &deliveries.Delivery{
			ID:              uuid.NewString(),
			OrderID:         orderID,
			Sequence:        i + 1,
			ScheduledDate:   deliveries.Day(start).AddDate(0, 0, 7*i),
			Status:          deliveries.StatusScheduled,
			DateTimeCreated: time.Now().UTC(),
		}
	}
	return out
}

// MustSeed persists the given fixtures in order
func (tc *TestContext) MustSeed(t *testing.T, fixtures ...interface{}) {
	t.Helper()

	for _, f := range fixtures {
		var err error
		switch v := f.(type) {
		case *catalog.Product:
			err = tc.ProductRepo.Create(context.Background(), v)
		case *customers.Customer:
			err = tc.CustomerRepo.Create(context.Background(), v)
		case *orders.Order:
			err = tc.OrderRepo.Create(context.Background(), v)
		case *coupons.Coupon:
			err = tc.CouponRepo.Create(context.Background(), v)
		default:
			err = fmt.Errorf("unsupported fixture %T", f)
		}
		require.NoError(t, err)
	}
}

func settingsFixture() *settings.ShopSettings {
	s := settings.Default()
	s.DateTimeUpdated = time.Now().UTC()
	return s
}
