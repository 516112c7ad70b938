//go:build unit
// +build unit

package v1

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/settings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const testAdminKey = "route-test-admin-key"

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	mockCatalog := new(MockProductCatalogService)
	mockCatalog.On("List", mock.Anything, mock.Anything).Return([]*catalog.Product{}, nil)
	mockCatalog.On("GetByID", mock.Anything, mock.Anything).Return(nil, catalog.ErrNotFound)
	mockCatalog.On("GetBySlug", mock.Anything, mock.Anything).Return(nil, catalog.ErrNotFound)

	mockOrders := new(MockOrderService)
	mockOrders.On("GetByNumber", mock.Anything, mock.Anything).Return(nil, orders.ErrNotFound)

	mockCheckout := new(MockCheckoutService)
	mockCheckout.On("StartPayment", mock.Anything, mock.Anything).Return("", orders.ErrNotFound)

	mockSettings := new(MockShopSettingsService)
	mockSettings.On("Get", mock.Anything).Return(settings.Default(), nil)

	r := gin.New()
	SetupRoutes(r, Services{
		Catalog:       mockCatalog,
		ProductAdmin:  new(MockProductAdminService),
		Carts:         new(MockCartService),
		Checkout:      mockCheckout,
		Orders:        mockOrders,
		Deliveries:    new(MockDeliveryService),
		PaymentGroups: new(MockPaymentGroupService),
		Coupons:       new(MockCouponService),
		Customers:     new(MockCustomerService),
		Settings:      mockSettings,
	}, RouteOptions{
		AdminAPIKey: testAdminKey,
		RateLimiter: NewRateLimiter(100, 100),
	})
	return r
}

// TestSetupRoutes_PublicRoutesRegistered verifies that the public routes answer
// with the JSON error body of a handler rather than the router's not found page.
func TestSetupRoutes_PublicRoutesRegistered(t *testing.T) {
	r := setupTestRouter()

	tests := []struct {
		method string
		url    string
	}{
		{"GET", BasePath + "/products"},
		{"GET", BasePath + "/products/abc"},
		{"GET", BasePath + "/products/slug/kunsagi-rose"},
		{"GET", BasePath + "/carts/current"},
		{"POST", BasePath + "/carts/current/items"},
		{"PATCH", BasePath + "/carts/current/items/abc"},
		{"DELETE", BasePath + "/carts/current/items/abc"},
		{"POST", BasePath + "/carts/current/coupon"},
		{"DELETE", BasePath + "/carts/current/coupon"},
		{"GET", BasePath + "/carts/current/quote"},
		{"POST", BasePath + "/checkout"},
		{"GET", BasePath + "/orders/DB-1"},
		{"GET", BasePath + "/orders/DB-1/deliveries"},
		{"POST", BasePath + "/orders/DB-1/pay"},
		{"GET", BasePath + "/settings/public"},
		{"POST", BasePath + "/payments/barion/callback"},
		{"POST", BasePath + "/payments/stripe/webhook"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, tt.url, strings.NewReader(""))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.NotEqual(t, "404 page not found", w.Body.String(), "Route should be registered")
			assert.Contains(t, w.Body.String(), "{")
		})
	}
}

// TestSetupRoutes_AdminRoutesRequireKey verifies that every back-office route is
// registered behind the admin key check.
func TestSetupRoutes_AdminRoutesRequireKey(t *testing.T) {
	r := setupTestRouter()

	tests := []struct {
		method string
		url    string
	}{
		{"POST", "/products"},
		{"GET", "/products"},
		{"GET", "/products/p1"},
		{"PUT", "/products/p1"},
		{"POST", "/products/p1/active"},
		{"POST", "/products/p1/stock"},
		{"DELETE", "/products/p1"},
		{"POST", "/coupons"},
		{"GET", "/coupons"},
		{"GET", "/coupons/c1"},
		{"PUT", "/coupons/c1"},
		{"DELETE", "/coupons/c1"},
		{"GET", "/settings"},
		{"PUT", "/settings"},
		{"GET", "/orders"},
		{"GET", "/orders/o1"},
		{"POST", "/orders/o1/status"},
		{"POST", "/orders/o1/cancel"},
		{"GET", "/orders/o1/deliveries"},
		{"GET", "/orders/o1/payment-groups"},
		{"GET", "/deliveries"},
		{"POST", "/deliveries/d1/delivered"},
		{"POST", "/deliveries/d1/skip"},
		{"POST", "/deliveries/d1/reschedule"},
		{"GET", "/payment-groups"},
		{"GET", "/payment-groups/overdue"},
		{"POST", "/payment-groups/g1/bill-created"},
		{"POST", "/payment-groups/g1/bill-sent"},
		{"POST", "/payment-groups/g1/paid"},
		{"GET", "/customers"},
		{"GET", "/customers/u1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req, _ := http.NewRequest(tt.method, BasePath+AdminPath+tt.url, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code, "Route should be registered behind admin auth")
		})
	}
}

func TestSetupRoutes_AdminKeyGrantsAccess(t *testing.T) {
	r := setupTestRouter()

	req, _ := http.NewRequest("GET", BasePath+AdminPath+"/settings", nil)
	req.Header.Set(AdminKeyHeader, testAdminKey)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "delivery_weekdays")
}
