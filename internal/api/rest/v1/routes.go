package v1

import (
	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/carts"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

// Services bundles the application services behind the version 1 routes.
// BarionCallback and StripeWebhook stay nil when their provider is disabled.
type Services struct {
	Catalog        catalog.ProductCatalogService
	ProductAdmin   catalog.ProductAdminService
	Carts          carts.CartService
	Checkout       orders.CheckoutService
	Orders         orders.OrderService
	Deliveries     deliveries.DeliveryService
	PaymentGroups  billing.PaymentGroupService
	Coupons        coupons.CouponService
	Customers      customers.CustomerService
	Settings       settings.ShopSettingsService
	BarionCallback payments.BarionCallbackService
	StripeWebhook  payments.StripeWebhookService
}

// RouteOptions carries the middleware settings of the routes.
type RouteOptions struct {
	AdminAPIKey string
	Session     *CartSession
	RateLimiter *RateLimiter
	Payments    config.PaymentSettings
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services Services, options RouteOptions) {
	v1 := r.Group(BasePath) // lookup in version file

	limited := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if options.RateLimiter == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{options.RateLimiter.Middleware(), handler}
	}

	// Catalog Routes
	productHandler := NewProductHandler(services.Catalog)
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.GetByID)
	v1.GET("/products/slug/:slug", productHandler.GetBySlug)

	// Cart Routes
	cartHandler := NewCartHandler(services.Carts, options.Session)
	v1.POST("/carts", cartHandler.Create)
	v1.GET("/carts/current", cartHandler.Get)
	v1.POST("/carts/current/items", cartHandler.AddItem)
	v1.PATCH("/carts/current/items/:productId", cartHandler.UpdateItem)
	v1.DELETE("/carts/current/items/:productId", cartHandler.RemoveItem)
	v1.POST("/carts/current/coupon", limited(cartHandler.ApplyCoupon)...)
	v1.DELETE("/carts/current/coupon", cartHandler.RemoveCoupon)
	v1.GET("/carts/current/quote", cartHandler.Quote)

	// Checkout and Order Routes
	checkoutHandler := NewCheckoutHandler(services.Checkout, services.Orders, services.Deliveries, options.Session)
	v1.POST("/checkout", limited(checkoutHandler.Checkout)...)
	v1.GET("/orders/:number", checkoutHandler.GetOrder)
	v1.GET("/orders/:number/deliveries", checkoutHandler.ListOrderDeliveries)
	v1.POST("/orders/:number/pay", limited(checkoutHandler.Pay)...)

	// Settings Routes
	settingsHandler := NewSettingsHandler(services.Settings, options.Payments)
	v1.GET("/settings/public", settingsHandler.GetPublic)

	// Payment Provider Routes
	paymentHandler := NewPaymentHandler(services.BarionCallback, services.StripeWebhook)
	v1.POST("/payments/barion/callback", limited(paymentHandler.BarionCallback)...)
	v1.GET("/payments/barion/callback", limited(paymentHandler.BarionCallback)...)
	v1.POST("/payments/stripe/webhook", limited(paymentHandler.StripeWebhook)...)

	admin := v1.Group(AdminPath, AdminAuth(options.AdminAPIKey))

	// Admin Product Routes
	productAdminHandler := NewProductAdminHandler(services.ProductAdmin)
	admin.POST("/products", productAdminHandler.Create)
	admin.GET("/products", productAdminHandler.List)
	admin.GET("/products/:id", productAdminHandler.GetByID)
	admin.PUT("/products/:id", productAdminHandler.Update)
	admin.POST("/products/:id/active", productAdminHandler.SetActive)
	admin.POST("/products/:id/stock", productAdminHandler.AdjustStock)
	admin.DELETE("/products/:id", productAdminHandler.DeleteByID)

	// Admin Coupon Routes
	couponHandler := NewCouponHandler(services.Coupons)
	admin.POST("/coupons", couponHandler.Create)
	admin.GET("/coupons", couponHandler.List)
	admin.GET("/coupons/:id", couponHandler.GetByID)
	admin.PUT("/coupons/:id", couponHandler.Update)
	admin.DELETE("/coupons/:id", couponHandler.DeleteByID)

	// Admin Settings Routes
	admin.GET("/settings", settingsHandler.Get)
	admin.PUT("/settings", settingsHandler.Update)

	// Admin Order Routes
	orderHandler := NewOrderAdminHandler(services.Orders, services.Deliveries, services.PaymentGroups)
	admin.GET("/orders", orderHandler.List)
	admin.GET("/orders/:id", orderHandler.GetByID)
	admin.POST("/orders/:id/status", orderHandler.UpdateStatus)
	admin.POST("/orders/:id/cancel", orderHandler.Cancel)
	admin.GET("/orders/:id/deliveries", orderHandler.ListDeliveries)
	admin.GET("/orders/:id/payment-groups", orderHandler.ListPaymentGroups)

	// Admin Delivery Routes
	deliveryHandler := NewDeliveryHandler(services.Deliveries)
	admin.GET("/deliveries", deliveryHandler.ListDue)
	admin.POST("/deliveries/:id/delivered", deliveryHandler.MarkDelivered)
	admin.POST("/deliveries/:id/skip", deliveryHandler.Skip)
	admin.POST("/deliveries/:id/reschedule", deliveryHandler.Reschedule)

	// Admin Billing Routes
	paymentGroupHandler := NewPaymentGroupHandler(services.PaymentGroups)
	admin.GET("/payment-groups", paymentGroupHandler.ListPending)
	admin.GET("/payment-groups/overdue", paymentGroupHandler.Overdue)
	admin.POST("/payment-groups/:id/bill-created", paymentGroupHandler.MarkBillCreated)
	admin.POST("/payment-groups/:id/bill-sent", paymentGroupHandler.MarkBillSent)
	admin.POST("/payment-groups/:id/paid", paymentGroupHandler.MarkPaid)

	// Admin Customer Routes
	customerHandler := NewCustomerHandler(services.Customers)
	admin.GET("/customers", customerHandler.List)
	admin.GET("/customers/:id", customerHandler.GetByID)
}
