// cmd/storefront-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/drinkbox/storefront/internal/api/rest/v1"
	"github.com/drinkbox/storefront/internal/app"
	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/infrastructure/cache"
	"github.com/drinkbox/storefront/internal/infrastructure/metrics"
	"github.com/drinkbox/storefront/internal/infrastructure/payment"
	"github.com/drinkbox/storefront/internal/infrastructure/persistence"
	"github.com/drinkbox/storefront/internal/pkg/config"
	"github.com/drinkbox/storefront/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	redis    *goredis.Client
	services v1.Services
}

func (d *appDependencies) close(log logger.Logger) {
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Warn("failed to close redis client: ", err)
		}
	}
	if err := persistence.CloseDB(d.db); err != nil {
		log.Warn("failed to close database: ", err)
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	repos, err := persistence.NewRepositories(db, log)
	if err != nil {
		return nil, err
	}

	deps := &appDependencies{db: db}

	settingsCache, err := initializeSettingsCache(cfg.Redis, deps, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize settings cache: %w", err)
	}

	gateways, err := initializePaymentGateways(cfg.Payments, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize payment gateways: %w", err)
	}

	services, err := initializeApplicationServices(repos, settingsCache, gateways, clockwork.NewRealClock(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	deps.services = *services

	return deps, nil
}

// initializeSettingsCache connects to Redis when a URL is configured. Without
// one the settings service reads straight from the database.
func initializeSettingsCache(cfg config.RedisSettings, deps *appDependencies, log logger.Logger) (settings.ShopSettingsCache, error) {
	if cfg.URL == "" {
		log.Info("Redis not configured, settings cache disabled")
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb, err := cache.NewRedisClient(ctx, cfg.URL)
	if err != nil {
		return nil, err
	}
	deps.redis = rdb

	log.Info("Redis settings cache enabled")
	return cache.NewRedisSettingsCache(rdb, cfg.CacheTTL, log), nil
}

type paymentGateways struct {
	barion payments.BarionGateway
	stripe payments.StripeGateway
}

func (g *paymentGateways) list() []payments.Gateway {
	var list []payments.Gateway
	if g.barion != nil {
		list = append(list, g.barion)
	}
	if g.stripe != nil {
		list = append(list, g.stripe)
	}
	return list
}

// initializePaymentGateways creates the gateways of the enabled providers only
func initializePaymentGateways(cfg config.PaymentSettings, log logger.Logger) (*paymentGateways, error) {
	gateways := &paymentGateways{}

	if cfg.Barion.Enabled {
		barion, err := payment.NewBarionGateway(cfg.Barion, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create barion gateway: %w", err)
		}
		gateways.barion = barion
		log.Info("Barion payments enabled (", cfg.Barion.Environment, ")")
	}

	if cfg.Stripe.Enabled {
		stripe, err := payment.NewStripeGateway(cfg.Stripe, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create stripe gateway: %w", err)
		}
		gateways.stripe = stripe
		log.Info("Stripe payments enabled")
	}

	return gateways, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	repos *persistence.Repositories,
	settingsCache settings.ShopSettingsCache,
	gateways *paymentGateways,
	clock clockwork.Clock,
	log logger.Logger,
) (*v1.Services, error) {
	catalogService, err := app.NewProductCatalogService(repos.Products, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create product catalog service: %w", err)
	}

	productAdminService, err := app.NewProductAdminService(repos.Products, repos.Transactor, clock, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create product admin service: %w", err)
	}

	customerService, err := app.NewCustomerService(repos.Customers, clock, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer service: %w", err)
	}

	settingsService, err := app.NewShopSettingsService(repos.Settings, settingsCache, clock, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create settings service: %w", err)
	}

	couponService, err := app.NewCouponService(repos.Coupons, clock, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon service: %w", err)
	}

	cartService, err := app.NewCartService(repos.Carts, repos.Products, repos.Coupons, settingsService, clock, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart service: %w", err)
	}

	checkoutService, err := app.NewCheckoutService(
		repos.Transactor,
		repos.Carts, repos.Products, repos.Coupons,
		repos.Orders, repos.Deliveries, repos.PaymentGroups, repos.PaymentEvents,
		customerService, settingsService,
		gateways.list(), clock, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout service: %w", err)
	}

	orderService, err := app.NewOrderService(
		repos.Transactor, repos.Orders, repos.Products, repos.Deliveries, repos.PaymentGroups, clock, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %w", err)
	}

	deliveryService, err := app.NewDeliveryService(
		repos.Transactor, repos.Deliveries, repos.Orders, settingsService, clock, log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create delivery service: %w", err)
	}

	paymentGroupService, err := app.NewPaymentGroupService(repos.PaymentGroups, clock, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment group service: %w", err)
	}

	services := &v1.Services{
		Catalog:       catalogService,
		ProductAdmin:  productAdminService,
		Carts:         cartService,
		Checkout:      checkoutService,
		Orders:        orderService,
		Deliveries:    deliveryService,
		PaymentGroups: paymentGroupService,
		Coupons:       couponService,
		Customers:     customerService,
		Settings:      settingsService,
	}

	paymentRepos := app.PaymentRepositories{
		Orders:     repos.Orders,
		Products:   repos.Products,
		Deliveries: repos.Deliveries,
		Groups:     repos.PaymentGroups,
		Events:     repos.PaymentEvents,
	}

	if gateways.barion != nil {
		barionCallback, err := app.NewBarionCallbackService(gateways.barion, repos.Transactor, paymentRepos, clock, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create barion callback service: %w", err)
		}
		services.BarionCallback = barionCallback
	}

	if gateways.stripe != nil {
		stripeWebhook, err := app.NewStripeWebhookService(gateways.stripe, repos.Transactor, paymentRepos, clock, log)
		if err != nil {
			return nil, fmt.Errorf("failed to create stripe webhook service: %w", err)
		}
		services.StripeWebhook = stripeWebhook
	}

	log.Info("Application services initialized successfully")
	return services, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), v1.ErrorLogger(log), metrics.Middleware())

	// Configure CORS. Credentials are only allowed for explicit origins.
	allowCredentials := true
	for _, origin := range cfg.CORS.AllowOrigins {
		if origin == "*" {
			allowCredentials = false
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", v1.AdminKeyHeader, v1.CartIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		if err := persistence.Ping(c.Request.Context(), deps.db); err != nil {
			c.JSON(http.StatusServiceUnavailable, v1.ErrorResponse{Message: "database unavailable"})
			return
		}
		c.JSON(http.StatusOK, v1.InfoResponse{Message: "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	// Setup API routes
	v1.SetupRoutes(r, deps.services, v1.RouteOptions{
		AdminAPIKey: cfg.Admin.APIKey,
		Session:     v1.NewCartSession(cfg.Session.Secret, cfg.Session.MaxAgeDays, cfg.Session.Secure),
		RateLimiter: v1.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		Payments:    cfg.Payments,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
