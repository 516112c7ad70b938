package v1

import (
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/settings"
	"github.com/drinkbox/storefront/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PublicSettingsResponse is the part of the shop settings storefront clients need
type PublicSettingsResponse struct {
	ShopOpen                    bool            `json:"shop_open"`
	Currency                    string          `json:"currency"`
	ShippingFee                 decimal.Decimal `json:"shipping_fee"`
	FreeShippingThreshold       decimal.Decimal `json:"free_shipping_threshold"`
	DeliveryWeekdays            []string        `json:"delivery_weekdays"`
	MinLeadDays                 int             `json:"min_lead_days"`
	MaxSubscriptionDeliveries   int             `json:"max_subscription_deliveries"`
	SubscriptionDiscountPercent decimal.Decimal `json:"subscription_discount_percent"`
	PaymentMethods              []string        `json:"payment_methods"`
}

// SettingsHandler defines the interface for the shop settings routes
type SettingsHandler interface {
	GetPublic(ctx *gin.Context)
	Get(ctx *gin.Context)
	Update(ctx *gin.Context)
}

type settingsHandler struct {
	settingsService settings.ShopSettingsService
	paymentMethods  []string
}

// NewSettingsHandler creates a new SettingsHandler. paymentMethods lists the
// checkout payment methods enabled by configuration.
func NewSettingsHandler(settingsService settings.ShopSettingsService, payments config.PaymentSettings) SettingsHandler {
	methods := []string{}
	if payments.Barion.Enabled {
		methods = append(methods, "barion")
	}
	if payments.Stripe.Enabled {
		methods = append(methods, "stripe")
	}
	methods = append(methods, "bank_transfer", "cash_on_delivery")
	return &settingsHandler{settingsService: settingsService, paymentMethods: methods}
}

// GetPublic handles the GET request for the storefront settings
// @Summary Storefront settings
// @Description Shop status, shipping rules, delivery weekdays and the enabled payment methods.
// @Tags Settings
// @Produce json
// @Success 200 {object} PublicSettingsResponse
// @Router /settings/public [get]
func (handler *settingsHandler) GetPublic(ctx *gin.Context) {
	s, err := handler.settingsService.Get(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, PublicSettingsResponse{
		ShopOpen:                    s.ShopOpen,
		Currency:                    s.Currency,
		ShippingFee:                 s.ShippingFee,
		FreeShippingThreshold:       s.FreeShippingThreshold,
		DeliveryWeekdays:            weekdayNames(s.SortedWeekdays()),
		MinLeadDays:                 s.MinLeadDays,
		MaxSubscriptionDeliveries:   s.MaxSubscriptionDeliveries,
		SubscriptionDiscountPercent: s.SubscriptionDiscountPercent,
		PaymentMethods:              handler.paymentMethods,
	})
}

func (handler *settingsHandler) Get(ctx *gin.Context) {
	s, err := handler.settingsService.Get(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewSettingsResponse(s))
}

// Update handles the PUT request replacing the shop settings
// @Summary Replace the shop settings
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Admin API key"
// @Param requestBody body SettingsRequest true "Shop settings"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/settings [put]
func (handler *settingsHandler) Update(ctx *gin.Context) {
	var request SettingsRequest
	if !bindJSON(ctx, &request) {
		return
	}
	updated, err := request.ToDomain()
	if err != nil {
		respondError(ctx, err)
		return
	}
	s, err := handler.settingsService.Update(ctx, updated)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewSettingsResponse(s))
}
