package v1

import (
	"fmt"
	"io"
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// MaxWebhookBodyBytes caps the size of provider notifications.
const MaxWebhookBodyBytes = 64 << 10

// StripeSignatureHeader carries the webhook signature Stripe computes.
const StripeSignatureHeader = "Stripe-Signature"

// PaymentHandler defines the interface for the payment provider notification routes
type PaymentHandler interface {
	BarionCallback(ctx *gin.Context)
	StripeWebhook(ctx *gin.Context)
}

type paymentHandler struct {
	barionService payments.BarionCallbackService
	stripeService payments.StripeWebhookService
}

// NewPaymentHandler creates a new PaymentHandler. A nil service marks its provider as disabled.
func NewPaymentHandler(barionService payments.BarionCallbackService, stripeService payments.StripeWebhookService) PaymentHandler {
	return &paymentHandler{barionService: barionService, stripeService: stripeService}
}

func recordNotification(provider payments.Provider, event *payments.PaymentEvent) {
	status := "ignored"
	if event != nil {
		status = string(event.MappedStatus)
	}
	metrics.PaymentNotificationsTotal.WithLabelValues(string(provider), status).Inc()
}

// BarionCallback handles the server to server callback Barion sends on payment state changes
// @Summary Barion payment callback
// @Description Barion posts only the payment ID; the state is queried back from Barion.
// @Tags Payment
// @Produce json
// @Param paymentId query string true "Barion payment ID"
// @Success 200 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /payments/barion/callback [post]
func (handler *paymentHandler) BarionCallback(ctx *gin.Context) {
	if handler.barionService == nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "barion payments are not enabled"})
		return
	}

	paymentID := ctx.Query("paymentId")
	if paymentID == "" {
		paymentID = ctx.Query("PaymentId")
	}
	if paymentID == "" {
		paymentID = ctx.PostForm("PaymentId")
	}

	event, err := handler.barionService.HandleCallback(ctx, paymentID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	recordNotification(payments.ProviderBarion, event)
	ctx.JSON(http.StatusOK, InfoResponse{Message: fmt.Sprintf("payment %s processed", paymentID)})
}

// StripeWebhook handles signed Stripe webhook events
// @Summary Stripe webhook
// @Tags Payment
// @Accept json
// @Produce json
// @Param Stripe-Signature header string true "Stripe signature"
// @Success 200 {object} InfoResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /payments/stripe/webhook [post]
func (handler *paymentHandler) StripeWebhook(ctx *gin.Context) {
	if handler.stripeService == nil {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "stripe payments are not enabled"})
		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, MaxWebhookBodyBytes))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "unreadable webhook body"})
		return
	}

	event, err := handler.stripeService.HandleWebhook(ctx, payload, ctx.GetHeader(StripeSignatureHeader))
	if err != nil {
		respondError(ctx, err)
		return
	}
	recordNotification(payments.ProviderStripe, event)
	if event == nil {
		ctx.JSON(http.StatusOK, InfoResponse{Message: "event ignored"})
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: fmt.Sprintf("event for order %s processed", event.OrderID)})
}
