package v1

import (
	"errors"
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// PaymentStartFailedResponse is answered when the order exists but its online
// payment could not be started. The payment can be retried with POST /orders/:number/pay.
type PaymentStartFailedResponse struct {
	Message     string        `json:"message"`
	OrderNumber string        `json:"order_number"`
	Order       OrderResponse `json:"order"`
}

// CheckoutHandler defines the interface for checkout and the public order routes
type CheckoutHandler interface {
	Checkout(ctx *gin.Context)
	GetOrder(ctx *gin.Context)
	ListOrderDeliveries(ctx *gin.Context)
	Pay(ctx *gin.Context)
}

type checkoutHandler struct {
	checkoutService orders.CheckoutService
	orderService    orders.OrderService
	deliveryService deliveries.DeliveryService
	session         *CartSession
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService orders.CheckoutService, orderService orders.OrderService, deliveryService deliveries.DeliveryService, session *CartSession) CheckoutHandler {
	return &checkoutHandler{
		checkoutService: checkoutService,
		orderService:    orderService,
		deliveryService: deliveryService,
		session:         session,
	}
}

func paymentResult(err error) string {
	if err != nil {
		return "failed"
	}
	return "started"
}

// Checkout handles the POST request turning the current cart into an order
// @Summary Check out the current cart
// @Description Creates the order with its delivery schedule and payment plan. Online payment methods answer with the provider's redirect URL.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param requestBody body CheckoutRequest true "Checkout"
// @Success 201 {object} CheckoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} PaymentStartFailedResponse
// @Router /checkout [post]
func (handler *checkoutHandler) Checkout(ctx *gin.Context) {
	cartID := handler.session.CartID(ctx)
	if cartID == "" {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "no cart in session"})
		return
	}

	var request CheckoutRequest
	if !bindJSON(ctx, &request) {
		return
	}
	checkout, err := request.ToDomain(cartID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	result, err := handler.checkoutService.Checkout(ctx, checkout)
	if result == nil {
		respondError(ctx, err)
		return
	}

	order := result.Order
	metrics.OrdersCreatedTotal.WithLabelValues(string(order.Kind), string(order.PaymentMethod)).Inc()
	if order.PaymentMethod.Online() {
		metrics.PaymentStartsTotal.WithLabelValues(string(order.PaymentMethod), paymentResult(err)).Inc()
	}
	// The cart is consumed by the order even when the payment start failed.
	if serr := handler.session.SetCartID(ctx, ""); serr != nil {
		_ = ctx.Error(serr)
	}

	if err != nil {
		if errors.Is(err, orders.ErrPaymentStartFailed) {
			ctx.JSON(http.StatusBadGateway, PaymentStartFailedResponse{
				Message:     err.Error(),
				OrderNumber: order.Number,
				Order:       NewOrderResponse(order),
			})
			return
		}
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, CheckoutResponse{
		Order:         NewOrderResponse(order),
		Deliveries:    NewDeliveryResponses(result.Deliveries),
		PaymentGroups: NewPaymentGroupResponses(result.PaymentGroups),
		RedirectURL:   result.RedirectURL,
	})
}

// GetOrder handles the GET request retrieving an order by its number
// @Summary Retrieve an order by number
// @Tags Order
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} OrderResponse
// @Failure 404 {object} ErrorResponse
// @Router /orders/{number} [get]
func (handler *checkoutHandler) GetOrder(ctx *gin.Context) {
	order, err := handler.orderService.GetByNumber(ctx, ctx.Param("number"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewOrderResponse(order))
}

func (handler *checkoutHandler) ListOrderDeliveries(ctx *gin.Context) {
	order, err := handler.orderService.GetByNumber(ctx, ctx.Param("number"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	list, err := handler.deliveryService.ListByOrder(ctx, order.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewDeliveryResponses(list))
}

// Pay handles the POST request restarting the online payment of an order
// @Summary Restart the online payment of an order
// @Tags Order
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} PaymentRedirectResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /orders/{number}/pay [post]
func (handler *checkoutHandler) Pay(ctx *gin.Context) {
	number := ctx.Param("number")
	redirectURL, err := handler.checkoutService.StartPayment(ctx, number)
	if err != nil && !errors.Is(err, orders.ErrPaymentStartFailed) {
		respondError(ctx, err)
		return
	}
	order, gerr := handler.orderService.GetByNumber(ctx, number)
	if gerr == nil {
		metrics.PaymentStartsTotal.WithLabelValues(string(order.PaymentMethod), paymentResult(err)).Inc()
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, PaymentRedirectResponse{OrderNumber: number, RedirectURL: redirectURL})
}
