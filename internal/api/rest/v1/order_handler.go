package v1

import (
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// OrderAdminHandler defines the interface for the back-office order routes
type OrderAdminHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	UpdateStatus(ctx *gin.Context)
	Cancel(ctx *gin.Context)
	ListDeliveries(ctx *gin.Context)
	ListPaymentGroups(ctx *gin.Context)
}

type orderAdminHandler struct {
	orderService        orders.OrderService
	deliveryService     deliveries.DeliveryService
	paymentGroupService billing.PaymentGroupService
}

// NewOrderAdminHandler creates a new OrderAdminHandler
func NewOrderAdminHandler(orderService orders.OrderService, deliveryService deliveries.DeliveryService, paymentGroupService billing.PaymentGroupService) OrderAdminHandler {
	return &orderAdminHandler{
		orderService:        orderService,
		deliveryService:     deliveryService,
		paymentGroupService: paymentGroupService,
	}
}

// List handles the GET request listing orders
// @Summary List orders
// @Description Fetch orders filtered by status, kind, customer and creation time, with pagination.
// @Tags Admin
// @Produce json
// @Param X-Admin-Key header string true "Admin API key"
// @Param status query string false "Order status"
// @Param kind query string false "one_time or subscription"
// @Param customerId query string false "Customer ID"
// @Param from query string false "Created at or after (YYYY-MM-DD or RFC3339)"
// @Param to query string false "Created before (YYYY-MM-DD or RFC3339)"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Success 200 {array} OrderResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/orders [get]
func (handler *orderAdminHandler) List(ctx *gin.Context) {
	query := &orders.OrderQuery{
		Status:     orders.Status(ctx.Query("status")),
		Kind:       orders.Kind(ctx.Query("kind")),
		CustomerID: ctx.Query("customerId"),
		Limit:      queryInt(ctx, "limit", 50),
		Offset:     queryInt(ctx, "offset", 0),
	}
	var err error
	if query.From, err = queryDate(ctx, "from"); err != nil {
		respondError(ctx, err)
		return
	}
	if query.To, err = queryDate(ctx, "to"); err != nil {
		respondError(ctx, err)
		return
	}

	list, err := handler.orderService.List(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	listResponse := []OrderResponse{}
	for _, o := range list {
		listResponse = append(listResponse, NewOrderResponse(o))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *orderAdminHandler) GetByID(ctx *gin.Context) {
	order, err := handler.orderService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewOrderResponse(order))
}

// UpdateStatus handles the POST request moving an order to another status
// @Summary Change the status of an order
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Admin API key"
// @Param id path string true "Order ID"
// @Param requestBody body UpdateStatusRequest true "Target status"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/orders/{id}/status [post]
func (handler *orderAdminHandler) UpdateStatus(ctx *gin.Context) {
	var request UpdateStatusRequest
	if !bindJSON(ctx, &request) {
		return
	}
	handler.transition(ctx, orders.Status(request.Status))
}

func (handler *orderAdminHandler) Cancel(ctx *gin.Context) {
	handler.transition(ctx, orders.StatusCancelled)
}

func (handler *orderAdminHandler) transition(ctx *gin.Context, status orders.Status) {
	var (
		order *orders.Order
		err   error
	)
	if status == orders.StatusCancelled {
		order, err = handler.orderService.Cancel(ctx, ctx.Param("id"))
	} else {
		order, err = handler.orderService.UpdateStatus(ctx, ctx.Param("id"), status)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	metrics.OrderTransitionsTotal.WithLabelValues(string(status)).Inc()
	ctx.JSON(http.StatusOK, NewOrderResponse(order))
}

func (handler *orderAdminHandler) ListDeliveries(ctx *gin.Context) {
	list, err := handler.deliveryService.ListByOrder(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewDeliveryResponses(list))
}

func (handler *orderAdminHandler) ListPaymentGroups(ctx *gin.Context) {
	list, err := handler.paymentGroupService.ListByOrder(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewPaymentGroupResponses(list))
}
