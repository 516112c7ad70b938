package v1

import (
	"net/http"
	"time"

	"github.com/drinkbox/storefront/internal/domain/deliveries"

	"github.com/gin-gonic/gin"
)

// DeliveryHandler defines the interface for the back-office delivery routes
type DeliveryHandler interface {
	ListDue(ctx *gin.Context)
	MarkDelivered(ctx *gin.Context)
	Skip(ctx *gin.Context)
	Reschedule(ctx *gin.Context)
}

type deliveryHandler struct {
	deliveryService deliveries.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService deliveries.DeliveryService) DeliveryHandler {
	return &deliveryHandler{deliveryService: deliveryService}
}

// ListDue handles the GET request listing upcoming deliveries
// @Summary List due deliveries
// @Description Without filters the scheduled deliveries from today on are listed.
// @Tags Admin
// @Produce json
// @Param X-Admin-Key header string true "Admin API key"
// @Param from query string false "First date (YYYY-MM-DD)"
// @Param to query string false "Last date (YYYY-MM-DD)"
// @Param status query string false "Delivery status"
// @Param orderId query string false "Order ID"
// @Success 200 {array} DeliveryResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/deliveries [get]
func (handler *deliveryHandler) ListDue(ctx *gin.Context) {
	query := &deliveries.DeliveryQuery{
		OrderID: ctx.Query("orderId"),
		Status:  deliveries.Status(ctx.Query("status")),
		Limit:   queryInt(ctx, "limit", 100),
		Offset:  queryInt(ctx, "offset", 0),
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

	list, err := handler.deliveryService.ListDue(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewDeliveryResponses(list))
}

func (handler *deliveryHandler) MarkDelivered(ctx *gin.Context) {
	delivery, err := handler.deliveryService.MarkDelivered(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewDeliveryResponse(delivery))
}

// Skip answers with the replacement delivery appended to the schedule.
func (handler *deliveryHandler) Skip(ctx *gin.Context) {
	replacement, err := handler.deliveryService.Skip(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewDeliveryResponse(replacement))
}

func (handler *deliveryHandler) Reschedule(ctx *gin.Context) {
	var request RescheduleRequest
	if !bindJSON(ctx, &request) {
		return
	}
	date, err := time.Parse(DateLayout, request.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "date must be YYYY-MM-DD"})
		return
	}

	delivery, err := handler.deliveryService.Reschedule(ctx, ctx.Param("id"), date)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewDeliveryResponse(delivery))
}
