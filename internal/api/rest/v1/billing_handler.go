package v1

import (
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

// PaymentGroupHandler defines the interface for the back-office billing routes
type PaymentGroupHandler interface {
	ListPending(ctx *gin.Context)
	Overdue(ctx *gin.Context)
	MarkBillCreated(ctx *gin.Context)
	MarkBillSent(ctx *gin.Context)
	MarkPaid(ctx *gin.Context)
}

type paymentGroupHandler struct {
	paymentGroupService billing.PaymentGroupService
}

// NewPaymentGroupHandler creates a new PaymentGroupHandler
func NewPaymentGroupHandler(paymentGroupService billing.PaymentGroupService) PaymentGroupHandler {
	return &paymentGroupHandler{paymentGroupService: paymentGroupService}
}

// ListPending handles the GET request listing payment groups
// @Summary List payment groups
// @Description Without the paid filter only unpaid groups are listed.
// @Tags Admin
// @Produce json
// @Param X-Admin-Key header string true "Admin API key"
// @Param orderId query string false "Order ID"
// @Param dueBefore query string false "Due before (YYYY-MM-DD)"
// @Param billCreated query bool false "Bill created"
// @Param billSent query bool false "Bill sent"
// @Param paid query bool false "Paid"
// @Success 200 {array} PaymentGroupResponse
// @Failure 400 {object} ErrorResponse
// @Router /admin/payment-groups [get]
func (handler *paymentGroupHandler) ListPending(ctx *gin.Context) {
	query := &billing.PaymentGroupQuery{
		OrderID: ctx.Query("orderId"),
		Limit:   queryInt(ctx, "limit", 100),
		Offset:  queryInt(ctx, "offset", 0),
	}
	var err error
	if query.DueBefore, err = queryDate(ctx, "dueBefore"); err != nil {
		respondError(ctx, err)
		return
	}
	if query.BillCreated, err = queryBool(ctx, "billCreated"); err != nil {
		respondError(ctx, err)
		return
	}
	if query.BillSent, err = queryBool(ctx, "billSent"); err != nil {
		respondError(ctx, err)
		return
	}
	if query.Paid, err = queryBool(ctx, "paid"); err != nil {
		respondError(ctx, err)
		return
	}

	list, err := handler.paymentGroupService.ListPending(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewPaymentGroupResponses(list))
}

func (handler *paymentGroupHandler) Overdue(ctx *gin.Context) {
	list, err := handler.paymentGroupService.Overdue(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewPaymentGroupResponses(list))
}

func (handler *paymentGroupHandler) MarkBillCreated(ctx *gin.Context) {
	handler.respond(ctx)(handler.paymentGroupService.MarkBillCreated(ctx, ctx.Param("id")))
}

func (handler *paymentGroupHandler) MarkBillSent(ctx *gin.Context) {
	handler.respond(ctx)(handler.paymentGroupService.MarkBillSent(ctx, ctx.Param("id")))
}

func (handler *paymentGroupHandler) MarkPaid(ctx *gin.Context) {
	handler.respond(ctx)(handler.paymentGroupService.MarkPaid(ctx, ctx.Param("id")))
}

func (handler *paymentGroupHandler) respond(ctx *gin.Context) func(*billing.PaymentGroup, error) {
	return func(group *billing.PaymentGroup, err error) {
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, NewPaymentGroupResponse(group))
	}
}
