package v1

import (
	"errors"
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/billing"
	"github.com/drinkbox/storefront/internal/domain/carts"
	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/domain/customers"
	"github.com/drinkbox/storefront/internal/domain/deliveries"
	"github.com/drinkbox/storefront/internal/domain/orders"
	"github.com/drinkbox/storefront/internal/domain/payments"
	"github.com/drinkbox/storefront/internal/pkg/validators"

	"github.com/gin-gonic/gin"
)

var errorStatuses = []struct {
	err    error
	status int
}{
	{catalog.ErrNotFound, http.StatusNotFound},
	{carts.ErrNotFound, http.StatusNotFound},
	{carts.ErrItemNotFound, http.StatusNotFound},
	{coupons.ErrNotFound, http.StatusNotFound},
	{customers.ErrNotFound, http.StatusNotFound},
	{orders.ErrNotFound, http.StatusNotFound},
	{deliveries.ErrNotFound, http.StatusNotFound},
	{billing.ErrNotFound, http.StatusNotFound},
	{payments.ErrUnknownPayment, http.StatusNotFound},

	{orders.ErrInvalidTransition, http.StatusConflict},
	{orders.ErrNotPayable, http.StatusConflict},
	{catalog.ErrDuplicateSlug, http.StatusConflict},
	{catalog.ErrInsufficientStock, http.StatusConflict},
	{coupons.ErrDuplicateCode, http.StatusConflict},
	{deliveries.ErrNotScheduled, http.StatusConflict},
	{billing.ErrAlreadyPaid, http.StatusConflict},
	{billing.ErrVoided, http.StatusConflict},

	{orders.ErrPaymentStartFailed, http.StatusBadGateway},
	{payments.ErrUnknownProviderStatus, http.StatusBadGateway},

	{validators.ErrValidation, http.StatusBadRequest},
	{carts.ErrInvalidQuantity, http.StatusBadRequest},
	{catalog.ErrProductInactive, http.StatusBadRequest},
	{coupons.ErrCouponExpired, http.StatusBadRequest},
	{coupons.ErrCouponUsageExceeded, http.StatusBadRequest},
	{coupons.ErrCouponMinimumNotMet, http.StatusBadRequest},
	{coupons.ErrCouponNotApplicable, http.StatusBadRequest},
	{orders.ErrEmptyCart, http.StatusBadRequest},
	{orders.ErrShopClosed, http.StatusBadRequest},
	{orders.ErrNotSubscribable, http.StatusBadRequest},
	{orders.ErrInvalidCheckout, http.StatusBadRequest},
	{deliveries.ErrInvalidDate, http.StatusBadRequest},
	{deliveries.ErrInvalidRecurrence, http.StatusBadRequest},
	{deliveries.ErrInvalidCount, http.StatusBadRequest},
	{deliveries.ErrNoDeliveryWeekdays, http.StatusBadRequest},
	{billing.ErrBillNotCreated, http.StatusBadRequest},
	{payments.ErrInvalidSignature, http.StatusBadRequest},
	{payments.ErrProviderDisabled, http.StatusBadRequest},
}

// StatusFor maps a service error onto an HTTP status code.
func StatusFor(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

func respondError(ctx *gin.Context, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		_ = ctx.Error(err)
		msg = "internal server error"
	}
	ctx.JSON(status, ErrorResponse{Message: msg})
}

// bindJSON decodes and validates the request body, answering 400 on failure.
func bindJSON(ctx *gin.Context, request interface{ Validate() error }) bool {
	if err := ctx.ShouldBindJSON(request); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body: " + err.Error()})
		return false
	}
	if err := request.Validate(); err != nil {
		ctx.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return false
	}
	return true
}
