package v1

import (
	"fmt"
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/coupons"
	"github.com/drinkbox/storefront/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CouponHandler defines the interface for the back-office coupon routes
type CouponHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type couponHandler struct {
	couponService coupons.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService coupons.CouponService) CouponHandler {
	return &couponHandler{couponService: couponService}
}

// Create handles the POST request creating a coupon
// @Summary Create a coupon
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Admin API key"
// @Param requestBody body CouponRequest true "Coupon"
// @Success 201 {object} CouponResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/coupons [post]
func (handler *couponHandler) Create(ctx *gin.Context) {
	var request CouponRequest
	if !bindJSON(ctx, &request) {
		return
	}
	coupon, err := handler.couponService.Create(ctx, request.ToDomain(uuid.New().String()))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, NewCouponResponse(coupon))
}

func (handler *couponHandler) List(ctx *gin.Context) {
	query := &coupons.CouponQuery{
		ActiveOnly: strutil.ConvertToBool(ctx.Query("active")),
		Limit:      queryInt(ctx, "limit", 50),
		Offset:     queryInt(ctx, "offset", 0),
	}
	list, err := handler.couponService.List(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	listResponse := []CouponResponse{}
	for _, c := range list {
		listResponse = append(listResponse, NewCouponResponse(c))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *couponHandler) GetByID(ctx *gin.Context) {
	coupon, err := handler.couponService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewCouponResponse(coupon))
}

// Update replaces a coupon. The code and usage count stay as they are.
func (handler *couponHandler) Update(ctx *gin.Context) {
	var request CouponRequest
	if !bindJSON(ctx, &request) {
		return
	}
	coupon, err := handler.couponService.Update(ctx, request.ToDomain(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewCouponResponse(coupon))
}

func (handler *couponHandler) DeleteByID(ctx *gin.Context) {
	couponID := ctx.Param("id")
	if err := handler.couponService.DeleteByID(ctx, couponID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: fmt.Sprintf("deleted coupon with id %s", couponID)})
}
