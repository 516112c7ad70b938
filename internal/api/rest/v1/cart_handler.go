package v1

import (
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/carts"
	"github.com/drinkbox/storefront/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
)

// CartHandler defines the interface for the shopping cart routes
type CartHandler interface {
	Create(ctx *gin.Context)
	Get(ctx *gin.Context)
	AddItem(ctx *gin.Context)
	UpdateItem(ctx *gin.Context)
	RemoveItem(ctx *gin.Context)
	ApplyCoupon(ctx *gin.Context)
	RemoveCoupon(ctx *gin.Context)
	Quote(ctx *gin.Context)
}

type cartHandler struct {
	cartService carts.CartService
	session     *CartSession
}

// NewCartHandler creates a new CartHandler. A nil session limits carts to the X-Cart-ID header.
func NewCartHandler(cartService carts.CartService, session *CartSession) CartHandler {
	return &cartHandler{cartService: cartService, session: session}
}

// currentCartID answers 404 when the request carries no cart.
func (handler *cartHandler) currentCartID(ctx *gin.Context) (string, bool) {
	cartID := handler.session.CartID(ctx)
	if cartID == "" {
		ctx.JSON(http.StatusNotFound, ErrorResponse{Message: "no cart in session"})
		return "", false
	}
	return cartID, true
}

func (handler *cartHandler) respondCart(ctx *gin.Context, status int, cart *carts.Cart, err error) {
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(status, NewCartResponse(cart))
}

// Create handles the POST request opening a new cart
// @Summary Create a cart
// @Description Creates an empty cart and stores its ID in the session cookie.
// @Tags Cart
// @Produce json
// @Success 201 {object} CartResponse
// @Router /carts [post]
func (handler *cartHandler) Create(ctx *gin.Context) {
	cart, err := handler.cartService.Create(ctx)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if err := handler.session.SetCartID(ctx, cart.ID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, NewCartResponse(cart))
}

func (handler *cartHandler) Get(ctx *gin.Context) {
	cartID, ok := handler.currentCartID(ctx)
	if !ok {
		return
	}
	cart, err := handler.cartService.Get(ctx, cartID)
	handler.respondCart(ctx, http.StatusOK, cart, err)
}

// AddItem handles the POST request adding a product to the current cart
// @Summary Add a product to the cart
// @Tags Cart
// @Accept json
// @Produce json
// @Param requestBody body AddItemRequest true "Cart item"
// @Success 200 {object} CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /carts/current/items [post]
func (handler *cartHandler) AddItem(ctx *gin.Context) {
	cartID, ok := handler.currentCartID(ctx)
	if !ok {
		return
	}
	var request AddItemRequest
	if !bindJSON(ctx, &request) {
		return
	}
	cart, err := handler.cartService.AddItem(ctx, cartID, request.ProductID, request.Quantity)
	handler.respondCart(ctx, http.StatusOK, cart, err)
}

func (handler *cartHandler) UpdateItem(ctx *gin.Context) {
	cartID, ok := handler.currentCartID(ctx)
	if !ok {
		return
	}
	var request UpdateItemRequest
	if !bindJSON(ctx, &request) {
		return
	}
	cart, err := handler.cartService.UpdateItem(ctx, cartID, ctx.Param("productId"), request.Quantity)
	handler.respondCart(ctx, http.StatusOK, cart, err)
}

func (handler *cartHandler) RemoveItem(ctx *gin.Context) {
	cartID, ok := handler.currentCartID(ctx)
	if !ok {
		return
	}
	cart, err := handler.cartService.RemoveItem(ctx, cartID, ctx.Param("productId"))
	handler.respondCart(ctx, http.StatusOK, cart, err)
}

func (handler *cartHandler) ApplyCoupon(ctx *gin.Context) {
	cartID, ok := handler.currentCartID(ctx)
	if !ok {
		return
	}
	var request ApplyCouponRequest
	if !bindJSON(ctx, &request) {
		return
	}
	cart, err := handler.cartService.ApplyCoupon(ctx, cartID, request.Code)
	handler.respondCart(ctx, http.StatusOK, cart, err)
}

func (handler *cartHandler) RemoveCoupon(ctx *gin.Context) {
	cartID, ok := handler.currentCartID(ctx)
	if !ok {
		return
	}
	cart, err := handler.cartService.RemoveCoupon(ctx, cartID)
	handler.respondCart(ctx, http.StatusOK, cart, err)
}

// Quote handles the GET request pricing the current cart
// @Summary Price the cart
// @Description Prices the cart with current product prices, coupon, subscription discount and shipping.
// @Tags Cart
// @Produce json
// @Param subscription query bool false "Price as a subscription"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} ErrorResponse
// @Router /carts/current/quote [get]
func (handler *cartHandler) Quote(ctx *gin.Context) {
	cartID, ok := handler.currentCartID(ctx)
	if !ok {
		return
	}
	quote, err := handler.cartService.Quote(ctx, cartID, strutil.ConvertToBool(ctx.Query("subscription")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewQuoteResponse(quote))
}
