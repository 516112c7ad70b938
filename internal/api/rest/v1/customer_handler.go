package v1

import (
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/customers"

	"github.com/gin-gonic/gin"
)

// CustomerHandler defines the interface for the back-office customer routes
type CustomerHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
}

type customerHandler struct {
	customerService customers.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService customers.CustomerService) CustomerHandler {
	return &customerHandler{customerService: customerService}
}

func (handler *customerHandler) List(ctx *gin.Context) {
	query := &customers.CustomerQuery{
		Email:  ctx.Query("email"),
		Limit:  queryInt(ctx, "limit", 50),
		Offset: queryInt(ctx, "offset", 0),
	}
	list, err := handler.customerService.List(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	listResponse := []CustomerResponse{}
	for _, c := range list {
		listResponse = append(listResponse, NewCustomerResponse(c))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

func (handler *customerHandler) GetByID(ctx *gin.Context) {
	customer, err := handler.customerService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewCustomerResponse(customer))
}
