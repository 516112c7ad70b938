package v1

import (
	"fmt"
	"net/http"

	"github.com/drinkbox/storefront/internal/domain/catalog"
	"github.com/drinkbox/storefront/internal/pkg/strutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductHandler defines the interface for the public catalog routes
type ProductHandler interface {
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	GetBySlug(ctx *gin.Context)
}

type productHandler struct {
	catalogService catalog.ProductCatalogService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService catalog.ProductCatalogService) ProductHandler {
	return &productHandler{catalogService: catalogService}
}

func productQueryFrom(ctx *gin.Context) *catalog.ProductQuery {
	query := catalog.NewProductQuery()
	query.Name = ctx.Query("name")
	query.Category = ctx.Query("category")
	query.SubscriptionOnly = strutil.ConvertToBool(ctx.Query("subscription"))
	query.Limit = queryInt(ctx, "limit", query.Limit)
	query.Offset = queryInt(ctx, "offset", 0)
	query.SortBy = ctx.Query("sortBy")
	query.SortOrder = ctx.Query("sortOrder")
	return query
}

func productList(products []*catalog.Product) []ProductResponse {
	listResponse := []ProductResponse{}
	for _, p := range products {
		listResponse = append(listResponse, NewProductResponse(p))
	}
	return listResponse
}

// List handles the GET request listing active products
// @Summary List active products
// @Description Fetch active products filtered by name, category and subscription eligibility, with pagination and sorting options.
// @Tags Product
// @Produce json
// @Param name query string false "Name contains"
// @Param category query string false "Category"
// @Param subscription query bool false "Only subscription eligible products"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Router /products [get]
func (handler *productHandler) List(ctx *gin.Context) {
	products, err := handler.catalogService.List(ctx, productQueryFrom(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, productList(products))
}

// GetByID handles the GET request to retrieve an active product by ID
// @Summary Retrieve a product by ID
// @Tags Product
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductResponse
// @Failure 404 {object} ErrorResponse
// @Router /products/{id} [get]
func (handler *productHandler) GetByID(ctx *gin.Context) {
	product, err := handler.catalogService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewProductResponse(product))
}

// GetBySlug handles the GET request to retrieve an active product by slug
func (handler *productHandler) GetBySlug(ctx *gin.Context) {
	product, err := handler.catalogService.GetBySlug(ctx, ctx.Param("slug"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewProductResponse(product))
}

// ProductAdminHandler defines the interface for the back-office product routes
type ProductAdminHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	SetActive(ctx *gin.Context)
	AdjustStock(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type productAdminHandler struct {
	adminService catalog.ProductAdminService
}

// NewProductAdminHandler creates a new ProductAdminHandler
func NewProductAdminHandler(adminService catalog.ProductAdminService) ProductAdminHandler {
	return &productAdminHandler{adminService: adminService}
}

// Create handles the POST request creating a product
// @Summary Create a product
// @Tags Admin
// @Accept json
// @Produce json
// @Param X-Admin-Key header string true "Admin API key"
// @Param requestBody body ProductRequest true "Product"
// @Success 201 {object} ProductResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /admin/products [post]
func (handler *productAdminHandler) Create(ctx *gin.Context) {
	var request ProductRequest
	if !bindJSON(ctx, &request) {
		return
	}

	product, err := handler.adminService.Create(ctx, request.ToDomain(uuid.New().String()))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, NewProductResponse(product))
}

func (handler *productAdminHandler) List(ctx *gin.Context) {
	query := productQueryFrom(ctx)
	query.ActiveOnly = strutil.ConvertToBool(ctx.Query("active"))

	products, err := handler.adminService.List(ctx, query)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, productList(products))
}

func (handler *productAdminHandler) GetByID(ctx *gin.Context) {
	product, err := handler.adminService.GetByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewProductResponse(product))
}

// Update replaces the editable fields of a product. Stock changes go through AdjustStock.
func (handler *productAdminHandler) Update(ctx *gin.Context) {
	var request ProductRequest
	if !bindJSON(ctx, &request) {
		return
	}

	product, err := handler.adminService.Update(ctx, request.ToDomain(ctx.Param("id")))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewProductResponse(product))
}

func (handler *productAdminHandler) SetActive(ctx *gin.Context) {
	var request SetActiveRequest
	if !bindJSON(ctx, &request) {
		return
	}

	product, err := handler.adminService.SetActive(ctx, ctx.Param("id"), *request.Active)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewProductResponse(product))
}

func (handler *productAdminHandler) AdjustStock(ctx *gin.Context) {
	var request AdjustStockRequest
	if !bindJSON(ctx, &request) {
		return
	}

	product, err := handler.adminService.AdjustStock(ctx, ctx.Param("id"), request.Delta)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, NewProductResponse(product))
}

// DeleteByID handles the DELETE request removing a product
// @Summary Delete a product by ID
// @Tags Admin
// @Param X-Admin-Key header string true "Admin API key"
// @Param id path string true "Product ID"
// @Success 200 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/products/{id} [delete]
func (handler *productAdminHandler) DeleteByID(ctx *gin.Context) {
	productID := ctx.Param("id")
	if err := handler.adminService.DeleteByID(ctx, productID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: fmt.Sprintf("deleted product with id %s", productID)})
}
