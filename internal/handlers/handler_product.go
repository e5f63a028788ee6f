package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bizledger/internal/core/ports/services"
	"github.com/SscSPs/bizledger/internal/dto"
	"github.com/SscSPs/bizledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// productHandler handles HTTP requests related to stock items.
type productHandler struct {
	productService portssvc.ProductSvc
}

// RegisterProductRoutes registers product routes on a workplace group.
func RegisterProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvc) {
	h := &productHandler{productService: productService}

	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("/:id", h.getProduct)
		products.GET("/:id/movements", h.listMovements)
	}
}

// createProduct godoc
// @Summary Create a product
// @Tags products
// @Accept  json
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   product body dto.CreateProductRequest true "Product details"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "SKU already used"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), c.Param("workplace_id"), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create product")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(product, nil))
}

// getProduct godoc
// @Summary Get a product with its stock by location
// @Tags products
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   id path string true "Product ID"
// @Success 200 {object} dto.ProductResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/products/{id} [get]
func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	product, locations, err := h.productService.GetProduct(c.Request.Context(), c.Param("workplace_id"), c.Param("id"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product, locations))
}

// listMovements godoc
// @Summary List a product's inventory movements
// @Description Returns the stock audit trail, newest first, with token pagination.
// @Tags products
// @Produce  json
// @Param   workplace_id path string true "Workplace ID"
// @Param   id path string true "Product ID"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Product not found"
// @Security BearerAuth
// @Router /workplaces/{workplace_id}/products/{id}/movements [get]
func (h *productHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	userID, ok := currentUserID(c, logger)
	if !ok {
		return
	}

	page, err := h.productService.ListMovements(c.Request.Context(), c.Param("workplace_id"), c.Param("id"), userID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list movements")
		return
	}
	c.JSON(http.StatusOK, page)
}
