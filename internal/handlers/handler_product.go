package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func registerProductRoutes(rg *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := &productHandler{productService: productService}

	products := rg.Group("/products")
	{
		products.POST("", adminOnly, h.createProduct)
		products.GET("", adminOrCustomer, h.listProducts)
		products.GET("/:id", adminOrCustomer, h.getProduct)
		products.PUT("/:id/price", adminOnly, h.updatePrice)
	}
}

// createProduct godoc
// @Summary Add a catalog product
// @Tags products
// @Accept  json
// @Produce  json
// @Param   product body dto.CreateProductRequest true "Product"
// @Success 201 {object} dto.ProductResponse
// @Security BearerAuth
// @Router /products [post]
func (h *productHandler) createProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "product request")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	product, err := h.productService.CreateProduct(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "create product")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

// listProducts godoc
// @Summary List catalog products
// @Tags products
// @Produce  json
// @Param   limit query int false "Limit" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.ProductResponse
// @Security BearerAuth
// @Router /products [get]
func (h *productHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	products, err := h.productService.ListProducts(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, err, "list products")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProductResponse(products))
}

func (h *productHandler) getProduct(c *gin.Context) {
	product, err := h.productService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

// updatePrice godoc
// @Summary Change a product's unit price
// @Description Sales already recorded keep the price they were sold at.
// @Tags products
// @Accept  json
// @Produce  json
// @Param   id path string true "Product ID"
// @Param   price body dto.UpdateProductPriceRequest true "New price"
// @Success 200 {object} dto.ProductResponse
// @Security BearerAuth
// @Router /products/{id}/price [put]
func (h *productHandler) updatePrice(c *gin.Context) {
	var req dto.UpdateProductPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "price request")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	product, err := h.productService.UpdateProductPrice(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update product price")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}
