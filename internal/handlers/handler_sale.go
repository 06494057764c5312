package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/SscSPs/store_credit_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

// RegisterSaleRoutes registers routes related to sales.
func RegisterSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := &saleHandler{saleService: saleService}

	sales := rg.Group("/sales")
	{
		sales.GET("/mine", customerOnly, h.listMySales)
		sales.GET("/mine/:id", customerOnly, h.getMySale)

		sales.POST("", adminOnly, h.createSale)
		sales.GET("", adminOnly, h.listSales)
		sales.GET("/:id", adminOnly, h.getSale)
		sales.PUT("/:id", adminOnly, h.updateSale)
		sales.DELETE("/:id", adminOnly, h.deleteSale)
		sales.PUT("/:id/pay", adminOnly, h.transition(portssvc.SaleSvcFacade.MarkPaid, "mark sale paid"))
		sales.PUT("/:id/partial", adminOnly, h.transition(portssvc.SaleSvcFacade.MarkPartial, "mark sale partial"))
		sales.PUT("/:id/cancel", adminOnly, h.transition(portssvc.SaleSvcFacade.Cancel, "cancel sale"))
		sales.PUT("/:id/recalculate", adminOnly, h.transition(portssvc.SaleSvcFacade.RecalculateTotals, "recalculate sale"))
		sales.GET("/:id/can-modify", adminOnly, h.check(portssvc.SaleSvcFacade.CanModify))
		sales.GET("/:id/can-cancel", adminOnly, h.check(portssvc.SaleSvcFacade.CanCancel))
	}
}

// createSale godoc
// @Summary Record a sale
// @Description Prices the items from the catalog. A CREDIT sale charges the account and needs enough available credit.
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   sale body dto.CreateSaleRequest true "Sale"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} ErrorResponse "Validation error, insufficient credit or invalid sale type"
// @Failure 404 {object} ErrorResponse "Account or product not found"
// @Security BearerAuth
// @Router /sales [post]
func (h *saleHandler) createSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "sale request")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "create sale")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Sale created",
		slog.String("sale_id", sale.SaleID), slog.String("kind", string(sale.Kind)), slog.String("total", sale.Total.String()))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

// listSales godoc
// @Summary List sales
// @Tags sales
// @Produce  json
// @Param   accountID query string false "Account"
// @Param   kind query string false "CREDIT or CASH"
// @Param   status query string false "PENDING, PARTIAL, PAID or CANCELLED"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Param   customerName query string false "Walk-in customer name contains"
// @Success 200 {array} dto.SaleResponse
// @Security BearerAuth
// @Router /sales [get]
func (h *saleHandler) listSales(c *gin.Context) {
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	sales, err := h.saleService.ListSales(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondServiceError(c, err, "list sales")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSaleResponse(sales))
}

// getSale godoc
// @Summary Get a sale with its items
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Security BearerAuth
// @Router /sales/{id} [get]
func (h *saleHandler) getSale(c *gin.Context) {
	sale, err := h.saleService.GetSaleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "retrieve sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// updateSale godoc
// @Summary Edit a PENDING sale
// @Tags sales
// @Accept  json
// @Produce  json
// @Param   id path string true "Sale ID"
// @Param   sale body dto.UpdateSaleRequest true "Fields to change"
// @Success 200 {object} dto.SaleResponse
// @Security BearerAuth
// @Router /sales/{id} [put]
func (h *saleHandler) updateSale(c *gin.Context) {
	var req dto.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "sale request")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	sale, err := h.saleService.UpdateSale(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

// deleteSale godoc
// @Summary Delete a CANCELLED sale
// @Tags sales
// @Param   id path string true "Sale ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /sales/{id} [delete]
func (h *saleHandler) deleteSale(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.saleService.DeleteSale(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete sale")
		return
	}
	c.Status(http.StatusNoContent)
}

// transition serves pay, partial, cancel and recalculate.
// op is a method expression so the service is resolved per request.
func (h *saleHandler) transition(
	op func(svc portssvc.SaleSvcFacade, ctx context.Context, saleID string, actingUserID string) (*domain.Sale, error),
	action string,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		sale, err := op(h.saleService, c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			respondServiceError(c, err, action)
			return
		}
		c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
	}
}

func (h *saleHandler) check(op func(svc portssvc.SaleSvcFacade, ctx context.Context, saleID string) (bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		saleID := c.Param("id")
		allowed, err := op(h.saleService, c.Request.Context(), saleID)
		if err != nil {
			respondServiceError(c, err, "check sale")
			return
		}
		c.JSON(http.StatusOK, dto.SaleCheckResponse{SaleID: saleID, Allowed: allowed})
	}
}

// listMySales godoc
// @Summary The caller's purchases
// @Tags sales
// @Produce  json
// @Success 200 {array} dto.SaleResponse
// @Security BearerAuth
// @Router /sales/mine [get]
func (h *saleHandler) listMySales(c *gin.Context) {
	var params dto.ListSalesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	sales, err := h.saleService.ListMySales(c.Request.Context(), userID, params.ToFilter())
	if err != nil {
		respondServiceError(c, err, "list sales")
		return
	}
	c.JSON(http.StatusOK, dto.ToListSaleResponse(sales))
}

// getMySale godoc
// @Summary One of the caller's purchases
// @Tags sales
// @Produce  json
// @Param   id path string true "Sale ID"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} ErrorResponse "Not found or not the caller's sale"
// @Security BearerAuth
// @Router /sales/mine/{id} [get]
func (h *saleHandler) getMySale(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	sale, err := h.saleService.GetMySale(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "retrieve sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}
