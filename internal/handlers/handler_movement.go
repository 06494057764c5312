package handlers

import (
	"fmt"
	"net/http"

	"github.com/SscSPs/store_credit_app/internal/apperrors"
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

func registerMovementRoutes(rg *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := &movementHandler{movementService: movementService}

	movements := rg.Group("/movements", adminOnly)
	{
		movements.GET("/account/:accountID", h.listByAccount)
		movements.GET("/reference/:kind/:refID", h.listByReference)
	}
}

// listByAccount godoc
// @Summary List an account's movements
// @Description Newest first. Pass the returned nextToken to fetch the following page.
// @Tags movements
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListMovementsResponse
// @Failure 400 {object} ErrorResponse "Invalid pagination token"
// @Security BearerAuth
// @Router /movements/account/{accountID} [get]
func (h *movementHandler) listByAccount(c *gin.Context) {
	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	res, err := h.movementService.ListMovementsByAccount(c.Request.Context(), c.Param("accountID"), params)
	if err != nil {
		respondServiceError(c, err, "list movements")
		return
	}
	c.JSON(http.StatusOK, res)
}

// listByReference godoc
// @Summary Movements produced by one sale, payment or adjustment
// @Tags movements
// @Produce  json
// @Param   kind path string true "SALE, PAYMENT or ADJUSTMENT"
// @Param   refID path string true "Reference ID"
// @Success 200 {array} dto.MovementResponse
// @Security BearerAuth
// @Router /movements/reference/{kind}/{refID} [get]
func (h *movementHandler) listByReference(c *gin.Context) {
	ref := domain.MovementReference{Kind: domain.ReferenceKind(c.Param("kind")), ID: c.Param("refID")}
	if !ref.Kind.IsValid() {
		respondServiceError(c, fmt.Errorf("%w: unknown reference kind %q", apperrors.ErrValidation, ref.Kind), "list movements")
		return
	}
	movements, err := h.movementService.ListMovementsByReference(c.Request.Context(), ref)
	if err != nil {
		respondServiceError(c, err, "list movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListMovementResponse(movements))
}
