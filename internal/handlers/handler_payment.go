package handlers

import (
	"context"
	"net/http"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// RegisterPaymentRoutes registers routes related to payments (abonos).
func RegisterPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := &paymentHandler{paymentService: paymentService}

	payments := rg.Group("/payments")
	{
		payments.GET("/mine", customerOnly, h.listMyPayments)
		payments.GET("/mine/:id", customerOnly, h.getMyPayment)

		payments.POST("", adminOnly, h.createPayment)
		payments.GET("", adminOnly, h.listPayments)
		payments.GET("/:id", adminOnly, h.getPayment)
		payments.PUT("/:id", adminOnly, h.updatePayment)
		payments.DELETE("/:id", adminOnly, h.deletePayment)
		payments.PUT("/:id/apply", adminOnly, h.transition(portssvc.PaymentSvcFacade.ApplyPayment, "apply payment"))
		payments.PUT("/:id/pending", adminOnly, h.transition(portssvc.PaymentSvcFacade.MarkPending, "mark payment pending"))
		payments.PUT("/:id/reject", adminOnly, h.rejectPayment)
	}
}

// createPayment godoc
// @Summary Register a payment
// @Description An APPLIED payment (the default) credits the account immediately.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} ErrorResponse "Invalid amount, invalid status or amount above the balance"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "payment request")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.CreatePayment(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err, "create payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments
// @Tags payments
// @Produce  json
// @Success 200 {array} dto.PaymentResponse
// @Security BearerAuth
// @Router /payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	payments, err := h.paymentService.ListPayments(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondServiceError(c, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentResponse(payments))
}

// getPayment godoc
// @Summary Get a payment
// @Tags payments
// @Produce  json
// @Param   id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Security BearerAuth
// @Router /payments/{id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// updatePayment godoc
// @Summary Edit a PENDING payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path string true "Payment ID"
// @Param   payment body dto.UpdatePaymentRequest true "Fields to change"
// @Success 200 {object} dto.PaymentResponse
// @Security BearerAuth
// @Router /payments/{id} [put]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "payment request")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondServiceError(c, err, "update payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// deletePayment godoc
// @Summary Delete a PENDING or REJECTED payment
// @Tags payments
// @Param   id path string true "Payment ID"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /payments/{id} [delete]
func (h *paymentHandler) deletePayment(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	if err := h.paymentService.DeletePayment(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondServiceError(c, err, "delete payment")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *paymentHandler) transition(
	op func(svc portssvc.PaymentSvcFacade, ctx context.Context, paymentID string, actingUserID string) (*domain.Payment, error),
	action string,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := actingUser(c)
		if !ok {
			return
		}
		payment, err := op(h.paymentService, c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			respondServiceError(c, err, action)
			return
		}
		c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
	}
}

// rejectPayment godoc
// @Summary Reject a PENDING payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path string true "Payment ID"
// @Param   reason body dto.RejectPaymentRequest true "Reason"
// @Success 200 {object} dto.PaymentResponse
// @Security BearerAuth
// @Router /payments/{id}/reject [put]
func (h *paymentHandler) rejectPayment(c *gin.Context) {
	var req dto.RejectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "reject request")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.RejectPayment(c.Request.Context(), c.Param("id"), req.Reason, userID)
	if err != nil {
		respondServiceError(c, err, "reject payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

func (h *paymentHandler) listMyPayments(c *gin.Context) {
	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	payments, err := h.paymentService.ListMyPayments(c.Request.Context(), userID, params.ToFilter())
	if err != nil {
		respondServiceError(c, err, "list payments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListPaymentResponse(payments))
}

func (h *paymentHandler) getMyPayment(c *gin.Context) {
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.GetMyPayment(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "retrieve payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}
