package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type notificationHandler struct {
	notificationService portssvc.NotificationHistorySvc
}

// registerNotificationRoutes exposes the caller's delivered emails.
func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationHistorySvc) {
	h := &notificationHandler{notificationService: notificationService}

	notifications := rg.Group("/notifications")
	{
		notifications.GET("/mine", customerOnly, h.listMyNotifications)
	}
}

// listMyNotifications godoc
// @Summary The caller's invoice and payment emails
// @Tags notifications
// @Produce  json
// @Param   limit query int false "Limit" default(20)
// @Success 200 {object} dto.ListNotificationsResponse
// @Security BearerAuth
// @Router /notifications/mine [get]
func (h *notificationHandler) listMyNotifications(c *gin.Context) {
	var params dto.ListNotificationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "query parameters")
		return
	}
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	notifications, err := h.notificationService.ListMyNotifications(c.Request.Context(), userID, params.Limit)
	if err != nil {
		respondServiceError(c, err, "list notifications")
		return
	}
	c.JSON(http.StatusOK, dto.ToListNotificationResponse(notifications))
}
