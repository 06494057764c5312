package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SscSPs/store_credit_app/internal/core/domain"
	portssvc "github.com/SscSPs/store_credit_app/internal/core/ports/services"
	"github.com/SscSPs/store_credit_app/internal/dto"
	"github.com/SscSPs/store_credit_app/internal/handlers"
	"github.com/SscSPs/store_credit_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificationsOnly struct {
	portssvc.NotificationSvc
	*MockNotificationHistory
}

func newRouter(t *testing.T, container *portssvc.ServiceContainer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true, LoginRateLimit: "100-M"}
	require.NoError(t, handlers.RegisterRoutes(router, cfg, container))
	return router
}

func TestRegisterRoutes_EmptyContainer(t *testing.T) {
	assert.NotPanics(t, func() {
		router := newRouter(t, &portssvc.ServiceContainer{})
		w := doRequest(router, http.MethodGet, "/health", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestListMyNotifications(t *testing.T) {
	history := new(MockNotificationHistory)
	router := newRouter(t, &portssvc.ServiceContainer{
		Notification: notificationsOnly{MockNotificationHistory: history},
	})
	customerID := uuid.NewString()
	customerToken, err := generateTestToken(customerID, domain.RoleCustomer)
	require.NoError(t, err)

	history.On("ListMyNotifications", mock.Anything, customerID, 5).Return([]domain.Notification{
		{NotificationID: "n-1", UserID: customerID, Kind: domain.NotificationPayment, Subject: "Payment received", Amount: decimal.NewFromInt(40)},
	}, nil).Once()

	w := doRequest(router, http.MethodGet, "/api/v1/notifications/mine?limit=5", customerToken, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	var res dto.ListNotificationsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Notifications, 1)
	assert.Equal(t, "n-1", res.Notifications[0].NotificationID)
	assert.True(t, res.Notifications[0].Amount.Equal(decimal.NewFromInt(40)))
	history.AssertExpectations(t)
}

func TestListMyNotifications_Validation(t *testing.T) {
	history := new(MockNotificationHistory)
	router := newRouter(t, &portssvc.ServiceContainer{
		Notification: notificationsOnly{MockNotificationHistory: history},
	})
	customerToken, err := generateTestToken(uuid.NewString(), domain.RoleCustomer)
	require.NoError(t, err)
	adminToken, err := generateTestToken(uuid.NewString(), domain.RoleAdmin)
	require.NoError(t, err)

	w := doRequest(router, http.MethodGet, "/api/v1/notifications/mine?limit=500", customerToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/notifications/mine", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	history.AssertNotCalled(t, "ListMyNotifications", mock.Anything, mock.Anything, mock.Anything)
}
