package middleware

import (
	"github.com/SscSPs/store_credit_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// Keys for the authenticated identity. The handlers read these and pass the
// values to services explicitly.
const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok && userID != ""
	}
	// check in the request context as well
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok && userID != "" {
		return userID, true
	}
	return "", false
}

// GetRoleFromContext retrieves the authenticated user's role.
func GetRoleFromContext(c *gin.Context) (domain.Role, bool) {
	if roleVal, exists := c.Get(string(roleKey)); exists {
		role, ok := roleVal.(domain.Role)
		return role, ok
	}
	if role, ok := c.Request.Context().Value(roleKey).(domain.Role); ok {
		return role, true
	}
	return "", false
}
