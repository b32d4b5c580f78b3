package middleware

import (
	"net/http"

	"elec-payroll/internal/shared/apperror"
	"elec-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// ExtractUserID re-publishes the authenticated user id as user_id_validated.
// It must run after AuthMiddleware.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "User is not authenticated", nil)
			c.Abort()
			return
		}

		userIDStr, ok := userID.(string)
		if !ok || userIDStr == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_USER_ID", "Invalid user_id", nil)
			c.Abort()
			return
		}

		c.Set("user_id_validated", userIDStr)
		c.Next()
	}
}
