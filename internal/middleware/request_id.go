package middleware

import (
	"elec-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

// RequestID honours an incoming X-Request-ID or mints one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := requestID(c)
		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(contextutil.WithRequestID(c.Request.Context(), rid))
		c.Next()
	}
}

// requestID returns the id already assigned to c, assigning one if needed.
func requestID(c *gin.Context) string {
	rid := c.GetString("request_id")
	if rid == "" {
		rid = c.GetHeader(HeaderRequestID)
	}
	if rid == "" {
		rid = uuid.New().String()
	}
	c.Header(HeaderRequestID, rid)
	return rid
}
