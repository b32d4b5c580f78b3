package middleware

import (
	"elec-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger attaches a request scoped logger, request id and user id to
// the request context so services can log without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}

	return func(c *gin.Context) {
		rid := requestID(c)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithUserID(ctx, c.GetString("user_id_validated"))
		ctx = contextutil.WithCompanyID(ctx, c.GetString("company_id"))
		ctx = contextutil.WithLogger(ctx, logger.With(contextutil.ExtractMetadata(ctx).Fields()...))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
