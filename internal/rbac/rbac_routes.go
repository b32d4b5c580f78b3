package rbac

import (
	"elec-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes exposes the permission check used by front ends to hide
// actions the caller cannot perform.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, jwtSecret string, logger *zap.Logger) {
	group := r.Group("/rbac")
	group.Use(
		middleware.AuthMiddleware(jwtSecret),
		middleware.ExtractUserID(),
		middleware.ContextLogger(logger),
	)
	{
		group.POST("/enforce", handler.Enforce)
	}
}
