package payrollexport

import (
	"elec-payroll/internal/domain"
	"elec-payroll/internal/middleware"
	"elec-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RouteConfig struct {
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
}

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	cfg RouteConfig,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	exports := r.Group("/payroll/exports")
	exports.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	exports.Use(middleware.ExtractUserID())
	exports.Use(middleware.ContextLogger(logger))
	{
		exports.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceExport, domain.ActionRead), handler.GetAll)
		exports.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceExport, domain.ActionRead), handler.GetById)
		exports.GET("/:id/download", middleware.RBACAuthorize(rbacService, domain.ResourceExport, domain.ActionRead), handler.Download)

		create := []gin.HandlerFunc{middleware.RateLimitByUser(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)}
		if redisClient != nil {
			create = append(create, middleware.Idempotency(redisClient))
		}
		create = append(create, middleware.RBACAuthorize(rbacService, domain.ResourceExport, domain.ActionCreate), handler.Create)
		exports.POST("", create...)

		exports.POST("/:id/sync", middleware.RBACAuthorize(rbacService, domain.ResourceExport, domain.ActionSync), handler.MarkSynced)
	}

	jobCosts := r.Group("/payroll/job-costs")
	jobCosts.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	jobCosts.Use(middleware.ExtractUserID())
	jobCosts.Use(middleware.ContextLogger(logger))
	{
		jobCosts.GET("", middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionRead), handler.JobCosts)
	}
}
