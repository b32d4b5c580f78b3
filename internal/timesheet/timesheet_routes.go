package timesheet

import (
	"elec-payroll/internal/domain"
	"elec-payroll/internal/middleware"
	"elec-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	logger *zap.Logger,
) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware(jwtSecret))
	timesheets.Use(middleware.ExtractUserID())
	timesheets.Use(middleware.ContextLogger(logger))
	{
		timesheets.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionRead), handler.GetAll)
		timesheets.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionCreate),
			handler.Create,
		)
		timesheets.POST("/:id/approve", middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionApprove), handler.Approve)
		timesheets.POST("/:id/reject", middleware.RBACAuthorize(rbacService, domain.ResourceTimesheet, domain.ActionApprove), handler.Reject)
	}

	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware(jwtSecret))
	jobs.Use(middleware.ExtractUserID())
	jobs.Use(middleware.ContextLogger(logger))
	{
		jobs.GET("/:job_id/labour", middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionRead), handler.JobLabour)
	}

	payroll := r.Group("/payroll")
	payroll.Use(middleware.AuthMiddleware(jwtSecret))
	payroll.Use(middleware.ExtractUserID())
	payroll.Use(middleware.ContextLogger(logger))
	{
		payroll.GET("/entries", middleware.RBACAuthorize(rbacService, domain.ResourcePayroll, domain.ActionRead), handler.PayrollEntries)
	}
}
