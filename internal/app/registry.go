package app

import (
	"database/sql"

	"elec-payroll/internal/bootstrap"
	"elec-payroll/internal/config"
	"elec-payroll/internal/employee"
	"elec-payroll/internal/messaging/kafka"
	"elec-payroll/internal/payrollexport"
	"elec-payroll/internal/rbac"
	"elec-payroll/internal/rbac/infra"
	"elec-payroll/internal/timesheet"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services is the domain graph shared by the API and the consumer.
type services struct {
	employee      employee.Service
	timesheet     timesheet.Service
	payrollExport payrollexport.Service
}

func buildServices(
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) services {
	employeeRepo := employee.NewRepository(gormDB)
	timesheetRepo := timesheet.NewRepository(gormDB)
	exportRepo := payrollexport.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	employeeService := employee.NewService(db, employeeRepo, rdb, cfg.RosterCacheTTL, logger)
	timesheetService := timesheet.NewService(db, timesheetRepo, employeeService, logger)
	exportService := payrollexport.NewService(db, exportRepo, timesheetService, outboxRepo, audit, logger)

	return services{
		employee:      employeeService,
		timesheet:     timesheetService,
		payrollExport: exportService,
	}
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) error {
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewRepository(gormDB), enforcer, cfg.RBACPolicyTTL, logger)

	svc := buildServices(cfg, db, gormDB, rdb, audit, logger)

	employeeHandler := employee.NewHandler(svc.employee, logger)
	timesheetHandler := timesheet.NewHandler(svc.timesheet, logger)
	exportHandler := payrollexport.NewHandlerWithRedis(svc.payrollExport, rdb, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService, cfg.JWTSecret, logger)
		timesheet.RegisterRoutes(api, timesheetHandler, rbacService, cfg.JWTSecret, logger)
		payrollexport.RegisterRoutes(api, exportHandler, rbacService, payrollexport.RouteConfig{
			JWTSecret:      cfg.JWTSecret,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		}, logger, rdb)
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret, logger)
	}

	return nil
}
