package app

import (
	"context"
	"net/http"

	"elec-payroll/internal/bootstrap"
	"elec-payroll/internal/config"
	"elec-payroll/internal/middleware"
	"elec-payroll/internal/shared/connection"
	"elec-payroll/migrations"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const connectRetries = 5

// BuildApp connects the infrastructure and mounts every module on router.
func BuildApp(router *gin.Engine, cfg config.Config, audit bootstrap.AuditLogger) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, connectRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	if cfg.MigrateOnStart {
		if err := migrations.Up(context.Background(), sqlDB); err != nil {
			return err
		}
		logger.Info("database migrations applied")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return err
	}

	router.Use(middleware.RequestID())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return registerModules(router, cfg, sqlDB, gormDB, rdb, audit, logger)
}
