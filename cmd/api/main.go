package main

import (
	"elec-payroll/internal/app"
	"elec-payroll/internal/bootstrap"
	"elec-payroll/internal/config"
	"elec-payroll/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg, cfgErr := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfgErr != nil {
		logger.Fatal("load config failed", zap.Error(cfgErr))
	}

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	auditLogger := bootstrap.NewStdoutAuditLogger()
	if err := app.BuildApp(r, cfg, auditLogger); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(r, bootstrap.DefaultServerConfig(cfg.Port), auditLogger)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
