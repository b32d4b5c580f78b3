package main

import (
	"context"
	"fmt"
	"os"

	"elec-payroll/internal/config"
	"elec-payroll/internal/shared/connection"
	"elec-payroll/migrations"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, 5)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	db, err := gormDB.DB()
	if err != nil {
		logger.Fatal("open database failed", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	switch command {
	case "up":
		err = migrations.Up(ctx, db)
	case "status":
		err = migrations.Status(ctx, db)
	default:
		err = fmt.Errorf("unknown command %q, want up or status", command)
	}
	if err != nil {
		logger.Fatal("migrate failed", zap.String("command", command), zap.Error(err))
	}
	logger.Info("migrate finished", zap.String("command", command))
}
