package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"elec-payroll/internal/bootstrap"
	"elec-payroll/internal/config"
	"elec-payroll/internal/events"
	"elec-payroll/internal/messaging/kafka/consumer"
	"elec-payroll/internal/payrollexport"
	"elec-payroll/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer archives every created payroll export into cfg.ExportDir.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, connectRetries)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	// the archiver only reads exports, so the roster cache is not needed
	svc := buildServices(cfg, sqlDB, gormDB, nil, bootstrap.NopAuditLogger{}, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{cfg.KafkaBroker},
		Topic:       events.PayrollExportCreatedTopic,
		GroupID:     cfg.ConsumerGroupID,
		StartOffset: kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := payrollexport.NewFileSink(cfg.ExportDir)
	go consumer.ConsumePayrollExportCreated(ctx, reader, svc.payrollExport, sink, logger, consumer.DefaultRetryBackoff)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	return nil
}
