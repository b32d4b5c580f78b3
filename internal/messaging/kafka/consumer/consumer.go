package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"elec-payroll/internal/events"
	"elec-payroll/internal/payrollexport"
	payrollexporterrors "elec-payroll/internal/payrollexport/errors"
	"elec-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers need.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ExportSource loads a stored export file.
type ExportSource interface {
	Download(ctx context.Context, companyID, id string) (payrollexport.ExportFile, error)
}

const (
	DefaultRetryBackoff = 500 * time.Millisecond
	MaxRetryBackoff     = 30 * time.Second
)

// ConsumePayrollExportCreated archives each newly created export through sink.
// A message that fails transiently is retried in place, with the wait doubling
// from retryBackoff up to MaxRetryBackoff, and the next message is fetched only
// once it is committed. Offsets are committed after the file is saved, so a
// crash replays them.
func ConsumePayrollExportCreated(
	ctx context.Context,
	reader MessageReader,
	exports ExportSource,
	sink payrollexport.Sink,
	logger *zap.Logger,
	retryBackoff time.Duration,
) {
	if retryBackoff <= 0 {
		retryBackoff = DefaultRetryBackoff
	}

	log := logger.Named("kafka.consumer.payroll_export")
	log.Info("payroll export consumer started", zap.Duration("retry_backoff", retryBackoff))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll export consumer stopped")
				return
			}
			log.Error("fetch payroll export message failed", zap.Error(err))
			continue
		}

		if !archiveWithRetry(ctx, msg, exports, sink, log, retryBackoff) {
			log.Info("payroll export consumer stopped",
				zap.Int64("uncommitted_offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll export message failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		}
	}
}

// archiveWithRetry reports false only when ctx ends before msg is handled.
func archiveWithRetry(
	ctx context.Context,
	msg kafkago.Message,
	exports ExportSource,
	sink payrollexport.Sink,
	log *zap.Logger,
	backoff time.Duration,
) bool {
	wait := backoff
	for attempt := 1; ; attempt++ {
		err := handlePayrollExportCreated(ctx, msg, exports, sink, log)
		if err == nil {
			return true
		}
		if ctx.Err() != nil {
			return false
		}

		log.Warn("archive payroll export failed, retrying",
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-timer.C:
		}

		wait *= 2
		if wait > MaxRetryBackoff {
			wait = MaxRetryBackoff
		}
	}
}

// handlePayrollExportCreated returns nil for messages that should be
// committed, including ones that can never succeed.
func handlePayrollExportCreated(
	ctx context.Context,
	msg kafkago.Message,
	exports ExportSource,
	sink payrollexport.Sink,
	log *zap.Logger,
) error {
	var event events.PayrollExportCreatedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode payroll_export_created event failed", zap.Error(err))
		return nil
	}

	ctx = contextutil.WithRequestID(ctx, event.RequestID)
	file, err := exports.Download(ctx, event.CompanyID, event.ExportID)
	if err != nil {
		if errors.Is(err, payrollexporterrors.ErrExportNotFound) {
			log.Warn("payroll export no longer exists, skipping",
				zap.String("export_id", event.ExportID),
				zap.String("company_id", event.CompanyID),
			)
			return nil
		}
		return err
	}

	if err := sink.Save(ctx, file.Name, file.Content); err != nil {
		return err
	}

	log.Info("payroll export archived",
		zap.String("request_id", event.RequestID),
		zap.String("export_id", event.ExportID),
		zap.String("file_name", file.Name),
	)
	return nil
}
