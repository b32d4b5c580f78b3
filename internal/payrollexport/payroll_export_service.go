package payrollexport

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"elec-payroll/internal/bootstrap"
	"elec-payroll/internal/events"
	"elec-payroll/internal/messaging/kafka"
	payrollexporterrors "elec-payroll/internal/payrollexport/errors"
	"elec-payroll/internal/shared/calendar"
	"elec-payroll/internal/shared/contextutil"
	"elec-payroll/internal/timesheet"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PayrollSource yields the payroll entries for a company and period.
// timesheet.Service satisfies it.
type PayrollSource interface {
	PayrollEntries(ctx context.Context, companyID, periodStart, periodEnd string) (timesheet.PayrollEntriesResponse, error)
}

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateExportRequest) (CreateExportResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetExportsFilterRequest) ([]ExportResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ExportResponse, error)
	Download(ctx context.Context, companyID, id string) (ExportFile, error)
	MarkSynced(ctx context.Context, companyID, actorID, id string) (ExportResponse, error)
	JobCosts(ctx context.Context, companyID string, query JobCostQuery) (JobCostResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	payroll PayrollSource
	outbox  kafka.OutboxRepository
	audit   bootstrap.AuditLogger
	logger  *zap.Logger
}

// NewService wires the export service. outbox and audit may be nil.
func NewService(
	db *sql.DB,
	repo Repository,
	payroll PayrollSource,
	outbox kafka.OutboxRepository,
	audit bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrollexport.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollexport.service")
	}
	if audit == nil {
		audit = bootstrap.NopAuditLogger{}
	}
	return &service{
		db:      db,
		repo:    repo,
		payroll: payroll,
		outbox:  outbox,
		audit:   audit,
		logger:  l,
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateExportRequest) (CreateExportResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CreateExportResponse{}, payrollexporterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CreateExportResponse{}, payrollexporterrors.ErrInvalidActorID
	}
	periodStart, periodEnd, err := parsePeriod(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return CreateExportResponse{}, err
	}

	provider, known := ParseProvider(req.Provider)
	if !known {
		log.Warn("unknown provider, using generic csv layout",
			zap.String("request_id", rid),
			zap.String("provider", req.Provider),
		)
	}

	source, err := s.payroll.PayrollEntries(ctx, companyID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return CreateExportResponse{}, err
	}
	if len(source.Entries) == 0 {
		return CreateExportResponse{}, payrollexporterrors.ErrNoPayrollEntries
	}

	batch := NewAccountingExport(provider.String(), req.PeriodStart, req.PeriodEnd, source.Entries)
	body, err := FormatForProvider(batch.Provider.String(), batch.Entries)
	if err != nil {
		log.Error("format export failed", zap.String("request_id", rid), zap.Error(err))
		return CreateExportResponse{}, payrollexporterrors.ErrExportRenderFailed.WithErr(err)
	}
	if !CanTransition(batch.Status, StatusExported) {
		return CreateExportResponse{}, payrollexporterrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	export := &PayrollExport{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		Provider:      batch.Provider.String(),
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Status:        StatusExported,
		FileName:      ExportFileName(batch.Provider.String(), req.PeriodStart, req.PeriodEnd),
		Content:       body,
		EmployeeCount: batch.Totals.EmployeeCount,
		TotalHours:    batch.Totals.TotalHours,
		RegularHours:  batch.Totals.RegularHours,
		OvertimeHours: batch.Totals.OvertimeHours,
		TotalGross:    batch.Totals.TotalGross,
		CreatedBy:     actorUUID,
		ExportedAt:    &now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return CreateExportResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, export); err != nil {
		log.Error("create payroll export failed",
			zap.String("request_id", rid),
			zap.String("company_id", companyID),
			zap.Error(err),
		)
		return CreateExportResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.PayrollExportCreatedEvent{
			EventType:   "payroll_export_created",
			RequestID:   rid,
			ExportID:    export.ID.String(),
			CompanyID:   companyID,
			Provider:    export.Provider,
			FileName:    export.FileName,
			PeriodStart: req.PeriodStart,
			PeriodEnd:   req.PeriodEnd,
			RequestedBy: actorID,
			OccurredAt:  now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return CreateExportResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll_export",
			AggregateID:   export.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollExportCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			log.Error("payroll export outbox persist failed",
				zap.String("export_id", export.ID.String()),
				zap.Error(err),
			)
			return CreateExportResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return CreateExportResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "payroll_export.create",
		Message: "payroll export created",
		Meta: map[string]any{
			"export_id":    export.ID.String(),
			"company_id":   companyID,
			"provider":     export.Provider,
			"period_start": req.PeriodStart,
			"period_end":   req.PeriodEnd,
			"employees":    export.EmployeeCount,
		},
	})
	log.Info("create payroll export success",
		zap.String("request_id", rid),
		zap.String("export_id", export.ID.String()),
		zap.String("provider", export.Provider),
		zap.Int("employees", export.EmployeeCount),
	)

	return CreateExportResponse{
		ExportResponse:     mapToResponse(*export),
		Entries:            batch.Entries,
		SkippedEmployeeIDs: source.SkippedEmployeeIDs,
	}, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter GetExportsFilterRequest) ([]ExportResponse, error) {
	filterProvider := ""
	if filter.Provider != "" {
		p, _ := ParseProvider(filter.Provider)
		filterProvider = p.String()
	}

	exports, err := s.repo.FindAllByCompany(ctx, companyID, ExportQueryFilter{
		Provider: filterProvider,
		Status:   filter.Status,
	})
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]ExportResponse, 0, len(exports))
	for _, e := range exports {
		resp = append(resp, mapToResponse(e))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ExportResponse, error) {
	export, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ExportResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*export), nil
}

func (s *service) Download(ctx context.Context, companyID, id string) (ExportFile, error) {
	export, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ExportFile{}, mapRepositoryError(err)
	}
	return ExportFile{Name: export.FileName, Content: []byte(export.Content)}, nil
}

func (s *service) MarkSynced(ctx context.Context, companyID, actorID, id string) (ExportResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ExportResponse{}, payrollexporterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ExportResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	export, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return ExportResponse{}, mapRepositoryError(err)
	}
	if !CanTransition(export.Status, StatusSynced) {
		return ExportResponse{}, payrollexporterrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	export.Status = StatusSynced
	export.SyncedBy = &actorUUID
	export.SyncedAt = &now

	if err := qtx.Update(ctx, export); err != nil {
		return ExportResponse{}, mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		return ExportResponse{}, err
	}

	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "payroll_export.sync",
		Message: "payroll export marked as synced",
		Meta: map[string]any{
			"export_id":  export.ID.String(),
			"company_id": companyID,
			"provider":   export.Provider,
			"synced_by":  actorID,
		},
	})

	return mapToResponse(*export), nil
}

func (s *service) JobCosts(ctx context.Context, companyID string, query JobCostQuery) (JobCostResponse, error) {
	if _, _, err := parsePeriod(query.PeriodStart, query.PeriodEnd); err != nil {
		return JobCostResponse{}, err
	}

	source, err := s.payroll.PayrollEntries(ctx, companyID, query.PeriodStart, query.PeriodEnd)
	if err != nil {
		return JobCostResponse{}, err
	}

	return JobCostResponse{
		PeriodStart: query.PeriodStart,
		PeriodEnd:   query.PeriodEnd,
		Jobs:        BuildJobCostReport(source.Entries),
	}, nil
}

func parsePeriod(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := calendar.ParseISODate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, payrollexporterrors.ErrInvalidDateFormat
	}
	end, err := calendar.ParseISODate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, payrollexporterrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, payrollexporterrors.ErrInvalidPeriod
	}
	return start, end, nil
}

func mapToResponse(e PayrollExport) ExportResponse {
	resp := ExportResponse{
		ID:          e.ID.String(),
		CompanyID:   e.CompanyID.String(),
		Provider:    e.Provider,
		PeriodStart: calendar.FormatISODate(e.PeriodStart),
		PeriodEnd:   calendar.FormatISODate(e.PeriodEnd),
		Status:      e.Status,
		FileName:    e.FileName,
		Totals: Totals{
			EmployeeCount: e.EmployeeCount,
			TotalHours:    e.TotalHours,
			RegularHours:  e.RegularHours,
			OvertimeHours: e.OvertimeHours,
			TotalGross:    e.TotalGross,
		},
		CreatedBy: e.CreatedBy.String(),
	}
	if e.ExportedAt != nil {
		v := e.ExportedAt.Format(time.RFC3339)
		resp.ExportedAt = &v
	}
	if e.SyncedBy != nil {
		v := e.SyncedBy.String()
		resp.SyncedBy = &v
	}
	if e.SyncedAt != nil {
		v := e.SyncedAt.Format(time.RFC3339)
		resp.SyncedAt = &v
	}
	return resp
}
