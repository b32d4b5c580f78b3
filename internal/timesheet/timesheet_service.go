package timesheet

import (
	"context"
	"database/sql"
	"errors"
	"time"

	timesheeterrors "elec-payroll/internal/timesheet/errors"
	"elec-payroll/internal/shared/calendar"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// RosterProvider supplies the employee list used to price hours.
type RosterProvider interface {
	GetRoster(ctx context.Context, companyID string) ([]RosterMember, error)
}

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateTimesheetRequest) (TimesheetResponse, error)
	GetAll(ctx context.Context, companyID string, req GetTimesheetsFilterRequest) ([]TimesheetResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (TimesheetResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, reason string) (TimesheetResponse, error)
	JobLabour(ctx context.Context, companyID, jobID string, budget *float64) (JobLabourSummary, error)
	PayrollEntries(ctx context.Context, companyID, periodStart, periodEnd string) (PayrollEntriesResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	roster RosterProvider
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, roster RosterProvider, logger ...*zap.Logger) Service {
	l := zap.L().Named("timesheet.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.service")
	}
	return &service{db: db, repo: repo, roster: roster, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateTimesheetRequest) (TimesheetResponse, error) {
	s.logger.Debug("create timesheet requested",
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("job_id", req.JobID),
		zap.String("date", req.Date),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidEmployeeID
	}
	workDate, err := calendar.ParseISODate(req.Date)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidDateFormat
	}
	hours, err := resolveHours(req)
	if err != nil {
		s.logger.Warn("create timesheet validation failed", zap.Error(err))
		return TimesheetResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create timesheet employee company check failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	if !belongs {
		return TimesheetResponse{}, timesheeterrors.ErrEmployeeNotInCompany
	}

	t := &Timesheet{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		JobID:      req.JobID,
		JobTitle:   req.JobTitle,
		WorkDate:   workDate,
		ClockIn:    req.ClockIn,
		ClockOut:   req.ClockOut,
		BreakMins:  req.BreakMins,
		TotalHours: decimal.NewFromFloat(hours).Round(2),
		Status:     StatusPending,
		CreatedBy:  actorUUID,
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create timesheet persist failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create timesheet commit failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	s.logger.Info("create timesheet success",
		zap.String("timesheet_id", t.ID.String()),
		zap.String("company_id", companyID),
		zap.Float64("total_hours", hours),
	)

	return mapToResponse(*t), nil
}

// resolveHours prefers an explicit total; otherwise it derives hours from the
// clock pair minus the break.
func resolveHours(req CreateTimesheetRequest) (float64, error) {
	if req.TotalHours != nil {
		return *req.TotalHours, nil
	}
	if req.ClockIn == nil || req.ClockOut == nil || *req.ClockIn == "" || *req.ClockOut == "" {
		return 0, timesheeterrors.ErrHoursRequired
	}
	hours, err := calendar.WorkedHours(*req.ClockIn, *req.ClockOut, req.BreakMins)
	if err != nil {
		return 0, timesheeterrors.ErrInvalidClockTime
	}
	return hours, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, req GetTimesheetsFilterRequest) ([]TimesheetResponse, error) {
	filter, err := buildQueryFilter(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("list timesheets failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(rows), nil
}

func buildQueryFilter(req GetTimesheetsFilterRequest) (TimesheetQueryFilter, error) {
	filter := TimesheetQueryFilter{JobID: req.JobID}

	if req.From != "" {
		from, err := calendar.ParseISODate(req.From)
		if err != nil {
			return filter, timesheeterrors.ErrInvalidDateFormat
		}
		filter.From = &from
	}
	if req.To != "" {
		to, err := calendar.ParseISODate(req.To)
		if err != nil {
			return filter, timesheeterrors.ErrInvalidDateFormat
		}
		filter.To = &to
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, timesheeterrors.ErrInvalidDateRange
	}

	switch req.Status {
	case "", StatusPending, StatusApproved, StatusRejected:
		filter.Status = req.Status
	default:
		return filter, timesheeterrors.ErrInvalidStatusFilter
	}

	if req.EmployeeID != "" {
		if _, err := uuid.Parse(req.EmployeeID); err != nil {
			return filter, timesheeterrors.ErrInvalidEmployeeID
		}
		filter.EmployeeID = req.EmployeeID
	}
	return filter, nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (TimesheetResponse, error) {
	return s.review(ctx, companyID, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, reason string) (TimesheetResponse, error) {
	return s.review(ctx, companyID, actorID, id, StatusRejected, &reason)
}

func (s *service) review(ctx context.Context, companyID, actorID, id, targetStatus string, reason *string) (TimesheetResponse, error) {
	s.logger.Debug("review timesheet requested",
		zap.String("timesheet_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimesheetResponse{}, timesheeterrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review timesheet begin tx failed", zap.Error(err))
		return TimesheetResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimesheetResponse{}, timesheeterrors.ErrTimesheetNotFound
		}
		return TimesheetResponse{}, err
	}
	if t.Status != StatusPending {
		s.logger.Warn("review timesheet invalid transition",
			zap.String("timesheet_id", id),
			zap.String("from_status", t.Status),
			zap.String("to_status", targetStatus),
		)
		return TimesheetResponse{}, timesheeterrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	t.Status = targetStatus
	t.ReviewedBy = &actorUUID
	t.ReviewedAt = &now
	t.RejectionReason = reason

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("review timesheet persist failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("review timesheet commit failed", zap.String("timesheet_id", id), zap.Error(err))
		return TimesheetResponse{}, err
	}
	s.logger.Info("review timesheet success",
		zap.String("timesheet_id", id),
		zap.String("status", targetStatus),
	)

	return mapToResponse(*t), nil
}

func (s *service) JobLabour(ctx context.Context, companyID, jobID string, budget *float64) (JobLabourSummary, error) {
	if jobID == "" {
		return JobLabourSummary{}, timesheeterrors.ErrJobIDRequired
	}
	if budget != nil && *budget < 0 {
		return JobLabourSummary{}, timesheeterrors.ErrInvalidBudget
	}

	rows, err := s.repo.FindByJob(ctx, companyID, jobID)
	if err != nil {
		s.logger.Error("job labour load entries failed", zap.String("job_id", jobID), zap.Error(err))
		return JobLabourSummary{}, err
	}
	roster, err := s.loadRoster(ctx, companyID)
	if err != nil {
		return JobLabourSummary{}, err
	}

	summary := ComputeJobLabour(ToTimeEntries(rows), roster, jobID, budget)
	s.logger.Debug("job labour computed",
		zap.String("job_id", jobID),
		zap.Float64("approved_hours", summary.ApprovedHours),
		zap.Float64("actual_labour", summary.ActualLabour),
	)
	return summary, nil
}

func (s *service) PayrollEntries(ctx context.Context, companyID, periodStart, periodEnd string) (PayrollEntriesResponse, error) {
	start, err := calendar.ParseISODate(periodStart)
	if err != nil {
		return PayrollEntriesResponse{}, timesheeterrors.ErrInvalidDateFormat
	}
	end, err := calendar.ParseISODate(periodEnd)
	if err != nil {
		return PayrollEntriesResponse{}, timesheeterrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		return PayrollEntriesResponse{}, timesheeterrors.ErrInvalidDateRange
	}

	rows, err := s.repo.FindApprovedInPeriod(ctx, companyID, start, end)
	if err != nil {
		s.logger.Error("payroll entries load timesheets failed", zap.String("company_id", companyID), zap.Error(err))
		return PayrollEntriesResponse{}, err
	}
	roster, err := s.loadRoster(ctx, companyID)
	if err != nil {
		return PayrollEntriesResponse{}, err
	}

	entries, skipped := GeneratePayrollEntries(ToTimeEntries(rows), roster, periodStart, periodEnd)
	if len(skipped) > 0 {
		s.logger.Warn("payroll entries skipped employees missing from roster",
			zap.String("company_id", companyID),
			zap.Strings("employee_ids", skipped),
		)
	}

	return PayrollEntriesResponse{
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		Entries:            entries,
		SkippedEmployeeIDs: skipped,
	}, nil
}

func (s *service) loadRoster(ctx context.Context, companyID string) (Roster, error) {
	members, err := s.roster.GetRoster(ctx, companyID)
	if err != nil {
		s.logger.Error("load roster failed", zap.String("company_id", companyID), zap.Error(err))
		return Roster{}, err
	}
	return NewRoster(members), nil
}

// ToTimeEntries converts persisted rows into aggregation input.
func ToTimeEntries(rows []Timesheet) []TimeEntry {
	out := make([]TimeEntry, 0, len(rows))
	for _, t := range rows {
		e := TimeEntry{
			ID:         t.ID.String(),
			EmployeeID: t.EmployeeID.String(),
			JobID:      t.JobID,
			JobTitle:   t.JobTitle,
			Date:       calendar.FormatISODate(t.WorkDate),
			TotalHours: t.TotalHours.InexactFloat64(),
			Status:     t.Status,
		}
		if t.Employee != nil {
			e.EmployeeName = t.Employee.FullName
		}
		out = append(out, e)
	}
	return out
}

func mapToResponse(t Timesheet) TimesheetResponse {
	resp := TimesheetResponse{
		ID:              t.ID.String(),
		CompanyID:       t.CompanyID.String(),
		EmployeeID:      t.EmployeeID.String(),
		JobID:           t.JobID,
		JobTitle:        t.JobTitle,
		Date:            calendar.FormatISODate(t.WorkDate),
		ClockIn:         t.ClockIn,
		ClockOut:        t.ClockOut,
		BreakMins:       t.BreakMins,
		TotalHours:      t.TotalHours.InexactFloat64(),
		Status:          t.Status,
		CreatedBy:       t.CreatedBy.String(),
		RejectionReason: t.RejectionReason,
	}
	if t.Employee != nil {
		resp.EmployeeName = t.Employee.FullName
	}
	if t.ReviewedBy != nil {
		v := t.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if t.ReviewedAt != nil {
		v := t.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}

func mapToListResponse(rows []Timesheet) []TimesheetResponse {
	out := make([]TimesheetResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, mapToResponse(t))
	}
	return out
}
