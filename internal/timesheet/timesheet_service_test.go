package timesheet_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	timesheeterrors "elec-payroll/internal/timesheet/errors"
	"elec-payroll/internal/timesheet"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTimesheetRepository struct {
	createFn                 func(ctx context.Context, t *timesheet.Timesheet) error
	findByIDAndCompanyFn     func(ctx context.Context, companyID, id string) (*timesheet.Timesheet, error)
	findAllByCompanyFn       func(ctx context.Context, companyID string, filter timesheet.TimesheetQueryFilter) ([]timesheet.Timesheet, error)
	findApprovedInPeriodFn   func(ctx context.Context, companyID string, start, end time.Time) ([]timesheet.Timesheet, error)
	findByJobFn              func(ctx context.Context, companyID, jobID string) ([]timesheet.Timesheet, error)
	updateFn                 func(ctx context.Context, t *timesheet.Timesheet) error
	employeeBelongsToCompany func(ctx context.Context, companyID, employeeID string) (bool, error)
}

func (f *fakeTimesheetRepository) WithTx(tx *sql.Tx) timesheet.Repository {
	return f
}

func (f *fakeTimesheetRepository) Create(ctx context.Context, t *timesheet.Timesheet) error {
	if f.createFn != nil {
		return f.createFn(ctx, t)
	}
	return nil
}

func (f *fakeTimesheetRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*timesheet.Timesheet, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTimesheetRepository) FindAllByCompany(ctx context.Context, companyID string, filter timesheet.TimesheetQueryFilter) ([]timesheet.Timesheet, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, filter)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) FindApprovedInPeriod(ctx context.Context, companyID string, start, end time.Time) ([]timesheet.Timesheet, error) {
	if f.findApprovedInPeriodFn != nil {
		return f.findApprovedInPeriodFn(ctx, companyID, start, end)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) FindByJob(ctx context.Context, companyID, jobID string) ([]timesheet.Timesheet, error) {
	if f.findByJobFn != nil {
		return f.findByJobFn(ctx, companyID, jobID)
	}
	return nil, nil
}

func (f *fakeTimesheetRepository) Update(ctx context.Context, t *timesheet.Timesheet) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, t)
	}
	return nil
}

func (f *fakeTimesheetRepository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	if f.employeeBelongsToCompany != nil {
		return f.employeeBelongsToCompany(ctx, companyID, employeeID)
	}
	return true, nil
}

type fakeRoster struct {
	members []timesheet.RosterMember
	err     error
}

func (f *fakeRoster) GetRoster(ctx context.Context, companyID string) ([]timesheet.RosterMember, error) {
	return f.members, f.err
}

type timesheetServiceDeps struct {
	sqlMock sqlmock.Sqlmock
	service timesheet.Service
	repo    *fakeTimesheetRepository
	roster  *fakeRoster
}

func setupTimesheetServiceTest(t *testing.T) *timesheetServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeTimesheetRepository{}
	roster := &fakeRoster{}
	svc := timesheet.NewService(db, repo, roster)

	return &timesheetServiceDeps{sqlMock: sqlMock, service: svc, repo: repo, roster: roster}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strPtr(v string) *string { return &v }

func TestTimesheetService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("derives hours from clock times", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		var saved *timesheet.Timesheet
		deps.repo.createFn = func(ctx context.Context, ts *timesheet.Timesheet) error {
			saved = ts
			return nil
		}

		resp, err := deps.service.Create(ctx, companyID, actorID, timesheet.CreateTimesheetRequest{
			EmployeeID: employeeID,
			JobID:      "JOB-1",
			JobTitle:   "Rewire kitchen",
			Date:       "2024-01-15",
			ClockIn:    strPtr("07:30"),
			ClockOut:   strPtr("16:00"),
			BreakMins:  30,
		})

		assert.NoError(t, err)
		assert.Equal(t, 8.0, resp.TotalHours)
		assert.Equal(t, timesheet.StatusPending, resp.Status)
		assert.Equal(t, "2024-01-15", resp.Date)
		assert.NotNil(t, saved)
		assert.True(t, saved.TotalHours.Equal(decimal.NewFromInt(8)))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("explicit total wins over clock times", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		expectTx(t, deps.sqlMock, true)

		total := 9.5
		resp, err := deps.service.Create(ctx, companyID, actorID, timesheet.CreateTimesheetRequest{
			EmployeeID: employeeID,
			JobID:      "JOB-1",
			JobTitle:   "Rewire kitchen",
			Date:       "2024-01-15",
			ClockIn:    strPtr("07:30"),
			ClockOut:   strPtr("08:00"),
			TotalHours: &total,
		})

		assert.NoError(t, err)
		assert.Equal(t, 9.5, resp.TotalHours)
	})

	t.Run("missing hours", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)

		_, err := deps.service.Create(ctx, companyID, actorID, timesheet.CreateTimesheetRequest{
			EmployeeID: employeeID,
			JobID:      "JOB-1",
			JobTitle:   "Rewire kitchen",
			Date:       "2024-01-15",
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrHoursRequired)
	})

	t.Run("clock out before clock in", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)

		_, err := deps.service.Create(ctx, companyID, actorID, timesheet.CreateTimesheetRequest{
			EmployeeID: employeeID,
			JobID:      "JOB-1",
			JobTitle:   "Rewire kitchen",
			Date:       "2024-01-15",
			ClockIn:    strPtr("16:00"),
			ClockOut:   strPtr("08:00"),
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidClockTime)
	})

	t.Run("invalid date", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		total := 4.0

		_, err := deps.service.Create(ctx, companyID, actorID, timesheet.CreateTimesheetRequest{
			EmployeeID: employeeID,
			Date:       "15/01/2024",
			TotalHours: &total,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidDateFormat)
	})

	t.Run("employee outside company", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.employeeBelongsToCompany = func(ctx context.Context, cid, eid string) (bool, error) {
			return false, nil
		}
		total := 4.0

		_, err := deps.service.Create(ctx, companyID, actorID, timesheet.CreateTimesheetRequest{
			EmployeeID: employeeID,
			JobID:      "JOB-1",
			JobTitle:   "Rewire kitchen",
			Date:       "2024-01-15",
			TotalHours: &total,
		})

		assert.ErrorIs(t, err, timesheeterrors.ErrEmployeeNotInCompany)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestTimesheetService_Review(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	id := uuid.New().String()

	t.Run("approve pending", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, tid string) (*timesheet.Timesheet, error) {
			return &timesheet.Timesheet{ID: uuid.MustParse(id), Status: timesheet.StatusPending}, nil
		}

		resp, err := deps.service.Approve(ctx, companyID, actorID, id)

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusApproved, resp.Status)
		if assert.NotNil(t, resp.ReviewedBy) {
			assert.Equal(t, actorID, *resp.ReviewedBy)
		}
	})

	t.Run("reject stores reason", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, tid string) (*timesheet.Timesheet, error) {
			return &timesheet.Timesheet{ID: uuid.MustParse(id), Status: timesheet.StatusPending}, nil
		}

		resp, err := deps.service.Reject(ctx, companyID, actorID, id, "wrong job")

		assert.NoError(t, err)
		assert.Equal(t, timesheet.StatusRejected, resp.Status)
		if assert.NotNil(t, resp.RejectionReason) {
			assert.Equal(t, "wrong job", *resp.RejectionReason)
		}
	})

	t.Run("already approved", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, tid string) (*timesheet.Timesheet, error) {
			return &timesheet.Timesheet{Status: timesheet.StatusApproved}, nil
		}

		_, err := deps.service.Reject(ctx, companyID, actorID, id, "late")

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidStatusTransition)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, companyID, actorID, id)

		assert.ErrorIs(t, err, timesheeterrors.ErrTimesheetNotFound)
	})
}

func TestTimesheetService_GetAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("passes parsed filter", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		deps.repo.findAllByCompanyFn = func(ctx context.Context, cid string, filter timesheet.TimesheetQueryFilter) ([]timesheet.Timesheet, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, timesheet.StatusApproved, filter.Status)
			if assert.NotNil(t, filter.From) {
				assert.Equal(t, "2024-01-15", filter.From.Format("2006-01-02"))
			}
			assert.Nil(t, filter.To)
			return []timesheet.Timesheet{{Status: timesheet.StatusApproved}}, nil
		}

		got, err := deps.service.GetAll(ctx, companyID, timesheet.GetTimesheetsFilterRequest{From: "2024-01-15", Status: timesheet.StatusApproved})

		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)

		_, err := deps.service.GetAll(ctx, companyID, timesheet.GetTimesheetsFilterRequest{Status: "Done"})

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidStatusFilter)
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)

		_, err := deps.service.GetAll(ctx, companyID, timesheet.GetTimesheetsFilterRequest{From: "2024-02-01", To: "2024-01-01"})

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidDateRange)
	})
}

func TestTimesheetService_PayrollEntries(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	aliceID := uuid.New()
	ghostID := uuid.New()
	workDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("aggregates approved rows with roster", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		deps.repo.findApprovedInPeriodFn = func(ctx context.Context, cid string, start, end time.Time) ([]timesheet.Timesheet, error) {
			assert.Equal(t, workDate, start)
			return []timesheet.Timesheet{
				{EmployeeID: aliceID, JobID: "J1", JobTitle: "Rewire", WorkDate: workDate, TotalHours: decimal.NewFromInt(10), Status: timesheet.StatusApproved},
				{EmployeeID: ghostID, JobID: "J1", JobTitle: "Rewire", WorkDate: workDate, TotalHours: decimal.NewFromInt(4), Status: timesheet.StatusApproved},
			}, nil
		}
		r := 20.0
		deps.roster.members = []timesheet.RosterMember{{ID: aliceID.String(), Name: "Alice", HourlyRate: &r}}

		got, err := deps.service.PayrollEntries(ctx, companyID, "2024-01-15", "2024-01-21")

		assert.NoError(t, err)
		assert.Equal(t, []string{ghostID.String()}, got.SkippedEmployeeIDs)
		if assert.Len(t, got.Entries, 1) {
			assert.Equal(t, 220.0, got.Entries[0].GrossPay)
		}
	})

	t.Run("inverted period", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)

		_, err := deps.service.PayrollEntries(ctx, companyID, "2024-01-21", "2024-01-15")

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidDateRange)
	})

	t.Run("roster failure propagates", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		deps.roster.err = errors.New("redis down")

		_, err := deps.service.PayrollEntries(ctx, companyID, "2024-01-15", "2024-01-21")

		assert.EqualError(t, err, "redis down")
	})
}

func TestTimesheetService_JobLabour(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	t.Run("computes variance", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		deps.repo.findByJobFn = func(ctx context.Context, cid, jobID string) ([]timesheet.Timesheet, error) {
			assert.Equal(t, "J1", jobID)
			return []timesheet.Timesheet{
				{EmployeeID: uuid.New(), JobID: "J1", JobTitle: "Rewire", TotalHours: decimal.NewFromInt(4), Status: timesheet.StatusApproved},
				{EmployeeID: uuid.New(), JobID: "J1", JobTitle: "Rewire", TotalHours: decimal.NewFromInt(2), Status: timesheet.StatusPending},
			}, nil
		}
		budget := 200.0

		got, err := deps.service.JobLabour(ctx, companyID, "J1", &budget)

		assert.NoError(t, err)
		assert.Equal(t, 100.0, got.ActualLabour)
		assert.Equal(t, 2.0, got.PendingHours)
		assert.Equal(t, 100.0, got.Variance)
		assert.Equal(t, 50.0, got.VariancePercent)
	})

	t.Run("negative budget", func(t *testing.T) {
		deps := setupTimesheetServiceTest(t)
		budget := -1.0

		_, err := deps.service.JobLabour(ctx, companyID, "J1", &budget)

		assert.ErrorIs(t, err, timesheeterrors.ErrInvalidBudget)
	})
}
