package timesheet

import (
	"context"
	"database/sql"
	"time"

	"elec-payroll/internal/tenant"

	"gorm.io/gorm"
)

type TimesheetQueryFilter struct {
	From       *time.Time
	To         *time.Time
	Status     string
	EmployeeID string
	JobID      string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Timesheet) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Timesheet, error)
	FindAllByCompany(ctx context.Context, companyID string, filter TimesheetQueryFilter) ([]Timesheet, error)
	FindApprovedInPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]Timesheet, error)
	FindByJob(ctx context.Context, companyID, jobID string) ([]Timesheet, error)
	Update(ctx context.Context, t *Timesheet) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn routes statements through the bound *sql.Tx when one is set.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, t *Timesheet) error {
	return r.conn(ctx).Create(t).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Timesheet, error) {
	var t Timesheet
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter TimesheetQueryFilter) ([]Timesheet, error) {
	db := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee")

	if filter.From != nil {
		db = db.Where("work_date >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("work_date <= ?", *filter.To)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.JobID != "" {
		db = db.Where("job_id = ?", filter.JobID)
	}

	var rows []Timesheet
	err := db.Order("work_date DESC, created_at DESC").Find(&rows).Error
	return rows, err
}

// FindApprovedInPeriod keeps insertion order so aggregation sees employees in
// the order their entries were recorded.
func (r *repository) FindApprovedInPeriod(ctx context.Context, companyID string, periodStart, periodEnd time.Time) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Employee").
		Where("status = ?", StatusApproved).
		Where("work_date BETWEEN ? AND ?", periodStart, periodEnd).
		Order("work_date ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByJob(ctx context.Context, companyID, jobID string) ([]Timesheet, error) {
	var rows []Timesheet
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("job_id = ?", jobID).
		Order("work_date ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, t *Timesheet) error {
	return r.conn(ctx).Save(t).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
