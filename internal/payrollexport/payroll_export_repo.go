package payrollexport

import (
	"context"
	"database/sql"

	"elec-payroll/internal/tenant"

	"gorm.io/gorm"
)

type ExportQueryFilter struct {
	Provider string
	Status   string
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, export *PayrollExport) error
	FindAllByCompany(ctx context.Context, companyID string, filter ExportQueryFilter) ([]PayrollExport, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollExport, error)
	Update(ctx context.Context, export *PayrollExport) error
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

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, export *PayrollExport) error {
	return r.conn(ctx).Create(export).Error
}

// FindAllByCompany omits the CSV body; use FindByIDAndCompany to read it.
func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter ExportQueryFilter) ([]PayrollExport, error) {
	db := r.conn(ctx).
		Omit("content").
		Scopes(tenant.Scope(companyID))

	if filter.Provider != "" {
		db = db.Where("provider = ?", filter.Provider)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}

	var exports []PayrollExport
	err := db.Order("period_start DESC, created_at DESC").Find(&exports).Error
	return exports, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollExport, error) {
	var export PayrollExport
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&export, "id = ?", id).Error
	return &export, err
}

func (r *repository) Update(ctx context.Context, export *PayrollExport) error {
	return r.conn(ctx).Save(export).Error
}
