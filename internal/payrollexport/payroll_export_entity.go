package payrollexport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PayrollExport struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_payroll_exports_company_status;uniqueIndex:uq_payroll_export_period"`

	Provider    string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_payroll_export_period"`
	PeriodStart time.Time `gorm:"type:date;not null;uniqueIndex:uq_payroll_export_period"`
	PeriodEnd   time.Time `gorm:"type:date;not null;uniqueIndex:uq_payroll_export_period"`
	Status      string    `gorm:"type:varchar(20);not null;default:'draft';index:idx_payroll_exports_company_status"`

	FileName string `gorm:"type:varchar(200);not null"`
	Content  string `gorm:"type:text;not null"`

	EmployeeCount int             `gorm:"not null;default:0"`
	TotalHours    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	RegularHours  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OvertimeHours decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalGross    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ExportedAt *time.Time `gorm:"index"`
	SyncedBy   *uuid.UUID `gorm:"type:uuid"`
	SyncedAt   *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PayrollExport) TableName() string {
	return "payroll_exports"
}
