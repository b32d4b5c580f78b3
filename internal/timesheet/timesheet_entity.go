package timesheet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Timesheet struct {
	ID         uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID    `gorm:"column:company_id;type:uuid;not null;index:idx_timesheets_company_date"`
	EmployeeID uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;index"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`

	JobID     string    `gorm:"column:job_id;type:varchar(64);not null;index"`
	JobTitle  string    `gorm:"column:job_title;type:varchar(200);not null"`
	WorkDate  time.Time `gorm:"column:work_date;type:date;not null;index:idx_timesheets_company_date"`
	ClockIn   *string   `gorm:"column:clock_in;type:varchar(5)"`
	ClockOut  *string   `gorm:"column:clock_out;type:varchar(5)"`
	BreakMins int       `gorm:"column:break_mins;not null;default:0"`

	// Jam kerja disimpan numeric(6,2), dibaca sebagai float saat agregasi.
	TotalHours decimal.Decimal `gorm:"column:total_hours;type:numeric(6,2);not null;default:0"`

	Status          string     `gorm:"column:status;type:varchar(20);not null;default:'Pending';index"`
	CreatedBy       uuid.UUID  `gorm:"column:created_by;type:uuid;not null"`
	ReviewedBy      *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt      *time.Time `gorm:"column:reviewed_at"`
	RejectionReason *string    `gorm:"column:rejection_reason;type:text"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

type EmployeeRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}
