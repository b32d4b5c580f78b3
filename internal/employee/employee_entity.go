package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID        `gorm:"type:uuid;index"`
	EmployeeNumber   string           `gorm:"column:employee_number"`
	FullName         string           `gorm:"column:full_name"`
	Email            string           `gorm:"uniqueIndex"`
	HourlyRate       *decimal.Decimal `gorm:"column:hourly_rate;type:numeric(10,2)"`
	EmploymentStatus string           `gorm:"column:employment_status;default:'active'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}
