package employee

import (
	"errors"

	employeeerrors "elec-payroll/internal/employee/errors"
	"elec-payroll/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if constraint, ok := apperror.UniqueViolation(err); ok {
		switch constraint {
		case "uq_employee_number":
			return employeeerrors.ErrEmployeeNumberAlreadyExists
		case "uq_employee_email":
			return employeeerrors.ErrEmployeeAlreadyExists
		}
	}
	return err
}
