package payrollexport

import (
	"errors"

	payrollexporterrors "elec-payroll/internal/payrollexport/errors"
	"elec-payroll/internal/shared/apperror"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollexporterrors.ErrExportNotFound
	}
	if constraint, ok := apperror.UniqueViolation(err); ok && constraint == "uq_payroll_export_period" {
		return payrollexporterrors.ErrExportAlreadyExists
	}
	return err
}
