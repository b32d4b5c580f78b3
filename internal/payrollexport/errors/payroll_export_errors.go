package payrollexporterrors

import (
	"net/http"

	"elec-payroll/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)
	ErrNoPayrollEntries = apperror.New(
		apperror.CodeInvalidInput,
		"no approved timesheets in this period",
		http.StatusUnprocessableEntity,
	)
	ErrExportNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll export not found",
		http.StatusNotFound,
	)
	ErrExportAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an export for this provider and period already exists",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"export status cannot move to the requested state",
		http.StatusBadRequest,
	)
	ErrExportRenderFailed = apperror.New(
		apperror.CodeInternalError,
		"payroll export could not be rendered",
		http.StatusInternalServerError,
	)
)
