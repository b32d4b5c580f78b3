package timesheeterrors

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
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"period_start must be before or equal period_end",
		http.StatusBadRequest,
	)
	ErrInvalidClockTime = apperror.New(
		apperror.CodeInvalidInput,
		"clock_in and clock_out must be HH:MM with clock_out after clock_in",
		http.StatusBadRequest,
	)
	ErrHoursRequired = apperror.New(
		apperror.CodeInvalidInput,
		"either total_hours or clock_in and clock_out is required",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"invalid timesheet status filter",
		http.StatusBadRequest,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeInvalidInput,
		"employee does not belong to this company",
		http.StatusBadRequest,
	)
	ErrTimesheetNotFound = apperror.New(
		apperror.CodeNotFound,
		"timesheet not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"only pending timesheets can be approved or rejected",
		http.StatusBadRequest,
	)
	ErrJobIDRequired = apperror.New(
		apperror.CodeInvalidInput,
		"job id is required",
		http.StatusBadRequest,
	)
	ErrInvalidBudget = apperror.New(
		apperror.CodeInvalidInput,
		"budget cannot be negative",
		http.StatusBadRequest,
	)
)
