package payrollexport

import "elec-payroll/internal/timesheet"

type CreateExportRequest struct {
	Provider    string `json:"provider" binding:"required"`
	PeriodStart string `json:"period_start" binding:"required"`
	PeriodEnd   string `json:"period_end" binding:"required"`
}

type GetExportsFilterRequest struct {
	Provider string `form:"provider"`
	Status   string `form:"status" binding:"omitempty,oneof=draft exported synced"`
}

type JobCostQuery struct {
	PeriodStart string `form:"period_start" binding:"required"`
	PeriodEnd   string `form:"period_end" binding:"required"`
}

type ExportResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	Provider    string  `json:"provider"`
	PeriodStart string  `json:"period_start"`
	PeriodEnd   string  `json:"period_end"`
	Status      string  `json:"status"`
	FileName    string  `json:"file_name"`
	Totals      Totals  `json:"totals"`
	CreatedBy   string  `json:"created_by"`
	ExportedAt  *string `json:"exported_at,omitempty"`
	SyncedBy    *string `json:"synced_by,omitempty"`
	SyncedAt    *string `json:"synced_at,omitempty"`
}

type CreateExportResponse struct {
	ExportResponse
	Entries            []timesheet.PayrollEntry `json:"entries"`
	SkippedEmployeeIDs []string                 `json:"skipped_employee_ids,omitempty"`
}

type JobCostResponse struct {
	PeriodStart string          `json:"period_start"`
	PeriodEnd   string          `json:"period_end"`
	Jobs        []JobCostReport `json:"jobs"`
}

// ExportFile is a rendered export ready to be saved or served.
type ExportFile struct {
	Name    string
	Content []byte
}
