package timesheet

type CreateTimesheetRequest struct {
	EmployeeID string   `json:"employee_id" binding:"required,uuid"`
	JobID      string   `json:"job_id" binding:"required"`
	JobTitle   string   `json:"job_title" binding:"required"`
	Date       string   `json:"date" binding:"required"`
	ClockIn    *string  `json:"clock_in"`
	ClockOut   *string  `json:"clock_out"`
	BreakMins  int      `json:"break_mins" binding:"gte=0"`
	TotalHours *float64 `json:"total_hours" binding:"omitempty,gte=0,lte=24"`
}

type RejectTimesheetRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type GetTimesheetsFilterRequest struct {
	From       string `form:"from"`
	To         string `form:"to"`
	Status     string `form:"status"`
	EmployeeID string `form:"employee_id"`
	JobID      string `form:"job_id"`
}

type JobLabourQuery struct {
	Budget *float64 `form:"budget"`
}

type PayrollPeriodQuery struct {
	PeriodStart string `form:"period_start" binding:"required"`
	PeriodEnd   string `form:"period_end" binding:"required"`
}

type TimesheetResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	JobID           string  `json:"job_id"`
	JobTitle        string  `json:"job_title"`
	Date            string  `json:"date"`
	ClockIn         *string `json:"clock_in,omitempty"`
	ClockOut        *string `json:"clock_out,omitempty"`
	BreakMins       int     `json:"break_mins"`
	TotalHours      float64 `json:"total_hours"`
	Status          string  `json:"status"`
	CreatedBy       string  `json:"created_by"`
	ReviewedBy      *string `json:"reviewed_by,omitempty"`
	ReviewedAt      *string `json:"reviewed_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type PayrollEntriesResponse struct {
	PeriodStart        string         `json:"period_start"`
	PeriodEnd          string         `json:"period_end"`
	Entries            []PayrollEntry `json:"entries"`
	SkippedEmployeeIDs []string       `json:"skipped_employee_ids,omitempty"`
}
