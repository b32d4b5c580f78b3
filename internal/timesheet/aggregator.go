package timesheet

import "elec-payroll/internal/shared/calendar"

const (
	// DefaultHourlyRate is applied when an employee is missing from the roster
	// or has no rate recorded.
	DefaultHourlyRate = 25.0

	// RegularHoursPerDay caps the regular component of a single entry.
	RegularHoursPerDay = 8.0

	// OvertimeMultiplier is fixed and not configurable.
	OvertimeMultiplier = 1.5
)

// TimeEntry is the aggregation input. Date is an ISO date string.
type TimeEntry struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	JobID        string  `json:"job_id"`
	JobTitle     string  `json:"job_title"`
	Date         string  `json:"date"`
	TotalHours   float64 `json:"total_hours"`
	Status       string  `json:"status"`
}

type RosterMember struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	HourlyRate *float64 `json:"hourly_rate,omitempty"`
}

// Roster is an ordered employee list with id lookup.
type Roster struct {
	members []RosterMember
	byID    map[string]int
}

func NewRoster(members []RosterMember) Roster {
	r := Roster{members: members, byID: make(map[string]int, len(members))}
	for i, m := range members {
		if _, seen := r.byID[m.ID]; !seen {
			r.byID[m.ID] = i
		}
	}
	return r
}

func (r Roster) Lookup(employeeID string) (RosterMember, bool) {
	i, ok := r.byID[employeeID]
	if !ok {
		return RosterMember{}, false
	}
	return r.members[i], true
}

// RateFor returns the employee's hourly rate. defaulted is true when
// DefaultHourlyRate was used instead of a recorded rate.
func (r Roster) RateFor(employeeID string) (rate float64, defaulted bool) {
	m, ok := r.Lookup(employeeID)
	if !ok || m.HourlyRate == nil {
		return DefaultHourlyRate, true
	}
	return *m.HourlyRate, false
}

func (r Roster) Members() []RosterMember {
	return r.members
}

type JobAllocation struct {
	JobID    string  `json:"job_id"`
	JobTitle string  `json:"job_title"`
	Hours    float64 `json:"hours"`
	Cost     float64 `json:"cost"`
}

type PayrollEntry struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	RegularHours  float64         `json:"regular_hours"`
	OvertimeHours float64         `json:"overtime_hours"`
	HourlyRate    float64         `json:"hourly_rate"`
	GrossPay      float64         `json:"gross_pay"`
	JobBreakdown  []JobAllocation `json:"job_breakdown"`
}

type JobLabourSummary struct {
	JobID           string  `json:"job_id"`
	JobTitle        string  `json:"job_title"`
	BudgetedLabour  float64 `json:"budgeted_labour"`
	ActualLabour    float64 `json:"actual_labour"`
	ApprovedHours   float64 `json:"approved_hours"`
	PendingHours    float64 `json:"pending_hours"`
	Variance        float64 `json:"variance"`
	VariancePercent float64 `json:"variance_percent"`
}

// SplitDailyHours applies the per-entry overtime rule: the first 8 hours of an
// entry are regular, anything beyond is overtime.
func SplitDailyHours(totalHours float64) (regular, overtime float64) {
	if totalHours <= RegularHoursPerDay {
		return totalHours, 0
	}
	return RegularHoursPerDay, totalHours - RegularHoursPerDay
}

func GrossPay(regularHours, overtimeHours, rate float64) float64 {
	return regularHours*rate + overtimeHours*rate*OvertimeMultiplier
}

// ComputeJobLabour summarises approved and pending labour for one job. Budget
// fields and variance are filled only when budget is non-nil; variance is
// budget minus actual, so a positive value means under budget.
func ComputeJobLabour(entries []TimeEntry, roster Roster, jobID string, budget *float64) JobLabourSummary {
	summary := JobLabourSummary{JobID: jobID}
	titled := false

	for _, e := range entries {
		if e.JobID != jobID {
			continue
		}
		if !titled {
			summary.JobTitle = e.JobTitle
			titled = true
		}

		switch e.Status {
		case StatusApproved:
			rate, _ := roster.RateFor(e.EmployeeID)
			summary.ApprovedHours += e.TotalHours
			summary.ActualLabour += e.TotalHours * rate
		case StatusPending:
			summary.PendingHours += e.TotalHours
		}
	}

	if budget != nil {
		summary.BudgetedLabour = *budget
		summary.Variance = *budget - summary.ActualLabour
		if *budget != 0 {
			summary.VariancePercent = summary.Variance / *budget * 100
		}
	}

	return summary
}

// GeneratePayrollEntries builds one PayrollEntry per employee with approved
// entries dated inside [periodStart, periodEnd]. Output follows the order in
// which employees first appear in entries. Employees missing from the roster
// produce no entry; their ids are returned as skipped, in first-seen order.
func GeneratePayrollEntries(entries []TimeEntry, roster Roster, periodStart, periodEnd string) ([]PayrollEntry, []string) {
	var order []string
	grouped := make(map[string][]TimeEntry)

	for _, e := range entries {
		if e.Status != StatusApproved || !calendar.InPeriod(e.Date, periodStart, periodEnd) {
			continue
		}
		if _, seen := grouped[e.EmployeeID]; !seen {
			order = append(order, e.EmployeeID)
		}
		grouped[e.EmployeeID] = append(grouped[e.EmployeeID], e)
	}

	result := make([]PayrollEntry, 0, len(order))
	var skipped []string

	for _, employeeID := range order {
		member, ok := roster.Lookup(employeeID)
		if !ok {
			skipped = append(skipped, employeeID)
			continue
		}
		rate, _ := roster.RateFor(employeeID)

		pe := PayrollEntry{
			EmployeeID:   employeeID,
			EmployeeName: member.Name,
			PeriodStart:  periodStart,
			PeriodEnd:    periodEnd,
			HourlyRate:   rate,
			JobBreakdown: []JobAllocation{},
		}
		jobIndex := make(map[string]int)

		for _, e := range grouped[employeeID] {
			regular, overtime := SplitDailyHours(e.TotalHours)
			pe.RegularHours += regular
			pe.OvertimeHours += overtime

			i, ok := jobIndex[e.JobID]
			if !ok {
				i = len(pe.JobBreakdown)
				jobIndex[e.JobID] = i
				pe.JobBreakdown = append(pe.JobBreakdown, JobAllocation{JobID: e.JobID, JobTitle: e.JobTitle})
			}
			pe.JobBreakdown[i].Hours += e.TotalHours
			pe.JobBreakdown[i].Cost += e.TotalHours * rate
		}

		pe.GrossPay = GrossPay(pe.RegularHours, pe.OvertimeHours, rate)
		result = append(result, pe)
	}

	return result, skipped
}
