package payrollexport

import (
	"elec-payroll/internal/timesheet"

	"github.com/shopspring/decimal"
)

const (
	StatusDraft    = "draft"
	StatusExported = "exported"
	StatusSynced   = "synced"
)

type Totals struct {
	EmployeeCount int             `json:"employee_count"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	RegularHours  decimal.Decimal `json:"regular_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	TotalGross    decimal.Decimal `json:"total_gross"`
}

// AccountingExport is a batch of payroll entries bound to one provider and
// period. Status is carried, not enforced; see CanTransition.
type AccountingExport struct {
	Provider    Provider                 `json:"provider"`
	PeriodStart string                   `json:"period_start"`
	PeriodEnd   string                   `json:"period_end"`
	Status      string                   `json:"status"`
	Entries     []timesheet.PayrollEntry `json:"entries"`
	Totals      Totals                   `json:"totals"`
}

func NewAccountingExport(provider string, periodStart, periodEnd string, entries []timesheet.PayrollEntry) AccountingExport {
	p, _ := ParseProvider(provider)
	return AccountingExport{
		Provider:    p,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
		Status:      StatusDraft,
		Entries:     entries,
		Totals:      ComputeTotals(entries),
	}
}

func ComputeTotals(entries []timesheet.PayrollEntry) Totals {
	t := Totals{EmployeeCount: len(entries)}
	for _, e := range entries {
		regular := decimal.NewFromFloat(e.RegularHours)
		overtime := decimal.NewFromFloat(e.OvertimeHours)
		t.RegularHours = t.RegularHours.Add(regular)
		t.OvertimeHours = t.OvertimeHours.Add(overtime)
		t.TotalHours = t.TotalHours.Add(regular).Add(overtime)
		t.TotalGross = t.TotalGross.Add(decimal.NewFromFloat(e.GrossPay))
	}
	t.TotalGross = t.TotalGross.Round(2)
	return t
}

// CanTransition reports whether status may move from -> to.
// Allowed: draft -> exported -> synced.
func CanTransition(from, to string) bool {
	switch from {
	case StatusDraft:
		return to == StatusExported
	case StatusExported:
		return to == StatusSynced
	default:
		return false
	}
}
