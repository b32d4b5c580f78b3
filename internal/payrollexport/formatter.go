package payrollexport

import (
	"fmt"
	"strings"

	"elec-payroll/internal/shared/calendar"
	"elec-payroll/internal/timesheet"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type xeroRow struct {
	EmployeeID    string `csv:"Employee ID"`
	Name          string `csv:"Name"`
	PeriodStart   string `csv:"Period Start"`
	PeriodEnd     string `csv:"Period End"`
	OrdinaryHours string `csv:"Ordinary Hours"`
	OTHours       string `csv:"OT Hours"`
	HourlyRate    string `csv:"Hourly Rate"`
	GrossPay      string `csv:"Gross Pay"`
}

type sageRow struct {
	EmpNo      string `csv:"Emp No"`
	Name       string `csv:"Name"`
	WeekStart  string `csv:"Week Start"`
	WeekEnd    string `csv:"Week End"`
	BasicHours string `csv:"Basic Hours"`
	OTHours    string `csv:"OT Hours"`
	Rate       string `csv:"Rate"`
	Total      string `csv:"Total"`
}

type quickBooksRow struct {
	Employee       string `csv:"Employee"`
	PayPeriod      string `csv:"Pay Period"`
	RegularHours   string `csv:"Regular Hours"`
	OvertimeHours  string `csv:"Overtime Hours"`
	PayRate        string `csv:"Pay Rate"`
	GrossWages     string `csv:"Gross Wages"`
	JobAllocations string `csv:"Job Allocations"`
}

type genericRow struct {
	EmployeeID    string `csv:"Employee ID"`
	EmployeeName  string `csv:"Employee Name"`
	PeriodStart   string `csv:"Period Start"`
	PeriodEnd     string `csv:"Period End"`
	RegularHours  string `csv:"Regular Hours"`
	OvertimeHours string `csv:"Overtime Hours"`
	HourlyRate    string `csv:"Hourly Rate"`
	RegularPay    string `csv:"Regular Pay"`
	OvertimePay   string `csv:"Overtime Pay"`
	GrossPay      string `csv:"Gross Pay"`
}

// schema describes one provider layout. quoted holds the column indexes that
// are always wrapped in double quotes on data rows.
type schema struct {
	header []string
	quoted []int
	rows   func(entries []timesheet.PayrollEntry) any
}

var schemas = map[Provider]schema{
	ProviderXero: {
		header: []string{"Employee ID", "Name", "Period Start", "Period End", "Ordinary Hours", "OT Hours", "Hourly Rate", "Gross Pay"},
		rows:   xeroRows,
	},
	ProviderSage: {
		header: []string{"Emp No", "Name", "Week Start", "Week End", "Basic Hours", "OT Hours", "Rate", "Total"},
		quoted: []int{1},
		rows:   sageRows,
	},
	ProviderQuickBooks: {
		header: []string{"Employee", "Pay Period", "Regular Hours", "Overtime Hours", "Pay Rate", "Gross Wages", "Job Allocations"},
		quoted: []int{0, 6},
		rows:   quickBooksRows,
	},
	ProviderCSV: {
		header: []string{"Employee ID", "Employee Name", "Period Start", "Period End", "Regular Hours", "Overtime Hours", "Hourly Rate", "Regular Pay", "Overtime Pay", "Gross Pay"},
		quoted: []int{1},
		rows:   genericRows,
	},
}

func init() {
	schemas[ProviderIntuit] = schemas[ProviderQuickBooks]
}

// Header returns the column names for provider, falling back to the generic
// schema for unknown providers.
func Header(provider string) []string {
	p, _ := ParseProvider(provider)
	return append([]string(nil), schemas[p].header...)
}

// FormatForProvider renders entries in the column layout of provider. Rows are
// joined with "\n" without a trailing newline. Numbers carry two decimals.
// Fields containing a comma, quote or line break are quoted with embedded
// quotes doubled; name and allocation columns are quoted regardless.
func FormatForProvider(provider string, entries []timesheet.PayrollEntry) (string, error) {
	p, _ := ParseProvider(provider)
	s := schemas[p]

	w := newQuotingWriter(s.quoted)
	if len(entries) == 0 {
		_ = w.Write(s.header)
		return w.String(), nil
	}
	if err := gocsv.MarshalCSV(s.rows(entries), w); err != nil {
		return "", fmt.Errorf("marshal %s rows: %w", p, err)
	}
	return w.String(), nil
}

func xeroRows(entries []timesheet.PayrollEntry) any {
	rows := make([]xeroRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, xeroRow{
			EmployeeID:    e.EmployeeID,
			Name:          e.EmployeeName,
			PeriodStart:   e.PeriodStart,
			PeriodEnd:     e.PeriodEnd,
			OrdinaryHours: fixed2(e.RegularHours),
			OTHours:       fixed2(e.OvertimeHours),
			HourlyRate:    fixed2(e.HourlyRate),
			GrossPay:      fixed2(e.GrossPay),
		})
	}
	return &rows
}

func sageRows(entries []timesheet.PayrollEntry) any {
	rows := make([]sageRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, sageRow{
			EmpNo:      e.EmployeeID,
			Name:       e.EmployeeName,
			WeekStart:  calendar.ToSageDate(e.PeriodStart),
			WeekEnd:    calendar.ToSageDate(e.PeriodEnd),
			BasicHours: fixed2(e.RegularHours),
			OTHours:    fixed2(e.OvertimeHours),
			Rate:       fixed2(e.HourlyRate),
			Total:      fixed2(e.GrossPay),
		})
	}
	return &rows
}

func quickBooksRows(entries []timesheet.PayrollEntry) any {
	rows := make([]quickBooksRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, quickBooksRow{
			Employee:       e.EmployeeName,
			PayPeriod:      e.PeriodStart + " to " + e.PeriodEnd,
			RegularHours:   fixed2(e.RegularHours),
			OvertimeHours:  fixed2(e.OvertimeHours),
			PayRate:        fixed2(e.HourlyRate),
			GrossWages:     fixed2(e.GrossPay),
			JobAllocations: jobAllocations(e.JobBreakdown),
		})
	}
	return &rows
}

func genericRows(entries []timesheet.PayrollEntry) any {
	rows := make([]genericRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, genericRow{
			EmployeeID:    e.EmployeeID,
			EmployeeName:  e.EmployeeName,
			PeriodStart:   e.PeriodStart,
			PeriodEnd:     e.PeriodEnd,
			RegularHours:  fixed2(e.RegularHours),
			OvertimeHours: fixed2(e.OvertimeHours),
			HourlyRate:    fixed2(e.HourlyRate),
			RegularPay:    fixed2(e.RegularHours * e.HourlyRate),
			OvertimePay:   fixed2(e.OvertimeHours * e.HourlyRate * timesheet.OvertimeMultiplier),
			GrossPay:      fixed2(e.GrossPay),
		})
	}
	return &rows
}

// jobAllocations renders "title: 8h; other: 2.5h".
func jobAllocations(breakdown []timesheet.JobAllocation) string {
	parts := make([]string, 0, len(breakdown))
	for _, a := range breakdown {
		parts = append(parts, a.JobTitle+": "+decimal.NewFromFloat(a.Hours).Round(2).String()+"h")
	}
	return strings.Join(parts, "; ")
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// quotingWriter implements gocsv.CSVWriter with per-column forced quoting and
// newline-joined rows.
type quotingWriter struct {
	buf    strings.Builder
	quoted map[int]bool
	rows   int
}

func newQuotingWriter(quoted []int) *quotingWriter {
	w := &quotingWriter{quoted: make(map[int]bool, len(quoted))}
	for _, i := range quoted {
		w.quoted[i] = true
	}
	return w
}

func (w *quotingWriter) Write(row []string) error {
	if w.rows > 0 {
		w.buf.WriteByte('\n')
	}
	header := w.rows == 0
	for i, field := range row {
		if i > 0 {
			w.buf.WriteByte(',')
		}
		w.buf.WriteString(escapeField(field, !header && w.quoted[i]))
	}
	w.rows++
	return nil
}

func (w *quotingWriter) Flush() {}

func (w *quotingWriter) Error() error { return nil }

func (w *quotingWriter) String() string {
	return w.buf.String()
}

func escapeField(v string, force bool) string {
	if force || strings.ContainsAny(v, ",\"\r\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}
