package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"elec-payroll/internal/shared/calendar"
	"elec-payroll/internal/timesheet"

	"go.uber.org/zap"
)

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// loadInputs reads the entries file and the optional roster file.
func loadInputs() ([]timesheet.TimeEntry, timesheet.Roster, error) {
	var entries []timesheet.TimeEntry
	if err := readJSON(entriesPath, &entries); err != nil {
		return nil, timesheet.Roster{}, err
	}

	var members []timesheet.RosterMember
	if rosterPath != "" {
		if err := readJSON(rosterPath, &members); err != nil {
			return nil, timesheet.Roster{}, err
		}
	}
	return entries, timesheet.NewRoster(members), nil
}

func checkPeriod(from, to string) error {
	start, err := calendar.ParseISODate(from)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	end, err := calendar.ParseISODate(to)
	if err != nil {
		return fmt.Errorf("invalid --to: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return nil
}

func payrollEntries(from, to string) ([]timesheet.PayrollEntry, error) {
	if err := checkPeriod(from, to); err != nil {
		return nil, err
	}
	entries, roster, err := loadInputs()
	if err != nil {
		return nil, err
	}
	payroll, skipped := timesheet.GeneratePayrollEntries(entries, roster, from, to)
	if len(skipped) > 0 {
		logger.Warn("employees missing from roster were skipped", zap.Strings("employee_ids", skipped))
	}
	return payroll, nil
}
