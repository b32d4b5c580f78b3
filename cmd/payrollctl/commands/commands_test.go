package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"elec-payroll/internal/payrollexport"
	"elec-payroll/internal/timesheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entriesJSON = `[
  {"id":"t1","employee_id":"E1","job_id":"J1","job_title":"Rewire","date":"2024-01-15","total_hours":10,"status":"approved"},
  {"id":"t2","employee_id":"E2","job_id":"J1","job_title":"Rewire","date":"2024-01-16","total_hours":4,"status":"pending"},
  {"id":"t3","employee_id":"E9","job_id":"J2","job_title":"Panel","date":"2024-01-16","total_hours":3,"status":"approved"},
  {"id":"t4","employee_id":"E1","job_id":"J1","job_title":"Rewire","date":"2024-02-01","total_hours":6,"status":"approved"}
]`

const rosterJSON = `[
  {"id":"E1","name":"Alice","hourly_rate":20},
  {"id":"E2","name":"Bob"}
]`

func writeInputs(t *testing.T) (entries, roster string) {
	t.Helper()
	dir := t.TempDir()
	entries = filepath.Join(dir, "entries.json")
	roster = filepath.Join(dir, "roster.json")
	require.NoError(t, os.WriteFile(entries, []byte(entriesJSON), 0o600))
	require.NoError(t, os.WriteFile(roster, []byte(rosterJSON), 0o600))
	return entries, roster
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestExport_Stdout(t *testing.T) {
	entries, roster := writeInputs(t)

	out, err := run(t, "export", "--entries", entries, "--roster", roster,
		"--provider", "xero", "--from", "2024-01-15", "--to", "2024-01-21", "--stdout")

	require.NoError(t, err)
	assert.Equal(t,
		"Employee ID,Name,Period Start,Period End,Ordinary Hours,OT Hours,Hourly Rate,Gross Pay\n"+
			"E1,Alice,2024-01-15,2024-01-21,8.00,2.00,20.00,220.00",
		out)
}

func TestExport_File(t *testing.T) {
	entries, roster := writeInputs(t)
	outDir := t.TempDir()

	out, err := run(t, "export", "--entries", entries, "--roster", roster,
		"--provider", "Sage", "--from", "2024-01-15", "--to", "2024-01-21", "--out", outDir)

	require.NoError(t, err)
	name := payrollexport.ExportFileName("sage", "2024-01-15", "2024-01-21")
	assert.Contains(t, out, name)

	data, err := os.ReadFile(filepath.Join(outDir, name))
	require.NoError(t, err)
	assert.Equal(t,
		"Emp No,Name,Week Start,Week End,Basic Hours,OT Hours,Rate,Total\n"+
			`E1,"Alice",15/01/2024,21/01/2024,8.00,2.00,20.00,220.00`,
		string(data))
}

func TestExport_InvalidPeriod(t *testing.T) {
	entries, roster := writeInputs(t)

	_, err := run(t, "export", "--entries", entries, "--roster", roster,
		"--from", "2024-01-21", "--to", "2024-01-15", "--stdout")

	assert.ErrorContains(t, err, "before")
}

func TestExport_MissingEntriesFile(t *testing.T) {
	_, err := run(t, "export", "--entries", filepath.Join(t.TempDir(), "nope.json"),
		"--from", "2024-01-15", "--to", "2024-01-21", "--stdout")

	assert.Error(t, err)
}

func TestJobCosts(t *testing.T) {
	entries, roster := writeInputs(t)

	out, err := run(t, "job-costs", "--entries", entries, "--roster", roster,
		"--from", "2024-01-15", "--to", "2024-01-21")

	require.NoError(t, err)
	var got []payrollexport.JobCostReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	if assert.Len(t, got, 1) {
		assert.Equal(t, "J1", got[0].JobID)
		assert.Equal(t, 10.0, got[0].TotalHours)
		assert.Equal(t, 200.0, got[0].TotalCost)
	}
}

func TestJobLabour(t *testing.T) {
	entries, roster := writeInputs(t)

	out, err := run(t, "job-labour", "--entries", entries, "--roster", roster,
		"--job", "J1", "--budget", "500")

	require.NoError(t, err)
	var got timesheet.JobLabourSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Rewire", got.JobTitle)
	assert.Equal(t, 16.0, got.ApprovedHours)
	assert.Equal(t, 4.0, got.PendingHours)
	assert.Equal(t, 320.0, got.ActualLabour)
	assert.Equal(t, 180.0, got.Variance)
	assert.Equal(t, 36.0, got.VariancePercent)
}

func TestJobLabour_NoBudget(t *testing.T) {
	entries, roster := writeInputs(t)

	out, err := run(t, "job-labour", "--entries", entries, "--roster", roster, "--job", "J1")

	require.NoError(t, err)
	var got timesheet.JobLabourSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Zero(t, got.BudgetedLabour)
	assert.Zero(t, got.Variance)
}
