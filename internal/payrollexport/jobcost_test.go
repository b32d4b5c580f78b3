package payrollexport_test

import (
	"testing"

	"elec-payroll/internal/payrollexport"
	"elec-payroll/internal/timesheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildJobCostReport(t *testing.T) {
	entries := []timesheet.PayrollEntry{
		{
			EmployeeID:   "E1",
			EmployeeName: "Alice",
			JobBreakdown: []timesheet.JobAllocation{
				{JobID: "J1", JobTitle: "Rewire", Hours: 10, Cost: 220},
				{JobID: "J2", JobTitle: "Panel", Hours: 4, Cost: 80},
			},
		},
		{
			EmployeeID:   "E2",
			EmployeeName: "Bob",
			JobBreakdown: []timesheet.JobAllocation{
				{JobID: "J1", JobTitle: "Rewire", Hours: 6, Cost: 180},
			},
		},
	}

	got := payrollexport.BuildJobCostReport(entries)

	require.Len(t, got, 2)
	j1 := got[0]
	assert.Equal(t, "J1", j1.JobID)
	assert.Equal(t, "Rewire", j1.JobTitle)
	assert.Equal(t, 16.0, j1.TotalHours)
	assert.Equal(t, 400.0, j1.TotalCost)
	assert.Equal(t, []payrollexport.WorkerCost{
		{EmployeeID: "E1", EmployeeName: "Alice", Hours: 10, Cost: 220},
		{EmployeeID: "E2", EmployeeName: "Bob", Hours: 6, Cost: 180},
	}, j1.Workers)

	assert.Equal(t, "J2", got[1].JobID)
	assert.Len(t, got[1].Workers, 1)
}

func TestBuildJobCostReport_Empty(t *testing.T) {
	got := payrollexport.BuildJobCostReport(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}
