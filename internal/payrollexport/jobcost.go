package payrollexport

import "elec-payroll/internal/timesheet"

type WorkerCost struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Hours        float64 `json:"hours"`
	Cost         float64 `json:"cost"`
}

type JobCostReport struct {
	JobID      string       `json:"job_id"`
	JobTitle   string       `json:"job_title"`
	TotalHours float64      `json:"total_hours"`
	TotalCost  float64      `json:"total_cost"`
	Workers    []WorkerCost `json:"workers"`
}

// BuildJobCostReport rolls job breakdowns up by job, with a per-worker split
// inside each job. Jobs and workers keep first-seen order.
func BuildJobCostReport(entries []timesheet.PayrollEntry) []JobCostReport {
	reports := make([]JobCostReport, 0)
	jobIndex := make(map[string]int)
	workerIndex := make(map[string]map[string]int)

	for _, e := range entries {
		for _, alloc := range e.JobBreakdown {
			ji, ok := jobIndex[alloc.JobID]
			if !ok {
				ji = len(reports)
				jobIndex[alloc.JobID] = ji
				workerIndex[alloc.JobID] = make(map[string]int)
				reports = append(reports, JobCostReport{
					JobID:    alloc.JobID,
					JobTitle: alloc.JobTitle,
					Workers:  []WorkerCost{},
				})
			}
			report := &reports[ji]
			report.TotalHours += alloc.Hours
			report.TotalCost += alloc.Cost

			wi, ok := workerIndex[alloc.JobID][e.EmployeeID]
			if !ok {
				wi = len(report.Workers)
				workerIndex[alloc.JobID][e.EmployeeID] = wi
				report.Workers = append(report.Workers, WorkerCost{
					EmployeeID:   e.EmployeeID,
					EmployeeName: e.EmployeeName,
				})
			}
			report.Workers[wi].Hours += alloc.Hours
			report.Workers[wi].Cost += alloc.Cost
		}
	}

	return reports
}
