// Package domain holds the authorization vocabulary shared by the RBAC
// service, its middleware and every route table.
package domain

// Resources match permissions.resource in the rbac migration.
const (
	ResourceEmployee  = "employee"
	ResourceTimesheet = "timesheet"
	ResourcePayroll   = "payroll"
	ResourceExport    = "export"
)

// Actions match permissions.action in the rbac migration.
const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionSync    = "sync"
)

// EnforceRequest asks whether an employee may perform action on resource
// within a company.
type EnforceRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	CompanyID  string `json:"company_id" binding:"required"`
	Resource   string `json:"resource" binding:"required,oneof=employee timesheet payroll export"`
	Action     string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
