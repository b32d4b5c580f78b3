package employee

type CreateEmployeeRequest struct {
	FullName         string   `json:"full_name" binding:"required"`
	Email            string   `json:"email" binding:"required,email"`
	EmployeeNumber   string   `json:"employee_number"`
	HourlyRate       *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	EmploymentStatus string   `json:"employment_status" binding:"omitempty,oneof=active inactive"`
}

type UpdateEmployeeRequest struct {
	FullName         string   `json:"full_name" binding:"required"`
	Email            string   `json:"email" binding:"required,email"`
	EmployeeNumber   string   `json:"employee_number"`
	HourlyRate       *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	EmploymentStatus string   `json:"employment_status" binding:"omitempty,oneof=active inactive"`
}

type EmployeeResponse struct {
	ID               string   `json:"id"`
	CompanyID        string   `json:"company_id"`
	EmployeeNumber   string   `json:"employee_number,omitempty"`
	FullName         string   `json:"full_name"`
	Email            string   `json:"email"`
	HourlyRate       *float64 `json:"hourly_rate,omitempty"`
	EmploymentStatus string   `json:"employment_status"`
}
