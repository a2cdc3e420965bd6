package employee

type CreateEmployeeRequest struct {
	LocationID     string   `json:"location_id" binding:"omitempty,uuid"`
	EmployeeNumber string   `json:"employee_number"`
	FullName       string   `json:"full_name" binding:"required"`
	Email          string   `json:"email" binding:"omitempty,email"`
	Phone          string   `json:"phone"`
	Position       string   `json:"position"`
	HourlyRate     *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
}

type UpdateEmployeeRequest struct {
	LocationID string   `json:"location_id" binding:"omitempty,uuid"`
	FullName   string   `json:"full_name" binding:"required"`
	Phone      string   `json:"phone"`
	Position   string   `json:"position"`
	HourlyRate *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	IsActive   *bool    `json:"is_active"`
}

type EmployeeResponse struct {
	ID             string   `json:"id"`
	CompanyID      string   `json:"company_id"`
	LocationID     *string  `json:"location_id,omitempty"`
	EmployeeNumber string   `json:"employee_number"`
	FullName       string   `json:"full_name"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Position       string   `json:"position,omitempty"`
	HourlyRate     *float64 `json:"hourly_rate,omitempty"`
	IsActive       bool     `json:"is_active"`
}
