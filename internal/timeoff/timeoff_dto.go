package timeoff

type CreateTimeOffRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LocationID  string `json:"location_id" binding:"required,uuid"`
	RequestType string `json:"request_type" binding:"required,oneof=VACATION SICK PERSONAL UNPAID"`
	StartDate   string `json:"start_date" binding:"required"`
	EndDate     string `json:"end_date" binding:"required"`
	Reason      string `json:"reason"`
}

type DenyTimeOffRequest struct {
	ReviewNote string `json:"review_note" binding:"required"`
}

type TimeOffResponse struct {
	ID          string  `json:"id"`
	CompanyID   string  `json:"company_id"`
	LocationID  string  `json:"location_id"`
	EmployeeID  string  `json:"employee_id"`
	RequestType string  `json:"request_type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	TotalDays   int     `json:"total_days"`
	Reason      string  `json:"reason"`
	Status      string  `json:"status"`
	CreatedBy   string  `json:"created_by"`
	ReviewedBy  *string `json:"reviewed_by,omitempty"`
	ReviewedAt  *string `json:"reviewed_at,omitempty"`
	ReviewNote  *string `json:"review_note,omitempty"`
}
