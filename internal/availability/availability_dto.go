package availability

type CreateAvailabilityRequest struct {
	EmployeeID     string  `json:"employee_id" binding:"required,uuid"`
	LocationID     string  `json:"location_id" binding:"required,uuid"`
	DayOfWeek      *int    `json:"day_of_week" binding:"required,gte=0,lte=6"`
	StartTime      string  `json:"start_time" binding:"required"`
	EndTime        string  `json:"end_time" binding:"required"`
	IsPreferred    bool    `json:"is_preferred"`
	EffectiveDate  *string `json:"effective_date"`
	ExpirationDate *string `json:"expiration_date"`
	Notes          string  `json:"notes"`
}

type AvailabilityResponse struct {
	ID             string  `json:"id"`
	CompanyID      string  `json:"company_id"`
	LocationID     string  `json:"location_id"`
	EmployeeID     string  `json:"employee_id"`
	DayOfWeek      int     `json:"day_of_week"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	IsPreferred    bool    `json:"is_preferred"`
	EffectiveDate  *string `json:"effective_date,omitempty"`
	ExpirationDate *string `json:"expiration_date,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// EligibilityQuery describes a candidate shift window.
type EligibilityQuery struct {
	LocationID string `form:"location_id" json:"location_id" binding:"required,uuid"`
	Date       string `form:"date" json:"date" binding:"required"`
	StartTime  string `form:"start_time" json:"start_time" binding:"required"`
	EndTime    string `form:"end_time" json:"end_time" binding:"required"`
}

// EligibleEmployee is one assignment candidate, ordered preferred-first.
type EligibleEmployee struct {
	EmployeeID         string  `json:"employee_id"`
	FullName           string  `json:"full_name"`
	IsPreferred        bool    `json:"is_preferred"`
	ScheduledWeekHours float64 `json:"scheduled_week_hours"`
}
