package shift

type CreateShiftRequest struct {
	LocationID   string   `json:"location_id" binding:"required,uuid"`
	ScheduleID   string   `json:"schedule_id" binding:"required,uuid"`
	EmployeeID   *string  `json:"employee_id" binding:"omitempty,uuid"`
	Position     string   `json:"position" binding:"required"`
	ShiftDate    string   `json:"shift_date" binding:"required"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
	BreakMinutes int      `json:"break_minutes" binding:"gte=0"`
	HourlyRate   *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Notes        string   `json:"notes"`
}

type UpdateShiftRequest struct {
	Position     string   `json:"position" binding:"required"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
	BreakMinutes int      `json:"break_minutes" binding:"gte=0"`
	HourlyRate   *float64 `json:"hourly_rate" binding:"omitempty,gte=0"`
	Notes        string   `json:"notes"`
}

type AssignShiftRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type TransitionShiftRequest struct {
	Status string `json:"status" binding:"required,oneof=SCHEDULED CONFIRMED IN_PROGRESS COMPLETED NO_SHOW OPEN CANCELLED"`
}

type ShiftResponse struct {
	ID               string   `json:"id"`
	CompanyID        string   `json:"company_id"`
	LocationID       string   `json:"location_id"`
	ScheduleID       string   `json:"schedule_id"`
	EmployeeID       *string  `json:"employee_id,omitempty"`
	Position         string   `json:"position"`
	ShiftDate        string   `json:"shift_date"`
	StartTime        string   `json:"start_time"`
	EndTime          string   `json:"end_time"`
	BreakMinutes     int      `json:"break_minutes"`
	HourlyRate       *float64 `json:"hourly_rate,omitempty"`
	TotalHours       float64  `json:"total_hours"`
	EstimatedCost    float64  `json:"estimated_cost"`
	ClockIn          *string  `json:"clock_in,omitempty"`
	ClockOut         *string  `json:"clock_out,omitempty"`
	ActualHours      float64  `json:"actual_hours"`
	Status           string   `json:"status"`
	RequiresCoverage bool     `json:"requires_coverage"`
	Notes            string   `json:"notes,omitempty"`
}
