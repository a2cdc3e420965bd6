package schedule

import "github.com/justinnewbold/PattyShack-sub001/internal/shift"

type CreateScheduleRequest struct {
	LocationID    string `json:"location_id" binding:"required,uuid"`
	Name          string `json:"name" binding:"required,min=2,max=120"`
	WeekStartDate string `json:"week_start_date" binding:"required"`
	Notes         string `json:"notes" binding:"omitempty,max=2000"`
}

type ScheduleResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	LocationID    string  `json:"location_id"`
	Name          string  `json:"name"`
	WeekStartDate string  `json:"week_start_date"`
	WeekEndDate   string  `json:"week_end_date"`
	Status        string  `json:"status"`
	PublishedAt   *string `json:"published_at,omitempty"`
	PublishedBy   *string `json:"published_by,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

type ScheduleDetailResponse struct {
	ScheduleResponse
	Shifts []shift.ShiftResponse `json:"shifts"`
}

// AutoAssignment records one shift filled during an auto-assign run.
type AutoAssignment struct {
	ShiftID      string `json:"shift_id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
}

// AutoAssignReport summarizes an auto-assign run. Remaining shifts stay
// open; the run never fails because some shifts found no one.
type AutoAssignReport struct {
	ScheduleID      string           `json:"schedule_id"`
	TotalUnassigned int              `json:"total_unassigned"`
	Assigned        int              `json:"assigned"`
	Remaining       int              `json:"remaining"`
	Assignments     []AutoAssignment `json:"assignments"`
}
