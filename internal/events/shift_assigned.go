package events

import "time"

const ShiftAssignedTopic = "ops.shift.assignment.v1"

type ShiftAssignedEvent struct {
	EventType  string    `json:"event_type"`
	ShiftID    string    `json:"shift_id"`
	ScheduleID string    `json:"schedule_id"`
	CompanyID  string    `json:"company_id"`
	EmployeeID string    `json:"employee_id"`
	ShiftDate  string    `json:"shift_date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	OccurredAt time.Time `json:"occurred_at"`
}
