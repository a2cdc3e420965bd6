package events

import "time"

const SchedulePublishedTopic = "ops.schedule.lifecycle.v1"

// SchedulePublishedDay carries one day's aggregates from a published
// schedule. The consumer turns each entry into a forecast history row.
type SchedulePublishedDay struct {
	Date           string             `json:"date"`
	DayOfWeek      int                `json:"day_of_week"`
	ScheduledHours float64            `json:"scheduled_hours"`
	LaborCost      float64            `json:"labor_cost"`
	PositionHours  map[string]float64 `json:"position_hours"`
	PositionShifts map[string]int     `json:"position_shifts"`
}

// SchedulePublishedEvent is emitted through the outbox when a draft
// schedule goes live.
type SchedulePublishedEvent struct {
	EventType      string                 `json:"event_type"`
	ScheduleID     string                 `json:"schedule_id"`
	CompanyID      string                 `json:"company_id"`
	LocationID     string                 `json:"location_id"`
	WeekStartDate  string                 `json:"week_start_date"`
	WeekEndDate    string                 `json:"week_end_date"`
	TotalShifts    int                    `json:"total_shifts"`
	ScheduledHours float64                `json:"scheduled_hours"`
	LaborCost      float64                `json:"labor_cost"`
	Days           []SchedulePublishedDay `json:"days"`
	OccurredAt     time.Time              `json:"occurred_at"`
}
