package shift

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusScheduled  = "SCHEDULED"
	StatusConfirmed  = "CONFIRMED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusNoShow     = "NO_SHOW"
	StatusOpen       = "OPEN"
	StatusCancelled  = "CANCELLED"
)

type Shift struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_shifts_company_date"`
	LocationID uuid.UUID  `gorm:"type:uuid;not null;index:idx_shifts_location_date"`
	ScheduleID uuid.UUID  `gorm:"type:uuid;not null;index:idx_shifts_schedule"`
	EmployeeID *uuid.UUID `gorm:"type:uuid;index:idx_shifts_employee_date"`

	// Free-text role tag, e.g. "line cook" or "server"
	Position string `gorm:"type:varchar(60);not null"`

	ShiftDate    time.Time `gorm:"type:date;not null;index:idx_shifts_company_date,idx_shifts_location_date,idx_shifts_employee_date"`
	StartTime    string    `gorm:"type:varchar(5);not null"`
	EndTime      string    `gorm:"type:varchar(5);not null"`
	BreakMinutes int       `gorm:"type:int;not null;default:0"`

	HourlyRate    *float64 `gorm:"type:numeric(8,2)"`
	TotalHours    float64  `gorm:"type:numeric(6,2);not null;default:0"`
	EstimatedCost float64  `gorm:"type:numeric(10,2);not null;default:0"`

	ClockIn     *time.Time
	ClockOut    *time.Time
	ActualHours float64 `gorm:"type:numeric(6,2);not null;default:0"`

	Status           string `gorm:"type:varchar(20);not null;default:'SCHEDULED';index:idx_shifts_status"`
	RequiresCoverage bool   `gorm:"not null;default:false"`
	Notes            string `gorm:"type:text"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_shifts_deleted_at"`
}
