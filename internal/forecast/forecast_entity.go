package forecast

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History is one day of a published schedule, projected from the schedule
// lifecycle topic by the consumer. Actual hours and sales arrive later,
// once the day has been worked.
type History struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_schedule_history_company"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_schedule_history_location_date"`
	ScheduleID uuid.UUID `gorm:"type:uuid;not null"`

	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_schedule_history_location_date"`
	DayOfWeek int       `gorm:"type:int;not null;index:idx_schedule_history_dow"`

	ScheduledHours float64  `gorm:"type:numeric(8,2);not null;default:0"`
	ActualHours    float64  `gorm:"type:numeric(8,2);not null;default:0"`
	LaborCost      float64  `gorm:"type:numeric(10,2);not null;default:0"`
	ActualSales    *float64 `gorm:"type:numeric(12,2)"`
	ProjectedSales *float64 `gorm:"type:numeric(12,2)"`

	// JSON maps of position -> hours and position -> shift count
	PositionHours  []byte `gorm:"type:jsonb"`
	PositionShifts []byte `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_schedule_history_deleted_at"`
}

func (History) TableName() string {
	return "schedule_history"
}
