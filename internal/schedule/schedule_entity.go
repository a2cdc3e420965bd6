package schedule

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
)

// Schedule is a weekly plan for one location. The week window is fixed at
// creation (Monday through Sunday) and never changes afterwards.
type Schedule struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_schedules_location_week"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_schedules_location_week"`

	Name          string    `gorm:"type:varchar(120);not null"`
	WeekStartDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_schedules_location_week"`
	WeekEndDate   time.Time `gorm:"type:date;not null"`

	Status      string     `gorm:"type:varchar(20);not null;default:'DRAFT';index:idx_schedules_status"`
	PublishedAt *time.Time
	PublishedBy *uuid.UUID `gorm:"type:uuid"`

	Notes     string    `gorm:"type:text"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_schedules_deleted_at"`
}
