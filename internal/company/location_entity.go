package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is a single store under a company. Shifts, schedules and
// forecasts all hang off a location, never off the company directly.
type Location struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_locations_company_name"`
	Name      string         `gorm:"type:varchar(150);not null;uniqueIndex:idx_locations_company_name"`
	Timezone  string         `gorm:"type:varchar(64);not null;default:'America/New_York'"`
	Address   string         `gorm:"type:varchar(255)"`
	IsActive  bool           `gorm:"not null;default:true"`
	CreatedAt time.Time      `gorm:"not null;default:now()"`
	UpdatedAt time.Time      `gorm:"not null;default:now()"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Location) TableName() string {
	return "locations"
}
