package availability

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is one recurring weekly window an employee has declared.
// Multiple rows per employee are allowed, one per window.
type Availability struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_company"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_location_day"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_employee"`

	// 0 = Sunday through 6 = Saturday
	DayOfWeek int    `gorm:"type:int;not null;index:idx_availability_location_day"`
	StartTime string `gorm:"type:varchar(5);not null"`
	EndTime   string `gorm:"type:varchar(5);not null"`

	IsPreferred bool `gorm:"not null;default:false"`

	EffectiveDate  *time.Time `gorm:"type:date"`
	ExpirationDate *time.Time `gorm:"type:date"`
	Notes          string     `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_availability_deleted_at"`
}

func (Availability) TableName() string {
	return "employee_availability"
}
