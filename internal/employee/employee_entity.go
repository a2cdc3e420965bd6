package employee

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Employee struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_employees_company"`
	LocationID *uuid.UUID `gorm:"type:uuid;index:idx_employees_location"`

	// Human-facing badge number, generated per company when not supplied
	EmployeeNumber string `gorm:"type:varchar(20);not null;index:idx_employees_number"`

	FullName string `gorm:"type:varchar(120);not null"`
	Email    string `gorm:"type:varchar(255);uniqueIndex"`
	Phone    string `gorm:"type:varchar(30)"`

	// Default role tag for new shifts; individual shifts carry their own
	Position   string   `gorm:"type:varchar(60)"`
	HourlyRate *float64 `gorm:"type:numeric(8,2)"`

	IsActive bool `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}
