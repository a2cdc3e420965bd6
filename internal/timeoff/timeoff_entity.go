package timeoff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeOffRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index:idx_time_off_company_status"`
	LocationID uuid.UUID `gorm:"type:uuid;not null"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_time_off_employee_dates"`

	RequestType string    `gorm:"type:varchar(30);not null;default:'VACATION'"`
	StartDate   time.Time `gorm:"type:date;not null;index:idx_time_off_employee_dates"`
	EndDate     time.Time `gorm:"type:date;not null;index:idx_time_off_employee_dates"`
	TotalDays   int       `gorm:"type:int;not null;default:1"`
	Reason      string    `gorm:"type:text"`

	Status     string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_time_off_company_status"`
	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewNote *string    `gorm:"type:text"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ReviewedAt *time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index:idx_time_off_deleted_at"`
}

func (TimeOffRequest) TableName() string {
	return "time_off_requests"
}
