package shift

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sh *Shift) error
	FindAllBySchedule(ctx context.Context, companyID, scheduleID string) ([]Shift, error)
	FindAllByLocationAndDateRange(ctx context.Context, companyID, locationID string, from, to time.Time) ([]Shift, error)
	FindAllByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) ([]Shift, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Shift, error)
	Update(ctx context.Context, sh *Shift) error
	HasOverlappingShift(ctx context.Context, companyID, employeeID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error)
	HasApprovedTimeOff(ctx context.Context, companyID, employeeID string, date time.Time) (bool, error)
	EmployeeHourlyRate(ctx context.Context, companyID, employeeID string) (*float64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, sh *Shift) error {
	return r.db.WithContext(ctx).Create(sh).Error
}

func (r *repository) FindAllBySchedule(ctx context.Context, companyID, scheduleID string) ([]Shift, error) {
	var shifts []Shift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("schedule_id = ?", scheduleID).
		Order("shift_date ASC, start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *repository) FindAllByLocationAndDateRange(ctx context.Context, companyID, locationID string, from, to time.Time) ([]Shift, error) {
	var shifts []Shift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("location_id = ?", locationID).
		Where("shift_date BETWEEN ? AND ?", from, to).
		Order("shift_date ASC, start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *repository) FindAllByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) ([]Shift, error) {
	var shifts []Shift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("shift_date = ?", date).
		Where("status <> ?", StatusCancelled).
		Order("start_time ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Shift, error) {
	var sh Shift
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&sh, "id = ?", id).Error
	return &sh, err
}

func (r *repository) Update(ctx context.Context, sh *Shift) error {
	return r.db.WithContext(ctx).Save(sh).Error
}

// HasOverlappingShift applies the half-open interval test in SQL: an existing
// shift conflicts when existing.start < candidate.end AND existing.end >
// candidate.start. "HH:MM" strings compare correctly as text.
func (r *repository) HasOverlappingShift(ctx context.Context, companyID, employeeID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Shift{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("shift_date = ?", date).
		Where("status <> ?", StatusCancelled).
		Where("start_time < ? AND end_time > ?", endTime, startTime)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}

func (r *repository) HasApprovedTimeOff(ctx context.Context, companyID, employeeID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("time_off_requests").
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("status = ?", "APPROVED").
		Where("? BETWEEN start_date AND end_date", date).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeHourlyRate(ctx context.Context, companyID, employeeID string) (*float64, error) {
	var row struct {
		HourlyRate *float64
	}
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("hourly_rate").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return row.HourlyRate, nil
}
