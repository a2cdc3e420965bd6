package availability

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// DeclaredWindow is an availability row joined with the employee it belongs
// to, as consumed by the resolver.
type DeclaredWindow struct {
	EmployeeID   string
	EmployeeName string
	StartTime    string
	EndTime      string
	IsPreferred  bool
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Availability) error
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Availability, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Availability, error)
	Delete(ctx context.Context, companyID, id string) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)

	// Resolver reads. These cross into the shifts, time_off_requests and
	// employees tables on purpose: eligibility is one query concern.
	FindWindowsForDay(ctx context.Context, companyID, locationID string, dayOfWeek int, date time.Time) ([]DeclaredWindow, error)
	HasOverlappingShift(ctx context.Context, companyID, employeeID string, date time.Time, startTime, endTime string) (bool, error)
	HasApprovedTimeOff(ctx context.Context, companyID, employeeID string, date time.Time) (bool, error)
	ScheduledHoursInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) (float64, error)
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

func (r *repository) Create(ctx context.Context, a *Availability) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]Availability, error) {
	var windows []Availability
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error
	return windows, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Availability, error) {
	var a Availability
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Delete(&Availability{}, "id = ?", id).Error
}

func (r *repository) EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("company_id = ?", companyID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindWindowsForDay(ctx context.Context, companyID, locationID string, dayOfWeek int, date time.Time) ([]DeclaredWindow, error) {
	var windows []DeclaredWindow
	err := r.db.WithContext(ctx).
		Table("employee_availability AS a").
		Select("a.employee_id::text AS employee_id, e.full_name AS employee_name, a.start_time, a.end_time, a.is_preferred").
		Joins("JOIN employees e ON e.id = a.employee_id AND e.deleted_at IS NULL AND e.is_active").
		Where("a.company_id = ?", companyID).
		Where("a.location_id = ?", locationID).
		Where("a.day_of_week = ?", dayOfWeek).
		Where("a.deleted_at IS NULL").
		Where("a.effective_date IS NULL OR a.effective_date <= ?", date).
		Where("a.expiration_date IS NULL OR a.expiration_date >= ?", date).
		Scan(&windows).Error
	return windows, err
}

func (r *repository) HasOverlappingShift(ctx context.Context, companyID, employeeID string, date time.Time, startTime, endTime string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("shifts").
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("shift_date = ?", date).
		Where("status <> ?", "CANCELLED").
		Where("deleted_at IS NULL").
		Where("start_time < ? AND end_time > ?", endTime, startTime).
		Count(&count).Error
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

func (r *repository) ScheduledHoursInRange(ctx context.Context, companyID, employeeID string, from, to time.Time) (float64, error) {
	var row struct {
		Total float64
	}
	err := r.db.WithContext(ctx).
		Table("shifts").
		Select("COALESCE(SUM(total_hours), 0) AS total").
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("shift_date BETWEEN ? AND ?", from, to).
		Where("status <> ?", "CANCELLED").
		Where("deleted_at IS NULL").
		Scan(&row).Error
	return row.Total, err
}
