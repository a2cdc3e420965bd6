package timeoff

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *TimeOffRequest) error
	FindAllByCompany(ctx context.Context, companyID string) ([]TimeOffRequest, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]TimeOffRequest, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*TimeOffRequest, error)
	Update(ctx context.Context, t *TimeOffRequest) error
	EmployeeBelongsToCompany(ctx context.Context, companyID, employeeID string) (bool, error)
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error)
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

func (r *repository) Create(ctx context.Context, t *TimeOffRequest) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]TimeOffRequest, error) {
	var requests []TimeOffRequest
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]TimeOffRequest, error) {
	var requests []TimeOffRequest
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*TimeOffRequest, error) {
	var t TimeOffRequest
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *TimeOffRequest) error {
	return r.db.WithContext(ctx).Save(t).Error
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

func (r *repository) HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&TimeOffRequest{}).
		Where("company_id = ?", companyID).
		Where("employee_id = ?", employeeID).
		Where("status NOT IN ?", []string{StatusDenied, StatusCancelled}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
