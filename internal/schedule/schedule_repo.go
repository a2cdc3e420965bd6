package schedule

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, sc *Schedule) error
	FindAllByLocation(ctx context.Context, companyID, locationID string) ([]Schedule, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Schedule, error)
	Update(ctx context.Context, sc *Schedule) error
	ExistsForWeek(ctx context.Context, companyID, locationID string, weekStart time.Time) (bool, error)
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

func (r *repository) Create(ctx context.Context, sc *Schedule) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *repository) FindAllByLocation(ctx context.Context, companyID, locationID string) ([]Schedule, error) {
	var schedules []Schedule
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("location_id = ?", locationID).
		Order("week_start_date DESC").
		Find(&schedules).Error
	return schedules, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Schedule, error) {
	var sc Schedule
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&sc, "id = ?", id).Error
	return &sc, err
}

func (r *repository) Update(ctx context.Context, sc *Schedule) error {
	return r.db.WithContext(ctx).Save(sc).Error
}

func (r *repository) ExistsForWeek(ctx context.Context, companyID, locationID string, weekStart time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Schedule{}).
		Where("company_id = ?", companyID).
		Where("location_id = ?", locationID).
		Where("week_start_date = ?", weekStart).
		Count(&count).Error
	return count > 0, err
}
