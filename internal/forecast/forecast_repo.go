package forecast

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Insert(ctx context.Context, h *History) error
	FindByLocationAndDate(ctx context.Context, companyID, locationID string, date time.Time) (*History, error)
	Update(ctx context.Context, h *History) error

	// FindSamples returns history rows at the location sharing the target's
	// day of week, bounded to the lookback window, newest first.
	FindSamples(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error)
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

func (r *repository) Insert(ctx context.Context, h *History) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *repository) FindByLocationAndDate(ctx context.Context, companyID, locationID string, date time.Time) (*History, error) {
	var h History
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("location_id = ?", locationID).
		Where("date = ?", date).
		First(&h).Error
	return &h, err
}

func (r *repository) Update(ctx context.Context, h *History) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *repository) FindSamples(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
	var samples []History
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("location_id = ?", locationID).
		Where("day_of_week = ?", dayOfWeek).
		Where("date >= ?", since).
		Order("date DESC").
		Find(&samples).Error
	return samples, err
}
