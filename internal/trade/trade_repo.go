package trade

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *ShiftTrade) error
	FindAllByCompany(ctx context.Context, companyID string, status string) ([]ShiftTrade, error)
	FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]ShiftTrade, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*ShiftTrade, error)
	Update(ctx context.Context, t *ShiftTrade) error
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

func (r *repository) Create(ctx context.Context, t *ShiftTrade) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, status string) ([]ShiftTrade, error) {
	db := r.db.WithContext(ctx).
		Where("company_id = ?", companyID)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var trades []ShiftTrade
	err := db.Order("created_at DESC").Find(&trades).Error
	return trades, err
}

func (r *repository) FindAllByEmployee(ctx context.Context, companyID, employeeID string) ([]ShiftTrade, error) {
	var trades []ShiftTrade
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("requester_id = ? OR recipient_id = ?", employeeID, employeeID).
		Order("created_at DESC").
		Find(&trades).Error
	return trades, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*ShiftTrade, error) {
	var t ShiftTrade
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		First(&t, "id = ?", id).Error
	return &t, err
}

func (r *repository) Update(ctx context.Context, t *ShiftTrade) error {
	return r.db.WithContext(ctx).Save(t).Error
}
