package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Update(ctx context.Context, company *Company) error

	CreateLocation(ctx context.Context, loc *Location) error
	FindLocationsByCompany(ctx context.Context, companyID uuid.UUID) ([]Location, error)
	FindLocationByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*Location, error)
	UpdateLocation(ctx context.Context, loc *Location) error
	WithTx(tx *gorm.DB) Repository
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

func (r *repository) CreateLocation(ctx context.Context, loc *Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *repository) FindLocationsByCompany(ctx context.Context, companyID uuid.UUID) ([]Location, error) {
	var locations []Location
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Find(&locations).Error
	return locations, err
}

func (r *repository) FindLocationByIDAndCompany(ctx context.Context, companyID, id uuid.UUID) (*Location, error) {
	var loc Location
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&loc).Error
	return &loc, err
}

func (r *repository) UpdateLocation(ctx context.Context, loc *Location) error {
	return r.db.WithContext(ctx).Save(loc).Error
}
