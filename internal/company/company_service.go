package company

import (
	"context"
	"errors"
	"strings"
	"time"

	companyerrors "github.com/justinnewbold/PattyShack-sub001/internal/company/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	GetByID(ctx context.Context, id string) (*CompanyResponse, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error)

	CreateLocation(ctx context.Context, companyID string, req CreateLocationRequest) (*LocationResponse, error)
	ListLocations(ctx context.Context, companyID string) ([]LocationResponse, error)
	GetLocation(ctx context.Context, companyID, locationID string) (*LocationResponse, error)
	UpdateLocation(ctx context.Context, companyID, locationID string, req UpdateLocationRequest) (*LocationResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetByID(ctx context.Context, id string) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	return mapCompanyToResponse(comp), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	comp, err := s.repo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		comp.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Email) != "" {
		comp.Email = strings.TrimSpace(req.Email)
	}
	if req.IsActive != nil {
		comp.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return nil, err
	}

	s.logger.Info("company updated", zap.String("company_id", comp.ID.String()))
	return mapCompanyToResponse(comp), nil
}

func (s *service) CreateLocation(ctx context.Context, companyID string, req CreateLocationRequest) (*LocationResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	tz := strings.TrimSpace(req.Timezone)
	if tz == "" {
		tz = "America/New_York"
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, companyerrors.ErrInvalidTimezone
	}

	loc := &Location{
		ID:        uuid.New(),
		CompanyID: cid,
		Name:      strings.TrimSpace(req.Name),
		Timezone:  tz,
		Address:   strings.TrimSpace(req.Address),
		IsActive:  true,
	}

	if err := s.repo.CreateLocation(ctx, loc); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, companyerrors.ErrLocationNameTaken
		}
		return nil, err
	}

	s.logger.Info("location created",
		zap.String("company_id", cid.String()),
		zap.String("location_id", loc.ID.String()),
	)
	return mapLocationToResponse(loc), nil
}

func (s *service) ListLocations(ctx context.Context, companyID string) ([]LocationResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}

	locations, err := s.repo.FindLocationsByCompany(ctx, cid)
	if err != nil {
		return nil, err
	}

	result := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		result = append(result, *mapLocationToResponse(&locations[i]))
	}
	return result, nil
}

func (s *service) GetLocation(ctx context.Context, companyID, locationID string) (*LocationResponse, error) {
	loc, err := s.findLocation(ctx, companyID, locationID)
	if err != nil {
		return nil, err
	}
	return mapLocationToResponse(loc), nil
}

func (s *service) UpdateLocation(ctx context.Context, companyID, locationID string, req UpdateLocationRequest) (*LocationResponse, error) {
	loc, err := s.findLocation(ctx, companyID, locationID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Name) != "" {
		loc.Name = strings.TrimSpace(req.Name)
	}
	if strings.TrimSpace(req.Timezone) != "" {
		tz := strings.TrimSpace(req.Timezone)
		if _, err := time.LoadLocation(tz); err != nil {
			return nil, companyerrors.ErrInvalidTimezone
		}
		loc.Timezone = tz
	}
	if strings.TrimSpace(req.Address) != "" {
		loc.Address = strings.TrimSpace(req.Address)
	}
	if req.IsActive != nil {
		loc.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateLocation(ctx, loc); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, companyerrors.ErrLocationNameTaken
		}
		return nil, err
	}

	return mapLocationToResponse(loc), nil
}

func (s *service) findLocation(ctx context.Context, companyID, locationID string) (*Location, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return nil, companyerrors.ErrInvalidCompanyID
	}
	lid, err := uuid.Parse(locationID)
	if err != nil {
		return nil, companyerrors.ErrInvalidLocationID
	}

	loc, err := s.repo.FindLocationByIDAndCompany(ctx, cid, lid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrLocationNotFound
		}
		return nil, err
	}
	return loc, nil
}

func mapCompanyToResponse(c *Company) *CompanyResponse {
	return &CompanyResponse{
		ID:       c.ID.String(),
		Name:     c.Name,
		Email:    c.Email,
		IsActive: c.IsActive,
	}
}

func mapLocationToResponse(l *Location) *LocationResponse {
	return &LocationResponse{
		ID:        l.ID.String(),
		CompanyID: l.CompanyID.String(),
		Name:      l.Name,
		Timezone:  l.Timezone,
		Address:   l.Address,
		IsActive:  l.IsActive,
	}
}
