package employee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	employeeerrors "github.com/justinnewbold/PattyShack-sub001/internal/employee/errors"
	"github.com/justinnewbold/PattyShack-sub001/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID, locationID string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Deactivate(ctx context.Context, companyID, id string) error

	// HourlyRate is the directory lookup used by the assignment engine.
	HourlyRate(ctx context.Context, companyID, id string) (*float64, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{db: db, repo: repo, counter: counter, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}

	var locationUUID *uuid.UUID
	if req.LocationID != "" {
		lu, err := uuid.Parse(req.LocationID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidLocationID
		}
		locationUUID = &lu
	}

	if req.EmployeeNumber == "" {
		nextVal, err := s.counter.GetNextValue(ctx, companyID, "employee_number")
		if err != nil {
			s.logger.Error("create employee generate number failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		req.EmployeeNumber = fmt.Sprintf("EMP-%06d", nextVal)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e := &Employee{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		LocationID:     locationUUID,
		EmployeeNumber: req.EmployeeNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Position:       req.Position,
		HourlyRate:     req.HourlyRate,
		IsActive:       true,
	}

	if err := qtx.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("create employee success",
		zap.String("employee_id", e.ID.String()),
		zap.String("company_id", companyID),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context, companyID, locationID string) ([]EmployeeResponse, error) {
	var (
		rows []Employee
		err  error
	)
	if locationID != "" {
		rows, err = s.repo.FindAllByLocation(ctx, companyID, locationID)
	} else {
		rows, err = s.repo.FindAllByCompany(ctx, companyID)
	}
	if err != nil {
		return nil, err
	}
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error) {
	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	if req.LocationID != "" {
		lu, err := uuid.Parse(req.LocationID)
		if err != nil {
			return EmployeeResponse{}, employeeerrors.ErrInvalidLocationID
		}
		e.LocationID = &lu
	}
	e.FullName = req.FullName
	e.Phone = req.Phone
	e.Position = req.Position
	if req.HourlyRate != nil {
		e.HourlyRate = req.HourlyRate
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}
	return mapToResponse(*e), nil
}

func (s *service) Deactivate(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	e, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return employeeerrors.ErrEmployeeNotFound
		}
		return err
	}

	e.IsActive = false
	if err := qtx.Update(ctx, e); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) HourlyRate(ctx context.Context, companyID, id string) (*float64, error) {
	e, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	if !e.IsActive {
		return nil, employeeerrors.ErrEmployeeInactive
	}
	return e.HourlyRate, nil
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID.String(),
		CompanyID:      e.CompanyID.String(),
		EmployeeNumber: e.EmployeeNumber,
		FullName:       e.FullName,
		Email:          e.Email,
		Phone:          e.Phone,
		Position:       e.Position,
		HourlyRate:     e.HourlyRate,
		IsActive:       e.IsActive,
	}
	if e.LocationID != nil {
		v := e.LocationID.String()
		resp.LocationID = &v
	}
	return resp
}
