package timeoff

import (
	"context"
	"database/sql"
	"errors"
	"time"

	timeofferrors "github.com/justinnewbold/PattyShack-sub001/internal/timeoff/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusDenied    = "DENIED"
	StatusCancelled = "CANCELLED"
)

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateTimeOffRequest) (TimeOffResponse, error)
	GetAll(ctx context.Context, companyID string) ([]TimeOffResponse, error)
	GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]TimeOffResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TimeOffResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (TimeOffResponse, error)
	Deny(ctx context.Context, companyID, actorID, id, reviewNote string) (TimeOffResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (TimeOffResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timeoff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timeoff.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Only pending requests move; approval, denial and cancellation are terminal.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus != StatusPending {
		return false
	}
	switch targetStatus {
	case StatusApproved, StatusDenied, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateTimeOffRequest) (TimeOffResponse, error) {
	s.logger.Debug("create time off requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidCompanyID
	}
	createdByUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidEmployeeID
	}
	locationUUID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidLocationID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return TimeOffResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return TimeOffResponse{}, err
	}
	if startDate.After(endDate) {
		return TimeOffResponse{}, timeofferrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create time off begin tx failed", zap.Error(err))
		return TimeOffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		s.logger.Error("create time off employee company check failed", zap.Error(err))
		return TimeOffResponse{}, err
	}
	if !belongs {
		return TimeOffResponse{}, timeofferrors.ErrEmployeeNotInCompany
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, startDate, endDate, nil)
	if err != nil {
		s.logger.Error("create time off overlap check failed", zap.Error(err))
		return TimeOffResponse{}, err
	}
	if overlap {
		s.logger.Warn("create time off overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return TimeOffResponse{}, timeofferrors.ErrTimeOffOverlap
	}

	// Inclusive day count: a one-day absence is start == end
	totalDays := int(endDate.Sub(startDate).Hours()/24) + 1
	t := &TimeOffRequest{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		LocationID:  locationUUID,
		EmployeeID:  employeeUUID,
		RequestType: req.RequestType,
		StartDate:   startDate,
		EndDate:     endDate,
		TotalDays:   totalDays,
		Reason:      req.Reason,
		Status:      StatusPending,
		CreatedBy:   createdByUUID,
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create time off persist failed", zap.Error(err))
		return TimeOffResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create time off commit failed", zap.Error(err))
		return TimeOffResponse{}, err
	}

	s.logger.Info("create time off success",
		zap.String("time_off_id", t.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]TimeOffResponse, error) {
	requests, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]TimeOffResponse, error) {
	requests, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TimeOffResponse, error) {
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeOffResponse{}, timeofferrors.ErrTimeOffNotFound
		}
		return TimeOffResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (TimeOffResponse, error) {
	return s.review(ctx, companyID, actorID, id, StatusApproved, nil)
}

func (s *service) Deny(ctx context.Context, companyID, actorID, id, reviewNote string) (TimeOffResponse, error) {
	if reviewNote == "" {
		return TimeOffResponse{}, timeofferrors.ErrReviewNoteRequired
	}
	return s.review(ctx, companyID, actorID, id, StatusDenied, &reviewNote)
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (TimeOffResponse, error) {
	return s.review(ctx, companyID, actorID, id, StatusCancelled, nil)
}

func (s *service) review(ctx context.Context, companyID, actorID, id, targetStatus string, reviewNote *string) (TimeOffResponse, error) {
	s.logger.Debug("review time off requested",
		zap.String("time_off_id", id),
		zap.String("company_id", companyID),
		zap.String("target_status", targetStatus),
	)

	if _, err := uuid.Parse(companyID); err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TimeOffResponse{}, timeofferrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("review time off begin tx failed", zap.Error(err))
		return TimeOffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeOffResponse{}, timeofferrors.ErrTimeOffNotFound
		}
		return TimeOffResponse{}, err
	}
	if !isAllowedStatusTransition(t.Status, targetStatus) {
		s.logger.Warn("review time off invalid transition",
			zap.String("time_off_id", id),
			zap.String("from_status", t.Status),
			zap.String("to_status", targetStatus),
		)
		return TimeOffResponse{}, timeofferrors.ErrInvalidStatusTransition
	}

	t.Status = targetStatus
	switch targetStatus {
	case StatusApproved, StatusDenied:
		t.ReviewedBy = &actorUUID
		now := time.Now().UTC()
		t.ReviewedAt = &now
		t.ReviewNote = reviewNote
	default:
		t.ReviewedBy = nil
		t.ReviewedAt = nil
		t.ReviewNote = nil
	}

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("review time off persist failed",
			zap.String("time_off_id", id),
			zap.Error(err),
		)
		return TimeOffResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("review time off commit failed",
			zap.String("time_off_id", id),
			zap.Error(err),
		)
		return TimeOffResponse{}, err
	}

	s.logger.Info("review time off success",
		zap.String("time_off_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*t), nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, timeofferrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(t TimeOffRequest) TimeOffResponse {
	resp := TimeOffResponse{
		ID:          t.ID.String(),
		CompanyID:   t.CompanyID.String(),
		LocationID:  t.LocationID.String(),
		EmployeeID:  t.EmployeeID.String(),
		RequestType: t.RequestType,
		StartDate:   t.StartDate.Format("2006-01-02"),
		EndDate:     t.EndDate.Format("2006-01-02"),
		TotalDays:   t.TotalDays,
		Reason:      t.Reason,
		Status:      t.Status,
		CreatedBy:   t.CreatedBy.String(),
	}
	if t.ReviewedBy != nil {
		v := t.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if t.ReviewedAt != nil {
		v := t.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	resp.ReviewNote = t.ReviewNote
	return resp
}

func mapToListResponse(requests []TimeOffRequest) []TimeOffResponse {
	resp := make([]TimeOffResponse, len(requests))
	for i, t := range requests {
		resp[i] = mapToResponse(t)
	}
	return resp
}
