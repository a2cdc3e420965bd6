package shift

import (
	"context"
	"database/sql"
	"errors"
	"time"

	shifterrors "github.com/justinnewbold/PattyShack-sub001/internal/shift/errors"
	"github.com/justinnewbold/PattyShack-sub001/internal/timeclock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateShiftRequest) (ShiftResponse, error)
	GetAllBySchedule(ctx context.Context, companyID, scheduleID string) ([]ShiftResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ShiftResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateShiftRequest) (ShiftResponse, error)
	Assign(ctx context.Context, companyID, id, employeeID string) (ShiftResponse, error)
	Unassign(ctx context.Context, companyID, id string) (ShiftResponse, error)
	Transition(ctx context.Context, companyID, id, targetStatus string) (ShiftResponse, error)
	ClockIn(ctx context.Context, companyID, id string, at time.Time) (ShiftResponse, error)
	ClockOut(ctx context.Context, companyID, id string, at time.Time) (ShiftResponse, error)
	Cancel(ctx context.Context, companyID, id string) (ShiftResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("shift.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("shift.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// isAllowedStatusTransition encodes the shift lifecycle. Completed, no-show
// and cancelled are terminal; open shifts re-enter via assignment.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}

	switch currentStatus {
	case StatusScheduled:
		return targetStatus == StatusConfirmed ||
			targetStatus == StatusInProgress ||
			targetStatus == StatusNoShow ||
			targetStatus == StatusOpen ||
			targetStatus == StatusCancelled
	case StatusConfirmed:
		return targetStatus == StatusInProgress ||
			targetStatus == StatusNoShow ||
			targetStatus == StatusCancelled
	case StatusInProgress:
		return targetStatus == StatusCompleted
	case StatusOpen:
		return targetStatus == StatusScheduled || targetStatus == StatusCancelled
	default:
		return false
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateShiftRequest) (ShiftResponse, error) {
	s.logger.Debug("create shift requested",
		zap.String("company_id", companyID),
		zap.String("schedule_id", req.ScheduleID),
		zap.String("shift_date", req.ShiftDate),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidActorID
	}
	locationUUID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidLocationID
	}
	scheduleUUID, err := uuid.Parse(req.ScheduleID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidScheduleID
	}
	shiftDate, err := parseDate(req.ShiftDate)
	if err != nil {
		return ShiftResponse{}, err
	}
	if !timeclock.ValidRange(req.StartTime, req.EndTime) {
		return ShiftResponse{}, shifterrors.ErrInvalidTimeRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create shift begin tx failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var employeeUUID *uuid.UUID
	rate := req.HourlyRate
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		eu, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return ShiftResponse{}, shifterrors.ErrInvalidEmployeeID
		}
		employeeUUID = &eu

		overlap, err := qtx.HasOverlappingShift(ctx, companyID, *req.EmployeeID, shiftDate, req.StartTime, req.EndTime, nil)
		if err != nil {
			s.logger.Error("create shift overlap check failed", zap.Error(err))
			return ShiftResponse{}, err
		}
		if overlap {
			s.logger.Warn("create shift overlap detected",
				zap.String("employee_id", *req.EmployeeID),
				zap.String("shift_date", req.ShiftDate),
			)
			return ShiftResponse{}, shifterrors.ErrShiftOverlap
		}

		away, err := qtx.HasApprovedTimeOff(ctx, companyID, *req.EmployeeID, shiftDate)
		if err != nil {
			return ShiftResponse{}, err
		}
		if away {
			return ShiftResponse{}, shifterrors.ErrEmployeeOnTimeOff
		}

		if rate == nil {
			rate, err = qtx.EmployeeHourlyRate(ctx, companyID, *req.EmployeeID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return ShiftResponse{}, err
			}
		}
	}

	totalHours := timeclock.ScheduledHours(req.StartTime, req.EndTime, req.BreakMinutes)

	sh := &Shift{
		ID:               uuid.New(),
		CompanyID:        companyUUID,
		LocationID:       locationUUID,
		ScheduleID:       scheduleUUID,
		EmployeeID:       employeeUUID,
		Position:         req.Position,
		ShiftDate:        shiftDate,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		BreakMinutes:     req.BreakMinutes,
		HourlyRate:       rate,
		TotalHours:       totalHours,
		EstimatedCost:    estimatedCost(totalHours, rate),
		Status:           StatusScheduled,
		RequiresCoverage: employeeUUID == nil,
		Notes:            req.Notes,
		CreatedBy:        actorUUID,
	}

	if err := qtx.Create(ctx, sh); err != nil {
		s.logger.Error("create shift persist failed", zap.Error(err))
		return ShiftResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("create shift commit failed", zap.Error(err))
		return ShiftResponse{}, err
	}

	s.logger.Info("create shift success",
		zap.String("shift_id", sh.ID.String()),
		zap.String("schedule_id", req.ScheduleID),
	)
	return MapToResponse(*sh), nil
}

func (s *service) GetAllBySchedule(ctx context.Context, companyID, scheduleID string) ([]ShiftResponse, error) {
	shifts, err := s.repo.FindAllBySchedule(ctx, companyID, scheduleID)
	if err != nil {
		return nil, err
	}
	res := make([]ShiftResponse, len(shifts))
	for i, sh := range shifts {
		res[i] = MapToResponse(sh)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ShiftResponse, error) {
	sh, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}
	return MapToResponse(*sh), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateShiftRequest) (ShiftResponse, error) {
	if !timeclock.ValidRange(req.StartTime, req.EndTime) {
		return ShiftResponse{}, shifterrors.ErrInvalidTimeRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}

	if sh.EmployeeID != nil {
		overlap, err := qtx.HasOverlappingShift(ctx, companyID, sh.EmployeeID.String(), sh.ShiftDate, req.StartTime, req.EndTime, &id)
		if err != nil {
			return ShiftResponse{}, err
		}
		if overlap {
			return ShiftResponse{}, shifterrors.ErrShiftOverlap
		}
	}

	sh.Position = req.Position
	sh.StartTime = req.StartTime
	sh.EndTime = req.EndTime
	sh.BreakMinutes = req.BreakMinutes
	if req.HourlyRate != nil {
		sh.HourlyRate = req.HourlyRate
	}
	sh.Notes = req.Notes
	sh.TotalHours = timeclock.ScheduledHours(sh.StartTime, sh.EndTime, sh.BreakMinutes)
	sh.EstimatedCost = estimatedCost(sh.TotalHours, sh.HourlyRate)

	if err := qtx.Update(ctx, sh); err != nil {
		s.logger.Error("update shift persist failed", zap.String("shift_id", id), zap.Error(err))
		return ShiftResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}
	return MapToResponse(*sh), nil
}

func (s *service) Assign(ctx context.Context, companyID, id, employeeID string) (ShiftResponse, error) {
	s.logger.Debug("assign shift requested",
		zap.String("shift_id", id),
		zap.String("employee_id", employeeID),
	)

	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return ShiftResponse{}, shifterrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}

	overlap, err := qtx.HasOverlappingShift(ctx, companyID, employeeID, sh.ShiftDate, sh.StartTime, sh.EndTime, &id)
	if err != nil {
		return ShiftResponse{}, err
	}
	if overlap {
		s.logger.Warn("assign shift overlap detected",
			zap.String("shift_id", id),
			zap.String("employee_id", employeeID),
		)
		return ShiftResponse{}, shifterrors.ErrShiftOverlap
	}

	away, err := qtx.HasApprovedTimeOff(ctx, companyID, employeeID, sh.ShiftDate)
	if err != nil {
		return ShiftResponse{}, err
	}
	if away {
		return ShiftResponse{}, shifterrors.ErrEmployeeOnTimeOff
	}

	rate, err := qtx.EmployeeHourlyRate(ctx, companyID, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ShiftResponse{}, err
	}

	sh.EmployeeID = &employeeUUID
	if rate != nil {
		sh.HourlyRate = rate
	}
	sh.EstimatedCost = estimatedCost(sh.TotalHours, sh.HourlyRate)
	sh.RequiresCoverage = false
	if sh.Status == StatusOpen {
		sh.Status = StatusScheduled
	}

	if err := qtx.Update(ctx, sh); err != nil {
		s.logger.Error("assign shift persist failed", zap.String("shift_id", id), zap.Error(err))
		return ShiftResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.logger.Info("assign shift success",
		zap.String("shift_id", id),
		zap.String("employee_id", employeeID),
	)
	return MapToResponse(*sh), nil
}

func (s *service) Unassign(ctx context.Context, companyID, id string) (ShiftResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}
	if sh.EmployeeID == nil {
		return ShiftResponse{}, shifterrors.ErrShiftNotAssigned
	}

	sh.EmployeeID = nil
	sh.RequiresCoverage = true
	sh.Status = StatusOpen

	if err := qtx.Update(ctx, sh); err != nil {
		return ShiftResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}
	return MapToResponse(*sh), nil
}

func (s *service) Transition(ctx context.Context, companyID, id, targetStatus string) (ShiftResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}
	if !isAllowedStatusTransition(sh.Status, targetStatus) {
		s.logger.Warn("transition shift status invalid",
			zap.String("shift_id", id),
			zap.String("from_status", sh.Status),
			zap.String("to_status", targetStatus),
		)
		return ShiftResponse{}, shifterrors.ErrInvalidStatusTransition
	}

	sh.Status = targetStatus
	if targetStatus == StatusOpen {
		sh.EmployeeID = nil
		sh.RequiresCoverage = true
	}

	if err := qtx.Update(ctx, sh); err != nil {
		return ShiftResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.logger.Info("transition shift status success",
		zap.String("shift_id", id),
		zap.String("status", targetStatus),
	)
	return MapToResponse(*sh), nil
}

func (s *service) ClockIn(ctx context.Context, companyID, id string, at time.Time) (ShiftResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}
	if sh.EmployeeID == nil {
		return ShiftResponse{}, shifterrors.ErrShiftNotAssigned
	}
	if sh.ClockIn != nil {
		return ShiftResponse{}, shifterrors.ErrAlreadyClockedIn
	}

	at = at.UTC()
	sh.ClockIn = &at
	if isAllowedStatusTransition(sh.Status, StatusInProgress) {
		sh.Status = StatusInProgress
	}

	if err := qtx.Update(ctx, sh); err != nil {
		return ShiftResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.logger.Info("clock in success", zap.String("shift_id", id))
	return MapToResponse(*sh), nil
}

func (s *service) ClockOut(ctx context.Context, companyID, id string, at time.Time) (ShiftResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}
	if sh.ClockIn == nil {
		return ShiftResponse{}, shifterrors.ErrNotClockedIn
	}
	if sh.ClockOut != nil {
		return ShiftResponse{}, shifterrors.ErrAlreadyClockedOut
	}

	at = at.UTC()
	sh.ClockOut = &at
	sh.ActualHours = timeclock.ActualHours(sh.ClockIn, sh.ClockOut, sh.BreakMinutes)
	if sh.Status == StatusInProgress {
		sh.Status = StatusCompleted
	}

	if err := qtx.Update(ctx, sh); err != nil {
		return ShiftResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}

	s.logger.Info("clock out success",
		zap.String("shift_id", id),
		zap.Float64("actual_hours", sh.ActualHours),
	)
	return MapToResponse(*sh), nil
}

// Cancel soft-retires a shift. Shifts are never hard-deleted.
func (s *service) Cancel(ctx context.Context, companyID, id string) (ShiftResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ShiftResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sh, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ShiftResponse{}, shifterrors.ErrShiftNotFound
		}
		return ShiftResponse{}, err
	}
	if !isAllowedStatusTransition(sh.Status, StatusCancelled) {
		return ShiftResponse{}, shifterrors.ErrInvalidStatusTransition
	}

	sh.Status = StatusCancelled
	sh.RequiresCoverage = false

	if err := qtx.Update(ctx, sh); err != nil {
		return ShiftResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ShiftResponse{}, err
	}
	return MapToResponse(*sh), nil
}

func estimatedCost(totalHours float64, rate *float64) float64 {
	if rate == nil {
		return 0
	}
	return timeclock.Round2(totalHours * *rate)
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, shifterrors.ErrInvalidDateFormat
	}
	return t, nil
}

// MapToResponse is exported because the schedule slice embeds shift payloads
// in its own responses.
func MapToResponse(sh Shift) ShiftResponse {
	resp := ShiftResponse{
		ID:               sh.ID.String(),
		CompanyID:        sh.CompanyID.String(),
		LocationID:       sh.LocationID.String(),
		ScheduleID:       sh.ScheduleID.String(),
		Position:         sh.Position,
		ShiftDate:        sh.ShiftDate.Format("2006-01-02"),
		StartTime:        sh.StartTime,
		EndTime:          sh.EndTime,
		BreakMinutes:     sh.BreakMinutes,
		HourlyRate:       sh.HourlyRate,
		TotalHours:       sh.TotalHours,
		EstimatedCost:    sh.EstimatedCost,
		ActualHours:      sh.ActualHours,
		Status:           sh.Status,
		RequiresCoverage: sh.RequiresCoverage,
		Notes:            sh.Notes,
	}
	if sh.EmployeeID != nil {
		v := sh.EmployeeID.String()
		resp.EmployeeID = &v
	}
	if sh.ClockIn != nil {
		v := sh.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &v
	}
	if sh.ClockOut != nil {
		v := sh.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &v
	}
	return resp
}
