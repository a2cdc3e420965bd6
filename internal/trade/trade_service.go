package trade

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/justinnewbold/PattyShack-sub001/internal/shift"
	"github.com/justinnewbold/PattyShack-sub001/internal/timeclock"
	tradeerrors "github.com/justinnewbold/PattyShack-sub001/internal/trade/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateTradeRequest) (TradeResponse, error)
	GetAll(ctx context.Context, companyID, status string) ([]TradeResponse, error)
	GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]TradeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (TradeResponse, error)
	Accept(ctx context.Context, companyID, actorID, id string) (TradeResponse, error)
	Decline(ctx context.Context, companyID, actorID, id string) (TradeResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (TradeResponse, error)

	// Approve applies an accepted trade to the roster: give-aways move the
	// shift to the recipient, swaps exchange the two shifts. Both writes
	// happen in one transaction or not at all.
	Approve(ctx context.Context, companyID, actorID, id string) (TradeResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	shiftRepo shift.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, shiftRepo shift.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("trade.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trade.service")
	}
	return &service{db: db, repo: repo, shiftRepo: shiftRepo, logger: l}
}

func tradeableStatus(status string) bool {
	return status == shift.StatusScheduled || status == shift.StatusConfirmed
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateTradeRequest) (TradeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return TradeResponse{}, tradeerrors.ErrInvalidCompanyID
	}
	requesterUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TradeResponse{}, tradeerrors.ErrInvalidActorID
	}
	recipientUUID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return TradeResponse{}, tradeerrors.ErrInvalidActorID
	}
	if req.RecipientID == actorID {
		return TradeResponse{}, tradeerrors.ErrSelfTrade
	}
	if req.TradeType == TypeSwap && (req.CounterpartyShiftID == nil || *req.CounterpartyShiftID == "") {
		return TradeResponse{}, tradeerrors.ErrCounterpartyShiftRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create trade begin tx failed", zap.Error(err))
		return TradeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	shiftTx := s.shiftRepo.WithTx(tx)

	offered, err := shiftTx.FindByIDAndCompany(ctx, companyID, req.ShiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TradeResponse{}, tradeerrors.ErrShiftNotFound
		}
		return TradeResponse{}, err
	}
	if offered.EmployeeID == nil || offered.EmployeeID.String() != actorID {
		return TradeResponse{}, tradeerrors.ErrNotShiftOwner
	}
	if !tradeableStatus(offered.Status) {
		return TradeResponse{}, tradeerrors.ErrShiftNotTradeable
	}

	var counterpartyUUID *uuid.UUID
	if req.TradeType == TypeSwap {
		counterparty, err := shiftTx.FindByIDAndCompany(ctx, companyID, *req.CounterpartyShiftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return TradeResponse{}, tradeerrors.ErrShiftNotFound
			}
			return TradeResponse{}, err
		}
		if counterparty.EmployeeID == nil || counterparty.EmployeeID.String() != req.RecipientID {
			return TradeResponse{}, tradeerrors.ErrRecipientNotCounterpartyOwner
		}
		if !tradeableStatus(counterparty.Status) {
			return TradeResponse{}, tradeerrors.ErrShiftNotTradeable
		}
		counterpartyUUID = &counterparty.ID
	}

	t := &ShiftTrade{
		ID:                  uuid.New(),
		CompanyID:           companyUUID,
		TradeType:           req.TradeType,
		ShiftID:             offered.ID,
		CounterpartyShiftID: counterpartyUUID,
		RequesterID:         requesterUUID,
		RecipientID:         recipientUUID,
		Status:              StatusPending,
		Notes:               req.Notes,
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create trade persist failed", zap.Error(err))
		return TradeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TradeResponse{}, err
	}

	s.logger.Info("create trade success",
		zap.String("trade_id", t.ID.String()),
		zap.String("trade_type", t.TradeType),
		zap.String("shift_id", req.ShiftID),
	)
	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context, companyID, status string) ([]TradeResponse, error) {
	trades, err := s.repo.FindAllByCompany(ctx, companyID, status)
	if err != nil {
		return nil, err
	}
	return mapAll(trades), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]TradeResponse, error) {
	trades, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	return mapAll(trades), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (TradeResponse, error) {
	t, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TradeResponse{}, tradeerrors.ErrTradeNotFound
		}
		return TradeResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Accept(ctx context.Context, companyID, actorID, id string) (TradeResponse, error) {
	return s.respond(ctx, companyID, actorID, id, StatusAccepted)
}

func (s *service) Decline(ctx context.Context, companyID, actorID, id string) (TradeResponse, error) {
	return s.respond(ctx, companyID, actorID, id, StatusDeclined)
}

// respond handles the recipient's accept/decline. Only pending trades move.
func (s *service) respond(ctx context.Context, companyID, actorID, id, target string) (TradeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TradeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TradeResponse{}, tradeerrors.ErrTradeNotFound
		}
		return TradeResponse{}, err
	}
	if t.RecipientID.String() != actorID {
		return TradeResponse{}, tradeerrors.ErrNotRecipient
	}
	if t.Status != StatusPending {
		return TradeResponse{}, tradeerrors.ErrTradeNotPending
	}

	t.Status = target

	if err := qtx.Update(ctx, t); err != nil {
		return TradeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TradeResponse{}, err
	}

	s.logger.Info("trade response recorded",
		zap.String("trade_id", id),
		zap.String("status", target),
	)
	return mapToResponse(*t), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (TradeResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TradeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TradeResponse{}, tradeerrors.ErrTradeNotFound
		}
		return TradeResponse{}, err
	}
	if t.RequesterID.String() != actorID {
		return TradeResponse{}, tradeerrors.ErrNotRequester
	}
	if t.Status != StatusPending {
		return TradeResponse{}, tradeerrors.ErrTradeNotPending
	}

	t.Status = StatusCancelled

	if err := qtx.Update(ctx, t); err != nil {
		return TradeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TradeResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (TradeResponse, error) {
	reviewerUUID, err := uuid.Parse(actorID)
	if err != nil {
		return TradeResponse{}, tradeerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve trade begin tx failed", zap.Error(err))
		return TradeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	shiftTx := s.shiftRepo.WithTx(tx)

	t, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TradeResponse{}, tradeerrors.ErrTradeNotFound
		}
		return TradeResponse{}, err
	}
	if t.Status != StatusAccepted {
		s.logger.Warn("approve trade rejected, not accepted yet",
			zap.String("trade_id", id),
			zap.String("status", t.Status),
		)
		return TradeResponse{}, tradeerrors.ErrTradeNotAccepted
	}

	offered, err := shiftTx.FindByIDAndCompany(ctx, companyID, t.ShiftID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TradeResponse{}, tradeerrors.ErrShiftNotFound
		}
		return TradeResponse{}, err
	}
	if offered.EmployeeID == nil || *offered.EmployeeID != t.RequesterID {
		return TradeResponse{}, tradeerrors.ErrNotShiftOwner
	}

	switch t.TradeType {
	case TypeGiveAway:
		if err := s.reassign(ctx, shiftTx, companyID, offered, t.RecipientID, offered.ID.String()); err != nil {
			return TradeResponse{}, err
		}
	case TypeSwap:
		counterparty, err := shiftTx.FindByIDAndCompany(ctx, companyID, t.CounterpartyShiftID.String())
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return TradeResponse{}, tradeerrors.ErrShiftNotFound
			}
			return TradeResponse{}, err
		}
		if counterparty.EmployeeID == nil || *counterparty.EmployeeID != t.RecipientID {
			return TradeResponse{}, tradeerrors.ErrRecipientNotCounterpartyOwner
		}

		// Each conflict check excludes the shift the employee gives up,
		// since that slot frees when the swap lands.
		if err := s.reassign(ctx, shiftTx, companyID, offered, t.RecipientID, counterparty.ID.String()); err != nil {
			return TradeResponse{}, err
		}
		if err := s.reassign(ctx, shiftTx, companyID, counterparty, t.RequesterID, offered.ID.String()); err != nil {
			return TradeResponse{}, err
		}
	}

	now := time.Now().UTC()
	t.Status = StatusApproved
	t.ReviewedBy = &reviewerUUID
	t.ReviewedAt = &now

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("approve trade persist failed", zap.String("trade_id", id), zap.Error(err))
		return TradeResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return TradeResponse{}, err
	}

	s.logger.Info("approve trade success",
		zap.String("trade_id", id),
		zap.String("trade_type", t.TradeType),
	)
	return mapToResponse(*t), nil
}

// reassign moves a shift to a new owner after re-checking conflicts, and
// re-prices it with the new owner's directory rate when one exists.
func (s *service) reassign(
	ctx context.Context,
	repo shift.Repository,
	companyID string,
	sh *shift.Shift,
	newOwner uuid.UUID,
	excludeShiftID string,
) error {
	ownerID := newOwner.String()

	overlap, err := repo.HasOverlappingShift(ctx, companyID, ownerID, sh.ShiftDate, sh.StartTime, sh.EndTime, &excludeShiftID)
	if err != nil {
		return err
	}
	if overlap {
		return tradeerrors.ErrRecipientConflict
	}

	away, err := repo.HasApprovedTimeOff(ctx, companyID, ownerID, sh.ShiftDate)
	if err != nil {
		return err
	}
	if away {
		return tradeerrors.ErrRecipientConflict
	}

	rate, err := repo.EmployeeHourlyRate(ctx, companyID, ownerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	sh.EmployeeID = &newOwner
	if rate != nil {
		sh.HourlyRate = rate
	}
	if sh.HourlyRate != nil {
		sh.EstimatedCost = timeclock.Round2(sh.TotalHours * *sh.HourlyRate)
	}

	return repo.Update(ctx, sh)
}

func mapAll(trades []ShiftTrade) []TradeResponse {
	resp := make([]TradeResponse, len(trades))
	for i, t := range trades {
		resp[i] = mapToResponse(t)
	}
	return resp
}

func mapToResponse(t ShiftTrade) TradeResponse {
	resp := TradeResponse{
		ID:          t.ID.String(),
		CompanyID:   t.CompanyID.String(),
		TradeType:   t.TradeType,
		ShiftID:     t.ShiftID.String(),
		RequesterID: t.RequesterID.String(),
		RecipientID: t.RecipientID.String(),
		Status:      t.Status,
		Notes:       t.Notes,
	}
	if t.CounterpartyShiftID != nil {
		v := t.CounterpartyShiftID.String()
		resp.CounterpartyShiftID = &v
	}
	if t.ReviewedBy != nil {
		v := t.ReviewedBy.String()
		resp.ReviewedBy = &v
	}
	if t.ReviewedAt != nil {
		v := t.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &v
	}
	return resp
}
