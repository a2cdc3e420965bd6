package labor

import (
	"context"
	"time"

	"github.com/justinnewbold/PattyShack-sub001/internal/shift"

	"go.uber.org/zap"
)

type Service interface {
	SummaryForLocation(ctx context.Context, companyID string, q SummaryQuery) (SummaryResponse, error)
}

type service struct {
	shiftRepo shift.Repository
	logger    *zap.Logger
}

func NewService(shiftRepo shift.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("labor.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("labor.service")
	}
	return &service{shiftRepo: shiftRepo, logger: l}
}

func (s *service) SummaryForLocation(ctx context.Context, companyID string, q SummaryQuery) (SummaryResponse, error) {
	from, err := time.Parse("2006-01-02", q.From)
	if err != nil {
		return SummaryResponse{}, errInvalidDateFormat
	}
	to, err := time.Parse("2006-01-02", q.To)
	if err != nil {
		return SummaryResponse{}, errInvalidDateFormat
	}
	if from.After(to) {
		return SummaryResponse{}, errInvalidDateRange
	}

	shifts, err := s.shiftRepo.FindAllByLocationAndDateRange(ctx, companyID, q.LocationID, from, to)
	if err != nil {
		s.logger.Error("labor summary shift lookup failed",
			zap.String("location_id", q.LocationID),
			zap.Error(err),
		)
		return SummaryResponse{}, err
	}

	summary := Summarize(shifts, q.Sales)

	s.logger.Debug("labor summary computed",
		zap.String("location_id", q.LocationID),
		zap.Int("shift_count", len(shifts)),
		zap.Float64("total_labor_cost", summary.TotalLaborCost),
	)
	return SummaryResponse{
		LocationID: q.LocationID,
		From:       q.From,
		To:         q.To,
		Summary:    summary,
	}, nil
}
