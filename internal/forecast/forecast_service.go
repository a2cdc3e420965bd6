package forecast

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/justinnewbold/PattyShack-sub001/internal/events"
	forecasterrors "github.com/justinnewbold/PattyShack-sub001/internal/forecast/errors"
	"github.com/justinnewbold/PattyShack-sub001/internal/timeclock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// lookbackDays bounds how far back the engine samples. Twelve weeks keeps
// the same-weekday sample fresh enough to track seasonal shifts in trade.
const lookbackDays = 84

const bufferFactor = 1.05

const (
	ConfidenceHigh         = "high"
	ConfidenceMedium       = "medium"
	ConfidenceLow          = "low"
	ConfidenceInsufficient = "insufficient-data"
)

type Service interface {
	// Forecast projects labor demand for the target date from history rows
	// at the location sharing its day of week.
	Forecast(ctx context.Context, companyID string, q ForecastQuery) (ForecastResponse, error)
	RecordActuals(ctx context.Context, companyID string, req RecordActualsRequest) error

	// HandleSchedulePublished projects a published schedule's days into
	// history rows. Redelivered events are absorbed by the unique
	// location+date index.
	HandleSchedulePublished(ctx context.Context, evt events.SchedulePublishedEvent) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("forecast.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("forecast.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Forecast(ctx context.Context, companyID string, q ForecastQuery) (ForecastResponse, error) {
	target, err := time.Parse("2006-01-02", q.Date)
	if err != nil {
		return ForecastResponse{}, forecasterrors.ErrInvalidDateFormat
	}

	dayOfWeek := int(target.Weekday())
	since := target.AddDate(0, 0, -lookbackDays)

	samples, err := s.repo.FindSamples(ctx, companyID, q.LocationID, dayOfWeek, since)
	if err != nil {
		s.logger.Error("forecast sample lookup failed",
			zap.String("location_id", q.LocationID),
			zap.Error(err),
		)
		return ForecastResponse{}, err
	}

	resp := ForecastResponse{
		LocationID:        q.LocationID,
		TargetDate:        q.Date,
		DayOfWeek:         dayOfWeek,
		SuggestedStaffing: []PositionStaffing{},
		Confidence:        confidenceFor(len(samples)),
	}
	if len(samples) == 0 {
		return resp, nil
	}

	resp.HistoricalSampleSize = len(samples)
	resp.AverageScheduledHours = meanOf(samples, func(h History) float64 { return h.ScheduledHours })
	resp.AverageActualHours = meanOf(samples, func(h History) float64 { return h.ActualHours })

	baseline := resp.AverageActualHours
	if baseline == 0 {
		baseline = resp.AverageScheduledHours
	}
	resp.RecommendedLaborHours = math.Round(baseline * bufferFactor)

	resp.ForecastedSales = meanSales(samples)
	resp.SuggestedStaffing = suggestStaffing(samples, resp.RecommendedLaborHours)

	s.logger.Debug("forecast computed",
		zap.String("location_id", q.LocationID),
		zap.String("target_date", q.Date),
		zap.Int("sample_size", len(samples)),
		zap.Float64("recommended_labor_hours", resp.RecommendedLaborHours),
		zap.String("confidence", resp.Confidence),
	)
	return resp, nil
}

// meanOf averages a field over the samples, skipping non-finite values.
func meanOf(samples []History, pick func(History) float64) float64 {
	var sum float64
	var n int
	for _, h := range samples {
		v := pick(h)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return timeclock.Round2(sum / float64(n))
}

// meanSales averages each sample's actual sales, falling back to its
// projection. Samples with neither are skipped; zero when no sample has
// a figure at all.
func meanSales(samples []History) float64 {
	var sum float64
	var n int
	for _, h := range samples {
		v := h.ActualSales
		if v == nil {
			v = h.ProjectedSales
		}
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		sum += *v
		n++
	}
	if n == 0 {
		return 0
	}
	return timeclock.Round2(sum / float64(n))
}

// suggestStaffing spreads the recommended hours across positions in
// proportion to their historical share, then converts each position's
// hours to headcount using its own average shift length. Every position
// that appears in history gets at least one head.
func suggestStaffing(samples []History, recommendedHours float64) []PositionStaffing {
	posHours := make(map[string]float64)
	posShifts := make(map[string]int)
	var totalHours float64

	for _, h := range samples {
		var hours map[string]float64
		if len(h.PositionHours) > 0 {
			if err := json.Unmarshal(h.PositionHours, &hours); err != nil {
				continue
			}
		}
		var shifts map[string]int
		if len(h.PositionShifts) > 0 {
			_ = json.Unmarshal(h.PositionShifts, &shifts)
		}
		for position, v := range hours {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			posHours[position] += v
			totalHours += v
		}
		for position, n := range shifts {
			posShifts[position] += n
		}
	}

	if totalHours == 0 {
		return []PositionStaffing{}
	}

	positions := make([]string, 0, len(posHours))
	for position := range posHours {
		positions = append(positions, position)
	}
	sort.Strings(positions)

	staffing := make([]PositionStaffing, 0, len(positions))
	for _, position := range positions {
		share := posHours[position] / totalHours
		hoursForPosition := timeclock.Round2(recommendedHours * share)

		avgShiftLength := 8.0
		if n := posShifts[position]; n > 0 {
			avgShiftLength = posHours[position] / float64(n)
		}

		headcount := 1
		if avgShiftLength > 0 {
			if hc := int(math.Round(hoursForPosition / avgShiftLength)); hc > 1 {
				headcount = hc
			}
		}

		staffing = append(staffing, PositionStaffing{
			Position:  position,
			Hours:     hoursForPosition,
			Headcount: headcount,
		})
	}
	return staffing
}

func confidenceFor(sampleSize int) string {
	switch {
	case sampleSize >= 7:
		return ConfidenceHigh
	case sampleSize >= 3:
		return ConfidenceMedium
	case sampleSize >= 1:
		return ConfidenceLow
	default:
		return ConfidenceInsufficient
	}
}

func (s *service) RecordActuals(ctx context.Context, companyID string, req RecordActualsRequest) error {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return forecasterrors.ErrInvalidDateFormat
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	h, err := qtx.FindByLocationAndDate(ctx, companyID, req.LocationID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return forecasterrors.ErrHistoryNotFound
		}
		return err
	}

	if req.ActualHours != nil {
		h.ActualHours = timeclock.Round2(*req.ActualHours)
	}
	if req.ActualSales != nil {
		h.ActualSales = req.ActualSales
	}

	if err := qtx.Update(ctx, h); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("record actuals success",
		zap.String("location_id", req.LocationID),
		zap.String("date", req.Date),
	)
	return nil
}

func (s *service) HandleSchedulePublished(ctx context.Context, evt events.SchedulePublishedEvent) error {
	companyUUID, err := uuid.Parse(evt.CompanyID)
	if err != nil {
		return err
	}
	locationUUID, err := uuid.Parse(evt.LocationID)
	if err != nil {
		return err
	}
	scheduleUUID, err := uuid.Parse(evt.ScheduleID)
	if err != nil {
		return err
	}

	for _, day := range evt.Days {
		date, err := time.Parse("2006-01-02", day.Date)
		if err != nil {
			return err
		}

		positionHours, err := json.Marshal(day.PositionHours)
		if err != nil {
			return err
		}
		positionShifts, err := json.Marshal(day.PositionShifts)
		if err != nil {
			return err
		}

		h := &History{
			ID:             uuid.New(),
			CompanyID:      companyUUID,
			LocationID:     locationUUID,
			ScheduleID:     scheduleUUID,
			Date:           date,
			DayOfWeek:      day.DayOfWeek,
			ScheduledHours: day.ScheduledHours,
			LaborCost:      day.LaborCost,
			PositionHours:  positionHours,
			PositionShifts: positionShifts,
		}

		if err := s.repo.Insert(ctx, h); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				s.logger.Debug("history row already projected, skipping",
					zap.String("location_id", evt.LocationID),
					zap.String("date", day.Date),
				)
				continue
			}
			s.logger.Error("project history row failed",
				zap.String("schedule_id", evt.ScheduleID),
				zap.String("date", day.Date),
				zap.Error(err),
			)
			return err
		}
	}

	s.logger.Info("schedule projected into history",
		zap.String("schedule_id", evt.ScheduleID),
		zap.Int("days", len(evt.Days)),
	)
	return nil
}
