package forecast

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/justinnewbold/PattyShack-sub001/internal/events"
	forecasterrors "github.com/justinnewbold/PattyShack-sub001/internal/forecast/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn                func(tx *sql.Tx) Repository
	insertFn                func(ctx context.Context, h *History) error
	findByLocationAndDateFn func(ctx context.Context, companyID, locationID string, date time.Time) (*History, error)
	updateFn                func(ctx context.Context, h *History) error
	findSamplesFn           func(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f.withTxFn(tx) }
func (f *fakeRepo) Insert(ctx context.Context, h *History) error {
	return f.insertFn(ctx, h)
}
func (f *fakeRepo) FindByLocationAndDate(ctx context.Context, companyID, locationID string, date time.Time) (*History, error) {
	return f.findByLocationAndDateFn(ctx, companyID, locationID, date)
}
func (f *fakeRepo) Update(ctx context.Context, h *History) error { return f.updateFn(ctx, h) }
func (f *fakeRepo) FindSamples(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
	return f.findSamplesFn(ctx, companyID, locationID, dayOfWeek, since)
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	assert.NoError(t, err)
	return b
}

func sales(v float64) *float64 { return &v }

func TestService_Forecast_NoHistory(t *testing.T) {
	repo := &fakeRepo{}
	repo.findSamplesFn = func(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
		return nil, nil
	}

	svc := NewService(nil, repo)

	resp, err := svc.Forecast(context.Background(), uuid.New().String(), ForecastQuery{
		LocationID: uuid.New().String(),
		Date:       "2025-06-06", // a Friday
	})
	assert.NoError(t, err)
	assert.Equal(t, ConfidenceInsufficient, resp.Confidence)
	assert.Equal(t, 5, resp.DayOfWeek)
	assert.Zero(t, resp.RecommendedLaborHours)
	assert.Zero(t, resp.ForecastedSales)
	assert.Empty(t, resp.SuggestedStaffing)

	// The sales figure stays in the payload as an explicit zero
	body := mustJSON(t, resp)
	assert.Contains(t, string(body), `"forecasted_sales":0`)
}

func TestService_Forecast_BaselinePrefersActuals(t *testing.T) {
	repo := &fakeRepo{}
	repo.findSamplesFn = func(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
		return []History{
			{ScheduledHours: 40, ActualHours: 44},
			{ScheduledHours: 40, ActualHours: 36},
		}, nil
	}

	svc := NewService(nil, repo)

	resp, err := svc.Forecast(context.Background(), uuid.New().String(), ForecastQuery{
		LocationID: uuid.New().String(),
		Date:       "2025-06-06",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, resp.HistoricalSampleSize)
	assert.Equal(t, 40.0, resp.AverageScheduledHours)
	assert.Equal(t, 40.0, resp.AverageActualHours)
	// round(40 * 1.05)
	assert.Equal(t, 42.0, resp.RecommendedLaborHours)
	assert.Equal(t, ConfidenceLow, resp.Confidence)
}

func TestService_Forecast_BaselineFallsBackToScheduled(t *testing.T) {
	repo := &fakeRepo{}
	repo.findSamplesFn = func(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
		samples := make([]History, 4)
		for i := range samples {
			samples[i] = History{ScheduledHours: 30}
		}
		return samples, nil
	}

	svc := NewService(nil, repo)

	resp, err := svc.Forecast(context.Background(), uuid.New().String(), ForecastQuery{
		LocationID: uuid.New().String(),
		Date:       "2025-06-06",
	})
	assert.NoError(t, err)
	// No worked hours recorded yet, so scheduled history carries the baseline
	assert.Equal(t, 32.0, resp.RecommendedLaborHours)
	assert.Equal(t, ConfidenceMedium, resp.Confidence)
}

func TestService_Forecast_ConfidenceTiers(t *testing.T) {
	cases := []struct {
		samples int
		want    string
	}{
		{0, ConfidenceInsufficient},
		{1, ConfidenceLow},
		{2, ConfidenceLow},
		{3, ConfidenceMedium},
		{6, ConfidenceMedium},
		{7, ConfidenceHigh},
		{12, ConfidenceHigh},
	}

	for _, tc := range cases {
		repo := &fakeRepo{}
		repo.findSamplesFn = func(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
			samples := make([]History, tc.samples)
			for i := range samples {
				samples[i] = History{ScheduledHours: 20}
			}
			return samples, nil
		}

		svc := NewService(nil, repo)
		resp, err := svc.Forecast(context.Background(), uuid.New().String(), ForecastQuery{
			LocationID: uuid.New().String(),
			Date:       "2025-06-06",
		})
		assert.NoError(t, err)
		assert.Equal(t, tc.want, resp.Confidence, "samples=%d", tc.samples)
	}
}

func TestService_Forecast_SalesFallBackToProjection(t *testing.T) {
	repo := &fakeRepo{}
	repo.findSamplesFn = func(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
		return []History{
			{ScheduledHours: 40, ActualSales: sales(1200)},
			{ScheduledHours: 40, ProjectedSales: sales(1000)},
			{ScheduledHours: 40}, // no figure, skipped
		}, nil
	}

	svc := NewService(nil, repo)

	resp, err := svc.Forecast(context.Background(), uuid.New().String(), ForecastQuery{
		LocationID: uuid.New().String(),
		Date:       "2025-06-06",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1100.0, resp.ForecastedSales)
}

func TestService_Forecast_NoSalesFiguresMeansZero(t *testing.T) {
	repo := &fakeRepo{}
	repo.findSamplesFn = func(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
		return []History{
			{ScheduledHours: 40},
			{ScheduledHours: 36},
		}, nil
	}

	svc := NewService(nil, repo)

	resp, err := svc.Forecast(context.Background(), uuid.New().String(), ForecastQuery{
		LocationID: uuid.New().String(),
		Date:       "2025-06-06",
	})
	assert.NoError(t, err)
	assert.Equal(t, ConfidenceLow, resp.Confidence)
	assert.Zero(t, resp.ForecastedSales)
}

func TestService_Forecast_StaffingShares(t *testing.T) {
	repo := &fakeRepo{}
	repo.findSamplesFn = func(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
		return []History{
			{
				ScheduledHours: 40,
				PositionHours:  mustJSON(t, map[string]float64{"grill": 24, "register": 16}),
				PositionShifts: mustJSON(t, map[string]int{"grill": 3, "register": 2}),
			},
		}, nil
	}

	svc := NewService(nil, repo)

	resp, err := svc.Forecast(context.Background(), uuid.New().String(), ForecastQuery{
		LocationID: uuid.New().String(),
		Date:       "2025-06-06",
	})
	assert.NoError(t, err)
	// round(40 * 1.05) = 42 spread 60/40
	assert.Equal(t, 42.0, resp.RecommendedLaborHours)
	assert.Len(t, resp.SuggestedStaffing, 2)

	grill := resp.SuggestedStaffing[0]
	assert.Equal(t, "grill", grill.Position)
	assert.Equal(t, 25.2, grill.Hours)
	// avg shift length 8h -> round(25.2/8) = 3
	assert.Equal(t, 3, grill.Headcount)

	register := resp.SuggestedStaffing[1]
	assert.Equal(t, "register", register.Position)
	assert.Equal(t, 16.8, register.Hours)
	assert.Equal(t, 2, register.Headcount)
}

func TestService_Forecast_StaffingMinimumOneHead(t *testing.T) {
	repo := &fakeRepo{}
	repo.findSamplesFn = func(ctx context.Context, companyID, locationID string, dayOfWeek int, since time.Time) ([]History, error) {
		return []History{
			{
				ScheduledHours: 10,
				PositionHours:  mustJSON(t, map[string]float64{"grill": 9, "prep": 1}),
				PositionShifts: mustJSON(t, map[string]int{"grill": 1, "prep": 1}),
			},
		}, nil
	}

	svc := NewService(nil, repo)

	resp, err := svc.Forecast(context.Background(), uuid.New().String(), ForecastQuery{
		LocationID: uuid.New().String(),
		Date:       "2025-06-06",
	})
	assert.NoError(t, err)

	for _, ps := range resp.SuggestedStaffing {
		assert.GreaterOrEqual(t, ps.Headcount, 1, ps.Position)
	}
}

func TestService_Forecast_BadDate(t *testing.T) {
	svc := NewService(nil, &fakeRepo{})

	_, err := svc.Forecast(context.Background(), uuid.New().String(), ForecastQuery{
		LocationID: uuid.New().String(),
		Date:       "June 6",
	})
	assert.ErrorIs(t, err, forecasterrors.ErrInvalidDateFormat)
}

func TestService_RecordActuals(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	stored := History{ID: uuid.New(), ScheduledHours: 40}
	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByLocationAndDateFn = func(ctx context.Context, companyID, locationID string, date time.Time) (*History, error) {
		return &stored, nil
	}
	var updated History
	repo.updateFn = func(ctx context.Context, h *History) error { updated = *h; return nil }

	svc := NewService(db, repo)

	hours := 43.337
	mock.ExpectBegin()
	mock.ExpectCommit()
	err := svc.RecordActuals(context.Background(), uuid.New().String(), RecordActualsRequest{
		LocationID:  uuid.New().String(),
		Date:        "2025-06-06",
		ActualHours: &hours,
		ActualSales: sales(1500),
	})
	assert.NoError(t, err)
	assert.Equal(t, 43.34, updated.ActualHours)
	assert.Equal(t, 1500.0, *updated.ActualSales)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_RecordActuals_UnknownDay(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer db.Close()

	repo := &fakeRepo{}
	repo.withTxFn = func(tx *sql.Tx) Repository { return repo }
	repo.findByLocationAndDateFn = func(ctx context.Context, companyID, locationID string, date time.Time) (*History, error) {
		return nil, gorm.ErrRecordNotFound
	}

	svc := NewService(db, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err := svc.RecordActuals(context.Background(), uuid.New().String(), RecordActualsRequest{
		LocationID: uuid.New().String(),
		Date:       "2025-06-06",
	})
	assert.ErrorIs(t, err, forecasterrors.ErrHistoryNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_HandleSchedulePublished_IdempotentInsert(t *testing.T) {
	var inserted []History
	repo := &fakeRepo{}
	repo.insertFn = func(ctx context.Context, h *History) error {
		for _, existing := range inserted {
			if existing.Date.Equal(h.Date) {
				return &pgconn.PgError{Code: "23505"}
			}
		}
		inserted = append(inserted, *h)
		return nil
	}

	svc := NewService(nil, repo)

	evt := events.SchedulePublishedEvent{
		ScheduleID: uuid.New().String(),
		CompanyID:  uuid.New().String(),
		LocationID: uuid.New().String(),
		Days: []events.SchedulePublishedDay{
			{Date: "2025-06-02", DayOfWeek: 1, ScheduledHours: 32, LaborCost: 480,
				PositionHours: map[string]float64{"grill": 32}, PositionShifts: map[string]int{"grill": 4}},
			{Date: "2025-06-03", DayOfWeek: 2, ScheduledHours: 24, LaborCost: 360},
		},
	}

	assert.NoError(t, svc.HandleSchedulePublished(context.Background(), evt))
	assert.Len(t, inserted, 2)

	// Redelivery hits the unique index and is absorbed
	assert.NoError(t, svc.HandleSchedulePublished(context.Background(), evt))
	assert.Len(t, inserted, 2)

	var hours map[string]float64
	assert.NoError(t, json.Unmarshal(inserted[0].PositionHours, &hours))
	assert.Equal(t, 32.0, hours["grill"])
}
