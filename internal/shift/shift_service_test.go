package shift

import (
	"context"
	"database/sql"
	"testing"
	"time"

	shifterrors "github.com/justinnewbold/PattyShack-sub001/internal/shift/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeShiftRepo struct {
	withTxFn              func(tx *sql.Tx) Repository
	createFn              func(ctx context.Context, sh *Shift) error
	findAllByScheduleFn   func(ctx context.Context, companyID, scheduleID string) ([]Shift, error)
	findAllByLocationFn   func(ctx context.Context, companyID, locationID string, from, to time.Time) ([]Shift, error)
	findAllByEmployeeFn   func(ctx context.Context, companyID, employeeID string, date time.Time) ([]Shift, error)
	findByIDAndCompanyFn  func(ctx context.Context, companyID, id string) (*Shift, error)
	updateFn              func(ctx context.Context, sh *Shift) error
	hasOverlappingShiftFn func(ctx context.Context, companyID, employeeID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error)
	hasApprovedTimeOffFn  func(ctx context.Context, companyID, employeeID string, date time.Time) (bool, error)
	employeeHourlyRateFn  func(ctx context.Context, companyID, employeeID string) (*float64, error)
}

func (f *fakeShiftRepo) WithTx(tx *sql.Tx) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeShiftRepo) Create(ctx context.Context, sh *Shift) error {
	if f.createFn != nil {
		return f.createFn(ctx, sh)
	}
	return nil
}

func (f *fakeShiftRepo) FindAllBySchedule(ctx context.Context, companyID, scheduleID string) ([]Shift, error) {
	if f.findAllByScheduleFn != nil {
		return f.findAllByScheduleFn(ctx, companyID, scheduleID)
	}
	return nil, nil
}

func (f *fakeShiftRepo) FindAllByLocationAndDateRange(ctx context.Context, companyID, locationID string, from, to time.Time) ([]Shift, error) {
	if f.findAllByLocationFn != nil {
		return f.findAllByLocationFn(ctx, companyID, locationID, from, to)
	}
	return nil, nil
}

func (f *fakeShiftRepo) FindAllByEmployeeAndDate(ctx context.Context, companyID, employeeID string, date time.Time) ([]Shift, error) {
	if f.findAllByEmployeeFn != nil {
		return f.findAllByEmployeeFn(ctx, companyID, employeeID, date)
	}
	return nil, nil
}

func (f *fakeShiftRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Shift, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeShiftRepo) Update(ctx context.Context, sh *Shift) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, sh)
	}
	return nil
}

func (f *fakeShiftRepo) HasOverlappingShift(ctx context.Context, companyID, employeeID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error) {
	if f.hasOverlappingShiftFn != nil {
		return f.hasOverlappingShiftFn(ctx, companyID, employeeID, date, startTime, endTime, excludeID)
	}
	return false, nil
}

func (f *fakeShiftRepo) HasApprovedTimeOff(ctx context.Context, companyID, employeeID string, date time.Time) (bool, error) {
	if f.hasApprovedTimeOffFn != nil {
		return f.hasApprovedTimeOffFn(ctx, companyID, employeeID, date)
	}
	return false, nil
}

func (f *fakeShiftRepo) EmployeeHourlyRate(ctx context.Context, companyID, employeeID string) (*float64, error) {
	if f.employeeHourlyRateFn != nil {
		return f.employeeHourlyRateFn(ctx, companyID, employeeID)
	}
	return nil, gorm.ErrRecordNotFound
}

func ptr[T any](v T) *T { return &v }

func storedShift(status string) *Shift {
	emp := uuid.New()
	return &Shift{
		ID:           uuid.New(),
		CompanyID:    uuid.New(),
		LocationID:   uuid.New(),
		ScheduleID:   uuid.New(),
		EmployeeID:   &emp,
		Position:     "grill",
		ShiftDate:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		StartTime:    "09:00",
		EndTime:      "17:00",
		BreakMinutes: 30,
		HourlyRate:   ptr(16.0),
		TotalHours:   7.5,
		Status:       status,
	}
}

func TestCreate_ValidationsRejectBeforeTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeShiftRepo{})
	companyID := uuid.NewString()
	actorID := uuid.NewString()

	base := CreateShiftRequest{
		LocationID: uuid.NewString(),
		ScheduleID: uuid.NewString(),
		Position:   "grill",
		ShiftDate:  "2025-06-02",
		StartTime:  "09:00",
		EndTime:    "17:00",
	}

	_, err = svc.Create(context.Background(), "nope", actorID, base)
	assert.ErrorIs(t, err, shifterrors.ErrInvalidCompanyID)

	bad := base
	bad.ShiftDate = "06/02/2025"
	_, err = svc.Create(context.Background(), companyID, actorID, bad)
	assert.ErrorIs(t, err, shifterrors.ErrInvalidDateFormat)

	bad = base
	bad.StartTime = "17:00"
	bad.EndTime = "09:00"
	_, err = svc.Create(context.Background(), companyID, actorID, bad)
	assert.ErrorIs(t, err, shifterrors.ErrInvalidTimeRange)

	// None of the rejects should have touched the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnassignedShiftRequiresCoverage(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	var created *Shift
	repo := &fakeShiftRepo{
		createFn: func(ctx context.Context, sh *Shift) error {
			created = sh
			return nil
		},
	}
	svc := NewService(db, repo)

	resp, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), CreateShiftRequest{
		LocationID:   uuid.NewString(),
		ScheduleID:   uuid.NewString(),
		Position:     "register",
		ShiftDate:    "2025-06-02",
		StartTime:    "09:00",
		EndTime:      "17:00",
		BreakMinutes: 30,
		HourlyRate:   ptr(16.0),
	})
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.Nil(t, created.EmployeeID)
	assert.True(t, created.RequiresCoverage)
	assert.Equal(t, StatusScheduled, created.Status)
	// 8h minus a 30-minute break
	assert.Equal(t, 7.5, resp.TotalHours)
	assert.Equal(t, 120.0, resp.EstimatedCost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_RateFallsBackToEmployeeProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	repo := &fakeShiftRepo{
		employeeHourlyRateFn: func(ctx context.Context, companyID, employeeID string) (*float64, error) {
			return ptr(18.5), nil
		},
	}
	svc := NewService(db, repo)

	resp, err := svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), CreateShiftRequest{
		LocationID: uuid.NewString(),
		ScheduleID: uuid.NewString(),
		EmployeeID: ptr(uuid.NewString()),
		Position:   "grill",
		ShiftDate:  "2025-06-02",
		StartTime:  "10:00",
		EndTime:    "14:00",
	})
	require.NoError(t, err)

	require.NotNil(t, resp.HourlyRate)
	assert.Equal(t, 18.5, *resp.HourlyRate)
	assert.Equal(t, 74.0, resp.EstimatedCost)
	assert.False(t, resp.RequiresCoverage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_OverlapAndTimeOffRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	req := CreateShiftRequest{
		LocationID: uuid.NewString(),
		ScheduleID: uuid.NewString(),
		EmployeeID: ptr(uuid.NewString()),
		Position:   "grill",
		ShiftDate:  "2025-06-02",
		StartTime:  "09:00",
		EndTime:    "17:00",
	}

	mock.ExpectBegin()
	mock.ExpectRollback()
	svc := NewService(db, &fakeShiftRepo{
		hasOverlappingShiftFn: func(ctx context.Context, companyID, employeeID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error) {
			return true, nil
		},
	})
	_, err = svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), req)
	assert.ErrorIs(t, err, shifterrors.ErrShiftOverlap)

	mock.ExpectBegin()
	mock.ExpectRollback()
	svc = NewService(db, &fakeShiftRepo{
		hasApprovedTimeOffFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (bool, error) {
			return true, nil
		},
	})
	_, err = svc.Create(context.Background(), uuid.NewString(), uuid.NewString(), req)
	assert.ErrorIs(t, err, shifterrors.ErrEmployeeOnTimeOff)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{StatusScheduled, StatusConfirmed, true},
		{StatusScheduled, StatusInProgress, true},
		{StatusScheduled, StatusNoShow, true},
		{StatusScheduled, StatusOpen, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusScheduled, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusScheduled, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusOpen, StatusScheduled, true},
		{StatusOpen, StatusCancelled, true},
		{StatusOpen, StatusInProgress, false},
		{StatusCompleted, StatusScheduled, false},
		{StatusNoShow, StatusScheduled, false},
		{StatusCancelled, StatusOpen, false},
		{StatusScheduled, StatusScheduled, false},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.allowed, isAllowedStatusTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTransition_ToOpenClearsAssignment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	sh := storedShift(StatusScheduled)
	var updated *Shift
	repo := &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return sh, nil
		},
		updateFn: func(ctx context.Context, s *Shift) error {
			updated = s
			return nil
		},
	}
	svc := NewService(db, repo)

	resp, err := svc.Transition(context.Background(), sh.CompanyID.String(), sh.ID.String(), StatusOpen)
	require.NoError(t, err)

	assert.Equal(t, StatusOpen, resp.Status)
	assert.Nil(t, resp.EmployeeID)
	assert.True(t, resp.RequiresCoverage)
	require.NotNil(t, updated)
	assert.Nil(t, updated.EmployeeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransition_InvalidRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sh := storedShift(StatusCompleted)
	svc := NewService(db, &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return sh, nil
		},
	})

	_, err = svc.Transition(context.Background(), sh.CompanyID.String(), sh.ID.String(), StatusScheduled)
	assert.ErrorIs(t, err, shifterrors.ErrInvalidStatusTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssign_RepricesAndReopensSchedule(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	sh := storedShift(StatusOpen)
	sh.EmployeeID = nil
	sh.HourlyRate = nil
	sh.RequiresCoverage = true

	employeeID := uuid.NewString()
	repo := &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return sh, nil
		},
		employeeHourlyRateFn: func(ctx context.Context, companyID, empID string) (*float64, error) {
			assert.Equal(t, employeeID, empID)
			return ptr(20.0), nil
		},
	}
	svc := NewService(db, repo)

	resp, err := svc.Assign(context.Background(), sh.CompanyID.String(), sh.ID.String(), employeeID)
	require.NoError(t, err)

	require.NotNil(t, resp.EmployeeID)
	assert.Equal(t, employeeID, *resp.EmployeeID)
	assert.Equal(t, StatusScheduled, resp.Status)
	assert.False(t, resp.RequiresCoverage)
	// 7.5h at the profile rate
	assert.Equal(t, 150.0, resp.EstimatedCost)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssign_ConflictsBlock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sh := storedShift(StatusOpen)
	sh.EmployeeID = nil

	mock.ExpectBegin()
	mock.ExpectRollback()
	svc := NewService(db, &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return sh, nil
		},
		hasOverlappingShiftFn: func(ctx context.Context, companyID, employeeID string, date time.Time, startTime, endTime string, excludeID *string) (bool, error) {
			require.NotNil(t, excludeID)
			assert.Equal(t, sh.ID.String(), *excludeID)
			return true, nil
		},
	})
	_, err = svc.Assign(context.Background(), sh.CompanyID.String(), sh.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, shifterrors.ErrShiftOverlap)

	mock.ExpectBegin()
	mock.ExpectRollback()
	svc = NewService(db, &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return sh, nil
		},
		hasApprovedTimeOffFn: func(ctx context.Context, companyID, employeeID string, date time.Time) (bool, error) {
			return true, nil
		},
	})
	_, err = svc.Assign(context.Background(), sh.CompanyID.String(), sh.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, shifterrors.ErrEmployeeOnTimeOff)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnassign_MovesShiftToOpen(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	sh := storedShift(StatusScheduled)
	svc := NewService(db, &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return sh, nil
		},
	})

	resp, err := svc.Unassign(context.Background(), sh.CompanyID.String(), sh.ID.String())
	require.NoError(t, err)

	assert.Nil(t, resp.EmployeeID)
	assert.Equal(t, StatusOpen, resp.Status)
	assert.True(t, resp.RequiresCoverage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnassign_AlreadyUnassigned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	sh := storedShift(StatusOpen)
	sh.EmployeeID = nil
	svc := NewService(db, &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return sh, nil
		},
	})

	_, err = svc.Unassign(context.Background(), sh.CompanyID.String(), sh.ID.String())
	assert.ErrorIs(t, err, shifterrors.ErrShiftNotAssigned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClockInClockOutLifecycle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	sh := storedShift(StatusConfirmed)
	repo := &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return sh, nil
		},
	}
	svc := NewService(db, repo)

	loc := time.FixedZone("EDT", -4*3600)
	in := time.Date(2025, 6, 2, 9, 2, 0, 0, loc)

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.ClockIn(context.Background(), sh.CompanyID.String(), sh.ID.String(), in)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, resp.Status)
	require.NotNil(t, sh.ClockIn)
	assert.Equal(t, time.UTC, sh.ClockIn.Location())

	// Double clock-in never touches the row
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.ClockIn(context.Background(), sh.CompanyID.String(), sh.ID.String(), in)
	assert.ErrorIs(t, err, shifterrors.ErrAlreadyClockedIn)

	out := in.Add(8*time.Hour + 15*time.Minute)
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err = svc.ClockOut(context.Background(), sh.CompanyID.String(), sh.ID.String(), out)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, resp.Status)
	// 8.25h worked minus the 30-minute break
	assert.Equal(t, 7.75, resp.ActualHours)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.ClockOut(context.Background(), sh.CompanyID.String(), sh.ID.String(), out)
	assert.ErrorIs(t, err, shifterrors.ErrAlreadyClockedOut)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClockGuards(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	unassigned := storedShift(StatusOpen)
	unassigned.EmployeeID = nil

	mock.ExpectBegin()
	mock.ExpectRollback()
	svc := NewService(db, &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return unassigned, nil
		},
	})
	_, err = svc.ClockIn(context.Background(), unassigned.CompanyID.String(), unassigned.ID.String(), time.Now())
	assert.ErrorIs(t, err, shifterrors.ErrShiftNotAssigned)

	neverIn := storedShift(StatusConfirmed)
	mock.ExpectBegin()
	mock.ExpectRollback()
	svc = NewService(db, &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return neverIn, nil
		},
	})
	_, err = svc.ClockOut(context.Background(), neverIn.CompanyID.String(), neverIn.ID.String(), time.Now())
	assert.ErrorIs(t, err, shifterrors.ErrNotClockedIn)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	sh := storedShift(StatusScheduled)
	sh.RequiresCoverage = true
	svc := NewService(db, &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return sh, nil
		},
	})

	resp, err := svc.Cancel(context.Background(), sh.CompanyID.String(), sh.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, resp.Status)
	assert.False(t, resp.RequiresCoverage)

	// Completed work cannot be cancelled away
	mock.ExpectBegin()
	mock.ExpectRollback()
	done := storedShift(StatusCompleted)
	svc = NewService(db, &fakeShiftRepo{
		findByIDAndCompanyFn: func(ctx context.Context, companyID, id string) (*Shift, error) {
			return done, nil
		},
	})
	_, err = svc.Cancel(context.Background(), done.CompanyID.String(), done.ID.String())
	assert.ErrorIs(t, err, shifterrors.ErrInvalidStatusTransition)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db, &fakeShiftRepo{})
	_, err = svc.GetByID(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, shifterrors.ErrShiftNotFound)
}
