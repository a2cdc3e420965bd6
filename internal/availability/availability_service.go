package availability

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	availabilityerrors "github.com/justinnewbold/PattyShack-sub001/internal/availability/errors"
	"github.com/justinnewbold/PattyShack-sub001/internal/timeclock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateAvailabilityRequest) (AvailabilityResponse, error)
	GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]AvailabilityResponse, error)
	Delete(ctx context.Context, companyID, id string) error

	// FindEligibleEmployees resolves who can take a candidate shift window.
	// An employee qualifies when a declared window for that weekday fully
	// contains the candidate, no non-cancelled shift overlaps it, and no
	// approved time off covers the date. Results are ordered preferred
	// first, then fewest scheduled hours in that week, then employee id.
	FindEligibleEmployees(ctx context.Context, companyID string, q EligibilityQuery) ([]EligibleEmployee, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("availability.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("availability.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateAvailabilityRequest) (AvailabilityResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AvailabilityResponse{}, availabilityerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AvailabilityResponse{}, availabilityerrors.ErrInvalidEmployeeID
	}
	locationUUID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return AvailabilityResponse{}, availabilityerrors.ErrInvalidLocationID
	}
	if !timeclock.ValidRange(req.StartTime, req.EndTime) {
		return AvailabilityResponse{}, availabilityerrors.ErrInvalidTimeRange
	}

	var effective, expiration *time.Time
	if req.EffectiveDate != nil && *req.EffectiveDate != "" {
		d, err := parseDate(*req.EffectiveDate)
		if err != nil {
			return AvailabilityResponse{}, err
		}
		effective = &d
	}
	if req.ExpirationDate != nil && *req.ExpirationDate != "" {
		d, err := parseDate(*req.ExpirationDate)
		if err != nil {
			return AvailabilityResponse{}, err
		}
		expiration = &d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create availability begin tx failed", zap.Error(err))
		return AvailabilityResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	belongs, err := qtx.EmployeeBelongsToCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		return AvailabilityResponse{}, err
	}
	if !belongs {
		return AvailabilityResponse{}, availabilityerrors.ErrEmployeeNotInCompany
	}

	a := &Availability{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		LocationID:     locationUUID,
		EmployeeID:     employeeUUID,
		DayOfWeek:      *req.DayOfWeek,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		IsPreferred:    req.IsPreferred,
		EffectiveDate:  effective,
		ExpirationDate: expiration,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, a); err != nil {
		s.logger.Error("create availability persist failed", zap.Error(err))
		return AvailabilityResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AvailabilityResponse{}, err
	}

	s.logger.Info("create availability success",
		zap.String("availability_id", a.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("day_of_week", a.DayOfWeek),
	)
	return mapToResponse(*a), nil
}

func (s *service) GetAllByEmployee(ctx context.Context, companyID, employeeID string) ([]AvailabilityResponse, error) {
	windows, err := s.repo.FindAllByEmployee(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	resp := make([]AvailabilityResponse, len(windows))
	for i, a := range windows {
		resp[i] = mapToResponse(a)
	}
	return resp, nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return availabilityerrors.ErrAvailabilityNotFound
		}
		return err
	}
	return s.repo.Delete(ctx, companyID, id)
}

func (s *service) FindEligibleEmployees(ctx context.Context, companyID string, q EligibilityQuery) ([]EligibleEmployee, error) {
	s.logger.Debug("find eligible employees requested",
		zap.String("company_id", companyID),
		zap.String("location_id", q.LocationID),
		zap.String("date", q.Date),
		zap.String("start_time", q.StartTime),
		zap.String("end_time", q.EndTime),
	)

	date, err := parseDate(q.Date)
	if err != nil {
		return nil, err
	}
	if !timeclock.ValidRange(q.StartTime, q.EndTime) {
		return nil, availabilityerrors.ErrInvalidTimeRange
	}
	candidateStart, err := timeclock.ParseClock(q.StartTime)
	if err != nil {
		return nil, availabilityerrors.ErrInvalidTimeRange
	}
	candidateEnd, err := timeclock.ParseClock(q.EndTime)
	if err != nil {
		return nil, availabilityerrors.ErrInvalidTimeRange
	}

	dayOfWeek := int(date.Weekday())
	windows, err := s.repo.FindWindowsForDay(ctx, companyID, q.LocationID, dayOfWeek, date)
	if err != nil {
		s.logger.Error("find declared windows failed", zap.Error(err))
		return nil, err
	}

	// Collapse multiple windows per employee: any containing window makes
	// them available, a preferred containing window marks them preferred.
	type candidate struct {
		name      string
		preferred bool
	}
	candidates := make(map[string]*candidate)
	order := make([]string, 0, len(windows))
	for _, w := range windows {
		ws, err := timeclock.ParseClock(w.StartTime)
		if err != nil {
			continue
		}
		we, err := timeclock.ParseClock(w.EndTime)
		if err != nil {
			continue
		}
		// Declared window must fully contain the candidate shift
		if ws > candidateStart || we < candidateEnd {
			continue
		}
		c, ok := candidates[w.EmployeeID]
		if !ok {
			c = &candidate{name: w.EmployeeName}
			candidates[w.EmployeeID] = c
			order = append(order, w.EmployeeID)
		}
		if w.IsPreferred {
			c.preferred = true
		}
	}

	weekStart, weekEnd := timeclock.WeekWindow(date)

	eligible := make([]EligibleEmployee, 0, len(order))
	for _, employeeID := range order {
		overlap, err := s.repo.HasOverlappingShift(ctx, companyID, employeeID, date, q.StartTime, q.EndTime)
		if err != nil {
			return nil, err
		}
		if overlap {
			continue
		}

		away, err := s.repo.HasApprovedTimeOff(ctx, companyID, employeeID, date)
		if err != nil {
			return nil, err
		}
		if away {
			continue
		}

		weekHours, err := s.repo.ScheduledHoursInRange(ctx, companyID, employeeID, weekStart, weekEnd)
		if err != nil {
			return nil, err
		}

		eligible = append(eligible, EligibleEmployee{
			EmployeeID:         employeeID,
			FullName:           candidates[employeeID].name,
			IsPreferred:        candidates[employeeID].preferred,
			ScheduledWeekHours: weekHours,
		})
	}

	// Preferred first, then the lightest week, then id for a stable order
	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].IsPreferred != eligible[j].IsPreferred {
			return eligible[i].IsPreferred
		}
		if eligible[i].ScheduledWeekHours != eligible[j].ScheduledWeekHours {
			return eligible[i].ScheduledWeekHours < eligible[j].ScheduledWeekHours
		}
		return eligible[i].EmployeeID < eligible[j].EmployeeID
	})

	s.logger.Debug("find eligible employees resolved",
		zap.Int("declared_windows", len(windows)),
		zap.Int("eligible", len(eligible)),
	)
	return eligible, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, availabilityerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(a Availability) AvailabilityResponse {
	resp := AvailabilityResponse{
		ID:          a.ID.String(),
		CompanyID:   a.CompanyID.String(),
		LocationID:  a.LocationID.String(),
		EmployeeID:  a.EmployeeID.String(),
		DayOfWeek:   a.DayOfWeek,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		IsPreferred: a.IsPreferred,
		Notes:       a.Notes,
	}
	if a.EffectiveDate != nil {
		v := a.EffectiveDate.Format("2006-01-02")
		resp.EffectiveDate = &v
	}
	if a.ExpirationDate != nil {
		v := a.ExpirationDate.Format("2006-01-02")
		resp.ExpirationDate = &v
	}
	return resp
}
