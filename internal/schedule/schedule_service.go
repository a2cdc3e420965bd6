package schedule

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/justinnewbold/PattyShack-sub001/internal/availability"
	"github.com/justinnewbold/PattyShack-sub001/internal/events"
	kafkaoutbox "github.com/justinnewbold/PattyShack-sub001/internal/messaging/kafka"
	scheduleerrors "github.com/justinnewbold/PattyShack-sub001/internal/schedule/errors"
	"github.com/justinnewbold/PattyShack-sub001/internal/shared/contextutil"
	"github.com/justinnewbold/PattyShack-sub001/internal/shift"
	"github.com/justinnewbold/PattyShack-sub001/internal/timeclock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreateDraft(ctx context.Context, companyID, actorID string, req CreateScheduleRequest) (ScheduleResponse, error)
	GetAllByLocation(ctx context.Context, companyID, locationID string) ([]ScheduleResponse, error)
	GetByID(ctx context.Context, companyID, id string) (ScheduleDetailResponse, error)
	Publish(ctx context.Context, companyID, actorID, id string) (ScheduleResponse, error)

	// AutoAssign walks the schedule's unassigned shifts in date and start
	// order and fills each from the eligible pool, preferring employees who
	// flagged the window as preferred and balancing toward the lightest
	// week. The whole pass runs in one transaction; shifts with an empty
	// pool stay open and are reported, never treated as an error.
	AutoAssign(ctx context.Context, companyID, actorID, id string) (AutoAssignReport, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	shiftRepo    shift.Repository
	availability availability.Service
	outbox       kafkaoutbox.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	shiftRepo shift.Repository,
	availabilityService availability.Service,
	outbox kafkaoutbox.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("schedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		shiftRepo:    shiftRepo,
		availability: availabilityService,
		outbox:       outbox,
		logger:       l,
	}
}

func (s *service) CreateDraft(ctx context.Context, companyID, actorID string, req CreateScheduleRequest) (ScheduleResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidActorID
	}
	locationUUID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidLocationID
	}
	weekStart, err := parseDate(req.WeekStartDate)
	if err != nil {
		return ScheduleResponse{}, err
	}
	if weekStart.Weekday() != time.Monday {
		return ScheduleResponse{}, scheduleerrors.ErrWeekStartNotMonday
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create schedule begin tx failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsForWeek(ctx, companyID, req.LocationID, weekStart)
	if err != nil {
		return ScheduleResponse{}, err
	}
	if exists {
		return ScheduleResponse{}, scheduleerrors.ErrDuplicateWeek
	}

	sc := &Schedule{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		LocationID:    locationUUID,
		Name:          req.Name,
		WeekStartDate: weekStart,
		WeekEndDate:   weekStart.AddDate(0, 0, 6),
		Status:        StatusDraft,
		Notes:         req.Notes,
		CreatedBy:     actorUUID,
	}

	if err := qtx.Create(ctx, sc); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ScheduleResponse{}, scheduleerrors.ErrDuplicateWeek
		}
		s.logger.Error("create schedule persist failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return ScheduleResponse{}, err
	}

	s.logger.Info("create schedule success",
		zap.String("schedule_id", sc.ID.String()),
		zap.String("location_id", req.LocationID),
		zap.String("week_start", req.WeekStartDate),
	)
	return mapToResponse(*sc), nil
}

func (s *service) GetAllByLocation(ctx context.Context, companyID, locationID string) ([]ScheduleResponse, error) {
	schedules, err := s.repo.FindAllByLocation(ctx, companyID, locationID)
	if err != nil {
		return nil, err
	}
	resp := make([]ScheduleResponse, len(schedules))
	for i, sc := range schedules {
		resp[i] = mapToResponse(sc)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (ScheduleDetailResponse, error) {
	sc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScheduleDetailResponse{}, scheduleerrors.ErrScheduleNotFound
		}
		return ScheduleDetailResponse{}, err
	}

	shifts, err := s.shiftRepo.FindAllBySchedule(ctx, companyID, id)
	if err != nil {
		return ScheduleDetailResponse{}, err
	}

	detail := ScheduleDetailResponse{
		ScheduleResponse: mapToResponse(*sc),
		Shifts:           make([]shift.ShiftResponse, len(shifts)),
	}
	for i, sh := range shifts {
		detail.Shifts[i] = shift.MapToResponse(sh)
	}
	return detail, nil
}

func (s *service) Publish(ctx context.Context, companyID, actorID, id string) (ScheduleResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ScheduleResponse{}, scheduleerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("publish schedule begin tx failed", zap.Error(err))
		return ScheduleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sc, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ScheduleResponse{}, scheduleerrors.ErrScheduleNotFound
		}
		return ScheduleResponse{}, err
	}
	if sc.Status == StatusPublished {
		return ScheduleResponse{}, scheduleerrors.ErrScheduleAlreadyPublished
	}

	shifts, err := s.shiftRepo.WithTx(tx).FindAllBySchedule(ctx, companyID, id)
	if err != nil {
		return ScheduleResponse{}, err
	}

	var totalShifts int
	var scheduledHours, laborCost float64
	dayIndex := make(map[string]*events.SchedulePublishedDay)
	for _, sh := range shifts {
		if sh.Status == shift.StatusCancelled {
			continue
		}
		totalShifts++
		scheduledHours += sh.TotalHours
		laborCost += sh.EstimatedCost

		dateStr := sh.ShiftDate.Format("2006-01-02")
		day, ok := dayIndex[dateStr]
		if !ok {
			day = &events.SchedulePublishedDay{
				Date:           dateStr,
				DayOfWeek:      int(sh.ShiftDate.Weekday()),
				PositionHours:  make(map[string]float64),
				PositionShifts: make(map[string]int),
			}
			dayIndex[dateStr] = day
		}
		day.ScheduledHours = timeclock.Round2(day.ScheduledHours + sh.TotalHours)
		day.LaborCost = timeclock.Round2(day.LaborCost + sh.EstimatedCost)
		day.PositionHours[sh.Position] = timeclock.Round2(day.PositionHours[sh.Position] + sh.TotalHours)
		day.PositionShifts[sh.Position]++
	}
	scheduledHours = timeclock.Round2(scheduledHours)
	laborCost = timeclock.Round2(laborCost)

	days := make([]events.SchedulePublishedDay, 0, len(dayIndex))
	for _, day := range dayIndex {
		days = append(days, *day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	now := time.Now().UTC()
	sc.Status = StatusPublished
	sc.PublishedAt = &now
	sc.PublishedBy = &actorUUID

	if err := qtx.Update(ctx, sc); err != nil {
		s.logger.Error("publish schedule persist failed", zap.String("schedule_id", id), zap.Error(err))
		return ScheduleResponse{}, err
	}

	event := events.SchedulePublishedEvent{
		EventType:      "schedule.published.v1",
		ScheduleID:     sc.ID.String(),
		CompanyID:      sc.CompanyID.String(),
		LocationID:     sc.LocationID.String(),
		WeekStartDate:  sc.WeekStartDate.Format("2006-01-02"),
		WeekEndDate:    sc.WeekEndDate.Format("2006-01-02"),
		TotalShifts:    totalShifts,
		ScheduledHours: scheduledHours,
		LaborCost:      laborCost,
		Days:           days,
		OccurredAt:     now,
	}
	if err := s.enqueueEvent(ctx, tx, "schedule", sc.ID.String(), event.EventType, events.SchedulePublishedTopic, event); err != nil {
		s.logger.Error("publish schedule enqueue event failed", zap.String("schedule_id", id), zap.Error(err))
		return ScheduleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ScheduleResponse{}, err
	}

	s.logger.Info("publish schedule success",
		zap.String("schedule_id", id),
		zap.Int("total_shifts", totalShifts),
		zap.Float64("scheduled_hours", scheduledHours),
	)
	return mapToResponse(*sc), nil
}

// assignedWindow tracks an assignment made earlier in the same auto-assign
// run, before it is visible to the resolver's queries.
type assignedWindow struct {
	date  string
	start int
	end   int
}

func (s *service) AutoAssign(ctx context.Context, companyID, actorID, id string) (AutoAssignReport, error) {
	if _, err := uuid.Parse(actorID); err != nil {
		return AutoAssignReport{}, scheduleerrors.ErrInvalidActorID
	}

	sc, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AutoAssignReport{}, scheduleerrors.ErrScheduleNotFound
		}
		return AutoAssignReport{}, err
	}
	if sc.Status != StatusDraft {
		return AutoAssignReport{}, scheduleerrors.ErrScheduleNotDraft
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("auto assign begin tx failed", zap.Error(err))
		return AutoAssignReport{}, err
	}
	defer tx.Rollback()

	qtx := s.shiftRepo.WithTx(tx)

	all, err := qtx.FindAllBySchedule(ctx, companyID, id)
	if err != nil {
		return AutoAssignReport{}, err
	}

	// Repo already orders by date then start time, which fixes the fill order.
	unassigned := make([]shift.Shift, 0, len(all))
	for _, sh := range all {
		if sh.EmployeeID == nil && sh.Status != shift.StatusCancelled {
			unassigned = append(unassigned, sh)
		}
	}

	report := AutoAssignReport{
		ScheduleID:      id,
		TotalUnassigned: len(unassigned),
		Assignments:     make([]AutoAssignment, 0, len(unassigned)),
	}

	windows := make(map[string][]assignedWindow)
	inRunHours := make(map[string]float64)

	for i := range unassigned {
		sh := &unassigned[i]
		dateStr := sh.ShiftDate.Format("2006-01-02")

		pool, err := s.availability.FindEligibleEmployees(ctx, companyID, availability.EligibilityQuery{
			LocationID: sh.LocationID.String(),
			Date:       dateStr,
			StartTime:  sh.StartTime,
			EndTime:    sh.EndTime,
		})
		if err != nil {
			s.logger.Error("auto assign eligibility lookup failed",
				zap.String("shift_id", sh.ID.String()),
				zap.Error(err),
			)
			return AutoAssignReport{}, err
		}

		picked := s.pickCandidate(pool, dateStr, sh.StartTime, sh.EndTime, windows, inRunHours)
		if picked == nil {
			continue
		}

		employeeUUID, err := uuid.Parse(picked.EmployeeID)
		if err != nil {
			return AutoAssignReport{}, err
		}

		sh.EmployeeID = &employeeUUID
		if sh.HourlyRate == nil {
			rate, err := qtx.EmployeeHourlyRate(ctx, companyID, picked.EmployeeID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return AutoAssignReport{}, err
			}
			sh.HourlyRate = rate
		}
		if sh.HourlyRate != nil {
			sh.EstimatedCost = timeclock.Round2(sh.TotalHours * *sh.HourlyRate)
		}
		sh.RequiresCoverage = false
		if sh.Status == shift.StatusOpen {
			sh.Status = shift.StatusScheduled
		}

		if err := qtx.Update(ctx, sh); err != nil {
			s.logger.Error("auto assign persist failed",
				zap.String("shift_id", sh.ID.String()),
				zap.Error(err),
			)
			return AutoAssignReport{}, err
		}

		event := events.ShiftAssignedEvent{
			EventType:  "shift.assigned.v1",
			ShiftID:    sh.ID.String(),
			ScheduleID: id,
			CompanyID:  companyID,
			EmployeeID: picked.EmployeeID,
			ShiftDate:  dateStr,
			StartTime:  sh.StartTime,
			EndTime:    sh.EndTime,
			OccurredAt: time.Now().UTC(),
		}
		if err := s.enqueueEvent(ctx, tx, "shift", sh.ID.String(), event.EventType, events.ShiftAssignedTopic, event); err != nil {
			return AutoAssignReport{}, err
		}

		start, _ := timeclock.ParseClock(sh.StartTime)
		end, _ := timeclock.ParseClock(sh.EndTime)
		windows[picked.EmployeeID] = append(windows[picked.EmployeeID], assignedWindow{date: dateStr, start: start, end: end})
		inRunHours[picked.EmployeeID] += sh.TotalHours

		report.Assigned++
		report.Assignments = append(report.Assignments, AutoAssignment{
			ShiftID:      sh.ID.String(),
			EmployeeID:   picked.EmployeeID,
			EmployeeName: picked.FullName,
		})
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("auto assign commit failed", zap.String("schedule_id", id), zap.Error(err))
		return AutoAssignReport{}, err
	}

	report.Remaining = report.TotalUnassigned - report.Assigned

	s.logger.Info("auto assign success",
		zap.String("schedule_id", id),
		zap.Int("total_unassigned", report.TotalUnassigned),
		zap.Int("assigned", report.Assigned),
		zap.Int("remaining", report.Remaining),
	)
	return report, nil
}

// pickCandidate re-ranks the resolver's pool with the hours and windows
// accumulated during this run, since those assignments are not yet visible
// to the database reads.
func (s *service) pickCandidate(
	pool []availability.EligibleEmployee,
	date, startTime, endTime string,
	windows map[string][]assignedWindow,
	inRunHours map[string]float64,
) *availability.EligibleEmployee {
	start, err := timeclock.ParseClock(startTime)
	if err != nil {
		return nil
	}
	end, err := timeclock.ParseClock(endTime)
	if err != nil {
		return nil
	}

	candidates := make([]availability.EligibleEmployee, 0, len(pool))
	for _, e := range pool {
		conflict := false
		for _, w := range windows[e.EmployeeID] {
			if w.date == date && timeclock.Overlaps(start, end, w.start, w.end) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}
		e.ScheduledWeekHours = timeclock.Round2(e.ScheduledWeekHours + inRunHours[e.EmployeeID])
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].IsPreferred != candidates[j].IsPreferred {
			return candidates[i].IsPreferred
		}
		if candidates[i].ScheduledWeekHours != candidates[j].ScheduledWeekHours {
			return candidates[i].ScheduledWeekHours < candidates[j].ScheduledWeekHours
		}
		return candidates[i].EmployeeID < candidates[j].EmployeeID
	})
	return &candidates[0]
}

func (s *service) enqueueEvent(ctx context.Context, tx *sql.Tx, aggregateType, aggregateID, eventType, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafkaoutbox.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        kafkaoutbox.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, scheduleerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(sc Schedule) ScheduleResponse {
	resp := ScheduleResponse{
		ID:            sc.ID.String(),
		CompanyID:     sc.CompanyID.String(),
		LocationID:    sc.LocationID.String(),
		Name:          sc.Name,
		WeekStartDate: sc.WeekStartDate.Format("2006-01-02"),
		WeekEndDate:   sc.WeekEndDate.Format("2006-01-02"),
		Status:        sc.Status,
		Notes:         sc.Notes,
	}
	if sc.PublishedAt != nil {
		v := sc.PublishedAt.Format(time.RFC3339)
		resp.PublishedAt = &v
	}
	if sc.PublishedBy != nil {
		v := sc.PublishedBy.String()
		resp.PublishedBy = &v
	}
	return resp
}
