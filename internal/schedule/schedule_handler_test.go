package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	scheduleerrors "github.com/justinnewbold/PattyShack-sub001/internal/schedule/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScheduleService struct {
	createDraftFn func(ctx context.Context, companyID, actorID string, req CreateScheduleRequest) (ScheduleResponse, error)
	getAllFn      func(ctx context.Context, companyID, locationID string) ([]ScheduleResponse, error)
	getByIDFn     func(ctx context.Context, companyID, id string) (ScheduleDetailResponse, error)
	publishFn     func(ctx context.Context, companyID, actorID, id string) (ScheduleResponse, error)
	autoAssignFn  func(ctx context.Context, companyID, actorID, id string) (AutoAssignReport, error)
}

func (f *fakeScheduleService) CreateDraft(ctx context.Context, companyID, actorID string, req CreateScheduleRequest) (ScheduleResponse, error) {
	if f.createDraftFn != nil {
		return f.createDraftFn(ctx, companyID, actorID, req)
	}
	return ScheduleResponse{}, nil
}

func (f *fakeScheduleService) GetAllByLocation(ctx context.Context, companyID, locationID string) ([]ScheduleResponse, error) {
	if f.getAllFn != nil {
		return f.getAllFn(ctx, companyID, locationID)
	}
	return nil, nil
}

func (f *fakeScheduleService) GetByID(ctx context.Context, companyID, id string) (ScheduleDetailResponse, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, companyID, id)
	}
	return ScheduleDetailResponse{}, nil
}

func (f *fakeScheduleService) Publish(ctx context.Context, companyID, actorID, id string) (ScheduleResponse, error) {
	if f.publishFn != nil {
		return f.publishFn(ctx, companyID, actorID, id)
	}
	return ScheduleResponse{}, nil
}

func (f *fakeScheduleService) AutoAssign(ctx context.Context, companyID, actorID, id string) (AutoAssignReport, error) {
	if f.autoAssignFn != nil {
		return f.autoAssignFn(ctx, companyID, actorID, id)
	}
	return AutoAssignReport{}, nil
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", uuid.NewString())
	c.Set("employee_id", uuid.NewString())
	return c, w
}

func TestCreateHandler(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	h := NewHandler(&fakeScheduleService{
		createDraftFn: func(ctx context.Context, companyID, actorID string, req CreateScheduleRequest) (ScheduleResponse, error) {
			return ScheduleResponse{ID: uuid.NewString(), Status: StatusDraft, Name: req.Name}, nil
		},
	}, rdb)

	body := fmt.Sprintf(`{"location_id":%q,"name":"Week of Jun 2","week_start_date":"2025-06-02"}`, uuid.NewString())
	c, w := newTestContext(http.MethodPost, "/schedules", body)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), StatusDraft)

	// Name shorter than the minimum is rejected at the binding layer
	body = fmt.Sprintf(`{"location_id":%q,"name":"W","week_start_date":"2025-06-02"}`, uuid.NewString())
	c, w = newTestContext(http.MethodPost, "/schedules", body)
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateHandler_WrongWeekdayMapsTo400(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	h := NewHandler(&fakeScheduleService{
		createDraftFn: func(ctx context.Context, companyID, actorID string, req CreateScheduleRequest) (ScheduleResponse, error) {
			return ScheduleResponse{}, scheduleerrors.ErrWeekStartNotMonday
		},
	}, rdb)

	body := fmt.Sprintf(`{"location_id":%q,"name":"Midweek","week_start_date":"2025-06-04"}`, uuid.NewString())
	c, w := newTestContext(http.MethodPost, "/schedules", body)
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_INPUT")
}

func TestGetAllHandler_RequiresLocation(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	h := NewHandler(&fakeScheduleService{}, rdb)

	c, w := newTestContext(http.MethodGet, "/schedules", "")
	h.GetAll(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "location_id")
}

func TestPublishHandler_RepublishRejected(t *testing.T) {
	rdb, _ := redismock.NewClientMock()
	h := NewHandler(&fakeScheduleService{
		publishFn: func(ctx context.Context, companyID, actorID, id string) (ScheduleResponse, error) {
			return ScheduleResponse{}, scheduleerrors.ErrScheduleAlreadyPublished
		},
	}, rdb)

	c, w := newTestContext(http.MethodPost, "/schedules/abc/publish", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Publish(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}

func TestAutoAssignHandler_CachesReportUnderIdempotencyKey(t *testing.T) {
	report := AutoAssignReport{
		ScheduleID:      uuid.NewString(),
		TotalUnassigned: 3,
		Assigned:        2,
		Remaining:       1,
	}
	body, err := json.Marshal(report)
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectSet("idem:result:abc", body, 24*time.Hour).SetVal("OK")
	mock.ExpectDel("idem:lock:abc").SetVal(1)

	h := NewHandler(&fakeScheduleService{
		autoAssignFn: func(ctx context.Context, companyID, actorID, id string) (AutoAssignReport, error) {
			return report, nil
		},
	}, rdb)

	c, w := newTestContext(http.MethodPost, "/schedules/abc/auto-assign", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Set("idempotency_cache_key", "idem:result:abc")
	c.Set("idempotency_lock_key", "idem:lock:abc")
	h.AutoAssign(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"assigned":2`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutoAssignHandler_ReleasesLockOnFailure(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("idem:lock:abc").SetVal(1)

	h := NewHandler(&fakeScheduleService{
		autoAssignFn: func(ctx context.Context, companyID, actorID, id string) (AutoAssignReport, error) {
			return AutoAssignReport{}, scheduleerrors.ErrScheduleNotDraft
		},
	}, rdb)

	c, w := newTestContext(http.MethodPost, "/schedules/abc/auto-assign", "")
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	c.Set("idempotency_lock_key", "idem:lock:abc")
	h.AutoAssign(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
