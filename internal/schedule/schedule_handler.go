package schedule

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/justinnewbold/PattyShack-sub001/internal/shared/apperror"
	"github.com/justinnewbold/PattyShack-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("schedule.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("schedule.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("schedule request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create schedule validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.CreateDraft(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	locationID := c.Query("location_id")
	if locationID == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "location_id query parameter is required", nil)
		return
	}

	resp, err := h.service.GetAllByLocation(ctx, companyID, locationID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	resp, err := h.service.GetByID(ctx, companyID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Publish(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")

	resp, err := h.service.Publish(ctx, companyID, actorID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AutoAssign(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")
	actorID := c.GetString("employee_id")

	report, err := h.service.AutoAssign(ctx, companyID, actorID, c.Param("id"))
	if err != nil {
		h.cleanupIdempotencyLock(c)
		h.writeServiceError(c, err)
		return
	}

	h.cacheIdempotentResult(c, report)
	response.Success(c, http.StatusOK, report, nil)
}

// cacheIdempotentResult stores the run's report under the idempotency key
// set by the middleware so a retried request replays the same answer.
func (h *Handler) cacheIdempotentResult(c *gin.Context, report AutoAssignReport) {
	cacheKey := c.GetString("idempotency_cache_key")
	lockKey := c.GetString("idempotency_lock_key")
	if cacheKey == "" || h.rdb == nil {
		return
	}

	body, err := json.Marshal(report)
	if err == nil {
		if err := h.rdb.Set(c.Request.Context(), cacheKey, body, 24*time.Hour).Err(); err != nil {
			h.logger.Warn("cache auto assign result failed", zap.Error(err))
		}
	}
	if lockKey != "" {
		_ = h.rdb.Del(c.Request.Context(), lockKey).Err()
	}
}

func (h *Handler) cleanupIdempotencyLock(c *gin.Context) {
	lockKey := c.GetString("idempotency_lock_key")
	if lockKey == "" || h.rdb == nil {
		return
	}
	_ = h.rdb.Del(c.Request.Context(), lockKey).Err()
}
