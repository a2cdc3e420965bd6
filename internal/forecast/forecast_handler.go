package forecast

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/justinnewbold/PattyShack-sub001/internal/shared/apperror"
	"github.com/justinnewbold/PattyShack-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// forecastCacheTTL keeps repeated forecast reads off the database. History
// only changes when a schedule publishes or actuals land, so a short TTL
// is enough.
const forecastCacheTTL = 15 * time.Minute

type Handler struct {
	service Service
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("forecast.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("forecast.handler")
	}
	return &Handler{service: service, rdb: rdb, sf: &singleflight.Group{}, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("forecast request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Forecast(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	var q ForecastQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("http forecast validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	cacheKey := fmt.Sprintf("forecast:%s:%s:%s", companyID, q.LocationID, q.Date)
	if h.rdb != nil {
		if cached, err := h.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp ForecastResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				response.Success(c, http.StatusOK, resp, nil)
				return
			}
		}
	}

	// Singleflight collapses concurrent misses for the same key into one
	// history scan; everyone waiting on it shares the result.
	v, err, _ := h.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := h.service.Forecast(ctx, companyID, q)
		if err != nil {
			return nil, err
		}

		if h.rdb != nil {
			if body, err := json.Marshal(resp); err == nil {
				if err := h.rdb.Set(ctx, cacheKey, body, forecastCacheTTL).Err(); err != nil {
					h.logger.Warn("cache forecast failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, v.(ForecastResponse), nil)
}

func (h *Handler) RecordActuals(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	var req RecordActualsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http record actuals validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	if err := h.service.RecordActuals(ctx, companyID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	// Recorded actuals shift the next forecast for this date's weekday, so
	// drop the stale cache entry.
	if h.rdb != nil {
		cacheKey := fmt.Sprintf("forecast:%s:%s:%s", companyID, req.LocationID, req.Date)
		_ = h.rdb.Del(ctx, cacheKey).Err()
	}

	response.Success(c, http.StatusOK, gin.H{"recorded": true}, nil)
}
