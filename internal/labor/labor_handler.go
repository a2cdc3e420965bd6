package labor

import (
	"net/http"

	"github.com/justinnewbold/PattyShack-sub001/internal/shared/apperror"
	"github.com/justinnewbold/PattyShack-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("labor.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("labor.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Summary(c *gin.Context) {
	ctx := c.Request.Context()
	companyID := c.GetString("company_id")

	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("http labor summary validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.SummaryForLocation(ctx, companyID, q)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("labor summary failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
