package forecast

import (
	"github.com/justinnewbold/PattyShack-sub001/internal/middleware"
	"github.com/justinnewbold/PattyShack-sub001/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	forecast := r.Group("/forecast")
	forecast.Use(middleware.AuthMiddleware())
	{
		forecast.GET("", middleware.RBACAuthorize(rbacService, "forecast", "read"), handler.Forecast)
		forecast.PUT("/actuals", middleware.RBACAuthorize(rbacService, "forecast", "write"), handler.RecordActuals)
	}
}
