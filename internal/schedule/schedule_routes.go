package schedule

import (
	"github.com/justinnewbold/PattyShack-sub001/internal/middleware"
	"github.com/justinnewbold/PattyShack-sub001/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	schedules := r.Group("/schedules")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.GET("", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.GetAll)
		schedules.GET("/:id", middleware.RBACAuthorize(rbacService, "schedule", "read"), handler.GetByID)
		schedules.POST("", middleware.RBACAuthorize(rbacService, "schedule", "create"), handler.Create)
		schedules.POST("/:id/publish", middleware.RBACAuthorize(rbacService, "schedule", "publish"), handler.Publish)
		schedules.POST("/:id/auto-assign",
			middleware.RBACAuthorize(rbacService, "schedule", "assign"),
			middleware.Idempotency(rdb),
			handler.AutoAssign,
		)
	}
}
