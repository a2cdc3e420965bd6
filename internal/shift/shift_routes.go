package shift

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
	shifts := r.Group("/shifts")
	shifts.Use(middleware.AuthMiddleware())
	{
		shifts.GET("", middleware.RBACAuthorize(rbacService, "shift", "read"), handler.GetAll)
		shifts.GET("/:id", middleware.RBACAuthorize(rbacService, "shift", "read"), handler.GetById)
		shifts.POST("", middleware.RBACAuthorize(rbacService, "shift", "create"), handler.Create)
		shifts.PUT("/:id", middleware.RBACAuthorize(rbacService, "shift", "update"), handler.Update)
		shifts.POST("/:id/assign", middleware.RBACAuthorize(rbacService, "shift", "assign"), handler.Assign)
		shifts.POST("/:id/unassign", middleware.RBACAuthorize(rbacService, "shift", "assign"), handler.Unassign)
		shifts.POST("/:id/status", middleware.RBACAuthorize(rbacService, "shift", "update"), handler.Transition)
		shifts.POST("/:id/clock-in", middleware.RBACAuthorize(rbacService, "shift", "clock"), handler.ClockIn)
		shifts.POST("/:id/clock-out", middleware.RBACAuthorize(rbacService, "shift", "clock"), handler.ClockOut)
		shifts.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "shift", "update"), handler.Cancel)
	}
}
