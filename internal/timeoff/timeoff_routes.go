package timeoff

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
	requests := r.Group("/time-off")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "timeoff", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "timeoff", "read"), handler.GetById)
		requests.POST("", middleware.RBACAuthorize(rbacService, "timeoff", "create"), handler.Create)
		requests.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "timeoff", "approve"), handler.Approve)
		requests.POST("/:id/deny", middleware.RBACAuthorize(rbacService, "timeoff", "approve"), handler.Deny)
		requests.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "timeoff", "create"), handler.Cancel)
	}
}
