package trade

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
	trades := r.Group("/trades")
	trades.Use(middleware.AuthMiddleware())
	{
		trades.GET("", middleware.RBACAuthorize(rbacService, "trade", "read"), handler.GetAll)
		trades.GET("/mine", middleware.RBACAuthorize(rbacService, "trade", "read_self"), handler.GetMine)
		trades.GET("/:id", middleware.RBACAuthorize(rbacService, "trade", "read"), handler.GetByID)
		trades.POST("", middleware.RBACAuthorize(rbacService, "trade", "create"), handler.Create)
		trades.POST("/:id/accept", middleware.RBACAuthorize(rbacService, "trade", "respond"), handler.Accept)
		trades.POST("/:id/decline", middleware.RBACAuthorize(rbacService, "trade", "respond"), handler.Decline)
		trades.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, "trade", "create"), handler.Cancel)
		trades.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "trade", "approve"), handler.Approve)
	}
}
