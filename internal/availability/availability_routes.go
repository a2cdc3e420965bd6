package availability

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
	windows := r.Group("/availability")
	windows.Use(middleware.AuthMiddleware())
	{
		windows.GET("/employee/:employeeId", middleware.RBACAuthorize(rbacService, "availability", "read"), handler.GetByEmployee)
		windows.GET("/eligible", middleware.RBACAuthorize(rbacService, "availability", "read"), handler.FindEligible)
		windows.POST("", middleware.RBACAuthorize(rbacService, "availability", "create"), handler.Create)
		windows.DELETE("/:id", middleware.RBACAuthorize(rbacService, "availability", "create"), handler.Delete)
	}
}
