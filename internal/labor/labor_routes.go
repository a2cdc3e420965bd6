package labor

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
	labor := r.Group("/labor")
	labor.Use(middleware.AuthMiddleware())
	{
		labor.GET("/summary", middleware.RBACAuthorize(rbacService, "labor", "read"), handler.Summary)
	}
}
