package company

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
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("/me", middleware.RBACAuthorize(rbacService, "company", "read"), handler.GetMe)
		companies.PATCH("/me", middleware.RBACAuthorize(rbacService, "company", "update"), handler.UpdateMe)
	}

	locations := r.Group("/locations")
	locations.Use(middleware.AuthMiddleware())
	{
		locations.GET("", middleware.RBACAuthorize(rbacService, "location", "read"), handler.ListLocations)
		locations.GET("/:id", middleware.RBACAuthorize(rbacService, "location", "read"), handler.GetLocation)
		locations.POST("", middleware.RBACAuthorize(rbacService, "location", "create"), handler.CreateLocation)
		locations.PATCH("/:id", middleware.RBACAuthorize(rbacService, "location", "update"), handler.UpdateLocation)
	}
}
