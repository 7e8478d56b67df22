package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kimono-rental/kimono/internal/infrastructure/permission"
	"github.com/kimono-rental/kimono/internal/interfaces/http/handlers"
	"github.com/kimono-rental/kimono/internal/interfaces/http/middleware"
)

// TagRouteConfig holds dependencies for tag vocabulary routes.
type TagRouteConfig struct {
	TagHandler           *handlers.TagHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupTagRoutes configures read access for any authenticated role with the
// permission and admin-only writes.
func SetupTagRoutes(engine *gin.Engine, cfg *TagRouteConfig) {
	perm := cfg.PermissionMiddleware

	read := engine.Group("/api")
	read.Use(cfg.AuthMiddleware.RequireAuth())
	{
		read.GET("/tag-categories", perm.RequirePermission(permission.ResourceTagCategory, permission.ActionRead), cfg.TagHandler.ListCategories)
		read.GET("/tags", perm.RequirePermission(permission.ResourceTag, permission.ActionRead), cfg.TagHandler.ListTags)
	}

	admin := engine.Group("/api/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth())
	{
		categories := admin.Group("/tag-categories")
		{
			categories.GET("", perm.RequirePermission(permission.ResourceTagCategory, permission.ActionRead), cfg.TagHandler.ListCategories)
			categories.POST("", perm.RequirePermission(permission.ResourceTagCategory, permission.ActionCreate), cfg.TagHandler.CreateCategory)
			categories.DELETE("/:id", perm.RequirePermission(permission.ResourceTagCategory, permission.ActionDelete), cfg.TagHandler.DeleteCategory)
		}

		tags := admin.Group("/tags")
		{
			tags.GET("", perm.RequirePermission(permission.ResourceTag, permission.ActionRead), cfg.TagHandler.ListTags)
			tags.POST("", perm.RequirePermission(permission.ResourceTag, permission.ActionCreate), cfg.TagHandler.CreateTag)
			tags.PATCH("/:id", perm.RequirePermission(permission.ResourceTag, permission.ActionUpdate), cfg.TagHandler.UpdateTag)
			tags.DELETE("/:id", perm.RequirePermission(permission.ResourceTag, permission.ActionDelete), cfg.TagHandler.DeleteTag)
		}
	}
}
