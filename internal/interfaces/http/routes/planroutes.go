package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/kimono-rental/kimono/internal/infrastructure/permission"
	"github.com/kimono-rental/kimono/internal/interfaces/http/handlers"
	"github.com/kimono-rental/kimono/internal/interfaces/http/middleware"
)

// PlanRouteConfig holds dependencies for plan routes.
type PlanRouteConfig struct {
	PlanHandler          *handlers.PlanHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
	MerchantMiddleware   *middleware.MerchantMiddleware
	// RateLimiter is nil when Redis is not configured.
	RateLimiter *middleware.RateLimiter
}

// SetupPlanRoutes configures plan routes.
func SetupPlanRoutes(engine *gin.Engine, cfg *PlanRouteConfig) {
	// Public storefront view
	engine.GET("/api/plans/:id", cfg.PlanHandler.GetPublicPlan)

	merchantPlans := engine.Group("/api/merchant/plans")
	merchantPlans.Use(cfg.AuthMiddleware.RequireAuth())
	if cfg.RateLimiter != nil {
		merchantPlans.Use(cfg.RateLimiter.Limit())
	}
	merchantPlans.Use(cfg.MerchantMiddleware.RequireApprovedMerchant())
	{
		perm := cfg.PermissionMiddleware
		merchantPlans.GET("", perm.RequirePermission(permission.ResourcePlan, permission.ActionRead), cfg.PlanHandler.ListMerchantPlans)
		merchantPlans.POST("", perm.RequirePermission(permission.ResourcePlan, permission.ActionCreate), cfg.PlanHandler.CreatePlan)
		merchantPlans.GET("/:id", perm.RequirePermission(permission.ResourcePlan, permission.ActionRead), cfg.PlanHandler.GetMerchantPlan)
		merchantPlans.PATCH("/:id", perm.RequirePermission(permission.ResourcePlan, permission.ActionUpdate), cfg.PlanHandler.UpdatePlan)
		merchantPlans.DELETE("/:id", perm.RequirePermission(permission.ResourcePlan, permission.ActionDelete), cfg.PlanHandler.DeletePlan)
	}
}
