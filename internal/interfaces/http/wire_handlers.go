package http

import (
	"github.com/kimono-rental/kimono/internal/interfaces/http/handlers"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	planHandler   *handlers.PlanHandler
	tagHandler    *handlers.TagHandler
	healthHandler *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	u := c.ucs

	checks := map[string]handlers.Pinger{}
	if sqlDB, err := c.db.DB(); err == nil {
		checks["database"] = sqlDB
	}
	if c.redis != nil {
		checks["redis"] = redisPinger{c.redis}
	}

	c.hdlrs = &allHandlers{
		planHandler: handlers.NewPlanHandler(
			u.createPlanUC, u.updatePlanUC, u.softDeletePlanUC, u.getPlanUC, u.listMerchantPlansUC,
			c.log.With("component", "plan_handler"),
		),
		tagHandler: handlers.NewTagHandler(
			u.createCategoryUC, u.listCategoriesUC, u.deleteCategoryUC,
			u.createTagUC, u.updateTagUC, u.listTagsUC, u.deleteTagUC,
			c.log.With("component", "tag_handler"),
		),
		healthHandler: handlers.NewHealthHandler(checks),
	}
}
