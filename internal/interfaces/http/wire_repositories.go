package http

import (
	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/infrastructure/repository"
	"github.com/kimono-rental/kimono/internal/shared/db"
)

// repositories holds all repository instances used by the application.
// Types match the return types of the repository constructors.
type repositories struct {
	planRepo          plan.Repository
	planComponentRepo plan.ComponentRepository
	planUpgradeRepo   plan.UpgradeRepository
	tagRepo           tag.Repository
	tagCategoryRepo   tag.CategoryRepository
	planTagRepo       tag.PlanTagRepository
	merchantRepo      merchant.Repository
	componentRepo     merchant.ComponentRepository
	templateRepo      merchant.TemplateRepository

	txManager *db.TransactionManager
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		planRepo:          repository.NewPlanRepository(c.db, c.log),
		planComponentRepo: repository.NewPlanComponentRepository(c.db, c.log),
		planUpgradeRepo:   repository.NewPlanUpgradeRepository(c.db, c.log),
		tagRepo:           repository.NewTagRepository(c.db, c.log),
		tagCategoryRepo:   repository.NewTagCategoryRepository(c.db, c.log),
		planTagRepo:       repository.NewPlanTagRepository(c.db, c.log),
		merchantRepo:      repository.NewMerchantRepository(c.db, c.log),
		componentRepo:     repository.NewMerchantComponentRepository(c.db, c.log),
		templateRepo:      repository.NewComponentTemplateRepository(c.db, c.log),
		txManager:         db.NewTransactionManager(c.db),
	}
}
