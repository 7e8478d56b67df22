package http

import (
	"github.com/kimono-rental/kimono/internal/application/merchant"
	"github.com/kimono-rental/kimono/internal/application/plan/services"
	planUsecases "github.com/kimono-rental/kimono/internal/application/plan/usecases"
	tagUsecases "github.com/kimono-rental/kimono/internal/application/tag/usecases"
	"github.com/kimono-rental/kimono/internal/shared/services/markdown"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// Plan reconciliation
	createPlanUC        *planUsecases.CreatePlanUseCase
	updatePlanUC        *planUsecases.UpdatePlanUseCase
	softDeletePlanUC    *planUsecases.SoftDeletePlanUseCase
	getPlanUC           *planUsecases.GetPlanUseCase
	listMerchantPlansUC *planUsecases.ListMerchantPlansUseCase

	// Tag vocabulary
	createCategoryUC *tagUsecases.CreateCategoryUseCase
	listCategoriesUC *tagUsecases.ListCategoriesUseCase
	deleteCategoryUC *tagUsecases.DeleteCategoryUseCase
	createTagUC      *tagUsecases.CreateTagUseCase
	updateTagUC      *tagUsecases.UpdateTagUseCase
	listTagsUC       *tagUsecases.ListTagsUseCase
	deleteTagUC      *tagUsecases.DeleteTagUseCase
	autoTagPlansUC   *tagUsecases.AutoTagPlansUseCase

	merchantResolver *merchant.Resolver
}

func (c *Container) initUseCases() {
	r := c.repos
	timeout := c.cfg.Reconciliation.TransactionTimeout()

	tagSync := services.NewTagSynchronizer(r.tagRepo, r.planTagRepo, c.log.With("component", "tag_sync"))
	componentSync := services.NewComponentSynchronizer(r.planComponentRepo, r.componentRepo, c.log.With("component", "component_sync"))
	upgradeSync := services.NewUpgradeSynchronizer(r.planUpgradeRepo, r.componentRepo, c.log.With("component", "upgrade_sync"))
	assembler := services.NewPlanAssembler(
		r.planTagRepo, r.tagRepo, r.planComponentRepo, r.planUpgradeRepo,
		r.componentRepo, r.templateRepo, markdown.NewMarkdownService(), c.log,
	)

	c.ucs = &allUseCases{
		createPlanUC: planUsecases.NewCreatePlanUseCase(
			r.planRepo, r.txManager, tagSync, componentSync, upgradeSync, assembler,
			c.publisher, timeout, c.log,
		),
		updatePlanUC: planUsecases.NewUpdatePlanUseCase(
			r.planRepo, r.txManager, tagSync, componentSync, upgradeSync, assembler,
			c.planCache, c.publisher, timeout, c.log,
		),
		softDeletePlanUC:    planUsecases.NewSoftDeletePlanUseCase(r.planRepo, c.planCache, c.publisher, c.log),
		getPlanUC:           planUsecases.NewGetPlanUseCase(r.planRepo, assembler, c.planCache, c.log),
		listMerchantPlansUC: planUsecases.NewListMerchantPlansUseCase(r.planRepo, c.log),

		createCategoryUC: tagUsecases.NewCreateCategoryUseCase(r.tagCategoryRepo, c.log),
		listCategoriesUC: tagUsecases.NewListCategoriesUseCase(r.tagCategoryRepo, c.log),
		deleteCategoryUC: tagUsecases.NewDeleteCategoryUseCase(r.tagCategoryRepo, c.log),
		createTagUC:      tagUsecases.NewCreateTagUseCase(r.tagRepo, r.tagCategoryRepo, c.log),
		updateTagUC:      tagUsecases.NewUpdateTagUseCase(r.tagRepo, c.log),
		listTagsUC:       tagUsecases.NewListTagsUseCase(r.tagRepo, c.log),
		deleteTagUC:      tagUsecases.NewDeleteTagUseCase(r.tagRepo, r.planTagRepo, c.log),
		autoTagPlansUC: tagUsecases.NewAutoTagPlansUseCase(
			r.planRepo, r.tagRepo, r.tagCategoryRepo, r.planTagRepo, tagSync, r.txManager,
			c.planCache, c.publisher, timeout, c.log,
		),

		merchantResolver: merchant.NewResolver(r.merchantRepo, c.log),
	}
}
