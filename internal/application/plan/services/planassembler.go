package services

import (
	"context"
	"fmt"

	"github.com/kimono-rental/kimono/internal/application/plan/dto"
	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// DescriptionRenderer turns a plan description into safe HTML.
type DescriptionRenderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

// PlanAssembler loads a plan's join rows and the catalog data they point at
// and builds the full PlanDTO.
type PlanAssembler struct {
	planTagRepo       tag.PlanTagRepository
	tagRepo           tag.Repository
	planComponentRepo plan.ComponentRepository
	planUpgradeRepo   plan.UpgradeRepository
	componentRepo     merchant.ComponentRepository
	templateRepo      merchant.TemplateRepository
	renderer          DescriptionRenderer
	logger            logger.Interface
}

func NewPlanAssembler(
	planTagRepo tag.PlanTagRepository,
	tagRepo tag.Repository,
	planComponentRepo plan.ComponentRepository,
	planUpgradeRepo plan.UpgradeRepository,
	componentRepo merchant.ComponentRepository,
	templateRepo merchant.TemplateRepository,
	renderer DescriptionRenderer,
	logger logger.Interface,
) *PlanAssembler {
	return &PlanAssembler{
		planTagRepo:       planTagRepo,
		tagRepo:           tagRepo,
		planComponentRepo: planComponentRepo,
		planUpgradeRepo:   planUpgradeRepo,
		componentRepo:     componentRepo,
		templateRepo:      templateRepo,
		renderer:          renderer,
		logger:            logger,
	}
}

func (a *PlanAssembler) Assemble(ctx context.Context, p *plan.RentalPlan) (*dto.PlanDTO, error) {
	out := dto.ToPlanDTO(p)

	planTags, err := a.planTagRepo.ListByPlan(ctx, p.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load plan tags: %w", err)
	}
	tagIDs := make([]string, 0, len(planTags))
	for _, pt := range planTags {
		tagIDs = append(tagIDs, pt.TagID)
	}
	tags, err := a.tagRepo.GetByIDs(ctx, tagIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	tagsByID := make(map[string]*tag.Tag, len(tags))
	for _, t := range tags {
		tagsByID[t.ID] = t
	}
	out.Tags = dto.ToPlanTagDTOs(planTags, tagsByID)

	components, err := a.planComponentRepo.ListByPlan(ctx, p.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load plan components: %w", err)
	}
	upgrades, err := a.planUpgradeRepo.ListByPlan(ctx, p.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load plan upgrades: %w", err)
	}

	catalog, templates, err := a.loadCatalog(ctx, components, upgrades)
	if err != nil {
		return nil, err
	}
	out.Components = dto.ToPlanComponentDTOs(components, catalog)
	out.Upgrades = dto.ToPlanUpgradeDTOs(upgrades, catalog, templates)

	if a.renderer != nil && p.Base().Description != "" {
		html, err := a.renderer.ToHTMLSanitized(p.Base().Description)
		if err != nil {
			a.logger.Warnw("failed to render plan description", "error", err, "plan_id", p.ID())
		} else {
			out.DescriptionHTML = html
		}
	}

	return out, nil
}

func (a *PlanAssembler) loadCatalog(
	ctx context.Context,
	components []plan.PlanComponent,
	upgrades []plan.PlanUpgrade,
) (map[string]*merchant.Component, map[string]*merchant.ComponentTemplate, error) {
	idSet := make(map[string]struct{}, len(components)+len(upgrades))
	for _, c := range components {
		idSet[c.MerchantComponentID] = struct{}{}
	}
	for _, u := range upgrades {
		idSet[u.MerchantComponentID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	found, err := a.componentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load merchant components: %w", err)
	}
	catalog := make(map[string]*merchant.Component, len(found))
	templateIDs := make([]string, 0, len(found))
	for _, c := range found {
		catalog[c.ID] = c
		templateIDs = append(templateIDs, c.TemplateID)
	}

	tmpls, err := a.templateRepo.GetByIDs(ctx, templateIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load component templates: %w", err)
	}
	templates := make(map[string]*merchant.ComponentTemplate, len(tmpls))
	for _, t := range tmpls {
		templates[t.ID] = t
	}
	return catalog, templates, nil
}
