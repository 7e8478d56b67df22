package services

import (
	"context"
	"fmt"

	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// ComponentInput is the included-component payload of an update. Placements
// is the detailed form and wins over IDs when it has entries.
type ComponentInput struct {
	Placements []plan.ComponentPlacement
	IDs        []string
}

// ComponentSynchronizer replaces a plan's included components. Rows are
// deleted and re-created on every call; no per-row diff is computed.
type ComponentSynchronizer struct {
	planComponentRepo plan.ComponentRepository
	componentRepo     merchant.ComponentRepository
	logger            logger.Interface
}

func NewComponentSynchronizer(
	planComponentRepo plan.ComponentRepository,
	componentRepo merchant.ComponentRepository,
	logger logger.Interface,
) *ComponentSynchronizer {
	return &ComponentSynchronizer{
		planComponentRepo: planComponentRepo,
		componentRepo:     componentRepo,
		logger:            logger,
	}
}

func (s *ComponentSynchronizer) Sync(ctx context.Context, p *plan.RentalPlan, input ComponentInput) ([]plan.PlanComponent, error) {
	rows, err := buildComponentRows(p.ID(), input)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.MerchantComponentID)
	}
	if err := verifyMerchantComponents(ctx, s.componentRepo, p.MerchantID(), ids); err != nil {
		return nil, err
	}

	if err := s.planComponentRepo.DeleteByPlan(ctx, p.ID()); err != nil {
		return nil, fmt.Errorf("failed to clear plan components: %w", err)
	}
	if err := s.planComponentRepo.CreateBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to insert plan components: %w", errors.MapDBError(err, "merchant component"))
	}

	s.logger.Debugw("plan components synchronized",
		"plan_id", p.ID(),
		"count", len(rows),
		"detailed", len(input.Placements) > 0,
	)
	return rows, nil
}

func buildComponentRows(planID string, input ComponentInput) ([]plan.PlanComponent, error) {
	switch {
	case len(input.Placements) > 0:
		return plan.ComponentsFromPlacements(planID, input.Placements)
	case len(input.IDs) > 0:
		return plan.ComponentsFromIDs(planID, input.IDs)
	default:
		return []plan.PlanComponent{}, nil
	}
}
