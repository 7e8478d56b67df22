package services

import (
	"context"
	"fmt"

	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// UpgradeSynchronizer replaces a plan's optional paid upgrades. Price
// overrides are stored exactly as supplied, nil included.
type UpgradeSynchronizer struct {
	planUpgradeRepo plan.UpgradeRepository
	componentRepo   merchant.ComponentRepository
	logger          logger.Interface
}

func NewUpgradeSynchronizer(
	planUpgradeRepo plan.UpgradeRepository,
	componentRepo merchant.ComponentRepository,
	logger logger.Interface,
) *UpgradeSynchronizer {
	return &UpgradeSynchronizer{
		planUpgradeRepo: planUpgradeRepo,
		componentRepo:   componentRepo,
		logger:          logger,
	}
}

func (s *UpgradeSynchronizer) Sync(ctx context.Context, p *plan.RentalPlan, inputs []plan.UpgradeInput) ([]plan.PlanUpgrade, error) {
	rows, err := plan.UpgradesFromInputs(p.ID(), inputs)
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

	if err := s.planUpgradeRepo.DeleteByPlan(ctx, p.ID()); err != nil {
		return nil, fmt.Errorf("failed to clear plan upgrades: %w", err)
	}
	if err := s.planUpgradeRepo.CreateBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("failed to insert plan upgrades: %w", errors.MapDBError(err, "merchant component"))
	}

	s.logger.Debugw("plan upgrades synchronized", "plan_id", p.ID(), "count", len(rows))
	return rows, nil
}
