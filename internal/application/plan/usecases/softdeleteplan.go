package usecases

import (
	"context"
	"fmt"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type SoftDeletePlanCommand struct {
	PlanID     string
	MerchantID string
	ActorID    string
}

// SoftDeletePlanUseCase retires a plan by clearing is_active. Tag, component
// and upgrade rows are kept so bookings that reference the plan still
// resolve.
type SoftDeletePlanUseCase struct {
	planRepo plan.Repository
	notifier changeNotifier
	logger   logger.Interface
}

func NewSoftDeletePlanUseCase(
	planRepo plan.Repository,
	cache PlanCache,
	publisher PlanEventPublisher,
	logger logger.Interface,
) *SoftDeletePlanUseCase {
	return &SoftDeletePlanUseCase{
		planRepo: planRepo,
		notifier: changeNotifier{cache: cache, publisher: publisher, logger: logger},
		logger:   logger,
	}
}

func (uc *SoftDeletePlanUseCase) Execute(ctx context.Context, cmd SoftDeletePlanCommand) error {
	p, err := loadOwnedPlan(ctx, uc.planRepo, uc.logger, cmd.PlanID, cmd.MerchantID)
	if err != nil {
		return err
	}

	if err := uc.planRepo.SoftDelete(ctx, p.ID()); err != nil {
		uc.logger.Errorw("failed to soft delete plan", "error", err, "plan_id", p.ID())
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	p.Retire()

	uc.notifier.notify(ctx, plan.NewEvent(plan.EventPlanRetired, p, cmd.ActorID))

	uc.logger.Infow("plan retired", "plan_id", p.ID(), "merchant_id", p.MerchantID())
	return nil
}
