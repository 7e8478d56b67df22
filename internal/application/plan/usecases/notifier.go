package usecases

import (
	"context"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// changeNotifier runs the post-commit side effects of a plan change. Both
// steps are best-effort: the change is already durable, so failures are
// logged and swallowed.
type changeNotifier struct {
	cache     PlanCache
	publisher PlanEventPublisher
	logger    logger.Interface
}

func (n changeNotifier) notify(ctx context.Context, event plan.Event) {
	if n.cache != nil {
		if err := n.cache.Invalidate(ctx, event.PlanID); err != nil {
			n.logger.Warnw("failed to invalidate plan cache", "error", err, "plan_id", event.PlanID)
		}
	}
	if n.publisher != nil {
		if err := n.publisher.Publish(ctx, event); err != nil {
			n.logger.Warnw("failed to publish plan event",
				"error", err,
				"plan_id", event.PlanID,
				"event", event.Type,
			)
		}
	}
}

// loadOwnedPlan is the ownership gate shared by every merchant mutation:
// unknown plan is NotFound, another merchant's plan is Forbidden. It runs
// before any transaction is opened.
func loadOwnedPlan(ctx context.Context, repo plan.Repository, log logger.Interface, planID, merchantID string) (*plan.RentalPlan, error) {
	p, err := repo.GetByID(ctx, planID)
	if err != nil {
		log.Errorw("failed to get plan", "error", err, "plan_id", planID)
		return nil, err
	}
	if p == nil {
		return nil, errors.NewNotFoundError("plan not found", planID)
	}
	if err := p.EnsureOwnedBy(merchantID); err != nil {
		log.Warnw("plan ownership check failed",
			"plan_id", planID,
			"owner_merchant_id", p.MerchantID(),
			"caller_merchant_id", merchantID,
		)
		return nil, err
	}
	return p, nil
}
