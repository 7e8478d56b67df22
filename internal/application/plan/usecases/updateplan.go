package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/kimono-rental/kimono/internal/application/plan/dto"
	"github.com/kimono-rental/kimono/internal/application/plan/services"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// DefaultTransactionTimeout bounds one reconciliation when no timeout is
// configured.
const DefaultTransactionTimeout = 8 * time.Second

// UpdatePlanCommand is a full reconciliation request. A nil TagIDs,
// Components or Upgrades leaves that association untouched; a non-nil empty
// value clears it.
type UpdatePlanCommand struct {
	PlanID     string
	MerchantID string
	ActorID    string
	Base       plan.BaseFieldsPatch
	TagIDs     *[]string
	Components *services.ComponentInput
	Upgrades   *[]plan.UpgradeInput
}

// UpdatePlanUseCase reconciles a plan's base fields, tags, included
// components and upgrades in one transaction.
type UpdatePlanUseCase struct {
	planRepo      plan.Repository
	txRunner      TransactionRunner
	tagSync       TagSyncer
	componentSync ComponentSyncer
	upgradeSync   UpgradeSyncer
	assembler     PlanAssembler
	notifier      changeNotifier
	timeout       time.Duration
	logger        logger.Interface
}

func NewUpdatePlanUseCase(
	planRepo plan.Repository,
	txRunner TransactionRunner,
	tagSync TagSyncer,
	componentSync ComponentSyncer,
	upgradeSync UpgradeSyncer,
	assembler PlanAssembler,
	cache PlanCache,
	publisher PlanEventPublisher,
	timeout time.Duration,
	logger logger.Interface,
) *UpdatePlanUseCase {
	if timeout <= 0 {
		timeout = DefaultTransactionTimeout
	}
	return &UpdatePlanUseCase{
		planRepo:      planRepo,
		txRunner:      txRunner,
		tagSync:       tagSync,
		componentSync: componentSync,
		upgradeSync:   upgradeSync,
		assembler:     assembler,
		notifier:      changeNotifier{cache: cache, publisher: publisher, logger: logger},
		timeout:       timeout,
		logger:        logger,
	}
}

func (uc *UpdatePlanUseCase) Execute(ctx context.Context, cmd UpdatePlanCommand) (*dto.PlanDTO, error) {
	p, err := loadOwnedPlan(ctx, uc.planRepo, uc.logger, cmd.PlanID, cmd.MerchantID)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureActive(); err != nil {
		return nil, err
	}

	if err := p.ApplyPatch(cmd.Base); err != nil {
		return nil, err
	}

	event := plan.NewEvent(plan.EventPlanUpdated, p, cmd.ActorID)
	started := time.Now()

	err = uc.txRunner.RunInTransactionWithTimeout(ctx, uc.timeout, func(txCtx context.Context) error {
		if err := uc.planRepo.UpdateBaseFields(txCtx, p); err != nil {
			return err
		}

		if cmd.TagIDs != nil {
			delta, err := uc.tagSync.Sync(txCtx, p.ID(), *cmd.TagIDs, cmd.ActorID)
			if err != nil {
				return err
			}
			event.TagsAdded = delta.ToAdd
			event.TagsRemoved = delta.ToRemove
		}

		if cmd.Components != nil {
			if _, err := uc.componentSync.Sync(txCtx, p, *cmd.Components); err != nil {
				return err
			}
		}

		if cmd.Upgrades != nil {
			if _, err := uc.upgradeSync.Sync(txCtx, p, *cmd.Upgrades); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			uc.logger.Errorw("plan reconciliation timed out",
				"error", err,
				"plan_id", p.ID(),
				"timeout", uc.timeout,
				"elapsed", time.Since(started),
			)
			return nil, errors.NewInternalError("plan update timed out")
		}
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("plan reconciliation failed", "error", err, "plan_id", p.ID())
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	uc.notifier.notify(ctx, event)

	updated, err := uc.planRepo.GetByID(ctx, p.ID())
	if err != nil {
		uc.logger.Errorw("failed to reload updated plan", "error", err, "plan_id", p.ID())
		return nil, fmt.Errorf("failed to reload updated plan: %w", err)
	}
	if updated == nil {
		return nil, errors.NewNotFoundError("plan not found", p.ID())
	}

	uc.logger.Infow("plan updated successfully",
		"plan_id", p.ID(),
		"merchant_id", p.MerchantID(),
		"tags_added", len(event.TagsAdded),
		"tags_removed", len(event.TagsRemoved),
		"elapsed", time.Since(started),
	)

	return uc.assembler.Assemble(ctx, updated)
}
