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

type CreatePlanCommand struct {
	MerchantID string
	ActorID    string
	Base       plan.BaseFields
	TagIDs     []string
	Components *services.ComponentInput
	Upgrades   []plan.UpgradeInput
}

// CreatePlanUseCase creates a draft plan and its initial associations in one
// transaction. Initial tags go through the synchronizer so the usage ledger
// is incremented the same way an update would.
type CreatePlanUseCase struct {
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

func NewCreatePlanUseCase(
	planRepo plan.Repository,
	txRunner TransactionRunner,
	tagSync TagSyncer,
	componentSync ComponentSyncer,
	upgradeSync UpgradeSyncer,
	assembler PlanAssembler,
	publisher PlanEventPublisher,
	timeout time.Duration,
	logger logger.Interface,
) *CreatePlanUseCase {
	if timeout <= 0 {
		timeout = DefaultTransactionTimeout
	}
	return &CreatePlanUseCase{
		planRepo:      planRepo,
		txRunner:      txRunner,
		tagSync:       tagSync,
		componentSync: componentSync,
		upgradeSync:   upgradeSync,
		assembler:     assembler,
		notifier:      changeNotifier{publisher: publisher, logger: logger},
		timeout:       timeout,
		logger:        logger,
	}
}

func (uc *CreatePlanUseCase) Execute(ctx context.Context, cmd CreatePlanCommand) (*dto.PlanDTO, error) {
	p, err := plan.NewRentalPlan(cmd.MerchantID, cmd.ActorID, cmd.Base)
	if err != nil {
		return nil, err
	}

	event := plan.NewEvent(plan.EventPlanCreated, p, cmd.ActorID)

	err = uc.txRunner.RunInTransactionWithTimeout(ctx, uc.timeout, func(txCtx context.Context) error {
		if err := uc.planRepo.Create(txCtx, p); err != nil {
			return err
		}
		if len(cmd.TagIDs) > 0 {
			delta, err := uc.tagSync.Sync(txCtx, p.ID(), cmd.TagIDs, cmd.ActorID)
			if err != nil {
				return err
			}
			event.TagsAdded = delta.ToAdd
		}
		if cmd.Components != nil {
			if _, err := uc.componentSync.Sync(txCtx, p, *cmd.Components); err != nil {
				return err
			}
		}
		if len(cmd.Upgrades) > 0 {
			if _, err := uc.upgradeSync.Sync(txCtx, p, cmd.Upgrades); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			uc.logger.Errorw("plan creation timed out", "error", err, "merchant_id", cmd.MerchantID)
			return nil, errors.NewInternalError("plan creation timed out")
		}
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create plan", "error", err, "merchant_id", cmd.MerchantID)
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	uc.notifier.notify(ctx, event)
	uc.logger.Infow("plan created successfully", "plan_id", p.ID(), "merchant_id", p.MerchantID())

	return uc.assembler.Assemble(ctx, p)
}
