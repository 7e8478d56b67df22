package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/kimono-rental/kimono/internal/application/tag/autotag"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type TransactionRunner interface {
	RunInTransactionWithTimeout(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error
}

type TagSyncer interface {
	Sync(ctx context.Context, planID string, desired []string, actorID string) (tag.Delta, error)
}

type PlanCacheInvalidator interface {
	Invalidate(ctx context.Context, planID string) error
}

type PlanEventPublisher interface {
	Publish(ctx context.Context, event plan.Event) error
}

type AutoTagCommand struct {
	Rules   []autotag.Rule
	ActorID string
	DryRun  bool
}

type PlanTagChange struct {
	PlanID   string
	PlanName string
	Added    []string
}

type AutoTagResult struct {
	PlansScanned    int
	PlansChanged    int
	TagsAttached    int
	UnresolvedRules []autotag.Rule
	Changes         []PlanTagChange
	Failed          map[string]error
}

// AutoTagPlansUseCase adds rule-matched tags to every active plan. Existing
// tags are never removed; each plan is reconciled through the tag
// synchronizer in its own transaction so usage counters stay exact.
type AutoTagPlansUseCase struct {
	planRepo     plan.Repository
	tagRepo      tag.Repository
	categoryRepo tag.CategoryRepository
	planTagRepo  tag.PlanTagRepository
	tagSync      TagSyncer
	txRunner     TransactionRunner
	cache        PlanCacheInvalidator
	publisher    PlanEventPublisher
	timeout      time.Duration
	logger       logger.Interface
}

func NewAutoTagPlansUseCase(
	planRepo plan.Repository,
	tagRepo tag.Repository,
	categoryRepo tag.CategoryRepository,
	planTagRepo tag.PlanTagRepository,
	tagSync TagSyncer,
	txRunner TransactionRunner,
	cache PlanCacheInvalidator,
	publisher PlanEventPublisher,
	timeout time.Duration,
	logger logger.Interface,
) *AutoTagPlansUseCase {
	return &AutoTagPlansUseCase{
		planRepo:     planRepo,
		tagRepo:      tagRepo,
		categoryRepo: categoryRepo,
		planTagRepo:  planTagRepo,
		tagSync:      tagSync,
		txRunner:     txRunner,
		cache:        cache,
		publisher:    publisher,
		timeout:      timeout,
		logger:       logger,
	}
}

func (uc *AutoTagPlansUseCase) Execute(ctx context.Context, cmd AutoTagCommand) (*AutoTagResult, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag categories: %w", err)
	}
	tags, err := uc.tagRepo.List(ctx, tag.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	classifier, unresolved := autotag.NewClassifier(cmd.Rules, categories, tags)
	for _, rule := range unresolved {
		uc.logger.Warnw("auto-tag rule references unknown tag", "category", rule.Category, "tag", rule.Tag)
	}

	planIDs, err := uc.planRepo.ListActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active plans: %w", err)
	}

	result := &AutoTagResult{
		UnresolvedRules: unresolved,
		Failed:          make(map[string]error),
	}
	for _, planID := range planIDs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.PlansScanned++

		change, err := uc.tagPlan(ctx, classifier, planID, cmd)
		if err != nil {
			uc.logger.Errorw("auto-tagging failed for plan", "error", err, "plan_id", planID)
			result.Failed[planID] = err
			continue
		}
		if change == nil {
			continue
		}
		result.PlansChanged++
		result.TagsAttached += len(change.Added)
		result.Changes = append(result.Changes, *change)
	}

	uc.logger.Infow("auto-tagging finished",
		"dry_run", cmd.DryRun,
		"plans_scanned", result.PlansScanned,
		"plans_changed", result.PlansChanged,
		"tags_attached", result.TagsAttached,
		"failed", len(result.Failed),
	)
	return result, nil
}

// tagPlan reads the plan's current tags inside the same transaction as the
// sync, so a tag removed by a concurrent edit is not written back.
func (uc *AutoTagPlansUseCase) tagPlan(ctx context.Context, classifier *autotag.Classifier, planID string, cmd AutoTagCommand) (*PlanTagChange, error) {
	p, err := uc.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if p == nil || !p.IsActive() {
		return nil, nil
	}

	matched := classifier.Match(p.Name(), p.Base().Description)
	if len(matched) == 0 {
		return nil, nil
	}

	if cmd.DryRun {
		delta, err := uc.planDelta(ctx, planID, matched)
		if err != nil || delta.IsNoop() {
			return nil, err
		}
		return &PlanTagChange{PlanID: planID, PlanName: p.Name(), Added: delta.ToAdd}, nil
	}

	var added []string
	err = uc.txRunner.RunInTransactionWithTimeout(ctx, uc.timeout, func(txCtx context.Context) error {
		delta, err := uc.planDelta(txCtx, planID, matched)
		if err != nil || delta.IsNoop() {
			return err
		}
		applied, err := uc.tagSync.Sync(txCtx, planID, delta.Desired, cmd.ActorID)
		if err != nil {
			return err
		}
		added = applied.ToAdd
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(added) == 0 {
		return nil, nil
	}

	uc.notify(ctx, p, cmd.ActorID, added)
	return &PlanTagChange{PlanID: planID, PlanName: p.Name(), Added: added}, nil
}

// planDelta is the change that adds matched to the plan's current tags.
func (uc *AutoTagPlansUseCase) planDelta(ctx context.Context, planID string, matched []string) (tag.Delta, error) {
	current, err := uc.planTagRepo.ListTagIDsByPlan(ctx, planID)
	if err != nil {
		return tag.Delta{}, fmt.Errorf("failed to read plan tags: %w", err)
	}
	desired := append(append([]string{}, current...), matched...)
	return tag.ComputeDelta(current, desired), nil
}

func (uc *AutoTagPlansUseCase) notify(ctx context.Context, p *plan.RentalPlan, actorID string, added []string) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, p.ID()); err != nil {
			uc.logger.Warnw("failed to invalidate plan cache", "error", err, "plan_id", p.ID())
		}
	}
	if uc.publisher != nil {
		event := plan.NewEvent(plan.EventPlanUpdated, p, actorID)
		event.TagsAdded = added
		if err := uc.publisher.Publish(ctx, event); err != nil {
			uc.logger.Warnw("failed to publish plan event", "error", err, "plan_id", p.ID())
		}
	}
}
