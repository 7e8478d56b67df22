package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

// TagSynchronizer replaces a plan's tag associations and keeps every tag's
// usage_count in step with the change. Counters move only by the symmetric
// difference between the old and new sets, so a tag that stays attached is
// never counted twice.
type TagSynchronizer struct {
	tagRepo     tag.Repository
	planTagRepo tag.PlanTagRepository
	logger      logger.Interface
}

func NewTagSynchronizer(
	tagRepo tag.Repository,
	planTagRepo tag.PlanTagRepository,
	logger logger.Interface,
) *TagSynchronizer {
	return &TagSynchronizer{
		tagRepo:     tagRepo,
		planTagRepo: planTagRepo,
		logger:      logger,
	}
}

// Sync must run inside the caller's transaction. Rows for tags present before
// and after are still deleted and re-inserted with a fresh created_at.
func (s *TagSynchronizer) Sync(ctx context.Context, planID string, desired []string, actorID string) (tag.Delta, error) {
	current, err := s.planTagRepo.ListTagIDsByPlan(ctx, planID)
	if err != nil {
		return tag.Delta{}, fmt.Errorf("failed to read current plan tags: %w", err)
	}

	delta := tag.ComputeDelta(current, desired)

	if err := s.ensureTagsExist(ctx, delta.Desired); err != nil {
		return tag.Delta{}, err
	}

	if err := s.planTagRepo.DeleteByPlan(ctx, planID); err != nil {
		return tag.Delta{}, fmt.Errorf("failed to clear plan tags: %w", err)
	}

	now := time.Now()
	rows := make([]tag.PlanTag, 0, len(delta.Desired))
	for _, tagID := range delta.Desired {
		rows = append(rows, tag.PlanTag{
			PlanID:    planID,
			TagID:     tagID,
			AddedBy:   actorID,
			CreatedAt: now,
		})
	}
	if err := s.planTagRepo.CreateBatch(ctx, rows); err != nil {
		return tag.Delta{}, fmt.Errorf("failed to insert plan tags: %w", errors.MapDBError(err, "tag"))
	}

	if err := s.tagRepo.ApplyUsageDelta(ctx, delta.ToRemove, -1); err != nil {
		return tag.Delta{}, fmt.Errorf("failed to decrement tag usage: %w", err)
	}
	if err := s.tagRepo.ApplyUsageDelta(ctx, delta.ToAdd, 1); err != nil {
		return tag.Delta{}, fmt.Errorf("failed to increment tag usage: %w", err)
	}

	s.logger.Debugw("plan tags synchronized",
		"plan_id", planID,
		"added", delta.ToAdd,
		"removed", delta.ToRemove,
		"total", len(delta.Desired),
	)
	return delta, nil
}

// ensureTagsExist reports every unknown id in one NotFound error.
func (s *TagSynchronizer) ensureTagsExist(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	found, err := s.tagRepo.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	if len(found) == len(ids) {
		return nil
	}

	known := make(map[string]struct{}, len(found))
	for _, t := range found {
		known[t.ID] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return errors.NewNotFoundError("tag not found", strings.Join(missing, ", "))
}
