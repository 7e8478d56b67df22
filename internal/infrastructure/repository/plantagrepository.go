package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/mappers"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
	"github.com/kimono-rental/kimono/internal/shared/db"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type PlanTagRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanTagRepository(db *gorm.DB, logger logger.Interface) tag.PlanTagRepository {
	return &PlanTagRepositoryImpl{db: db, logger: logger}
}

func (r *PlanTagRepositoryImpl) ListTagIDsByPlan(ctx context.Context, planID string) ([]string, error) {
	var ids []string
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanTagModel{}).
		Where("plan_id = ?", planID).
		Order("tag_id").
		Pluck("tag_id", &ids).Error; err != nil {
		r.logger.Errorw("failed to list plan tag ids", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to list plan tag ids: %w", err)
	}
	return ids, nil
}

func (r *PlanTagRepositoryImpl) ListByPlan(ctx context.Context, planID string) ([]tag.PlanTag, error) {
	var rows []models.PlanTagModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ?", planID).
		Order("tag_id").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list plan tags", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to list plan tags: %w", err)
	}

	out := make([]tag.PlanTag, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.PlanTagToEntity(row))
	}
	return out, nil
}

func (r *PlanTagRepositoryImpl) DeleteByPlan(ctx context.Context, planID string) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ?", planID).
		Delete(&models.PlanTagModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete plan tags", "error", err, "plan_id", planID)
		return fmt.Errorf("failed to delete plan tags: %w", err)
	}
	return nil
}

func (r *PlanTagRepositoryImpl) CreateBatch(ctx context.Context, rows []tag.PlanTag) error {
	if len(rows) == 0 {
		return nil
	}

	batch := make([]models.PlanTagModel, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, mappers.PlanTagToModel(row))
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(&batch).Error; err != nil {
		r.logger.Errorw("failed to insert plan tags", "error", err, "plan_id", rows[0].PlanID, "count", len(rows))
		return fmt.Errorf("failed to insert plan tags: %w", err)
	}
	return nil
}

func (r *PlanTagRepositoryImpl) CountByTag(ctx context.Context, tagID string) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.PlanTagModel{}).
		Where("tag_id = ?", tagID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count plan tags", "error", err, "tag_id", tagID)
		return 0, fmt.Errorf("failed to count plan tags: %w", err)
	}
	return count, nil
}
