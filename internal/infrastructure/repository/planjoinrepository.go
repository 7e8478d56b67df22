package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/mappers"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
	"github.com/kimono-rental/kimono/internal/shared/db"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type PlanComponentRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanComponentRepository(db *gorm.DB, logger logger.Interface) plan.ComponentRepository {
	return &PlanComponentRepositoryImpl{db: db, logger: logger}
}

func (r *PlanComponentRepositoryImpl) ListByPlan(ctx context.Context, planID string) ([]plan.PlanComponent, error) {
	var rows []models.PlanComponentModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ?", planID).
		Order("hotmap_order ASC, merchant_component_id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list plan components", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to list plan components: %w", err)
	}

	out := make([]plan.PlanComponent, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.PlanComponentToEntity(row))
	}
	return out, nil
}

func (r *PlanComponentRepositoryImpl) DeleteByPlan(ctx context.Context, planID string) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ?", planID).
		Delete(&models.PlanComponentModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete plan components", "error", err, "plan_id", planID)
		return fmt.Errorf("failed to delete plan components: %w", err)
	}
	return nil
}

func (r *PlanComponentRepositoryImpl) CreateBatch(ctx context.Context, rows []plan.PlanComponent) error {
	if len(rows) == 0 {
		return nil
	}

	batch := make([]models.PlanComponentModel, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, mappers.PlanComponentToModel(row))
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(&batch).Error; err != nil {
		r.logger.Errorw("failed to insert plan components", "error", err, "plan_id", rows[0].PlanID, "count", len(rows))
		return fmt.Errorf("failed to insert plan components: %w", err)
	}
	return nil
}

type PlanUpgradeRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanUpgradeRepository(db *gorm.DB, logger logger.Interface) plan.UpgradeRepository {
	return &PlanUpgradeRepositoryImpl{db: db, logger: logger}
}

func (r *PlanUpgradeRepositoryImpl) ListByPlan(ctx context.Context, planID string) ([]plan.PlanUpgrade, error) {
	var rows []models.PlanUpgradeModel
	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ?", planID).
		Order("display_order ASC, merchant_component_id ASC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list plan upgrades", "error", err, "plan_id", planID)
		return nil, fmt.Errorf("failed to list plan upgrades: %w", err)
	}

	out := make([]plan.PlanUpgrade, 0, len(rows))
	for _, row := range rows {
		out = append(out, mappers.PlanUpgradeToEntity(row))
	}
	return out, nil
}

func (r *PlanUpgradeRepositoryImpl) DeleteByPlan(ctx context.Context, planID string) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("plan_id = ?", planID).
		Delete(&models.PlanUpgradeModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete plan upgrades", "error", err, "plan_id", planID)
		return fmt.Errorf("failed to delete plan upgrades: %w", err)
	}
	return nil
}

func (r *PlanUpgradeRepositoryImpl) CreateBatch(ctx context.Context, rows []plan.PlanUpgrade) error {
	if len(rows) == 0 {
		return nil
	}

	batch := make([]models.PlanUpgradeModel, 0, len(rows))
	for _, row := range rows {
		batch = append(batch, mappers.PlanUpgradeToModel(row))
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(&batch).Error; err != nil {
		r.logger.Errorw("failed to insert plan upgrades", "error", err, "plan_id", rows[0].PlanID, "count", len(rows))
		return fmt.Errorf("failed to insert plan upgrades: %w", err)
	}
	return nil
}
