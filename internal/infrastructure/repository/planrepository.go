package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/mappers"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
	"github.com/kimono-rental/kimono/internal/shared/db"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.PlanMapper
	logger logger.Interface
}

func NewPlanRepository(db *gorm.DB, logger logger.Interface) plan.Repository {
	return &PlanRepositoryImpl{
		db:     db,
		mapper: mappers.NewPlanMapper(),
		logger: logger,
	}
}

func (r *PlanRepositoryImpl) Create(ctx context.Context, p *plan.RentalPlan) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create rental plan", "error", err, "merchant_id", p.MerchantID())
		return fmt.Errorf("failed to create rental plan: %w", err)
	}

	r.logger.Infow("rental plan created", "plan_id", p.ID(), "merchant_id", p.MerchantID())
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id string) (*plan.RentalPlan, error) {
	var model models.RentalPlanModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get rental plan by ID", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to get rental plan: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// UpdateBaseFields writes every base column so cleared values are persisted.
func (r *PlanRepositoryImpl) UpdateBaseFields(ctx context.Context, p *plan.RentalPlan) error {
	model, err := r.mapper.ToModel(p)
	if err != nil {
		return fmt.Errorf("failed to convert plan to model: %w", err)
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.RentalPlanModel{}).
		Where("id = ?", p.ID()).
		Updates(map[string]interface{}{
			"name":            model.Name,
			"description":     model.Description,
			"price":           model.Price,
			"original_price":  model.OriginalPrice,
			"deposit_amount":  model.DepositAmount,
			"pricing_unit":    model.PricingUnit,
			"unit_label":      model.UnitLabel,
			"min_quantity":    model.MinQuantity,
			"max_quantity":    model.MaxQuantity,
			"duration":        model.Duration,
			"image_url":       model.ImageURL,
			"images":          model.Images,
			"store_name":      model.StoreName,
			"region":          model.Region,
			"theme_id":        model.ThemeID,
			"available_from":  model.AvailableFrom,
			"available_until": model.AvailableUntil,
			"status":          model.Status,
			"is_featured":     model.IsFeatured,
			"updated_at":      model.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update rental plan", "error", result.Error, "plan_id", p.ID())
		return fmt.Errorf("failed to update rental plan: %w", result.Error)
	}

	return nil
}

func (r *PlanRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.RentalPlanModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to soft delete rental plan", "error", result.Error, "plan_id", id)
		return fmt.Errorf("failed to soft delete rental plan: %w", result.Error)
	}

	r.logger.Infow("rental plan retired", "plan_id", id)
	return nil
}

func (r *PlanRepositoryImpl) ListByMerchant(ctx context.Context, filter plan.ListFilter) ([]*plan.RentalPlan, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Model(&models.RentalPlanModel{}).
		Where("merchant_id = ?", filter.MerchantID)
	if !filter.IncludeRetired {
		query = query.Scopes(db.ActiveOnly())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count rental plans", "error", err, "merchant_id", filter.MerchantID)
		return nil, 0, fmt.Errorf("failed to count rental plans: %w", err)
	}

	var rows []*models.RentalPlanModel
	if err := query.Order("updated_at DESC").
		Scopes(db.Paginate(filter.Page, filter.PageSize)).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list rental plans", "error", err, "merchant_id", filter.MerchantID)
		return nil, 0, fmt.Errorf("failed to list rental plans: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *PlanRepositoryImpl) ListActiveIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.RentalPlanModel{}).
		Scopes(db.ActiveOnly()).
		Order("id").
		Pluck("id", &ids).Error; err != nil {
		r.logger.Errorw("failed to list active plan ids", "error", err)
		return nil, fmt.Errorf("failed to list active plan ids: %w", err)
	}
	return ids, nil
}
