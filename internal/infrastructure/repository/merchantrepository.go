package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/mappers"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
	"github.com/kimono-rental/kimono/internal/shared/db"
	apperrors "github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type MerchantRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewMerchantRepository(db *gorm.DB, logger logger.Interface) merchant.Repository {
	return &MerchantRepositoryImpl{db: db, logger: logger}
}

func (r *MerchantRepositoryImpl) Create(ctx context.Context, m *merchant.Merchant) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.MerchantToModel(m)).Error; err != nil {
		r.logger.Errorw("failed to create merchant", "error", err, "owner_user_id", m.OwnerUserID)
		return fmt.Errorf("failed to create merchant: %w", apperrors.MapDBError(err, "merchant"))
	}
	return nil
}

func (r *MerchantRepositoryImpl) GetByID(ctx context.Context, id string) (*merchant.Merchant, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *MerchantRepositoryImpl) GetByOwnerUserID(ctx context.Context, userID string) (*merchant.Merchant, error) {
	return r.first(ctx, "owner_user_id = ?", userID)
}

func (r *MerchantRepositoryImpl) first(ctx context.Context, cond string, arg string) (*merchant.Merchant, error) {
	var model models.MerchantModel
	if err := db.GetTxFromContext(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get merchant", "error", err, "lookup", arg)
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}
	return mappers.MerchantToEntity(&model), nil
}

func (r *MerchantRepositoryImpl) UpdateStatus(ctx context.Context, id string, status merchant.Status) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.MerchantModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		}).Error; err != nil {
		r.logger.Errorw("failed to update merchant status", "error", err, "merchant_id", id)
		return fmt.Errorf("failed to update merchant status: %w", err)
	}
	return nil
}

type MerchantComponentRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewMerchantComponentRepository(db *gorm.DB, logger logger.Interface) merchant.ComponentRepository {
	return &MerchantComponentRepositoryImpl{db: db, logger: logger}
}

func (r *MerchantComponentRepositoryImpl) Create(ctx context.Context, c *merchant.Component) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.ComponentToModel(c)).Error; err != nil {
		r.logger.Errorw("failed to create merchant component", "error", err, "merchant_id", c.MerchantID)
		return fmt.Errorf("failed to create merchant component: %w", apperrors.MapDBError(err, "merchant component"))
	}
	return nil
}

func (r *MerchantComponentRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]*merchant.Component, error) {
	if len(ids) == 0 {
		return []*merchant.Component{}, nil
	}

	var rows []models.MerchantComponentModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get merchant components", "error", err, "component_ids", ids)
		return nil, fmt.Errorf("failed to get merchant components: %w", err)
	}

	out := make([]*merchant.Component, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.ComponentToEntity(&rows[i]))
	}
	return out, nil
}

type ComponentTemplateRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewComponentTemplateRepository(db *gorm.DB, logger logger.Interface) merchant.TemplateRepository {
	return &ComponentTemplateRepositoryImpl{db: db, logger: logger}
}

func (r *ComponentTemplateRepositoryImpl) Create(ctx context.Context, t *merchant.ComponentTemplate) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.TemplateToModel(t)).Error; err != nil {
		r.logger.Errorw("failed to create component template", "error", err, "code", t.Code)
		return fmt.Errorf("failed to create component template: %w", apperrors.MapDBError(err, "component template"))
	}
	return nil
}

func (r *ComponentTemplateRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]*merchant.ComponentTemplate, error) {
	if len(ids) == 0 {
		return []*merchant.ComponentTemplate{}, nil
	}

	var rows []models.ComponentTemplateModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get component templates", "error", err, "template_ids", ids)
		return nil, fmt.Errorf("failed to get component templates: %w", err)
	}

	out := make([]*merchant.ComponentTemplate, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.TemplateToEntity(&rows[i]))
	}
	return out, nil
}
