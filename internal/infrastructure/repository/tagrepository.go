package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/mappers"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
	"github.com/kimono-rental/kimono/internal/shared/db"
	apperrors "github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type TagRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTagRepository(db *gorm.DB, logger logger.Interface) tag.Repository {
	return &TagRepositoryImpl{db: db, logger: logger}
}

func (r *TagRepositoryImpl) Create(ctx context.Context, t *tag.Tag) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.TagToModel(t)).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("tag code already exists in this category", t.Code)
		}
		r.logger.Errorw("failed to create tag", "error", err, "category_id", t.CategoryID, "code", t.Code)
		return fmt.Errorf("failed to create tag: %w", apperrors.MapDBError(err, "tag category"))
	}
	return nil
}

func (r *TagRepositoryImpl) GetByID(ctx context.Context, id string) (*tag.Tag, error) {
	var model models.TagModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get tag", "error", err, "tag_id", id)
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return mappers.TagToEntity(&model), nil
}

func (r *TagRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]*tag.Tag, error) {
	if len(ids) == 0 {
		return []*tag.Tag{}, nil
	}

	var rows []models.TagModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get tags by IDs", "error", err, "tag_ids", ids)
		return nil, fmt.Errorf("failed to get tags by IDs: %w", err)
	}
	return mappers.TagsToEntities(rows), nil
}

func (r *TagRepositoryImpl) GetByCodes(ctx context.Context, codes []string) ([]*tag.Tag, error) {
	if len(codes) == 0 {
		return []*tag.Tag{}, nil
	}

	var rows []models.TagModel
	if err := db.GetTxFromContext(ctx, r.db).Where("code IN ?", codes).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get tags by codes", "error", err, "codes", codes)
		return nil, fmt.Errorf("failed to get tags by codes: %w", err)
	}
	return mappers.TagsToEntities(rows), nil
}

// Update writes presentation fields only; usage_count belongs to the ledger.
func (r *TagRepositoryImpl) Update(ctx context.Context, t *tag.Tag) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TagModel{}).
		Where("id = ?", t.ID).
		Updates(map[string]interface{}{
			"name":       t.Name,
			"icon":       t.Icon,
			"color":      t.Color,
			"sort_order": t.Order,
			"is_active":  t.IsActive,
			"updated_at": t.UpdatedAt,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update tag", "error", result.Error, "tag_id", t.ID)
		return fmt.Errorf("failed to update tag: %w", result.Error)
	}
	return nil
}

func (r *TagRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id = ?", id).
		Delete(&models.TagModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete tag", "error", err, "tag_id", id)
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

func (r *TagRepositoryImpl) List(ctx context.Context, filter tag.ListFilter) ([]*tag.Tag, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TagModel{})
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Scopes(db.ActiveOnly())
	}

	var rows []models.TagModel
	if err := query.Order("category_id, sort_order, code").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list tags", "error", err, "category_id", filter.CategoryID)
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return mappers.TagsToEntities(rows), nil
}

// ApplyUsageDelta issues UPDATE tags SET usage_count = usage_count + ? WHERE
// id IN (...). The database serializes concurrent writers on each row, so
// deltas from parallel reconciliations compose.
func (r *TagRepositoryImpl) ApplyUsageDelta(ctx context.Context, ids []string, delta int) error {
	if len(ids) == 0 || delta == 0 {
		return nil
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TagModel{}).
		Where("id IN ?", ids).
		UpdateColumns(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + ?", delta),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to apply tag usage delta", "error", result.Error, "tag_ids", ids, "delta", delta)
		return fmt.Errorf("failed to apply tag usage delta: %w", result.Error)
	}
	if result.RowsAffected != int64(len(ids)) {
		return apperrors.NewNotFoundError("tag not found while updating usage count")
	}
	return nil
}

type TagCategoryRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewTagCategoryRepository(db *gorm.DB, logger logger.Interface) tag.CategoryRepository {
	return &TagCategoryRepositoryImpl{db: db, logger: logger}
}

func (r *TagCategoryRepositoryImpl) Create(ctx context.Context, c *tag.Category) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.CategoryToModel(c)).Error; err != nil {
		r.logger.Errorw("failed to create tag category", "error", err, "code", c.Code)
		return fmt.Errorf("failed to create tag category: %w", apperrors.MapDBError(err, "tag category"))
	}
	return nil
}

func (r *TagCategoryRepositoryImpl) GetByID(ctx context.Context, id string) (*tag.Category, error) {
	var model models.TagCategoryModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get tag category", "error", err, "category_id", id)
		return nil, fmt.Errorf("failed to get tag category: %w", err)
	}
	return mappers.CategoryToEntity(&model), nil
}

func (r *TagCategoryRepositoryImpl) List(ctx context.Context) ([]*tag.Category, error) {
	var rows []models.TagCategoryModel
	if err := db.GetTxFromContext(ctx, r.db).Order("sort_order, code").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list tag categories", "error", err)
		return nil, fmt.Errorf("failed to list tag categories: %w", err)
	}

	out := make([]*tag.Category, 0, len(rows))
	for i := range rows {
		out = append(out, mappers.CategoryToEntity(&rows[i]))
	}
	return out, nil
}

func (r *TagCategoryRepositoryImpl) Delete(ctx context.Context, id string) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("id = ?", id).
		Delete(&models.TagCategoryModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete tag category", "error", err, "category_id", id)
		return fmt.Errorf("failed to delete tag category: %w", apperrors.MapDBError(err, "tag category"))
	}
	return nil
}

func (r *TagCategoryRepositoryImpl) CountTags(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TagModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		r.logger.Errorw("failed to count tags in category", "error", err, "category_id", categoryID)
		return 0, fmt.Errorf("failed to count tags in category: %w", err)
	}
	return count, nil
}
