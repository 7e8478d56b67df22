package mappers

import (
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
)

func TagToModel(t *tag.Tag) *models.TagModel {
	return &models.TagModel{
		ID:         t.ID,
		CategoryID: t.CategoryID,
		Code:       t.Code,
		Name:       t.Name,
		Icon:       t.Icon,
		Color:      t.Color,
		SortOrder:  t.Order,
		IsActive:   t.IsActive,
		UsageCount: t.UsageCount,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func TagToEntity(m *models.TagModel) *tag.Tag {
	return &tag.Tag{
		ID:         m.ID,
		CategoryID: m.CategoryID,
		Code:       m.Code,
		Name:       m.Name,
		Icon:       m.Icon,
		Color:      m.Color,
		Order:      m.SortOrder,
		IsActive:   m.IsActive,
		UsageCount: m.UsageCount,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func TagsToEntities(rows []models.TagModel) []*tag.Tag {
	out := make([]*tag.Tag, 0, len(rows))
	for i := range rows {
		out = append(out, TagToEntity(&rows[i]))
	}
	return out
}

func CategoryToModel(c *tag.Category) *models.TagCategoryModel {
	return &models.TagCategoryModel{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		SortOrder: c.Order,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

func CategoryToEntity(m *models.TagCategoryModel) *tag.Category {
	return &tag.Category{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Order:     m.SortOrder,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
	}
}

func PlanTagToModel(pt tag.PlanTag) models.PlanTagModel {
	return models.PlanTagModel{
		PlanID:    pt.PlanID,
		TagID:     pt.TagID,
		AddedBy:   pt.AddedBy,
		CreatedAt: pt.CreatedAt,
	}
}

func PlanTagToEntity(m models.PlanTagModel) tag.PlanTag {
	return tag.PlanTag{
		PlanID:    m.PlanID,
		TagID:     m.TagID,
		AddedBy:   m.AddedBy,
		CreatedAt: m.CreatedAt,
	}
}
