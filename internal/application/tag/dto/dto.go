package dto

import (
	"time"

	"github.com/kimono-rental/kimono/internal/domain/tag"
)

type CategoryDTO struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type TagDTO struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon,omitempty"`
	Color      string    `json:"color,omitempty"`
	Order      int       `json:"order"`
	IsActive   bool      `json:"isActive"`
	UsageCount int       `json:"usageCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ToCategoryDTO(c *tag.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:        c.ID,
		Code:      c.Code,
		Name:      c.Name,
		Order:     c.Order,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

func ToCategoryDTOs(categories []*tag.Category) []*CategoryDTO {
	out := make([]*CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, ToCategoryDTO(c))
	}
	return out
}

func ToTagDTO(t *tag.Tag) *TagDTO {
	if t == nil {
		return nil
	}
	return &TagDTO{
		ID:         t.ID,
		CategoryID: t.CategoryID,
		Code:       t.Code,
		Name:       t.Name,
		Icon:       t.Icon,
		Color:      t.Color,
		Order:      t.Order,
		IsActive:   t.IsActive,
		UsageCount: t.UsageCount,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}

func ToTagDTOs(tags []*tag.Tag) []*TagDTO {
	out := make([]*TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToTagDTO(t))
	}
	return out
}
