package models

import (
	"time"

	"github.com/kimono-rental/kimono/internal/shared/constants"
)

type TagCategoryModel struct {
	ID        string `gorm:"primaryKey;size:32"`
	Code      string `gorm:"not null;size:64;uniqueIndex:uk_tag_categories_code"`
	Name      string `gorm:"not null;size:100"`
	SortOrder int    `gorm:"column:sort_order;not null"`
	IsActive  bool   `gorm:"not null"`
	CreatedAt time.Time
}

func (TagCategoryModel) TableName() string {
	return constants.TableTagCategories
}

// TagModel carries the usage_count ledger column. It is only ever changed
// with relative UPDATE statements.
type TagModel struct {
	ID         string `gorm:"primaryKey;size:32"`
	CategoryID string `gorm:"not null;size:32;uniqueIndex:uk_tags_category_code,priority:1"`
	Code       string `gorm:"not null;size:64;uniqueIndex:uk_tags_category_code,priority:2"`
	Name       string `gorm:"not null;size:100"`
	Icon       string `gorm:"size:100"`
	Color      string `gorm:"size:20"`
	SortOrder  int    `gorm:"column:sort_order;not null"`
	IsActive   bool   `gorm:"not null"`
	UsageCount int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (TagModel) TableName() string {
	return constants.TableTags
}
