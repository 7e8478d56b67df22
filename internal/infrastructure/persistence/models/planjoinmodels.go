package models

import (
	"time"

	"github.com/kimono-rental/kimono/internal/shared/constants"
)

// PlanTagModel is keyed by (plan_id, tag_id) so a tag attaches to a plan at
// most once.
type PlanTagModel struct {
	PlanID    string `gorm:"primaryKey;size:32"`
	TagID     string `gorm:"primaryKey;size:32;index:idx_plan_tags_tag"`
	AddedBy   string `gorm:"size:64"`
	CreatedAt time.Time
}

func (PlanTagModel) TableName() string {
	return constants.TablePlanTags
}

// PlanComponentModel stores an included component and its hotspot metadata.
type PlanComponentModel struct {
	PlanID              string `gorm:"primaryKey;size:32"`
	MerchantComponentID string `gorm:"primaryKey;size:32"`
	HotmapX             *float64
	HotmapY             *float64
	HotmapLabelPosition string `gorm:"not null;size:10"`
	HotmapLabelOffsetX  *float64
	HotmapLabelOffsetY  *float64
	HotmapOrder         int `gorm:"not null"`
	CreatedAt           time.Time
}

func (PlanComponentModel) TableName() string {
	return constants.TablePlanComponents
}

// PlanUpgradeModel stores an optional paid upgrade offered on a plan.
type PlanUpgradeModel struct {
	PlanID              string `gorm:"primaryKey;size:32"`
	MerchantComponentID string `gorm:"primaryKey;size:32"`
	PriceOverride       *int64
	IsPopular           bool `gorm:"not null"`
	DisplayOrder        int  `gorm:"not null"`
	CreatedAt           time.Time
}

func (PlanUpgradeModel) TableName() string {
	return constants.TablePlanUpgrades
}
