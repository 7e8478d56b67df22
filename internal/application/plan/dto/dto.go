package dto

import "time"

type PlanDTO struct {
	ID              string             `json:"id"`
	MerchantID      string             `json:"merchantId"`
	Name            string             `json:"name"`
	Description     string             `json:"description"`
	DescriptionHTML string             `json:"descriptionHtml,omitempty"`
	Price           int64              `json:"price"`
	OriginalPrice   *int64             `json:"originalPrice,omitempty"`
	DepositAmount   int64              `json:"depositAmount"`
	PricingUnit     string             `json:"pricingUnit"`
	UnitLabel       string             `json:"unitLabel"`
	MinQuantity     int                `json:"minQuantity"`
	MaxQuantity     int                `json:"maxQuantity"`
	Duration        int                `json:"duration"`
	ImageURL        string             `json:"imageUrl"`
	Images          []string           `json:"images"`
	StoreName       string             `json:"storeName"`
	Region          string             `json:"region"`
	ThemeID         *string            `json:"themeId,omitempty"`
	AvailableFrom   *time.Time         `json:"availableFrom,omitempty"`
	AvailableUntil  *time.Time         `json:"availableUntil,omitempty"`
	Status          string             `json:"status"`
	IsActive        bool               `json:"isActive"`
	IsFeatured      bool               `json:"isFeatured"`
	CreatedBy       string             `json:"createdBy"`
	Tags            []PlanTagDTO       `json:"tags"`
	Components      []PlanComponentDTO `json:"planComponents"`
	Upgrades        []PlanUpgradeDTO   `json:"planUpgrades"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// PlanSummaryDTO is the list form of a plan, without join rows.
type PlanSummaryDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	PricingUnit string    `json:"pricingUnit"`
	ImageURL    string    `json:"imageUrl"`
	Status      string    `json:"status"`
	IsActive    bool      `json:"isActive"`
	IsFeatured  bool      `json:"isFeatured"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type PlanTagDTO struct {
	ID         string    `json:"id"`
	CategoryID string    `json:"categoryId"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon,omitempty"`
	Color      string    `json:"color,omitempty"`
	AddedBy    string    `json:"addedBy"`
	AddedAt    time.Time `json:"addedAt"`
}

type PlanComponentDTO struct {
	MerchantComponentID string   `json:"merchantComponentId"`
	Name                string   `json:"name,omitempty"`
	HotmapX             *float64 `json:"hotmapX,omitempty"`
	HotmapY             *float64 `json:"hotmapY,omitempty"`
	HotmapLabelPosition string   `json:"hotmapLabelPosition"`
	HotmapLabelOffsetX  *float64 `json:"hotmapLabelOffsetX,omitempty"`
	HotmapLabelOffsetY  *float64 `json:"hotmapLabelOffsetY,omitempty"`
	HotmapOrder         int      `json:"hotmapOrder"`
}

// PlanUpgradeDTO carries both the stored override and the price the customer
// pays after falling back to the merchant and template prices.
type PlanUpgradeDTO struct {
	MerchantComponentID string `json:"merchantComponentId"`
	Name                string `json:"name,omitempty"`
	PriceOverride       *int64 `json:"priceOverride,omitempty"`
	EffectivePrice      int64  `json:"effectivePrice"`
	IsPopular           bool   `json:"isPopular"`
	DisplayOrder        int    `json:"displayOrder"`
}
