package dto

import (
	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/domain/tag"
)

// ToPlanDTO converts base fields only; join rows are filled in by the caller.
func ToPlanDTO(p *plan.RentalPlan) *PlanDTO {
	if p == nil {
		return nil
	}
	base := p.Base()
	images := base.Images
	if images == nil {
		images = []string{}
	}
	return &PlanDTO{
		ID:             p.ID(),
		MerchantID:     p.MerchantID(),
		Name:           base.Name,
		Description:    base.Description,
		Price:          base.Price,
		OriginalPrice:  base.OriginalPrice,
		DepositAmount:  base.DepositAmount,
		PricingUnit:    string(base.PricingUnit),
		UnitLabel:      base.UnitLabel,
		MinQuantity:    base.MinQuantity,
		MaxQuantity:    base.MaxQuantity,
		Duration:       base.Duration,
		ImageURL:       base.ImageURL,
		Images:         images,
		StoreName:      base.StoreName,
		Region:         base.Region,
		ThemeID:        base.ThemeID,
		AvailableFrom:  base.AvailableFrom,
		AvailableUntil: base.AvailableUntil,
		Status:         string(p.Status()),
		IsActive:       p.IsActive(),
		IsFeatured:     base.IsFeatured,
		CreatedBy:      p.CreatedBy(),
		Tags:           []PlanTagDTO{},
		Components:     []PlanComponentDTO{},
		Upgrades:       []PlanUpgradeDTO{},
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func ToPlanSummaryDTOs(plans []*plan.RentalPlan) []*PlanSummaryDTO {
	out := make([]*PlanSummaryDTO, 0, len(plans))
	for _, p := range plans {
		base := p.Base()
		out = append(out, &PlanSummaryDTO{
			ID:          p.ID(),
			Name:        base.Name,
			Price:       base.Price,
			PricingUnit: string(base.PricingUnit),
			ImageURL:    base.ImageURL,
			Status:      string(p.Status()),
			IsActive:    p.IsActive(),
			IsFeatured:  base.IsFeatured,
			UpdatedAt:   p.UpdatedAt(),
		})
	}
	return out
}

// ToPlanTagDTOs keeps the association order; rows whose tag is missing from
// tags are skipped.
func ToPlanTagDTOs(rows []tag.PlanTag, tags map[string]*tag.Tag) []PlanTagDTO {
	out := make([]PlanTagDTO, 0, len(rows))
	for _, row := range rows {
		t, ok := tags[row.TagID]
		if !ok {
			continue
		}
		out = append(out, PlanTagDTO{
			ID:         t.ID,
			CategoryID: t.CategoryID,
			Code:       t.Code,
			Name:       t.Name,
			Icon:       t.Icon,
			Color:      t.Color,
			AddedBy:    row.AddedBy,
			AddedAt:    row.CreatedAt,
		})
	}
	return out
}

func ToPlanComponentDTOs(rows []plan.PlanComponent, components map[string]*merchant.Component) []PlanComponentDTO {
	out := make([]PlanComponentDTO, 0, len(rows))
	for _, row := range rows {
		d := PlanComponentDTO{
			MerchantComponentID: row.MerchantComponentID,
			HotmapX:             row.HotmapX,
			HotmapY:             row.HotmapY,
			HotmapLabelPosition: string(row.LabelPosition),
			HotmapLabelOffsetX:  row.LabelOffsetX,
			HotmapLabelOffsetY:  row.LabelOffsetY,
			HotmapOrder:         row.HotmapOrder,
		}
		if c, ok := components[row.MerchantComponentID]; ok {
			d.Name = c.CustomName
		}
		out = append(out, d)
	}
	return out
}

// ToPlanUpgradeDTOs resolves each upgrade's effective price through
// merchant.EffectivePrice.
func ToPlanUpgradeDTOs(
	rows []plan.PlanUpgrade,
	components map[string]*merchant.Component,
	templates map[string]*merchant.ComponentTemplate,
) []PlanUpgradeDTO {
	out := make([]PlanUpgradeDTO, 0, len(rows))
	for _, row := range rows {
		d := PlanUpgradeDTO{
			MerchantComponentID: row.MerchantComponentID,
			PriceOverride:       row.PriceOverride,
			IsPopular:           row.IsPopular,
			DisplayOrder:        row.DisplayOrder,
		}

		var merchantPrice *int64
		var basePrice int64
		if c, ok := components[row.MerchantComponentID]; ok {
			d.Name = c.CustomName
			merchantPrice = c.Price
			if t, ok := templates[c.TemplateID]; ok {
				basePrice = t.BasePrice
				if d.Name == "" {
					d.Name = t.Name
				}
			}
		}
		d.EffectivePrice = merchant.EffectivePrice(row.PriceOverride, merchantPrice, basePrice)
		out = append(out, d)
	}
	return out
}
