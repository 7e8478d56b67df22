package handlers

import (
	"encoding/json"
	"time"

	"github.com/kimono-rental/kimono/internal/application/plan/services"
	"github.com/kimono-rental/kimono/internal/application/plan/usecases"
	"github.com/kimono-rental/kimono/internal/domain/plan"
)

// ComponentPlacementRequest is the detailed form of an included component.
type ComponentPlacementRequest struct {
	MerchantComponentID string   `json:"merchantComponentId" binding:"required"`
	HotmapX             *float64 `json:"hotmapX" binding:"omitempty,gte=0,lte=1"`
	HotmapY             *float64 `json:"hotmapY" binding:"omitempty,gte=0,lte=1"`
	HotmapLabelPosition *string  `json:"hotmapLabelPosition" binding:"omitempty,oneof=left right top bottom"`
	HotmapLabelOffsetX  *float64 `json:"hotmapLabelOffsetX"`
	HotmapLabelOffsetY  *float64 `json:"hotmapLabelOffsetY"`
	HotmapOrder         *int     `json:"hotmapOrder" binding:"omitempty,gte=0"`
}

type UpgradeRequest struct {
	MerchantComponentID string `json:"merchantComponentId" binding:"required"`
	PriceOverride       *int64 `json:"priceOverride" binding:"omitempty,gte=0"`
	IsPopular           *bool  `json:"isPopular"`
	DisplayOrder        *int   `json:"displayOrder" binding:"omitempty,gte=0"`
}

// planAssociations are the optional association lists shared by create and
// update. An absent list is nil; an explicit [] is a non-nil empty slice.
type planAssociations struct {
	TagIDs               *[]string
	PlanComponents       *[]ComponentPlacementRequest
	MerchantComponentIDs *[]string
	PlanUpgrades         *[]UpgradeRequest
}

// UpdatePlanRequest is the reconciliation payload. Every field is optional.
// An explicit null on originalPrice, themeId, availableFrom or availableUntil
// clears the stored value.
type UpdatePlanRequest struct {
	Name           *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string    `json:"description"`
	Price          *int64     `json:"price" binding:"omitempty,gte=0"`
	OriginalPrice  *int64     `json:"originalPrice" binding:"omitempty,gte=0"`
	DepositAmount  *int64     `json:"depositAmount" binding:"omitempty,gte=0"`
	PricingUnit    *string    `json:"pricingUnit" binding:"omitempty,oneof=PER_PERSON PER_GROUP PER_SET"`
	UnitLabel      *string    `json:"unitLabel" binding:"omitempty,max=50"`
	MinQuantity    *int       `json:"minQuantity" binding:"omitempty,gte=1"`
	MaxQuantity    *int       `json:"maxQuantity" binding:"omitempty,gte=1"`
	Duration       *int       `json:"duration" binding:"omitempty,gte=1"`
	ImageURL       *string    `json:"imageUrl" binding:"omitempty,max=500"`
	Images         *[]string  `json:"images" binding:"omitempty,max=20"`
	StoreName      *string    `json:"storeName" binding:"omitempty,max=200"`
	Region         *string    `json:"region" binding:"omitempty,max=100"`
	ThemeID        *string    `json:"themeId"`
	AvailableFrom  *time.Time `json:"availableFrom"`
	AvailableUntil *time.Time `json:"availableUntil"`
	IsFeatured     *bool      `json:"isFeatured"`
	Status         *string    `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`

	TagIDs               *[]string                    `json:"tagIds" binding:"omitempty,max=50"`
	PlanComponents       *[]ComponentPlacementRequest `json:"planComponents" binding:"omitempty,dive"`
	MerchantComponentIDs *[]string                    `json:"merchantComponentIds" binding:"omitempty,max=100"`
	PlanUpgrades         *[]UpgradeRequest            `json:"planUpgrades" binding:"omitempty,dive"`

	nulls map[string]bool
}

// markExplicitNulls records which top-level keys of body are JSON null.
func (r *UpdatePlanRequest) markExplicitNulls(body []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return err
	}
	r.nulls = make(map[string]bool)
	for key, v := range raw {
		if v == nil {
			r.nulls[key] = true
		}
	}
	return nil
}

type CreatePlanRequest struct {
	Name           string     `json:"name" binding:"required,max=200"`
	Description    string     `json:"description"`
	Price          int64      `json:"price" binding:"gte=0"`
	OriginalPrice  *int64     `json:"originalPrice" binding:"omitempty,gte=0"`
	DepositAmount  int64      `json:"depositAmount" binding:"gte=0"`
	PricingUnit    string     `json:"pricingUnit" binding:"omitempty,oneof=PER_PERSON PER_GROUP PER_SET"`
	UnitLabel      string     `json:"unitLabel" binding:"max=50"`
	MinQuantity    int        `json:"minQuantity" binding:"gte=0"`
	MaxQuantity    int        `json:"maxQuantity" binding:"gte=0"`
	Duration       int        `json:"duration" binding:"required,gte=1"`
	ImageURL       string     `json:"imageUrl" binding:"max=500"`
	Images         []string   `json:"images" binding:"max=20"`
	StoreName      string     `json:"storeName" binding:"max=200"`
	Region         string     `json:"region" binding:"max=100"`
	ThemeID        *string    `json:"themeId"`
	AvailableFrom  *time.Time `json:"availableFrom"`
	AvailableUntil *time.Time `json:"availableUntil"`
	IsFeatured     bool       `json:"isFeatured"`

	TagIDs               *[]string                    `json:"tagIds" binding:"omitempty,max=50"`
	PlanComponents       *[]ComponentPlacementRequest `json:"planComponents" binding:"omitempty,dive"`
	MerchantComponentIDs *[]string                    `json:"merchantComponentIds" binding:"omitempty,max=100"`
	PlanUpgrades         *[]UpgradeRequest            `json:"planUpgrades" binding:"omitempty,dive"`
}

func (r *UpdatePlanRequest) toPatch() plan.BaseFieldsPatch {
	patch := plan.BaseFieldsPatch{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		DepositAmount:  r.DepositAmount,
		UnitLabel:      r.UnitLabel,
		MinQuantity:    r.MinQuantity,
		MaxQuantity:    r.MaxQuantity,
		Duration:       r.Duration,
		ImageURL:       r.ImageURL,
		Images:         r.Images,
		StoreName:      r.StoreName,
		Region:         r.Region,
		ThemeID:        r.ThemeID,
		AvailableFrom:  r.AvailableFrom,
		AvailableUntil: r.AvailableUntil,
		IsFeatured:     r.IsFeatured,

		ClearOriginalPrice:  r.nulls["originalPrice"],
		ClearThemeID:        r.nulls["themeId"],
		ClearAvailableFrom:  r.nulls["availableFrom"],
		ClearAvailableUntil: r.nulls["availableUntil"],
	}
	if r.PricingUnit != nil {
		unit := plan.PricingUnit(*r.PricingUnit)
		patch.PricingUnit = &unit
	}
	if r.Status != nil {
		status := plan.PlanStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

func (r *CreatePlanRequest) toBase() plan.BaseFields {
	return plan.BaseFields{
		Name:           r.Name,
		Description:    r.Description,
		Price:          r.Price,
		OriginalPrice:  r.OriginalPrice,
		DepositAmount:  r.DepositAmount,
		PricingUnit:    plan.PricingUnit(r.PricingUnit),
		UnitLabel:      r.UnitLabel,
		MinQuantity:    r.MinQuantity,
		MaxQuantity:    r.MaxQuantity,
		Duration:       r.Duration,
		ImageURL:       r.ImageURL,
		Images:         r.Images,
		StoreName:      r.StoreName,
		Region:         r.Region,
		ThemeID:        r.ThemeID,
		AvailableFrom:  r.AvailableFrom,
		AvailableUntil: r.AvailableUntil,
		IsFeatured:     r.IsFeatured,
	}
}

// componentInput returns nil when neither component form was sent. When both
// are sent the synchronizer prefers the detailed form.
func (a *planAssociations) componentInput() *services.ComponentInput {
	if a.PlanComponents == nil && a.MerchantComponentIDs == nil {
		return nil
	}

	input := &services.ComponentInput{}
	if a.PlanComponents != nil {
		input.Placements = make([]plan.ComponentPlacement, 0, len(*a.PlanComponents))
		for _, pc := range *a.PlanComponents {
			placement := plan.ComponentPlacement{
				MerchantComponentID: pc.MerchantComponentID,
				HotmapX:             pc.HotmapX,
				HotmapY:             pc.HotmapY,
				LabelOffsetX:        pc.HotmapLabelOffsetX,
				LabelOffsetY:        pc.HotmapLabelOffsetY,
				HotmapOrder:         pc.HotmapOrder,
			}
			if pc.HotmapLabelPosition != nil {
				pos := plan.LabelPosition(*pc.HotmapLabelPosition)
				placement.LabelPosition = &pos
			}
			input.Placements = append(input.Placements, placement)
		}
	}
	if a.MerchantComponentIDs != nil {
		input.IDs = append([]string{}, (*a.MerchantComponentIDs)...)
	}
	return input
}

func (a *planAssociations) upgradeInputs() *[]plan.UpgradeInput {
	if a.PlanUpgrades == nil {
		return nil
	}
	inputs := make([]plan.UpgradeInput, 0, len(*a.PlanUpgrades))
	for _, u := range *a.PlanUpgrades {
		inputs = append(inputs, plan.UpgradeInput{
			MerchantComponentID: u.MerchantComponentID,
			PriceOverride:       u.PriceOverride,
			IsPopular:           u.IsPopular,
			DisplayOrder:        u.DisplayOrder,
		})
	}
	return &inputs
}

func (r *UpdatePlanRequest) toCommand(planID, merchantID, actorID string) usecases.UpdatePlanCommand {
	assoc := planAssociations{
		TagIDs:               r.TagIDs,
		PlanComponents:       r.PlanComponents,
		MerchantComponentIDs: r.MerchantComponentIDs,
		PlanUpgrades:         r.PlanUpgrades,
	}
	return usecases.UpdatePlanCommand{
		PlanID:     planID,
		MerchantID: merchantID,
		ActorID:    actorID,
		Base:       r.toPatch(),
		TagIDs:     r.TagIDs,
		Components: assoc.componentInput(),
		Upgrades:   assoc.upgradeInputs(),
	}
}

func (r *CreatePlanRequest) toCommand(merchantID, actorID string) usecases.CreatePlanCommand {
	assoc := planAssociations{
		TagIDs:               r.TagIDs,
		PlanComponents:       r.PlanComponents,
		MerchantComponentIDs: r.MerchantComponentIDs,
		PlanUpgrades:         r.PlanUpgrades,
	}
	cmd := usecases.CreatePlanCommand{
		MerchantID: merchantID,
		ActorID:    actorID,
		Base:       r.toBase(),
		Components: assoc.componentInput(),
	}
	if r.TagIDs != nil {
		cmd.TagIDs = *r.TagIDs
	}
	if upgrades := assoc.upgradeInputs(); upgrades != nil {
		cmd.Upgrades = *upgrades
	}
	return cmd
}
