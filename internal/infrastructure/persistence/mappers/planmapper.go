package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
)

// PlanMapper handles the conversion between domain entities and persistence models
type PlanMapper interface {
	ToEntity(model *models.RentalPlanModel) (*plan.RentalPlan, error)
	ToModel(entity *plan.RentalPlan) (*models.RentalPlanModel, error)
	ToEntities(models []*models.RentalPlanModel) ([]*plan.RentalPlan, error)
}

type planMapper struct{}

func NewPlanMapper() PlanMapper {
	return &planMapper{}
}

func (m *planMapper) ToEntity(model *models.RentalPlanModel) (*plan.RentalPlan, error) {
	if model == nil {
		return nil, nil
	}

	var images []string
	if len(model.Images) > 0 {
		if err := json.Unmarshal(model.Images, &images); err != nil {
			return nil, fmt.Errorf("failed to unmarshal images of plan %s: %w", model.ID, err)
		}
	}

	base := plan.BaseFields{
		Name:           model.Name,
		Description:    model.Description,
		Price:          model.Price,
		OriginalPrice:  model.OriginalPrice,
		DepositAmount:  model.DepositAmount,
		PricingUnit:    plan.PricingUnit(model.PricingUnit),
		UnitLabel:      model.UnitLabel,
		MinQuantity:    model.MinQuantity,
		MaxQuantity:    model.MaxQuantity,
		Duration:       model.Duration,
		ImageURL:       model.ImageURL,
		Images:         images,
		StoreName:      model.StoreName,
		Region:         model.Region,
		ThemeID:        model.ThemeID,
		AvailableFrom:  model.AvailableFrom,
		AvailableUntil: model.AvailableUntil,
		IsFeatured:     model.IsFeatured,
	}

	return plan.ReconstructRentalPlan(
		model.ID,
		model.MerchantID,
		model.CreatedBy,
		base,
		plan.PlanStatus(model.Status),
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *planMapper) ToModel(entity *plan.RentalPlan) (*models.RentalPlanModel, error) {
	if entity == nil {
		return nil, nil
	}

	base := entity.Base()
	images, err := marshalImages(base.Images)
	if err != nil {
		return nil, err
	}

	return &models.RentalPlanModel{
		ID:             entity.ID(),
		MerchantID:     entity.MerchantID(),
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
		Status:         string(entity.Status()),
		IsActive:       entity.IsActive(),
		IsFeatured:     base.IsFeatured,
		CreatedBy:      entity.CreatedBy(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}, nil
}

func (m *planMapper) ToEntities(rows []*models.RentalPlanModel) ([]*plan.RentalPlan, error) {
	entities := make([]*plan.RentalPlan, 0, len(rows))
	for _, row := range rows {
		entity, err := m.ToEntity(row)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

func marshalImages(images []string) (datatypes.JSON, error) {
	if images == nil {
		images = []string{}
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal images: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func PlanComponentToModel(c plan.PlanComponent) models.PlanComponentModel {
	return models.PlanComponentModel{
		PlanID:              c.PlanID,
		MerchantComponentID: c.MerchantComponentID,
		HotmapX:             c.HotmapX,
		HotmapY:             c.HotmapY,
		HotmapLabelPosition: string(c.LabelPosition),
		HotmapLabelOffsetX:  c.LabelOffsetX,
		HotmapLabelOffsetY:  c.LabelOffsetY,
		HotmapOrder:         c.HotmapOrder,
		CreatedAt:           c.CreatedAt,
	}
}

func PlanComponentToEntity(m models.PlanComponentModel) plan.PlanComponent {
	return plan.PlanComponent{
		PlanID:              m.PlanID,
		MerchantComponentID: m.MerchantComponentID,
		HotmapX:             m.HotmapX,
		HotmapY:             m.HotmapY,
		LabelPosition:       plan.LabelPosition(m.HotmapLabelPosition),
		LabelOffsetX:        m.HotmapLabelOffsetX,
		LabelOffsetY:        m.HotmapLabelOffsetY,
		HotmapOrder:         m.HotmapOrder,
		CreatedAt:           m.CreatedAt,
	}
}

func PlanUpgradeToModel(u plan.PlanUpgrade) models.PlanUpgradeModel {
	return models.PlanUpgradeModel{
		PlanID:              u.PlanID,
		MerchantComponentID: u.MerchantComponentID,
		PriceOverride:       u.PriceOverride,
		IsPopular:           u.IsPopular,
		DisplayOrder:        u.DisplayOrder,
		CreatedAt:           u.CreatedAt,
	}
}

func PlanUpgradeToEntity(m models.PlanUpgradeModel) plan.PlanUpgrade {
	return plan.PlanUpgrade{
		PlanID:              m.PlanID,
		MerchantComponentID: m.MerchantComponentID,
		PriceOverride:       m.PriceOverride,
		IsPopular:           m.IsPopular,
		DisplayOrder:        m.DisplayOrder,
		CreatedAt:           m.CreatedAt,
	}
}
