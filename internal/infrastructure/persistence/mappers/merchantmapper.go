package mappers

import (
	"github.com/kimono-rental/kimono/internal/domain/merchant"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
)

func MerchantToModel(m *merchant.Merchant) *models.MerchantModel {
	return &models.MerchantModel{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

func MerchantToEntity(m *models.MerchantModel) *merchant.Merchant {
	return &merchant.Merchant{
		ID:          m.ID,
		OwnerUserID: m.OwnerUserID,
		Name:        m.Name,
		Status:      merchant.Status(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

func ComponentToModel(c *merchant.Component) *models.MerchantComponentModel {
	return &models.MerchantComponentModel{
		ID:         c.ID,
		MerchantID: c.MerchantID,
		TemplateID: c.TemplateID,
		CustomName: c.CustomName,
		Price:      c.Price,
		IsEnabled:  c.IsEnabled,
	}
}

func ComponentToEntity(m *models.MerchantComponentModel) *merchant.Component {
	return &merchant.Component{
		ID:         m.ID,
		MerchantID: m.MerchantID,
		TemplateID: m.TemplateID,
		CustomName: m.CustomName,
		Price:      m.Price,
		IsEnabled:  m.IsEnabled,
	}
}

func TemplateToModel(t *merchant.ComponentTemplate) *models.ComponentTemplateModel {
	return &models.ComponentTemplateModel{
		ID:        t.ID,
		Code:      t.Code,
		Name:      t.Name,
		Type:      string(t.Type),
		BasePrice: t.BasePrice,
	}
}

func TemplateToEntity(m *models.ComponentTemplateModel) *merchant.ComponentTemplate {
	return &merchant.ComponentTemplate{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Type:      merchant.ComponentType(m.Type),
		BasePrice: m.BasePrice,
	}
}
