package models

import (
	"time"

	"github.com/kimono-rental/kimono/internal/shared/constants"
)

type MerchantModel struct {
	ID          string `gorm:"primaryKey;size:32"`
	OwnerUserID string `gorm:"not null;size:64;uniqueIndex:uk_merchants_owner"`
	Name        string `gorm:"not null;size:200"`
	Status      string `gorm:"not null;size:20"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (MerchantModel) TableName() string {
	return constants.TableMerchants
}

type ComponentTemplateModel struct {
	ID        string `gorm:"primaryKey;size:32"`
	Code      string `gorm:"not null;size:64;uniqueIndex:uk_component_templates_code"`
	Name      string `gorm:"not null;size:200"`
	Type      string `gorm:"not null;size:20"`
	BasePrice int64  `gorm:"not null"`
	CreatedAt time.Time
}

func (ComponentTemplateModel) TableName() string {
	return constants.TableComponentTemplates
}

type MerchantComponentModel struct {
	ID         string `gorm:"primaryKey;size:32"`
	MerchantID string `gorm:"not null;size:32;index:idx_merchant_components_merchant"`
	TemplateID string `gorm:"not null;size:32"`
	CustomName string `gorm:"size:200"`
	Price      *int64
	IsEnabled  bool `gorm:"not null"`
	CreatedAt  time.Time
}

func (MerchantComponentModel) TableName() string {
	return constants.TableMerchantComponents
}
