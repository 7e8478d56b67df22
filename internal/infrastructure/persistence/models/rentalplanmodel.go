package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/kimono-rental/kimono/internal/shared/constants"
)

// RentalPlanModel is the persistence shape of a rental plan.
type RentalPlanModel struct {
	ID             string `gorm:"primaryKey;size:32"`
	MerchantID     string `gorm:"not null;size:32;index:idx_rental_plans_merchant"`
	Name           string `gorm:"not null;size:200"`
	Description    string `gorm:"type:text"`
	Price          int64  `gorm:"not null"`
	OriginalPrice  *int64
	DepositAmount  int64  `gorm:"not null"`
	PricingUnit    string `gorm:"not null;size:20"`
	UnitLabel      string `gorm:"size:50"`
	MinQuantity    int    `gorm:"not null"`
	MaxQuantity    int    `gorm:"not null"`
	Duration       int    `gorm:"not null"`
	ImageURL       string `gorm:"size:500"`
	Images         datatypes.JSON
	StoreName      string  `gorm:"size:200"`
	Region         string  `gorm:"size:100;index:idx_rental_plans_region"`
	ThemeID        *string `gorm:"size:32"`
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	Status         string `gorm:"not null;size:20"`
	IsActive       bool   `gorm:"not null;index:idx_rental_plans_active"`
	IsFeatured     bool   `gorm:"not null"`
	CreatedBy      string `gorm:"size:64"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (RentalPlanModel) TableName() string {
	return constants.TableRentalPlans
}
