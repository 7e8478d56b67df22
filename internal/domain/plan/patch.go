package plan

import "time"

// BaseFieldsPatch carries the base fields of an update. A nil field is left
// untouched. The Clear flags reset a nullable field to null and take
// precedence over a value for the same field.
type BaseFieldsPatch struct {
	Name           *string
	Description    *string
	Price          *int64
	OriginalPrice  *int64
	DepositAmount  *int64
	PricingUnit    *PricingUnit
	UnitLabel      *string
	MinQuantity    *int
	MaxQuantity    *int
	Duration       *int
	ImageURL       *string
	Images         *[]string
	StoreName      *string
	Region         *string
	ThemeID        *string
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	IsFeatured     *bool
	Status         *PlanStatus

	ClearOriginalPrice  bool
	ClearThemeID        bool
	ClearAvailableFrom  bool
	ClearAvailableUntil bool
}

// IsEmpty reports whether the patch changes no base field.
func (p BaseFieldsPatch) IsEmpty() bool {
	return p == (BaseFieldsPatch{})
}

func (p BaseFieldsPatch) mergeInto(b BaseFields) BaseFields {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.OriginalPrice != nil {
		v := *p.OriginalPrice
		b.OriginalPrice = &v
	}
	if p.DepositAmount != nil {
		b.DepositAmount = *p.DepositAmount
	}
	if p.PricingUnit != nil {
		b.PricingUnit = *p.PricingUnit
	}
	if p.UnitLabel != nil {
		b.UnitLabel = *p.UnitLabel
	}
	if p.MinQuantity != nil {
		b.MinQuantity = *p.MinQuantity
	}
	if p.MaxQuantity != nil {
		b.MaxQuantity = *p.MaxQuantity
	}
	if p.Duration != nil {
		b.Duration = *p.Duration
	}
	if p.ImageURL != nil {
		b.ImageURL = *p.ImageURL
	}
	if p.Images != nil {
		b.Images = append([]string(nil), (*p.Images)...)
	}
	if p.StoreName != nil {
		b.StoreName = *p.StoreName
	}
	if p.Region != nil {
		b.Region = *p.Region
	}
	if p.ThemeID != nil {
		v := *p.ThemeID
		b.ThemeID = &v
	}
	if p.AvailableFrom != nil {
		v := *p.AvailableFrom
		b.AvailableFrom = &v
	}
	if p.AvailableUntil != nil {
		v := *p.AvailableUntil
		b.AvailableUntil = &v
	}
	if p.IsFeatured != nil {
		b.IsFeatured = *p.IsFeatured
	}

	if p.ClearOriginalPrice {
		b.OriginalPrice = nil
	}
	if p.ClearThemeID {
		b.ThemeID = nil
	}
	if p.ClearAvailableFrom {
		b.AvailableFrom = nil
	}
	if p.ClearAvailableUntil {
		b.AvailableUntil = nil
	}
	return b
}
