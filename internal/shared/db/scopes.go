package db

import (
	"gorm.io/gorm"
)

// ActiveOnly filters to rows whose is_active flag is set. Retired plans stay
// in the table for booking history.
//
//	db.Model(&models.RentalPlanModel{}).Scopes(db.ActiveOnly()).Find(&plans)
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// Paginate applies a 1-based page window.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
