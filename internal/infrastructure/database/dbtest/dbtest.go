// Package dbtest opens throwaway SQLite databases with the full schema and
// inserts fixture rows for repository and use case tests.
package dbtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
)

// Open returns an in-memory database. A single connection keeps every
// statement on the same memory database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(models.All()...))
	return gdb
}

func Merchant(t testing.TB, gdb *gorm.DB, id, ownerUserID, status string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, gdb.Create(&models.MerchantModel{
		ID:          id,
		OwnerUserID: ownerUserID,
		Name:        "Shop " + id,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)
}

func Template(t testing.TB, gdb *gorm.DB, id string, basePrice int64) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.ComponentTemplateModel{
		ID:        id,
		Code:      id,
		Name:      "Template " + id,
		Type:      "ADDON",
		BasePrice: basePrice,
		CreatedAt: time.Now(),
	}).Error)
}

// Component inserts a merchant component; price may be nil to inherit the
// template's base price.
func Component(t testing.TB, gdb *gorm.DB, id, merchantID, templateID string, price *int64) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.MerchantComponentModel{
		ID:         id,
		MerchantID: merchantID,
		TemplateID: templateID,
		CustomName: "Component " + id,
		Price:      price,
		IsEnabled:  true,
		CreatedAt:  time.Now(),
	}).Error)
}

func Category(t testing.TB, gdb *gorm.DB, id, code string) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.TagCategoryModel{
		ID:        id,
		Code:      code,
		Name:      code,
		IsActive:  true,
		CreatedAt: time.Now(),
	}).Error)
}

func Tag(t testing.TB, gdb *gorm.DB, id, categoryID, code string, usageCount int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, gdb.Create(&models.TagModel{
		ID:         id,
		CategoryID: categoryID,
		Code:       code,
		Name:       code,
		IsActive:   true,
		UsageCount: usageCount,
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error)
}

// Plan inserts an active draft plan.
func Plan(t testing.TB, gdb *gorm.DB, id, merchantID, name string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, gdb.Create(&models.RentalPlanModel{
		ID:          id,
		MerchantID:  merchantID,
		Name:        name,
		Price:       10000,
		PricingUnit: "PER_PERSON",
		MinQuantity: 1,
		MaxQuantity: 4,
		Duration:    8,
		Images:      []byte("[]"),
		Status:      "DRAFT",
		IsActive:    true,
		CreatedBy:   "usr_" + merchantID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)
}

func PlanTag(t testing.TB, gdb *gorm.DB, planID, tagID string) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.PlanTagModel{
		PlanID:    planID,
		TagID:     tagID,
		AddedBy:   "seed",
		CreatedAt: time.Now(),
	}).Error)
}

func PlanComponent(t testing.TB, gdb *gorm.DB, planID, componentID string, order int) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.PlanComponentModel{
		PlanID:              planID,
		MerchantComponentID: componentID,
		HotmapLabelPosition: "right",
		HotmapOrder:         order,
		CreatedAt:           time.Now(),
	}).Error)
}

func PlanUpgrade(t testing.TB, gdb *gorm.DB, planID, componentID string, order int) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.PlanUpgradeModel{
		PlanID:              planID,
		MerchantComponentID: componentID,
		DisplayOrder:        order,
		CreatedAt:           time.Now(),
	}).Error)
}

// UsageCount reads a tag's ledger value.
func UsageCount(t testing.TB, gdb *gorm.DB, tagID string) int {
	t.Helper()
	var m models.TagModel
	require.NoError(t, gdb.Where("id = ?", tagID).First(&m).Error)
	return m.UsageCount
}

// PlanTagIDs lists a plan's tag ids in order.
func PlanTagIDs(t testing.TB, gdb *gorm.DB, planID string) []string {
	t.Helper()
	var ids []string
	require.NoError(t, gdb.Model(&models.PlanTagModel{}).Where("plan_id = ?", planID).Order("tag_id").Pluck("tag_id", &ids).Error)
	return ids
}
