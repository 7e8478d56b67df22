package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/infrastructure/database/dbtest"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
	"github.com/kimono-rental/kimono/internal/shared/db"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

func i64(v int64) *int64 { return &v }

// =====================================================================
// PlanRepository
// =====================================================================

func TestPlanRepository_CreateAndGet(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewPlanRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	p, err := plan.NewRentalPlan("mer_1", "usr_1", plan.BaseFields{
		Name:          "Houmongi Elegance",
		Price:         22000,
		OriginalPrice: i64(26000),
		Duration:      9,
		Images:        []string{"a.jpg", "b.jpg"},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, p))

	found, err := repo.GetByID(ctx, p.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Houmongi Elegance", found.Name())
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, found.Base().Images)
	assert.Equal(t, int64(26000), *found.Base().OriginalPrice)
	assert.True(t, found.IsActive())

	missing, err := repo.GetByID(ctx, "plan_missing")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPlanRepository_UpdateBaseFields(t *testing.T) {
	gdb := dbtest.Open(t)
	dbtest.Plan(t, gdb, "plan_1", "mer_1", "Yukata Summer")
	repo := NewPlanRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	p, err := repo.GetByID(ctx, "plan_1")
	require.NoError(t, err)

	name := "Yukata Summer Night"
	status := plan.PlanStatusPublished
	require.NoError(t, p.ApplyPatch(plan.BaseFieldsPatch{Name: &name, Status: &status}))
	require.NoError(t, repo.UpdateBaseFields(ctx, p))

	reloaded, err := repo.GetByID(ctx, "plan_1")
	require.NoError(t, err)
	assert.Equal(t, name, reloaded.Name())
	assert.Equal(t, plan.PlanStatusPublished, reloaded.Status())
}

func TestPlanRepository_SoftDeleteKeepsRow(t *testing.T) {
	gdb := dbtest.Open(t)
	dbtest.Plan(t, gdb, "plan_1", "mer_1", "Furisode")
	dbtest.Plan(t, gdb, "plan_2", "mer_1", "Hakama")
	repo := NewPlanRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.SoftDelete(ctx, "plan_1"))

	retired, err := repo.GetByID(ctx, "plan_1")
	require.NoError(t, err)
	require.NotNil(t, retired)
	assert.False(t, retired.IsActive())

	active, total, err := repo.ListByMerchant(ctx, plan.ListFilter{MerchantID: "mer_1", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, active, 1)
	assert.Equal(t, "plan_2", active[0].ID())

	_, total, err = repo.ListByMerchant(ctx, plan.ListFilter{MerchantID: "mer_1", IncludeRetired: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	ids, err := repo.ListActiveIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"plan_2"}, ids)
}

func TestPlanRepository_ListPagination(t *testing.T) {
	gdb := dbtest.Open(t)
	for _, id := range []string{"plan_a", "plan_b", "plan_c"} {
		dbtest.Plan(t, gdb, id, "mer_1", id)
	}
	dbtest.Plan(t, gdb, "plan_other", "mer_2", "other")
	repo := NewPlanRepository(gdb, logger.NewNopLogger())

	page, total, err := repo.ListByMerchant(context.Background(), plan.ListFilter{MerchantID: "mer_1", Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)
}

// =====================================================================
// Join repositories
// =====================================================================

func TestPlanComponentRepository_ReplaceCycle(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewPlanComponentRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	rows, err := plan.ComponentsFromIDs("plan_1", []string{"mcmp_b", "mcmp_a"})
	require.NoError(t, err)
	require.NoError(t, repo.CreateBatch(ctx, rows))

	listed, err := repo.ListByPlan(ctx, "plan_1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "mcmp_b", listed[0].MerchantComponentID)
	assert.Equal(t, plan.LabelPositionRight, listed[0].LabelPosition)

	require.NoError(t, repo.DeleteByPlan(ctx, "plan_1"))
	listed, err = repo.ListByPlan(ctx, "plan_1")
	require.NoError(t, err)
	assert.Empty(t, listed)

	assert.NoError(t, repo.CreateBatch(ctx, nil))
}

func TestPlanComponentRepository_DuplicatePairRejected(t *testing.T) {
	gdb := dbtest.Open(t)
	dbtest.PlanComponent(t, gdb, "plan_1", "mcmp_a", 0)
	repo := NewPlanComponentRepository(gdb, logger.NewNopLogger())

	err := repo.CreateBatch(context.Background(), []plan.PlanComponent{{PlanID: "plan_1", MerchantComponentID: "mcmp_a", LabelPosition: plan.LabelPositionLeft}})
	require.Error(t, err)
	assert.True(t, errors.IsDuplicateError(err))
}

func TestPlanUpgradeRepository_PersistsOverrides(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewPlanUpgradeRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.CreateBatch(ctx, []plan.PlanUpgrade{
		{PlanID: "plan_1", MerchantComponentID: "mcmp_hair", PriceOverride: i64(0), IsPopular: true, DisplayOrder: 1},
		{PlanID: "plan_1", MerchantComponentID: "mcmp_photo", DisplayOrder: 0},
	}))

	listed, err := repo.ListByPlan(ctx, "plan_1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "mcmp_photo", listed[0].MerchantComponentID)
	assert.Nil(t, listed[0].PriceOverride)
	require.NotNil(t, listed[1].PriceOverride)
	assert.Equal(t, int64(0), *listed[1].PriceOverride)
	assert.True(t, listed[1].IsPopular)
}

// =====================================================================
// Tags and the usage ledger
// =====================================================================

func TestTagRepository_ApplyUsageDelta(t *testing.T) {
	gdb := dbtest.Open(t)
	dbtest.Category(t, gdb, "tcat_style", "style")
	dbtest.Tag(t, gdb, "tag_a", "tcat_style", "a", 2)
	dbtest.Tag(t, gdb, "tag_b", "tcat_style", "b", 0)
	repo := NewTagRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, repo.ApplyUsageDelta(ctx, []string{"tag_a", "tag_b"}, 1))
	require.NoError(t, repo.ApplyUsageDelta(ctx, []string{"tag_a"}, -1))

	assert.Equal(t, 2, dbtest.UsageCount(t, gdb, "tag_a"))
	assert.Equal(t, 1, dbtest.UsageCount(t, gdb, "tag_b"))

	assert.NoError(t, repo.ApplyUsageDelta(ctx, nil, 1))

	err := repo.ApplyUsageDelta(ctx, []string{"tag_a", "tag_ghost"}, 1)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestTagRepository_DuplicateCodeIsConflict(t *testing.T) {
	gdb := dbtest.Open(t)
	dbtest.Category(t, gdb, "tcat_color", "color")
	repo := NewTagRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	first, err := tag.NewTag("tcat_color", "Red", "Red")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first))

	second, err := tag.NewTag("tcat_color", "ＲＥＤ", "Red again")
	require.NoError(t, err)
	err = repo.Create(ctx, second)
	assert.True(t, errors.IsConflictError(err))
}

func TestTagRepository_UpdateLeavesUsageCount(t *testing.T) {
	gdb := dbtest.Open(t)
	dbtest.Category(t, gdb, "tcat_style", "style")
	dbtest.Tag(t, gdb, "tag_a", "tcat_style", "a", 5)
	repo := NewTagRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	tg, err := repo.GetByID(ctx, "tag_a")
	require.NoError(t, err)
	tg.UsageCount = 99
	tg.Name = "Antique"
	require.NoError(t, repo.Update(ctx, tg))

	assert.Equal(t, 5, dbtest.UsageCount(t, gdb, "tag_a"))
	reloaded, err := repo.GetByID(ctx, "tag_a")
	require.NoError(t, err)
	assert.Equal(t, "Antique", reloaded.Name)
}

func TestTagCategoryRepository(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewTagCategoryRepository(gdb, logger.NewNopLogger())
	ctx := context.Background()

	c, err := tag.NewCategory("occasion", "Occasion", 1)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	dup, err := tag.NewCategory("Occasion", "Occasion 2", 2)
	require.NoError(t, err)
	assert.True(t, errors.IsConflictError(repo.Create(ctx, dup)))

	dbtest.Tag(t, gdb, "tag_wedding", c.ID, "wedding", 0)
	count, err := repo.CountTags(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPlanTagRepository_RunsInsideTransaction(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := NewPlanTagRepository(gdb, logger.NewNopLogger())
	txMgr := db.NewTransactionManager(gdb)
	ctx := context.Background()

	dbtest.PlanTag(t, gdb, "plan_1", "tag_a")

	err := txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, repo.DeleteByPlan(txCtx, "plan_1"))
		require.NoError(t, repo.CreateBatch(txCtx, []tag.PlanTag{{PlanID: "plan_1", TagID: "tag_b", AddedBy: "usr_1"}}))
		return errors.NewInternalError("abort")
	})
	require.Error(t, err)

	ids, err := repo.ListTagIDsByPlan(ctx, "plan_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tag_a"}, ids)

	count, err := repo.CountByTag(ctx, "tag_a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestModelsAreRegistered(t *testing.T) {
	gdb := dbtest.Open(t)
	for _, m := range models.All() {
		assert.True(t, gdb.Migrator().HasTable(m))
	}
}
