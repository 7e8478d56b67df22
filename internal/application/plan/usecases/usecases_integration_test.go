package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kimono-rental/kimono/internal/application/plan/services"
	"github.com/kimono-rental/kimono/internal/application/plan/testutil"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/infrastructure/database/dbtest"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
	"github.com/kimono-rental/kimono/internal/infrastructure/repository"
	"github.com/kimono-rental/kimono/internal/shared/db"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
	"github.com/kimono-rental/kimono/internal/shared/services/markdown"
)

const (
	merchantX = "mer_x"
	merchantY = "mer_y"
	planP     = "plan_p"
	actor     = "usr_x"
)

type harness struct {
	gdb        *gorm.DB
	planRepo   plan.Repository
	txMgr      *db.TransactionManager
	tagSync    *services.TagSynchronizer
	compSync   *services.ComponentSynchronizer
	upSync     *services.UpgradeSynchronizer
	assembler  *services.PlanAssembler
	cache      *testutil.MockPlanCache
	events     *testutil.MockEventPublisher
	update     *UpdatePlanUseCase
	softDelete *SoftDeletePlanUseCase
	create     *CreatePlanUseCase
	get        *GetPlanUseCase
	list       *ListMerchantPlansUseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	gdb := dbtest.Open(t)
	log := logger.NewNopLogger()

	planRepo := repository.NewPlanRepository(gdb, log)
	tagRepo := repository.NewTagRepository(gdb, log)
	planTagRepo := repository.NewPlanTagRepository(gdb, log)
	planComponentRepo := repository.NewPlanComponentRepository(gdb, log)
	planUpgradeRepo := repository.NewPlanUpgradeRepository(gdb, log)
	componentRepo := repository.NewMerchantComponentRepository(gdb, log)
	templateRepo := repository.NewComponentTemplateRepository(gdb, log)

	h := &harness{
		gdb:       gdb,
		planRepo:  planRepo,
		txMgr:     db.NewTransactionManager(gdb),
		tagSync:   services.NewTagSynchronizer(tagRepo, planTagRepo, log),
		compSync:  services.NewComponentSynchronizer(planComponentRepo, componentRepo, log),
		upSync:    services.NewUpgradeSynchronizer(planUpgradeRepo, componentRepo, log),
		cache:     testutil.NewMockPlanCache(),
		events:    testutil.NewMockEventPublisher(),
		assembler: services.NewPlanAssembler(planTagRepo, tagRepo, planComponentRepo, planUpgradeRepo, componentRepo, templateRepo, markdown.NewMarkdownService(), log),
	}
	h.update = NewUpdatePlanUseCase(planRepo, h.txMgr, h.tagSync, h.compSync, h.upSync, h.assembler, h.cache, h.events, 0, log)
	h.softDelete = NewSoftDeletePlanUseCase(planRepo, h.cache, h.events, log)
	h.create = NewCreatePlanUseCase(planRepo, h.txMgr, h.tagSync, h.compSync, h.upSync, h.assembler, h.events, 0, log)
	h.get = NewGetPlanUseCase(planRepo, h.assembler, h.cache, log)
	h.list = NewListMerchantPlansUseCase(planRepo, log)

	dbtest.Merchant(t, gdb, merchantX, actor, "APPROVED")
	dbtest.Merchant(t, gdb, merchantY, "usr_y", "APPROVED")
	dbtest.Template(t, gdb, "tmpl_hair", 3000)
	dbtest.Component(t, gdb, "mcmp_c1", merchantX, "tmpl_hair", nil)
	dbtest.Component(t, gdb, "mcmp_c2", merchantX, "tmpl_hair", nil)
	dbtest.Component(t, gdb, "mcmp_c3", merchantX, "tmpl_hair", i64(4500))
	dbtest.Component(t, gdb, "mcmp_foreign", merchantY, "tmpl_hair", nil)
	dbtest.Category(t, gdb, "tcat_style", "style")
	dbtest.Plan(t, gdb, planP, merchantX, "Classic Komon")
	return h
}

func i64(v int64) *int64 { return &v }
func ptr[T any](v T) *T  { return &v }

// attachTags seeds plan tags and bumps each tag's counter the way a prior
// reconciliation would have.
func (h *harness) attachTags(t *testing.T, planID string, tagIDs ...string) {
	t.Helper()
	for _, id := range tagIDs {
		dbtest.PlanTag(t, h.gdb, planID, id)
		require.NoError(t, h.gdb.Model(&models.TagModel{}).Where("id = ?", id).
			UpdateColumn("usage_count", gorm.Expr("usage_count + 1")).Error)
	}
}

func (h *harness) componentRows(t *testing.T, planID string) []models.PlanComponentModel {
	t.Helper()
	var rows []models.PlanComponentModel
	require.NoError(t, h.gdb.Where("plan_id = ?", planID).Order("hotmap_order").Find(&rows).Error)
	return rows
}

func (h *harness) planName(t *testing.T, planID string) string {
	t.Helper()
	var m models.RentalPlanModel
	require.NoError(t, h.gdb.Where("id = ?", planID).First(&m).Error)
	return m.Name
}

// =====================================================================
// Tag usage ledger
// =====================================================================

func TestUpdatePlan_SameTagsTwiceLeavesCountersStable(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 0)
	dbtest.Tag(t, h.gdb, "tag_b", "tcat_style", "b", 4)
	ctx := context.Background()

	cmd := UpdatePlanCommand{PlanID: planP, MerchantID: merchantX, ActorID: actor, TagIDs: &[]string{"tag_a", "tag_b", "tag_a"}}

	_, err := h.update.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, dbtest.UsageCount(t, h.gdb, "tag_a"))
	assert.Equal(t, 5, dbtest.UsageCount(t, h.gdb, "tag_b"))

	_, err = h.update.Execute(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, dbtest.UsageCount(t, h.gdb, "tag_a"))
	assert.Equal(t, 5, dbtest.UsageCount(t, h.gdb, "tag_b"))
	assert.Equal(t, []string{"tag_a", "tag_b"}, dbtest.PlanTagIDs(t, h.gdb, planP))
}

func TestUpdatePlan_TagDeltaMovesOnlySymmetricDifference(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 0)
	dbtest.Tag(t, h.gdb, "tag_b", "tcat_style", "b", 0)
	dbtest.Tag(t, h.gdb, "tag_c", "tcat_style", "c", 2)
	h.attachTags(t, planP, "tag_a", "tag_b")

	out, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		TagIDs: &[]string{"tag_b", "tag_c"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, dbtest.UsageCount(t, h.gdb, "tag_a"))
	assert.Equal(t, 1, dbtest.UsageCount(t, h.gdb, "tag_b"))
	assert.Equal(t, 3, dbtest.UsageCount(t, h.gdb, "tag_c"))
	require.Len(t, out.Tags, 2)
	assert.Equal(t, actor, out.Tags[0].AddedBy)

	events := h.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, plan.EventPlanUpdated, events[0].Type)
	assert.Equal(t, []string{"tag_c"}, events[0].TagsAdded)
	assert.Equal(t, []string{"tag_a"}, events[0].TagsRemoved)
}

func TestUpdatePlan_EmptyTagListDetachesEverything(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 0)
	h.attachTags(t, planP, "tag_a")

	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor, TagIDs: &[]string{},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, dbtest.UsageCount(t, h.gdb, "tag_a"))
	assert.Empty(t, dbtest.PlanTagIDs(t, h.gdb, planP))
}

func TestUpdatePlan_NilTagsLeaveAssociationsAlone(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 0)
	h.attachTags(t, planP, "tag_a")

	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Base: plan.BaseFieldsPatch{Name: ptr("Renamed")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tag_a"}, dbtest.PlanTagIDs(t, h.gdb, planP))
	assert.Equal(t, 1, dbtest.UsageCount(t, h.gdb, "tag_a"))
	assert.Equal(t, "Renamed", h.planName(t, planP))
}

func TestUpdatePlan_UnknownTagIsNotFound(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 0)

	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		TagIDs: &[]string{"tag_a", "tag_ghost"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Contains(t, errors.GetAppError(err).Details, "tag_ghost")
	assert.Equal(t, 0, dbtest.UsageCount(t, h.gdb, "tag_a"))
}

// Plan P has {vintage}, usage 3; adding formal keeps vintage at 3.
func TestUpdatePlan_VintageFormalScenario(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_vintage", "tcat_style", "vintage", 2)
	dbtest.Tag(t, h.gdb, "tag_formal", "tcat_style", "formal", 7)
	h.attachTags(t, planP, "tag_vintage")
	require.Equal(t, 3, dbtest.UsageCount(t, h.gdb, "tag_vintage"))

	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		TagIDs: &[]string{"tag_vintage", "tag_formal"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, dbtest.UsageCount(t, h.gdb, "tag_vintage"))
	assert.Equal(t, 8, dbtest.UsageCount(t, h.gdb, "tag_formal"))
	assert.Equal(t, []string{"tag_formal", "tag_vintage"}, dbtest.PlanTagIDs(t, h.gdb, planP))
}

// =====================================================================
// Atomicity and ownership
// =====================================================================

func TestUpdatePlan_ComponentFailureRollsBackTags(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 0)
	dbtest.Tag(t, h.gdb, "tag_b", "tcat_style", "b", 0)
	h.attachTags(t, planP, "tag_a")

	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Base:       plan.BaseFieldsPatch{Name: ptr("Should not stick")},
		TagIDs:     &[]string{"tag_b"},
		Components: &services.ComponentInput{IDs: []string{"mcmp_c1", "mcmp_missing"}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))

	assert.Equal(t, []string{"tag_a"}, dbtest.PlanTagIDs(t, h.gdb, planP))
	assert.Equal(t, 1, dbtest.UsageCount(t, h.gdb, "tag_a"))
	assert.Equal(t, 0, dbtest.UsageCount(t, h.gdb, "tag_b"))
	assert.Equal(t, "Classic Komon", h.planName(t, planP))
	assert.Empty(t, h.events.Events())
	assert.Empty(t, h.cache.Invalidated())
}

func TestUpdatePlan_ForeignMerchantComponentIsNotFound(t *testing.T) {
	h := newHarness(t)

	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Upgrades: &[]plan.UpgradeInput{{MerchantComponentID: "mcmp_foreign"}},
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUpdatePlan_OtherMerchantIsForbidden(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 0)
	dbtest.Tag(t, h.gdb, "tag_b", "tcat_style", "b", 0)
	h.attachTags(t, planP, "tag_a")
	dbtest.PlanComponent(t, h.gdb, planP, "mcmp_c1", 0)
	dbtest.PlanUpgrade(t, h.gdb, planP, "mcmp_c2", 0)

	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantY, ActorID: "usr_y",
		Base:       plan.BaseFieldsPatch{Name: ptr("Hijacked")},
		TagIDs:     &[]string{"tag_b"},
		Components: &services.ComponentInput{IDs: []string{}},
		Upgrades:   &[]plan.UpgradeInput{},
	})
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))

	assert.Equal(t, "Classic Komon", h.planName(t, planP))
	assert.Equal(t, []string{"tag_a"}, dbtest.PlanTagIDs(t, h.gdb, planP))
	assert.Len(t, h.componentRows(t, planP), 1)
	var upgrades int64
	require.NoError(t, h.gdb.Model(&models.PlanUpgradeModel{}).Where("plan_id = ?", planP).Count(&upgrades).Error)
	assert.Equal(t, int64(1), upgrades)
}

func TestUpdatePlan_UnknownPlanIsNotFound(t *testing.T) {
	h := newHarness(t)
	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{PlanID: "plan_nope", MerchantID: merchantX})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUpdatePlan_InvalidBaseFieldsFailBeforeWriting(t *testing.T) {
	h := newHarness(t)
	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX,
		Base: plan.BaseFieldsPatch{Price: i64(-1), MinQuantity: ptr(5), MaxQuantity: ptr(2)},
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Contains(t, appErr.Fields, "price")
	assert.Contains(t, appErr.Fields, "maxQuantity")
}

type slowTagSyncer struct{ delay time.Duration }

func (s slowTagSyncer) Sync(ctx context.Context, planID string, desired []string, actorID string) (tag.Delta, error) {
	select {
	case <-time.After(s.delay):
	case <-ctx.Done():
	}
	return tag.ComputeDelta(nil, desired), nil
}

func TestUpdatePlan_TimeoutRollsBackEverything(t *testing.T) {
	h := newHarness(t)
	uc := NewUpdatePlanUseCase(h.planRepo, h.txMgr, slowTagSyncer{delay: time.Second},
		h.compSync, h.upSync, h.assembler, h.cache, h.events, 50*time.Millisecond, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Base:   plan.BaseFieldsPatch{Name: ptr("Too slow")},
		TagIDs: &[]string{},
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeInternal, appErr.Type)
	assert.Equal(t, "Classic Komon", h.planName(t, planP))
	assert.Empty(t, h.events.Events())
}

// =====================================================================
// Components and upgrades
// =====================================================================

func TestUpdatePlan_ComponentsAreFullyReplaced(t *testing.T) {
	h := newHarness(t)
	dbtest.PlanComponent(t, h.gdb, planP, "mcmp_c1", 0)
	dbtest.PlanComponent(t, h.gdb, planP, "mcmp_c2", 1)

	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Components: &services.ComponentInput{IDs: []string{"mcmp_c3"}},
	})
	require.NoError(t, err)

	rows := h.componentRows(t, planP)
	require.Len(t, rows, 1)
	assert.Equal(t, "mcmp_c3", rows[0].MerchantComponentID)
	assert.Equal(t, 0, rows[0].HotmapOrder)
}

func TestUpdatePlan_DetailedComponentsWinOverIDs(t *testing.T) {
	h := newHarness(t)
	left := plan.LabelPositionLeft

	out, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Components: &services.ComponentInput{
			Placements: []plan.ComponentPlacement{
				{MerchantComponentID: "mcmp_c2", HotmapX: ptr(0.25), HotmapY: ptr(0.5), LabelPosition: &left, HotmapOrder: ptr(3)},
				{MerchantComponentID: "mcmp_c1"},
			},
			IDs: []string{"mcmp_c3"},
		},
	})
	require.NoError(t, err)

	rows := h.componentRows(t, planP)
	require.Len(t, rows, 2)
	assert.Equal(t, "mcmp_c1", rows[0].MerchantComponentID)
	assert.Equal(t, "right", rows[0].HotmapLabelPosition)
	assert.Nil(t, rows[0].HotmapLabelOffsetX)
	assert.Equal(t, "mcmp_c2", rows[1].MerchantComponentID)
	assert.Equal(t, 3, rows[1].HotmapOrder)
	assert.Equal(t, "left", rows[1].HotmapLabelPosition)
	require.NotNil(t, rows[1].HotmapX)
	assert.InDelta(t, 0.25, *rows[1].HotmapX, 1e-9)
	assert.Len(t, out.Components, 2)
}

func TestUpdatePlan_UpgradesResolveEffectivePrice(t *testing.T) {
	h := newHarness(t)

	out, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Upgrades: &[]plan.UpgradeInput{
			{MerchantComponentID: "mcmp_c1"},
			{MerchantComponentID: "mcmp_c3"},
			{MerchantComponentID: "mcmp_c2", PriceOverride: i64(0), IsPopular: ptr(true), DisplayOrder: ptr(9)},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Upgrades, 3)

	byID := make(map[string]int64)
	for _, u := range out.Upgrades {
		byID[u.MerchantComponentID] = u.EffectivePrice
	}
	assert.Equal(t, int64(3000), byID["mcmp_c1"])
	assert.Equal(t, int64(4500), byID["mcmp_c3"])
	assert.Equal(t, int64(0), byID["mcmp_c2"])

	var rows []models.PlanUpgradeModel
	require.NoError(t, h.gdb.Where("plan_id = ?", planP).Order("display_order").Find(&rows).Error)
	require.Len(t, rows, 3)
	assert.Equal(t, 0, rows[0].DisplayOrder)
	assert.Nil(t, rows[0].PriceOverride)
	assert.Equal(t, 1, rows[1].DisplayOrder)
	assert.Equal(t, 9, rows[2].DisplayOrder)
	require.NotNil(t, rows[2].PriceOverride)
	assert.Equal(t, int64(0), *rows[2].PriceOverride)
	assert.True(t, rows[2].IsPopular)
}

func TestUpdatePlan_InvalidatesCacheAfterCommit(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.cache.Set(context.Background(), planP, []byte(`{"id":"plan_p"}`)))

	_, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Base: plan.BaseFieldsPatch{Description: ptr("**Silk** obi")},
	})
	require.NoError(t, err)
	assert.False(t, h.cache.Has(planP))
	assert.Equal(t, []string{planP}, h.cache.Invalidated())
}

func TestUpdatePlan_SideEffectFailuresDoNotFailTheCall(t *testing.T) {
	h := newHarness(t)
	h.cache.InvalidateError = errors.NewInternalError("redis down")
	h.events.PublishError = errors.NewInternalError("kafka down")

	out, err := h.update.Execute(context.Background(), UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Base: plan.BaseFieldsPatch{Name: ptr("Still saved")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Still saved", out.Name)
}

// =====================================================================
// Soft delete, create, read
// =====================================================================

func TestSoftDeletePlan_KeepsRowAndJoinRows(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 0)
	h.attachTags(t, planP, "tag_a")
	dbtest.PlanComponent(t, h.gdb, planP, "mcmp_c1", 0)
	dbtest.PlanUpgrade(t, h.gdb, planP, "mcmp_c2", 0)

	require.NoError(t, h.softDelete.Execute(context.Background(), SoftDeletePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
	}))

	var m models.RentalPlanModel
	require.NoError(t, h.gdb.Where("id = ?", planP).First(&m).Error)
	assert.False(t, m.IsActive)
	assert.Equal(t, []string{"tag_a"}, dbtest.PlanTagIDs(t, h.gdb, planP))
	assert.Len(t, h.componentRows(t, planP), 1)
	assert.Equal(t, 1, dbtest.UsageCount(t, h.gdb, "tag_a"))

	events := h.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, plan.EventPlanRetired, events[0].Type)
	assert.Equal(t, []string{planP}, h.cache.Invalidated())
}

func TestUpdatePlan_RetiredPlanIsFrozen(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 0)
	dbtest.Tag(t, h.gdb, "tag_b", "tcat_style", "b", 0)
	h.attachTags(t, planP, "tag_b")
	ctx := context.Background()

	require.NoError(t, h.softDelete.Execute(ctx, SoftDeletePlanCommand{PlanID: planP, MerchantID: merchantX, ActorID: actor}))

	_, err := h.update.Execute(ctx, UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Base:   plan.BaseFieldsPatch{Name: ptr("Revived")},
		TagIDs: &[]string{"tag_a"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsPreconditionFailedError(err))

	assert.Equal(t, 0, dbtest.UsageCount(t, h.gdb, "tag_a"))
	assert.Equal(t, 1, dbtest.UsageCount(t, h.gdb, "tag_b"))
	assert.Equal(t, []string{"tag_b"}, dbtest.PlanTagIDs(t, h.gdb, planP))
	assert.Equal(t, "Classic Komon", h.planName(t, planP))

	// Only the retirement event went out.
	assert.Len(t, h.events.Events(), 1)
}

func TestUpdatePlan_ClearsNullableFields(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.update.Execute(ctx, UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Base: plan.BaseFieldsPatch{OriginalPrice: i64(15000), ThemeID: ptr("theme_spring")},
	})
	require.NoError(t, err)

	out, err := h.update.Execute(ctx, UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Base: plan.BaseFieldsPatch{ClearOriginalPrice: true, ClearThemeID: true},
	})
	require.NoError(t, err)
	assert.Nil(t, out.OriginalPrice)

	var m models.RentalPlanModel
	require.NoError(t, h.gdb.Where("id = ?", planP).First(&m).Error)
	assert.Nil(t, m.OriginalPrice)
	assert.Nil(t, m.ThemeID)
}

func TestSoftDeletePlan_Ownership(t *testing.T) {
	h := newHarness(t)

	err := h.softDelete.Execute(context.Background(), SoftDeletePlanCommand{PlanID: planP, MerchantID: merchantY})
	assert.True(t, errors.IsForbiddenError(err))

	err = h.softDelete.Execute(context.Background(), SoftDeletePlanCommand{PlanID: "plan_nope", MerchantID: merchantX})
	assert.True(t, errors.IsNotFoundError(err))

	var m models.RentalPlanModel
	require.NoError(t, h.gdb.Where("id = ?", planP).First(&m).Error)
	assert.True(t, m.IsActive)
}

func TestCreatePlan_WithInitialTags(t *testing.T) {
	h := newHarness(t)
	dbtest.Tag(t, h.gdb, "tag_a", "tcat_style", "a", 1)

	out, err := h.create.Execute(context.Background(), CreatePlanCommand{
		MerchantID: merchantX,
		ActorID:    actor,
		Base:       plan.BaseFields{Name: "Furisode Premium", Price: 38000, Duration: 10},
		TagIDs:     []string{"tag_a"},
		Components: &services.ComponentInput{IDs: []string{"mcmp_c1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(plan.PlanStatusDraft), out.Status)
	assert.True(t, out.IsActive)
	assert.Len(t, out.Tags, 1)
	assert.Len(t, out.Components, 1)
	assert.Equal(t, 2, dbtest.UsageCount(t, h.gdb, "tag_a"))
}

func TestCreatePlan_FailureLeavesNoPlan(t *testing.T) {
	h := newHarness(t)

	_, err := h.create.Execute(context.Background(), CreatePlanCommand{
		MerchantID: merchantX,
		ActorID:    actor,
		Base:       plan.BaseFields{Name: "Broken", Price: 1000},
		TagIDs:     []string{"tag_ghost"},
	})
	require.Error(t, err)

	var count int64
	require.NoError(t, h.gdb.Model(&models.RentalPlanModel{}).Where("name = ?", "Broken").Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetPlan_PublicUsesCache(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.get.ExecutePublic(ctx, planP)
	assert.True(t, errors.IsNotFoundError(err), "draft plans are not public")

	_, err = h.update.Execute(ctx, UpdatePlanCommand{
		PlanID: planP, MerchantID: merchantX, ActorID: actor,
		Base: plan.BaseFieldsPatch{Status: ptr(plan.PlanStatusPublished), Description: ptr("# Komon\n<script>x</script>")},
	})
	require.NoError(t, err)

	out, err := h.get.ExecutePublic(ctx, planP)
	require.NoError(t, err)
	assert.Contains(t, out.DescriptionHTML, "<h1")
	assert.NotContains(t, out.DescriptionHTML, "<script>")
	assert.True(t, h.cache.Has(planP))

	require.NoError(t, h.gdb.Model(&models.RentalPlanModel{}).Where("id = ?", planP).Update("name", "Changed behind cache").Error)
	cached, err := h.get.ExecutePublic(ctx, planP)
	require.NoError(t, err)
	assert.Equal(t, "Classic Komon", cached.Name)
}

func TestGetPlan_ForMerchant(t *testing.T) {
	h := newHarness(t)

	out, err := h.get.ExecuteForMerchant(context.Background(), planP, merchantX)
	require.NoError(t, err)
	assert.Equal(t, planP, out.ID)

	_, err = h.get.ExecuteForMerchant(context.Background(), planP, merchantY)
	assert.True(t, errors.IsForbiddenError(err))
}

func TestListMerchantPlans(t *testing.T) {
	h := newHarness(t)
	dbtest.Plan(t, h.gdb, "plan_q", merchantX, "Yukata")
	dbtest.Plan(t, h.gdb, "plan_other", merchantY, "Hakama")
	require.NoError(t, h.softDelete.Execute(context.Background(), SoftDeletePlanCommand{PlanID: "plan_q", MerchantID: merchantX}))

	result, err := h.list.Execute(context.Background(), ListMerchantPlansQuery{MerchantID: merchantX})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, 1, result.Page)

	result, err = h.list.Execute(context.Background(), ListMerchantPlansQuery{MerchantID: merchantX, IncludeRetired: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}
