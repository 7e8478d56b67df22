package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kimono-rental/kimono/internal/application/plan/services"
	plantestutil "github.com/kimono-rental/kimono/internal/application/plan/testutil"
	"github.com/kimono-rental/kimono/internal/application/tag/autotag"
	"github.com/kimono-rental/kimono/internal/domain/plan"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/infrastructure/database/dbtest"
	"github.com/kimono-rental/kimono/internal/infrastructure/persistence/models"
	"github.com/kimono-rental/kimono/internal/infrastructure/repository"
	"github.com/kimono-rental/kimono/internal/shared/db"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

func ptr[T any](v T) *T { return &v }

// =====================================================================
// Categories
// =====================================================================

func TestCategoryLifecycle(t *testing.T) {
	gdb := dbtest.Open(t)
	log := logger.NewNopLogger()
	categoryRepo := repository.NewTagCategoryRepository(gdb, log)
	ctx := context.Background()

	created, err := NewCreateCategoryUseCase(categoryRepo, log).Execute(ctx, CreateCategoryCommand{Code: "Occasion", Name: "Occasion"})
	require.NoError(t, err)
	assert.Equal(t, "occasion", created.Code)

	_, err = NewCreateCategoryUseCase(categoryRepo, log).Execute(ctx, CreateCategoryCommand{Code: "ＯＣＣＡＳＩＯＮ", Name: "dup"})
	assert.True(t, errors.IsConflictError(err))

	dbtest.Tag(t, gdb, "tag_wedding", created.ID, "wedding", 0)
	deleteUC := NewDeleteCategoryUseCase(categoryRepo, log)
	err = deleteUC.Execute(ctx, created.ID)
	assert.True(t, errors.IsPreconditionFailedError(err))

	require.NoError(t, gdb.Where("id = ?", "tag_wedding").Delete(&models.TagModel{}).Error)
	require.NoError(t, deleteUC.Execute(ctx, created.ID))

	err = deleteUC.Execute(ctx, created.ID)
	assert.True(t, errors.IsNotFoundError(err))

	list, err := NewListCategoriesUseCase(categoryRepo, log).Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// =====================================================================
// Tags
// =====================================================================

func TestTagLifecycle(t *testing.T) {
	gdb := dbtest.Open(t)
	log := logger.NewNopLogger()
	tagRepo := repository.NewTagRepository(gdb, log)
	categoryRepo := repository.NewTagCategoryRepository(gdb, log)
	planTagRepo := repository.NewPlanTagRepository(gdb, log)
	ctx := context.Background()
	dbtest.Category(t, gdb, "tcat_color", "color")

	createUC := NewCreateTagUseCase(tagRepo, categoryRepo, log)
	red, err := createUC.Execute(ctx, CreateTagCommand{CategoryID: "tcat_color", Code: "Red", Name: "Red", Color: "#c00"})
	require.NoError(t, err)
	assert.Equal(t, "red", red.Code)
	assert.Zero(t, red.UsageCount)

	_, err = createUC.Execute(ctx, CreateTagCommand{CategoryID: "tcat_color", Code: "red", Name: "Red 2"})
	assert.True(t, errors.IsConflictError(err))

	_, err = createUC.Execute(ctx, CreateTagCommand{CategoryID: "tcat_nope", Code: "blue", Name: "Blue"})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = createUC.Execute(ctx, CreateTagCommand{CategoryID: "tcat_color"})
	assert.True(t, errors.IsValidationError(err))

	updated, err := NewUpdateTagUseCase(tagRepo, log).Execute(ctx, UpdateTagCommand{
		TagID: red.ID,
		Patch: tag.TagPatch{Name: ptr("Crimson"), Order: ptr(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Crimson", updated.Name)

	_, err = NewUpdateTagUseCase(tagRepo, log).Execute(ctx, UpdateTagCommand{TagID: "tag_nope"})
	assert.True(t, errors.IsNotFoundError(err))

	list, err := NewListTagsUseCase(tagRepo, log).Execute(ctx, tag.ListFilter{CategoryID: "tcat_color"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].Order)

	deleteUC := NewDeleteTagUseCase(tagRepo, planTagRepo, log)
	dbtest.PlanTag(t, gdb, "plan_1", red.ID)
	err = deleteUC.Execute(ctx, red.ID)
	assert.True(t, errors.IsPreconditionFailedError(err))

	require.NoError(t, planTagRepo.DeleteByPlan(ctx, "plan_1"))
	require.NoError(t, deleteUC.Execute(ctx, red.ID))
	err = deleteUC.Execute(ctx, red.ID)
	assert.True(t, errors.IsNotFoundError(err))
}

// =====================================================================
// Auto-tagging
// =====================================================================

type autoTagFixture struct {
	uc     *AutoTagPlansUseCase
	gdb    *gorm.DB
	events *plantestutil.MockEventPublisher
}

// newAutoTagFixture wires the use case; wrap, when set, decorates the
// transaction runner.
func newAutoTagFixture(t *testing.T, wrap func(TransactionRunner) TransactionRunner) *autoTagFixture {
	t.Helper()
	gdb := dbtest.Open(t)
	log := logger.NewNopLogger()

	var runner TransactionRunner = db.NewTransactionManager(gdb)
	if wrap != nil {
		runner = wrap(runner)
	}

	tagRepo := repository.NewTagRepository(gdb, log)
	planTagRepo := repository.NewPlanTagRepository(gdb, log)
	events := plantestutil.NewMockEventPublisher()
	uc := NewAutoTagPlansUseCase(
		repository.NewPlanRepository(gdb, log),
		tagRepo,
		repository.NewTagCategoryRepository(gdb, log),
		planTagRepo,
		services.NewTagSynchronizer(tagRepo, planTagRepo, log),
		runner,
		nil,
		events,
		0,
		log,
	)

	dbtest.Category(t, gdb, "tcat_style", "style")
	dbtest.Tag(t, gdb, "tag_vintage", "tcat_style", "vintage", 1)
	dbtest.Tag(t, gdb, "tag_formal", "tcat_style", "formal", 0)
	dbtest.Plan(t, gdb, "plan_retro", "mer_1", "ＲＥＴＲＯ Furisode")
	dbtest.Plan(t, gdb, "plan_casual", "mer_1", "Casual Yukata")
	dbtest.PlanTag(t, gdb, "plan_retro", "tag_vintage")
	return &autoTagFixture{uc: uc, gdb: gdb, events: events}
}

func newAutoTagUseCase(t *testing.T) (*AutoTagPlansUseCase, *gorm.DB) {
	t.Helper()
	f := newAutoTagFixture(t, nil)
	return f.uc, f.gdb
}

// beforeTxRunner runs hook just before each transaction opens.
type beforeTxRunner struct {
	inner TransactionRunner
	hook  func()
}

func (r beforeTxRunner) RunInTransactionWithTimeout(ctx context.Context, timeout time.Duration, fn func(ctx context.Context) error) error {
	r.hook()
	return r.inner.RunInTransactionWithTimeout(ctx, timeout, fn)
}

var autoTagRules = []autotag.Rule{
	{Category: "style", Tag: "vintage", Keywords: []string{"retro"}},
	{Category: "style", Tag: "formal", Keywords: []string{"furisode"}},
	{Tag: "unknown", Keywords: []string{"yukata"}},
}

func TestAutoTagPlans_DryRunWritesNothing(t *testing.T) {
	uc, gdb := newAutoTagUseCase(t)

	result, err := uc.Execute(context.Background(), AutoTagCommand{Rules: autoTagRules, ActorID: "autotag", DryRun: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.PlansScanned)
	assert.Equal(t, 1, result.PlansChanged)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, "plan_retro", result.Changes[0].PlanID)
	assert.Equal(t, []string{"tag_formal"}, result.Changes[0].Added)
	assert.Len(t, result.UnresolvedRules, 1)

	assert.Equal(t, []string{"tag_vintage"}, dbtest.PlanTagIDs(t, gdb, "plan_retro"))
	assert.Equal(t, 0, dbtest.UsageCount(t, gdb, "tag_formal"))
}

func TestAutoTagPlans_AppliesThroughLedger(t *testing.T) {
	uc, gdb := newAutoTagUseCase(t)
	ctx := context.Background()

	result, err := uc.Execute(ctx, AutoTagCommand{Rules: autoTagRules, ActorID: "autotag"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.TagsAttached)
	assert.Empty(t, result.Failed)

	assert.Equal(t, []string{"tag_formal", "tag_vintage"}, dbtest.PlanTagIDs(t, gdb, "plan_retro"))
	assert.Equal(t, 1, dbtest.UsageCount(t, gdb, "tag_vintage"))
	assert.Equal(t, 1, dbtest.UsageCount(t, gdb, "tag_formal"))
	assert.Empty(t, dbtest.PlanTagIDs(t, gdb, "plan_casual"))

	// A second run finds nothing new.
	result, err = uc.Execute(ctx, AutoTagCommand{Rules: autoTagRules, ActorID: "autotag"})
	require.NoError(t, err)
	assert.Zero(t, result.PlansChanged)
	assert.Equal(t, 1, dbtest.UsageCount(t, gdb, "tag_formal"))
}

func TestAutoTagPlans_PublishesUpdateEvent(t *testing.T) {
	f := newAutoTagFixture(t, nil)

	_, err := f.uc.Execute(context.Background(), AutoTagCommand{Rules: autoTagRules, ActorID: "autotag"})
	require.NoError(t, err)

	events := f.events.Events()
	require.Len(t, events, 1)
	assert.Equal(t, plan.EventPlanUpdated, events[0].Type)
	assert.Equal(t, "plan_retro", events[0].PlanID)
	assert.Equal(t, "autotag", events[0].ActorID)
	assert.Equal(t, []string{"tag_formal"}, events[0].TagsAdded)
}

func TestAutoTagPlans_KeepsTagRemovedBeforeSync(t *testing.T) {
	var f *autoTagFixture
	detached := false
	f = newAutoTagFixture(t, func(inner TransactionRunner) TransactionRunner {
		return beforeTxRunner{inner: inner, hook: func() {
			if detached {
				return
			}
			detached = true
			// A merchant edit commits between the batch's plan read and its sync.
			require.NoError(t, f.gdb.Where("plan_id = ? AND tag_id = ?", "plan_retro", "tag_silk").
				Delete(&models.PlanTagModel{}).Error)
			require.NoError(t, f.gdb.Model(&models.TagModel{}).Where("id = ?", "tag_silk").
				UpdateColumn("usage_count", gorm.Expr("usage_count - 1")).Error)
		}}
	})
	dbtest.Tag(t, f.gdb, "tag_silk", "tcat_style", "silk", 1)
	dbtest.PlanTag(t, f.gdb, "plan_retro", "tag_silk")

	result, err := f.uc.Execute(context.Background(), AutoTagCommand{Rules: autoTagRules, ActorID: "autotag"})
	require.NoError(t, err)
	assert.Empty(t, result.Failed)
	assert.True(t, detached)

	assert.Equal(t, []string{"tag_formal", "tag_vintage"}, dbtest.PlanTagIDs(t, f.gdb, "plan_retro"))
	assert.Equal(t, 0, dbtest.UsageCount(t, f.gdb, "tag_silk"))
	assert.Equal(t, 1, dbtest.UsageCount(t, f.gdb, "tag_formal"))
}

func TestAutoTagPlans_SkipsRetiredPlans(t *testing.T) {
	uc, gdb := newAutoTagUseCase(t)
	require.NoError(t, gdb.Model(&models.RentalPlanModel{}).Where("id = ?", "plan_retro").Update("is_active", false).Error)

	result, err := uc.Execute(context.Background(), AutoTagCommand{Rules: autoTagRules, ActorID: "autotag"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.PlansScanned)
	assert.Zero(t, result.PlansChanged)
}
