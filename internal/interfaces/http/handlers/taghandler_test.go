package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimono-rental/kimono/internal/application/tag/dto"
	"github.com/kimono-rental/kimono/internal/application/tag/usecases"
	"github.com/kimono-rental/kimono/internal/domain/tag"
	"github.com/kimono-rental/kimono/internal/interfaces/http/handlers/testutil"
	"github.com/kimono-rental/kimono/internal/shared/errors"
	"github.com/kimono-rental/kimono/internal/shared/logger"
)

type mockCreateCategoryUC struct {
	got *usecases.CreateCategoryCommand
	err error
}

func (m *mockCreateCategoryUC) Execute(ctx context.Context, cmd usecases.CreateCategoryCommand) (*dto.CategoryDTO, error) {
	m.got = &cmd
	if m.err != nil {
		return nil, m.err
	}
	return &dto.CategoryDTO{ID: "tcat_1", Code: cmd.Code, Name: cmd.Name}, nil
}

type mockListCategoriesUC struct{}

func (m *mockListCategoriesUC) Execute(ctx context.Context) ([]*dto.CategoryDTO, error) {
	return []*dto.CategoryDTO{{ID: "tcat_1", Code: "style"}}, nil
}

type mockDeleteCategoryUC struct{ err error }

func (m *mockDeleteCategoryUC) Execute(ctx context.Context, categoryID string) error { return m.err }

type mockCreateTagUC struct {
	got *usecases.CreateTagCommand
}

func (m *mockCreateTagUC) Execute(ctx context.Context, cmd usecases.CreateTagCommand) (*dto.TagDTO, error) {
	m.got = &cmd
	return &dto.TagDTO{ID: "tag_1", CategoryID: cmd.CategoryID, Code: cmd.Code}, nil
}

type mockUpdateTagUC struct {
	got *usecases.UpdateTagCommand
}

func (m *mockUpdateTagUC) Execute(ctx context.Context, cmd usecases.UpdateTagCommand) (*dto.TagDTO, error) {
	m.got = &cmd
	return &dto.TagDTO{ID: cmd.TagID}, nil
}

type mockListTagsUC struct {
	got *tag.ListFilter
}

func (m *mockListTagsUC) Execute(ctx context.Context, filter tag.ListFilter) ([]*dto.TagDTO, error) {
	m.got = &filter
	return []*dto.TagDTO{}, nil
}

type mockDeleteTagUC struct{ err error }

func (m *mockDeleteTagUC) Execute(ctx context.Context, tagID string) error { return m.err }

func newTestTagHandler() (*TagHandler, *mockCreateTagUC, *mockUpdateTagUC, *mockListTagsUC) {
	createTag := &mockCreateTagUC{}
	updateTag := &mockUpdateTagUC{}
	listTags := &mockListTagsUC{}
	h := NewTagHandler(
		&mockCreateCategoryUC{}, &mockListCategoriesUC{}, &mockDeleteCategoryUC{},
		createTag, updateTag, listTags, &mockDeleteTagUC{},
		logger.NewNopLogger(),
	)
	return h, createTag, updateTag, listTags
}

func TestTagHandler_CreateTag(t *testing.T) {
	h, createTag, _, _ := newTestTagHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/tags", map[string]any{
		"categoryId": "tcat_1",
		"code":       "vintage",
		"name":       "Vintage",
		"color":      "#aa3300",
	})
	h.CreateTag(c)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "vintage", createTag.got.Code)
	assert.Equal(t, "#aa3300", createTag.got.Color)
}

func TestTagHandler_CreateTag_Validation(t *testing.T) {
	h, createTag, _, _ := newTestTagHandler()

	c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/tags", map[string]any{
		"code":  "vintage",
		"name":  "Vintage",
		"color": "red",
	})
	h.CreateTag(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, createTag.got)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Fields, "categoryId")
	assert.Contains(t, resp.Error.Fields, "color")
}

func TestTagHandler_UpdateTag_MapsPatch(t *testing.T) {
	h, _, updateTag, _ := newTestTagHandler()

	c, w := testutil.NewTestContext(http.MethodPatch, "/api/admin/tags/tag_1", map[string]any{
		"name":     "Antique",
		"isActive": false,
	})
	testutil.SetURLParam(c, "id", "tag_1")
	h.UpdateTag(c)

	require.Equal(t, http.StatusOK, w.Code)
	got := updateTag.got
	require.NotNil(t, got)
	assert.Equal(t, "tag_1", got.TagID)
	assert.Equal(t, "Antique", *got.Patch.Name)
	assert.False(t, *got.Patch.IsActive)
	assert.Nil(t, got.Patch.Order)
}

func TestTagHandler_ListTags_Filters(t *testing.T) {
	h, _, _, listTags := newTestTagHandler()

	c, w := testutil.NewTestContext(http.MethodGet, "/api/admin/tags", nil)
	testutil.SetQueryParams(c, map[string]string{"category_id": "tcat_1"})
	h.ListTags(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, tag.ListFilter{CategoryID: "tcat_1", ActiveOnly: true}, *listTags.got)

	c, _ = testutil.NewTestContext(http.MethodGet, "/api/admin/tags", nil)
	testutil.SetQueryParams(c, map[string]string{"all": "true"})
	h.ListTags(c)
	assert.False(t, listTags.got.ActiveOnly)
}

func TestTagHandler_DeleteTag_InUse(t *testing.T) {
	h := NewTagHandler(nil, nil, nil, nil, nil, nil,
		&mockDeleteTagUC{err: errors.NewPreconditionFailedError("tag is still attached to plans")},
		logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodDelete, "/api/admin/tags/tag_1", nil)
	testutil.SetURLParam(c, "id", "tag_1")
	h.DeleteTag(c)

	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}

func TestTagHandler_CategoryEndpoints(t *testing.T) {
	createCat := &mockCreateCategoryUC{}
	h := NewTagHandler(createCat, &mockListCategoriesUC{}, &mockDeleteCategoryUC{err: errors.NewNotFoundError("category not found")},
		nil, nil, nil, nil, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/admin/tag-categories", map[string]any{"code": "occasion", "name": "Occasion", "order": 2})
	h.CreateCategory(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 2, createCat.got.Order)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/admin/tag-categories", nil)
	h.ListCategories(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = testutil.NewTestContext(http.MethodDelete, "/api/admin/tag-categories/tcat_x", nil)
	testutil.SetURLParam(c, "id", "tcat_x")
	h.DeleteCategory(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
