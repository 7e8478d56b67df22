package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimono-rental/kimono/internal/shared/errors"
)

func TestComputeDelta(t *testing.T) {
	tests := []struct {
		name       string
		current    []string
		desired    []string
		wantAdd    []string
		wantRemove []string
		wantSet    []string
	}{
		{
			name:       "swap A for C keeps B",
			current:    []string{"tag_a", "tag_b"},
			desired:    []string{"tag_b", "tag_c"},
			wantAdd:    []string{"tag_c"},
			wantRemove: []string{"tag_a"},
			wantSet:    []string{"tag_b", "tag_c"},
		},
		{
			name:       "same set is a no-op",
			current:    []string{"tag_b", "tag_a"},
			desired:    []string{"tag_a", "tag_b"},
			wantAdd:    []string{},
			wantRemove: []string{},
			wantSet:    []string{"tag_a", "tag_b"},
		},
		{
			name:       "first tagging only adds",
			current:    nil,
			desired:    []string{"tag_vintage", "tag_formal"},
			wantAdd:    []string{"tag_formal", "tag_vintage"},
			wantRemove: []string{},
			wantSet:    []string{"tag_formal", "tag_vintage"},
		},
		{
			name:       "clearing only removes",
			current:    []string{"tag_a", "tag_b"},
			desired:    []string{},
			wantAdd:    []string{},
			wantRemove: []string{"tag_a", "tag_b"},
			wantSet:    []string{},
		},
		{
			name:       "duplicates in desired collapse",
			current:    []string{"tag_a"},
			desired:    []string{"tag_a", "tag_c", "tag_c", "tag_a"},
			wantAdd:    []string{"tag_c"},
			wantRemove: []string{},
			wantSet:    []string{"tag_a", "tag_c"},
		},
		{
			name:       "empty ids ignored",
			current:    []string{"tag_a"},
			desired:    []string{"", "tag_a"},
			wantAdd:    []string{},
			wantRemove: []string{},
			wantSet:    []string{"tag_a"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := ComputeDelta(tc.current, tc.desired)
			assert.Equal(t, tc.wantAdd, d.ToAdd)
			assert.Equal(t, tc.wantRemove, d.ToRemove)
			assert.Equal(t, tc.wantSet, d.Desired)
		})
	}
}

func TestComputeDelta_RepeatedApplicationIsNoop(t *testing.T) {
	desired := []string{"tag_vintage", "tag_formal"}
	first := ComputeDelta([]string{"tag_vintage"}, desired)
	require.False(t, first.IsNoop())

	second := ComputeDelta(first.Desired, desired)
	assert.True(t, second.IsNoop())
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Vintage", "vintage"},
		{"ＶＩＮＴＡＧＥ", "vintage"},
		{"  Coming  of Age ", "coming-of-age"},
		{"Retro　Modern", "retro-modern"},
		{"成人式", "成人式"},
		{"", ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeCode(tc.in))
		})
	}
}

func TestNewTag(t *testing.T) {
	tg, err := NewTag("tcat_style", "Ｆｏｒｍａｌ", "Formal")
	require.NoError(t, err)
	assert.Equal(t, "formal", tg.Code)
	assert.Zero(t, tg.UsageCount)
	assert.True(t, tg.IsActive)

	_, err = NewTag("", "", "")
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Len(t, appErr.Fields, 3)
}

func TestTagApply(t *testing.T) {
	tg, err := NewTag("tcat_style", "vintage", "Vintage")
	require.NoError(t, err)

	color := "#aa3355"
	require.NoError(t, tg.Apply(TagPatch{Color: &color}))
	assert.Equal(t, color, tg.Color)
	assert.Equal(t, "vintage", tg.Code)

	empty := ""
	assert.True(t, errors.IsValidationError(tg.Apply(TagPatch{Name: &empty})))
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory("Occasion", "Occasion", 2)
	require.NoError(t, err)
	assert.Equal(t, "occasion", c.Code)
	assert.Equal(t, 2, c.Order)

	_, err = NewCategory(" ", "", 0)
	assert.True(t, errors.IsValidationError(err))
}
