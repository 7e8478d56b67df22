package autotag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimono-rental/kimono/internal/domain/tag"
)

const sampleRules = `
rules:
  - category: Style
    tag: Vintage
    keywords: ["アンティーク", "ＲＥＴＲＯ", "vintage"]
  - tag: formal
    keywords: [振袖, "formal"]
  - category: occasion
    tag: missing
    keywords: [nothing]
`

func TestParseRules_Normalizes(t *testing.T) {
	rs, err := ParseRules(strings.NewReader(sampleRules))
	require.NoError(t, err)
	require.Len(t, rs.Rules, 3)
	assert.Equal(t, "style", rs.Rules[0].Category)
	assert.Equal(t, "vintage", rs.Rules[0].Tag)
	assert.Equal(t, []string{"アンティーク", "retro", "vintage"}, rs.Rules[0].Keywords)
}

func TestParseRules_Rejects(t *testing.T) {
	_, err := ParseRules(strings.NewReader("rules:\n  - tag: x\n    keywords: []\n"))
	assert.Error(t, err)

	_, err = ParseRules(strings.NewReader("rules:\n  - keywords: [a]\n"))
	assert.Error(t, err)

	_, err = ParseRules(strings.NewReader("rules:\n  - tag: x\n    words: [a]\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestClassifier_Match(t *testing.T) {
	rs, err := ParseRules(strings.NewReader(sampleRules))
	require.NoError(t, err)

	categories := []*tag.Category{{ID: "tcat_style", Code: "style"}, {ID: "tcat_occasion", Code: "occasion"}}
	tags := []*tag.Tag{
		{ID: "tag_vintage", CategoryID: "tcat_style", Code: "vintage"},
		{ID: "tag_formal", CategoryID: "tcat_occasion", Code: "formal"},
	}

	c, unresolved := NewClassifier(rs.Rules, categories, tags)
	assert.Equal(t, 2, c.Size())
	require.Len(t, unresolved, 1)
	assert.Equal(t, "missing", unresolved[0].Tag)

	assert.Equal(t, []string{"tag_formal", "tag_vintage"}, c.Match("Ｒｅｔｒｏ 振袖 Plan", ""))
	assert.Equal(t, []string{"tag_vintage"}, c.Match("Antique look", "アンティーク着物"))
	assert.Empty(t, c.Match("Casual yukata"))
}

func TestClassifier_CategoryMismatchIsUnresolved(t *testing.T) {
	rules := []Rule{{Category: "color", Tag: "vintage", Keywords: []string{"old"}}}
	tags := []*tag.Tag{{ID: "tag_vintage", CategoryID: "tcat_style", Code: "vintage"}}

	c, unresolved := NewClassifier(rules, []*tag.Category{{ID: "tcat_style", Code: "style"}}, tags)
	assert.Zero(t, c.Size())
	assert.Len(t, unresolved, 1)
}
