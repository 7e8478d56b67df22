package autotag

import (
	"sort"
	"strings"

	"github.com/kimono-rental/kimono/internal/domain/tag"
)

// Classifier matches normalized plan text against rules resolved to tag ids.
type Classifier struct {
	entries []entry
}

type entry struct {
	tagID    string
	keywords []string
}

// NewClassifier resolves each rule to a tag id. Rules whose tag cannot be
// found are returned in unresolved and skipped.
func NewClassifier(rules []Rule, categories []*tag.Category, tags []*tag.Tag) (c *Classifier, unresolved []Rule) {
	categoryByID := make(map[string]string, len(categories))
	for _, cat := range categories {
		categoryByID[cat.ID] = cat.Code
	}

	c = &Classifier{}
	for _, rule := range rules {
		tagID := ""
		for _, t := range tags {
			if t.Code != rule.Tag {
				continue
			}
			if rule.Category != "" && categoryByID[t.CategoryID] != rule.Category {
				continue
			}
			tagID = t.ID
			break
		}
		if tagID == "" {
			unresolved = append(unresolved, rule)
			continue
		}
		c.entries = append(c.entries, entry{tagID: tagID, keywords: rule.Keywords})
	}
	return c, unresolved
}

// Match returns the sorted tag ids whose keywords occur in any of texts.
func (c *Classifier) Match(texts ...string) []string {
	haystack := tag.NormalizeText(strings.Join(texts, " "))
	matched := make(map[string]struct{})
	for _, e := range c.entries {
		for _, kw := range e.keywords {
			if strings.Contains(haystack, kw) {
				matched[e.tagID] = struct{}{}
				break
			}
		}
	}

	ids := make([]string, 0, len(matched))
	for id := range matched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (c *Classifier) Size() int {
	return len(c.entries)
}
