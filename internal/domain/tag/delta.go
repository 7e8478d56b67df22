package tag

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Delta is the difference between a plan's current and desired tag sets.
// All slices are sorted and free of duplicates.
type Delta struct {
	Desired  []string
	ToAdd    []string
	ToRemove []string
}

// IsNoop reports whether applying the delta leaves every usage counter
// unchanged.
func (d Delta) IsNoop() bool {
	return len(d.ToAdd) == 0 && len(d.ToRemove) == 0
}

// ComputeDelta returns ToRemove = current - desired and ToAdd = desired -
// current. Tags present in both sides appear in neither list, so their usage
// counters never move no matter how often the same set is submitted.
func ComputeDelta(current, desired []string) Delta {
	oldSet := toSet(current)
	newSet := toSet(desired)

	d := Delta{
		Desired:  sortedKeys(newSet),
		ToAdd:    []string{},
		ToRemove: []string{},
	}
	for tagID := range newSet {
		if _, ok := oldSet[tagID]; !ok {
			d.ToAdd = append(d.ToAdd, tagID)
		}
	}
	for tagID := range oldSet {
		if _, ok := newSet[tagID]; !ok {
			d.ToRemove = append(d.ToRemove, tagID)
		}
	}
	sort.Strings(d.ToAdd)
	sort.Strings(d.ToRemove)
	return d
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, v := range ids {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NormalizeText folds width variants (NFKC) and case, and collapses runs of
// whitespace into single spaces. "ＶＩＮＴＡＧＥ　Style" becomes "vintage style".
func NormalizeText(s string) string {
	// Casers are stateful; build one per call.
	s = cases.Lower(language.Und).String(norm.NFKC.String(s))
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// NormalizeCode turns free text into a tag or category code: normalized text
// with spaces replaced by hyphens.
func NormalizeCode(s string) string {
	return strings.ReplaceAll(NormalizeText(s), " ", "-")
}
