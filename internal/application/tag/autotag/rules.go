// Package autotag classifies plans into tags by keyword rules.
package autotag

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kimono-rental/kimono/internal/domain/tag"
)

// Rule attaches the tag identified by Category and Tag codes to any plan
// whose name or description contains one of Keywords. Category may be empty
// when the tag code is unique across categories.
type Rule struct {
	Category string   `yaml:"category"`
	Tag      string   `yaml:"tag"`
	Keywords []string `yaml:"keywords"`
}

type RuleSet struct {
	Rules []Rule `yaml:"rules"`
}

func LoadRules(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer f.Close()
	return ParseRules(f)
}

// ParseRules decodes a YAML rule set and normalizes every code and keyword
// the same way plan text is normalized before matching.
func ParseRules(r io.Reader) (*RuleSet, error) {
	var rs RuleSet
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("failed to decode rules: %w", err)
	}

	for i := range rs.Rules {
		rule := &rs.Rules[i]
		rule.Category = tag.NormalizeCode(rule.Category)
		rule.Tag = tag.NormalizeCode(rule.Tag)
		if rule.Tag == "" {
			return nil, fmt.Errorf("rule %d: tag is required", i)
		}

		keywords := rule.Keywords[:0]
		for _, kw := range rule.Keywords {
			if n := tag.NormalizeText(kw); n != "" {
				keywords = append(keywords, n)
			}
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("rule %d (%s): at least one keyword is required", i, rule.Tag)
		}
		rule.Keywords = keywords
	}
	return &rs, nil
}
