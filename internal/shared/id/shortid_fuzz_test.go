package id

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func FuzzParsePrefixedID(f *testing.F) {
	seeds := []string{
		"plan_xK9mP2vL3nQ",
		"tag_abc123",
		"tcat_color",
		"",
		"nounderscore",
		"_leading",
		"trailing_",
		"multiple_under_scores",
		"着物_テスト",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		if !utf8.ValidString(input) {
			return
		}

		prefix, shortID, err := ParsePrefixedID(input)
		if !strings.Contains(input, "_") {
			if err == nil {
				t.Errorf("ParsePrefixedID(%q) should fail without underscore", input)
			}
			return
		}
		if err != nil {
			t.Fatalf("ParsePrefixedID(%q) unexpected error: %v", input, err)
		}
		if prefix+"_"+shortID != input {
			t.Errorf("ParsePrefixedID(%q) = (%q, %q) does not reassemble", input, prefix, shortID)
		}
	})
}

func FuzzGenerate(f *testing.F) {
	for _, l := range []int{0, 1, 5, 12, 40} {
		f.Add(l)
	}

	f.Fuzz(func(t *testing.T, length int) {
		if length > 256 {
			return
		}
		result, err := Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d) returned error: %v", length, err)
		}
		want := length
		if want <= 0 {
			want = DefaultLength
		}
		if len(result) != want {
			t.Errorf("Generate(%d) length = %d, want %d", length, len(result), want)
		}
		for _, c := range result {
			if !strings.ContainsRune(alphabet, c) {
				t.Errorf("Generate(%d) produced %q", length, c)
			}
		}
	})
}

func TestEntityIDs(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"plan", NewPlanID, PrefixPlan},
		{"tag", NewTagID, PrefixTag},
		{"category", NewTagCategoryID, PrefixTagCategory},
		{"merchant", NewMerchantID, PrefixMerchant},
		{"component", NewMerchantComponentID, PrefixMerchantComponent},
		{"template", NewTemplateID, PrefixTemplate},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.gen()
			require.NoError(t, ValidatePrefix(got, tc.prefix))
			assert.Len(t, got, len(tc.prefix)+1+DefaultLength)
		})
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		got := NewPlanID()
		_, dup := seen[got]
		require.False(t, dup, "duplicate id %s", got)
		seen[got] = struct{}{}
	}
}
