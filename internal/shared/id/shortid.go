package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for the random part of an ID
	DefaultLength = 12
)

// Stripe-style prefixes per entity.
const (
	PrefixPlan              = "plan"
	PrefixTag               = "tag"
	PrefixTagCategory       = "tcat"
	PrefixMerchant          = "mer"
	PrefixMerchantComponent = "mcmp"
	PrefixTemplate          = "tmpl"
)

// Generate creates a cryptographically random Base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))
	for i := range result {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}
	return string(result), nil
}

// GenerateWithPrefix creates an ID in the form "prefix_randomstring".
func GenerateWithPrefix(prefix string) (string, error) {
	short, err := Generate(DefaultLength)
	if err != nil {
		return "", err
	}
	return prefix + "_" + short, nil
}

// MustGenerateWithPrefix panics when the system random source fails.
func MustGenerateWithPrefix(prefix string) string {
	id, err := GenerateWithPrefix(prefix)
	if err != nil {
		panic(err)
	}
	return id
}

// ParsePrefixedID splits "plan_xK9mP2vL3nQ" into ("plan", "xK9mP2vL3nQ").
func ParsePrefixedID(prefixedID string) (prefix, shortID string, err error) {
	parts := strings.SplitN(prefixedID, "_", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid prefixed ID format: %s", prefixedID)
	}
	return parts[0], parts[1], nil
}

// ValidatePrefix checks if the prefixed ID has the expected prefix.
func ValidatePrefix(prefixedID, expectedPrefix string) error {
	prefix, _, err := ParsePrefixedID(prefixedID)
	if err != nil {
		return err
	}
	if prefix != expectedPrefix {
		return fmt.Errorf("invalid prefix: expected %s, got %s", expectedPrefix, prefix)
	}
	return nil
}

func NewPlanID() string              { return MustGenerateWithPrefix(PrefixPlan) }
func NewTagID() string               { return MustGenerateWithPrefix(PrefixTag) }
func NewTagCategoryID() string       { return MustGenerateWithPrefix(PrefixTagCategory) }
func NewMerchantID() string          { return MustGenerateWithPrefix(PrefixMerchant) }
func NewMerchantComponentID() string { return MustGenerateWithPrefix(PrefixMerchantComponent) }
func NewTemplateID() string          { return MustGenerateWithPrefix(PrefixTemplate) }
