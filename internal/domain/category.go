package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// PredefinedCategories is the fixed set of categories always offered as
// selection options, regardless of whether any item currently uses them.
var PredefinedCategories = []string{
	"Electronics", "Books", "Clothing", "Home", "Beauty", "Sports", "Toys", "Other",
}

// CategoryOther is a sentinel selection value that triggers creation of a new
// custom category in the presentation layer. It must never be stored as an
// item's category.
const CategoryOther = "Other"

// NormalizeCategory returns the comparison key for a category: surrounding
// whitespace trimmed, lower-cased. The key is used only for equality and set
// membership, never stored or displayed.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// DenormalizeCategory returns the canonical display form of a normalized
// category key: first character upper-cased, remainder unchanged.
func DenormalizeCategory(key string) string {
	if key == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(key)
	return string(unicode.ToUpper(r)) + key[size:]
}

// DisplayCategory canonicalizes an arbitrary category string into the form
// stored on items: normalize, then denormalize.
func DisplayCategory(category string) string {
	return DenormalizeCategory(NormalizeCategory(category))
}

// IsPredefinedCategory reports whether the category belongs to the fixed
// predefined set, matching on normalized keys.
func IsPredefinedCategory(category string) bool {
	key := NormalizeCategory(category)
	for _, p := range PredefinedCategories {
		if NormalizeCategory(p) == key {
			return true
		}
	}
	return false
}

// MergeCategories combines the predefined set with the given custom
// categories, deduplicated on normalized keys and denormalized back to
// display form. Predefined entries keep their order and come first; custom
// entries follow in insertion order.
func MergeCategories(custom []string) []string {
	seen := make(map[string]bool, len(PredefinedCategories)+len(custom))
	merged := make([]string, 0, len(PredefinedCategories)+len(custom))

	for _, c := range append(append([]string{}, PredefinedCategories...), custom...) {
		key := NormalizeCategory(c)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, DenormalizeCategory(key))
	}

	return merged
}
