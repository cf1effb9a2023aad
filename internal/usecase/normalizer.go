package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for ingredient cleanup
var (
	// Matches parenthesized suffixes like "Aqua (Water)"
	parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)`)

	// Matches a trailing asterisk and everything after it, e.g. "Glycerin* organic"
	asteriskPattern = regexp.MustCompile(`\s*\*.*`)

	// Matches percentage concentrations like "Glycerin 3%"
	percentPattern = regexp.MustCompile(`\s*\d+%`)

	// Matches volume/weight quantities like "30ml", "1.5 oz", "50 g"
	quantityPattern = regexp.MustCompile(`(?i)\s*\d+\.?\d*\s*(ml|g|oz)`)
)

// ingredientSynonyms collapses common spellings to one canonical display
// form. Matching is substring containment over the lower-cased cleaned
// value, first entry wins, so any text containing "glycolic" anywhere
// collapses to "Glycolic Acid". That looseness is intentional: the
// vocabulary is a heuristic proxy, not an INCI parser.
var ingredientSynonyms = []struct {
	match     string
	canonical string
}{
	{"vitamin c", "Ascorbic Acid"},
	{"ascorbic acid", "Ascorbic Acid"},
	{"hyaluronic", "Hyaluronic Acid"},
	{"hyaluronic acid", "Hyaluronic Acid"},
	{"niacinamide", "Niacinamide"},
	{"salicylic", "Salicylic Acid"},
	{"glycolic", "Glycolic Acid"},
	{"lactic", "Lactic Acid"},
	{"retinol", "Retinol"},
	{"vitamin e", "Tocopherol"},
	{"tocopherol", "Tocopherol"},
}

// NormalizeIngredient canonicalizes a raw ingredient-like string.
// It strips parenthesized segments, asterisk annotations, percentage
// concentrations and volume quantities, then applies the synonym table.
// Always returns a string; the result may be empty after stripping.
func NormalizeIngredient(raw string) string {
	cleaned := parentheticalPattern.ReplaceAllString(raw, "")
	cleaned = asteriskPattern.ReplaceAllString(cleaned, "")
	cleaned = percentPattern.ReplaceAllString(cleaned, "")
	cleaned = quantityPattern.ReplaceAllString(cleaned, "")

	lower := strings.ToLower(strings.TrimSpace(cleaned))
	for _, syn := range ingredientSynonyms {
		if strings.Contains(lower, syn.match) {
			return syn.canonical
		}
	}

	return strings.TrimSpace(cleaned)
}
