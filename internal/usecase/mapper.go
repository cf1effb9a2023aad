package usecase

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/skinsift/backend/internal/domain"
)

// productURLFormat builds the public product page from slug and product ID.
const productURLFormat = "https://snapklik.com/en-gb/product/%s/%s"

// sizeInNamePattern matches quantities like "50ml", "1.7 fl oz", "2 pack"
// inside a product name, used when the option map has no size entry.
var sizeInNamePattern = regexp.MustCompile(`(?i)\b\d+\.?\d*\s*(ml|g|oz|fl\s?oz|count|pack)\b`)

// skinConcernVocabulary is the fixed set of concern labels scanned for in
// category text.
var skinConcernVocabulary = []string{
	"acne", "dark spots", "hyperpigmentation", "wrinkle", "dryness",
	"sensitivity", "blemish", "pore", "anti-aging", "hydrating",
}

// ingredientFallbackExclusions are category labels dropped when falling
// back to raw categories for the Ingredients field.
var ingredientFallbackExclusions = map[string]bool{
	"beauty & personal care": true,
	"skin care":              true,
	"face":                   true,
	"body":                   true,
	"eyes":                   true,
}

// MapProduct flattens one raw Snapklik record into a FlatProduct. It never
// fails: every extraction defaults to empty text (or an absent Amount) when
// the field is missing or wrongly typed.
func MapProduct(raw domain.RawProduct) domain.FlatProduct {
	p := domain.FlatProduct{
		Name:        stringField(raw, "text", "name"),
		Brand:       stringField(raw, "brand"),
		Description: stringField(raw, "description"),
		Price:       amountField(raw, "price"),
		ListPrice:   amountField(raw, "listPrice"),
		Score:       amountField(raw, "score"),
		Images:      stringField(raw, "image", "images"),
		ProductID:   stringField(raw, "skid", "id"),
		Badge:       stringField(raw, "badge"),
		RankName:    stringField(raw, "rankName"),
		ProductLine: stringField(raw, "line"),
		Barcode:     stringField(raw, "barcode"),
	}

	slug := stringField(raw, "slug")
	if slug != "" && p.ProductID != "" {
		p.SourceURL = fmt.Sprintf(productURLFormat, slug, p.ProductID)
	}

	categories := resolveCategories(raw)
	p.Ingredients = strings.Join(ingredientCandidates(categories), " | ")
	p.SizeVolume = sizeVolume(raw, p.Name)
	p.SkinConcern = strings.Join(skinConcerns(categories), " | ")

	return p
}

// MapBatch flattens a whole batch. A single unusable record is skipped so
// it cannot abort the run.
func MapBatch(raws []domain.RawProduct) []domain.FlatProduct {
	products := make([]domain.FlatProduct, 0, len(raws))
	for _, raw := range raws {
		if len(raw) == 0 {
			continue
		}
		products = append(products, MapProduct(raw))
	}
	return products
}

// stringField returns the first key holding a string, preferring earlier
// keys. A present-but-empty string still wins over later keys.
func stringField(raw domain.RawProduct, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}

// amountField extracts an optional numeric field, tolerating the numeric
// encodings seen in API responses and salvaged HTML fragments.
func amountField(raw domain.RawProduct, keys ...string) domain.Amount {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			return domain.NewAmount(n)
		case int:
			return domain.NewAmount(float64(n))
		case int64:
			return domain.NewAmount(float64(n))
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return domain.NewAmount(f)
			}
		case string:
			if f, err := strconv.ParseFloat(n, 64); err == nil {
				return domain.NewAmount(f)
			}
		}
	}
	return domain.Amount{}
}

// resolveCategories normalizes the raw categories field into a string list.
// Order of preference: native list, JSON list encoded in a string, the
// string itself as a single-element list, then any other field whose key
// mentions "categories".
func resolveCategories(raw domain.RawProduct) []string {
	switch v := raw["categories"].(type) {
	case []string:
		return v
	case []any:
		return stringList(v)
	case string:
		return parseCategoryString(v)
	}

	// Nothing usable under the canonical key; scan the rest of the record.
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !strings.Contains(strings.ToLower(key), "categories") {
			continue
		}
		if s, ok := raw[key].(string); ok {
			return parseCategoryString(s)
		}
	}
	return nil
}

// parseCategoryString decodes a JSON-encoded category list, treating an
// undecodable string as a single category.
func parseCategoryString(s string) []string {
	var list []string
	if err := json.Unmarshal([]byte(s), &list); err == nil {
		return list
	}
	return []string{s}
}

func stringList(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ingredientCandidates runs the extractor over the categories and applies
// the fallback chain: extracted candidates, then categories minus generic
// labels, then the unfiltered categories.
func ingredientCandidates(categories []string) []string {
	candidates := ExtractCandidates(categories)
	if len(candidates) > 0 {
		return candidates
	}

	specific := make([]string, 0, len(categories))
	for _, cat := range categories {
		if cat != "" && !ingredientFallbackExclusions[strings.ToLower(cat)] {
			specific = append(specific, cat)
		}
	}
	if len(specific) > 0 {
		return specific
	}
	return categories
}

// sizeVolume looks for size information in the option map first, then falls
// back to a quantity pattern in the product name. Option keys are visited
// in sorted order so the first match is deterministic.
func sizeVolume(raw domain.RawProduct, name string) string {
	options, ok := raw["OptionMap"].(map[string]any)
	if !ok {
		options, _ = raw["options"].(map[string]any)
	}

	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		value := fmt.Sprint(options[key])
		if strings.Contains(strings.ToLower(key), "size") ||
			strings.Contains(strings.ToLower(value), "size") {
			return value
		}
	}

	return sizeInNamePattern.FindString(name)
}

// skinConcerns scans every category for known concern labels. Duplicates
// across categories are preserved.
func skinConcerns(categories []string) []string {
	var concerns []string
	for _, category := range categories {
		lower := strings.ToLower(category)
		for _, concern := range skinConcernVocabulary {
			if strings.Contains(lower, concern) {
				concerns = append(concerns, concern)
			}
		}
	}
	return concerns
}
