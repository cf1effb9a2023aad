package usecase

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// ingredientKeywords is the fixed vocabulary of ingredient tokens scanned
// for in category text. Kept as data so the vocabulary can grow without
// touching the extraction logic.
var ingredientKeywords = []string{
	// Acids and actives
	"glycolic", "salicylic", "hyaluronic", "niacinamide", "retinol", "vitamin c",
	"lactic", "mandelic", "azelaic", "kojic", "ferulic", "ascorbic",
	// Botanicals and extracts
	"aloe", "snail", "witch hazel", "green tea", "chamomile", "calendula",
	"rosehip", "jojoba", "argan", "coconut", "shea", "cucumber",
	// Other actives
	"ceramide", "peptide", "collagen", "caffeine", "zinc", "copper",
	"squalane", "tocopherol", "retinoid",
}

// productTypeIndicators maps product-type keywords to the ingredient-like
// description emitted when the keyword appears in category text.
var productTypeIndicators = []struct {
	keyword     string
	description string
}{
	{"serum", "treatment serum"},
	{"toner", "facial toner"},
	{"cleanser", "facial cleanser"},
	{"moisturizer", "face moisturizer"},
	{"mask", "face mask"},
	{"scrub", "exfoliating scrub"},
	{"oil", "facial oil"},
	{"essence", "skin essence"},
}

// genericCategories are category labels too broad to count as a candidate
// on their own.
var genericCategories = map[string]bool{
	"skin care":              true,
	"face":                   true,
	"body":                   true,
	"beauty & personal care": true,
}

// ExtractCandidates derives candidate ingredient/category tokens from a
// product's raw category list. Actual ingredients are not available in
// the upstream data, so this is a heuristic: keyword hits in the joined
// category text, product-type descriptions, and the last (most specific)
// category when it is not a generic label. Duplicates are allowed here;
// the grouping engine deduplicates per product.
func ExtractCandidates(categories []string) []string {
	categoryText := strings.ToLower(strings.Join(categories, " "))

	var candidates []string

	for _, keyword := range ingredientKeywords {
		if strings.Contains(categoryText, keyword) {
			candidates = append(candidates, titleCaser.String(keyword))
		}
	}

	for _, indicator := range productTypeIndicators {
		if strings.Contains(categoryText, indicator.keyword) {
			candidates = append(candidates, indicator.description)
		}
	}

	if len(categories) > 0 {
		last := categories[len(categories)-1]
		if !genericCategories[strings.ToLower(last)] {
			candidates = append(candidates, last)
		}
	}

	return candidates
}
