package usecase

import (
	"log"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/skinsift/backend/internal/domain"
)

// ingredientSplitPattern splits an Ingredients field on the separators the
// upstream data uses: comma, newline and pipe.
var ingredientSplitPattern = regexp.MustCompile(`[,\n|]`)

// minIngredientLength is the minimum rune length for a normalized token to
// count as an ingredient; shorter fragments are separator noise.
const minIngredientLength = 3

// defaultTopN caps each ingredient group at the three highest-scoring
// products.
const defaultTopN = 3

// GroupingConfig holds configuration for the grouping service.
type GroupingConfig struct {
	TopN               int
	EnableDebugLogging bool
}

// GroupingService builds the ingredient → top-N-products index from a full
// product batch. It is a pure batch computation: each call starts from an
// empty index and nothing is shared between calls.
type GroupingService struct {
	topN               int
	enableDebugLogging bool
}

// NewGroupingService creates a grouping service with the given configuration.
func NewGroupingService(config GroupingConfig) *GroupingService {
	topN := config.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	return &GroupingService{
		topN:               topN,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Group maps each canonical ingredient to its products ranked by relevance,
// truncated to the top N. Keys are lower-cased canonical names.
func (s *GroupingService) Group(products []domain.FlatProduct) map[string][]domain.RankedProduct {
	groups, order := s.buildGroups(products)

	result := make(map[string][]domain.RankedProduct, len(groups))
	for _, key := range order {
		result[key] = s.rank(groups[key])
	}
	return result
}

// Rows flattens the grouped index into output rows, one per
// (ingredient, rank) pair. Groups appear in first-encounter order and the
// group label is title-cased.
func (s *GroupingService) Rows(products []domain.FlatProduct) []domain.GroupRow {
	groups, order := s.buildGroups(products)

	var rows []domain.GroupRow
	for _, key := range order {
		for i, entry := range s.rank(groups[key]) {
			rows = append(rows, domain.GroupRow{
				KeyIngredient: titleCaser.String(key),
				Rank:          i + 1,
				ProductName:   entry.Product.Name,
				Brand:         entry.Product.Brand,
				PriceUSD:      entry.Product.Price.USD(),
				ProductScore:  entry.Relevance,
			})
		}
	}
	return rows
}

// TopGroupCounts returns the n largest ingredient groups by product count,
// counted before the top-N truncation. Used for run summaries.
func (s *GroupingService) TopGroupCounts(products []domain.FlatProduct, n int) []domain.GroupCount {
	groups, order := s.buildGroups(products)

	counts := make([]domain.GroupCount, 0, len(order))
	for _, key := range order {
		counts = append(counts, domain.GroupCount{
			Ingredient: titleCaser.String(key),
			Products:   len(groups[key]),
		})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Products > counts[j].Products
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// buildGroups walks the batch once, splitting and normalizing each product's
// ingredient tokens. A product joins a given group at most once no matter
// how often its own listing repeats the ingredient. The returned order slice
// preserves first-encounter order of the group keys.
func (s *GroupingService) buildGroups(products []domain.FlatProduct) (map[string][]domain.RankedProduct, []string) {
	groups := make(map[string][]domain.RankedProduct)
	var order []string

	for _, product := range products {
		if product.Ingredients == "" {
			continue
		}

		relevance := relevanceScore(product)
		seen := make(map[string]bool)

		for _, token := range ingredientSplitPattern.Split(product.Ingredients, -1) {
			normalized := NormalizeIngredient(token)
			if utf8.RuneCountInString(normalized) < minIngredientLength {
				continue
			}

			key := strings.ToLower(normalized)
			if seen[key] {
				continue
			}
			seen[key] = true

			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], domain.RankedProduct{
				Product:   product,
				Relevance: relevance,
			})
		}
	}

	if s.enableDebugLogging {
		log.Printf("[group] %d products -> %d ingredient groups", len(products), len(order))
	}

	return groups, order
}

// rank sorts a group by relevance, highest first, and keeps the top N.
// The sort is stable so ties keep their original batch order.
func (s *GroupingService) rank(entries []domain.RankedProduct) []domain.RankedProduct {
	ranked := make([]domain.RankedProduct, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Relevance > ranked[j].Relevance
	})

	if len(ranked) > s.topN {
		ranked = ranked[:s.topN]
	}
	return ranked
}

// relevanceScore is the character length of the product name plus the brand
// name: a crude proxy for how much information the listing carries.
func relevanceScore(p domain.FlatProduct) int {
	return utf8.RuneCountInString(p.Name) + utf8.RuneCountInString(p.Brand)
}
