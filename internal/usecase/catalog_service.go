package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/skinsift/backend/internal/domain"
)

// Package-level compiled regex patterns for cache key normalization
var (
	nonAlphanumericPattern = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesPattern  = regexp.MustCompile(`\s+`)
)

// CatalogServiceConfig holds configuration for the catalog service.
type CatalogServiceConfig struct {
	SearchTerm string
	CacheTTL   time.Duration
}

// CatalogService runs the full pipeline (fetch, map, group) and caches the
// materialized result so the HTTP API does not hit Snapklik on every request.
type CatalogService struct {
	source     domain.CatalogSource
	cache      domain.CacheRepository
	grouping   *GroupingService
	searchTerm string
	cacheTTL   time.Duration
}

// NewCatalogService creates a catalog service with dependencies.
func NewCatalogService(
	source domain.CatalogSource,
	cache domain.CacheRepository,
	grouping *GroupingService,
	config CatalogServiceConfig,
) *CatalogService {
	term := config.SearchTerm
	if term == "" {
		term = "skin care"
	}

	ttl := config.CacheTTL
	if ttl == 0 {
		ttl = time.Hour
	}

	return &CatalogService{
		source:     source,
		cache:      cache,
		grouping:   grouping,
		searchTerm: term,
		cacheTTL:   ttl,
	}
}

// Snapshot returns the current catalog, running the pipeline on a cache
// miss. An empty batch is a valid degenerate result: the catalog simply
// has no products and no groups.
func (s *CatalogService) Snapshot(ctx context.Context) (*domain.Catalog, error) {
	key := s.cacheKey()

	if cached, err := s.cache.Get(ctx, key); err == nil {
		if catalog, ok := cached.(*domain.Catalog); ok {
			return catalog, nil
		}
	}

	raws, err := s.source.FetchAll(ctx, s.searchTerm)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	catalog := s.build(raws)

	if err := s.cache.Set(ctx, key, catalog, s.cacheTTL); err != nil {
		log.Printf("[catalog] cache store failed: %v", err)
	}

	return catalog, nil
}

// Refresh drops the cached catalog and runs the pipeline again.
func (s *CatalogService) Refresh(ctx context.Context) (*domain.Catalog, error) {
	if err := s.cache.Delete(ctx, s.cacheKey()); err != nil {
		log.Printf("[catalog] cache invalidation failed: %v", err)
	}
	return s.Snapshot(ctx)
}

// build maps the raw batch and groups the result.
func (s *CatalogService) build(raws []domain.RawProduct) *domain.Catalog {
	products := MapBatch(raws)
	return &domain.Catalog{
		Products:  products,
		Groups:    s.grouping.Rows(products),
		FetchedAt: time.Now(),
	}
}

// cacheKey derives the cache key from the normalized search term.
// Format: "catalog:{normalized_term}"
func (s *CatalogService) cacheKey() string {
	return "catalog:" + normalizeForCacheKey(s.searchTerm)
}

// normalizeForCacheKey lowercases, strips special characters and collapses
// whitespace.
func normalizeForCacheKey(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumericPattern.ReplaceAllString(result, "")
	result = multipleSpacesPattern.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
