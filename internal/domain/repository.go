package domain

import (
	"context"
	"time"
)

// CatalogSource is implemented by anything that can produce a batch of raw
// product records: the Snapklik search API or the saved HTML snapshot.
type CatalogSource interface {
	FetchAll(ctx context.Context, term string) ([]RawProduct, error)
}

// CacheRepository defines the interface for caching pipeline results.
type CacheRepository interface {
	Get(ctx context.Context, key string) (any, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
