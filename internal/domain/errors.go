package domain

import "errors"

var (
	// ErrSourceUnavailable is returned when the Snapklik API cannot be reached
	// or keeps answering with server errors.
	ErrSourceUnavailable = errors.New("snapklik source unavailable")

	// ErrSnapshotNotFound is returned when the HTML snapshot fallback file
	// does not exist.
	ErrSnapshotNotFound = errors.New("html snapshot not found")

	// ErrCacheMiss is returned when a catalog is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)
