package domain

import (
	"context"
	"time"
)

// SourceQuery is the filter subset the external content API understands.
type SourceQuery struct {
	Search      string // full-text search term
	ServiceType string // single taxonomy slug
	Location    string // contractor_location meta value
	Page        int    // 1-indexed
	PerPage     int    // records per page
}

// SourcePage is one page of transformed records plus the pagination
// metadata read from the source's response headers.
type SourcePage struct {
	Contractors []*Contractor
	TotalPages  int
	Total       int
	Page        int
}

// ContractorSource defines the interface to the external content API.
// Implementations: internal/infra/wordpress/client.go
type ContractorSource interface {
	// FetchPage retrieves one page of contractors matching the query.
	FetchPage(ctx context.Context, query SourceQuery) (*SourcePage, error)

	// FetchByID retrieves a single contractor by its source id.
	FetchByID(ctx context.Context, id string) (*Contractor, error)

	// FetchServiceTypes retrieves the service taxonomy terms.
	FetchServiceTypes(ctx context.Context) ([]ServiceType, error)

	// HealthCheck verifies the source is accessible.
	HealthCheck(ctx context.Context) error
}

// DistanceAnnotator attaches a distance value to each contractor relative
// to the given zip and orders the result ascending by distance. The
// shipped implementation is an identity pass-through; a geocoding-based
// implementation can be substituted without touching callers.
// Implementations: internal/distance/annotator.go
type DistanceAnnotator interface {
	// Annotate returns a sequence of the same cardinality. Callers filter
	// malformed zips before this stage runs.
	Annotate(ctx context.Context, contractors []*Contractor, zip string) ([]*Contractor, error)
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all cached values.
	Clear(ctx context.Context) error
}
