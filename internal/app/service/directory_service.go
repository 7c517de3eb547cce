// Package service provides application use cases.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"contractor-directory/internal/domain"
)

// DirectoryService is the query façade over the external contractor
// source. It maps application filters to the subset the source supports,
// transforms results and applies the optional distance annotation step.
type DirectoryService struct {
	source    domain.ContractorSource
	annotator domain.DistanceAnnotator
	cache     domain.Cache // nil when caching is disabled
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewDirectoryService creates a new DirectoryService. cache may be nil,
// in which case every search hits the source directly.
func NewDirectoryService(
	source domain.ContractorSource,
	annotator domain.DistanceAnnotator,
	cache domain.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DirectoryService {
	return &DirectoryService{
		source:    source,
		annotator: annotator,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Search fetches one page of contractors matching the filters.
//
// Only the first selected service is forwarded upstream: the CMS
// taxonomy filters a single term per request. Zip and certifications
// are never forwarded; zip drives local distance annotation only.
// An annotation failure is logged and swallowed, a fetch failure
// propagates with no partial result.
func (s *DirectoryService) Search(ctx context.Context, filters domain.ContractorFilters, page, pageSize int) (*domain.ContractorPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}

	query := domain.SourceQuery{
		Page:    page,
		PerPage: pageSize,
	}
	if len(filters.Services) > 0 {
		query.ServiceType = filters.Services[0]
	}
	if filters.StateServed != "" {
		query.Location = filters.StateServed
	}

	s.logger.Debug("searching contractors",
		zap.String("service_type", query.ServiceType),
		zap.String("location", query.Location),
		zap.String("zip", filters.Zip),
		zap.Int("page", page),
		zap.Int("page_size", pageSize),
	)

	src, err := s.fetchPage(ctx, query)
	if err != nil {
		s.logger.Error("contractor search failed", zap.Error(err))

		return nil, fmt.Errorf("searching contractors: %w", err)
	}

	contractors := src.Contractors
	if filters.Zip != "" {
		annotated, err := s.annotator.Annotate(ctx, contractors, filters.Zip)
		if err != nil {
			// A search never fails because the optional distance step did.
			s.logger.Warn("distance annotation failed",
				zap.String("zip", filters.Zip),
				zap.Error(err),
			)
		} else {
			contractors = annotated
		}
	}

	return &domain.ContractorPage{
		Contractors: contractors,
		TotalPages:  src.TotalPages,
		CurrentPage: src.Page,
	}, nil
}

// InitialPage returns the payload served on first render. The directory
// defers all data loading to the first client-driven search.
func (s *DirectoryService) InitialPage() *domain.ContractorPage {
	return domain.EmptyPage()
}

// GetByID retrieves a single contractor by its source id.
func (s *DirectoryService) GetByID(ctx context.Context, id string) (*domain.Contractor, error) {
	contractor, err := s.source.FetchByID(ctx, id)
	if err != nil {
		s.logger.Error("get contractor failed", zap.String("id", id), zap.Error(err))

		return nil, fmt.Errorf("getting contractor %s: %w", id, err)
	}

	return contractor, nil
}

// GetByName searches by name and returns the first hit, or nil when
// nothing matches.
func (s *DirectoryService) GetByName(ctx context.Context, name string) (*domain.Contractor, error) {
	src, err := s.source.FetchPage(ctx, domain.SourceQuery{Search: name, Page: 1, PerPage: domain.DefaultPageSize})
	if err != nil {
		return nil, fmt.Errorf("getting contractor by name: %w", err)
	}
	if len(src.Contractors) == 0 {
		return nil, nil
	}

	return src.Contractors[0], nil
}

// ServiceTypes returns the service taxonomy terms for the filter dropdown.
func (s *DirectoryService) ServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	types, err := s.source.FetchServiceTypes(ctx)
	if err != nil {
		s.logger.Error("service types fetch failed", zap.Error(err))

		return nil, fmt.Errorf("listing service types: %w", err)
	}

	return types, nil
}

// Warm primes the cache with the first unfiltered directory page.
// Returns the number of contractors fetched. No-op when caching is
// disabled.
func (s *DirectoryService) Warm(ctx context.Context) (int, error) {
	if s.cache == nil {
		return 0, nil
	}

	query := domain.SourceQuery{Page: 1, PerPage: domain.DefaultPageSize}
	if err := s.cache.Delete(ctx, cacheKey(query)); err != nil {
		s.logger.Warn("cache warm invalidation failed", zap.Error(err))
	}

	src, err := s.fetchPage(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("warming directory cache: %w", err)
	}

	return len(src.Contractors), nil
}

// PurgeCache drops all cached search pages. No-op when caching is
// disabled.
func (s *DirectoryService) PurgeCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}

	return s.cache.Clear(ctx)
}

// HealthCheck verifies the upstream source is reachable.
func (s *DirectoryService) HealthCheck(ctx context.Context) error {
	return s.source.HealthCheck(ctx)
}

// fetchPage reads through the cache when one is configured. Cache
// failures degrade to a direct fetch, never to a request failure.
func (s *DirectoryService) fetchPage(ctx context.Context, query domain.SourceQuery) (*domain.SourcePage, error) {
	if s.cache == nil {
		return s.source.FetchPage(ctx, query)
	}

	key := cacheKey(query)
	if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
		var page domain.SourcePage
		if err := json.Unmarshal(data, &page); err == nil {
			s.logger.Debug("search cache hit", zap.String("key", key))

			return &page, nil
		}
	}

	page, err := s.source.FetchPage(ctx, query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(page); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.Warn("search cache set failed", zap.String("key", key), zap.Error(err))
		}
	}

	return page, nil
}

// cacheKey derives a stable cache key from the source query.
func cacheKey(q domain.SourceQuery) string {
	return fmt.Sprintf("search:%s:%s:%s:%d:%d", q.Search, q.ServiceType, q.Location, q.Page, q.PerPage)
}
