package discovery

import (
	"context"
	"fmt"

	"provider_map/internal/domain/entity"
	"provider_map/internal/domain/service/filter"
	"provider_map/internal/domain/value"
	"provider_map/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type ProviderRepository interface {
	FetchEligible(ctx context.Context) ([]entity.Provider, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Provider, error)
	SearchByCategory(ctx context.Context, query value.SearchQuery) ([]entity.Provider, error)
}

type CategoryRepository interface {
	Roots(ctx context.Context) ([]entity.Category, error)
	Children(ctx context.Context, parentID int64) ([]entity.Category, error)
}

type SnapshotCache interface {
	GetOrBuild(
		ctx context.Context,
		build func(context.Context) ([]entity.SnapshotEntry, error),
	) ([]entity.SnapshotEntry, error)
}

type CategoryResolver interface {
	ResolveEach(ctx context.Context, raws []string) ([]string, error)
}

type FacetSummarizer interface {
	Summarize(ctx context.Context, snapshot []entity.SnapshotEntry) (entity.Facets, error)
}

// Service composes the discovery pipeline: snapshot, filters, category names
// and facets.
type Service struct {
	providers  ProviderRepository
	categories CategoryRepository
	cache      SnapshotCache
	resolver   CategoryResolver
	summarizer FacetSummarizer
}

func NewService(
	providers ProviderRepository,
	categories CategoryRepository,
	cache SnapshotCache,
	resolver CategoryResolver,
	summarizer FacetSummarizer,
) *Service {
	return &Service{
		providers:  providers,
		categories: categories,
		cache:      cache,
		resolver:   resolver,
		summarizer: summarizer,
	}
}

// ListProviders answers one map request. Steps run strictly in sequence and
// the first error aborts the request.
func (s *Service) ListProviders(ctx context.Context, criteria value.Criteria) (entity.Listing, error) {
	snapshot, err := s.cache.GetOrBuild(ctx, s.BuildSnapshot)
	if err != nil {
		return entity.Listing{}, fmt.Errorf("cache.GetOrBuild: %w", err)
	}

	filtered := filter.Apply(snapshot, criteria)

	if err = s.resolveCategories(ctx, filtered); err != nil {
		return entity.Listing{}, err
	}

	facets, err := s.summarizer.Summarize(ctx, snapshot)
	if err != nil {
		return entity.Listing{}, fmt.Errorf("summarizer.Summarize: %w", err)
	}

	return entity.Listing{
		Providers: filtered,
		Total:     len(filtered),
		Filters:   facets,
	}, nil
}

// resolveCategories rewrites the category field in place. entries must not
// alias the cached snapshot.
func (s *Service) resolveCategories(ctx context.Context, entries []entity.SnapshotEntry) error {
	raws := make([]string, len(entries))
	for i, e := range entries {
		raws[i] = e.ServicesCategory
	}

	names, err := s.resolver.ResolveEach(ctx, raws)
	if err != nil {
		return fmt.Errorf("resolver.ResolveEach: %w", err)
	}

	for i := range entries {
		entries[i].ServicesCategory = names[i]
	}

	return nil
}
