package facet

import (
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"provider_map/internal/domain/entity"
)

type categoryResolver interface {
	ResolveAll(ctx context.Context, raws []string) ([]string, error)
}

type Summarizer struct {
	resolver categoryResolver
}

func NewSummarizer(resolver categoryResolver) *Summarizer {
	return &Summarizer{resolver: resolver}
}

// Summarize derives the distinct, sorted filter values of a snapshot. Callers
// pass the unfiltered snapshot so the UI always sees the full facet space.
func (s *Summarizer) Summarize(ctx context.Context, snapshot []entity.SnapshotEntry) (entity.Facets, error) {
	countries := lo.Map(snapshot, func(e entity.SnapshotEntry, _ int) string { return e.Country })

	languages := lo.FlatMap(snapshot, func(e entity.SnapshotEntry, _ int) []string { return e.SpokenLanguages })

	rawCategories := distinctSorted(lo.Map(snapshot, func(e entity.SnapshotEntry, _ int) string {
		return e.ServicesCategory
	}))

	categories, err := s.resolver.ResolveAll(ctx, rawCategories)
	if err != nil {
		return entity.Facets{}, fmt.Errorf("resolver.ResolveAll: %w", err)
	}

	return entity.Facets{
		Countries:  distinctSorted(countries),
		Categories: distinctSorted(categories),
		Languages:  distinctSorted(languages),
	}, nil
}

func distinctSorted(values []string) []string {
	result := lo.Uniq(lo.Compact(values))
	slices.Sort(result)

	return result
}
