package discovery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"provider_map/internal/domain/entity"
	"provider_map/internal/domain/value"
	"provider_map/pkg/logx"
)

// GetProfile returns the provider published under slug.
func (s *Service) GetProfile(ctx context.Context, slug string) (entity.ProviderProfile, error) {
	provider, err := s.providers.GetBySlug(ctx, slug)
	if err != nil {
		return entity.ProviderProfile{}, fmt.Errorf("providers.GetBySlug: %w", err)
	}

	profiles, err := s.profiles(ctx, []entity.Provider{*provider})
	if err != nil {
		return entity.ProviderProfile{}, err
	}

	logger(ctx).Debug("provider profile loaded",
		slog.String(logx.FieldSlug, slug),
		slog.Int("reviews", len(provider.Reviews)),
	)

	return profiles[0], nil
}

// SearchProviders lists providers by category, sub-category and language.
func (s *Service) SearchProviders(ctx context.Context, query value.SearchQuery) ([]entity.ProviderProfile, error) {
	providers, err := s.providers.SearchByCategory(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("providers.SearchByCategory: %w", err)
	}

	return s.profiles(ctx, providers)
}

func (s *Service) RootCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categories.Roots(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories.Roots: %w", err)
	}

	return categories, nil
}

func (s *Service) Subcategories(ctx context.Context, parentID int64) ([]entity.Category, error) {
	categories, err := s.categories.Children(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("categories.Children: %w", err)
	}

	return categories, nil
}

func (s *Service) profiles(ctx context.Context, providers []entity.Provider) ([]entity.ProviderProfile, error) {
	entries := lo.Map(providers, func(p entity.Provider, _ int) entity.SnapshotEntry {
		return NewSnapshotEntry(p)
	})

	if err := s.resolveCategories(ctx, entries); err != nil {
		return nil, err
	}

	profiles := make([]entity.ProviderProfile, len(providers))

	for i, p := range providers {
		reviews := p.Reviews
		if reviews == nil {
			reviews = []entity.Review{}
		}

		profiles[i] = entity.ProviderProfile{
			SnapshotEntry: entries[i],
			User:          p.User,
			Reviews:       reviews,
		}
	}

	return profiles, nil
}
