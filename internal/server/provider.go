package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"provider_map/internal/domain/entity"
	"provider_map/internal/domain/value"
	"provider_map/pkg/errcodes"
	"provider_map/pkg/httpx/reply"
	"provider_map/pkg/httpx/req"
	"provider_map/pkg/rest"
)

const providersLoaded = "Providers loaded successfully"

type providerService interface {
	ListProviders(ctx context.Context, criteria value.Criteria) (entity.Listing, error)
	GetProfile(ctx context.Context, slug string) (entity.ProviderProfile, error)
	SearchProviders(ctx context.Context, query value.SearchQuery) ([]entity.ProviderProfile, error)
}

type ProviderServer struct {
	providerService providerService
}

func NewProviderServer(providerService providerService) ProviderServer {
	return ProviderServer{
		providerService: providerService,
	}
}

type slugParams struct {
	Slug string `validate:"required,max=255"`
}

func (s ProviderServer) getProvidersMap(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	listing, err := s.providerService.ListProviders(ctx, value.ParseCriteria(r.URL.Query()))
	if err != nil {
		return fmt.Errorf("providerService.ListProviders: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Listing[entity.SnapshotEntry, entity.Facets]{
		Success: true,
		Message: providersLoaded,
		Data:    listing.Providers,
		Total:   listing.Total,
		Filters: listing.Filters,
	})

	return nil
}

func (s ProviderServer) getProvidersSearch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	profiles, err := s.providerService.SearchProviders(ctx, value.ParseSearchQuery(r.URL.Query()))
	if err != nil {
		return fmt.Errorf("providerService.SearchProviders: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Collection[entity.ProviderProfile]{
		Success: true,
		Message: providersLoaded,
		Data:    profiles,
		Total:   len(profiles),
	})

	return nil
}

func (s ProviderServer) getProvider(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	params := slugParams{Slug: chi.URLParam(r, "slug")}
	if err := req.Validate(ctx, params, errcodes.InvalidSlug); err != nil {
		return fmt.Errorf("req.Validate: %w", err)
	}

	profile, err := s.providerService.GetProfile(ctx, params.Slug)
	if err != nil {
		return fmt.Errorf("providerService.GetProfile: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, rest.Item[entity.ProviderProfile]{
		Success: true,
		Data:    profile,
	})

	return nil
}
