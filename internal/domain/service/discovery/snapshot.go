package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"provider_map/internal/domain/entity"
	"provider_map/internal/domain/service/rating"
	"provider_map/pkg/logx"
)

// BuildSnapshot loads eligible providers and attaches their aggregate
// ratings. It has no side effects, so concurrent rebuilds are harmless.
func (s *Service) BuildSnapshot(ctx context.Context) ([]entity.SnapshotEntry, error) {
	start := time.Now()

	providers, err := s.providers.FetchEligible(ctx)
	if err != nil {
		return nil, fmt.Errorf("providers.FetchEligible: %w", err)
	}

	snapshot := make([]entity.SnapshotEntry, 0, len(providers))

	for _, p := range providers {
		if !p.Eligible() {
			continue
		}

		snapshot = append(snapshot, NewSnapshotEntry(p))
	}

	logger(ctx).Info("provider snapshot built",
		slog.Int(logx.FieldProviders, len(snapshot)),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	)

	return snapshot, nil
}

// NewSnapshotEntry normalizes a provider: list fields are never nil.
func NewSnapshotEntry(p entity.Provider) entity.SnapshotEntry {
	r := rating.Aggregate(p.Reviews)

	return entity.SnapshotEntry{
		ID:                    p.ID,
		FirstName:             p.FirstName,
		LastName:              p.LastName,
		NativeLanguage:        p.NativeLanguage,
		SpokenLanguages:       nonNil(p.SpokenLanguages),
		ServicesToOffer:       p.ServicesToOffer,
		ServicesCategory:      p.ServicesCategory,
		Address:               p.Address,
		OperationalCountries:  nonNil(p.OperationalCountries),
		CommunicationOnline:   p.CommunicationOnline,
		CommunicationInPerson: p.CommunicationInPerson,
		Description:           p.Description,
		Photo:                 p.Photo,
		PhoneNumber:           p.PhoneNumber,
		Country:               p.Country,
		SpecialStatus:         nonNil(p.SpecialStatus),
		Email:                 p.Email,
		Slug:                  p.Slug,
		AverageRating:         r.Average,
		ReviewsCount:          r.Count,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}

// WarmSnapshot makes sure the cache holds a snapshot and reports its size.
func (s *Service) WarmSnapshot(ctx context.Context) (int, error) {
	snapshot, err := s.cache.GetOrBuild(ctx, s.BuildSnapshot)
	if err != nil {
		return 0, fmt.Errorf("cache.GetOrBuild: %w", err)
	}

	return len(snapshot), nil
}
