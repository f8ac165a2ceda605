package filter

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"provider_map/internal/domain/entity"
	"provider_map/internal/domain/value"
)

type predicate func(entity.SnapshotEntry) bool

// Apply returns the entries matching every active criterion, in snapshot
// order. The snapshot itself is left untouched.
func Apply(snapshot []entity.SnapshotEntry, c value.Criteria) []entity.SnapshotEntry {
	predicates := build(c)

	return lo.Filter(snapshot, func(entry entity.SnapshotEntry, _ int) bool {
		return lo.EveryBy(predicates, func(p predicate) bool { return p(entry) })
	})
}

func build(c value.Criteria) []predicate {
	var predicates []predicate

	if c.Country != "" {
		predicates = append(predicates, func(e entity.SnapshotEntry) bool {
			return e.Country == c.Country
		})
	}

	if c.City != "" {
		city := strings.ToLower(c.City)

		predicates = append(predicates, func(e entity.SnapshotEntry) bool {
			return strings.Contains(strings.ToLower(e.Address), city)
		})
	}

	if c.Category != "" {
		predicates = append(predicates, func(e entity.SnapshotEntry) bool {
			return e.ServicesCategory == c.Category
		})
	}

	if c.Language != "" {
		predicates = append(predicates, func(e entity.SnapshotEntry) bool {
			return slices.Contains(e.SpokenLanguages, c.Language)
		})
	}

	if c.MinRating.Set {
		predicates = append(predicates, func(e entity.SnapshotEntry) bool {
			return c.MinRating.Admits(float64(e.AverageRating))
		})
	}

	if c.VerifiedOnly {
		predicates = append(predicates, entity.SnapshotEntry.Verified)
	}

	return predicates
}
