package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"

	"provider_map/internal/domain/value"
	"provider_map/pkg/contextx"
	"provider_map/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const nameSeparator = ", "

type NameLookup interface {
	// NamesByIDs returns the names of the ids that exist; missing ids are
	// simply absent from the map.
	NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error)
}

// Resolver turns raw category column values into category names. Ids with
// no category are skipped, so the result may hold fewer names than ids.
type Resolver struct {
	lookup NameLookup
}

func NewResolver(lookup NameLookup) *Resolver {
	return &Resolver{lookup: lookup}
}

// ResolveNames returns the names for one raw value joined with ", ".
func (r *Resolver) ResolveNames(ctx context.Context, raw string) (string, error) {
	joined, err := r.ResolveEach(ctx, []string{raw})
	if err != nil {
		return "", err
	}

	return joined[0], nil
}

// ResolveEach resolves several raw values with a single lookup and returns
// one joined name string per input value.
func (r *Resolver) ResolveEach(ctx context.Context, raws []string) ([]string, error) {
	refs := r.parse(ctx, raws)

	names, err := r.names(ctx, refs)
	if err != nil {
		return nil, err
	}

	result := make([]string, len(raws))

	for i, ref := range refs {
		result[i] = strings.Join(pick(ref.Flatten(), names), nameSeparator)
	}

	return result, nil
}

// ResolveAll returns every resolvable name of every raw value, in input order.
func (r *Resolver) ResolveAll(ctx context.Context, raws []string) ([]string, error) {
	group := value.Group(r.parse(ctx, raws)...)

	names, err := r.names(ctx, group.Refs())
	if err != nil {
		return nil, err
	}

	return pick(group.Flatten(), names), nil
}

// parse keeps one ref per input; undecodable values become empty groups.
func (r *Resolver) parse(ctx context.Context, raws []string) []value.CategoryRef {
	refs := make([]value.CategoryRef, len(raws))

	for i, raw := range raws {
		ref, err := value.ParseCategoryRef(raw)
		if err != nil {
			logger(ctx).Debug("undecodable category value", slog.String("raw", raw), logx.Error(err))

			ref = value.Group()
		}

		refs[i] = ref
	}

	return refs
}

func (r *Resolver) names(ctx context.Context, refs []value.CategoryRef) (map[int64]string, error) {
	ids := value.Group(refs...).Flatten()
	if len(ids) == 0 {
		return map[int64]string{}, nil
	}

	names, err := r.lookup.NamesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup.NamesByIDs: %w", err)
	}

	return names, nil
}

func pick(ids []int64, names map[int64]string) []string {
	return lo.FilterMap(ids, func(id int64, _ int) (string, bool) {
		name, ok := names[id]
		return name, ok && name != ""
	})
}
