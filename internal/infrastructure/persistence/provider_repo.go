package persistence

import (
	"context"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"provider_map/internal/domain"
	"provider_map/internal/domain/entity"
	"provider_map/internal/domain/value"
	"provider_map/pkg/contextx"
	"provider_map/pkg/errcodes"
	"provider_map/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

//nolint:gochecknoglobals
var providerColumns = []string{
	"sp.id",
	"sp.user_id",
	"sp.first_name",
	"sp.last_name",
	"sp.native_language",
	"sp.spoken_language",
	"sp.services_to_offer",
	"sp.services_to_offer_category",
	"sp.provider_address",
	"sp.operational_countries",
	"sp.communication_online",
	"sp.communication_inperson",
	"sp.profile_description",
	"sp.profile_photo",
	"sp.phone_number",
	"sp.country",
	"sp.special_status",
	"sp.email",
	"sp.slug",
	"sp.created_at",
	"sp.updated_at",
	"u.id AS owner_id",
	"u.name AS owner_name",
	"u.email AS owner_email",
}

// Snapshots only need the rating; profiles need the whole review.
//
//nolint:gochecknoglobals
var (
	ratingReviewColumns = []string{"id", "provider_id", "rating"}
	fullReviewColumns   = []string{"id", "provider_id", "user_id", "rating", "comment", "created_at"}
)

type ProviderRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func NewProviderRepository(db *sqlx.DB) *ProviderRepository {
	return &ProviderRepository{
		db: db,
		sb: statementBuilder(db),
	}
}

// FetchEligible returns every provider with a photo, a country and an
// address, ordered by id, with ratings attached.
func (r *ProviderRepository) FetchEligible(ctx context.Context) ([]entity.Provider, error) {
	query := r.selectProviders().
		Where(sq.NotEq{"sp.profile_photo": nil}).
		Where(sq.NotEq{"sp.profile_photo": ""}).
		Where(sq.NotEq{"sp.country": nil}).
		Where(sq.NotEq{"sp.country": ""}).
		Where(sq.NotEq{"sp.provider_address": nil}).
		Where(sq.NotEq{"sp.provider_address": ""}).
		OrderBy("sp.id ASC")

	providers, err := r.queryProviders(ctx, query)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to fetch providers")
	}

	if err = r.attachReviews(ctx, providers, ratingReviewColumns); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to fetch reviews")
	}

	logger(ctx).DebugContext(ctx, "eligible providers fetched", logx.FieldProviders, len(providers))

	return providers, nil
}

// GetBySlug returns one provider with its full reviews.
func (r *ProviderRepository) GetBySlug(ctx context.Context, slug string) (*entity.Provider, error) {
	query := r.selectProviders().
		Where(sq.Eq{"sp.slug": slug}).
		Limit(1)

	providers, err := r.queryProviders(ctx, query)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get provider")
	}

	if len(providers) == 0 {
		return nil, domain.NewError(errcodes.ProviderNotFound, "provider not found")
	}

	if err = r.attachReviews(ctx, providers, fullReviewColumns); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to fetch reviews")
	}

	return &providers[0], nil
}

// SearchByCategory narrows by spoken language in SQL and by category
// containment after decoding, since the category columns hold nested JSON.
func (r *ProviderRepository) SearchByCategory(
	ctx context.Context,
	search value.SearchQuery,
) ([]entity.Provider, error) {
	query := r.selectProviders().OrderBy("sp.id ASC")
	if search.Language != "" {
		query = query.Where(sq.Like{"sp.spoken_language": `%"` + search.Language + `"%`})
	}

	providers, err := r.queryProviders(ctx, query)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to search providers")
	}

	providers = slices.DeleteFunc(providers, func(p entity.Provider) bool {
		return !offers(p.ServicesToOffer, search.CategoryID) || !offers(p.ServicesCategory, search.SubcategoryID)
	})

	if err = r.attachReviews(ctx, providers, fullReviewColumns); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to fetch reviews")
	}

	return providers, nil
}

func (r *ProviderRepository) selectProviders() sq.SelectBuilder {
	return r.sb.Select(providerColumns...).
		From("service_providers sp").
		LeftJoin("users u ON u.id = sp.user_id")
}

func (r *ProviderRepository) queryProviders(ctx context.Context, query sq.SelectBuilder) ([]entity.Provider, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var schemas []providerSchema
	if err = r.db.SelectContext(ctx, &schemas, sqlStr, args...); err != nil {
		return nil, err
	}

	return lo.Map(schemas, func(s providerSchema, _ int) entity.Provider {
		return s.toDomain()
	}), nil
}

// attachReviews loads reviews for all providers in batched IN queries.
func (r *ProviderRepository) attachReviews(ctx context.Context, providers []entity.Provider, columns []string) error {
	if len(providers) == 0 {
		return nil
	}

	index := make(map[int64]int, len(providers))
	for i, p := range providers {
		index[p.ID] = i
	}

	ids := lo.Keys(index)
	slices.Sort(ids)

	for _, batch := range lo.Chunk(ids, idBatchSize) {
		sqlStr, args, err := r.sb.Select(columns...).
			From("provider_reviews").
			Where(sq.Eq{"provider_id": batch}).
			OrderBy("id ASC").
			ToSql()
		if err != nil {
			return err
		}

		var schemas []reviewSchema
		if err = r.db.SelectContext(ctx, &schemas, sqlStr, args...); err != nil {
			return err
		}

		for _, s := range schemas {
			i := index[s.ProviderID]
			providers[i].Reviews = append(providers[i].Reviews, s.toDomain())
		}
	}

	return nil
}

// offers reports whether the raw category column references id. A zero id
// is not a constraint.
func offers(raw string, id int64) bool {
	if id == 0 {
		return true
	}

	ref, err := value.ParseCategoryRef(raw)
	if err != nil {
		return false
	}

	return ref.Contains(id)
}
