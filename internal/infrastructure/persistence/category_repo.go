package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"provider_map/internal/domain"
	"provider_map/internal/domain/entity"
	"provider_map/pkg/errcodes"
)

type CategoryRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{
		db: db,
		sb: statementBuilder(db),
	}
}

// NamesByIDs returns the names of the categories that exist among ids.
func (r *CategoryRepository) NamesByIDs(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	for _, batch := range lo.Chunk(lo.Uniq(ids), idBatchSize) {
		categories, err := r.list(ctx, sq.Eq{"id": batch})
		if err != nil {
			return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to fetch category names")
		}

		for _, c := range categories {
			names[c.ID] = c.Name
		}
	}

	return names, nil
}

func (r *CategoryRepository) Roots(ctx context.Context) ([]entity.Category, error) {
	categories, err := r.list(ctx, sq.Eq{"level": entity.RootCategoryLevel})
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to fetch categories")
	}

	return categories, nil
}

func (r *CategoryRepository) Children(ctx context.Context, parentID int64) ([]entity.Category, error) {
	categories, err := r.list(ctx, sq.Eq{"parent_id": parentID})
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to fetch subcategories")
	}

	return categories, nil
}

func (r *CategoryRepository) list(ctx context.Context, where sq.Sqlizer) ([]entity.Category, error) {
	sqlStr, args, err := r.sb.Select("id", "name", "parent_id", "level").
		From("categories").
		Where(where).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	var schemas []categorySchema
	if err = r.db.SelectContext(ctx, &schemas, sqlStr, args...); err != nil {
		return nil, err
	}

	return lo.Map(schemas, func(s categorySchema, _ int) entity.Category {
		return s.toDomain()
	}), nil
}
