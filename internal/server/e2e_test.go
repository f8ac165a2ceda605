package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"provider_map/internal/domain/entity"
	"provider_map/internal/domain/service/category"
	"provider_map/internal/domain/service/discovery"
	"provider_map/internal/domain/service/facet"
	"provider_map/internal/infrastructure/persistence"
	"provider_map/internal/infrastructure/snapshotcache"
	"provider_map/internal/server"
	"provider_map/pkg/dbtest"
	"provider_map/pkg/rest"
	"provider_map/pkg/tests"
)

const e2eFixtures = `
INSERT INTO users (id, name, email) VALUES (1, 'Owner', 'owner@example.com');

INSERT INTO categories (id, name, parent_id, level) VALUES
    (1, 'Home', NULL, 1),
    (2, 'Plumbing', 1, 2);

INSERT INTO service_providers (
    id, user_id, first_name, last_name, spoken_language, services_to_offer,
    services_to_offer_category, provider_address, profile_photo, country, slug
) VALUES
    (1, 1, 'Anna', 'Berg', '["en","de"]', '[1]', '[1,[2]]', 'Main st 1, Berlin', 'a.jpg', 'Germany', 'anna-berg'),
    (2, 1, 'Bob', 'Ruiz', '["es"]', '[1]', '2', 'Gran Via 5, Madrid', 'b.jpg', 'Spain', 'bob-ruiz'),
    (3, 1, 'Carl', 'Hidden', '["en"]', '[1]', '[2]', 'Somewhere', '', 'Germany', 'carl');

INSERT INTO provider_reviews (id, provider_id, user_id, rating) VALUES
    (1, 1, 1, 5),
    (2, 1, 1, 4),
    (3, 2, 1, 3);
`

type listing = rest.Listing[map[string]any, entity.Facets]

func newAPI(t *testing.T) tests.APIClient {
	t.Helper()
	rq := require.New(t)

	db, err := sqlx.Open("sqlite3", ":memory:")
	rq.NoError(err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	rq.NoError(dbtest.MigrateFromFile(db, "../infrastructure/persistence/testdata/schema.sql"))
	_, err = db.Exec(e2eFixtures)
	rq.NoError(err)

	categories := persistence.NewCategoryRepository(db)
	resolver := category.NewResolver(categories)
	svc := discovery.NewService(
		persistence.NewProviderRepository(db),
		categories,
		snapshotcache.NewMemory(snapshotcache.Config{}, time.Minute),
		resolver,
		facet.NewSummarizer(resolver),
	)

	handler := server.NewRouter(
		server.NewServer(server.NewProviderServer(svc), server.NewCategoryServer(svc), false),
		server.RouterConfig{LogFieldMaxLen: 1024},
	)

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return tests.NewAPIClient(ts.URL, nil)
}

func TestProvidersMapEndToEnd(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	api := newAPI(t)

	var all listing
	resp, err := api.Get(ctx, "/api/providers/map", nil, &all, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.NotEmpty(resp.Header.Get("X-Trace-Id"))

	rq.True(all.Success)
	rq.Equal("Providers loaded successfully", all.Message)
	rq.Equal(2, all.Total)
	rq.Len(all.Data, 2)
	rq.Equal("anna-berg", all.Data[0]["slug"])
	rq.Equal("Home, Plumbing", all.Data[0]["services_to_offer_category"])
	rq.InDelta(4.5, all.Data[0]["average_rating"], 1e-9)
	rq.InDelta(2, all.Data[0]["reviews_count"], 1e-9)
	rq.Equal("Plumbing", all.Data[1]["services_to_offer_category"])
	rq.Equal(entity.Facets{
		Countries:  []string{"Germany", "Spain"},
		Categories: []string{"Home", "Plumbing"},
		Languages:  []string{"de", "en", "es"},
	}, all.Filters)

	cases := []struct {
		name  string
		query url.Values
		slugs []string
	}{
		{name: "city", query: url.Values{"city": {"berlin"}}, slugs: []string{"anna-berg"}},
		{name: "country", query: url.Values{"country": {"Spain"}}, slugs: []string{"bob-ruiz"}},
		{name: "language", query: url.Values{"language": {"es"}}, slugs: []string{"bob-ruiz"}},
		{name: "min rating", query: url.Values{"min_rating": {"4"}}, slugs: []string{"anna-berg"}},
		{name: "malformed rating", query: url.Values{"min_rating": {"high"}}, slugs: []string{}},
		{name: "verified only", query: url.Values{"verified_only": {"true"}}, slugs: []string{}},
		{name: "raw category", query: url.Values{"category": {"2"}}, slugs: []string{"bob-ruiz"}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			var got listing
			_, err := api.Get(ctx, "/api/providers/map", tt.query, &got, nil)
			rq.NoError(err)
			rq.Equal(len(tt.slugs), got.Total)
			rq.Equal(all.Filters, got.Filters)

			slugs := make([]string, 0, len(got.Data))
			for _, p := range got.Data {
				slugs = append(slugs, p["slug"].(string)) //nolint:forcetypeassert
			}
			rq.Equal(tt.slugs, slugs)
		})
	}
}

func TestProviderProfileEndToEnd(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	api := newAPI(t)

	var profile rest.Item[map[string]any]
	resp, err := api.Get(ctx, "/api/providers/anna-berg", nil, &profile, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.True(profile.Success)
	rq.Equal("Anna", profile.Data["first_name"])
	rq.Len(profile.Data["reviews"], 2)

	var failed rest.Error
	resp, err = api.Get(ctx, "/api/providers/nobody", nil, nil, &failed)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.False(failed.Success)
	rq.Equal("Error loading provider", failed.Message)
}

func TestCategoriesEndToEnd(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	api := newAPI(t)

	var roots rest.Collection[entity.Category]
	_, err := api.Get(ctx, "/api/categories", nil, &roots, nil)
	rq.NoError(err)
	rq.Equal(1, roots.Total)
	rq.Equal("Home", roots.Data[0].Name)

	var children rest.Collection[entity.Category]
	_, err = api.Get(ctx, "/api/categories/1/subcategories", nil, &children, nil)
	rq.NoError(err)
	rq.Equal(1, children.Total)
	rq.Equal("Plumbing", children.Data[0].Name)
}
