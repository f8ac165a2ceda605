package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"provider_map/internal/domain"
	"provider_map/internal/domain/entity"
	"provider_map/internal/domain/value"
	"provider_map/pkg/errcodes"
	"provider_map/pkg/httpx/reply"
)

type fakeService struct {
	listing    entity.Listing
	profiles   []entity.ProviderProfile
	categories []entity.Category
	err        error

	criteria value.Criteria
	query    value.SearchQuery
	parentID int64
}

func (f *fakeService) ListProviders(_ context.Context, criteria value.Criteria) (entity.Listing, error) {
	f.criteria = criteria
	return f.listing, f.err
}

func (f *fakeService) GetProfile(_ context.Context, slug string) (entity.ProviderProfile, error) {
	if f.err != nil {
		return entity.ProviderProfile{}, f.err
	}

	for _, p := range f.profiles {
		if p.Slug != nil && *p.Slug == slug {
			return p, nil
		}
	}

	return entity.ProviderProfile{}, domain.NewError(errcodes.ProviderNotFound, "provider not found")
}

func (f *fakeService) SearchProviders(_ context.Context, query value.SearchQuery) ([]entity.ProviderProfile, error) {
	f.query = query
	return f.profiles, f.err
}

func (f *fakeService) RootCategories(context.Context) ([]entity.Category, error) {
	return f.categories, f.err
}

func (f *fakeService) Subcategories(_ context.Context, parentID int64) ([]entity.Category, error) {
	f.parentID = parentID
	return f.categories, f.err
}

func newRouter(svc *fakeService, debug bool) http.Handler {
	r := chi.NewRouter()
	NewServer(NewProviderServer(svc), NewCategoryServer(svc), debug).RegisterRoutes(r)
	return r
}

func serve(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func annaProfile() entity.ProviderProfile {
	slug := "anna"
	return entity.ProviderProfile{
		SnapshotEntry: entity.SnapshotEntry{
			ID:              1,
			FirstName:       "Anna",
			SpokenLanguages: []string{"en"},
			SpecialStatus:   []string{},
			Slug:            &slug,
			AverageRating:   4,
			ReviewsCount:    1,
		},
		Reviews: []entity.Review{{ID: 1, ProviderID: 1, Rating: 4}},
	}
}

func TestGetProvidersMap(t *testing.T) {
	rq := require.New(t)
	svc := &fakeService{listing: entity.Listing{
		Providers: []entity.SnapshotEntry{annaProfile().SnapshotEntry},
		Total:     1,
		Filters: entity.Facets{
			Countries:  []string{"Germany"},
			Categories: []string{"Home"},
			Languages:  []string{"en"},
		},
	}}

	w := serve(newRouter(svc, false), "/api/providers/map?country=Germany&min_rating=3.5&verified_only=yes")
	rq.Equal(http.StatusOK, w.Code)
	rq.Equal("application/json; charset=utf-8", w.Header().Get("Content-Type"))

	body := w.Body.String()
	rq.Contains(body, `"success":true`)
	rq.Contains(body, `"message":"Providers loaded successfully"`)
	rq.Contains(body, `"total":1`)
	rq.Contains(body, `"average_rating":4.0`)
	rq.Contains(body, `"filters":{"countries":["Germany"],"categories":["Home"],"languages":["en"]}`)

	rq.Equal("Germany", svc.criteria.Country)
	rq.True(svc.criteria.VerifiedOnly)
	rq.True(svc.criteria.MinRating.Set)
	rq.InDelta(3.5, svc.criteria.MinRating.Value, 1e-9)
}

func TestGetProvidersMapEmpty(t *testing.T) {
	rq := require.New(t)
	svc := &fakeService{listing: entity.Listing{
		Providers: []entity.SnapshotEntry{},
		Filters: entity.Facets{
			Countries:  []string{},
			Categories: []string{},
			Languages:  []string{},
		},
	}}

	w := serve(newRouter(svc, false), "/api/providers/map")
	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(w.Body.String(), `"data":[]`)
	rq.Contains(w.Body.String(), `"total":0`)
}

func TestGetProvidersMapFailure(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		want  string
	}{
		{name: "generic", debug: false, want: `"error":"` + reply.GenericError + `"`},
		{name: "debug", debug: true, want: "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)
			svc := &fakeService{err: domain.WrapError(
				errors.New("connection refused"),
				errcodes.InternalServerError,
				"failed to fetch providers",
			)}

			w := serve(newRouter(svc, tt.debug), "/api/providers/map")
			rq.Equal(http.StatusInternalServerError, w.Code)

			body := w.Body.String()
			rq.Contains(body, `"success":false`)
			rq.Contains(body, `"message":"Error loading providers"`)
			rq.Contains(body, tt.want)
		})
	}
}

func TestGetProvidersSearch(t *testing.T) {
	rq := require.New(t)
	svc := &fakeService{profiles: []entity.ProviderProfile{annaProfile()}}

	w := serve(newRouter(svc, false), "/api/providers/search?category_id=1&subcategory_id=x&language=en")
	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(w.Body.String(), `"total":1`)
	rq.Contains(w.Body.String(), `"reviews":[`)
	rq.Equal(value.SearchQuery{CategoryID: 1, Language: "en"}, svc.query)
}

func TestGetProvider(t *testing.T) {
	rq := require.New(t)
	svc := &fakeService{profiles: []entity.ProviderProfile{annaProfile()}}
	router := newRouter(svc, false)

	w := serve(router, "/api/providers/anna")
	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(w.Body.String(), `"slug":"anna"`)

	w = serve(router, "/api/providers/unknown")
	rq.Equal(http.StatusNotFound, w.Code)
	rq.Contains(w.Body.String(), `"success":false`)
	rq.Contains(w.Body.String(), `"message":"Error loading provider"`)

	w = serve(router, "/api/providers/"+strings.Repeat("a", 256))
	rq.Equal(http.StatusBadRequest, w.Code)
}

func TestGetCategories(t *testing.T) {
	rq := require.New(t)
	parentID := int64(1)
	svc := &fakeService{categories: []entity.Category{
		{ID: 2, Name: "Plumbing", ParentID: &parentID, Level: 2},
	}}
	router := newRouter(svc, false)

	w := serve(router, "/api/categories")
	rq.Equal(http.StatusOK, w.Code)
	rq.Contains(w.Body.String(), `"name":"Plumbing"`)

	w = serve(router, "/api/categories/1/subcategories")
	rq.Equal(http.StatusOK, w.Code)
	rq.Equal(int64(1), svc.parentID)
	rq.Contains(w.Body.String(), `"parent_id":1`)
}

func TestGetSubcategoriesInvalidParent(t *testing.T) {
	for _, parent := range []string{"abc", "0", "-3"} {
		t.Run(parent, func(t *testing.T) {
			rq := require.New(t)
			svc := &fakeService{}

			w := serve(newRouter(svc, false), "/api/categories/"+parent+"/subcategories")
			rq.Equal(http.StatusBadRequest, w.Code)
			rq.Contains(w.Body.String(), `"message":"Error loading subcategories"`)
			rq.Zero(svc.parentID)
		})
	}
}
