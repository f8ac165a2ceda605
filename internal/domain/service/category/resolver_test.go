package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"provider_map/internal/domain/service/category"
)

type fakeLookup struct {
	names map[int64]string
	err   error
	calls int
}

func (f *fakeLookup) NamesByIDs(_ context.Context, ids []int64) (map[int64]string, error) {
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	result := make(map[int64]string, len(ids))
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			result[id] = name
		}
	}

	return result, nil
}

func newLookup() *fakeLookup {
	return &fakeLookup{names: map[int64]string{
		1: "Home",
		2: "Plumbing",
		3: "Electrical",
		5: "Tutoring",
	}}
}

func TestResolveNames(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "Nested group in order", raw: `[1,[2,3]]`, want: "Home, Plumbing, Electrical"},
		{name: "Missing id skipped", raw: `[1,[4,3]]`, want: "Home, Electrical"},
		{name: "Scalar", raw: `5`, want: "Tutoring"},
		{name: "Scalar string", raw: `"2"`, want: "Plumbing"},
		{name: "Nothing resolvable", raw: `[404]`, want: ""},
		{name: "Undecodable", raw: `not json`, want: ""},
		{name: "Empty", raw: ``, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got, err := category.NewResolver(newLookup()).ResolveNames(ctx, tc.raw)
			rq.NoError(err)
			rq.Equal(tc.want, got)
		})
	}
}

func TestResolveAllBatchesLookup(t *testing.T) {
	rq := require.New(t)

	lookup := newLookup()

	names, err := category.NewResolver(lookup).ResolveAll(context.Background(), []string{`[1,[2]]`, `3`, `garbage`, `[9]`})
	rq.NoError(err)
	rq.Equal([]string{"Home", "Plumbing", "Electrical"}, names)
	rq.Equal(1, lookup.calls)
}

func TestResolveAllNoIDs(t *testing.T) {
	rq := require.New(t)

	lookup := newLookup()

	names, err := category.NewResolver(lookup).ResolveAll(context.Background(), []string{`[]`, ``})
	rq.NoError(err)
	rq.Empty(names)
	rq.Zero(lookup.calls)
}

func TestResolveLookupFailure(t *testing.T) {
	rq := require.New(t)

	lookup := newLookup()
	lookup.err = errors.New("connection reset")

	_, err := category.NewResolver(lookup).ResolveNames(context.Background(), `[1]`)
	rq.ErrorContains(err, "connection reset")
}

func TestResolveEach(t *testing.T) {
	rq := require.New(t)

	lookup := newLookup()

	joined, err := category.NewResolver(lookup).ResolveEach(context.Background(), []string{`[1,[2,3]]`, `oops`, `[5,404]`})
	rq.NoError(err)
	rq.Equal([]string{"Home, Plumbing, Electrical", "", "Tutoring"}, joined)
	rq.Equal(1, lookup.calls)
}
