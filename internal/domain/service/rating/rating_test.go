package rating_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"provider_map/internal/domain/entity"
	"provider_map/internal/domain/service/rating"
)

func reviews(ratings ...int) []entity.Review {
	result := make([]entity.Review, 0, len(ratings))
	for i, r := range ratings {
		result = append(result, entity.Review{ID: int64(i + 1), ProviderID: 1, Rating: r})
	}

	return result
}

func TestAggregate(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name    string
		reviews []entity.Review
		average entity.AverageRating
		count   int
	}{
		{name: "No reviews", reviews: nil, average: 0, count: 0},
		{name: "Whole mean", reviews: reviews(5, 4, 3), average: 4.0, count: 3},
		{name: "Rounded up", reviews: reviews(5, 4, 4, 4), average: 4.3, count: 4},
		{name: "Rounded down", reviews: reviews(5, 5, 4), average: 4.7, count: 3},
		{name: "Single", reviews: reviews(2), average: 2.0, count: 1},
		{name: "Out of range clamped", reviews: reviews(9, 0), average: 3.0, count: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			got := rating.Aggregate(tc.reviews)

			rq.InDelta(float64(tc.average), float64(got.Average), 1e-9)
			rq.Equal(tc.count, got.Count)
		})
	}
}

func TestAverageRatingJSON(t *testing.T) {
	rq := require.New(t)

	b, err := rating.Aggregate(reviews(5, 4, 3)).Average.MarshalJSON()
	rq.NoError(err)
	rq.Equal("4.0", string(b))

	b, err = rating.Aggregate(nil).Average.MarshalJSON()
	rq.NoError(err)
	rq.Equal("0.0", string(b))
}

func TestRound1(t *testing.T) {
	rq := require.New(t)

	rq.InDelta(4.3, rating.Round1(4.25), 1e-9)
	rq.InDelta(4.2, rating.Round1(4.2222), 1e-9)
}
