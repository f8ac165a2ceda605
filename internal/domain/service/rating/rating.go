package rating

import (
	"math"

	"provider_map/internal/domain/entity"
)

// Aggregate computes the mean review rating rounded to one decimal and the
// review count. No reviews means an average of exactly 0.
func Aggregate(reviews []entity.Review) entity.Rating {
	if len(reviews) == 0 {
		return entity.Rating{}
	}

	var sum int
	for _, r := range reviews {
		sum += clamp(r.Rating)
	}

	avg := float64(sum) / float64(len(reviews))

	return entity.Rating{
		Average: entity.AverageRating(Round1(avg)),
		Count:   len(reviews),
	}
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10 //nolint:mnd // one decimal
}

func clamp(rating int) int {
	return min(max(rating, entity.MinReviewRating), entity.MaxReviewRating)
}
