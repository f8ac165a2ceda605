package entity

import "time"

const (
	MinReviewRating     = 1
	MaxReviewRating     = 5
	DefaultReviewRating = 5
)

type Review struct {
	ID         int64     `json:"id"`
	ProviderID int64     `json:"provider_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

// Rating is the aggregate of a provider's reviews.
type Rating struct {
	Average AverageRating
	Count   int
}
