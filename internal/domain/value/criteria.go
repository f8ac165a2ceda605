package value

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names of the map endpoint.
const (
	ParamCountry      = "country"
	ParamCity         = "city"
	ParamCategory     = "category"
	ParamLanguage     = "language"
	ParamMinRating    = "min_rating"
	ParamVerifiedOnly = "verified_only"
)

// RatingBound is an optional inclusive lower bound on the average rating.
// A bound that was supplied but could not be parsed matches nothing.
type RatingBound struct {
	Value float64
	Set   bool
	Valid bool
}

func NewRatingBound(v float64) RatingBound {
	return RatingBound{Value: v, Set: true, Valid: true}
}

// Admits reports whether an average rating passes the bound.
func (b RatingBound) Admits(avg float64) bool {
	if !b.Set {
		return true
	}

	return b.Valid && avg >= b.Value
}

// Criteria are the map filters. Empty fields impose no constraint.
type Criteria struct {
	Country      string
	City         string
	Category     string
	Language     string
	MinRating    RatingBound
	VerifiedOnly bool
}

// ParseCriteria reads the filters leniently: nothing in the query string can
// fail the request, malformed values just stop matching.
func ParseCriteria(q url.Values) Criteria {
	return Criteria{
		Country:      filled(q, ParamCountry),
		City:         filled(q, ParamCity),
		Category:     filled(q, ParamCategory),
		Language:     filled(q, ParamLanguage),
		MinRating:    parseRatingBound(filled(q, ParamMinRating)),
		VerifiedOnly: parseFlag(filled(q, ParamVerifiedOnly)),
	}
}

func filled(q url.Values, key string) string {
	return strings.TrimSpace(q.Get(key))
}

func parseRatingBound(raw string) RatingBound {
	if raw == "" {
		return RatingBound{}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return RatingBound{Set: true}
	}

	return NewRatingBound(v)
}

func parseFlag(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}
