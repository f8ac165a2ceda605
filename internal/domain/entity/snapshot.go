package entity

import (
	"strconv"
	"time"
)

// AverageRating is always rendered with exactly one decimal, so 4 is sent
// as 4.0.
type AverageRating float64

func (r AverageRating) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(r), 'f', 1, 64), nil
}

// SnapshotEntry is one provider of the cached discovery listing. JSON field
// names are part of the public map API.
type SnapshotEntry struct {
	ID                    int64         `json:"id"`
	FirstName             string        `json:"first_name"`
	LastName              string        `json:"last_name"`
	NativeLanguage        string        `json:"native_language"`
	SpokenLanguages       []string      `json:"spoken_language"`
	ServicesToOffer       string        `json:"services_to_offer"`
	ServicesCategory      string        `json:"services_to_offer_category"`
	Address               string        `json:"provider_address"`
	OperationalCountries  []string      `json:"operational_countries"`
	CommunicationOnline   bool          `json:"communication_online"`
	CommunicationInPerson bool          `json:"communication_inperson"`
	Description           string        `json:"profile_description"`
	Photo                 string        `json:"profile_photo"`
	PhoneNumber           string        `json:"phone_number"`
	Country               string        `json:"country"`
	SpecialStatus         []string      `json:"special_status"`
	Email                 string        `json:"email"`
	Slug                  *string       `json:"slug"`
	AverageRating         AverageRating `json:"average_rating"`
	ReviewsCount          int           `json:"reviews_count"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

// Verified is the listing's trust signal: an explicit status tag or enough
// review volume.
func (e SnapshotEntry) Verified() bool {
	return len(e.SpecialStatus) > 0 || e.ReviewsCount >= VerifiedReviewThreshold
}

const VerifiedReviewThreshold = 5

// Facets are the distinct filter values offered to the map UI.
type Facets struct {
	Countries  []string `json:"countries"`
	Categories []string `json:"categories"`
	Languages  []string `json:"languages"`
}

// Listing is the result of one discovery request.
type Listing struct {
	Providers []SnapshotEntry
	Total     int
	Filters   Facets
}
