package entity

import "time"

// Provider is a service provider profile as stored, with its owning user and
// reviews attached by the repository.
type Provider struct {
	ID                    int64
	UserID                int64
	FirstName             string
	LastName              string
	NativeLanguage        string
	SpokenLanguages       []string
	ServicesToOffer       string // raw JSON of category ids
	ServicesCategory      string // raw JSON, scalar id or nested array of ids
	Address               string
	OperationalCountries  []string
	CommunicationOnline   bool
	CommunicationInPerson bool
	Description           string
	Photo                 string
	PhoneNumber           string
	Country               string
	SpecialStatus         []string
	Email                 string
	Slug                  *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	User    *User
	Reviews []Review
}

// Eligible reports whether the profile may appear in discovery listings.
func (p Provider) Eligible() bool {
	return p.Photo != "" && p.Country != "" && p.Address != ""
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
