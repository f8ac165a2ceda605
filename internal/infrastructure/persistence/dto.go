package persistence

import (
	"database/sql"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"provider_map/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// providerSchema maps a service_providers row joined with its owning user.
type providerSchema struct {
	ID                    int64          `db:"id"`
	UserID                int64          `db:"user_id"`
	FirstName             sql.NullString `db:"first_name"`
	LastName              sql.NullString `db:"last_name"`
	NativeLanguage        sql.NullString `db:"native_language"`
	SpokenLanguage        sql.NullString `db:"spoken_language"`
	ServicesToOffer       sql.NullString `db:"services_to_offer"`
	ServicesCategory      sql.NullString `db:"services_to_offer_category"`
	Address               sql.NullString `db:"provider_address"`
	OperationalCountries  sql.NullString `db:"operational_countries"`
	CommunicationOnline   sql.NullBool   `db:"communication_online"`
	CommunicationInPerson sql.NullBool   `db:"communication_inperson"`
	Description           sql.NullString `db:"profile_description"`
	Photo                 sql.NullString `db:"profile_photo"`
	PhoneNumber           sql.NullString `db:"phone_number"`
	Country               sql.NullString `db:"country"`
	SpecialStatus         sql.NullString `db:"special_status"`
	Email                 sql.NullString `db:"email"`
	Slug                  sql.NullString `db:"slug"`
	CreatedAt             sql.NullTime   `db:"created_at"`
	UpdatedAt             sql.NullTime   `db:"updated_at"`

	OwnerID    sql.NullInt64  `db:"owner_id"`
	OwnerName  sql.NullString `db:"owner_name"`
	OwnerEmail sql.NullString `db:"owner_email"`
}

func (s *providerSchema) toDomain() entity.Provider {
	p := entity.Provider{
		ID:                    s.ID,
		UserID:                s.UserID,
		FirstName:             s.FirstName.String,
		LastName:              s.LastName.String,
		NativeLanguage:        s.NativeLanguage.String,
		SpokenLanguages:       decodeList(s.SpokenLanguage),
		ServicesToOffer:       s.ServicesToOffer.String,
		ServicesCategory:      s.ServicesCategory.String,
		Address:               s.Address.String,
		OperationalCountries:  decodeList(s.OperationalCountries),
		CommunicationOnline:   s.CommunicationOnline.Bool,
		CommunicationInPerson: s.CommunicationInPerson.Bool,
		Description:           s.Description.String,
		Photo:                 s.Photo.String,
		PhoneNumber:           s.PhoneNumber.String,
		Country:               s.Country.String,
		SpecialStatus:         decodeList(s.SpecialStatus),
		Email:                 s.Email.String,
		CreatedAt:             s.CreatedAt.Time,
		UpdatedAt:             s.UpdatedAt.Time,
		Reviews:               []entity.Review{},
	}

	if s.Slug.Valid {
		slug := s.Slug.String
		p.Slug = &slug
	}

	if s.OwnerID.Valid {
		p.User = &entity.User{
			ID:    s.OwnerID.Int64,
			Name:  s.OwnerName.String,
			Email: s.OwnerEmail.String,
		}
	}

	return p
}

type reviewSchema struct {
	ID         int64          `db:"id"`
	ProviderID int64          `db:"provider_id"`
	UserID     int64          `db:"user_id"`
	Rating     int            `db:"rating"`
	Comment    sql.NullString `db:"comment"`
	CreatedAt  sql.NullTime   `db:"created_at"`
}

func (s *reviewSchema) toDomain() entity.Review {
	r := entity.Review{
		ID:         s.ID,
		ProviderID: s.ProviderID,
		UserID:     s.UserID,
		Rating:     s.Rating,
		CreatedAt:  s.CreatedAt.Time,
	}

	if s.Comment.Valid {
		comment := s.Comment.String
		r.Comment = &comment
	}

	return r
}

type categorySchema struct {
	ID       int64         `db:"id"`
	Name     string        `db:"name"`
	ParentID sql.NullInt64 `db:"parent_id"`
	Level    int           `db:"level"`
}

func (s *categorySchema) toDomain() entity.Category {
	c := entity.Category{
		ID:    s.ID,
		Name:  s.Name,
		Level: s.Level,
	}

	if s.ParentID.Valid {
		parentID := s.ParentID.Int64
		c.ParentID = &parentID
	}

	return c
}

// decodeList reads a JSON array column. Null, blank or malformed values
// become an empty list; a double-encoded array is unwrapped once.
func decodeList(ns sql.NullString) []string {
	raw := strings.TrimSpace(ns.String)
	if !ns.Valid || raw == "" {
		return []string{}
	}

	var items []any
	if err := json.UnmarshalFromString(raw, &items); err != nil {
		var inner string
		if json.UnmarshalFromString(raw, &inner) != nil {
			return []string{}
		}
		return decodeList(sql.NullString{String: inner, Valid: true})
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case nil:
		case string:
			out = append(out, v)
		default:
			out = append(out, fmt.Sprint(v))
		}
	}

	return out
}
