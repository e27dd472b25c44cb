package model

import "time"

// Place represents a fika place in the database
type Place struct {
	ID              string     `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	Description     *string    `db:"description" json:"description,omitempty"`
	Address         *string    `db:"address" json:"address,omitempty"`
	City            string     `db:"city" json:"city"`
	Region          *string    `db:"region" json:"region,omitempty"`
	Latitude        *float64   `db:"latitude" json:"latitude,omitempty"`
	Longitude       *float64   `db:"longitude" json:"longitude,omitempty"`
	Phone           *string    `db:"phone" json:"phone,omitempty"`
	Website         *string    `db:"website" json:"website,omitempty"`
	OpeningHours    StringMap  `db:"opening_hours" json:"opening_hours"`
	FikaSpecialties StringList `db:"fika_specialties" json:"fika_specialties"`
	PriceRange      *int       `db:"price_range" json:"price_range,omitempty"`
	Rating          *float64   `db:"rating" json:"rating"`
	ReviewCount     int        `db:"review_count" json:"review_count"`
	Verified        bool       `db:"verified" json:"verified"`
	Features        StringList `db:"features" json:"features"`
	Images          StringList `db:"images" json:"images"`
	Slug            string     `db:"slug" json:"slug"`
	MetaDescription *string    `db:"meta_description" json:"meta_description,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// HasCoordinates reports whether both latitude and longitude are set.
// A place with only one of the two is treated as having no location.
func (p *Place) HasCoordinates() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// PriceRangeSymbol converts the price range to its symbol representation
// ("$" to "$$$$"), or "" when no price range is set.
func (p *Place) PriceRangeSymbol() string {
	if p.PriceRange == nil {
		return ""
	}
	symbols := ""
	for i := 0; i < *p.PriceRange; i++ {
		symbols += "$"
	}
	return symbols
}
