package model

// Sort keys accepted by PlaceSearch
const (
	SortByName      = "name"
	SortByRating    = "rating"
	SortByDistance  = "distance"
	SortByCreatedAt = "created_at"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

const (
	DefaultPerPage  = 20
	MaxPerPage      = 100
	DefaultRadiusKm = 5.0
)

// PlaceSearch holds the filter/sort/paginate parameters for a place search.
// All predicates are optional and combined with AND; absent predicates impose
// no constraint. The geo filter is only active when both coordinates are set.
type PlaceSearch struct {
	Query                string   `json:"query,omitempty" validate:"omitempty,min=2"`
	City                 string   `json:"city,omitempty" validate:"omitempty,max=100"`
	Category             string   `json:"category,omitempty" validate:"omitempty,max=100"`
	PriceRange           []int    `json:"price_range,omitempty" validate:"omitempty,dive,gte=1,lte=4"`
	MinRating            *float64 `json:"min_rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	VerifiedOnly         bool     `json:"verified_only,omitempty"`
	HasWifi              bool     `json:"has_wifi,omitempty"`
	WheelchairAccessible bool     `json:"wheelchair_accessible,omitempty"`
	OutdoorSeating       bool     `json:"outdoor_seating,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	RadiusKm  *float64 `json:"radius_km,omitempty" validate:"omitempty,gt=0,lte=100"`

	Page    int `json:"page" validate:"omitempty,gte=1"`
	PerPage int `json:"per_page" validate:"omitempty,gte=1,lte=100"`

	SortBy    string `json:"sort_by,omitempty" validate:"omitempty,oneof=name rating distance created_at"`
	SortOrder string `json:"sort_order,omitempty" validate:"omitempty,oneof=asc desc"`
}

// HasGeoFilter reports whether the geographic filter is active.
func (p *PlaceSearch) HasGeoFilter() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Radius returns the effective search radius in kilometers.
func (p *PlaceSearch) Radius() float64 {
	if p.RadiusKm != nil {
		return *p.RadiusKm
	}
	return DefaultRadiusKm
}

// Normalize fills in pagination and sort defaults. Validation of the supplied
// values happens at the API boundary; this only handles absent fields.
func (p *PlaceSearch) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	if p.SortBy == "" {
		p.SortBy = SortByName
	}
	if p.SortOrder == "" {
		p.SortOrder = SortOrderAsc
	}
}

// PlaceList is a paginated place search result
type PlaceList struct {
	Places  []Place `json:"places"`
	Total   int     `json:"total"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
	Pages   int     `json:"pages"`
}

// ReviewList is a paginated review listing
type ReviewList struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
	Pages   int      `json:"pages"`
}

// PlaceCreate is the payload for creating a place
type PlaceCreate struct {
	Name            string            `json:"name" validate:"required,min=1,max=255"`
	Description     *string           `json:"description,omitempty"`
	Address         *string           `json:"address,omitempty" validate:"omitempty,max=500"`
	City            string            `json:"city" validate:"required,max=100"`
	Region          *string           `json:"region,omitempty" validate:"omitempty,max=100"`
	Latitude        *float64          `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64          `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Phone           *string           `json:"phone,omitempty" validate:"omitempty,max=50"`
	Website         *string           `json:"website,omitempty" validate:"omitempty,max=255"`
	OpeningHours    map[string]string `json:"opening_hours,omitempty"`
	FikaSpecialties []string          `json:"fika_specialties,omitempty"`
	PriceRange      *int              `json:"price_range,omitempty" validate:"omitempty,gte=1,lte=4"`
	Features        []string          `json:"features,omitempty"`
	Images          []string          `json:"images,omitempty"`
	Categories      []string          `json:"categories,omitempty" validate:"omitempty,dive,min=1,max=100"`
}

// PlaceUpdate is the payload for a partial place update; nil fields are
// left unchanged.
type PlaceUpdate struct {
	Name            *string           `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string           `json:"description,omitempty"`
	Address         *string           `json:"address,omitempty" validate:"omitempty,max=500"`
	City            *string           `json:"city,omitempty" validate:"omitempty,max=100"`
	Region          *string           `json:"region,omitempty" validate:"omitempty,max=100"`
	Latitude        *float64          `json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64          `json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Phone           *string           `json:"phone,omitempty" validate:"omitempty,max=50"`
	Website         *string           `json:"website,omitempty" validate:"omitempty,max=255"`
	OpeningHours    map[string]string `json:"opening_hours,omitempty"`
	FikaSpecialties []string          `json:"fika_specialties,omitempty"`
	PriceRange      *int              `json:"price_range,omitempty" validate:"omitempty,gte=1,lte=4"`
	Features        []string          `json:"features,omitempty"`
	Images          []string          `json:"images,omitempty"`
	Verified        *bool             `json:"verified,omitempty"`
	Categories      []string          `json:"categories,omitempty" validate:"omitempty,dive,min=1,max=100"`
}

// ReviewCreate is the payload for creating a review
type ReviewCreate struct {
	PlaceID   string   `json:"place_id" validate:"required,uuid4"`
	Rating    int      `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   *string  `json:"comment,omitempty" validate:"omitempty,max=1000"`
	FikaItems []string `json:"fika_items,omitempty"`
	VisitDate *string  `json:"visit_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VisitTime *string  `json:"visit_time,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
	UserName  *string  `json:"user_name,omitempty" validate:"omitempty,max=100"`
	Language  *string  `json:"language,omitempty" validate:"omitempty,max=10"`
}

// ReviewUpdate is the payload for a partial review update
type ReviewUpdate struct {
	Rating    *int     `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	Comment   *string  `json:"comment,omitempty" validate:"omitempty,max=1000"`
	FikaItems []string `json:"fika_items,omitempty"`
	VisitDate *string  `json:"visit_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	VisitTime *string  `json:"visit_time,omitempty" validate:"omitempty,oneof=morning afternoon evening"`
	UserName  *string  `json:"user_name,omitempty" validate:"omitempty,max=100"`
}

// ModerationRequest is a single moderation action
type ModerationRequest struct {
	ReviewID string  `json:"review_id" validate:"required,uuid4"`
	Action   string  `json:"action" validate:"required,oneof=approve reject"`
	Reason   *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// BulkModerationRequest applies one action to a set of reviews
type BulkModerationRequest struct {
	ReviewIDs []string `json:"review_ids" validate:"required,min=1,dive,uuid4"`
	Action    string   `json:"action" validate:"required,oneof=approve reject"`
}

// PlaceStatistics summarizes the approved reviews of a place
type PlaceStatistics struct {
	TotalReviews       int         `json:"total_reviews"`
	AverageRating      float64     `json:"average_rating"`
	RatingDistribution map[int]int `json:"rating_distribution"`
}
