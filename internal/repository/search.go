package repository

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/fikaregister/fika-api/internal/config"
	"github.com/fikaregister/fika-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// Search runs the full filter/sort/paginate pipeline and returns the page
// of places plus the total match count. When a geo filter is active the
// distance predicate and ordering are evaluated in Go on a bounding-box
// prefiltered candidate set, since SQLite has no trigonometry functions.
func (r *placeRepository) Search(ctx context.Context, params *model.PlaceSearch) ([]model.Place, int, error) {
	if params.HasGeoFilter() {
		return r.searchGeo(ctx, params)
	}
	return r.searchSQL(ctx, params)
}

func (r *placeRepository) searchSQL(ctx context.Context, params *model.PlaceSearch) ([]model.Place, int, error) {
	conditions, args := r.buildSearchConditions(params)
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQ := r.store.ext.Rebind("SELECT COUNT(*) FROM places" + where)
	if err := sqlx.GetContext(ctx, r.store.ext, &total, countQ, args...); err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.PerPage
	pageQ := r.store.ext.Rebind(fmt.Sprintf(
		"SELECT * FROM places%s ORDER BY %s LIMIT ? OFFSET ?",
		where, orderClause(params.SortBy, params.SortOrder),
	))
	pageArgs := append(args, params.PerPage, offset)

	var places []model.Place
	if err := sqlx.SelectContext(ctx, r.store.ext, &places, pageQ, pageArgs...); err != nil {
		return nil, 0, err
	}
	return places, total, nil
}

func (r *placeRepository) searchGeo(ctx context.Context, params *model.PlaceSearch) ([]model.Place, int, error) {
	lat, lon := *params.Latitude, *params.Longitude
	radius := params.Radius()

	conditions, args := r.buildSearchConditions(params)
	conditions = append(conditions, "latitude IS NOT NULL", "longitude IS NOT NULL")

	// Bounding-box prefilter; one degree of latitude is ~111 km. The exact
	// Haversine cut happens below.
	latDelta := radius / 111.0
	lonDelta := radius / (111.0 * math.Cos(lat*math.Pi/180.0))
	if math.IsInf(lonDelta, 0) || math.IsNaN(lonDelta) || lonDelta > 180 {
		lonDelta = 180
	}
	conditions = append(conditions, "latitude BETWEEN ? AND ?", "longitude BETWEEN ? AND ?")
	args = append(args, lat-latDelta, lat+latDelta, lon-lonDelta, lon+lonDelta)

	q := r.store.ext.Rebind("SELECT * FROM places WHERE " + strings.Join(conditions, " AND "))
	var candidates []model.Place
	if err := sqlx.SelectContext(ctx, r.store.ext, &candidates, q, args...); err != nil {
		return nil, 0, err
	}

	matched := candidates[:0]
	distances := make(map[string]float64, len(candidates))
	for i := range candidates {
		p := candidates[i]
		d := haversineKm(lat, lon, *p.Latitude, *p.Longitude)
		if d <= radius {
			distances[p.ID] = d
			matched = append(matched, p)
		}
	}

	sortPlaces(matched, params.SortBy, params.SortOrder, distances)
	total := len(matched)
	return pageSlice(matched, params.Page, params.PerPage), total, nil
}

// buildSearchConditions translates the non-geo predicates into SQL. All
// placeholders use '?'; callers rebind for the active driver.
func (r *placeRepository) buildSearchConditions(params *model.PlaceSearch) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if params.Query != "" {
		if r.store.engine == config.DBTypePostgreSQL {
			conditions = append(conditions,
				"to_tsvector('simple', name || ' ' || COALESCE(description, '')) @@ plainto_tsquery('simple', ?)")
			args = append(args, params.Query)
		} else {
			// SQLite has no tsvector; require every query term to hit the
			// name or description, matching plainto_tsquery's AND semantics
			for _, term := range strings.Fields(params.Query) {
				conditions = append(conditions,
					"(LOWER(name) LIKE '%' || LOWER(?) || '%' OR LOWER(COALESCE(description, '')) LIKE '%' || LOWER(?) || '%')")
				args = append(args, term, term)
			}
		}
	}

	if params.City != "" {
		conditions = append(conditions, "LOWER(city) LIKE '%' || LOWER(?) || '%'")
		args = append(args, params.City)
	}

	if params.Category != "" {
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM place_categories pc
			JOIN categories c ON pc.category_id = c.id
			WHERE pc.place_id = places.id AND LOWER(c.name) = LOWER(?)
		)`)
		args = append(args, params.Category)
	}

	if len(params.PriceRange) > 0 {
		placeholders := make([]string, len(params.PriceRange))
		for i, p := range params.PriceRange {
			placeholders[i] = "?"
			args = append(args, p)
		}
		conditions = append(conditions, "price_range IN ("+strings.Join(placeholders, ", ")+")")
	}

	if params.MinRating != nil {
		conditions = append(conditions, "rating >= ?")
		args = append(args, *params.MinRating)
	}

	if params.VerifiedOnly {
		conditions = append(conditions, "verified = ?")
		args = append(args, true)
	}

	for _, f := range []struct {
		name   string
		wanted bool
	}{
		{"wifi", params.HasWifi},
		{"wheelchair_accessible", params.WheelchairAccessible},
		{"outdoor_seating", params.OutdoorSeating},
	} {
		if f.wanted {
			// Features are stored as a JSON array of strings
			conditions = append(conditions, "features LIKE ?")
			args = append(args, `%"`+f.name+`"%`)
		}
	}

	return conditions, args
}

// orderClause maps a sort key to SQL. Rating sorts keep unrated places at
// the tail end of the preferred direction; id breaks ties so pagination is
// stable. Distance ordering never reaches SQL.
func orderClause(sortBy, sortOrder string) string {
	desc := sortOrder == model.SortOrderDesc
	switch sortBy {
	case model.SortByRating:
		if desc {
			return "rating DESC NULLS LAST, id ASC"
		}
		return "rating ASC NULLS FIRST, id ASC"
	case model.SortByCreatedAt:
		if desc {
			return "created_at DESC, id ASC"
		}
		return "created_at ASC, id ASC"
	default:
		if desc {
			return "LOWER(name) DESC, id ASC"
		}
		return "LOWER(name) ASC, id ASC"
	}
}

// sortPlaces orders an in-memory result set the same way orderClause does
// in SQL. Distance always sorts ascending; nearest first is the only
// ordering that makes sense for a radius search.
func sortPlaces(places []model.Place, sortBy, sortOrder string, distances map[string]float64) {
	desc := sortOrder == model.SortOrderDesc
	sort.Slice(places, func(i, j int) bool {
		a, b := places[i], places[j]
		switch sortBy {
		case model.SortByDistance:
			da, db := distances[a.ID], distances[b.ID]
			if da != db {
				return da < db
			}
		case model.SortByRating:
			ra, rb := a.Rating, b.Rating
			if ra == nil && rb != nil {
				return !desc
			}
			if ra != nil && rb == nil {
				return desc
			}
			if ra != nil && rb != nil && *ra != *rb {
				if desc {
					return *ra > *rb
				}
				return *ra < *rb
			}
		case model.SortByCreatedAt:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				if desc {
					return a.CreatedAt.After(b.CreatedAt)
				}
				return a.CreatedAt.Before(b.CreatedAt)
			}
		default:
			na, nb := strings.ToLower(a.Name), strings.ToLower(b.Name)
			if na != nb {
				if desc {
					return na > nb
				}
				return na < nb
			}
		}
		return a.ID < b.ID
	})
}

func pageSlice(places []model.Place, page, perPage int) []model.Place {
	start := (page - 1) * perPage
	if start >= len(places) {
		return []model.Place{}
	}
	end := start + perPage
	if end > len(places) {
		end = len(places)
	}
	return places[start:end]
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)
	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
