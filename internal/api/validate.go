package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/fikaregister/fika-api/internal/model"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// decodeAndValidate reads the JSON body into dst and checks its validate tags
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %v", err)
	}
	return nil
}

func parsePagination(r *http.Request) (page, perPage int, err error) {
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		page, err = strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return 0, 0, fmt.Errorf("invalid page parameter")
		}
	}
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		perPage, err = strconv.Atoi(perPageStr)
		if err != nil || perPage < 1 || perPage > model.MaxPerPage {
			return 0, 0, fmt.Errorf("invalid per_page parameter")
		}
	}
	return page, perPage, nil
}

// parseSearchParams maps the place search query string onto PlaceSearch and
// validates it
func parseSearchParams(r *http.Request) (*model.PlaceSearch, error) {
	q := r.URL.Query()
	params := &model.PlaceSearch{
		Query:                q.Get("query"),
		City:                 q.Get("city"),
		Category:             q.Get("category"),
		SortBy:               q.Get("sort_by"),
		SortOrder:            q.Get("sort_order"),
		VerifiedOnly:         q.Get("verified_only") == "true",
		HasWifi:              q.Get("has_wifi") == "true",
		WheelchairAccessible: q.Get("wheelchair_accessible") == "true",
		OutdoorSeating:       q.Get("outdoor_seating") == "true",
	}

	if priceStr := q.Get("price_range"); priceStr != "" {
		for _, part := range strings.Split(priceStr, ",") {
			price, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("invalid price_range parameter")
			}
			params.PriceRange = append(params.PriceRange, price)
		}
	}

	for name, target := range map[string]**float64{
		"min_rating": &params.MinRating,
		"lat":        &params.Latitude,
		"lon":        &params.Longitude,
		"radius_km":  &params.RadiusKm,
	} {
		if valStr := q.Get(name); valStr != "" {
			val, err := strconv.ParseFloat(valStr, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid %s parameter", name)
			}
			*target = &val
		}
	}

	var err error
	params.Page, params.PerPage, err = parsePagination(r)
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(params); err != nil {
		return nil, fmt.Errorf("invalid search parameters: %v", err)
	}
	return params, nil
}
