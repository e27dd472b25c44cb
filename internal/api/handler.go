package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/fikaregister/fika-api/internal/model"
	"github.com/fikaregister/fika-api/internal/service"
	"github.com/gorilla/mux"
)

// Handler handles HTTP requests
type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates a new handler instance
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// respondError maps service errors to HTTP status codes
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, service.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Printf("Internal error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// SearchPlaces handles GET /api/v1/places
func (h *Handler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	params, err := parseSearchParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.service.SearchPlaces(r.Context(), params)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// NearbyPlaces handles GET /api/v1/places/nearby
func (h *Handler) NearbyPlaces(w http.ResponseWriter, r *http.Request) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" || lonStr == "" {
		http.Error(w, "parameters 'lat' and 'lon' are required", http.StatusBadRequest)
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		http.Error(w, "invalid lat parameter", http.StatusBadRequest)
		return
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		http.Error(w, "invalid lon parameter", http.StatusBadRequest)
		return
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		http.Error(w, "invalid coordinates range", http.StatusBadRequest)
		return
	}

	params := &model.PlaceSearch{
		Latitude:  &lat,
		Longitude: &lon,
		SortBy:    model.SortByDistance,
	}
	if radiusStr := r.URL.Query().Get("radius_km"); radiusStr != "" {
		radius, err := strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius <= 0 {
			http.Error(w, "invalid radius_km parameter", http.StatusBadRequest)
			return
		}
		params.RadiusKm = &radius
	}
	params.Page, params.PerPage, err = parsePagination(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.service.SearchPlaces(r.Context(), params)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Cities handles GET /api/v1/places/cities
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.Cities(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cities": cities,
		"count":  len(cities),
	})
}

// FeaturedPlaces handles GET /api/v1/places/featured
func (h *Handler) FeaturedPlaces(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
	}

	places, err := h.service.FeaturedPlaces(r.Context(), city, limit)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"places": places,
		"count":  len(places),
	})
}

// GetPlace handles GET /api/v1/places/{id} (id or slug)
func (h *Handler) GetPlace(w http.ResponseWriter, r *http.Request) {
	place, err := h.service.GetPlace(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// CreatePlace handles POST /api/v1/places
func (h *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var input model.PlaceCreate
	if err := decodeAndValidate(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	place, err := h.service.CreatePlace(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, place)
}

// UpdatePlace handles PUT /api/v1/places/{id}
func (h *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	var input model.PlaceUpdate
	if err := decodeAndValidate(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	place, err := h.service.UpdatePlace(r.Context(), mux.Vars(r)["id"], &input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// DeletePlace handles DELETE /api/v1/places/{id}
func (h *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePlace(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PlaceReviews handles GET /api/v1/places/{id}/reviews
func (h *Handler) PlaceReviews(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := parsePagination(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.service.PlaceReviews(r.Context(), mux.Vars(r)["id"], page, perPage)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// PlaceStatistics handles GET /api/v1/places/{id}/stats
func (h *Handler) PlaceStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.PlaceStatistics(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// EnrichPlace handles POST /api/v1/places/{id}/enrich
func (h *Handler) EnrichPlace(w http.ResponseWriter, r *http.Request) {
	enrichment, err := h.service.EnrichPlace(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, enrichment)
}

// ListCategories handles GET /api/v1/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
