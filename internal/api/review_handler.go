package api

import (
	"net/http"
	"strconv"

	"github.com/fikaregister/fika-api/internal/model"
	"github.com/gorilla/mux"
)

// CreateReview handles POST /api/v1/reviews
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var input model.ReviewCreate
	if err := decodeAndValidate(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.service.CreateReview(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// GetReview handles GET /api/v1/reviews/{id}
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetReview(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// UpdateReview handles PUT /api/v1/reviews/{id}
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var input model.ReviewUpdate
	if err := decodeAndValidate(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), mux.Vars(r)["id"], &input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/v1/reviews/{id}
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteReview(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MarkHelpful handles POST /api/v1/reviews/{id}/helpful
func (h *Handler) MarkHelpful(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.MarkHelpful(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// PendingReviews handles GET /api/v1/reviews/pending
func (h *Handler) PendingReviews(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := parsePagination(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.service.PendingReviews(r.Context(), page, perPage)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// RecentReviews handles GET /api/v1/reviews/recent
func (h *Handler) RecentReviews(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			http.Error(w, "invalid limit parameter", http.StatusBadRequest)
			return
		}
	}

	reviews, err := h.service.RecentReviews(r.Context(), limit)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// UserReviews handles GET /api/v1/reviews/user/{name}
func (h *Handler) UserReviews(w http.ResponseWriter, r *http.Request) {
	page, perPage, err := parsePagination(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.service.UserReviews(r.Context(), mux.Vars(r)["name"], page, perPage)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ModerateReview handles POST /api/v1/reviews/moderate
func (h *Handler) ModerateReview(w http.ResponseWriter, r *http.Request) {
	var input model.ModerationRequest
	if err := decodeAndValidate(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	review, err := h.service.ModerateReview(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

// BulkModerate handles POST /api/v1/reviews/moderate/bulk
func (h *Handler) BulkModerate(w http.ResponseWriter, r *http.Request) {
	var input model.BulkModerationRequest
	if err := decodeAndValidate(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	count, err := h.service.BulkModerate(r.Context(), &input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"moderated": count,
		"action":    input.Action,
	})
}
