package api

import (
	"net/http"
)

type recommendRequest struct {
	Preferences map[string]interface{} `json:"preferences"`
	City        string                 `json:"city,omitempty" validate:"omitempty,max=100"`
	MaxResults  int                    `json:"max_results,omitempty" validate:"omitempty,gte=1,lte=20"`
}

type moderateTextRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Recommend handles POST /api/v1/assist/recommendations
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var input recommendRequest
	if err := decodeAndValidate(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Recommend(r.Context(), input.Preferences, input.City, input.MaxResults)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ModerateText handles POST /api/v1/assist/moderate
func (h *Handler) ModerateText(w http.ResponseWriter, r *http.Request) {
	var input moderateTextRequest
	if err := decodeAndValidate(r, &input); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	verdict, err := h.service.ModerateText(r.Context(), input.Text)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}
