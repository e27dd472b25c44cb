package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fikaregister/fika-api/internal/model"
	"github.com/fikaregister/fika-api/internal/service"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandler_SearchPlaces(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockSetup      func(*MockService)
		expectedStatus int
	}{
		{
			name:  "successful request",
			query: "city=Stockholm&sort_by=rating&sort_order=desc",
			mockSetup: func(ms *MockService) {
				ms.On("SearchPlaces", mock.Anything, mock.MatchedBy(func(p *model.PlaceSearch) bool {
					return p.City == "Stockholm" && p.SortBy == model.SortByRating && p.SortOrder == model.SortOrderDesc
				})).Return(&model.PlaceList{
					Places: []model.Place{{ID: "p1", Name: "Vetekatten", City: "Stockholm"}},
					Total:  1, Page: 1, PerPage: 20, Pages: 1,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "price range filter",
			query: "price_range=1,2",
			mockSetup: func(ms *MockService) {
				ms.On("SearchPlaces", mock.Anything, mock.MatchedBy(func(p *model.PlaceSearch) bool {
					return len(p.PriceRange) == 2 && p.PriceRange[0] == 1 && p.PriceRange[1] == 2
				})).Return(&model.PlaceList{Places: []model.Place{}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid sort field",
			query:          "sort_by=popularity",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid price range",
			query:          "price_range=cheap",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid latitude",
			query:          "lat=123.0&lon=18.0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "per_page over the cap",
			query:          "per_page=500",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}

			handler := &Handler{service: mockService}

			req, _ := http.NewRequest("GET", "/api/v1/places?"+tt.query, nil)
			rr := httptest.NewRecorder()
			handler.SearchPlaces(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestHandler_NearbyPlaces(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockSetup      func(*MockService)
		expectedStatus int
	}{
		{
			name:  "successful request",
			query: "lat=59.3293&lon=18.0686&radius_km=2",
			mockSetup: func(ms *MockService) {
				ms.On("SearchPlaces", mock.Anything, mock.MatchedBy(func(p *model.PlaceSearch) bool {
					return p.SortBy == model.SortByDistance && p.RadiusKm != nil && *p.RadiusKm == 2.0
				})).Return(&model.PlaceList{Places: []model.Place{}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing coordinates",
			query:          "lat=59.3293",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "coordinates out of range",
			query:          "lat=95.0&lon=18.0686",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative radius",
			query:          "lat=59.3293&lon=18.0686&radius_km=-1",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}

			handler := &Handler{service: mockService}

			req, _ := http.NewRequest("GET", "/api/v1/places/nearby?"+tt.query, nil)
			rr := httptest.NewRecorder()
			handler.NearbyPlaces(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestHandler_GetPlace(t *testing.T) {
	t.Run("found by slug", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("GetPlace", mock.Anything, "vetekatten").
			Return(&model.Place{ID: "p1", Name: "Vetekatten", Slug: "vetekatten"}, nil)

		handler := &Handler{service: mockService}
		req, _ := http.NewRequest("GET", "/api/v1/places/vetekatten", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "vetekatten"})
		rr := httptest.NewRecorder()
		handler.GetPlace(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var place model.Place
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &place))
		assert.Equal(t, "Vetekatten", place.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("GetPlace", mock.Anything, "missing").
			Return(nil, fmt.Errorf("place %q: %w", "missing", service.ErrNotFound))

		handler := &Handler{service: mockService}
		req, _ := http.NewRequest("GET", "/api/v1/places/missing", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "missing"})
		rr := httptest.NewRecorder()
		handler.GetPlace(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandler_CreatePlace(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockService)
		expectedStatus int
	}{
		{
			name: "successful request",
			body: `{"name": "Vetekatten", "city": "Stockholm", "categories": ["Konditori"]}`,
			mockSetup: func(ms *MockService) {
				ms.On("CreatePlace", mock.Anything, mock.MatchedBy(func(in *model.PlaceCreate) bool {
					return in.Name == "Vetekatten" && in.City == "Stockholm"
				})).Return(&model.Place{ID: "p1", Name: "Vetekatten", Slug: "vetekatten"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing name",
			body:           `{"city": "Stockholm"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"name": `,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}

			handler := &Handler{service: mockService}

			req, _ := http.NewRequest("POST", "/api/v1/places", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.CreatePlace(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestHandler_DeletePlace(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("DeletePlace", mock.Anything, "p1").Return(nil)

		handler := &Handler{service: mockService}
		req, _ := http.NewRequest("DELETE", "/api/v1/places/p1", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "p1"})
		rr := httptest.NewRecorder()
		handler.DeletePlace(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("DeletePlace", mock.Anything, "missing").
			Return(fmt.Errorf("place %q: %w", "missing", service.ErrNotFound))

		handler := &Handler{service: mockService}
		req, _ := http.NewRequest("DELETE", "/api/v1/places/missing", nil)
		req = mux.SetURLVars(req, map[string]string{"id": "missing"})
		rr := httptest.NewRecorder()
		handler.DeletePlace(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandler_FeaturedPlaces(t *testing.T) {
	t.Run("with city and limit", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("FeaturedPlaces", mock.Anything, "Stockholm", 3).
			Return([]model.Place{{ID: "p1"}, {ID: "p2"}}, nil)

		handler := &Handler{service: mockService}
		req, _ := http.NewRequest("GET", "/api/v1/places/featured?city=Stockholm&limit=3", nil)
		rr := httptest.NewRecorder()
		handler.FeaturedPlaces(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("invalid limit", func(t *testing.T) {
		mockService := new(MockService)
		handler := &Handler{service: mockService}
		req, _ := http.NewRequest("GET", "/api/v1/places/featured?limit=zero", nil)
		rr := httptest.NewRecorder()
		handler.FeaturedPlaces(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandler_CreateReview(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockService)
		expectedStatus int
	}{
		{
			name: "successful request",
			body: `{"place_id": "9f4c3b1a-2d6e-4a8b-9c1d-3e5f7a9b1c2d", "rating": 5, "comment": "Fantastiska kanelbullar!"}`,
			mockSetup: func(ms *MockService) {
				ms.On("CreateReview", mock.Anything, mock.MatchedBy(func(in *model.ReviewCreate) bool {
					return in.Rating == 5
				})).Return(&model.Review{ID: "r1", Rating: 5}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "rating out of range",
			body:           `{"place_id": "9f4c3b1a-2d6e-4a8b-9c1d-3e5f7a9b1c2d", "rating": 6}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "place id not a uuid",
			body:           `{"place_id": "vetekatten", "rating": 4}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}

			handler := &Handler{service: mockService}

			req, _ := http.NewRequest("POST", "/api/v1/reviews", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.CreateReview(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestHandler_ModerateReview(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockSetup      func(*MockService)
		expectedStatus int
	}{
		{
			name: "approve",
			body: `{"review_id": "9f4c3b1a-2d6e-4a8b-9c1d-3e5f7a9b1c2d", "action": "approve"}`,
			mockSetup: func(ms *MockService) {
				ms.On("ModerateReview", mock.Anything, mock.MatchedBy(func(in *model.ModerationRequest) bool {
					return in.Action == "approve"
				})).Return(&model.Review{ID: "r1", Moderated: model.ModerationApproved}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown action",
			body:           `{"review_id": "9f4c3b1a-2d6e-4a8b-9c1d-3e5f7a9b1c2d", "action": "escalate"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			if tt.mockSetup != nil {
				tt.mockSetup(mockService)
			}

			handler := &Handler{service: mockService}

			req, _ := http.NewRequest("POST", "/api/v1/reviews/moderate", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			handler.ModerateReview(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestHandler_BulkModerate(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("BulkModerate", mock.Anything, mock.MatchedBy(func(in *model.BulkModerationRequest) bool {
			return len(in.ReviewIDs) == 2 && in.Action == "reject"
		})).Return(2, nil)

		handler := &Handler{service: mockService}
		body := `{"review_ids": ["9f4c3b1a-2d6e-4a8b-9c1d-3e5f7a9b1c2d", "1a2b3c4d-5e6f-4a1b-8c2d-9e8f7a6b5c4d"], "action": "reject"}`
		req, _ := http.NewRequest("POST", "/api/v1/reviews/moderate/bulk", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.BulkModerate(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var resp struct {
			Moderated int    `json:"moderated"`
			Action    string `json:"action"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, 2, resp.Moderated)
		assert.Equal(t, "reject", resp.Action)
	})

	t.Run("empty id list", func(t *testing.T) {
		mockService := new(MockService)
		handler := &Handler{service: mockService}
		req, _ := http.NewRequest("POST", "/api/v1/reviews/moderate/bulk", strings.NewReader(`{"review_ids": [], "action": "approve"}`))
		rr := httptest.NewRecorder()
		handler.BulkModerate(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestHandler_MarkHelpful(t *testing.T) {
	mockService := new(MockService)
	mockService.On("MarkHelpful", mock.Anything, "r1").
		Return(&model.Review{ID: "r1", HelpfulCount: 4}, nil)

	handler := &Handler{service: mockService}
	req, _ := http.NewRequest("POST", "/api/v1/reviews/r1/helpful", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "r1"})
	rr := httptest.NewRecorder()
	handler.MarkHelpful(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var review model.Review
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &review))
	assert.Equal(t, 4, review.HelpfulCount)
}

func TestHandler_Recommend(t *testing.T) {
	t.Run("text too long", func(t *testing.T) {
		mockService := new(MockService)
		handler := &Handler{service: mockService}
		req, _ := http.NewRequest("POST", "/api/v1/assist/moderate", strings.NewReader(`{"text": "`+strings.Repeat("a", 2100)+`"}`))
		rr := httptest.NewRecorder()
		handler.ModerateText(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("max results over the cap", func(t *testing.T) {
		mockService := new(MockService)
		handler := &Handler{service: mockService}
		req, _ := http.NewRequest("POST", "/api/v1/assist/recommendations", strings.NewReader(`{"max_results": 100}`))
		rr := httptest.NewRecorder()
		handler.Recommend(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
