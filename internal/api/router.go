package api

import (
	"github.com/fikaregister/fika-api/internal/service"
	"github.com/fikaregister/fika-api/internal/stats"
	"github.com/gorilla/mux"
)

// NewRouter creates a new HTTP router
func NewRouter(service service.ServiceInterface, statsCollector *stats.Collector) *mux.Router {
	handler := NewHandler(service)
	statsHandler := NewStatsHandler(statsCollector)

	router := mux.NewRouter()

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1
	v1 := router.PathPrefix("/api/v1").Subrouter()

	// Static place routes go before the {id} pattern
	v1.HandleFunc("/places", handler.SearchPlaces).Methods("GET")
	v1.HandleFunc("/places", handler.CreatePlace).Methods("POST")
	v1.HandleFunc("/places/nearby", handler.NearbyPlaces).Methods("GET")
	v1.HandleFunc("/places/cities", handler.Cities).Methods("GET")
	v1.HandleFunc("/places/featured", handler.FeaturedPlaces).Methods("GET")
	v1.HandleFunc("/places/{id}", handler.GetPlace).Methods("GET")
	v1.HandleFunc("/places/{id}", handler.UpdatePlace).Methods("PUT")
	v1.HandleFunc("/places/{id}", handler.DeletePlace).Methods("DELETE")
	v1.HandleFunc("/places/{id}/reviews", handler.PlaceReviews).Methods("GET")
	v1.HandleFunc("/places/{id}/stats", handler.PlaceStatistics).Methods("GET")
	v1.HandleFunc("/places/{id}/enrich", handler.EnrichPlace).Methods("POST")

	// Static review routes go before the {id} pattern
	v1.HandleFunc("/reviews", handler.CreateReview).Methods("POST")
	v1.HandleFunc("/reviews/pending", handler.PendingReviews).Methods("GET")
	v1.HandleFunc("/reviews/recent", handler.RecentReviews).Methods("GET")
	v1.HandleFunc("/reviews/user/{name}", handler.UserReviews).Methods("GET")
	v1.HandleFunc("/reviews/moderate", handler.ModerateReview).Methods("POST")
	v1.HandleFunc("/reviews/moderate/bulk", handler.BulkModerate).Methods("POST")
	v1.HandleFunc("/reviews/{id}", handler.GetReview).Methods("GET")
	v1.HandleFunc("/reviews/{id}", handler.UpdateReview).Methods("PUT")
	v1.HandleFunc("/reviews/{id}", handler.DeleteReview).Methods("DELETE")
	v1.HandleFunc("/reviews/{id}/helpful", handler.MarkHelpful).Methods("POST")

	v1.HandleFunc("/categories", handler.ListCategories).Methods("GET")

	v1.HandleFunc("/assist/recommendations", handler.Recommend).Methods("POST")
	v1.HandleFunc("/assist/moderate", handler.ModerateText).Methods("POST")

	v1.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	return router
}
