package service

import (
	"time"

	"github.com/fikaregister/fika-api/internal/assist"
	"github.com/fikaregister/fika-api/internal/cache"
	"github.com/fikaregister/fika-api/internal/model"
	"github.com/fikaregister/fika-api/internal/repository"
	"go.uber.org/zap"
)

// Service provides business logic for the API
type Service struct {
	store    repository.Store
	cache    cache.Store
	cacheTTL time.Duration
	oracle   assist.Oracle
	logger   *zap.Logger
}

// NewService creates a new service instance
func NewService(
	store repository.Store,
	cacheStore cache.Store,
	cacheTTL time.Duration,
	oracle assist.Oracle,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:    store,
		cache:    cacheStore,
		cacheTTL: cacheTTL,
		oracle:   oracle,
		logger:   logger,
	}
}

func pageCount(total, perPage int) int {
	if total == 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// invalidatePlace drops every cache entry a place mutation can make stale
func (s *Service) invalidatePlace(place *model.Place) {
	s.cache.Invalidate(
		cache.PlaceKey(place.ID),
		cache.PlaceKey(place.Slug),
		cache.PlacesPattern(place.City),
		cache.SearchPattern,
	)
}

// invalidatePlaceReviews additionally drops the place's review listings
func (s *Service) invalidatePlaceReviews(place *model.Place) {
	s.invalidatePlace(place)
	s.cache.Invalidate(cache.ReviewsPattern(place.ID))
}
