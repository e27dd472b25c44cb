package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fikaregister/fika-api/internal/assist"
	"github.com/fikaregister/fika-api/internal/cache"
	"github.com/fikaregister/fika-api/internal/model"
	"github.com/fikaregister/fika-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultFeaturedLimit = 10
	maxFeaturedLimit     = 50
)

// SearchPlaces runs a cached place search with the full filter set
func (s *Service) SearchPlaces(ctx context.Context, params *model.PlaceSearch) (*model.PlaceList, error) {
	params.Normalize()
	// Distance ordering is meaningless without a reference point
	if params.SortBy == model.SortByDistance && !params.HasGeoFilter() {
		params.SortBy = model.SortByName
	}

	key := cache.SearchKey(params)
	if raw, ok := s.cache.Get(key); ok {
		var list model.PlaceList
		if err := json.Unmarshal(raw, &list); err == nil {
			return &list, nil
		}
	}

	places, total, err := s.store.Place().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search places: %w", err)
	}
	if places == nil {
		places = []model.Place{}
	}

	list := &model.PlaceList{
		Places:  places,
		Total:   total,
		Page:    params.Page,
		PerPage: params.PerPage,
		Pages:   pageCount(total, params.PerPage),
	}
	if raw, err := json.Marshal(list); err == nil {
		s.cache.Set(key, raw, s.cacheTTL)
	}
	return list, nil
}

// GetPlace looks a place up by id or slug
func (s *Service) GetPlace(ctx context.Context, idOrSlug string) (*model.Place, error) {
	key := cache.PlaceKey(idOrSlug)
	if raw, ok := s.cache.Get(key); ok {
		var place model.Place
		if err := json.Unmarshal(raw, &place); err == nil {
			return &place, nil
		}
	}

	place, err := s.store.Place().GetByID(ctx, idOrSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	if place == nil {
		place, err = s.store.Place().GetBySlug(ctx, idOrSlug)
		if err != nil {
			return nil, fmt.Errorf("failed to get place: %w", err)
		}
	}
	if place == nil {
		return nil, fmt.Errorf("place %q: %w", idOrSlug, ErrNotFound)
	}

	if raw, err := json.Marshal(place); err == nil {
		s.cache.Set(key, raw, s.cacheTTL)
	}
	return place, nil
}

// CreatePlace stores a new place with a unique slug and its category links
func (s *Service) CreatePlace(ctx context.Context, input *model.PlaceCreate) (*model.Place, error) {
	place := &model.Place{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Description:     input.Description,
		Address:         input.Address,
		City:            input.City,
		Region:          input.Region,
		Latitude:        input.Latitude,
		Longitude:       input.Longitude,
		Phone:           input.Phone,
		Website:         input.Website,
		OpeningHours:    model.StringMap(input.OpeningHours),
		FikaSpecialties: model.StringList(input.FikaSpecialties),
		PriceRange:      input.PriceRange,
		Features:        model.StringList(input.Features),
		Images:          model.StringList(input.Images),
	}

	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := assignSlug(ctx, tx, place); err != nil {
			return err
		}
		if err := tx.Place().Create(ctx, place); err != nil {
			return fmt.Errorf("failed to create place: %w", err)
		}
		return s.linkCategories(ctx, tx, place.ID, input.Categories)
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePlace(place)
	s.logger.Info("place created",
		zap.String("id", place.ID),
		zap.String("slug", place.Slug),
		zap.String("city", place.City))
	return place, nil
}

// UpdatePlace applies a partial update; a changed name gets a fresh slug
func (s *Service) UpdatePlace(ctx context.Context, id string, input *model.PlaceUpdate) (*model.Place, error) {
	place, err := s.store.Place().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	if place == nil {
		return nil, fmt.Errorf("place %q: %w", id, ErrNotFound)
	}
	oldCity, oldSlug := place.City, place.Slug
	renamed := input.Name != nil && *input.Name != place.Name
	applyPlaceUpdate(place, input)

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if renamed {
			if err := assignSlug(ctx, tx, place); err != nil {
				return err
			}
		}
		if err := tx.Place().Update(ctx, place); err != nil {
			return fmt.Errorf("failed to update place: %w", err)
		}
		if input.Categories != nil {
			return s.linkCategories(ctx, tx, place.ID, input.Categories)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePlace(place)
	s.cache.Invalidate(cache.PlaceKey(oldSlug), cache.PlacesPattern(oldCity))
	return place, nil
}

// DeletePlace removes a place together with its reviews and category links
// in a single transaction
func (s *Service) DeletePlace(ctx context.Context, id string) error {
	place, err := s.store.Place().GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get place: %w", err)
	}
	if place == nil {
		return fmt.Errorf("place %q: %w", id, ErrNotFound)
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		if err := tx.Review().DeleteByPlace(ctx, id); err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}
		if err := tx.Category().DeleteByPlace(ctx, id); err != nil {
			return fmt.Errorf("failed to delete category links: %w", err)
		}
		if err := tx.Place().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete place: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidatePlaceReviews(place)
	s.logger.Info("place deleted", zap.String("id", id), zap.String("slug", place.Slug))
	return nil
}

// Cities lists every city with at least one place
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	cities, err := s.store.Place().Cities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	if cities == nil {
		cities = []string{}
	}
	return cities, nil
}

// FeaturedPlaces lists verified, well-rated places
func (s *Service) FeaturedPlaces(ctx context.Context, city string, limit int) ([]model.Place, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}
	places, err := s.store.Place().Featured(ctx, city, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured places: %w", err)
	}
	if places == nil {
		places = []model.Place{}
	}
	return places, nil
}

// PlaceStatistics summarizes a place's approved reviews
func (s *Service) PlaceStatistics(ctx context.Context, placeID string) (*model.PlaceStatistics, error) {
	place, err := s.store.Place().GetByID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	if place == nil {
		return nil, fmt.Errorf("place %q: %w", placeID, ErrNotFound)
	}

	stats, err := s.store.Review().Statistics(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}
	return stats, nil
}

// ListCategories returns the category vocabulary
func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.store.Category().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, nil
}

// EnrichPlace asks the oracle for advisory content suggestions; nothing is
// persisted.
func (s *Service) EnrichPlace(ctx context.Context, idOrSlug string) (*assist.Enrichment, error) {
	place, err := s.GetPlace(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return s.oracle.Enrich(ctx, place)
}

func (s *Service) linkCategories(ctx context.Context, tx repository.Store, placeID string, names []string) error {
	if names == nil {
		return nil
	}
	categories, err := tx.Category().EnsureByNames(ctx, names)
	if err != nil {
		return fmt.Errorf("failed to resolve categories: %w", err)
	}
	ids := make([]string, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	if err := tx.Category().ReplacePlaceCategories(ctx, placeID, ids); err != nil {
		return fmt.Errorf("failed to link categories: %w", err)
	}
	return nil
}

func applyPlaceUpdate(place *model.Place, input *model.PlaceUpdate) {
	if input.Name != nil {
		place.Name = *input.Name
	}
	if input.Description != nil {
		place.Description = input.Description
	}
	if input.Address != nil {
		place.Address = input.Address
	}
	if input.City != nil {
		place.City = *input.City
	}
	if input.Region != nil {
		place.Region = input.Region
	}
	if input.Latitude != nil {
		place.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		place.Longitude = input.Longitude
	}
	if input.Phone != nil {
		place.Phone = input.Phone
	}
	if input.Website != nil {
		place.Website = input.Website
	}
	if input.OpeningHours != nil {
		place.OpeningHours = model.StringMap(input.OpeningHours)
	}
	if input.FikaSpecialties != nil {
		place.FikaSpecialties = model.StringList(input.FikaSpecialties)
	}
	if input.PriceRange != nil {
		place.PriceRange = input.PriceRange
	}
	if input.Features != nil {
		place.Features = model.StringList(input.Features)
	}
	if input.Images != nil {
		place.Images = model.StringList(input.Images)
	}
	if input.Verified != nil {
		place.Verified = *input.Verified
	}
}
