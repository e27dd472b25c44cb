package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fikaregister/fika-api/internal/cache"
	"github.com/fikaregister/fika-api/internal/model"
	"github.com/fikaregister/fika-api/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	minCommentLength   = 10
	defaultLanguage    = "sv"
	defaultRecentLimit = 10
	maxRecentLimit     = 50
)

// PlaceReviews lists a place's approved reviews, newest first
func (s *Service) PlaceReviews(ctx context.Context, placeID string, page, perPage int) (*model.ReviewList, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > model.MaxPerPage {
		perPage = model.DefaultPerPage
	}

	place, err := s.store.Place().GetByID(ctx, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	if place == nil {
		return nil, fmt.Errorf("place %q: %w", placeID, ErrNotFound)
	}

	key := cache.ReviewsKey(placeID, page, perPage)
	if raw, ok := s.cache.Get(key); ok {
		var list model.ReviewList
		if err := json.Unmarshal(raw, &list); err == nil {
			return &list, nil
		}
	}

	reviews, total, err := s.store.Review().ListByPlace(ctx, placeID, true, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	list := newReviewList(reviews, total, page, perPage)
	if raw, err := json.Marshal(list); err == nil {
		s.cache.Set(key, raw, s.cacheTTL)
	}
	return list, nil
}

// CreateReview stores a review in pending moderation state
func (s *Service) CreateReview(ctx context.Context, input *model.ReviewCreate) (*model.Review, error) {
	if err := validateComment(input.Comment); err != nil {
		return nil, err
	}

	language := defaultLanguage
	if input.Language != nil && *input.Language != "" {
		language = *input.Language
	}
	review := &model.Review{
		ID:        uuid.NewString(),
		PlaceID:   input.PlaceID,
		UserName:  input.UserName,
		Rating:    input.Rating,
		Comment:   input.Comment,
		FikaItems: model.StringList(input.FikaItems),
		VisitDate: input.VisitDate,
		VisitTime: input.VisitTime,
		Moderated: model.ModerationPending,
		Language:  language,
	}

	var place *model.Place
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		place, err = tx.Place().GetByID(ctx, input.PlaceID)
		if err != nil {
			return fmt.Errorf("failed to get place: %w", err)
		}
		if place == nil {
			return fmt.Errorf("place %q: %w", input.PlaceID, ErrNotFound)
		}
		if err := tx.Review().Create(ctx, review); err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return tx.Review().RecomputeRating(ctx, input.PlaceID)
	})
	if err != nil {
		return nil, err
	}

	s.invalidatePlaceReviews(place)
	s.logger.Info("review created",
		zap.String("id", review.ID),
		zap.String("place_id", review.PlaceID),
		zap.Int("rating", review.Rating))
	return review, nil
}

// GetReview returns a single review by id
func (s *Service) GetReview(ctx context.Context, id string) (*model.Review, error) {
	review, err := s.store.Review().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %q: %w", id, ErrNotFound)
	}
	return review, nil
}

// UpdateReview applies a partial review update; a changed rating triggers a
// recompute of the place aggregate
func (s *Service) UpdateReview(ctx context.Context, id string, input *model.ReviewUpdate) (*model.Review, error) {
	if err := validateComment(input.Comment); err != nil {
		return nil, err
	}

	var review *model.Review
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		review, err = tx.Review().GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get review: %w", err)
		}
		if review == nil {
			return fmt.Errorf("review %q: %w", id, ErrNotFound)
		}

		ratingChanged := input.Rating != nil && *input.Rating != review.Rating
		applyReviewUpdate(review, input)

		if err := tx.Review().Update(ctx, review); err != nil {
			return fmt.Errorf("failed to update review: %w", err)
		}
		if ratingChanged {
			return tx.Review().RecomputeRating(ctx, review.PlaceID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateForReview(ctx, review)
	return review, nil
}

// DeleteReview removes a review and recomputes the place aggregate
func (s *Service) DeleteReview(ctx context.Context, id string) error {
	var review *model.Review
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		review, err = tx.Review().GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get review: %w", err)
		}
		if review == nil {
			return fmt.Errorf("review %q: %w", id, ErrNotFound)
		}
		if err := tx.Review().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		return tx.Review().RecomputeRating(ctx, review.PlaceID)
	})
	if err != nil {
		return err
	}

	s.invalidateForReview(ctx, review)
	s.logger.Info("review deleted", zap.String("id", id), zap.String("place_id", review.PlaceID))
	return nil
}

// ModerateReview transitions a review's moderation state. Re-moderation is
// allowed; the aggregate is recomputed whenever the approved set changes.
func (s *Service) ModerateReview(ctx context.Context, input *model.ModerationRequest) (*model.Review, error) {
	status, err := moderationStatus(input.Action)
	if err != nil {
		return nil, err
	}

	var review *model.Review
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		var err error
		review, err = tx.Review().GetByID(ctx, input.ReviewID)
		if err != nil {
			return fmt.Errorf("failed to get review: %w", err)
		}
		if review == nil {
			return fmt.Errorf("review %q: %w", input.ReviewID, ErrNotFound)
		}

		previous := review.Moderated
		now := time.Now().UTC()
		if err := tx.Review().SetModeration(ctx, review.ID, status, now); err != nil {
			return fmt.Errorf("failed to set moderation: %w", err)
		}
		review.Moderated = status
		review.ModeratedAt = &now

		if status == model.ModerationApproved || previous == model.ModerationApproved {
			return tx.Review().RecomputeRating(ctx, review.PlaceID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateForReview(ctx, review)
	s.logger.Info("review moderated",
		zap.String("id", review.ID),
		zap.String("action", input.Action))
	return review, nil
}

// BulkModerate applies one moderation action to many reviews and returns
// how many were found and transitioned. Each affected place's aggregate is
// recomputed once.
func (s *Service) BulkModerate(ctx context.Context, input *model.BulkModerationRequest) (int, error) {
	status, err := moderationStatus(input.Action)
	if err != nil {
		return 0, err
	}

	moderated := 0
	affected := make(map[string]bool)
	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		now := time.Now().UTC()
		for _, id := range input.ReviewIDs {
			review, err := tx.Review().GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to get review: %w", err)
			}
			if review == nil {
				continue
			}
			if err := tx.Review().SetModeration(ctx, id, status, now); err != nil {
				return fmt.Errorf("failed to set moderation: %w", err)
			}
			moderated++
			if status == model.ModerationApproved || review.Moderated == model.ModerationApproved {
				affected[review.PlaceID] = true
			}
		}
		for placeID := range affected {
			if err := tx.Review().RecomputeRating(ctx, placeID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for placeID := range affected {
		if place, err := s.store.Place().GetByID(ctx, placeID); err == nil && place != nil {
			s.invalidatePlaceReviews(place)
		}
	}
	s.logger.Info("reviews bulk moderated",
		zap.String("action", input.Action),
		zap.Int("count", moderated))
	return moderated, nil
}

// PendingReviews lists the moderation queue, oldest first
func (s *Service) PendingReviews(ctx context.Context, page, perPage int) (*model.ReviewList, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > model.MaxPerPage {
		perPage = model.DefaultPerPage
	}
	reviews, total, err := s.store.Review().ListPending(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reviews: %w", err)
	}
	return newReviewList(reviews, total, page, perPage), nil
}

// RecentReviews lists the latest approved reviews across all places
func (s *Service) RecentReviews(ctx context.Context, limit int) ([]model.Review, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	reviews, err := s.store.Review().ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reviews: %w", err)
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return reviews, nil
}

// UserReviews lists the approved reviews left under a user name
func (s *Service) UserReviews(ctx context.Context, userName string, page, perPage int) (*model.ReviewList, error) {
	if strings.TrimSpace(userName) == "" {
		return nil, fmt.Errorf("user name required: %w", ErrValidation)
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > model.MaxPerPage {
		perPage = model.DefaultPerPage
	}
	reviews, total, err := s.store.Review().ListByUser(ctx, userName, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("failed to list user reviews: %w", err)
	}
	return newReviewList(reviews, total, page, perPage), nil
}

// MarkHelpful bumps a review's helpful counter
func (s *Service) MarkHelpful(ctx context.Context, id string) (*model.Review, error) {
	review, err := s.store.Review().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %q: %w", id, ErrNotFound)
	}

	if err := s.store.Review().IncrementHelpful(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to mark review helpful: %w", err)
	}
	review.HelpfulCount++

	s.cache.Invalidate(cache.ReviewsPattern(review.PlaceID))
	return review, nil
}

func (s *Service) invalidateForReview(ctx context.Context, review *model.Review) {
	place, err := s.store.Place().GetByID(ctx, review.PlaceID)
	if err != nil || place == nil {
		s.cache.Invalidate(
			cache.PlaceKey(review.PlaceID),
			cache.ReviewsPattern(review.PlaceID),
			cache.SearchPattern,
		)
		return
	}
	s.invalidatePlaceReviews(place)
}

func newReviewList(reviews []model.Review, total, page, perPage int) *model.ReviewList {
	if reviews == nil {
		reviews = []model.Review{}
	}
	return &model.ReviewList{
		Reviews: reviews,
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Pages:   pageCount(total, perPage),
	}
}

func applyReviewUpdate(review *model.Review, input *model.ReviewUpdate) {
	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		review.Comment = input.Comment
	}
	if input.FikaItems != nil {
		review.FikaItems = model.StringList(input.FikaItems)
	}
	if input.VisitDate != nil {
		review.VisitDate = input.VisitDate
	}
	if input.VisitTime != nil {
		review.VisitTime = input.VisitTime
	}
	if input.UserName != nil {
		review.UserName = input.UserName
	}
}

func validateComment(comment *string) error {
	if comment == nil {
		return nil
	}
	if len(strings.TrimSpace(*comment)) < minCommentLength {
		return fmt.Errorf("comment must be at least %d characters: %w", minCommentLength, ErrValidation)
	}
	return nil
}

func moderationStatus(action string) (model.ModerationStatus, error) {
	switch action {
	case "approve":
		return model.ModerationApproved, nil
	case "reject":
		return model.ModerationRejected, nil
	default:
		return model.ModerationPending, fmt.Errorf("unknown moderation action %q: %w", action, ErrValidation)
	}
}
