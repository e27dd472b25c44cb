package service

import (
	"context"

	"github.com/fikaregister/fika-api/internal/assist"
	"github.com/fikaregister/fika-api/internal/model"
)

// ServiceInterface defines the service interface for testing
type ServiceInterface interface {
	SearchPlaces(ctx context.Context, params *model.PlaceSearch) (*model.PlaceList, error)
	GetPlace(ctx context.Context, idOrSlug string) (*model.Place, error)
	CreatePlace(ctx context.Context, input *model.PlaceCreate) (*model.Place, error)
	UpdatePlace(ctx context.Context, id string, input *model.PlaceUpdate) (*model.Place, error)
	DeletePlace(ctx context.Context, id string) error
	Cities(ctx context.Context) ([]string, error)
	FeaturedPlaces(ctx context.Context, city string, limit int) ([]model.Place, error)
	PlaceStatistics(ctx context.Context, placeID string) (*model.PlaceStatistics, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	EnrichPlace(ctx context.Context, idOrSlug string) (*assist.Enrichment, error)

	PlaceReviews(ctx context.Context, placeID string, page, perPage int) (*model.ReviewList, error)
	CreateReview(ctx context.Context, input *model.ReviewCreate) (*model.Review, error)
	GetReview(ctx context.Context, id string) (*model.Review, error)
	UpdateReview(ctx context.Context, id string, input *model.ReviewUpdate) (*model.Review, error)
	DeleteReview(ctx context.Context, id string) error
	ModerateReview(ctx context.Context, input *model.ModerationRequest) (*model.Review, error)
	BulkModerate(ctx context.Context, input *model.BulkModerationRequest) (int, error)
	PendingReviews(ctx context.Context, page, perPage int) (*model.ReviewList, error)
	RecentReviews(ctx context.Context, limit int) ([]model.Review, error)
	UserReviews(ctx context.Context, userName string, page, perPage int) (*model.ReviewList, error)
	MarkHelpful(ctx context.Context, id string) (*model.Review, error)

	Recommend(ctx context.Context, preferences map[string]interface{}, city string, maxResults int) (*assist.RecommendationResult, error)
	ModerateText(ctx context.Context, text string) (*assist.Moderation, error)
}
