package api

import (
	"context"

	"github.com/fikaregister/fika-api/internal/assist"
	"github.com/fikaregister/fika-api/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of ServiceInterface
type MockService struct {
	mock.Mock
}

func (m *MockService) SearchPlaces(ctx context.Context, params *model.PlaceSearch) (*model.PlaceList, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaceList), args.Error(1)
}

func (m *MockService) GetPlace(ctx context.Context, idOrSlug string) (*model.Place, error) {
	args := m.Called(ctx, idOrSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

func (m *MockService) CreatePlace(ctx context.Context, input *model.PlaceCreate) (*model.Place, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

func (m *MockService) UpdatePlace(ctx context.Context, id string, input *model.PlaceUpdate) (*model.Place, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

func (m *MockService) DeletePlace(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService) Cities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockService) FeaturedPlaces(ctx context.Context, city string, limit int) ([]model.Place, error) {
	args := m.Called(ctx, city, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Place), args.Error(1)
}

func (m *MockService) PlaceStatistics(ctx context.Context, placeID string) (*model.PlaceStatistics, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaceStatistics), args.Error(1)
}

func (m *MockService) ListCategories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockService) EnrichPlace(ctx context.Context, idOrSlug string) (*assist.Enrichment, error) {
	args := m.Called(ctx, idOrSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assist.Enrichment), args.Error(1)
}

func (m *MockService) PlaceReviews(ctx context.Context, placeID string, page, perPage int) (*model.ReviewList, error) {
	args := m.Called(ctx, placeID, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewList), args.Error(1)
}

func (m *MockService) CreateReview(ctx context.Context, input *model.ReviewCreate) (*model.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockService) GetReview(ctx context.Context, id string) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockService) UpdateReview(ctx context.Context, id string, input *model.ReviewUpdate) (*model.Review, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockService) DeleteReview(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockService) ModerateReview(ctx context.Context, input *model.ModerationRequest) (*model.Review, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockService) BulkModerate(ctx context.Context, input *model.BulkModerationRequest) (int, error) {
	args := m.Called(ctx, input)
	return args.Int(0), args.Error(1)
}

func (m *MockService) PendingReviews(ctx context.Context, page, perPage int) (*model.ReviewList, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewList), args.Error(1)
}

func (m *MockService) RecentReviews(ctx context.Context, limit int) ([]model.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockService) UserReviews(ctx context.Context, userName string, page, perPage int) (*model.ReviewList, error) {
	args := m.Called(ctx, userName, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ReviewList), args.Error(1)
}

func (m *MockService) MarkHelpful(ctx context.Context, id string) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockService) Recommend(ctx context.Context, preferences map[string]interface{}, city string, maxResults int) (*assist.RecommendationResult, error) {
	args := m.Called(ctx, preferences, city, maxResults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assist.RecommendationResult), args.Error(1)
}

func (m *MockService) ModerateText(ctx context.Context, text string) (*assist.Moderation, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*assist.Moderation), args.Error(1)
}
