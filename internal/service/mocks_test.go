package service

import (
	"context"
	"time"

	"github.com/fikaregister/fika-api/internal/assist"
	"github.com/fikaregister/fika-api/internal/cache"
	"github.com/fikaregister/fika-api/internal/model"
	"github.com/fikaregister/fika-api/internal/repository"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func newTestService(store *MockStore) *Service {
	return NewService(store, cache.NewMemory(), time.Minute, &assist.Fallback{}, zap.NewNop())
}

// MockPlaceRepository implements repository.PlaceRepository
type MockPlaceRepository struct {
	mock.Mock
}

func (m *MockPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) GetByID(ctx context.Context, id string) (*model.Place, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

func (m *MockPlaceRepository) GetBySlug(ctx context.Context, slug string) (*model.Place, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Place), args.Error(1)
}

func (m *MockPlaceRepository) Update(ctx context.Context, place *model.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

func (m *MockPlaceRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlaceRepository) Search(ctx context.Context, params *model.PlaceSearch) ([]model.Place, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Place), args.Int(1), args.Error(2)
}

func (m *MockPlaceRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPlaceRepository) Cities(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPlaceRepository) Featured(ctx context.Context, city string, limit int) ([]model.Place, error) {
	args := m.Called(ctx, city, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Place), args.Error(1)
}

// MockReviewRepository implements repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) DeleteByPlace(ctx context.Context, placeID string) error {
	args := m.Called(ctx, placeID)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByPlace(ctx context.Context, placeID string, approvedOnly bool, page, perPage int) ([]model.Review, int, error) {
	args := m.Called(ctx, placeID, approvedOnly, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) ListPending(ctx context.Context, page, perPage int) ([]model.Review, int, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) ListRecent(ctx context.Context, limit int) ([]model.Review, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByUser(ctx context.Context, userName string, page, perPage int) ([]model.Review, int, error) {
	args := m.Called(ctx, userName, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) SetModeration(ctx context.Context, id string, status model.ModerationStatus, at time.Time) error {
	args := m.Called(ctx, id, status, at)
	return args.Error(0)
}

func (m *MockReviewRepository) IncrementHelpful(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) RecomputeRating(ctx context.Context, placeID string) error {
	args := m.Called(ctx, placeID)
	return args.Error(0)
}

func (m *MockReviewRepository) Statistics(ctx context.Context, placeID string) (*model.PlaceStatistics, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PlaceStatistics), args.Error(1)
}

// MockCategoryRepository implements repository.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) EnsureByNames(ctx context.Context, names []string) ([]model.Category, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) Upsert(ctx context.Context, category *model.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ListByPlace(ctx context.Context, placeID string) ([]model.Category, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockCategoryRepository) ReplacePlaceCategories(ctx context.Context, placeID string, categoryIDs []string) error {
	args := m.Called(ctx, placeID, categoryIDs)
	return args.Error(0)
}

func (m *MockCategoryRepository) DeleteByPlace(ctx context.Context, placeID string) error {
	args := m.Called(ctx, placeID)
	return args.Error(0)
}

// MockStore bundles the repository mocks; WithTx runs the callback against
// the same mocks, matching the real store's join-the-transaction behavior.
type MockStore struct {
	place    *MockPlaceRepository
	review   *MockReviewRepository
	category *MockCategoryRepository
}

func newMockStore() *MockStore {
	return &MockStore{
		place:    new(MockPlaceRepository),
		review:   new(MockReviewRepository),
		category: new(MockCategoryRepository),
	}
}

func (m *MockStore) Place() repository.PlaceRepository       { return m.place }
func (m *MockStore) Review() repository.ReviewRepository     { return m.review }
func (m *MockStore) Category() repository.CategoryRepository { return m.category }

func (m *MockStore) WithTx(_ context.Context, fn func(repository.Store) error) error {
	return fn(m)
}
