package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/fikaregister/fika-api/internal/config"
	"github.com/fikaregister/fika-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// PlaceRepository defines operations for fika places
type PlaceRepository interface {
	Create(ctx context.Context, place *model.Place) error
	GetByID(ctx context.Context, id string) (*model.Place, error)
	GetBySlug(ctx context.Context, slug string) (*model.Place, error)
	Update(ctx context.Context, place *model.Place) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, params *model.PlaceSearch) ([]model.Place, int, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	Cities(ctx context.Context) ([]string, error)
	Featured(ctx context.Context, city string, limit int) ([]model.Place, error)
}

// ReviewRepository defines operations for reviews and the rating aggregate
// they feed
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	GetByID(ctx context.Context, id string) (*model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id string) error
	DeleteByPlace(ctx context.Context, placeID string) error
	ListByPlace(ctx context.Context, placeID string, approvedOnly bool, page, perPage int) ([]model.Review, int, error)
	ListPending(ctx context.Context, page, perPage int) ([]model.Review, int, error)
	ListRecent(ctx context.Context, limit int) ([]model.Review, error)
	ListByUser(ctx context.Context, userName string, page, perPage int) ([]model.Review, int, error)
	SetModeration(ctx context.Context, id string, status model.ModerationStatus, at time.Time) error
	IncrementHelpful(ctx context.Context, id string) error
	RecomputeRating(ctx context.Context, placeID string) error
	Statistics(ctx context.Context, placeID string) (*model.PlaceStatistics, error)
}

// CategoryRepository defines operations for the category vocabulary and the
// place-category links
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	EnsureByNames(ctx context.Context, names []string) ([]model.Category, error)
	Upsert(ctx context.Context, category *model.Category) error
	ListByPlace(ctx context.Context, placeID string) ([]model.Category, error)
	ReplacePlaceCategories(ctx context.Context, placeID string, categoryIDs []string) error
	DeleteByPlace(ctx context.Context, placeID string) error
}

// Store bundles the repositories and gives callers transactional scope.
// Inside WithTx every repository obtained from the passed Store runs on the
// same transaction; nested WithTx joins the outer transaction.
type Store interface {
	Place() PlaceRepository
	Review() ReviewRepository
	Category() CategoryRepository
	WithTx(ctx context.Context, fn func(Store) error) error
}

type sqlStore struct {
	db     *sqlx.DB
	ext    sqlx.ExtContext
	engine config.DBType
}

// NewStore creates the SQL-backed Store. The engine selects dialect
// specifics such as the full-text search predicate.
func NewStore(db *sqlx.DB, engine config.DBType) Store {
	return &sqlStore{db: db, ext: db, engine: engine}
}

func (s *sqlStore) Place() PlaceRepository       { return &placeRepository{s} }
func (s *sqlStore) Review() ReviewRepository     { return &reviewRepository{s} }
func (s *sqlStore) Category() CategoryRepository { return &categoryRepository{s} }

func (s *sqlStore) WithTx(ctx context.Context, fn func(Store) error) error {
	if _, ok := s.ext.(*sqlx.Tx); ok {
		// Already inside a transaction
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txStore := &sqlStore{db: s.db, ext: tx, engine: s.engine}
	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

// Helper to check if DB is empty (used by main)
func IsDatabaseEmpty(ctx context.Context, db *sqlx.DB) (bool, error) {
	var count int
	// Using a safe query that works on both
	query := "SELECT COUNT(*) FROM places"
	err := db.GetContext(ctx, &count, query)
	if err != nil {
		// Simplify error handling for non-existent tables
		return true, nil
	}
	return count == 0, nil
}
