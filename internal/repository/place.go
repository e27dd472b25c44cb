package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fikaregister/fika-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// Verified places need at least this rating to be featured
const featuredMinRating = 4.0

type placeRepository struct {
	store *sqlStore
}

func (r *placeRepository) Create(ctx context.Context, place *model.Place) error {
	now := time.Now().UTC()
	if place.CreatedAt.IsZero() {
		place.CreatedAt = now
	}
	place.UpdatedAt = now

	_, err := sqlx.NamedExecContext(ctx, r.store.ext, `
		INSERT INTO places (
			id, name, description, address, city, region, latitude, longitude,
			phone, website, opening_hours, fika_specialties, price_range,
			rating, review_count, verified, features, images, slug,
			meta_description, created_at, updated_at
		) VALUES (
			:id, :name, :description, :address, :city, :region, :latitude, :longitude,
			:phone, :website, :opening_hours, :fika_specialties, :price_range,
			:rating, :review_count, :verified, :features, :images, :slug,
			:meta_description, :created_at, :updated_at
		)`, place)
	return err
}

func (r *placeRepository) GetByID(ctx context.Context, id string) (*model.Place, error) {
	var place model.Place
	q := r.store.ext.Rebind("SELECT * FROM places WHERE id = ?")
	if err := sqlx.GetContext(ctx, r.store.ext, &place, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) GetBySlug(ctx context.Context, slug string) (*model.Place, error) {
	var place model.Place
	q := r.store.ext.Rebind("SELECT * FROM places WHERE slug = ?")
	if err := sqlx.GetContext(ctx, r.store.ext, &place, q, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &place, nil
}

func (r *placeRepository) Update(ctx context.Context, place *model.Place) error {
	place.UpdatedAt = time.Now().UTC()

	_, err := sqlx.NamedExecContext(ctx, r.store.ext, `
		UPDATE places SET
			name = :name,
			description = :description,
			address = :address,
			city = :city,
			region = :region,
			latitude = :latitude,
			longitude = :longitude,
			phone = :phone,
			website = :website,
			opening_hours = :opening_hours,
			fika_specialties = :fika_specialties,
			price_range = :price_range,
			verified = :verified,
			features = :features,
			images = :images,
			slug = :slug,
			meta_description = :meta_description,
			updated_at = :updated_at
		WHERE id = :id`, place)
	return err
}

func (r *placeRepository) Delete(ctx context.Context, id string) error {
	q := r.store.ext.Rebind("DELETE FROM places WHERE id = ?")
	_, err := r.store.ext.ExecContext(ctx, q, id)
	return err
}

func (r *placeRepository) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var count int
	q := r.store.ext.Rebind("SELECT COUNT(*) FROM places WHERE slug = ? AND id != ?")
	if err := sqlx.GetContext(ctx, r.store.ext, &count, q, slug, excludeID); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *placeRepository) Cities(ctx context.Context) ([]string, error) {
	var cities []string
	q := "SELECT DISTINCT city FROM places ORDER BY city"
	if err := sqlx.SelectContext(ctx, r.store.ext, &cities, q); err != nil {
		return nil, err
	}
	return cities, nil
}

// Featured lists verified, well-rated places, optionally limited to a city.
func (r *placeRepository) Featured(ctx context.Context, city string, limit int) ([]model.Place, error) {
	q := `
		SELECT * FROM places
		WHERE verified = ? AND rating >= ?`
	args := []interface{}{true, featuredMinRating}
	if city != "" {
		q += " AND LOWER(city) = LOWER(?)"
		args = append(args, city)
	}
	q += " ORDER BY rating DESC, review_count DESC, id ASC LIMIT ?"
	args = append(args, limit)

	var places []model.Place
	if err := sqlx.SelectContext(ctx, r.store.ext, &places, r.store.ext.Rebind(q), args...); err != nil {
		return nil, err
	}
	return places, nil
}
