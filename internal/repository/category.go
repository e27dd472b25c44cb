package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fikaregister/fika-api/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type categoryRepository struct {
	store *sqlStore
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	q := "SELECT * FROM categories ORDER BY name"
	if err := sqlx.SelectContext(ctx, r.store.ext, &categories, q); err != nil {
		return nil, err
	}
	return categories, nil
}

// EnsureByNames resolves category names to rows, creating any that do not
// exist yet. Matching is case-insensitive; the first spelling seen wins.
func (r *categoryRepository) EnsureByNames(ctx context.Context, names []string) ([]model.Category, error) {
	result := make([]model.Category, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true

		var category model.Category
		q := r.store.ext.Rebind("SELECT * FROM categories WHERE LOWER(name) = LOWER(?)")
		err := sqlx.GetContext(ctx, r.store.ext, &category, q, name)
		if err == nil {
			result = append(result, category)
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}

		category = model.Category{ID: uuid.NewString(), Name: name}
		ins := r.store.ext.Rebind("INSERT INTO categories (id, name) VALUES (?, ?)")
		if _, err := r.store.ext.ExecContext(ctx, ins, category.ID, category.Name); err != nil {
			return nil, err
		}
		result = append(result, category)
	}
	return result, nil
}

// Upsert creates the category or refreshes its description and icon. The
// match is case-insensitive on name, like EnsureByNames.
func (r *categoryRepository) Upsert(ctx context.Context, category *model.Category) error {
	var existing model.Category
	q := r.store.ext.Rebind("SELECT * FROM categories WHERE LOWER(name) = LOWER(?)")
	err := sqlx.GetContext(ctx, r.store.ext, &existing, q, category.Name)
	if err == nil {
		category.ID = existing.ID
		upd := r.store.ext.Rebind("UPDATE categories SET description = ?, icon = ? WHERE id = ?")
		_, err = r.store.ext.ExecContext(ctx, upd, category.Description, category.Icon, existing.ID)
		return err
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	_, err = sqlx.NamedExecContext(ctx, r.store.ext, `
		INSERT INTO categories (id, name, description, icon)
		VALUES (:id, :name, :description, :icon)`, category)
	return err
}

func (r *categoryRepository) ListByPlace(ctx context.Context, placeID string) ([]model.Category, error) {
	var categories []model.Category
	q := r.store.ext.Rebind(`
		SELECT c.*
		FROM categories c
		JOIN place_categories pc ON pc.category_id = c.id
		WHERE pc.place_id = ?
		ORDER BY c.name`)
	if err := sqlx.SelectContext(ctx, r.store.ext, &categories, q, placeID); err != nil {
		return nil, err
	}
	return categories, nil
}

// ReplacePlaceCategories rewrites a place's category links to exactly the
// given set.
func (r *categoryRepository) ReplacePlaceCategories(ctx context.Context, placeID string, categoryIDs []string) error {
	if err := r.DeleteByPlace(ctx, placeID); err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	links := make([]model.PlaceCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		links = append(links, model.PlaceCategory{PlaceID: placeID, CategoryID: categoryID})
	}
	_, err := sqlx.NamedExecContext(ctx, r.store.ext, `
		INSERT INTO place_categories (place_id, category_id)
		VALUES (:place_id, :category_id)`, links)
	return err
}

func (r *categoryRepository) DeleteByPlace(ctx context.Context, placeID string) error {
	q := r.store.ext.Rebind("DELETE FROM place_categories WHERE place_id = ?")
	_, err := r.store.ext.ExecContext(ctx, q, placeID)
	return err
}
