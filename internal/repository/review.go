package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/fikaregister/fika-api/internal/model"
	"github.com/jmoiron/sqlx"
)

type reviewRepository struct {
	store *sqlStore
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	now := time.Now().UTC()
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = now

	_, err := sqlx.NamedExecContext(ctx, r.store.ext, `
		INSERT INTO reviews (
			id, place_id, user_name, rating, comment, fika_items,
			visit_date, visit_time, moderated, moderated_at,
			helpful_count, language, created_at, updated_at
		) VALUES (
			:id, :place_id, :user_name, :rating, :comment, :fika_items,
			:visit_date, :visit_time, :moderated, :moderated_at,
			:helpful_count, :language, :created_at, :updated_at
		)`, review)
	return err
}

func (r *reviewRepository) GetByID(ctx context.Context, id string) (*model.Review, error) {
	var review model.Review
	q := r.store.ext.Rebind("SELECT * FROM reviews WHERE id = ?")
	if err := sqlx.GetContext(ctx, r.store.ext, &review, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	review.UpdatedAt = time.Now().UTC()

	_, err := sqlx.NamedExecContext(ctx, r.store.ext, `
		UPDATE reviews SET
			user_name = :user_name,
			rating = :rating,
			comment = :comment,
			fika_items = :fika_items,
			visit_date = :visit_date,
			visit_time = :visit_time,
			moderated = :moderated,
			moderated_at = :moderated_at,
			updated_at = :updated_at
		WHERE id = :id`, review)
	return err
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	q := r.store.ext.Rebind("DELETE FROM reviews WHERE id = ?")
	_, err := r.store.ext.ExecContext(ctx, q, id)
	return err
}

func (r *reviewRepository) DeleteByPlace(ctx context.Context, placeID string) error {
	q := r.store.ext.Rebind("DELETE FROM reviews WHERE place_id = ?")
	_, err := r.store.ext.ExecContext(ctx, q, placeID)
	return err
}

func (r *reviewRepository) ListByPlace(ctx context.Context, placeID string, approvedOnly bool, page, perPage int) ([]model.Review, int, error) {
	conditions := []string{"place_id = ?"}
	args := []interface{}{placeID}
	if approvedOnly {
		conditions = append(conditions, "moderated = ?")
		args = append(args, model.ModerationApproved)
	}
	return r.listReviews(ctx, conditions, args, "created_at DESC, id ASC", page, perPage)
}

func (r *reviewRepository) ListPending(ctx context.Context, page, perPage int) ([]model.Review, int, error) {
	return r.listReviews(ctx,
		[]string{"moderated = ?"}, []interface{}{model.ModerationPending},
		"created_at ASC, id ASC", page, perPage)
}

func (r *reviewRepository) ListRecent(ctx context.Context, limit int) ([]model.Review, error) {
	q := r.store.ext.Rebind(`
		SELECT * FROM reviews
		WHERE moderated = ?
		ORDER BY created_at DESC, id ASC
		LIMIT ?`)
	var reviews []model.Review
	if err := sqlx.SelectContext(ctx, r.store.ext, &reviews, q, model.ModerationApproved, limit); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) ListByUser(ctx context.Context, userName string, page, perPage int) ([]model.Review, int, error) {
	return r.listReviews(ctx,
		[]string{"LOWER(user_name) = LOWER(?)", "moderated = ?"},
		[]interface{}{userName, model.ModerationApproved},
		"created_at DESC, id ASC", page, perPage)
}

func (r *reviewRepository) listReviews(ctx context.Context, conditions []string, args []interface{}, order string, page, perPage int) ([]model.Review, int, error) {
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQ := r.store.ext.Rebind("SELECT COUNT(*) FROM reviews" + where)
	if err := sqlx.GetContext(ctx, r.store.ext, &total, countQ, args...); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	pageQ := r.store.ext.Rebind("SELECT * FROM reviews" + where + " ORDER BY " + order + " LIMIT ? OFFSET ?")
	pageArgs := append(args, perPage, offset)

	var reviews []model.Review
	if err := sqlx.SelectContext(ctx, r.store.ext, &reviews, pageQ, pageArgs...); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *reviewRepository) SetModeration(ctx context.Context, id string, status model.ModerationStatus, at time.Time) error {
	q := r.store.ext.Rebind(`
		UPDATE reviews
		SET moderated = ?, moderated_at = ?, updated_at = ?
		WHERE id = ?`)
	_, err := r.store.ext.ExecContext(ctx, q, status, at, time.Now().UTC(), id)
	return err
}

func (r *reviewRepository) IncrementHelpful(ctx context.Context, id string) error {
	q := r.store.ext.Rebind("UPDATE reviews SET helpful_count = helpful_count + 1 WHERE id = ?")
	_, err := r.store.ext.ExecContext(ctx, q, id)
	return err
}

// RecomputeRating rebuilds a place's rating aggregate from its approved
// reviews. The rating is the mean rounded to two decimals, or NULL when
// the place has no approved reviews.
func (r *reviewRepository) RecomputeRating(ctx context.Context, placeID string) error {
	var ratings []int
	q := r.store.ext.Rebind("SELECT rating FROM reviews WHERE place_id = ? AND moderated = ?")
	if err := sqlx.SelectContext(ctx, r.store.ext, &ratings, q, placeID, model.ModerationApproved); err != nil {
		return err
	}

	var rating *float64
	if len(ratings) > 0 {
		sum := 0
		for _, v := range ratings {
			sum += v
		}
		avg := math.Round(float64(sum)/float64(len(ratings))*100) / 100
		rating = &avg
	}

	upd := r.store.ext.Rebind(`
		UPDATE places
		SET rating = ?, review_count = ?, updated_at = ?
		WHERE id = ?`)
	_, err := r.store.ext.ExecContext(ctx, upd, rating, len(ratings), time.Now().UTC(), placeID)
	return err
}

// Statistics summarizes the approved reviews of a place, including the
// count per star value.
func (r *reviewRepository) Statistics(ctx context.Context, placeID string) (*model.PlaceStatistics, error) {
	var rows []struct {
		Rating int `db:"rating"`
		Count  int `db:"count"`
	}
	q := r.store.ext.Rebind(`
		SELECT rating, COUNT(*) AS count
		FROM reviews
		WHERE place_id = ? AND moderated = ?
		GROUP BY rating`)
	if err := sqlx.SelectContext(ctx, r.store.ext, &rows, q, placeID, model.ModerationApproved); err != nil {
		return nil, err
	}

	stats := &model.PlaceStatistics{RatingDistribution: make(map[int]int, 5)}
	for star := 1; star <= 5; star++ {
		stats.RatingDistribution[star] = 0
	}
	sum := 0
	for _, row := range rows {
		stats.RatingDistribution[row.Rating] = row.Count
		stats.TotalReviews += row.Count
		sum += row.Rating * row.Count
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(stats.TotalReviews)*100) / 100
	}
	return stats, nil
}
