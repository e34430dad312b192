package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/codeclass/internal/model"
	"github.com/sakif/codeclass/internal/repository"
)

var _ repository.ReviewRepository = (*DB)(nil)

// UpsertReview stores a review. Posting again for the same course replaces
// rating, comment and timestamp but keeps the original ID.
func (db *DB) UpsertReview(ctx context.Context, r *model.Review) error {
	id := xid.New().String()
	r.CreatedAt = time.Now()

	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO reviews (id, user_id, course_id, rating, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, course_id) DO UPDATE SET
			rating     = excluded.rating,
			comment    = excluded.comment,
			created_at = excluded.created_at
		 RETURNING id`,
		id, r.UserID, r.CourseID, r.Rating, r.Comment, r.CreatedAt,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("sqlite: saving review: %w", err)
	}

	return nil
}

// ListReviews returns a course's reviews, newest first.
func (db *DB) ListReviews(ctx context.Context, courseID string) ([]model.Review, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, course_id, rating, comment, created_at
		 FROM reviews
		 WHERE course_id = ?
		 ORDER BY created_at DESC, id DESC`,
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reviews: %w", err)
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var r model.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.CourseID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning review row: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reviews: %w", err)
	}

	return reviews, nil
}

// RatingSummary averages a course's ratings. A course with no reviews has
// Average 0 and Count 0.
func (db *DB) RatingSummary(ctx context.Context, courseID string) (*model.RatingSummary, error) {
	s := model.RatingSummary{CourseID: courseID}

	err := db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE course_id = ?`,
		courseID,
	).Scan(&s.Average, &s.Count)
	if err != nil {
		return nil, fmt.Errorf("sqlite: summarising ratings for %s: %w", courseID, err)
	}

	return &s, nil
}
