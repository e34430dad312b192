package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/codeclass/internal/apperror"
	"github.com/sakif/codeclass/internal/model"
	"github.com/sakif/codeclass/internal/repository"
)

var _ repository.EnrollmentRepository = (*DB)(nil)

const enrollmentColumns = `id, user_id, course_id, progress, created_at, updated_at`

func scanEnrollment(s scanner, e *model.Enrollment) error {
	return s.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.CreatedAt, &e.UpdatedAt)
}

// CreateEnrollment inserts a new enrollment. Enrolling twice in the same
// course is an apperror.Conflict.
func (db *DB) CreateEnrollment(ctx context.Context, e *model.Enrollment) error {
	e.ID = xid.New().String()
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO enrollments (`+enrollmentColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.CourseID, e.Progress, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("enrollment", e.CourseID)
		}
		return fmt.Errorf("sqlite: creating enrollment: %w", err)
	}

	return nil
}

func (db *DB) GetEnrollment(ctx context.Context, userID, courseID string) (*model.Enrollment, error) {
	var e model.Enrollment

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE user_id = ? AND course_id = ?`,
		userID, courseID,
	)
	if err := scanEnrollment(row, &e); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("enrollment", courseID)
		}
		return nil, fmt.Errorf("sqlite: getting enrollment %s/%s: %w", userID, courseID, err)
	}

	return &e, nil
}

// UpdateProgress sets the progress of an existing enrollment and returns the
// updated row.
func (db *DB) UpdateProgress(ctx context.Context, userID, courseID string, progress int) (*model.Enrollment, error) {
	var e model.Enrollment

	row := db.conn.QueryRowContext(ctx,
		`UPDATE enrollments SET progress = ?, updated_at = ?
		 WHERE user_id = ? AND course_id = ?
		 RETURNING `+enrollmentColumns,
		progress, time.Now(), userID, courseID,
	)
	if err := scanEnrollment(row, &e); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("enrollment", courseID)
		}
		return nil, fmt.Errorf("sqlite: updating enrollment %s/%s: %w", userID, courseID, err)
	}

	return &e, nil
}

// ListEnrollments returns a student's enrollments, most recently enrolled first.
func (db *DB) ListEnrollments(ctx context.Context, userID string) ([]model.Enrollment, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing enrollments: %w", err)
	}
	defer rows.Close()

	enrollments := []model.Enrollment{}
	for rows.Next() {
		var e model.Enrollment
		if err := scanEnrollment(rows, &e); err != nil {
			return nil, fmt.Errorf("sqlite: scanning enrollment row: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating enrollments: %w", err)
	}

	return enrollments, nil
}
