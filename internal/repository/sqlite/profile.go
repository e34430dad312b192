package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/codeclass/internal/apperror"
	"github.com/sakif/codeclass/internal/model"
	"github.com/sakif/codeclass/internal/repository"
)

var _ repository.ProfileRepository = (*DB)(nil)

// UpsertProfile creates the profile on first save and overwrites the
// editable fields afterwards. CreatedAt is read back from the stored row.
func (db *DB) UpsertProfile(ctx context.Context, profile *model.Profile) error {
	now := time.Now()
	profile.UpdatedAt = now

	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO profiles (user_id, display_name, student_class, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			display_name  = excluded.display_name,
			student_class = excluded.student_class,
			updated_at    = excluded.updated_at
		 RETURNING created_at`,
		profile.UserID,
		profile.DisplayName,
		profile.StudentClass,
		now,
		now,
	).Scan(&profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: saving profile %s: %w", profile.UserID, err)
	}

	return nil
}

// GetProfile returns apperror.NotFound until the student saves a profile.
func (db *DB) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile

	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, display_name, student_class, created_at, updated_at
		 FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(&p.UserID, &p.DisplayName, &p.StudentClass, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("profile", userID)
		}
		return nil, fmt.Errorf("sqlite: getting profile %s: %w", userID, err)
	}

	return &p, nil
}
