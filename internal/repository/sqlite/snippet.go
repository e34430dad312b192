package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/codeclass/internal/apperror"
	"github.com/sakif/codeclass/internal/model"
	"github.com/sakif/codeclass/internal/repository"
)

// Compile-time check that *DB implements repository.SnippetRepository.
// If a method is missing or has the wrong signature, the build fails here
// instead of wherever *DB is first passed as a SnippetRepository.
var _ repository.SnippetRepository = (*DB)(nil)

const snippetColumns = `id, user_id, name, language, code, description, created_at, updated_at`

// Create inserts a new snippet and fills in its ID and timestamps.
//
// IDs come from xid: 20 URL-safe characters that sort by creation time,
// e.g. "cv37rs3pp9olc6atsptg".
func (db *DB) Create(ctx context.Context, snippet *model.Snippet) error {
	snippet.ID = xid.New().String()

	now := time.Now()
	snippet.CreatedAt = now
	snippet.UpdatedAt = now

	// Always use ? placeholders. The driver escapes values, so user input
	// can never change the shape of the statement.
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO snippets (`+snippetColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snippet.ID,
		snippet.UserID,
		snippet.Name,
		snippet.Language,
		snippet.Code,
		snippet.Description,
		snippet.CreatedAt,
		snippet.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating snippet: %w", err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSnippet(s scanner, snippet *model.Snippet) error {
	return s.Scan(
		&snippet.ID,
		&snippet.UserID,
		&snippet.Name,
		&snippet.Language,
		&snippet.Code,
		&snippet.Description,
		&snippet.CreatedAt,
		&snippet.UpdatedAt,
	)
}

// GetByID retrieves a single snippet. A missing row becomes apperror.NotFound
// so the handler can answer 404.
func (db *DB) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	var snippet model.Snippet

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets WHERE id = ?`,
		id,
	)
	if err := scanSnippet(row, &snippet); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("snippet", id)
		}
		return nil, fmt.Errorf("sqlite: getting snippet %s: %w", id, err)
	}

	return &snippet, nil
}

// List returns snippets newest first, optionally only those of one owner.
//
// Limit defaults to 20 and is capped at 100. OFFSET pagination is fine at
// the size a single student's snippet list reaches.
func (db *DB) List(ctx context.Context, opts repository.ListOptions) ([]model.Snippet, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	var (
		where strings.Builder
		args  []any
	)
	if opts.UserID != "" {
		where.WriteString(" WHERE user_id = ?")
		args = append(args, opts.UserID)
	}
	args = append(args, limit, offset)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+snippetColumns+` FROM snippets`+where.String()+`
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing snippets: %w", err)
	}
	// rows holds a pooled connection until closed.
	defer rows.Close()

	snippets := make([]model.Snippet, 0, limit)
	for rows.Next() {
		var s model.Snippet
		if err := scanSnippet(rows, &s); err != nil {
			return nil, fmt.Errorf("sqlite: scanning snippet row: %w", err)
		}
		snippets = append(snippets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating snippets: %w", err)
	}

	return snippets, nil
}

// Update overwrites the editable fields of a snippet. id, user_id and
// created_at never change.
func (db *DB) Update(ctx context.Context, snippet *model.Snippet) error {
	snippet.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE snippets
		 SET name = ?, language = ?, code = ?, description = ?, updated_at = ?
		 WHERE id = ?`,
		snippet.Name,
		snippet.Language,
		snippet.Code,
		snippet.Description,
		snippet.UpdatedAt,
		snippet.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating snippet %s: %w", snippet.ID, err)
	}

	return expectOneRow(result, "snippet", snippet.ID)
}

// Delete removes a snippet by ID.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM snippets WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting snippet %s: %w", id, err)
	}

	return expectOneRow(result, "snippet", id)
}

// expectOneRow turns "zero rows affected" into apperror.NotFound.
func expectOneRow(result sql.Result, resource, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound(resource, id)
	}
	return nil
}
