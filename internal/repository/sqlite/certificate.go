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

var _ repository.CertificateRepository = (*DB)(nil)

const certificateColumns = `id, user_id, course_id, number, issued_at`

// NumberPrefix starts every certificate number.
const NumberPrefix = "CC-"

func scanCertificate(s scanner, c *model.Certificate) error {
	return s.Scan(&c.ID, &c.UserID, &c.CourseID, &c.Number, &c.IssuedAt)
}

// CreateCertificate stores a certificate. When Number is empty a fresh one
// is generated, e.g. "CC-CV37RS3PP9OLC6ATSPTG". A second certificate for the
// same student and course is an apperror.Conflict.
func (db *DB) CreateCertificate(ctx context.Context, c *model.Certificate) error {
	c.ID = xid.New().String()
	if c.Number == "" {
		c.Number = NumberPrefix + strings.ToUpper(xid.New().String())
	}
	c.IssuedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO certificates (`+certificateColumns+`) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.UserID, c.CourseID, c.Number, c.IssuedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("certificate", c.CourseID)
		}
		return fmt.Errorf("sqlite: creating certificate: %w", err)
	}

	return nil
}

// GetCertificateByNumber looks a certificate up by its public number.
// Numbers are matched case-insensitively.
func (db *DB) GetCertificateByNumber(ctx context.Context, number string) (*model.Certificate, error) {
	var c model.Certificate

	row := db.conn.QueryRowContext(ctx,
		`SELECT `+certificateColumns+` FROM certificates WHERE number = ?`,
		strings.ToUpper(strings.TrimSpace(number)),
	)
	if err := scanCertificate(row, &c); err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("certificate", number)
		}
		return nil, fmt.Errorf("sqlite: getting certificate %s: %w", number, err)
	}

	return &c, nil
}

func (db *DB) ListCertificates(ctx context.Context, userID string) ([]model.Certificate, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+certificateColumns+` FROM certificates
		 WHERE user_id = ?
		 ORDER BY issued_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing certificates: %w", err)
	}
	defer rows.Close()

	certs := []model.Certificate{}
	for rows.Next() {
		var c model.Certificate
		if err := scanCertificate(rows, &c); err != nil {
			return nil, fmt.Errorf("sqlite: scanning certificate row: %w", err)
		}
		certs = append(certs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating certificates: %w", err)
	}

	return certs, nil
}
