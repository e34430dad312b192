// Package repository declares the storage interfaces the services depend on.
// internal/repository/sqlite implements all of them on one database.
package repository

import (
	"context"

	"github.com/sakif/codeclass/internal/model"
)

type ListOptions struct {
	Limit  int
	Offset int
	UserID string // optional owner filter
}

type SnippetRepository interface {
	Create(ctx context.Context, snippet *model.Snippet) error
	GetByID(ctx context.Context, id string) (*model.Snippet, error)
	List(ctx context.Context, opts ListOptions) ([]model.Snippet, error)
	Update(ctx context.Context, snippet *model.Snippet) error
	Delete(ctx context.Context, id string) error
}

type ProfileRepository interface {
	UpsertProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, userID string) (*model.Profile, error)
}

type EnrollmentRepository interface {
	CreateEnrollment(ctx context.Context, e *model.Enrollment) error
	GetEnrollment(ctx context.Context, userID, courseID string) (*model.Enrollment, error)
	UpdateProgress(ctx context.Context, userID, courseID string, progress int) (*model.Enrollment, error)
	ListEnrollments(ctx context.Context, userID string) ([]model.Enrollment, error)
}

type CertificateRepository interface {
	CreateCertificate(ctx context.Context, c *model.Certificate) error
	GetCertificateByNumber(ctx context.Context, number string) (*model.Certificate, error)
	ListCertificates(ctx context.Context, userID string) ([]model.Certificate, error)
}

type ReviewRepository interface {
	UpsertReview(ctx context.Context, r *model.Review) error
	ListReviews(ctx context.Context, courseID string) ([]model.Review, error)
	RatingSummary(ctx context.Context, courseID string) (*model.RatingSummary, error)
}

// LearningRepository is everything the learning service needs.
type LearningRepository interface {
	ProfileRepository
	EnrollmentRepository
	CertificateRepository
	ReviewRepository
}
