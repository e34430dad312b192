package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sakif/codeclass/internal/apperror"
	"github.com/sakif/codeclass/internal/model"
	"github.com/sakif/codeclass/internal/repository"
)

const (
	MaxDisplayNameLength = 80
	MaxReviewLength      = 1000
	MinRating            = 1
	MaxRating            = 5
)

// CourseLookup answers whether a course id exists. *catalog.Catalog
// satisfies it.
type CourseLookup interface {
	HasCourse(id string) bool
}

// LearningService owns a student's profile, enrollments, certificates and
// course reviews.
type LearningService struct {
	repo    repository.LearningRepository
	courses CourseLookup
	logger  *slog.Logger
}

func NewLearningService(repo repository.LearningRepository, courses CourseLookup, logger *slog.Logger) *LearningService {
	return &LearningService{repo: repo, courses: courses, logger: logger}
}

// === PROFILE ===

// SaveProfile creates or updates the caller's profile. studentClass must be
// empty or one of "6".."12".
func (s *LearningService) SaveProfile(ctx context.Context, userID, displayName, studentClass string) (*model.Profile, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apperror.ValidationFailed("displayName", "display name is required")
	}
	if utf8.RuneCountInString(displayName) > MaxDisplayNameLength {
		return nil, apperror.ValidationFailed("displayName",
			fmt.Sprintf("display name must be %d characters or less", MaxDisplayNameLength))
	}
	studentClass = strings.TrimSpace(studentClass)
	if studentClass != "" && !validClass(studentClass) {
		return nil, apperror.ValidationFailed("studentClass", "class must be between 6 and 12")
	}

	p := &model.Profile{UserID: userID, DisplayName: displayName, StudentClass: studentClass}
	if err := s.repo.UpsertProfile(ctx, p); err != nil {
		s.logger.Error("failed to save profile", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("saving profile: %w", err)
	}

	s.logger.Info("profile saved", slog.String("user_id", userID))
	return p, nil
}

func (s *LearningService) GetProfile(ctx context.Context, userID string) (*model.Profile, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, userID)
}

// === ENROLLMENTS ===

// Enroll starts a course at 0% progress.
func (s *LearningService) Enroll(ctx context.Context, userID, courseID string) (*model.Enrollment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	courseID, err := s.course(courseID)
	if err != nil {
		return nil, err
	}

	e := &model.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.repo.CreateEnrollment(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("enrolled",
		slog.String("user_id", userID),
		slog.String("course_id", courseID),
	)
	return e, nil
}

// UpdateProgress records a completion percentage, 0..100.
func (s *LearningService) UpdateProgress(ctx context.Context, userID, courseID string, progress int) (*model.Enrollment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	courseID, err := s.course(courseID)
	if err != nil {
		return nil, err
	}
	if progress < 0 || progress > 100 {
		return nil, apperror.ValidationFailed("progress", "progress must be between 0 and 100")
	}

	return s.repo.UpdateProgress(ctx, userID, courseID, progress)
}

func (s *LearningService) ListEnrollments(ctx context.Context, userID string) ([]model.Enrollment, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.ListEnrollments(ctx, userID)
}

// === CERTIFICATES ===

// IssueCertificate issues the certificate for a completed course.
func (s *LearningService) IssueCertificate(ctx context.Context, userID, courseID string) (*model.Certificate, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	courseID, err := s.course(courseID)
	if err != nil {
		return nil, err
	}

	e, err := s.repo.GetEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if !e.Completed() {
		return nil, apperror.ValidationFailed("courseId",
			fmt.Sprintf("course is %d%% complete; finish it to get a certificate", e.Progress))
	}

	c := &model.Certificate{UserID: userID, CourseID: courseID}
	if err := s.repo.CreateCertificate(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("certificate issued",
		slog.String("user_id", userID),
		slog.String("course_id", courseID),
		slog.String("number", c.Number),
	)
	return c, nil
}

// VerifyCertificate looks up a certificate by its public number.
func (s *LearningService) VerifyCertificate(ctx context.Context, number string) (*model.Certificate, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, apperror.ValidationFailed("number", "certificate number is required")
	}
	return s.repo.GetCertificateByNumber(ctx, number)
}

func (s *LearningService) ListCertificates(ctx context.Context, userID string) ([]model.Certificate, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.repo.ListCertificates(ctx, userID)
}

// === REVIEWS ===

// PostReview rates a course. Posting again replaces the earlier review.
func (s *LearningService) PostReview(ctx context.Context, userID, courseID string, rating int, comment string) (*model.Review, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	courseID, err := s.course(courseID)
	if err != nil {
		return nil, err
	}
	if rating < MinRating || rating > MaxRating {
		return nil, apperror.ValidationFailed("rating",
			fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > MaxReviewLength {
		return nil, apperror.ValidationFailed("comment",
			fmt.Sprintf("comment must be %d characters or less", MaxReviewLength))
	}

	r := &model.Review{UserID: userID, CourseID: courseID, Rating: rating, Comment: comment}
	if err := s.repo.UpsertReview(ctx, r); err != nil {
		s.logger.Error("failed to save review", slog.String("course_id", courseID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("saving review: %w", err)
	}

	s.logger.Info("review posted",
		slog.String("user_id", userID),
		slog.String("course_id", courseID),
		slog.Int("rating", rating),
	)
	return r, nil
}

func (s *LearningService) ListReviews(ctx context.Context, courseID string) ([]model.Review, error) {
	courseID, err := s.course(courseID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, courseID)
}

// CourseRating returns the average rating and review count of a course.
func (s *LearningService) CourseRating(ctx context.Context, courseID string) (*model.RatingSummary, error) {
	courseID, err := s.course(courseID)
	if err != nil {
		return nil, err
	}
	return s.repo.RatingSummary(ctx, courseID)
}

// course trims id and checks it against the catalog.
func (s *LearningService) course(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperror.ValidationFailed("courseId", "course id is required")
	}
	if !s.courses.HasCourse(id) {
		return "", apperror.NotFound("course", id)
	}
	return id, nil
}

func requireUser(userID string) error {
	if userID == "" {
		return apperror.Unauthorized("sign in first")
	}
	return nil
}

func validClass(c string) bool {
	switch c {
	case "6", "7", "8", "9", "10", "11", "12":
		return true
	}
	return false
}
