// Package service contains the business rules of the site.
//
// The layers are:
//
//	Handler (HTTP)     → parses requests, writes responses
//	Service (rules)    → validates, checks ownership, orchestrates
//	Repository (data)  → reads and writes the database
//
// Services take interfaces (repository.SnippetRepository, executor.Executor,
// chat.Completer) so tests can hand them in-memory fakes, and they return
// apperror values that the handler maps to status codes. Nothing in this
// package knows about HTTP.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/codeclass/internal/apperror"
	"github.com/sakif/codeclass/internal/executor"
	"github.com/sakif/codeclass/internal/model"
	"github.com/sakif/codeclass/internal/repository"
)

const (
	MaxSnippetNameLength = 100
	MaxCodeLength        = 100000 // ~100KB of code
	DefaultListLimit     = 20
	MaxListLimit         = 100
)

// SnippetService manages saved playground programs and runs them through
// the engine.
type SnippetService struct {
	repo   repository.SnippetRepository
	exec   executor.Executor
	logger *slog.Logger
}

func NewSnippetService(repo repository.SnippetRepository, exec executor.Executor, logger *slog.Logger) *SnippetService {
	return &SnippetService{
		repo:   repo,
		exec:   exec,
		logger: logger,
	}
}

// SnippetInput carries the editable fields of a snippet.
type SnippetInput struct {
	Name        string
	Language    string
	Code        string
	Description string
}

// validate trims the input and checks it. The language is normalised; web is
// allowed since saved programs are not necessarily executed.
func (in *SnippetInput) validate() (executor.Language, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return "", apperror.ValidationFailed("name", "snippet name is required")
	}
	if len(in.Name) > MaxSnippetNameLength {
		return "", apperror.ValidationFailed("name",
			fmt.Sprintf("snippet name must be %d characters or less", MaxSnippetNameLength))
	}
	if len(in.Code) > MaxCodeLength {
		return "", apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", MaxCodeLength))
	}
	return executor.ParseStoredLanguage(in.Language)
}

// Create validates and saves a new snippet owned by userID.
func (s *SnippetService) Create(ctx context.Context, userID string, in SnippetInput) (*model.Snippet, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("sign in to save snippets")
	}
	lang, err := in.validate()
	if err != nil {
		return nil, err
	}

	snippet := &model.Snippet{
		UserID:      userID,
		Name:        in.Name,
		Language:    string(lang),
		Code:        in.Code,
		Description: in.Description,
	}

	if err := s.repo.Create(ctx, snippet); err != nil {
		s.logger.Error("failed to create snippet",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating snippet: %w", err)
	}

	s.logger.Info("snippet created",
		slog.String("id", snippet.ID),
		slog.String("user_id", userID),
		slog.String("language", snippet.Language),
	)

	return snippet, nil
}

// GetByID returns any snippet. Snippets are shareable by link.
func (s *SnippetService) GetByID(ctx context.Context, id string) (*model.Snippet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "snippet ID is required")
	}

	// NotFound is already an apperror; anything else is wrapped by the repo.
	return s.repo.GetByID(ctx, id)
}

// List pages through snippets, newest first. A non-empty userID restricts
// the list to that owner.
func (s *SnippetService) List(ctx context.Context, userID string, limit, offset int) ([]model.Snippet, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	snippets, err := s.repo.List(ctx, repository.ListOptions{
		Limit:  limit,
		Offset: offset,
		UserID: userID,
	})
	if err != nil {
		s.logger.Error("failed to list snippets", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing snippets: %w", err)
	}

	return snippets, nil
}

// Update replaces the editable fields. Only the owner may update.
func (s *SnippetService) Update(ctx context.Context, userID, id string, in SnippetInput) (*model.Snippet, error) {
	snippet, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	lang, err := in.validate()
	if err != nil {
		return nil, err
	}

	snippet.Name = in.Name
	snippet.Language = string(lang)
	snippet.Code = in.Code
	snippet.Description = in.Description

	if err := s.repo.Update(ctx, snippet); err != nil {
		s.logger.Error("failed to update snippet",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating snippet: %w", err)
	}

	s.logger.Info("snippet updated", slog.String("id", snippet.ID))
	return snippet, nil
}

// Delete removes a snippet. Only the owner may delete.
func (s *SnippetService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("snippet deleted", slog.String("id", id), slog.String("user_id", userID))
	return nil
}

// Run executes a saved snippet with the given stdin. Web snippets are
// rejected by executor.ParseLanguage.
func (s *SnippetService) Run(ctx context.Context, id, stdin string) (*model.Snippet, *executor.ExecutionResult, error) {
	snippet, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	lang, err := executor.ParseLanguage(snippet.Language)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.exec.Execute(ctx, executor.ExecutionRequest{
		Code:     snippet.Code,
		Stdin:    stdin,
		Language: lang,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("running snippet %s: %w", id, err)
	}

	return snippet, res, nil
}

// owned fetches a snippet and checks that userID owns it.
func (s *SnippetService) owned(ctx context.Context, userID, id string) (*model.Snippet, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("sign in to change snippets")
	}
	snippet, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if snippet.UserID != userID {
		s.logger.Warn("snippet owner mismatch",
			slog.String("id", id),
			slog.String("user_id", userID),
		)
		return nil, apperror.Forbidden("you can only change your own snippets")
	}
	return snippet, nil
}
