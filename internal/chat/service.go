package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/sakif/codeclass/internal/apperror"
)

// MaxMessageLength caps a question, in characters.
const MaxMessageLength = 2000

// Service validates chatbot questions and forwards them to a Completer.
// A nil Completer disables chat.
type Service struct {
	completer Completer
	logger    *slog.Logger
}

func NewService(completer Completer, logger *slog.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// Enabled reports whether a model backend is configured.
func (s *Service) Enabled() bool {
	return s.completer != nil
}

// Ask answers one question.
func (s *Service) Ask(ctx context.Context, req Request) (*Reply, error) {
	if !s.Enabled() {
		return nil, apperror.Unavailable("chat is not configured on this server")
	}

	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return nil, apperror.ValidationFailed("message", "message is required")
	}
	if utf8.RuneCountInString(msg) > MaxMessageLength {
		return nil, apperror.ValidationFailed("message",
			fmt.Sprintf("message must be %d characters or less", MaxMessageLength))
	}
	if req.Format != "" && req.Format != FormatSimplified {
		return nil, apperror.ValidationFailed("format",
			fmt.Sprintf("format must be empty or %q", FormatSimplified))
	}
	req.Message = msg

	text, err := s.completer.Complete(ctx, BuildPrompt(req))
	if err != nil {
		s.logger.Error("chat completion failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("asking model: %w", err)
	}

	s.logger.Info("chat answered",
		slog.String("format", req.Format),
		slog.Int("reply_len", len(text)),
	)
	return &Reply{Response: text}, nil
}
