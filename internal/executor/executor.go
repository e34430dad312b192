// Package executor defines the request/result contract shared by the
// playground engine, the HTTP handler and saved-snippet runs.
package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/sakif/codeclass/internal/apperror"
)

// Language is a playground language tag as sent by the editor.
type Language string

const (
	Python Language = "python"
	Java   Language = "java"
	C      Language = "c"
	CPP    Language = "cpp"
	SQL    Language = "sql"

	// Web (HTML/CSS/JS) is rendered by the embedded live preview in the
	// browser. It can be stored in a snippet but never executed here.
	Web Language = "web"
)

// Simulated lists the languages the engine can run, in editor order.
var Simulated = []Language{Python, Java, C, CPP, SQL}

// IsSimulated reports whether l is one of the executable languages.
func (l Language) IsSimulated() bool {
	for _, s := range Simulated {
		if l == s {
			return true
		}
	}
	return false
}

// ParseLanguage normalises an editor tag. It accepts any casing and the
// "c++" spelling, and rejects web and unknown tags with a validation error.
func ParseLanguage(s string) (Language, error) {
	l, err := ParseStoredLanguage(s)
	if err != nil {
		return "", err
	}
	if l == Web {
		return "", apperror.ValidationFailed("language",
			"web code is rendered by the live preview and cannot be executed")
	}
	return l, nil
}

// ParseStoredLanguage is ParseLanguage without the execution restriction:
// saved snippets may carry the web tag.
func ParseStoredLanguage(s string) (Language, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if tag == "c++" {
		tag = string(CPP)
	}
	l := Language(tag)
	if l == Web || l.IsSimulated() {
		return l, nil
	}
	return "", apperror.ValidationFailed("language", fmt.Sprintf("unsupported language %q", s))
}

// ExecutionRequest is the Source Buffer plus the student's simulated stdin.
type ExecutionRequest struct {
	Code     string   `json:"code"`
	Stdin    string   `json:"stdin"`
	Language Language `json:"language"`
}

// ExecutionResult is what the student sees after pressing Run.
// Error is nil when there is nothing to report; Output and Error can both
// be set when a diagnostic comes with partial output.
type ExecutionResult struct {
	Output string  `json:"output"`
	Error  *string `json:"error"`
}

// Failed reports whether the run produced a diagnostic.
func (r *ExecutionResult) Failed() bool {
	return r != nil && r.Error != nil
}

// ErrorMessage returns the diagnostic or "" when there is none.
func (r *ExecutionResult) ErrorMessage() string {
	if r == nil || r.Error == nil {
		return ""
	}
	return *r.Error
}

// Executor runs a request. The returned error is reserved for the caller's
// context ending; student mistakes are reported through ExecutionResult.Error.
type Executor interface {
	Execute(ctx context.Context, req ExecutionRequest) (*ExecutionResult, error)
}
