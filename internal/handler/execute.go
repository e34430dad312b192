package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sakif/codeclass/internal/apperror"
	"github.com/sakif/codeclass/internal/executor"
	"github.com/sakif/codeclass/internal/presenter"
	"github.com/sakif/codeclass/internal/service"
)

// ExecuteHandler serves the playground's Run button.
type ExecuteHandler struct {
	exec   executor.Executor
	logger *slog.Logger
}

func NewExecuteHandler(exec executor.Executor, logger *slog.Logger) *ExecuteHandler {
	return &ExecuteHandler{exec: exec, logger: logger}
}

// ExecuteRequest is the editor state sent on Run. Running asks for the
// in-progress view only: nothing is executed and the status is "Running".
type ExecuteRequest struct {
	Code     string `json:"code"`
	Stdin    string `json:"stdin"`
	Language string `json:"language"`
	Running  bool   `json:"running"`
}

// HandleExecute runs the code through the engine and returns the
// presenter view. Empty code is allowed; the engine reports it. Code over
// service.MaxCodeLength is rejected, the same cap saved snippets have.
func (h *ExecuteHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var req ExecuteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid execution request body", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	if len(req.Code) > service.MaxCodeLength {
		writeError(w, apperror.ValidationFailed("code",
			fmt.Sprintf("code must be %d characters or less", service.MaxCodeLength)))
		return
	}

	lang, err := executor.ParseLanguage(req.Language)
	if err != nil {
		writeError(w, err)
		return
	}

	if req.Running {
		writeJSON(w, http.StatusOK, presenter.Present(req.Code, nil, true))
		return
	}

	result, err := h.exec.Execute(r.Context(), executor.ExecutionRequest{
		Code:     req.Code,
		Stdin:    req.Stdin,
		Language: lang,
	})
	if err != nil {
		h.logger.Error("code execution failed", slog.String("language", string(lang)), slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	h.logger.Debug("executed",
		slog.String("language", string(lang)),
		slog.Bool("failed", result.Failed()),
	)
	writeJSON(w, http.StatusOK, presenter.Present(req.Code, result, false))
}

// LanguageInfo describes one editor language.
type LanguageInfo struct {
	Tag      executor.Language `json:"tag"`
	Runnable bool              `json:"runnable"`
}

// HandleLanguages lists the editor languages in display order. Web is
// listed but not runnable; the browser previews it.
func (h *ExecuteHandler) HandleLanguages(w http.ResponseWriter, r *http.Request) {
	langs := make([]LanguageInfo, 0, len(executor.Simulated)+1)
	for _, l := range executor.Simulated {
		langs = append(langs, LanguageInfo{Tag: l, Runnable: true})
	}
	langs = append(langs, LanguageInfo{Tag: executor.Web, Runnable: false})

	writeJSON(w, http.StatusOK, langs)
}
