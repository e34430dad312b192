package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/codeclass/internal/auth"
	"github.com/sakif/codeclass/internal/presenter"
	"github.com/sakif/codeclass/internal/service"
)

// SnippetHandler serves saved playground programs.
type SnippetHandler struct {
	svc    *service.SnippetService
	logger *slog.Logger
}

func NewSnippetHandler(svc *service.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{svc: svc, logger: logger}
}

type snippetRequest struct {
	Name        string `json:"name"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (b snippetRequest) input() service.SnippetInput {
	return service.SnippetInput{
		Name:        b.Name,
		Language:    b.Language,
		Code:        b.Code,
		Description: b.Description,
	}
}

// HandleList serves GET /api/snippets?limit=&offset=&mine=true.
// mine=true needs a signed-in caller and lists only their snippets.
func (h *SnippetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var owner string
	if r.URL.Query().Get("mine") == "true" {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Message: "sign in to list your snippets"})
			return
		}
		owner = userID
	}

	snippets, err := h.svc.List(r.Context(), owner, queryInt(r, "limit", 0), queryInt(r, "offset", 0))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippets)
}

func (h *SnippetHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	snippet, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

func (h *SnippetHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var body snippetRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	snippet, err := h.svc.Create(r.Context(), userID, body.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, snippet)
}

func (h *SnippetHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var body snippetRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}

	userID, _ := auth.UserIDFromContext(r.Context())
	snippet, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "id"), body.input())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snippet)
}

func (h *SnippetHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type runRequest struct {
	Stdin string `json:"stdin"`
}

// HandleRun executes a saved snippet. The body is optional and carries
// only stdin.
func (h *SnippetHandler) HandleRun(w http.ResponseWriter, r *http.Request) {
	var body runRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &body); err != nil {
			writeError(w, err)
			return
		}
	}

	snippet, res, err := h.svc.Run(r.Context(), chi.URLParam(r, "id"), body.Stdin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presenter.Present(snippet.Code, res, false))
}
