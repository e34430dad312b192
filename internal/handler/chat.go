package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/codeclass/internal/chat"
)

// ChatHandler serves the tutor chatbot.
type ChatHandler struct {
	svc    *chat.Service
	logger *slog.Logger
}

func NewChatHandler(svc *chat.Service, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, logger: logger}
}

// HandleChat answers POST /api/chat with {"response": "..."}.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chat.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	reply, err := h.svc.Ask(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
