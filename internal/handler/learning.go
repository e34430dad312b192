package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/codeclass/internal/auth"
	"github.com/sakif/codeclass/internal/service"
)

// LearningHandler serves the signed-in student's profile, enrollments and
// certificates, plus course reviews and certificate verification.
//
// The /api/me routes sit behind auth.RequireAuth, so the user id is always
// present there.
type LearningHandler struct {
	svc    *service.LearningService
	logger *slog.Logger
}

func NewLearningHandler(svc *service.LearningService, logger *slog.Logger) *LearningHandler {
	return &LearningHandler{svc: svc, logger: logger}
}

func userID(r *http.Request) string {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

// === PROFILE ===

type profileRequest struct {
	DisplayName  string `json:"displayName"`
	StudentClass string `json:"studentClass"`
}

func (h *LearningHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetProfile(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *LearningHandler) HandleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var body profileRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.svc.SaveProfile(r.Context(), userID(r), body.DisplayName, body.StudentClass)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// === ENROLLMENTS ===

type enrollRequest struct {
	CourseID string `json:"courseId"`
}

type progressRequest struct {
	Progress *int `json:"progress"`
}

func (h *LearningHandler) HandleListEnrollments(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListEnrollments(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *LearningHandler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	var body enrollRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}

	e, err := h.svc.Enroll(r.Context(), userID(r), body.CourseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *LearningHandler) HandleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	var body progressRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}
	if body.Progress == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation_error", Message: "progress is required", Field: "progress"})
		return
	}

	e, err := h.svc.UpdateProgress(r.Context(), userID(r), chi.URLParam(r, "courseId"), *body.Progress)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// === CERTIFICATES ===

func (h *LearningHandler) HandleListCertificates(w http.ResponseWriter, r *http.Request) {
	certs, err := h.svc.ListCertificates(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, certs)
}

func (h *LearningHandler) HandleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	var body enrollRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}

	c, err := h.svc.IssueCertificate(r.Context(), userID(r), body.CourseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// HandleVerifyCertificate is public: anyone holding a number can check it.
func (h *LearningHandler) HandleVerifyCertificate(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.VerifyCertificate(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// === REVIEWS ===

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *LearningHandler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.ListReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *LearningHandler) HandlePostReview(w http.ResponseWriter, r *http.Request) {
	var body reviewRequest
	if err := decodeJSON(w, r, &body); err != nil {
		writeError(w, err)
		return
	}

	review, err := h.svc.PostReview(r.Context(), userID(r), chi.URLParam(r, "id"), body.Rating, body.Comment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}
