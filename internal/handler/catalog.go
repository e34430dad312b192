package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/codeclass/internal/apperror"
	"github.com/sakif/codeclass/internal/catalog"
	"github.com/sakif/codeclass/internal/model"
	"github.com/sakif/codeclass/internal/service"
)

// CatalogHandler serves the read-only course, curriculum and resource
// catalogs.
type CatalogHandler struct {
	cat      *catalog.Catalog
	learning *service.LearningService
	logger   *slog.Logger
}

func NewCatalogHandler(cat *catalog.Catalog, learning *service.LearningService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{cat: cat, learning: learning, logger: logger}
}

// HandleCourses serves GET /api/courses?category=.
func (h *CatalogHandler) HandleCourses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cat.CoursesByCategory(r.URL.Query().Get("category")))
}

// CourseDetail is a course with its review summary.
type CourseDetail struct {
	catalog.Course
	Rating *model.RatingSummary `json:"rating"`
}

func (h *CatalogHandler) HandleCourse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	course, ok := h.cat.Courses.Get(id)
	if !ok {
		writeError(w, apperror.NotFound("course", id))
		return
	}

	rating, err := h.learning.CourseRating(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CourseDetail{Course: course, Rating: rating})
}

// HandleCurriculum serves GET /api/curriculum?class=.
func (h *CatalogHandler) HandleCurriculum(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cat.ModulesForClass(r.URL.Query().Get("class")))
}

func (h *CatalogHandler) HandleModule(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	m, ok := h.cat.Curriculum.Get(slug)
	if !ok {
		writeError(w, apperror.NotFound("curriculum module", slug))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// HandleResources serves GET /api/resources?subject=.
func (h *CatalogHandler) HandleResources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cat.ResourcesForSubject(r.URL.Query().Get("subject")))
}
