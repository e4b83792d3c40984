package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
)

// CoursesHandler handles course creation and listing.
type CoursesHandler struct {
	courses storage.CourseStore
}

// NewCoursesHandler creates a new CoursesHandler.
func NewCoursesHandler(courses storage.CourseStore) *CoursesHandler {
	return &CoursesHandler{courses: courses}
}

// CreateCourseRequest represents the payload for creating a course.
type CreateCourseRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// CourseResponse represents a course in API responses.
type CourseResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func courseResponse(course *storage.Course) CourseResponse {
	return CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Description: course.Description,
		CreatedAt:   course.CreatedAt,
	}
}

// ServeHTTP creates a course on POST and lists the user's courses on GET.
func (h *CoursesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *CoursesHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	course := &storage.Course{
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	if err := h.courses.Create(ctx, course); err != nil {
		logger.ErrorContext(ctx, "failed to create course", "error", err)
		writeServiceError(w, err)
		return
	}

	logger.InfoContext(ctx, "course created", "course_id", course.ID, "user_id", userID)
	writeJSON(w, http.StatusCreated, courseResponse(course))
}

func (h *CoursesHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courses, err := h.courses.ListByUser(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list courses", "error", err)
		writeServiceError(w, err)
		return
	}

	resp := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		resp = append(resp, courseResponse(&courses[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"courses": resp})
}

// SectionsHandler lists a course's sections with the user's progress.
type SectionsHandler struct {
	courses  storage.CourseStore
	sections storage.SectionStore
	progress storage.ProgressStore
}

// NewSectionsHandler creates a new SectionsHandler.
func NewSectionsHandler(courses storage.CourseStore, sections storage.SectionStore, progress storage.ProgressStore) *SectionsHandler {
	return &SectionsHandler{courses: courses, sections: sections, progress: progress}
}

// SectionResponse represents a section in API responses, annotated with the
// requesting user's mastery and XP for it.
type SectionResponse struct {
	ID       string `json:"id"`
	ParentID string `json:"parentId,omitempty"`
	Title    string `json:"title"`
	Level    int    `json:"level"`
	Order    int    `json:"order"`
	Mastery  int    `json:"mastery"`
	XP       int    `json:"xp"`
}

// ServeHTTP lists the sections of one course in reading order.
func (h *SectionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	courseID := chi.URLParam(r, "id")
	course, err := h.courses.GetByID(ctx, courseID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if course.UserID != userID {
		writeServiceError(w, storage.ErrNotOwner)
		return
	}

	sections, err := h.sections.ListByCourse(ctx, courseID)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list sections", "error", err)
		writeServiceError(w, err)
		return
	}

	progressBySection := make(map[string]storage.Progress)
	progress, err := h.progress.ListByUser(ctx, userID)
	if err != nil {
		logger.WarnContext(ctx, "failed to load progress", "error", err)
	} else {
		for _, p := range progress {
			progressBySection[p.SectionID] = p
		}
	}

	resp := make([]SectionResponse, 0, len(sections))
	for _, section := range sections {
		p := progressBySection[section.ID]
		resp = append(resp, SectionResponse{
			ID:       section.ID,
			ParentID: section.ParentID,
			Title:    section.Title,
			Level:    section.Level,
			Order:    section.Order,
			Mastery:  p.Mastery,
			XP:       p.XP,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"sections": resp})
}
