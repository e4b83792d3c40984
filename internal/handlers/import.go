package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/importer"
)

// ContentImporter ingests raw text or code into a course.
type ContentImporter interface {
	ImportText(ctx context.Context, userID, courseID, content, title string) (*importer.Result, error)
	ImportCode(ctx context.Context, userID, courseID, code, language, title string) (*importer.Result, error)
}

// ImportTextHandler handles text/markdown imports.
type ImportTextHandler struct {
	importer ContentImporter
}

// NewImportTextHandler creates a new ImportTextHandler.
func NewImportTextHandler(imp ContentImporter) *ImportTextHandler {
	return &ImportTextHandler{importer: imp}
}

// ImportTextRequest represents the payload for importing text content.
type ImportTextRequest struct {
	CourseID string `json:"courseId"`
	Content  string `json:"content"`
	Title    string `json:"title,omitempty"`
}

// ServeHTTP imports a text document into a course.
func (h *ImportTextHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ImportTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CourseID == "" {
		writeError(w, http.StatusBadRequest, "courseId is required")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	result, err := h.importer.ImportText(ctx, userID, req.CourseID, req.Content, req.Title)
	if err != nil {
		logger.ErrorContext(ctx, "text import failed", "course_id", req.CourseID, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ImportCodeHandler handles standalone code imports.
type ImportCodeHandler struct {
	importer ContentImporter
}

// NewImportCodeHandler creates a new ImportCodeHandler.
func NewImportCodeHandler(imp ContentImporter) *ImportCodeHandler {
	return &ImportCodeHandler{importer: imp}
}

// ImportCodeRequest represents the payload for importing a code file.
type ImportCodeRequest struct {
	CourseID string `json:"courseId"`
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
	Title    string `json:"title,omitempty"`
}

// ServeHTTP imports a code file into a course.
func (h *ImportCodeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ImportCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CourseID == "" {
		writeError(w, http.StatusBadRequest, "courseId is required")
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "code is required")
		return
	}

	result, err := h.importer.ImportCode(ctx, userID, req.CourseID, req.Code, req.Language, req.Title)
	if err != nil {
		logger.ErrorContext(ctx, "code import failed", "course_id", req.CourseID, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
