// Package handlers contains the HTTP handlers for the StudyForge API. Each
// handler is a ServeHTTP struct wired with the services it needs; user
// identity comes from the X-User-ID header set by the auth proxy in front of
// this service.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/tevfikefeaydin/StudyForge/internal/storage"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// requireUserID extracts the authenticated user id from the request. A
// missing header is a 400; the response has already been written when ok is
// false.
func requireUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if userID == "" {
		writeError(w, http.StatusBadRequest, "X-User-ID header is required")
		return "", false
	}
	return userID, true
}

// writeServiceError maps service errors to HTTP status codes: unknown
// entities 404, foreign resources 403, double grading 409, provider failures
// 502, vector store failures 503, everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Not found")
		return
	case errors.Is(err, storage.ErrNotOwner):
		writeError(w, http.StatusForbidden, "Resource belongs to another user")
		return
	case errors.Is(err, storage.ErrAlreadyGraded):
		writeError(w, http.StatusConflict, "Attempt already graded")
		return
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "failed to search") ||
		strings.Contains(msg, "vector store") ||
		strings.Contains(msg, "qdrant") ||
		strings.Contains(msg, "failed to upsert vectors") {
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		return
	}
	if strings.Contains(msg, "embed") ||
		strings.Contains(msg, "llm") ||
		strings.Contains(msg, "failed to generate question") ||
		strings.Contains(msg, "failed to grade answer") {
		writeError(w, http.StatusBadGateway, "External service error")
		return
	}

	writeError(w, http.StatusInternalServerError, "Internal server error")
}
