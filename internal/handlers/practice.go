package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/gamification"
	"github.com/tevfikefeaydin/StudyForge/internal/practice"
)

// PracticeService generates and grades practice questions.
type PracticeService interface {
	Generate(ctx context.Context, req practice.GenerateRequest) (*practice.GenerateResult, error)
	Grade(ctx context.Context, req practice.GradeRequest) (*gamification.Result, error)
}

// GenerateHandler handles practice question generation.
type GenerateHandler struct {
	svc PracticeService
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(svc PracticeService) *GenerateHandler {
	return &GenerateHandler{svc: svc}
}

// GenerateRequest represents the payload for generating a practice question.
type GenerateRequest struct {
	CourseID   string `json:"courseId"`
	SectionID  string `json:"sectionId"`
	Mode       string `json:"mode,omitempty"`
	SubMode    string `json:"subMode,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
}

// ServeHTTP generates one practice question and the pending attempt for it.
func (h *GenerateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CourseID == "" {
		writeError(w, http.StatusBadRequest, "courseId is required")
		return
	}
	if req.SectionID == "" {
		writeError(w, http.StatusBadRequest, "sectionId is required")
		return
	}
	if req.Mode == "" {
		req.Mode = practice.ModeQuiz
	}
	switch req.Mode {
	case practice.ModeQuiz, practice.ModeFlashcard, practice.ModeCode:
	default:
		writeError(w, http.StatusBadRequest, "mode must be quiz, flashcard or code")
		return
	}

	result, err := h.svc.Generate(ctx, practice.GenerateRequest{
		UserID:     userID,
		CourseID:   req.CourseID,
		SectionID:  req.SectionID,
		Mode:       req.Mode,
		SubMode:    req.SubMode,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		logger.ErrorContext(ctx, "question generation failed", "course_id", req.CourseID, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GradeHandler handles answer submission.
type GradeHandler struct {
	svc PracticeService
}

// NewGradeHandler creates a new GradeHandler.
func NewGradeHandler(svc PracticeService) *GradeHandler {
	return &GradeHandler{svc: svc}
}

// GradeRequest represents the payload for grading a submitted answer.
// Quality is the self-assessed recall rating for flashcards.
type GradeRequest struct {
	AttemptID string `json:"attemptId"`
	Answer    string `json:"answer"`
	Quality   int    `json:"quality,omitempty"`
	TimeMs    int    `json:"timeMs,omitempty"`
}

// ServeHTTP grades a submitted answer and returns the gamification outcome.
func (h *GradeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.AttemptID == "" {
		writeError(w, http.StatusBadRequest, "attemptId is required")
		return
	}
	if req.TimeMs < 0 {
		req.TimeMs = 0
	}

	result, err := h.svc.Grade(ctx, practice.GradeRequest{
		UserID:    userID,
		AttemptID: req.AttemptID,
		Answer:    req.Answer,
		Quality:   req.Quality,
		TimeMs:    req.TimeMs,
	})
	if err != nil {
		logger.WarnContext(ctx, "grading failed", "attempt_id", req.AttemptID, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
