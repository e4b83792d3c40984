package practice

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/gamification"
	"github.com/tevfikefeaydin/StudyForge/internal/retrieval"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
)

// ContextRetriever finds the chunks most relevant to a query within a course.
type ContextRetriever interface {
	Retrieve(ctx context.Context, courseID, sectionID, query string, opts retrieval.Options) (*retrieval.Context, error)
}

// RewardEngine applies the gamification state changes of one graded attempt.
type RewardEngine interface {
	RecordAttempt(ctx context.Context, attempt *storage.Attempt, userAnswer, feedback string, correct bool, score float64, timeMs int) (*gamification.Result, error)
}

// Service drives the practice loop: it generates grounded questions as
// pending attempts and grades submitted answers, handing the outcome to the
// gamification engine.
type Service struct {
	courses   storage.CourseStore
	sections  storage.SectionStore
	chunks    storage.ChunkStore
	attempts  storage.AttemptStore
	retriever ContextRetriever
	generator *Generator
	grader    *Grader
	engine    RewardEngine
}

// NewService creates a new practice service.
func NewService(
	courses storage.CourseStore,
	sections storage.SectionStore,
	chunks storage.ChunkStore,
	attempts storage.AttemptStore,
	retriever ContextRetriever,
	generator *Generator,
	grader *Grader,
	engine RewardEngine,
) *Service {
	return &Service{
		courses:   courses,
		sections:  sections,
		chunks:    chunks,
		attempts:  attempts,
		retriever: retriever,
		generator: generator,
		grader:    grader,
		engine:    engine,
	}
}

// GenerateRequest asks for one practice question.
type GenerateRequest struct {
	UserID     string
	CourseID   string
	SectionID  string // Required; scopes retrieval and keys progress
	Mode       string
	SubMode    string // Code mode only
	Difficulty string
}

// GenerateResult is a generated question plus the id of the pending attempt
// created for it. AttemptID is empty for the insufficient-context outcome,
// which has nothing to grade.
type GenerateResult struct {
	AttemptID string    `json:"attemptId,omitempty"`
	Question  *Question `json:"question"`
}

// Generate retrieves section material, generates one question from it and
// records a pending attempt. The course and section must belong to the
// requesting user; every attempt is keyed by section so grading can update
// section progress.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course.UserID != req.UserID {
		return nil, storage.ErrNotOwner
	}

	section, err := s.sections.GetByID(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}
	if section.CourseID != req.CourseID {
		return nil, storage.ErrNotOwner
	}
	query := section.Title

	material, err := s.retriever.Retrieve(ctx, req.CourseID, req.SectionID, query, retrieval.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve material: %w", err)
	}

	question, err := s.generator.Generate(ctx, material, req.Mode, req.SubMode, req.Difficulty, query)
	if err != nil {
		return nil, err
	}
	question.ChunkIDs = intersectIDs(question.ChunkIDs, material.ChunkIDs())

	if question.Insufficient {
		logger.InfoContext(ctx, "insufficient material for question",
			"course_id", req.CourseID, "section_id", req.SectionID)
		return &GenerateResult{Question: question}, nil
	}

	options, err := json.Marshal(question.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}
	chunkIDs, err := json.Marshal(question.ChunkIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chunk ids: %w", err)
	}

	attempt := &storage.Attempt{
		UserID:         req.UserID,
		CourseID:       req.CourseID,
		SectionID:      req.SectionID,
		ChunkIDs:       string(chunkIDs),
		Mode:           req.Mode,
		Submode:        question.SubMode,
		Difficulty:     question.Difficulty,
		Question:       question.Question,
		ExpectedAnswer: question.Answer,
		Options:        string(options),
	}
	if err := s.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("failed to create attempt: %w", err)
	}

	logger.InfoContext(ctx, "question generated",
		"attempt_id", attempt.ID, "mode", req.Mode, "type", question.Type, "difficulty", question.Difficulty)

	return &GenerateResult{AttemptID: attempt.ID, Question: question}, nil
}

// GradeRequest submits an answer to a pending attempt. Quality is the
// self-assessed recall rating for flashcards, ignored otherwise.
type GradeRequest struct {
	UserID    string
	AttemptID string
	Answer    string
	Quality   int
	TimeMs    int
}

// Grade scores the submitted answer per the attempt's mode and applies the
// gamification state changes. A second submission for the same attempt fails
// with storage.ErrAlreadyGraded.
func (s *Service) Grade(ctx context.Context, req GradeRequest) (*gamification.Result, error) {
	attempt, err := s.attempts.GetByID(ctx, req.AttemptID)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != req.UserID {
		return nil, storage.ErrNotOwner
	}

	var grade GradeResult
	switch {
	case attempt.Mode == ModeFlashcard:
		grade = s.grader.GradeFlashcard(req.Answer, req.Quality)
	case isMultipleChoice(attempt):
		grade = s.grader.GradeMCQ(attempt.ExpectedAnswer, req.Answer)
	default:
		material := s.loadChunks(ctx, attempt.ChunkIDs)
		grade, err = s.grader.Grade(ctx, attempt.Question, attempt.ExpectedAnswer, req.Answer, material)
		if err != nil {
			return nil, err
		}
	}

	return s.engine.RecordAttempt(ctx, attempt, req.Answer, grade.Feedback, grade.Correct, grade.Score, req.TimeMs)
}

func isMultipleChoice(attempt *storage.Attempt) bool {
	var options []string
	if err := json.Unmarshal([]byte(attempt.Options), &options); err != nil {
		return false
	}
	return len(options) > 0
}

// loadChunks hydrates the chunks an attempt was grounded in, skipping ids
// that no longer resolve.
func (s *Service) loadChunks(ctx context.Context, chunkIDs string) []storage.ChunkRecord {
	logger := contextutil.LoggerFromContext(ctx)

	var ids []string
	if err := json.Unmarshal([]byte(chunkIDs), &ids); err != nil {
		return nil
	}

	chunks := make([]storage.ChunkRecord, 0, len(ids))
	for _, id := range ids {
		chunk, err := s.chunks.GetByID(ctx, id)
		if err != nil {
			logger.WarnContext(ctx, "failed to load source chunk", "chunk_id", id, "error", err)
			continue
		}
		chunks = append(chunks, *chunk)
	}
	return chunks
}

// intersectIDs keeps the ids in claimed that also appear in allowed,
// preserving claimed order. An empty claimed list stays empty.
func intersectIDs(claimed, allowed []string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = true
	}

	kept := make([]string, 0, len(claimed))
	for _, id := range claimed {
		if allowedSet[id] {
			kept = append(kept, id)
		}
	}
	return kept
}
