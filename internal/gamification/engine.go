package gamification

import (
	"context"
	"fmt"
	"time"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
)

// Result summarizes the gamification outcome of one graded attempt.
type Result struct {
	Correct  bool    `json:"correct"`
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback,omitempty"`
	XPEarned int     `json:"xpEarned"`
	Streak   int     `json:"streak"`
	Mastery  int     `json:"mastery"`
}

// Engine applies the reward loop after grading: it persists the attempt
// outcome, updates the user's XP and streak, tracks per-section progress,
// queues missed questions for spaced review and recomputes section mastery.
type Engine struct {
	users    storage.UserStore
	attempts storage.AttemptStore
	progress storage.ProgressStore
	reviews  storage.ReviewStore
	now      func() time.Time
}

// NewEngine creates a new gamification engine.
func NewEngine(users storage.UserStore, attempts storage.AttemptStore, progress storage.ProgressStore, reviews storage.ReviewStore) *Engine {
	return &Engine{
		users:    users,
		attempts: attempts,
		progress: progress,
		reviews:  reviews,
		now:      time.Now,
	}
}

// RecordAttempt grades a pending attempt and applies all downstream state
// changes in order: streak, XP, user counters, section XP, review queue,
// mastery. The conditional attempt update is the idempotency gate; a second
// submission for the same attempt fails with storage.ErrAlreadyGraded
// before any reward state is touched.
func (e *Engine) RecordAttempt(ctx context.Context, attempt *storage.Attempt, userAnswer, feedback string, correct bool, score float64, timeMs int) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)
	now := e.now().UTC()

	// Progress and mastery writes are keyed by section; an attempt without
	// one must be rejected before the grade commits, or the attempt ends up
	// graded with no reward state applied.
	if attempt.SectionID == "" {
		return nil, fmt.Errorf("attempt %s has no section", attempt.ID)
	}

	if err := e.attempts.Grade(ctx, attempt.ID, userAnswer, feedback, correct, score, timeMs, now); err != nil {
		return nil, err
	}

	user, err := e.users.GetOrCreate(ctx, attempt.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	streak := NextStreak(user.Streak, user.LastActiveAt, correct, now)
	xp := CalculateXP(correct, attempt.Difficulty, streak, timeMs)

	if err := e.users.ApplyAttempt(ctx, user.ID, xp, streak, now); err != nil {
		return nil, fmt.Errorf("failed to apply attempt to user: %w", err)
	}

	if err := e.progress.AddXP(ctx, user.ID, attempt.SectionID, xp, now); err != nil {
		return nil, fmt.Errorf("failed to add section xp: %w", err)
	}

	if !correct {
		item := &storage.ReviewItem{
			UserID:         user.ID,
			CourseID:       attempt.CourseID,
			AttemptID:      attempt.ID,
			Question:       attempt.Question,
			ExpectedAnswer: attempt.ExpectedAnswer,
			IntervalDays:   1,
			EaseFactor:     DefaultEaseFactor,
			Repetitions:    0,
			NextReviewAt:   now,
		}
		if err := e.reviews.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to queue review item: %w", err)
		}
	}

	mastery, err := e.UpdateMastery(ctx, user.ID, attempt.SectionID)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "attempt recorded",
		"attempt_id", attempt.ID, "correct", correct, "xp", xp, "streak", streak, "mastery", mastery)

	return &Result{
		Correct:  correct,
		Score:    score,
		Feedback: feedback,
		XPEarned: xp,
		Streak:   streak,
		Mastery:  mastery,
	}, nil
}

// UpdateMastery recomputes section mastery from the most recent graded
// attempts and persists it. Returns the new mastery value.
func (e *Engine) UpdateMastery(ctx context.Context, userID, sectionID string) (int, error) {
	recent, err := e.attempts.ListRecentGraded(ctx, userID, sectionID, masteryWindow)
	if err != nil {
		return 0, fmt.Errorf("failed to load recent attempts: %w", err)
	}

	mastery := CalculateMastery(recent)
	if err := e.progress.SetMastery(ctx, userID, sectionID, mastery, e.now().UTC()); err != nil {
		return 0, fmt.Errorf("failed to store mastery: %w", err)
	}

	return mastery, nil
}

// RateReview applies one SM-2 rating to a review item and persists the new
// schedule. Returns the updated item.
func (e *Engine) RateReview(ctx context.Context, item *storage.ReviewItem, quality int) (*storage.ReviewItem, error) {
	logger := contextutil.LoggerFromContext(ctx)
	now := e.now().UTC()

	schedule := Schedule{
		IntervalDays: item.IntervalDays,
		EaseFactor:   item.EaseFactor,
		Repetitions:  item.Repetitions,
	}
	next, nextReviewAt := UpdateReviewSchedule(schedule, quality, now)

	if err := e.reviews.UpdateSchedule(ctx, item.ID, next.IntervalDays, next.EaseFactor, next.Repetitions, nextReviewAt); err != nil {
		return nil, err
	}

	updated := *item
	updated.IntervalDays = next.IntervalDays
	updated.EaseFactor = next.EaseFactor
	updated.Repetitions = next.Repetitions
	updated.NextReviewAt = nextReviewAt

	logger.InfoContext(ctx, "review item rescheduled",
		"item_id", item.ID, "quality", quality, "interval_days", next.IntervalDays, "repetitions", next.Repetitions)

	return &updated, nil
}
