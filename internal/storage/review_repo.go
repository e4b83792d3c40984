package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_review_store.go -package=mocks github.com/tevfikefeaydin/StudyForge/internal/storage ReviewStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReviewStore defines the interface for review queue operations.
type ReviewStore interface {
	// Create inserts a review item. The attempt_id column is unique, so a
	// second item for the same attempt is silently dropped.
	Create(ctx context.Context, item *ReviewItem) error
	// GetByID gets a review item by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ReviewItem, error)
	// NextDue returns the user's earliest item due at or before now.
	// Returns ErrNotFound when nothing is due.
	NextDue(ctx context.Context, userID string, now time.Time) (*ReviewItem, error)
	// UpdateSchedule stores the recomputed repetition state for an item.
	UpdateSchedule(ctx context.Context, id string, intervalDays int, easeFactor float64, repetitions int, nextReviewAt time.Time) error
	// Delete removes a review item.
	Delete(ctx context.Context, id string) error
}

// ReviewRepo provides methods for review queue operations.
// It implements the ReviewStore interface.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo creates a new ReviewRepo.
func NewReviewRepo(db *sql.DB) *ReviewRepo {
	return &ReviewRepo{db: db}
}

// Create inserts a review item. A missing ID is generated; inserting a
// second item for the same attempt is a no-op.
func (r *ReviewRepo) Create(ctx context.Context, item *ReviewItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO review_queue (id, user_id, course_id, attempt_id, question, expected_answer, interval_days, ease_factor, repetitions, next_review_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (attempt_id) DO NOTHING`,
		item.ID, item.UserID, item.CourseID, item.AttemptID, item.Question, item.ExpectedAnswer,
		item.IntervalDays, item.EaseFactor, item.Repetitions, item.NextReviewAt, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert review item: %w", err)
	}
	return nil
}

// GetByID gets a review item by ID. Returns ErrNotFound if not found.
func (r *ReviewRepo) GetByID(ctx context.Context, id string) (*ReviewItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, course_id, attempt_id, question, expected_answer, interval_days, ease_factor, repetitions, next_review_at, created_at
		 FROM review_queue WHERE id = ?`, id)

	item, err := scanReviewItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query review item: %w", err)
	}
	return item, nil
}

// NextDue returns the user's earliest item due at or before now. Items due
// at the same instant keep insertion order.
func (r *ReviewRepo) NextDue(ctx context.Context, userID string, now time.Time) (*ReviewItem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, course_id, attempt_id, question, expected_answer, interval_days, ease_factor, repetitions, next_review_at, created_at
		 FROM review_queue
		 WHERE user_id = ? AND next_review_at <= ?
		 ORDER BY next_review_at ASC, rowid ASC
		 LIMIT 1`,
		userID, now)

	item, err := scanReviewItem(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query next due item: %w", err)
	}
	return item, nil
}

// UpdateSchedule stores the recomputed repetition state for an item.
func (r *ReviewRepo) UpdateSchedule(ctx context.Context, id string, intervalDays int, easeFactor float64, repetitions int, nextReviewAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE review_queue SET interval_days = ?, ease_factor = ?, repetitions = ?, next_review_at = ? WHERE id = ?",
		intervalDays, easeFactor, repetitions, nextReviewAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update review schedule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a review item.
func (r *ReviewRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM review_queue WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete review item: %w", err)
	}
	return nil
}

func scanReviewItem(row rowScanner) (*ReviewItem, error) {
	var item ReviewItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.CourseID, &item.AttemptID, &item.Question, &item.ExpectedAnswer,
		&item.IntervalDays, &item.EaseFactor, &item.Repetitions, &item.NextReviewAt, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
