package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_attempt_store.go -package=mocks github.com/tevfikefeaydin/StudyForge/internal/storage AttemptStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AttemptStore defines the interface for attempt storage operations.
type AttemptStore interface {
	// Create inserts a pending (ungraded) attempt. A missing ID is generated.
	Create(ctx context.Context, attempt *Attempt) error
	// GetByID gets an attempt by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Attempt, error)
	// Grade records the outcome of a pending attempt exactly once. Returns
	// ErrAlreadyGraded when the attempt already has a result and ErrNotFound
	// when it does not exist.
	Grade(ctx context.Context, id, userAnswer, feedback string, correct bool, score float64, timeMs int, gradedAt time.Time) error
	// ListRecentGraded returns the user's most recently graded attempts for
	// a section, newest first, capped at limit.
	ListRecentGraded(ctx context.Context, userID, sectionID string, limit int) ([]Attempt, error)
}

// AttemptRepo provides methods for attempt operations.
// It implements the AttemptStore interface.
type AttemptRepo struct {
	db *sql.DB
}

// NewAttemptRepo creates a new AttemptRepo.
func NewAttemptRepo(db *sql.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create inserts a pending (ungraded) attempt. A missing ID is generated.
func (r *AttemptRepo) Create(ctx context.Context, attempt *Attempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.New().String()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now().UTC()
	}
	if attempt.Options == "" {
		attempt.Options = "[]"
	}
	if attempt.ChunkIDs == "" {
		attempt.ChunkIDs = "[]"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attempts (id, user_id, course_id, section_id, chunk_ids, mode, submode, difficulty, question, expected_answer, options, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		attempt.ID, attempt.UserID, attempt.CourseID, attempt.SectionID, attempt.ChunkIDs, attempt.Mode,
		attempt.Submode, attempt.Difficulty, attempt.Question, attempt.ExpectedAnswer, attempt.Options, attempt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %w", err)
	}
	return nil
}

// GetByID gets an attempt by ID. Returns ErrNotFound if not found.
func (r *AttemptRepo) GetByID(ctx context.Context, id string) (*Attempt, error) {
	row := r.db.QueryRowContext(ctx, selectAttempt+" WHERE id = ?", id)

	attempt, err := scanAttempt(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query attempt: %w", err)
	}
	return attempt, nil
}

// Grade records the outcome of a pending attempt. The WHERE clause only
// matches ungraded rows, so a second grading leaves the first result intact.
func (r *AttemptRepo) Grade(ctx context.Context, id, userAnswer, feedback string, correct bool, score float64, timeMs int, gradedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE attempts SET user_answer = ?, feedback = ?, correct = ?, score = ?, time_ms = ?, graded_at = ?
		 WHERE id = ? AND correct IS NULL`,
		userAnswer, feedback, correct, score, timeMs, gradedAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to grade attempt: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check grade result: %w", err)
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyGraded
	}

	return nil
}

// ListRecentGraded returns the user's most recently graded attempts for a
// section, newest first. Attempts graded at the same instant keep reverse
// insertion order.
func (r *AttemptRepo) ListRecentGraded(ctx context.Context, userID, sectionID string, limit int) ([]Attempt, error) {
	rows, err := r.db.QueryContext(ctx,
		selectAttempt+`
		 WHERE user_id = ? AND section_id = ? AND correct IS NOT NULL
		 ORDER BY graded_at DESC, rowid DESC
		 LIMIT ?`,
		userID, sectionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var attempts []Attempt
	for rows.Next() {
		attempt, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		attempts = append(attempts, *attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return attempts, nil
}

const selectAttempt = `SELECT id, user_id, course_id, section_id, chunk_ids, mode, submode, difficulty, question, expected_answer, options,
       user_answer, feedback, correct, score, time_ms, created_at, graded_at
 FROM attempts`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttempt(row rowScanner) (*Attempt, error) {
	var attempt Attempt
	var correct sql.NullBool
	var score sql.NullFloat64
	var gradedAt sql.NullTime

	err := row.Scan(
		&attempt.ID, &attempt.UserID, &attempt.CourseID, &attempt.SectionID, &attempt.ChunkIDs, &attempt.Mode,
		&attempt.Submode, &attempt.Difficulty, &attempt.Question, &attempt.ExpectedAnswer, &attempt.Options,
		&attempt.UserAnswer, &attempt.Feedback, &correct, &score, &attempt.TimeMs, &attempt.CreatedAt, &gradedAt,
	)
	if err != nil {
		return nil, err
	}

	if correct.Valid {
		v := correct.Bool
		attempt.Correct = &v
	}
	if score.Valid {
		v := score.Float64
		attempt.Score = &v
	}
	if gradedAt.Valid {
		t := gradedAt.Time
		attempt.GradedAt = &t
	}

	return &attempt, nil
}
