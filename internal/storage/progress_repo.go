package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_progress_store.go -package=mocks github.com/tevfikefeaydin/StudyForge/internal/storage ProgressStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// ProgressStore defines the interface for per-section progress operations.
type ProgressStore interface {
	// Get returns the user's progress for a section. Returns ErrNotFound if
	// the user has no recorded progress yet.
	Get(ctx context.Context, userID, sectionID string) (*Progress, error)
	// ListByUser returns all of the user's progress rows.
	ListByUser(ctx context.Context, userID string) ([]Progress, error)
	// SetMastery upserts the mastery percentage for a section.
	SetMastery(ctx context.Context, userID, sectionID string, mastery int, updatedAt time.Time) error
	// AddXP upserts the row and increments the section XP total.
	AddXP(ctx context.Context, userID, sectionID string, xpDelta int, updatedAt time.Time) error
}

// ProgressRepo provides methods for progress operations.
// It implements the ProgressStore interface.
type ProgressRepo struct {
	db *sql.DB
}

// NewProgressRepo creates a new ProgressRepo.
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// Get returns the user's progress for a section.
func (r *ProgressRepo) Get(ctx context.Context, userID, sectionID string) (*Progress, error) {
	var progress Progress
	err := r.db.QueryRowContext(ctx,
		"SELECT user_id, section_id, mastery, xp, updated_at FROM progress WHERE user_id = ? AND section_id = ?",
		userID, sectionID,
	).Scan(&progress.UserID, &progress.SectionID, &progress.Mastery, &progress.XP, &progress.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}

	return &progress, nil
}

// ListByUser returns all of the user's progress rows.
func (r *ProgressRepo) ListByUser(ctx context.Context, userID string) ([]Progress, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT user_id, section_id, mastery, xp, updated_at FROM progress WHERE user_id = ? ORDER BY rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress rows: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var items []Progress
	for rows.Next() {
		var progress Progress
		if err := rows.Scan(&progress.UserID, &progress.SectionID, &progress.Mastery, &progress.XP, &progress.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		items = append(items, progress)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// SetMastery upserts the mastery percentage for a section.
func (r *ProgressRepo) SetMastery(ctx context.Context, userID, sectionID string, mastery int, updatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress (user_id, section_id, mastery, xp, updated_at) VALUES (?, ?, ?, 0, ?)
		 ON CONFLICT (user_id, section_id) DO UPDATE SET mastery = excluded.mastery, updated_at = excluded.updated_at`,
		userID, sectionID, mastery, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set mastery: %w", err)
	}
	return nil
}

// AddXP upserts the row and increments the section XP total.
func (r *ProgressRepo) AddXP(ctx context.Context, userID, sectionID string, xpDelta int, updatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress (user_id, section_id, mastery, xp, updated_at) VALUES (?, ?, 0, ?, ?)
		 ON CONFLICT (user_id, section_id) DO UPDATE SET xp = progress.xp + excluded.xp, updated_at = excluded.updated_at`,
		userID, sectionID, xpDelta, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add xp: %w", err)
	}
	return nil
}
