package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_user_store.go -package=mocks github.com/tevfikefeaydin/StudyForge/internal/storage UserStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// UserStore defines the interface for user storage operations.
type UserStore interface {
	// GetOrCreate returns the user with the given ID, creating a fresh row
	// with zeroed gamification state when none exists.
	GetOrCreate(ctx context.Context, id string) (*User, error)
	// GetByID gets a user by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*User, error)
	// ApplyAttempt adds earned XP and records the new streak and activity
	// time in a single statement.
	ApplyAttempt(ctx context.Context, id string, xpDelta, streak int, lastActiveAt time.Time) error
}

// UserRepo provides methods for user operations.
// It implements the UserStore interface.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetOrCreate returns the user with the given ID, creating it if missing.
func (r *UserRepo) GetOrCreate(ctx context.Context, id string) (*User, error) {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, xp, streak, created_at) VALUES (?, 0, 0, ?) ON CONFLICT (id) DO NOTHING",
		id, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return r.GetByID(ctx, id)
}

// GetByID gets a user by ID. Returns ErrNotFound if not found.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	var user User
	var lastActive sql.NullTime

	err := r.db.QueryRowContext(ctx,
		"SELECT id, xp, streak, last_active_at, created_at FROM users WHERE id = ?",
		id,
	).Scan(&user.ID, &user.XP, &user.Streak, &lastActive, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if lastActive.Valid {
		t := lastActive.Time
		user.LastActiveAt = &t
	}

	return &user, nil
}

// ApplyAttempt adds earned XP and records the new streak and activity time.
// The XP increment happens in SQL so concurrent attempts never lose updates.
func (r *UserRepo) ApplyAttempt(ctx context.Context, id string, xpDelta, streak int, lastActiveAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET xp = xp + ?, streak = ?, last_active_at = ? WHERE id = ?",
		xpDelta, streak, lastActiveAt, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
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
