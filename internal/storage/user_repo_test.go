package storage

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestUserRepo_GetOrCreate(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user, err := repo.GetOrCreate(ctx, "u1")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if user.ID != "u1" || user.XP != 0 || user.Streak != 0 {
		t.Errorf("new user = %+v, want zeroed state", user)
	}
	if user.LastActiveAt != nil {
		t.Errorf("new user LastActiveAt = %v, want nil", user.LastActiveAt)
	}

	// Second call returns the same row, not a reset one.
	now := time.Now().UTC()
	if err := repo.ApplyAttempt(ctx, "u1", 25, 3, now); err != nil {
		t.Fatalf("ApplyAttempt() error = %v", err)
	}

	again, err := repo.GetOrCreate(ctx, "u1")
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if again.XP != 25 || again.Streak != 3 {
		t.Errorf("existing user = %+v, want preserved state", again)
	}
	if again.LastActiveAt == nil {
		t.Error("LastActiveAt not set after ApplyAttempt")
	}
}

func TestUserRepo_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestUserRepo_ApplyAttempt_Accumulates(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	if _, err := repo.GetOrCreate(ctx, "u1"); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	now := time.Now().UTC()
	if err := repo.ApplyAttempt(ctx, "u1", 10, 1, now); err != nil {
		t.Fatalf("ApplyAttempt() error = %v", err)
	}
	if err := repo.ApplyAttempt(ctx, "u1", 15, 2, now); err != nil {
		t.Fatalf("ApplyAttempt() error = %v", err)
	}

	user, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if user.XP != 25 {
		t.Errorf("XP = %d, want accumulated 25", user.XP)
	}
	if user.Streak != 2 {
		t.Errorf("Streak = %d, want last written 2", user.Streak)
	}
}

func TestUserRepo_ApplyAttempt_MissingUser(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)

	err := repo.ApplyAttempt(context.Background(), "missing", 10, 1, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ApplyAttempt() error = %v, want ErrNotFound", err)
	}
}
