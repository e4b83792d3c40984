package storage

import (
	"context"
	"errors"
	"testing"
)

func seedUser(t *testing.T, repo *UserRepo, id string) {
	t.Helper()
	if _, err := repo.GetOrCreate(context.Background(), id); err != nil {
		t.Fatalf("failed to seed user %s: %v", id, err)
	}
}

func TestCourseRepo_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, NewUserRepo(db), "u1")
	repo := NewCourseRepo(db)
	ctx := context.Background()

	course := &Course{UserID: "u1", Title: "Data Structures", Description: "CS 201 notes"}
	if err := repo.Create(ctx, course); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if course.ID == "" {
		t.Fatal("Create() did not assign an ID")
	}

	got, err := repo.GetByID(ctx, course.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Data Structures" || got.UserID != "u1" || got.Description != "CS 201 notes" {
		t.Errorf("GetByID() = %+v, want created course", got)
	}
}

func TestCourseRepo_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewCourseRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestCourseRepo_ListByUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepo(db)
	seedUser(t, users, "u1")
	seedUser(t, users, "u2")
	repo := NewCourseRepo(db)
	ctx := context.Background()

	for _, title := range []string{"Algorithms", "Databases"} {
		if err := repo.Create(ctx, &Course{UserID: "u1", Title: title}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if err := repo.Create(ctx, &Course{UserID: "u2", Title: "Networking"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	courses, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}

	if len(courses) != 2 {
		t.Fatalf("ListByUser() returned %d courses, want 2", len(courses))
	}
	if courses[0].Title != "Algorithms" || courses[1].Title != "Databases" {
		t.Errorf("ListByUser() order = %s, %s; want creation order", courses[0].Title, courses[1].Title)
	}
}
