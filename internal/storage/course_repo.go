package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_course_store.go -package=mocks github.com/tevfikefeaydin/StudyForge/internal/storage CourseStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CourseStore defines the interface for course storage operations.
type CourseStore interface {
	// Create inserts a new course. A missing ID is generated.
	Create(ctx context.Context, course *Course) error
	// GetByID gets a course by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Course, error)
	// ListByUser returns the user's courses in creation order.
	ListByUser(ctx context.Context, userID string) ([]Course, error)
}

// CourseRepo provides methods for course operations.
// It implements the CourseStore interface.
type CourseRepo struct {
	db *sql.DB
}

// NewCourseRepo creates a new CourseRepo.
func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{db: db}
}

// Create inserts a new course. A missing ID is generated.
func (r *CourseRepo) Create(ctx context.Context, course *Course) error {
	if course.ID == "" {
		course.ID = uuid.New().String()
	}
	if course.CreatedAt.IsZero() {
		course.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO courses (id, user_id, title, description, created_at) VALUES (?, ?, ?, ?, ?)",
		course.ID, course.UserID, course.Title, course.Description, course.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}
	return nil
}

// GetByID gets a course by ID. Returns ErrNotFound if not found.
func (r *CourseRepo) GetByID(ctx context.Context, id string) (*Course, error) {
	var course Course
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, title, description, created_at FROM courses WHERE id = ?",
		id,
	).Scan(&course.ID, &course.UserID, &course.Title, &course.Description, &course.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query course: %w", err)
	}

	return &course, nil
}

// ListByUser returns the user's courses in creation order.
func (r *CourseRepo) ListByUser(ctx context.Context, userID string) ([]Course, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, title, description, created_at FROM courses WHERE user_id = ? ORDER BY rowid",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(&course.ID, &course.UserID, &course.Title, &course.Description, &course.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return courses, nil
}
