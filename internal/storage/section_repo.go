package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_store.go -package=mocks github.com/tevfikefeaydin/StudyForge/internal/storage SectionStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// SectionStore defines the interface for section storage operations.
type SectionStore interface {
	// Create inserts a new section. A missing ID is generated.
	Create(ctx context.Context, section *Section) error
	// GetByID gets a section by ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Section, error)
	// ListByCourse returns all sections of a course in reading order.
	ListByCourse(ctx context.Context, courseID string) ([]Section, error)
}

// SectionRepo provides methods for section operations.
// It implements the SectionStore interface.
type SectionRepo struct {
	db *sql.DB
}

// NewSectionRepo creates a new SectionRepo.
func NewSectionRepo(db *sql.DB) *SectionRepo {
	return &SectionRepo{db: db}
}

// Create inserts a new section. A missing ID is generated.
func (r *SectionRepo) Create(ctx context.Context, section *Section) error {
	if section.ID == "" {
		section.ID = uuid.New().String()
	}

	var parentID any
	if section.ParentID != "" {
		parentID = section.ParentID
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO sections (id, course_id, parent_id, title, level, sort_order) VALUES (?, ?, ?, ?, ?, ?)",
		section.ID, section.CourseID, parentID, section.Title, section.Level, section.Order,
	)
	if err != nil {
		return fmt.Errorf("failed to insert section: %w", err)
	}
	return nil
}

// GetByID gets a section by ID. Returns ErrNotFound if not found.
func (r *SectionRepo) GetByID(ctx context.Context, id string) (*Section, error) {
	var section Section
	var parentID sql.NullString

	err := r.db.QueryRowContext(ctx,
		"SELECT id, course_id, parent_id, title, level, sort_order FROM sections WHERE id = ?",
		id,
	).Scan(&section.ID, &section.CourseID, &parentID, &section.Title, &section.Level, &section.Order)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query section: %w", err)
	}

	section.ParentID = parentID.String
	return &section, nil
}

// ListByCourse returns all sections of a course ordered by sort_order.
func (r *SectionRepo) ListByCourse(ctx context.Context, courseID string) ([]Section, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, course_id, parent_id, title, level, sort_order FROM sections WHERE course_id = ? ORDER BY sort_order",
		courseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query sections: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var sections []Section
	for rows.Next() {
		var section Section
		var parentID sql.NullString
		if err := rows.Scan(&section.ID, &section.CourseID, &parentID, &section.Title, &section.Level, &section.Order); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		section.ParentID = parentID.String
		sections = append(sections, section)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sections, nil
}
