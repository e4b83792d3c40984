package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks github.com/tevfikefeaydin/StudyForge/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// Insert inserts a single chunk. A missing ID is generated.
	Insert(ctx context.Context, chunk *ChunkRecord) error
	// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*ChunkRecord, error)
	// ListBySection returns all chunks of a section in insertion order.
	ListBySection(ctx context.Context, sectionID string) ([]ChunkRecord, error)
	// ListByCourse returns all chunks of a course in insertion order.
	ListByCourse(ctx context.Context, courseID string) ([]ChunkRecord, error)
	// DeleteBySection deletes all chunks for a section and returns their
	// IDs so the matching vector points can be removed.
	DeleteBySection(ctx context.Context, sectionID string) ([]string, error)
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// Insert inserts a single chunk. A missing ID is generated.
func (r *ChunkRepo) Insert(ctx context.Context, chunk *ChunkRecord) error {
	if chunk.ID == "" {
		chunk.ID = uuid.New().String()
	}
	if chunk.Metadata == "" {
		chunk.Metadata = "{}"
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chunks (id, course_id, section_id, chunk_type, language, content, metadata) VALUES (?, ?, ?, ?, ?, ?, ?)",
		chunk.ID, chunk.CourseID, chunk.SectionID, chunk.ChunkType, chunk.Language, chunk.Content, chunk.Metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
func (r *ChunkRepo) GetByID(ctx context.Context, id string) (*ChunkRecord, error) {
	var chunk ChunkRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, course_id, section_id, chunk_type, language, content, metadata FROM chunks WHERE id = ?",
		id,
	).Scan(&chunk.ID, &chunk.CourseID, &chunk.SectionID, &chunk.ChunkType, &chunk.Language, &chunk.Content, &chunk.Metadata)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk: %w", err)
	}

	return &chunk, nil
}

// ListBySection returns all chunks of a section in insertion order.
func (r *ChunkRepo) ListBySection(ctx context.Context, sectionID string) ([]ChunkRecord, error) {
	return r.list(ctx, "section_id", sectionID)
}

// ListByCourse returns all chunks of a course in insertion order.
func (r *ChunkRepo) ListByCourse(ctx context.Context, courseID string) ([]ChunkRecord, error) {
	return r.list(ctx, "course_id", courseID)
}

func (r *ChunkRepo) list(ctx context.Context, column, value string) ([]ChunkRecord, error) {
	query := fmt.Sprintf(
		"SELECT id, course_id, section_id, chunk_type, language, content, metadata FROM chunks WHERE %s = ? ORDER BY rowid",
		column,
	)
	rows, err := r.db.QueryContext(ctx, query, value)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []ChunkRecord
	for rows.Next() {
		var chunk ChunkRecord
		if err := rows.Scan(&chunk.ID, &chunk.CourseID, &chunk.SectionID, &chunk.ChunkType, &chunk.Language, &chunk.Content, &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return chunks, nil
}

// DeleteBySection deletes all chunks for a section and returns their IDs.
func (r *ChunkRepo) DeleteBySection(ctx context.Context, sectionID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM chunks WHERE section_id = ?", sectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunk IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chunk ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, "DELETE FROM chunks WHERE section_id = ?", sectionID); err != nil {
		return nil, fmt.Errorf("failed to delete chunks: %w", err)
	}

	return ids, nil
}
