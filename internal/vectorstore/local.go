package vectorstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
)

// LocalStore implements VectorStore on top of SQLite with brute-force cosine
// scoring. It exists so the service runs without a Qdrant deployment; at
// study-note scale a full scan per query is acceptable.
type LocalStore struct {
	db *sql.DB
}

// NewLocalStore creates a SQLite-backed vector store using the given
// database handle.
func NewLocalStore(db *sql.DB) (*LocalStore, error) {
	schema := `
	CREATE TABLE IF NOT EXISTS vector_points (
		collection TEXT NOT NULL,
		point_id TEXT NOT NULL,
		vector TEXT NOT NULL,
		meta TEXT NOT NULL DEFAULT '{}',
		PRIMARY KEY (collection, point_id)
	);`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create vector_points table: %w", err)
	}
	return &LocalStore{db: db}, nil
}

// EnsureCollection is a no-op beyond schema creation; collections are rows
// sharing a collection name and carry no fixed vector size.
func (s *LocalStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	return nil
}

// CollectionExists always reports true once the backing table is in place;
// local collections spring into existence on first upsert.
func (s *LocalStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM vector_points LIMIT 1`).Scan(&one)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to check vector_points table: %w", err)
	}
	return true, nil
}

// Upsert inserts or updates points in the collection.
func (s *LocalStore) Upsert(ctx context.Context, collection string, points []Point) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(points) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vector_points (collection, point_id, vector, meta)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(collection, point_id) DO UPDATE SET vector = excluded.vector, meta = excluded.meta`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, point := range points {
		vec, err := json.Marshal(point.Vec)
		if err != nil {
			return fmt.Errorf("failed to marshal vector for point %s: %w", point.ID, err)
		}
		meta := []byte("{}")
		if len(point.Meta) > 0 {
			meta, err = json.Marshal(point.Meta)
			if err != nil {
				return fmt.Errorf("failed to marshal metadata for point %s: %w", point.ID, err)
			}
		}
		if _, err := stmt.ExecContext(ctx, collection, point.ID, string(vec), string(meta)); err != nil {
			return fmt.Errorf("failed to upsert point %s: %w", point.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert: %w", err)
	}

	logger.InfoContext(ctx, "upserted points", "collection", collection, "count", len(points))
	return nil
}

// Search scores every point in the collection against the query and returns
// the top k by cosine similarity. Ties keep insertion order. Points whose
// stored vector cannot be parsed score 0 rather than failing the search.
func (s *LocalStore) Search(ctx context.Context, collection string, query []float32, k int, filters map[string]any) ([]SearchResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT point_id, vector, meta FROM vector_points WHERE collection = ? ORDER BY rowid ASC`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load points: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []SearchResult
	for rows.Next() {
		var pointID, vecJSON, metaJSON string
		if err := rows.Scan(&pointID, &vecJSON, &metaJSON); err != nil {
			return nil, fmt.Errorf("failed to scan point: %w", err)
		}

		meta := make(map[string]any)
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			logger.WarnContext(ctx, "skipping point with invalid metadata", "point_id", pointID, "error", err)
			continue
		}
		if !matchesFilters(meta, filters) {
			continue
		}

		score := float32(0)
		var vec []float32
		if err := json.Unmarshal([]byte(vecJSON), &vec); err == nil {
			score = Cosine(query, vec)
		}

		results = append(results, SearchResult{
			PointID: pointID,
			Score:   score,
			Meta:    meta,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate points: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}

	logger.InfoContext(ctx, "search completed", "collection", collection, "k", k, "results", len(results))
	return results, nil
}

// Delete removes points by their IDs.
func (s *LocalStore) Delete(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM vector_points WHERE collection = ? AND point_id = ?`,
			collection, id); err != nil {
			return fmt.Errorf("failed to delete point %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

// matchesFilters checks the recognized filter keys against point metadata
// with string comparison.
func matchesFilters(meta map[string]any, filters map[string]any) bool {
	if len(filters) == 0 {
		return true
	}
	for _, key := range filterKeys {
		want, ok := filters[key]
		if !ok {
			continue
		}
		got, ok := meta[key]
		if !ok || fmt.Sprintf("%v", got) != fmt.Sprintf("%v", want) {
			return false
		}
	}
	return true
}
