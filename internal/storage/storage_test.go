package storage

import (
	"database/sql"
	"testing"
)

// newTestDB creates an in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}
}
