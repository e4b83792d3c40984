package storage

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens a SQLite database connection at the given path.
// It enables foreign keys and sets connection pool settings.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Enable foreign keys (disabled by default in SQLite)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate runs database migrations to create the required tables.
// It is idempotent and can be run multiple times safely.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			xp INTEGER NOT NULL DEFAULT 0,
			streak INTEGER NOT NULL DEFAULT 0,
			last_active_at DATETIME,
			created_at DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS courses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);`,
		`CREATE TABLE IF NOT EXISTS sections (
			id TEXT PRIMARY KEY,
			course_id TEXT NOT NULL,
			parent_id TEXT,
			title TEXT NOT NULL,
			level INTEGER NOT NULL,
			sort_order INTEGER NOT NULL,
			FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE,
			FOREIGN KEY (parent_id) REFERENCES sections(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			course_id TEXT NOT NULL,
			section_id TEXT NOT NULL,
			chunk_type TEXT NOT NULL,
			language TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			metadata TEXT NOT NULL DEFAULT '{}',
			FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE,
			FOREIGN KEY (section_id) REFERENCES sections(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS attempts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			course_id TEXT NOT NULL,
			section_id TEXT NOT NULL,
			chunk_ids TEXT NOT NULL DEFAULT '[]',
			mode TEXT NOT NULL,
			submode TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			question TEXT NOT NULL,
			expected_answer TEXT NOT NULL,
			options TEXT NOT NULL DEFAULT '[]',
			user_answer TEXT NOT NULL DEFAULT '',
			feedback TEXT NOT NULL DEFAULT '',
			correct INTEGER,
			score REAL,
			time_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			graded_at DATETIME,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS progress (
			user_id TEXT NOT NULL,
			section_id TEXT NOT NULL,
			mastery INTEGER NOT NULL DEFAULT 0,
			xp INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (user_id, section_id),
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (section_id) REFERENCES sections(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS review_queue (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			course_id TEXT NOT NULL,
			attempt_id TEXT NOT NULL UNIQUE,
			question TEXT NOT NULL,
			expected_answer TEXT NOT NULL,
			interval_days INTEGER NOT NULL DEFAULT 1,
			ease_factor REAL NOT NULL DEFAULT 2.5,
			repetitions INTEGER NOT NULL DEFAULT 0,
			next_review_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (course_id) REFERENCES courses(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sections_course ON sections(course_id);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_section ON chunks(section_id);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_user_section ON attempts(user_id, section_id);`,
		`CREATE INDEX IF NOT EXISTS idx_review_due ON review_queue(user_id, next_review_at);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
