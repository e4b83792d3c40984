package storage

import "time"

// User represents a learner and their account-wide gamification state.
type User struct {
	ID           string
	XP           int
	Streak       int
	LastActiveAt *time.Time
	CreatedAt    time.Time
}

// Course represents an imported body of study notes owned by a user.
type Course struct {
	ID          string // UUID
	UserID      string
	Title       string
	Description string
	CreatedAt   time.Time
}

// Section represents one node of a course's heading tree.
type Section struct {
	ID       string // UUID
	CourseID string
	ParentID string // Empty for root sections
	Title    string
	Level    int // 1..3
	Order    int // Position in reading order within the course
}

// ChunkRecord represents an indexed chunk of course content. The row is the
// source of truth for chunk text; the vector store only carries the
// embedding and payload used for filtering.
type ChunkRecord struct {
	ID        string // UUID (same as vector store point ID)
	CourseID  string
	SectionID string
	ChunkType string // "text" or "code"
	Language  string // Empty for text chunks
	Content   string
	Metadata  string // JSON object, "{}" when empty
}

// Attempt represents a single generated practice item and, once graded, its
// outcome. Correct, Score and GradedAt stay NULL until grading.
type Attempt struct {
	ID             string // UUID
	UserID         string
	CourseID       string
	SectionID      string
	ChunkIDs       string // JSON array of source chunk IDs, "[]" when ungrounded
	Mode           string // "quiz", "flashcard" or "code"
	Submode        string // Code study submode, empty otherwise
	Difficulty     string // "easy", "medium" or "hard"
	Question       string
	ExpectedAnswer string
	Options        string // JSON array of MCQ options, "[]" otherwise
	UserAnswer     string
	Feedback       string
	Correct        *bool
	Score          *float64
	TimeMs         int
	CreatedAt      time.Time
	GradedAt       *time.Time
}

// Graded reports whether the attempt has been graded.
func (a *Attempt) Graded() bool {
	return a.Correct != nil
}

// Progress represents a user's per-section mastery and XP totals. Mastery is
// recomputed from attempt history; XP only ever increments.
type Progress struct {
	UserID    string
	SectionID string
	Mastery   int // 0..100
	XP        int
	UpdatedAt time.Time
}

// ReviewItem represents one entry in the spaced-repetition queue.
type ReviewItem struct {
	ID             string // UUID
	UserID         string
	CourseID       string
	AttemptID      string
	Question       string
	ExpectedAnswer string
	IntervalDays   int
	EaseFactor     float64
	Repetitions    int
	NextReviewAt   time.Time
	CreatedAt      time.Time
}
