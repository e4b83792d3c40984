package practice

// Practice modes selectable by the caller.
const (
	ModeQuiz      = "quiz"
	ModeFlashcard = "flashcard"
	ModeCode      = "code"
)

// Question kinds produced by the generator.
const (
	TypeMCQ         = "mcq"
	TypeShortAnswer = "short_answer"
	TypeFlashcard   = "flashcard"
	TypeCode        = "code"
)

// Code study submodes.
const (
	SubModeExplain = "explain"
	SubModePredict = "predict"
	SubModeBug     = "bug"
	SubModeFill    = "fill"
)

// Difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is one generated practice item. Insufficient marks the
// distinguished "cannot ground a question in the available material" outcome,
// which carries an explanatory question text, no answer and no chunk ids.
type Question struct {
	Type         string   `json:"type"`
	SubMode      string   `json:"subMode,omitempty"`
	Question     string   `json:"question"`
	Answer       string   `json:"answer,omitempty"`
	Options      []string `json:"options,omitempty"`
	Difficulty   string   `json:"difficulty"`
	ChunkIDs     []string `json:"chunkIds"`
	Insufficient bool     `json:"insufficient,omitempty"`
}

// NormalizeDifficulty maps arbitrary input to one of the three supported
// levels, defaulting to medium.
func NormalizeDifficulty(difficulty string) string {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return difficulty
	default:
		return DifficultyMedium
	}
}
