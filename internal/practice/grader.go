package practice

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/llm"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
)

const (
	// Minimum LLM rubric score counted as a correct answer.
	llmCorrectThreshold = 0.7
	// Minimum keyword-overlap score counted as a correct answer.
	heuristicCorrectThreshold = 0.5
)

var mcqLetterRe = regexp.MustCompile(`^\s*([A-Da-d])[\).]`)

// GradeResult is the outcome of grading one answer.
type GradeResult struct {
	Correct  bool
	Score    float64
	Feedback string
}

// Grader scores user answers. Free-text answers use an LLM rubric when one is
// configured and keyword overlap against the reference answer otherwise.
type Grader struct {
	llm *llm.Client
}

// NewGrader creates a new grader.
func NewGrader(client *llm.Client) *Grader {
	return &Grader{llm: client}
}

// GradeMCQ compares the chosen option against the correct one. A bare option
// letter is accepted in place of the full option text.
func (g *Grader) GradeMCQ(correctAnswer, userAnswer string) GradeResult {
	correct := strings.EqualFold(strings.TrimSpace(correctAnswer), strings.TrimSpace(userAnswer))
	if !correct {
		wantLetter := mcqLetterRe.FindStringSubmatch(correctAnswer)
		gotLetter := mcqLetterRe.FindStringSubmatch(userAnswer)
		if wantLetter != nil && gotLetter != nil {
			correct = strings.EqualFold(wantLetter[1], gotLetter[1])
		} else if wantLetter != nil && len(strings.TrimSpace(userAnswer)) == 1 {
			correct = strings.EqualFold(wantLetter[1], strings.TrimSpace(userAnswer))
		}
	}

	if correct {
		return GradeResult{Correct: true, Score: 1, Feedback: "Correct!"}
	}
	return GradeResult{Feedback: fmt.Sprintf("Not quite. The correct answer was: %s", correctAnswer)}
}

// GradeFlashcard converts a self-assessed recall quality (0..5) into a grade.
// A missing quality defaults to 4, or 1 when the answer signals the user
// did not know the card.
func (g *Grader) GradeFlashcard(userAnswer string, quality int) GradeResult {
	if quality < 1 {
		answer := strings.ToLower(strings.TrimSpace(userAnswer))
		if answer == "" || answer == "unknown" || strings.Contains(answer, "don't know") {
			quality = 1
		} else {
			quality = 4
		}
	}
	if quality > 5 {
		quality = 5
	}

	score := float64(quality) / 5
	result := GradeResult{Correct: quality >= 3, Score: score}
	if result.Correct {
		result.Feedback = "Marked as recalled."
	} else {
		result.Feedback = "Marked for review."
	}
	return result
}

// Grade scores a free-text answer against the reference answer. material is
// the source chunks the question was grounded in, shown to the LLM rubric for
// context.
func (g *Grader) Grade(ctx context.Context, question, correctAnswer, userAnswer string, material []storage.ChunkRecord) (GradeResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(correctAnswer) == "" {
		return GradeResult{Feedback: "This question has no reference answer to grade against."}, nil
	}

	if !g.llm.IsConfigured() {
		return heuristicGrade(correctAnswer, userAnswer), nil
	}

	raw, err := g.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: graderSystemPrompt},
		{Role: "user", Content: buildGradingPrompt(question, correctAnswer, userAnswer, material)},
	}, llm.ChatParams{JSONMode: true, Temperature: 0.2})
	if err != nil {
		return GradeResult{}, fmt.Errorf("failed to grade answer: %w", err)
	}

	var resp struct {
		Score    float64 `json:"score"`
		Feedback string  `json:"feedback"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil {
		logger.WarnContext(ctx, "unparsable grading response, falling back to keyword overlap", "error", err)
		result := heuristicGrade(correctAnswer, userAnswer)
		result.Feedback = strings.TrimSpace(raw)
		return result, nil
	}

	score := resp.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return GradeResult{
		Correct:  score >= llmCorrectThreshold,
		Score:    score,
		Feedback: resp.Feedback,
	}, nil
}

const graderSystemPrompt = "You are grading a student's answer against a reference answer. " +
	"Judge meaning, not wording. Respond with a single JSON object " +
	`{"score": number between 0 and 1, "feedback": "one or two helpful sentences"}.`

func buildGradingPrompt(question, correctAnswer, userAnswer string, material []storage.ChunkRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\nReference answer: %s\n\nStudent's answer: %s\n", question, correctAnswer, userAnswer)
	if len(material) > 0 {
		b.WriteString("\nSource material the question was based on:\n")
		for _, chunk := range material {
			fmt.Fprintf(&b, "---\n%s\n", chunk.Content)
		}
	}
	return b.String()
}

// heuristicGrade scores by keyword overlap: every word of the reference
// answer longer than three characters that appears in the lower-cased user
// answer counts as a match.
func heuristicGrade(correctAnswer, userAnswer string) GradeResult {
	user := strings.ToLower(userAnswer)

	var total, matches int
	for _, word := range strings.Fields(strings.ToLower(correctAnswer)) {
		word = strings.Trim(word, ".,;:!?()\"'")
		if len(word) <= 3 {
			continue
		}
		total++
		if strings.Contains(user, word) {
			matches++
		}
	}

	denominator := 0.5 * float64(total)
	if denominator < 1 {
		denominator = 1
	}
	score := float64(matches) / denominator
	if score > 1 {
		score = 1
	}

	result := GradeResult{Correct: score >= heuristicCorrectThreshold, Score: score}
	if result.Correct {
		result.Feedback = "Your answer covers the key points of the reference answer."
	} else {
		result.Feedback = fmt.Sprintf("Your answer matched %d of %d key terms. Reference answer: %s", matches, total, correctAnswer)
	}
	return result
}
