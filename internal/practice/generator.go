package practice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/llm"
	"github.com/tevfikefeaydin/StudyForge/internal/retrieval"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
)

// Share of quiz questions generated as multiple choice rather than short
// answer.
const mcqShare = 0.6

var codeSubModes = []string{SubModeExplain, SubModePredict, SubModeBug, SubModeFill}

// Generator produces practice questions grounded in retrieved chunks. With a
// configured LLM it prompts for a JSON question; without one it builds a stub
// question from the retrieved material so the practice loop stays usable.
type Generator struct {
	llm *llm.Client

	// Injectable randomness for deterministic tests.
	pick  func() float64
	pickN func(n int) int
}

// NewGenerator creates a new question generator.
func NewGenerator(client *llm.Client) *Generator {
	return &Generator{
		llm:   client,
		pick:  rand.Float64,
		pickN: rand.IntN,
	}
}

// Generate builds one question for the given mode and difficulty from the
// retrieved chunks. An empty retrieval context yields the insufficient-context
// result rather than an error. subMode applies to code mode only; when empty
// one is chosen at random.
func (g *Generator) Generate(ctx context.Context, material *retrieval.Context, mode, subMode, difficulty, sectionTitle string) (*Question, error) {
	logger := contextutil.LoggerFromContext(ctx)
	difficulty = NormalizeDifficulty(difficulty)

	if material == nil || material.Empty() {
		return insufficientQuestion(difficulty), nil
	}
	if mode == ModeCode && len(material.CodeChunks) == 0 {
		return insufficientQuestion(difficulty), nil
	}
	if mode == ModeCode && subMode == "" {
		subMode = codeSubModes[g.pickN(len(codeSubModes))]
	}

	questionType := typeForMode(mode, g.pick)

	if !g.llm.IsConfigured() {
		logger.DebugContext(ctx, "llm not configured, generating stub question", "mode", mode)
		return g.stubQuestion(material, mode, subMode, difficulty, sectionTitle), nil
	}

	prompt := buildGenerationPrompt(material, questionType, subMode, difficulty, sectionTitle)
	raw, err := g.llm.Chat(ctx, []llm.Message{
		{Role: "system", Content: generatorSystemPrompt},
		{Role: "user", Content: prompt},
	}, llm.ChatParams{JSONMode: true, Temperature: 0.8})
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			return g.stubQuestion(material, mode, subMode, difficulty, sectionTitle), nil
		}
		return nil, fmt.Errorf("failed to generate question: %w", err)
	}

	return parseGeneratorResponse(raw, material, questionType, subMode, difficulty), nil
}

const generatorSystemPrompt = "You are a tutor generating practice questions. " +
	"Use only the study material provided by the user; never invent facts that are not in it. " +
	"Respond with a single JSON object and nothing else."

func typeForMode(mode string, pick func() float64) string {
	switch mode {
	case ModeFlashcard:
		return TypeFlashcard
	case ModeCode:
		return TypeCode
	default:
		if pick() < mcqShare {
			return TypeMCQ
		}
		return TypeShortAnswer
	}
}

func buildGenerationPrompt(material *retrieval.Context, questionType, subMode, difficulty, sectionTitle string) string {
	var b strings.Builder

	b.WriteString("Study material")
	if sectionTitle != "" {
		fmt.Fprintf(&b, " for the section %q", sectionTitle)
	}
	b.WriteString(":\n\n")
	for _, chunk := range material.TextChunks {
		fmt.Fprintf(&b, "[chunk %s]\n%s\n\n", chunk.ID, chunk.Content)
	}
	for _, chunk := range material.CodeChunks {
		fmt.Fprintf(&b, "[chunk %s] (%s code)\n%s\n\n", chunk.ID, chunk.Language, chunk.Content)
	}

	fmt.Fprintf(&b, "Generate one %s question of %s difficulty", questionTypeLabel(questionType, subMode), difficulty)
	b.WriteString(" grounded in the material above.\n")
	b.WriteString(`Respond with JSON: {"question": string, "answer": string, `)

	if questionType == TypeMCQ {
		b.WriteString(`"options": ["A) ...", "B) ...", "C) ...", "D) ..."], `)
		b.WriteString(`the answer being the full text of the correct option, `)
	}
	fmt.Fprintf(&b, `"difficulty": %q, "chunkIds": [ids of the chunks used], "type": %q}.`, difficulty, questionType)
	b.WriteString("\nIf the material is not enough to write a meaningful question, respond with " +
		`{"insufficient": true, "question": "<one sentence saying why>"}.`)

	return b.String()
}

func questionTypeLabel(questionType, subMode string) string {
	switch questionType {
	case TypeMCQ:
		return "multiple-choice"
	case TypeFlashcard:
		return "flashcard (question on the front, answer on the back)"
	case TypeCode:
		switch subMode {
		case SubModePredict:
			return "predict-the-output code"
		case SubModeBug:
			return "spot-the-bug code"
		case SubModeFill:
			return "fill-in-the-blank code"
		default:
			return "explain-the-code"
		}
	default:
		return "short-answer"
	}
}

type generatorResponse struct {
	Question     string   `json:"question"`
	Answer       string   `json:"answer"`
	Options      []string `json:"options"`
	Difficulty   string   `json:"difficulty"`
	ChunkIDs     []string `json:"chunkIds"`
	Type         string   `json:"type"`
	Insufficient bool     `json:"insufficient"`
}

// parseGeneratorResponse decodes the provider's JSON. An unparsable payload
// degrades to a short-answer question carrying the raw text, citing every
// provided chunk.
func parseGeneratorResponse(raw string, material *retrieval.Context, questionType, subMode, difficulty string) *Question {
	var resp generatorResponse
	if err := json.Unmarshal([]byte(extractJSON(raw)), &resp); err != nil || resp.Question == "" && !resp.Insufficient {
		return &Question{
			Type:       TypeShortAnswer,
			Question:   strings.TrimSpace(raw),
			Difficulty: difficulty,
			ChunkIDs:   material.ChunkIDs(),
		}
	}

	if resp.Insufficient {
		q := insufficientQuestion(difficulty)
		if resp.Question != "" {
			q.Question = resp.Question
		}
		return q
	}

	if resp.Type == "" {
		resp.Type = questionType
	}
	if resp.Difficulty != "" {
		difficulty = NormalizeDifficulty(resp.Difficulty)
	}
	return &Question{
		Type:       resp.Type,
		SubMode:    subMode,
		Question:   resp.Question,
		Answer:     resp.Answer,
		Options:    resp.Options,
		Difficulty: difficulty,
		ChunkIDs:   resp.ChunkIDs,
	}
}

// extractJSON strips markdown code fences and surrounding prose, keeping the
// outermost JSON object.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return raw
	}
	return raw[start : end+1]
}

func insufficientQuestion(difficulty string) *Question {
	return &Question{
		Type:         TypeShortAnswer,
		Question:     "There is not enough imported material in this section to generate a question. Try importing more notes first.",
		Difficulty:   difficulty,
		ChunkIDs:     []string{},
		Insufficient: true,
	}
}

// stubQuestion builds a deterministic-shape question from one retrieved chunk
// when no LLM is configured.
func (g *Generator) stubQuestion(material *retrieval.Context, mode, subMode, difficulty, sectionTitle string) *Question {
	chunk := g.pickChunk(material, mode)
	passage := excerpt(chunk.Content, 400)

	topic := sectionTitle
	if topic == "" {
		topic = "your notes"
	}

	switch mode {
	case ModeFlashcard:
		return &Question{
			Type:       TypeFlashcard,
			Question:   fmt.Sprintf("Recall the key points of this passage from %s.", topic),
			Answer:     passage,
			Difficulty: difficulty,
			ChunkIDs:   []string{chunk.ID},
		}
	case ModeCode:
		return &Question{
			Type:       TypeCode,
			SubMode:    subMode,
			Question:   fmt.Sprintf("Explain what this %s code does:\n\n%s", chunk.Language, passage),
			Answer:     passage,
			Difficulty: difficulty,
			ChunkIDs:   []string{chunk.ID},
		}
	default:
		return &Question{
			Type:       TypeShortAnswer,
			Question:   fmt.Sprintf("In your own words, explain the following passage from %s:\n\n%s", topic, passage),
			Answer:     passage,
			Difficulty: difficulty,
			ChunkIDs:   []string{chunk.ID},
		}
	}
}

func (g *Generator) pickChunk(material *retrieval.Context, mode string) storage.ChunkRecord {
	if mode == ModeCode && len(material.CodeChunks) > 0 {
		return material.CodeChunks[g.pickN(len(material.CodeChunks))]
	}
	if len(material.TextChunks) > 0 {
		return material.TextChunks[g.pickN(len(material.TextChunks))]
	}
	return material.CodeChunks[g.pickN(len(material.CodeChunks))]
}

func excerpt(content string, max int) string {
	content = strings.TrimSpace(content)
	if len(content) <= max {
		return content
	}
	return content[:max] + "..."
}
