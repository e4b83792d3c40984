// Package chunker splits imported text and code into bounded-size retrievable
// units. Text is chunked by paragraph with a small overlap between adjacent
// chunks; code is chunked on function/class boundaries when a language is
// recognized, with a fixed-window fallback.
package chunker

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ChunkType distinguishes text chunks from code chunks.
type ChunkType string

const (
	TypeText ChunkType = "text"
	TypeCode ChunkType = "code"
)

const (
	textMinTokens    = 300
	textMaxTokens    = 800
	textOverlapRatio = 0.1
	codeMaxLines     = 400
	codeMinLines     = 10
)

// Chunk is an atomic retrievable unit produced by the chunker.
type Chunk struct {
	Content   string
	Type      ChunkType
	Language  string // Only set for code chunks
	SectionID string
	Metadata  map[string]any
}

var paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)

// EstimateTokens returns a rough token count for text (~4 chars per token).
func EstimateTokens(text string) int {
	return (utf8.RuneCountInString(text) + 3) / 4
}

// ChunkText chunks text content with overlap, splitting on paragraph
// boundaries. Inputs at or under the max token bound come back as a single
// chunk. The tail of each flushed chunk (~10% by character count) seeds the
// next one so retrieval doesn't lose context at chunk edges.
func ChunkText(text, sectionID string, metadata map[string]any) []Chunk {
	if EstimateTokens(text) <= textMaxTokens {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []Chunk{{Content: trimmed, Type: TypeText, SectionID: sectionID, Metadata: metadata}}
	}

	var chunks []Chunk
	paragraphs := paragraphSplitRe.Split(text, -1)
	buffer := ""

	for _, para := range paragraphs {
		trimmed := strings.TrimSpace(para)
		if trimmed == "" {
			continue
		}

		candidateTokens := EstimateTokens(buffer + "\n\n" + trimmed)

		if candidateTokens > textMaxTokens && buffer != "" {
			chunks = append(chunks, Chunk{
				Content:   strings.TrimSpace(buffer),
				Type:      TypeText,
				SectionID: sectionID,
				Metadata:  metadata,
			})

			// Seed the next buffer with the last ~10% of the flushed one.
			runes := []rune(buffer)
			overlap := int(float64(len(runes)) * textOverlapRatio)
			buffer = string(runes[len(runes)-overlap:]) + "\n\n" + trimmed
		} else if buffer == "" {
			buffer = trimmed
		} else {
			buffer = buffer + "\n\n" + trimmed
		}
	}

	rest := strings.TrimSpace(buffer)
	switch {
	case rest != "" && EstimateTokens(buffer) >= textMinTokens/2:
		chunks = append(chunks, Chunk{Content: rest, Type: TypeText, SectionID: sectionID, Metadata: metadata})
	case rest != "" && len(chunks) > 0:
		// Too small to stand alone; fold into the previous chunk.
		chunks[len(chunks)-1].Content += "\n\n" + rest
	case rest != "":
		chunks = append(chunks, Chunk{Content: rest, Type: TypeText, SectionID: sectionID, Metadata: metadata})
	}

	return chunks
}
