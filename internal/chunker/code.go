package chunker

import (
	"regexp"
	"strings"
)

// definitionStarts maps a language to the pattern marking the start of a
// function/class/struct definition, tested against each trimmed line.
var definitionStarts = map[string]*regexp.Regexp{
	"python":     regexp.MustCompile(`^(def |class |async def )`),
	"javascript": regexp.MustCompile(`^(function |const \w+ = |class |export )`),
	"typescript": regexp.MustCompile(`^(function |const \w+ = |class |export |interface |type )`),
	"java":       regexp.MustCompile(`^\s*(public|private|protected)\s+(static\s+)?(class|void|int|String|boolean|List|Map)`),
	"cpp":        regexp.MustCompile(`^(\w[\w:<>*& ]+\s+\w+\s*\(|class \w+|namespace \w+)`),
	"c":          regexp.MustCompile(`^(\w[\w* ]+\s+\w+\s*\()`),
	"go":         regexp.MustCompile(`^(func |type \w+ struct)`),
	"rust":       regexp.MustCompile(`^(fn |pub fn |struct |impl |enum |trait )`),
}

type codeBoundary struct {
	start int
	end   int
}

// ChunkCode chunks code content. Inputs at or under the max line bound come
// back as a single chunk. Larger inputs are split on definition boundaries
// when the language is recognized, otherwise into fixed-size line windows.
// Split chunks record startLine/endLine in their metadata.
func ChunkCode(code, sectionID, language string, metadata map[string]any) []Chunk {
	lang := DetectLanguage(code, language)
	lines := strings.Split(code, "\n")

	if len(lines) <= codeMaxLines {
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			return nil
		}
		return []Chunk{{
			Content:   trimmed,
			Type:      TypeCode,
			Language:  lang,
			SectionID: sectionID,
			Metadata:  metadata,
		}}
	}

	boundaries := findCodeBoundaries(lines, lang)

	if len(boundaries) > 1 {
		chunks := make([]Chunk, 0, len(boundaries))
		for _, b := range boundaries {
			content := strings.TrimSpace(strings.Join(lines[b.start:b.end], "\n"))
			if content == "" {
				continue
			}
			chunks = append(chunks, Chunk{
				Content:   content,
				Type:      TypeCode,
				Language:  lang,
				SectionID: sectionID,
				Metadata:  withLineRange(metadata, b.start, b.end),
			})
		}
		return chunks
	}

	// Language unsupported or boundaries too sparse: fixed-size windows.
	var chunks []Chunk
	for i := 0; i < len(lines); i += codeMaxLines {
		end := i + codeMaxLines
		if end > len(lines) {
			end = len(lines)
		}
		content := strings.TrimSpace(strings.Join(lines[i:end], "\n"))
		if content == "" {
			continue
		}
		chunks = append(chunks, Chunk{
			Content:   content,
			Type:      TypeCode,
			Language:  lang,
			SectionID: sectionID,
			Metadata:  withLineRange(metadata, i, end),
		})
	}

	return chunks
}

// findCodeBoundaries scans for definition starts and cuts a boundary whenever
// the candidate segment is longer than codeMinLines, preventing
// pathologically tiny chunks. Returns nil for unrecognized languages.
func findCodeBoundaries(lines []string, lang string) []codeBoundary {
	pattern, ok := definitionStarts[lang]
	if !ok {
		return nil
	}

	var boundaries []codeBoundary
	current := 0

	for i, line := range lines {
		if pattern.MatchString(strings.TrimSpace(line)) && i > current+codeMinLines {
			boundaries = append(boundaries, codeBoundary{start: current, end: i})
			current = i
		}
	}

	if current < len(lines) {
		boundaries = append(boundaries, codeBoundary{start: current, end: len(lines)})
	}

	return boundaries
}

// withLineRange copies metadata and records the chunk's line span.
func withLineRange(metadata map[string]any, start, end int) map[string]any {
	meta := make(map[string]any, len(metadata)+2)
	for k, v := range metadata {
		meta[k] = v
	}
	meta["startLine"] = start
	meta["endLine"] = end
	return meta
}
