package chunker

import (
	"regexp"
	"strings"
)

// fencedCodeRe matches a fenced code block with an optional language tag.
var fencedCodeRe = regexp.MustCompile("(?s)```(\\w*)\\n(.*?)```")

// SplitTextAndCode parses content that may contain fenced code blocks and
// routes prose through ChunkText and fence bodies through ChunkCode (using
// the fence's language tag when present), concatenating results in source
// order. This is the entry point through which imported notes are chunked.
func SplitTextAndCode(content, sectionID string) []Chunk {
	var chunks []Chunk
	lastIndex := 0

	for _, m := range fencedCodeRe.FindAllStringSubmatchIndex(content, -1) {
		// Text before this code block.
		textBefore := strings.TrimSpace(content[lastIndex:m[0]])
		if textBefore != "" {
			chunks = append(chunks, ChunkText(textBefore, sectionID, nil)...)
		}

		lang := content[m[2]:m[3]]
		code := content[m[4]:m[5]]
		if strings.TrimSpace(code) != "" {
			chunks = append(chunks, ChunkCode(code, sectionID, lang, nil)...)
		}

		lastIndex = m[1]
	}

	// Remaining text after the last code block.
	remaining := strings.TrimSpace(content[lastIndex:])
	if remaining != "" {
		chunks = append(chunks, ChunkText(remaining, sectionID, nil)...)
	}

	return chunks
}
