package outline

import (
	"regexp"
	"strings"
)

// SectionNode is a node in the heading hierarchy extracted from imported text.
type SectionNode struct {
	Title    string
	Level    int // 1-3
	Order    int // Discovery order among all detected headings
	Children []*SectionNode
}

// ContentBlock is a flat slice of source text bounded by consecutive headings.
// Blocks are order-aligned with the flattened heading sequence: block i spans
// from heading i to the start of heading i+1 (or end of text). Text before the
// first heading is absorbed into block 0.
type ContentBlock struct {
	Title   string
	Level   int
	Order   int
	Content string
}

// DefaultTitle is the synthetic root section title used when no headings are
// detected in the input.
const DefaultTitle = "Main Content"

var (
	markdownHeadingRe = regexp.MustCompile(`^(#{1,3})\s+(.+)$`)
	numberedHeadingRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.)]\s+(.+)$`)
	allCapsRe         = regexp.MustCompile(`^[A-Z\s\-:]+$`)
	equalsUnderlineRe = regexp.MustCompile(`^={3,}$`)
	dashUnderlineRe   = regexp.MustCompile(`^-{3,}$`)
)

// heading is a detected heading before tree construction.
type heading struct {
	title     string
	level     int
	lineIndex int
}

// ExtractHeadings parses raw text into a heading hierarchy.
// It recognizes markdown headings (#, ##, ###), numbered headings
// ("1. Topic", "1.2 Topic"), ALL-CAPS lines, and underline-style headings
// (a line followed by === or ---). Detection rules are tried per line in that
// order; the first match wins. If no headings are found, a single synthetic
// root titled "Main Content" is returned.
func ExtractHeadings(text string) []*SectionNode {
	headings := detectHeadings(text)

	if len(headings) == 0 {
		return []*SectionNode{{Title: DefaultTitle, Level: 1, Order: 0, Children: []*SectionNode{}}}
	}

	return buildTree(headings)
}

// SplitContentByHeadings splits raw text into one content block per detected
// heading. When the text has no headings, a single block spanning the whole
// text is returned, paired with the synthetic root section.
func SplitContentByHeadings(text string) []ContentBlock {
	lines := strings.Split(text, "\n")
	headings := detectHeadings(text)

	if len(headings) == 0 {
		return []ContentBlock{{Title: DefaultTitle, Level: 1, Order: 0, Content: text}}
	}

	blocks := make([]ContentBlock, 0, len(headings))
	for i, h := range headings {
		start := h.lineIndex
		if i == 0 {
			// The first block absorbs any intro text before the first heading.
			start = 0
		}
		end := len(lines)
		if i+1 < len(headings) {
			end = headings[i+1].lineIndex
		}
		blocks = append(blocks, ContentBlock{
			Title:   h.title,
			Level:   h.level,
			Order:   i,
			Content: strings.Join(lines[start:end], "\n"),
		})
	}

	return blocks
}

// detectHeadings scans the text line by line and returns headings in source
// order. Rules are tried in a fixed priority order per line; first match wins.
func detectHeadings(text string) []heading {
	lines := strings.Split(text, "\n")
	var headings []heading

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := markdownHeadingRe.FindStringSubmatch(line); m != nil {
			headings = append(headings, heading{
				title:     strings.TrimSpace(m[2]),
				level:     len(m[1]),
				lineIndex: i,
			})
			continue
		}

		if m := numberedHeadingRe.FindStringSubmatch(line); m != nil {
			level := strings.Count(m[1], ".") + 1
			if level > 3 {
				level = 3
			}
			headings = append(headings, heading{
				title:     strings.TrimSpace(m[2]),
				level:     level,
				lineIndex: i,
			})
			continue
		}

		// ALL-CAPS lines, bounded in length to skip shouty code constants
		// and separator art.
		if len(line) >= 4 && len(line) <= 100 &&
			line == strings.ToUpper(line) && allCapsRe.MatchString(line) {
			headings = append(headings, heading{
				title:     titleCase(line),
				level:     1,
				lineIndex: i,
			})
			continue
		}

		// Underline-style headings: the following line is === or ---.
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if equalsUnderlineRe.MatchString(next) {
				headings = append(headings, heading{title: line, level: 1, lineIndex: i})
				continue
			}
			if dashUnderlineRe.MatchString(next) {
				headings = append(headings, heading{title: line, level: 2, lineIndex: i})
				continue
			}
		}
	}

	return headings
}

// buildTree builds a forest from the flat heading list using a stack:
// pop while the stack top's level >= the new heading's level, then attach
// the node to the new top (or as a root when the stack emptied).
func buildTree(headings []heading) []*SectionNode {
	var roots []*SectionNode
	type stackEntry struct {
		node  *SectionNode
		level int
	}
	var stack []stackEntry

	for i, h := range headings {
		node := &SectionNode{
			Title:    h.title,
			Level:    h.level,
			Order:    i,
			Children: []*SectionNode{},
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= h.level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, node)
		}

		stack = append(stack, stackEntry{node: node, level: h.level})
	}

	return roots
}

// titleCase folds an ALL-CAPS heading into display casing ("SOME TOPIC" ->
// "Some Topic").
func titleCase(s string) string {
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
