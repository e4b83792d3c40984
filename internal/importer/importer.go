// Package importer turns raw imported text and code into persisted sections,
// chunk rows and vector points ready for retrieval.
package importer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/tevfikefeaydin/StudyForge/internal/chunker"
	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/llm"
	"github.com/tevfikefeaydin/StudyForge/internal/outline"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
	"github.com/tevfikefeaydin/StudyForge/internal/vectorstore"
)

// Importer ingests raw content into a course: it extracts the section tree,
// chunks each section's content, embeds the chunks and writes both the chunk
// rows and their vector points.
type Importer struct {
	courses    storage.CourseStore
	sections   storage.SectionStore
	chunks     storage.ChunkStore
	embedder   *llm.EmbeddingsClient
	vectors    vectorstore.VectorStore
	collection string
}

// NewImporter creates a new importer.
func NewImporter(
	courses storage.CourseStore,
	sections storage.SectionStore,
	chunks storage.ChunkStore,
	embedder *llm.EmbeddingsClient,
	vectors vectorstore.VectorStore,
	collection string,
) *Importer {
	return &Importer{
		courses:    courses,
		sections:   sections,
		chunks:     chunks,
		embedder:   embedder,
		vectors:    vectors,
		collection: collection,
	}
}

// Result reports what an import created.
type Result struct {
	SectionsCreated int `json:"sectionsCreated"`
	ChunksCreated   int `json:"chunksCreated"`
}

// ImportText ingests a text document into the course. The document's heading
// structure becomes the section tree; each heading's content is chunked
// (fenced code blocks routed through the code chunker), embedded and indexed.
// title names the synthetic root section when the document has no headings.
func (imp *Importer) ImportText(ctx context.Context, userID, courseID, content, title string) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := imp.checkOwnership(ctx, userID, courseID); err != nil {
		return nil, err
	}

	tree := outline.ExtractHeadings(content)
	if title != "" && len(tree) == 1 && tree[0].Title == outline.DefaultTitle && len(tree[0].Children) == 0 {
		tree[0].Title = title
	}

	flat, err := imp.persistSections(ctx, courseID, tree)
	if err != nil {
		return nil, err
	}

	blocks := outline.SplitContentByHeadings(content)
	if len(blocks) != len(flat) {
		// Must not happen with the extraction rules above, but pairing blocks
		// to sections positionally demands equal counts.
		logger.WarnContext(ctx, "section/block count mismatch, indexing whole text against first section",
			"sections", len(flat), "blocks", len(blocks))
		blocks = []outline.ContentBlock{{Title: flat[0].Title, Level: flat[0].Level, Content: content}}
		flat = flat[:1]
	}

	var allChunks []chunker.Chunk
	for i, block := range blocks {
		allChunks = append(allChunks, chunker.SplitTextAndCode(block.Content, flat[i].ID)...)
	}

	if err := imp.indexChunks(ctx, courseID, allChunks); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "text imported",
		"course_id", courseID, "sections", len(flat), "chunks", len(allChunks))

	return &Result{SectionsCreated: countNodes(tree), ChunksCreated: len(allChunks)}, nil
}

// ImportCode ingests a standalone code file into the course under a single
// new section. An empty language is auto-detected from the code.
func (imp *Importer) ImportCode(ctx context.Context, userID, courseID, code, language, title string) (*Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := imp.checkOwnership(ctx, userID, courseID); err != nil {
		return nil, err
	}

	existing, err := imp.sections.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sections: %w", err)
	}

	if title == "" {
		title = "Code"
	}
	section := &storage.Section{
		CourseID: courseID,
		Title:    title,
		Level:    1,
		Order:    len(existing),
	}
	if err := imp.sections.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("failed to create section: %w", err)
	}

	chunks := chunker.ChunkCode(code, section.ID, language, nil)
	if err := imp.indexChunks(ctx, courseID, chunks); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "code imported",
		"course_id", courseID, "section_id", section.ID, "chunks", len(chunks))

	return &Result{SectionsCreated: 1, ChunksCreated: len(chunks)}, nil
}

func (imp *Importer) checkOwnership(ctx context.Context, userID, courseID string) error {
	course, err := imp.courses.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course.UserID != userID {
		return storage.ErrNotOwner
	}
	return nil
}

// persistSections writes the heading tree depth-first and returns the created
// rows in document order, aligned with SplitContentByHeadings block order.
func (imp *Importer) persistSections(ctx context.Context, courseID string, tree []*outline.SectionNode) ([]*storage.Section, error) {
	var flat []*storage.Section

	var walk func(nodes []*outline.SectionNode, parentID string) error
	walk = func(nodes []*outline.SectionNode, parentID string) error {
		for _, node := range nodes {
			section := &storage.Section{
				CourseID: courseID,
				ParentID: parentID,
				Title:    node.Title,
				Level:    node.Level,
				Order:    node.Order,
			}
			if err := imp.sections.Create(ctx, section); err != nil {
				return fmt.Errorf("failed to create section %q: %w", node.Title, err)
			}
			flat = append(flat, section)
			if err := walk(node.Children, section.ID); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(tree, ""); err != nil {
		return nil, err
	}
	return flat, nil
}

// indexChunks embeds the chunks in one batch call and writes chunk rows plus
// vector points.
func (imp *Importer) indexChunks(ctx context.Context, courseID string, chunks []chunker.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Content
	}
	vectors, err := imp.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed chunks: %w", err)
	}

	points := make([]vectorstore.Point, 0, len(chunks))
	for i, chunk := range chunks {
		record := &storage.ChunkRecord{
			ID:        uuid.New().String(),
			CourseID:  courseID,
			SectionID: chunk.SectionID,
			ChunkType: string(chunk.Type),
			Language:  chunk.Language,
			Content:   chunk.Content,
			Metadata:  encodeMetadata(chunk.Metadata),
		}
		if err := imp.chunks.Insert(ctx, record); err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}

		meta := map[string]any{
			"course_id":  courseID,
			"section_id": chunk.SectionID,
			"chunk_type": string(chunk.Type),
		}
		if chunk.Language != "" {
			meta["language"] = chunk.Language
		}
		points = append(points, vectorstore.Point{ID: record.ID, Vec: vectors[i], Meta: meta})
	}

	if err := imp.vectors.Upsert(ctx, imp.collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}
	return nil
}

func encodeMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func countNodes(nodes []*outline.SectionNode) int {
	total := 0
	for _, node := range nodes {
		total += 1 + countNodes(node.Children)
	}
	return total
}
