package retrieval

import (
	"context"
	"fmt"

	"github.com/tevfikefeaydin/StudyForge/internal/contextutil"
	"github.com/tevfikefeaydin/StudyForge/internal/llm"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
	"github.com/tevfikefeaydin/StudyForge/internal/vectorstore"
)

const (
	defaultTopKText = 5
	defaultTopKCode = 3
)

// Options bounds how many chunks of each kind one retrieval returns. Zero or
// negative values take the defaults.
type Options struct {
	TopKText int
	TopKCode int
}

func (o Options) withDefaults() Options {
	if o.TopKText <= 0 {
		o.TopKText = defaultTopKText
	}
	if o.TopKCode <= 0 {
		o.TopKCode = defaultTopKCode
	}
	return o
}

// Context is the material retrieved for one query, split by chunk kind so
// prompts can frame prose and code differently.
type Context struct {
	TextChunks []storage.ChunkRecord
	CodeChunks []storage.ChunkRecord
}

// Empty reports whether retrieval found nothing usable.
func (c *Context) Empty() bool {
	return len(c.TextChunks) == 0 && len(c.CodeChunks) == 0
}

// ChunkIDs returns the ids of every retrieved chunk, text first.
func (c *Context) ChunkIDs() []string {
	ids := make([]string, 0, len(c.TextChunks)+len(c.CodeChunks))
	for _, chunk := range c.TextChunks {
		ids = append(ids, chunk.ID)
	}
	for _, chunk := range c.CodeChunks {
		ids = append(ids, chunk.ID)
	}
	return ids
}

// Retriever embeds a query and pulls the most similar course chunks from the
// vector store, hydrating their content from the database.
type Retriever struct {
	embedder    *llm.EmbeddingsClient
	vectorStore vectorstore.VectorStore
	collection  string
	chunks      storage.ChunkStore
}

// NewRetriever creates a new retriever.
func NewRetriever(embedder *llm.EmbeddingsClient, vectorStore vectorstore.VectorStore, collection string, chunks storage.ChunkStore) *Retriever {
	return &Retriever{
		embedder:    embedder,
		vectorStore: vectorStore,
		collection:  collection,
		chunks:      chunks,
	}
}

// Retrieve finds the chunks most relevant to the query within a course.
// A non-empty sectionID narrows the search to that section. Text and code
// chunks are searched separately with their own top-K limits from opts.
func (r *Retriever) Retrieve(ctx context.Context, courseID, sectionID, query string, opts Options) (*Context, error) {
	logger := contextutil.LoggerFromContext(ctx)
	opts = opts.withDefaults()

	queryVector, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	text, err := r.search(ctx, courseID, sectionID, "text", queryVector, opts.TopKText)
	if err != nil {
		return nil, err
	}
	code, err := r.search(ctx, courseID, sectionID, "code", queryVector, opts.TopKCode)
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "retrieval completed",
		"course_id", courseID, "section_id", sectionID,
		"text_chunks", len(text), "code_chunks", len(code))

	return &Context{TextChunks: text, CodeChunks: code}, nil
}

func (r *Retriever) search(ctx context.Context, courseID, sectionID, chunkType string, queryVector []float32, k int) ([]storage.ChunkRecord, error) {
	logger := contextutil.LoggerFromContext(ctx)

	filters := map[string]any{
		"course_id":  courseID,
		"chunk_type": chunkType,
	}
	if sectionID != "" {
		filters["section_id"] = sectionID
	}

	results, err := r.vectorStore.Search(ctx, r.collection, queryVector, k, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s chunks: %w", chunkType, err)
	}

	chunks := make([]storage.ChunkRecord, 0, len(results))
	for _, result := range results {
		chunk, err := r.chunks.GetByID(ctx, result.PointID)
		if err != nil {
			logger.WarnContext(ctx, "failed to hydrate chunk", "chunk_id", result.PointID, "error", err)
			continue
		}
		chunks = append(chunks, *chunk)
	}
	return chunks, nil
}
