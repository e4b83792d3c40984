package retrieval

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/tevfikefeaydin/StudyForge/internal/llm"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
	storagemocks "github.com/tevfikefeaydin/StudyForge/internal/storage/mocks"
	"github.com/tevfikefeaydin/StudyForge/internal/vectorstore"
	vectormocks "github.com/tevfikefeaydin/StudyForge/internal/vectorstore/mocks"
)

type retrieverFixture struct {
	vectors *vectormocks.MockVectorStore
	chunks  *storagemocks.MockChunkStore
	ret     *Retriever
}

func newRetrieverFixture(t *testing.T) *retrieverFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &retrieverFixture{
		vectors: vectormocks.NewMockVectorStore(ctrl),
		chunks:  storagemocks.NewMockChunkStore(ctrl),
	}
	// No API key: the embedder falls back to deterministic vectors.
	embedder := llm.NewEmbeddingsClient("", "", "test-model", 8)
	f.ret = NewRetriever(embedder, f.vectors, "chunks", f.chunks)
	return f
}

func TestRetrieve_SplitsTextAndCode(t *testing.T) {
	f := newRetrieverFixture(t)
	ctx := context.Background()

	f.vectors.EXPECT().
		Search(ctx, "chunks", gomock.Any(), defaultTopKText, map[string]any{
			"course_id": "c1", "chunk_type": "text",
		}).
		Return([]vectorstore.SearchResult{
			{PointID: "t1", Score: 0.92},
			{PointID: "t2", Score: 0.81},
		}, nil)
	f.vectors.EXPECT().
		Search(ctx, "chunks", gomock.Any(), defaultTopKCode, map[string]any{
			"course_id": "c1", "chunk_type": "code",
		}).
		Return([]vectorstore.SearchResult{
			{PointID: "k1", Score: 0.77},
		}, nil)

	f.chunks.EXPECT().GetByID(ctx, "t1").
		Return(&storage.ChunkRecord{ID: "t1", ChunkType: "text", Content: "B-trees keep keys sorted."}, nil)
	f.chunks.EXPECT().GetByID(ctx, "t2").
		Return(&storage.ChunkRecord{ID: "t2", ChunkType: "text", Content: "Each node has many children."}, nil)
	f.chunks.EXPECT().GetByID(ctx, "k1").
		Return(&storage.ChunkRecord{ID: "k1", ChunkType: "code", Language: "go", Content: "func insert() {}"}, nil)

	got, err := f.ret.Retrieve(ctx, "c1", "", "how do b-trees work", Options{})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if len(got.TextChunks) != 2 || len(got.CodeChunks) != 1 {
		t.Fatalf("got %d text and %d code chunks, want 2 and 1", len(got.TextChunks), len(got.CodeChunks))
	}
	wantIDs := []string{"t1", "t2", "k1"}
	gotIDs := got.ChunkIDs()
	for i, id := range wantIDs {
		if gotIDs[i] != id {
			t.Errorf("ChunkIDs()[%d] = %q, want %q", i, gotIDs[i], id)
		}
	}
}

func TestRetrieve_SectionScopesSearch(t *testing.T) {
	f := newRetrieverFixture(t)
	ctx := context.Background()

	f.vectors.EXPECT().
		Search(ctx, "chunks", gomock.Any(), defaultTopKText, map[string]any{
			"course_id": "c1", "section_id": "s1", "chunk_type": "text",
		}).
		Return(nil, nil)
	f.vectors.EXPECT().
		Search(ctx, "chunks", gomock.Any(), defaultTopKCode, map[string]any{
			"course_id": "c1", "section_id": "s1", "chunk_type": "code",
		}).
		Return(nil, nil)

	got, err := f.ret.Retrieve(ctx, "c1", "s1", "indexing", Options{})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if !got.Empty() {
		t.Errorf("got %+v, want empty context", got)
	}
}

func TestRetrieve_SkipsChunksThatFailToLoad(t *testing.T) {
	f := newRetrieverFixture(t)
	ctx := context.Background()

	f.vectors.EXPECT().
		Search(ctx, "chunks", gomock.Any(), defaultTopKText, gomock.Any()).
		Return([]vectorstore.SearchResult{
			{PointID: "gone", Score: 0.9},
			{PointID: "t1", Score: 0.8},
		}, nil)
	f.vectors.EXPECT().
		Search(ctx, "chunks", gomock.Any(), defaultTopKCode, gomock.Any()).
		Return(nil, nil)

	f.chunks.EXPECT().GetByID(ctx, "gone").Return(nil, storage.ErrNotFound)
	f.chunks.EXPECT().GetByID(ctx, "t1").
		Return(&storage.ChunkRecord{ID: "t1", ChunkType: "text", Content: "still here"}, nil)

	got, err := f.ret.Retrieve(ctx, "c1", "", "query", Options{})
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
	if len(got.TextChunks) != 1 || got.TextChunks[0].ID != "t1" {
		t.Errorf("TextChunks = %+v, want just t1", got.TextChunks)
	}
}

func TestRetrieve_CustomTopKHonored(t *testing.T) {
	f := newRetrieverFixture(t)
	ctx := context.Background()

	f.vectors.EXPECT().
		Search(ctx, "chunks", gomock.Any(), 2, map[string]any{
			"course_id": "c1", "chunk_type": "text",
		}).
		Return(nil, nil)
	f.vectors.EXPECT().
		Search(ctx, "chunks", gomock.Any(), 7, map[string]any{
			"course_id": "c1", "chunk_type": "code",
		}).
		Return(nil, nil)

	if _, err := f.ret.Retrieve(ctx, "c1", "", "query", Options{TopKText: 2, TopKCode: 7}); err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}
}

func TestRetrieve_SearchErrorPropagates(t *testing.T) {
	f := newRetrieverFixture(t)
	ctx := context.Background()

	f.vectors.EXPECT().
		Search(ctx, "chunks", gomock.Any(), defaultTopKText, gomock.Any()).
		Return(nil, errors.New("collection missing"))

	if _, err := f.ret.Retrieve(ctx, "c1", "", "query", Options{}); err == nil {
		t.Fatal("Retrieve() error = nil, want search failure")
	}
}
