package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewEmbeddingsClient(t *testing.T) {
	client := NewEmbeddingsClient("http://localhost:8080/v1", "test-key", "test-model", 768)
	if client == nil {
		t.Fatal("NewEmbeddingsClient() returned nil")
	}
	if client.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("NewEmbeddingsClient() BaseURL = %v, want http://localhost:8080/v1", client.BaseURL)
	}
	if client.Dimensions != 768 {
		t.Errorf("NewEmbeddingsClient() Dimensions = %v, want 768", client.Dimensions)
	}
}

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	tests := []struct {
		name       string
		texts      []string
		dimensions int
		serverResp func(w http.ResponseWriter, r *http.Request)
		wantErr    bool
		wantCount  int
	}{
		{
			name:       "successful embedding",
			texts:      []string{"Hello", "World"},
			dimensions: 768,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/embeddings" {
					t.Errorf("expected /embeddings, got %s", r.URL.Path)
				}

				resp := EmbeddingsResponse{
					Data: []EmbeddingData{
						{Index: 0, Embedding: make([]float64, 768)},
						{Index: 1, Embedding: make([]float64, 768)},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr:   false,
			wantCount: 2,
		},
		{
			name:       "empty input",
			texts:      []string{},
			dimensions: 768,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				// Should not be called
			},
			wantErr: true,
		},
		{
			name:       "wrong embedding count",
			texts:      []string{"Hello", "World"},
			dimensions: 768,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				resp := EmbeddingsResponse{
					Data: []EmbeddingData{
						{Index: 0, Embedding: make([]float64, 768)},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name:       "wrong vector size",
			texts:      []string{"Hello"},
			dimensions: 768,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				resp := EmbeddingsResponse{
					Data: []EmbeddingData{
						{Index: 0, Embedding: make([]float64, 512)},
					},
				}
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name:       "server error",
			texts:      []string{"Hello"},
			dimensions: 768,
			serverResp: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("internal server error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(tt.serverResp))
			defer server.Close()

			client := NewEmbeddingsClient(server.URL, "test-key", "test-model", tt.dimensions)
			embeddings, err := client.EmbedTexts(context.Background(), tt.texts)

			if tt.wantErr {
				if err == nil {
					t.Errorf("EmbedTexts() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("EmbedTexts() unexpected error: %v", err)
				return
			}

			if len(embeddings) != tt.wantCount {
				t.Errorf("EmbedTexts() returned %d embeddings, want %d", len(embeddings), tt.wantCount)
			}

			for i, emb := range embeddings {
				if len(emb) != tt.dimensions {
					t.Errorf("EmbedTexts() embedding[%d] size = %d, want %d", i, len(emb), tt.dimensions)
				}
			}
		})
	}
}

func TestEmbeddingsClient_EmbedTexts_OrderedByIndex(t *testing.T) {
	// The provider may list embeddings out of order; the index field maps
	// them back to their input position.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := EmbeddingsResponse{
			Data: []EmbeddingData{
				{Index: 1, Embedding: []float64{2, 2, 2}},
				{Index: 0, Embedding: []float64{1, 1, 1}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 3)
	embeddings, err := client.EmbedTexts(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}

	if embeddings[0][0] != 1 || embeddings[1][0] != 2 {
		t.Errorf("EmbedTexts() order = [%v, %v], want index-mapped [1, 2]", embeddings[0][0], embeddings[1][0])
	}
}

func TestEmbeddingsClient_EmbedTexts_TruncatesLongInput(t *testing.T) {
	var gotLen int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req EmbeddingsRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotLen = len(req.Input[0])

		resp := EmbeddingsResponse{
			Data: []EmbeddingData{
				{Index: 0, Embedding: make([]float64, 4)},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewEmbeddingsClient(server.URL, "test-key", "test-model", 4)
	long := make([]byte, embedMaxChars+500)
	for i := range long {
		long[i] = 'a'
	}

	if _, err := client.EmbedTexts(context.Background(), []string{string(long)}); err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if gotLen != embedMaxChars {
		t.Errorf("sent input length = %d, want truncated to %d", gotLen, embedMaxChars)
	}
}

func TestEmbeddingsClient_FallbackWithoutKey(t *testing.T) {
	client := NewEmbeddingsClient("http://unused", "", "test-model", 1536)

	first, err := client.EmbedTexts(context.Background(), []string{"binary search tree", "binary search tree", "hash table"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}

	if len(first) != 3 {
		t.Fatalf("EmbedTexts() returned %d embeddings, want 3", len(first))
	}
	for i, emb := range first {
		if len(emb) != 1536 {
			t.Fatalf("embedding[%d] size = %d, want 1536", i, len(emb))
		}
		for j, v := range emb {
			if v < -1 || v > 1 {
				t.Fatalf("embedding[%d][%d] = %v, outside [-1, 1]", i, j, v)
			}
		}
	}

	// Same text, same vector; different text, different vector.
	for j := range first[0] {
		if first[0][j] != first[1][j] {
			t.Fatal("identical texts produced different vectors")
		}
	}
	same := true
	for j := range first[0] {
		if first[0][j] != first[2][j] {
			same = false
			break
		}
	}
	if same {
		t.Error("different texts produced identical vectors")
	}

	// Deterministic across calls.
	second, err := client.EmbedTexts(context.Background(), []string{"binary search tree"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	for j := range first[0] {
		if first[0][j] != second[0][j] {
			t.Fatal("fallback embedding is not deterministic across calls")
		}
	}
}

func TestEmbeddingsClient_IsConfigured(t *testing.T) {
	tests := []struct {
		name   string
		apiKey string
		want   bool
	}{
		{"real key", "sk-abc123", true},
		{"empty key", "", false},
		{"placeholder key", "sk-your-api-key-here", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewEmbeddingsClient("http://localhost", tt.apiKey, "m", 8)
			if got := client.IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}
