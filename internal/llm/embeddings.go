package llm

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// embedBatchSize is the provider's maximum number of inputs per call.
	embedBatchSize = 100
	// embedMaxChars truncates each input before sending it to the provider.
	embedMaxChars = 8000
)

// EmbeddingsClient is a client for an OpenAI-style embeddings API.
// When no API key is configured it produces deterministic pseudo-embeddings
// derived from a content hash, so the full import/retrieve pipeline works
// without external credentials.
type EmbeddingsClient struct {
	BaseURL    string
	APIKey     string
	Model      string
	Dimensions int // Vector size; provider output is validated against this
	client     *http.Client
}

// NewEmbeddingsClient creates a new embeddings client. dimensions is the
// expected vector size; all embeddings returned by EmbedTexts match it.
func NewEmbeddingsClient(baseURL, apiKey, model string, dimensions int) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Model:      model,
		Dimensions: dimensions,
		client:     http.DefaultClient,
	}
}

// IsConfigured reports whether a usable API key is present.
func (c *EmbeddingsClient) IsConfigured() bool {
	return c.APIKey != "" && !strings.HasPrefix(c.APIKey, "sk-your")
}

// EmbeddingsRequest represents the request payload for the embeddings API.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// EmbeddingData represents a single embedding in the response.
type EmbeddingData struct {
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingsResponse represents the response from the embeddings API.
type EmbeddingsResponse struct {
	Data []EmbeddingData `json:"data"`
}

// EmbedText generates an embedding for a single text.
func (c *EmbeddingsClient) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedTexts generates embeddings for the given texts, one vector per input
// in input order. Calls the provider in batches of at most 100 texts; without
// credentials it falls back to deterministic hash-derived vectors.
func (c *EmbeddingsClient) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}

	if !c.IsConfigured() {
		result := make([][]float32, len(texts))
		for i, t := range texts {
			result[i] = c.fakeEmbedding(t)
		}
		return result, nil
	}

	result := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch := make([]string, 0, end-start)
		for _, t := range texts[start:end] {
			if len(t) > embedMaxChars {
				t = t[:embedMaxChars]
			}
			batch = append(batch, t)
		}

		vecs, err := c.embedBatch(ctx, batch)
		if err != nil {
			return nil, err
		}
		result = append(result, vecs...)
	}

	return result, nil
}

// embedBatch sends one embeddings API call and returns vectors in input
// order, regardless of the order the provider listed them in.
func (c *EmbeddingsClient) embedBatch(ctx context.Context, batch []string) ([][]float32, error) {
	payload := EmbeddingsRequest{
		Model: c.Model,
		Input: batch,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/embeddings", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embeddingsResp EmbeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingsResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(embeddingsResp.Data) != len(batch) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(batch), len(embeddingsResp.Data))
	}

	result := make([][]float32, len(batch))
	for i, data := range embeddingsResp.Data {
		if len(data.Embedding) != c.Dimensions {
			return nil, fmt.Errorf("embedding %d has size %d, expected %d", i, len(data.Embedding), c.Dimensions)
		}

		idx := data.Index
		if idx < 0 || idx >= len(batch) {
			idx = i
		}

		vec := make([]float32, len(data.Embedding))
		for j, v := range data.Embedding {
			vec[j] = float32(v)
		}
		result[idx] = vec
	}

	return result, nil
}

// fakeEmbedding derives a fixed-dimension vector from the text's sha256
// digest, with components scaled into [-1, 1]. The same text always yields
// the same vector.
func (c *EmbeddingsClient) fakeEmbedding(text string) []float32 {
	digest := sha256.Sum256([]byte(text))
	vec := make([]float32, c.Dimensions)
	for i := range vec {
		vec[i] = float32(digest[i%len(digest)])/255*2 - 1
	}
	return vec
}
