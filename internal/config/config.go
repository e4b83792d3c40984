package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL string
	LLMModel   string
	LLMAPIKey  string

	EmbeddingsBaseURL    string
	EmbeddingsModel      string
	EmbeddingsAPIKey     string
	EmbeddingsDimensions int

	DBPath string

	// QdrantURL selects the vector store backend: set, the service talks to
	// Qdrant; empty, it falls back to the SQLite-backed local store.
	QdrantURL        string
	QdrantCollection string

	APIPort string

	LogLevel  slog.Level
	LogFormat string // "text" or "json"
}

// Load reads configuration from environment variables and returns a Config
// struct, applying defaults for optional fields. If a .env file exists in the
// current directory or a parent (up to the project root), it is loaded first;
// environment variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:        getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:         getEnv("LLM_API_KEY", ""),
		EmbeddingsBaseURL: getEnv("EMBEDDINGS_BASE_URL", "https://api.openai.com/v1"),
		EmbeddingsModel:   getEnv("EMBEDDINGS_MODEL", "text-embedding-3-small"),
		EmbeddingsAPIKey:  getEnv("EMBEDDINGS_API_KEY", ""),
		DBPath:            getEnv("DB_PATH", "./data/studyforge.db"),
		QdrantURL:         getEnv("QDRANT_URL", ""),
		QdrantCollection:  getEnv("QDRANT_COLLECTION", "chunks"),
		APIPort:           getEnv("API_PORT", "9000"),
		LogLevel:          parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
	}

	// The embedder key falls back to the LLM key when both point at the same
	// provider.
	if cfg.EmbeddingsAPIKey == "" {
		cfg.EmbeddingsAPIKey = cfg.LLMAPIKey
	}

	// Dimensions must match the embedding model's output; stored vectors
	// become unusable if this changes without reindexing.
	dimensionsStr := getEnv("EMBEDDINGS_DIMENSIONS", "1536")
	dimensions, err := strconv.Atoi(dimensionsStr)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDINGS_DIMENSIONS must be a valid integer: %w", err)
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("EMBEDDINGS_DIMENSIONS must be greater than 0")
	}
	cfg.EmbeddingsDimensions = dimensions

	// Create the data directory if it doesn't exist (for the DB file).
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLogLevel converts a log level string to slog.Level. Unknown values
// fall back to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
