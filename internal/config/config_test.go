package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// setEnv sets an environment variable, ignoring errors (for test setup)
func setEnv(key, value string) {
	_ = os.Setenv(key, value)
}

// unsetEnv unsets an environment variable, ignoring errors (for test cleanup)
func unsetEnv(key string) {
	_ = os.Unsetenv(key)
}

var envVars = []string{
	"LLM_BASE_URL", "LLM_MODEL", "LLM_API_KEY",
	"EMBEDDINGS_BASE_URL", "EMBEDDINGS_MODEL", "EMBEDDINGS_API_KEY", "EMBEDDINGS_DIMENSIONS",
	"DB_PATH", "QDRANT_URL", "QDRANT_COLLECTION", "API_PORT",
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name:     "defaults with no environment",
			setupEnv: func(t *testing.T) {},
			wantErr:  false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMBaseURL == "https://api.openai.com/v1" &&
					cfg.LLMModel == "gpt-4o-mini" &&
					cfg.LLMAPIKey == "" &&
					cfg.EmbeddingsModel == "text-embedding-3-small" &&
					cfg.EmbeddingsDimensions == 1536 &&
					cfg.QdrantURL == "" &&
					cfg.QdrantCollection == "chunks" &&
					cfg.APIPort == "9000"
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_BASE_URL", "http://custom:9090/v1")
				setEnv("LLM_MODEL", "custom-model")
				setEnv("QDRANT_URL", "http://qdrant:6333")
				setEnv("EMBEDDINGS_DIMENSIONS", "768")
				customDBPath := filepath.Join(t.TempDir(), "custom", "db.db")
				setEnv("DB_PATH", customDBPath)
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.LLMBaseURL == "http://custom:9090/v1" &&
					cfg.LLMModel == "custom-model" &&
					cfg.QdrantURL == "http://qdrant:6333" &&
					cfg.EmbeddingsDimensions == 768 &&
					filepath.Base(cfg.DBPath) == "db.db"
			},
		},
		{
			name: "embedder key falls back to LLM key",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "sk-shared")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.EmbeddingsAPIKey == "sk-shared"
			},
		},
		{
			name: "explicit embedder key wins",
			setupEnv: func(t *testing.T) {
				setEnv("LLM_API_KEY", "sk-shared")
				setEnv("EMBEDDINGS_API_KEY", "sk-embed")
			},
			wantErr: false,
			checkConfig: func(cfg *Config) bool {
				return cfg.EmbeddingsAPIKey == "sk-embed"
			},
		},
		{
			name: "invalid EMBEDDINGS_DIMENSIONS",
			setupEnv: func(t *testing.T) {
				setEnv("EMBEDDINGS_DIMENSIONS", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero EMBEDDINGS_DIMENSIONS",
			setupEnv: func(t *testing.T) {
				setEnv("EMBEDDINGS_DIMENSIONS", "0")
			},
			wantErr: true,
		},
		{
			name: "negative EMBEDDINGS_DIMENSIONS",
			setupEnv: func(t *testing.T) {
				setEnv("EMBEDDINGS_DIMENSIONS", "-1")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Change to a temp directory without a .env file to avoid loading one
			tmpDir := t.TempDir()
			originalWd, _ := os.Getwd()
			_ = os.Chdir(tmpDir)
			defer func() {
				_ = os.Chdir(originalWd)
			}()

			for _, key := range envVars {
				unsetEnv(key)
			}
			defer func() {
				for _, key := range envVars {
					unsetEnv(key)
				}
			}()

			tt.setupEnv(t)

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Load() unexpected error: %v", err)
				return
			}

			if cfg == nil {
				t.Fatal("Load() returned nil config")
			}

			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	originalEnv := make(map[string]string)
	for _, key := range envVars {
		originalEnv[key] = os.Getenv(key)
		unsetEnv(key)
	}
	defer func() {
		for key, value := range originalEnv {
			if value != "" {
				setEnv(key, value)
			} else {
				unsetEnv(key)
			}
		}
	}()

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "db.db")
	setEnv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	dir := filepath.Dir(dbPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Load() should create data directory: %v", err)
	}

	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestGetEnv(t *testing.T) {
	originalValue := os.Getenv("TEST_ENV_VAR")
	defer func() {
		if originalValue != "" {
			setEnv("TEST_ENV_VAR", originalValue)
		} else {
			unsetEnv("TEST_ENV_VAR")
		}
	}()

	tests := []struct {
		name         string
		setupEnv     func()
		key          string
		defaultValue string
		want         string
	}{
		{
			name: "env var set",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "set-value")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "set-value",
		},
		{
			name: "env var not set",
			setupEnv: func() {
				unsetEnv("TEST_ENV_VAR")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
		{
			name: "empty env var uses default",
			setupEnv: func() {
				setEnv("TEST_ENV_VAR", "")
			},
			key:          "TEST_ENV_VAR",
			defaultValue: "default",
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupEnv()
			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv(%q, %q) = %q, want %q", tt.key, tt.defaultValue, got, tt.want)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			if got := parseLogLevel(tt.input); got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
