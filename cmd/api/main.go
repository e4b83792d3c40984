package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"github.com/tevfikefeaydin/StudyForge/internal/config"
	"github.com/tevfikefeaydin/StudyForge/internal/gamification"
	"github.com/tevfikefeaydin/StudyForge/internal/http"
	"github.com/tevfikefeaydin/StudyForge/internal/importer"
	"github.com/tevfikefeaydin/StudyForge/internal/llm"
	"github.com/tevfikefeaydin/StudyForge/internal/practice"
	"github.com/tevfikefeaydin/StudyForge/internal/retrieval"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
	"github.com/tevfikefeaydin/StudyForge/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	userRepo := storage.NewUserRepo(db)
	courseRepo := storage.NewCourseRepo(db)
	sectionRepo := storage.NewSectionRepo(db)
	chunkRepo := storage.NewChunkRepo(db)
	attemptRepo := storage.NewAttemptRepo(db)
	progressRepo := storage.NewProgressRepo(db)
	reviewRepo := storage.NewReviewRepo(db)

	ctx := context.Background()

	// Select the vector store backend. Qdrant when configured, otherwise the
	// SQLite-backed local store.
	var vectorStore vectorstore.VectorStore
	if cfg.QdrantURL != "" {
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		vectorStore = qdrantStore
		slog.Info("Using Qdrant vector store", "url", cfg.QdrantURL)
	} else {
		localStore, err := vectorstore.NewLocalStore(db)
		if err != nil {
			log.Fatalf("Failed to create local vector store: %v", err)
		}
		vectorStore = localStore
		slog.Info("Using local vector store")
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingsDimensions); err != nil {
		log.Fatalf("Failed to ensure vector collection: %v", err)
	}
	slog.Info("Vector collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.EmbeddingsDimensions)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingsBaseURL, cfg.EmbeddingsAPIKey, cfg.EmbeddingsModel, cfg.EmbeddingsDimensions)
	testEmbeddings, err := embedder.EmbedTexts(ctx, []string{"test"})
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testEmbeddings) == 0 || len(testEmbeddings[0]) != cfg.EmbeddingsDimensions {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.EmbeddingsDimensions, len(testEmbeddings[0]))
	}
	slog.Info("Embedding client validated", "vector_size", cfg.EmbeddingsDimensions)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	if !llmClient.IsConfigured() {
		slog.Warn("No LLM API key configured, question generation runs in stub mode")
	}

	// Wire the content import pipeline
	contentImporter := importer.NewImporter(
		courseRepo,
		sectionRepo,
		chunkRepo,
		embedder,
		vectorStore,
		cfg.QdrantCollection,
	)

	// Wire retrieval and the practice loop
	retriever := retrieval.NewRetriever(embedder, vectorStore, cfg.QdrantCollection, chunkRepo)
	engine := gamification.NewEngine(userRepo, attemptRepo, progressRepo, reviewRepo)
	generator := practice.NewGenerator(llmClient)
	grader := practice.NewGrader(llmClient)
	practiceService := practice.NewService(
		courseRepo,
		sectionRepo,
		chunkRepo,
		attemptRepo,
		retriever,
		generator,
		grader,
		engine,
	)
	slog.Info("Practice engine initialized")

	// Create router with dependencies
	deps := &http.Deps{
		Courses:        courseRepo,
		Sections:       sectionRepo,
		Progress:       progressRepo,
		Reviews:        reviewRepo,
		Attempts:       attemptRepo,
		Importer:       contentImporter,
		Practice:       practiceService,
		Scheduler:      engine,
		VectorStore:    vectorStore,
		LLMClient:      llmClient,
		CollectionName: cfg.QdrantCollection,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
