package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tevfikefeaydin/StudyForge/internal/handlers"
	"github.com/tevfikefeaydin/StudyForge/internal/llm"
	"github.com/tevfikefeaydin/StudyForge/internal/storage"
	"github.com/tevfikefeaydin/StudyForge/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Courses  storage.CourseStore
	Sections storage.SectionStore
	Progress storage.ProgressStore
	Reviews  storage.ReviewStore
	Attempts storage.AttemptStore

	Importer  handlers.ContentImporter
	Practice  handlers.PracticeService
	Scheduler handlers.ReviewScheduler

	VectorStore    vectorstore.VectorStore
	LLMClient      *llm.Client
	CollectionName string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	coursesHandler := handlers.NewCoursesHandler(deps.Courses)
	sectionsHandler := handlers.NewSectionsHandler(deps.Courses, deps.Sections, deps.Progress)
	importTextHandler := handlers.NewImportTextHandler(deps.Importer)
	importCodeHandler := handlers.NewImportCodeHandler(deps.Importer)
	generateHandler := handlers.NewGenerateHandler(deps.Practice)
	gradeHandler := handlers.NewGradeHandler(deps.Practice)
	reviewNextHandler := handlers.NewReviewNextHandler(deps.Reviews, deps.Attempts)
	reviewRateHandler := handlers.NewReviewRateHandler(deps.Reviews, deps.Scheduler)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.LLMClient, deps.CollectionName)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/courses", coursesHandler)
		r.Method(http.MethodGet, "/courses", coursesHandler)
		r.Method(http.MethodGet, "/courses/{id}/sections", sectionsHandler)
		r.Method(http.MethodPost, "/import/text", importTextHandler)
		r.Method(http.MethodPost, "/import/code", importCodeHandler)
		r.Method(http.MethodPost, "/practice/generate", generateHandler)
		r.Method(http.MethodPost, "/practice/grade", gradeHandler)
		r.Method(http.MethodGet, "/review/next", reviewNextHandler)
		r.Method(http.MethodPost, "/review/rate", reviewRateHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
