package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dgallion1/docredact/internal/classify"
	"github.com/dgallion1/docredact/internal/config"
	"github.com/dgallion1/docredact/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for docredact.
type Server struct {
	router       chi.Router
	orchestrator *pipeline.Orchestrator
	classifier   *classify.Client
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. classifier may be nil
// when the service runs pattern-only classification.
func NewServer(orch *pipeline.Orchestrator, classifier *classify.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		orchestrator: orch,
		classifier:   classifier,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.RedactAPIKey, s.log))

		r.Post("/api/redact", s.handleRedact)

		r.Post("/api/jobs", s.handleSubmitJob)
		r.Post("/api/jobs/batch", s.handleBatchSubmit)
		r.Get("/api/jobs/{jobID}/status", s.handleJobStatus)
		r.Get("/api/jobs/{jobID}/result", s.handleJobResult)
		r.Get("/api/jobs/{jobID}/image", s.handleJobImage)
		r.Get("/api/jobs/{jobID}/report", s.handleJobReport)

		r.Get("/api/stats/llm", s.handleLLMStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
