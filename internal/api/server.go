package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/casebase/internal/generator"
	"github.com/MikeSquared-Agency/casebase/internal/hermes"
	"github.com/MikeSquared-Agency/casebase/internal/knowledge"
	"github.com/MikeSquared-Agency/casebase/internal/library"
)

// Publisher announces generated cases. *hermes.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type Options struct {
	Port          int
	APIToken      string
	Library       *library.CaseLibrary
	KnowledgePath string
	// Generator is nil when no model credentials are configured.
	Generator *generator.Generator
	Publisher Publisher
	Logger    *slog.Logger
}

// Server owns the library and the loaded knowledge base. Handlers read under
// the read lock; reloads take the write lock.
type Server struct {
	router        *chi.Mux
	port          int
	logger        *slog.Logger
	knowledgePath string
	generator     *generator.Generator
	publisher     Publisher
	picker        knowledge.Picker

	mu      sync.RWMutex
	library *library.CaseLibrary
	kb      *knowledge.KnowledgeBase
}

func NewServer(opts Options) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:        router,
		port:          opts.Port,
		logger:        opts.Logger,
		knowledgePath: opts.KnowledgePath,
		generator:     opts.Generator,
		publisher:     opts.Publisher,
		picker:        globalRand{},
		library:       opts.Library,
	}
	s.ReloadKnowledge()

	router.Get("/health", s.health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(BearerAuthMiddleware(opts.APIToken, opts.Logger))

		r.Route("/library", func(r chi.Router) {
			r.Get("/stats", s.libraryStats)
			r.Get("/cases", s.listCases)
			r.Get("/cases/search", s.searchCases)
			r.Get("/cases/random", s.randomCase)
			r.Get("/cases/{caseID}", s.getCase)
			r.Get("/types", s.caseTypes)
			r.Get("/difficulties", s.difficulties)
			r.Get("/industries", s.industries)
		})

		r.Route("/knowledge", func(r chi.Router) {
			r.Get("/stats", s.knowledgeStats)
			r.Get("/patterns", s.knowledgePatterns)
		})

		r.Post("/generate", s.generate)
	})

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server starting", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// ReloadLibrary re-reads the library index under the write lock.
func (s *Server) ReloadLibrary() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.library.Reload()
	s.logger.Info("case library reloaded", "available", s.library.IsAvailable())
	return ok
}

// ReloadKnowledge re-reads the knowledge base file. A missing file leaves
// the knowledge endpoints unavailable.
func (s *Server) ReloadKnowledge() bool {
	kb, err := knowledge.Load(s.knowledgePath)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.kb = nil
		if errors.Is(err, knowledge.ErrNotBuilt) {
			s.logger.Warn("knowledge base not built", "path", s.knowledgePath)
		} else {
			s.logger.Error("failed to load knowledge base", "path", s.knowledgePath, "error", err)
		}
		return false
	}
	s.kb = kb
	s.logger.Info("knowledge base loaded", "build_id", kb.BuildID, "total_cases_analyzed", kb.TotalCasesAnalyzed)
	return true
}

// HandleLibraryUpdated is the NATS handler for casebase.library.updated.
func (s *Server) HandleLibraryUpdated(subject string, data []byte) {
	evt, err := hermes.ParseLibraryUpdated(data)
	if err != nil {
		s.logger.Warn("ignoring malformed library event", "subject", subject, "error", err)
		return
	}
	s.logger.Info("library update received", "total_cases", evt.TotalCases, "last_updated", evt.LastUpdated)
	s.ReloadLibrary()
}

// HandleKnowledgeRebuilt is the NATS handler for casebase.knowledge.rebuilt.
func (s *Server) HandleKnowledgeRebuilt(subject string, data []byte) {
	var evt hermes.KnowledgeRebuilt
	if err := json.Unmarshal(data, &evt); err != nil {
		s.logger.Warn("ignoring malformed knowledge event", "subject", subject, "error", err)
		return
	}
	s.logger.Info("knowledge rebuild received", "build_id", evt.BuildID)
	s.ReloadKnowledge()
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	libraryOK := s.library.IsAvailable()
	knowledgeOK := s.kb != nil
	s.mu.RUnlock()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"library":    libraryOK,
		"knowledge":  knowledgeOK,
		"generation": s.generator != nil,
	})
}
