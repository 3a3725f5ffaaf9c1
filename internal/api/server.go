package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/paperlens/internal/access"
	"github.com/dgallion1/paperlens/internal/config"
	"github.com/dgallion1/paperlens/internal/preview"
)

// Server is the HTTP API server for paperlens.
type Server struct {
	router chi.Router
	pool   *preview.Pool
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(pool *preview.Pool, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		pool: pool,
		log:  log,
		cfg:  cfg,
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
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		r.Use(RoleMiddleware)

		r.Group(func(r chi.Router) {
			r.Use(RequirePermission(access.PermViewDashboard, s.log))

			r.Post("/api/previews", s.handleCreatePreview)
			r.Get("/api/previews/{sessionID}", s.handlePreviewStatus)
			r.Get("/api/previews/{sessionID}/html", s.handlePreviewHTML)
			r.Get("/api/previews/{sessionID}/download", s.handlePreviewDownload)
			r.Delete("/api/previews/{sessionID}", s.handleDeletePreview)
			r.Get("/api/stats/conversions", s.handleConversionStats)
		})

		r.With(RequirePermission(access.PermSubmitItem, s.log)).
			Get("/api/previews/{sessionID}/draft", s.handlePreviewDraft)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
