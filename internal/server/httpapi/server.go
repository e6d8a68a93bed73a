// Package httpapi exposes the REST surface: registration, login, session
// introspection and owner-scoped project CRUD.
package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/proplusapp/proplus/internal/logging"
	"github.com/proplusapp/proplus/internal/server/services"
)

// Server owns the router and the injected services.
type Server struct {
	address    string
	corsOrigin string
	logger     logging.Logger
	users      *services.UserService
	projects   *services.ProjectService
}

// NewServer constructs the HTTP server front end.
func NewServer(address, corsOrigin string, l logging.Logger, us *services.UserService, ps *services.ProjectService) *Server {
	return &Server{
		address:    address,
		corsOrigin: corsOrigin,
		logger:     l.With("module", "http_server"),
		users:      us,
		projects:   ps,
	}
}

// Router assembles the chi router with middleware and all routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	var origins []string
	for _, p := range strings.Split(s.corsOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(s.requestLogger)

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.With(s.authenticate).Get("/me", s.handleMe)
	})

	r.Route("/projects", func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/", s.handleCreateProject)
		r.Get("/", s.handleListProjects)
		r.Get("/{pid}", s.handleGetProject)
		r.Put("/{pid}", s.handleUpdateProject)
		r.Delete("/{pid}", s.handleDeleteProject)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. In-flight
// store operations are allowed to finish within the shutdown grace period.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "app": "ProPlus"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
