// Package web serves the music recommender HTTP API.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server is the HTTP server for the API.
type Server struct {
	router chi.Router
	server *http.Server
	logger *log.Logger
}

// NewServer creates the API server around the given handlers.
func NewServer(addr string, handlers *Handlers, logger *log.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{router: router, logger: logger}
	s.setupMiddleware()
	s.setupRoutes(handlers)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// All origins are allowed; the API is consumed by browser clients on
	// arbitrary hosts.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

// setupRoutes configures the API routes under the /api prefix.
func (s *Server) setupRoutes(h *Handlers) {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", h.Root)
		r.Get("/genres", h.Genres)
		r.Get("/search", h.Search)
		r.Get("/trending", h.Trending)

		r.Post("/users", h.CreateUser)
		r.Get("/users/{userID}", h.GetUser)
		r.Put("/users/{userID}/preferences", h.UpdatePreferences)

		r.Get("/recommendations/{userID}", h.Recommendations)

		r.Post("/users/{userID}/saved-tracks", h.SaveTrack)
		r.Get("/users/{userID}/saved-tracks", h.ListSavedTracks)
		r.Delete("/users/{userID}/saved-tracks/{trackID}", h.RemoveSavedTrack)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.logger.Info("shutting down server")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}
