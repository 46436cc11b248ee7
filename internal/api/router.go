package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// HTML search page
	r.Get("/", s.handleSearchPage)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Auth endpoints (no auth required)
		r.Post("/auth/login", s.handleLogin)

		// Search and component reads (no auth required)
		r.Get("/search", s.handleSearch)
		r.Route("/components", func(r chi.Router) {
			r.Get("/", s.handleListComponents)
			r.Get("/{id}", s.handleGetComponent)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Route("/admin", func(r chi.Router) {
				r.Get("/cache", s.handleCacheStats)
				r.Post("/cache/flush", s.handleCacheFlush)
				r.Get("/db", s.handleDBStatus)
			})
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
