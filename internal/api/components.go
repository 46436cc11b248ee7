package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/capacitymarket/capacity-checker/internal/component"
)

// handleListComponents serves GET /api/v1/components with pagination.
func (s *Server) handleListComponents(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r).Normalize()

	components, err := s.repo.List(r.Context(), page)
	if err != nil {
		s.logger.Error("listing components failed", "error", err)
		writeInternalError(w, "listing components failed")
		return
	}
	total, err := s.repo.Count(r.Context())
	if err != nil {
		s.logger.Error("counting components failed", "error", err)
		writeInternalError(w, "listing components failed")
		return
	}
	if components == nil {
		components = []component.Component{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":      total,
		"count":      len(components),
		"limit":      page.Limit,
		"offset":     page.Offset,
		"components": components,
	})
}

// handleGetComponent serves GET /api/v1/components/{id}. The path value is
// tried as the internal ID first, then as the registry component ID.
func (s *Server) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeBadRequest(w, "component id is required")
		return
	}

	c, err := s.repo.Get(r.Context(), id)
	if errors.Is(err, component.ErrNotFound) {
		c, err = s.repo.GetByComponentID(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, component.ErrNotFound) {
			writeNotFound(w, "component not found")
			return
		}
		s.logger.Error("fetching component failed", "id", id, "error", err)
		writeInternalError(w, "fetching component failed")
		return
	}

	writeJSON(w, http.StatusOK, c)
}
