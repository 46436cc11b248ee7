package api

import (
	"net/http"
)

// handleCacheStats serves GET /api/v1/admin/cache.
func (s *Server) handleCacheStats(w http.ResponseWriter, _ *http.Request) {
	if s.cache == nil {
		writeNotFound(w, "cache is not enabled")
		return
	}

	stats := s.cache.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"entries":    stats.Entries,
		"hits":       stats.Hits,
		"misses":     stats.Misses,
		"insertions": stats.Insertions,
		"evictions":  stats.Evictions,
	})
}

// handleCacheFlush serves POST /api/v1/admin/cache/flush.
func (s *Server) handleCacheFlush(w http.ResponseWriter, r *http.Request) {
	if s.cache == nil {
		writeNotFound(w, "cache is not enabled")
		return
	}

	entries := s.cache.Len()
	s.cache.Flush()
	s.logger.Info("cache flushed",
		"entries_dropped", entries,
		"by", r.Context().Value(ctxKeyUsername),
	)

	writeJSON(w, http.StatusOK, map[string]any{
		"flushed": entries,
	})
}

// handleDBStatus serves GET /api/v1/admin/db: backend, connectivity, pool
// stats, and row count.
func (s *Server) handleDBStatus(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeNotFound(w, "database status is unavailable")
		return
	}

	status := "ok"
	if err := s.db.HealthCheck(r.Context()); err != nil {
		status = "unavailable"
		s.logger.Warn("database health check failed", "error", err)
	}

	total, err := s.repo.Count(r.Context())
	if err != nil {
		s.logger.Warn("component count failed", "error", err)
		total = -1
	}

	stats := s.db.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           status,
		"driver":           string(s.db.Driver()),
		"source":           s.db.Source(),
		"components":       total,
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
	})
}
