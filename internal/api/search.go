package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/capacitymarket/capacity-checker/internal/component"
	"github.com/capacitymarket/capacity-checker/internal/infrastructure/cache"
	"github.com/capacitymarket/capacity-checker/internal/search"
)

// searchResponse is the JSON payload for a search, and the value cached
// between identical queries.
type searchResponse struct {
	Query   string                `json:"query"`
	Total   int                   `json:"total"`
	Count   int                   `json:"count"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
	Results []component.Component `json:"results"`
	Cached  bool                  `json:"cached"`
}

// handleSearch serves GET /api/v1/search?q=...
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := pageFromQuery(r)

	resp, err := s.performSearch(r.Context(), query, page)
	if err != nil {
		s.logger.Error("search failed", "query", query, "error", err)
		writeInternalError(w, "search failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// performSearch runs a location search through the cache: identical queries
// within the cache TTL are served from memory without touching the database.
func (s *Server) performSearch(ctx context.Context, query string, page component.Page) (*searchResponse, error) {
	page = page.Normalize()
	key := searchCacheKey(query, page)

	if s.cache != nil {
		if raw, ok := s.cache.Get(key); ok {
			var resp searchResponse
			if err := json.Unmarshal(raw, &resp); err == nil {
				resp.Cached = true
				return &resp, nil
			}
			// Unreadable entry: drop it and fall through to the database.
			s.cache.Delete(key)
		}
	}

	filter := search.ExpandLocationFilter(query, s.postcodes, s.logger)

	results, err := s.repo.Search(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("searching components: %w", err)
	}
	total, err := s.repo.CountMatching(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("counting search results: %w", err)
	}
	if results == nil {
		results = []component.Component{}
	}

	resp := &searchResponse{
		Query:   query,
		Total:   total,
		Count:   len(results),
		Limit:   page.Limit,
		Offset:  page.Offset,
		Results: results,
	}

	if s.cache != nil {
		if raw, err := json.Marshal(resp); err == nil {
			s.cache.Set(key, raw)
		}
	}

	return resp, nil
}

// searchCacheKey derives the cache key for a query and page. The query is
// trimmed and lowercased so case variants share an entry.
func searchCacheKey(query string, page component.Page) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	return cache.Key("search", fmt.Sprintf("%s|%d|%d", normalized, page.Limit, page.Offset))
}

// pageFromQuery reads limit and offset query parameters.
func pageFromQuery(r *http.Request) component.Page {
	var page component.Page
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		page.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		page.Offset = v
	}
	return page
}

// elapsedSince formats a duration for display on the search page.
func elapsedSince(start time.Time) string {
	return time.Since(start).Round(time.Millisecond).String()
}
