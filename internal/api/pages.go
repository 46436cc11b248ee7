package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/capacitymarket/capacity-checker/internal/component"
	"github.com/capacitymarket/capacity-checker/internal/webui"
)

// handleSearchPage serves the HTML search page at GET /?q=...
func (s *Server) handleSearchPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	start := time.Now()

	page := webui.SearchPage{Query: query}
	if query != "" {
		resp, err := s.performSearch(r.Context(), query, component.Page{})
		if err != nil {
			s.logger.Error("search page query failed", "query", query, "error", err)
			page.Error = "Search failed. Please try again."
		} else {
			page.Total = resp.Total
			page.FromCache = resp.Cached
			page.Results = toSearchResults(resp.Results)
		}
	}
	page.Elapsed = elapsedSince(start)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Render(w, "search.html", page); err != nil {
		s.logger.Error("rendering search page failed", "error", err)
	}
}

// toSearchResults converts components into display rows.
func toSearchResults(components []component.Component) []webui.SearchResult {
	results := make([]webui.SearchResult, 0, len(components))
	for _, c := range components {
		r := webui.SearchResult{
			ID:             c.ID,
			ComponentID:    c.ComponentID,
			CMUID:          c.CMUID,
			Location:       c.Location,
			County:         c.County,
			Description:    c.Description,
			Technology:     c.Technology,
			CompanyName:    c.CompanyName,
			DeliveryYear:   c.DeliveryYear,
			AdditionalData: c.AdditionalData,
		}
		if c.DeratedCapacityMW != nil {
			r.CapacityMW = fmt.Sprintf("%.2f", *c.DeratedCapacityMW)
		}
		results = append(results, r)
	}
	return results
}
