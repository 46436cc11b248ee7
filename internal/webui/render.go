package webui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer holds the parsed HTML templates for the search pages.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates with the filter FuncMap.
func NewRenderer() (*Renderer, error) {
	t, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render writes a named template to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering template %s: %w", name, err)
	}
	return nil
}

// SearchPage is the data passed to the search template.
type SearchPage struct {
	Query     string
	Results   []SearchResult
	Total     int
	Elapsed   string
	FromCache bool
	Error     string
}

// SearchResult is one row on the results page.
type SearchResult struct {
	ID             string
	ComponentID    string
	CMUID          string
	Location       string
	County         string
	Description    string
	Technology     string
	CompanyName    string
	DeliveryYear   string
	CapacityMW     string
	AdditionalData map[string]any
}
