package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"brian/internal/api"
	"brian/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates holds the parsed page templates. Each page is parsed
// together with the layout so pages can define their own "content"
// block.
type Templates struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"typeIcon":        render.TypeIcon,
	"typeLabel":       render.TypeLabel,
	"typeColor":       render.TypeColor,
	"cardPreview":     render.CardPreview,
	"timelinePreview": render.TimelinePreview,
	"formatDate":      render.FormatDate,
	"relTime": func(t time.Time) string {
		return render.FormatRelativeTime(t, time.Now())
	},
}

// NewTemplates parses all page templates from the embedded filesystem.
func NewTemplates() (*Templates, error) {
	pageFiles := map[string][]string{
		"feed":     {"templates/layout.html", "templates/feed.html", "templates/items_grid.html"},
		"timeline": {"templates/layout.html", "templates/timeline.html"},
		"graph":    {"templates/layout.html", "templates/graph.html"},
		"form":     {"templates/layout.html", "templates/form.html"},
	}
	t := &Templates{pages: make(map[string]*template.Template, len(pageFiles))}
	for name, files := range pageFiles {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", name, err)
		}
		t.pages[name] = tmpl
	}

	grid, err := template.New("grid").Funcs(templateFuncs).ParseFS(templateFS, "templates/items_grid.html")
	if err != nil {
		return nil, fmt.Errorf("parse items grid template: %w", err)
	}
	t.pages["items_grid"] = grid
	return t, nil
}

// Page renders a full page through the layout.
func (t *Templates) Page(w io.Writer, name string, data interface{}) error {
	tmpl, ok := t.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

// ItemsGrid renders the card-grid fragment used by the search and
// filter partial.
func (t *Templates) ItemsGrid(w io.Writer, data interface{}) error {
	return t.pages["items_grid"].ExecuteTemplate(w, "items_grid", data)
}

// PageData is the part of the view model every page shares.
type PageData struct {
	Title  string
	Active string
	Stats  api.Stats
	Err    string
}
