package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
)

// Renderer holds parsed templates and renders pages against a shared layout.
// Each page template is cloned from the base layout so blocks defined in one
// page never leak into another.
type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

// NewRenderer parses the layout and every page template under dir.
// The layout file (layout.html) defines the "base" template; every other
// .html file in dir is treated as a page that fills the layout's blocks.
func NewRenderer(dir string, logger *slog.Logger) (*Renderer, error) {
	layoutPath := filepath.Join(dir, "layout.html")
	base, err := template.New("layout.html").Funcs(TemplateFuncs()).ParseFiles(layoutPath)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pagePaths, err := filepath.Glob(filepath.Join(dir, "*.html"))
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, path := range pagePaths {
		name := filepath.Base(path)
		if name == "layout.html" {
			continue
		}

		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFiles(path)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}

		key := name[:len(name)-len(filepath.Ext(name))]
		pages[key] = page
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// NewRendererFS is like NewRenderer but reads templates from an fs.FS,
// which lets tests and embedded builds supply templates without touching disk.
func NewRendererFS(fsys fs.FS, logger *slog.Logger) (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(TemplateFuncs()).ParseFS(fsys, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pagePaths, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("glob templates: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, name := range pagePaths {
		if name == "layout.html" {
			continue
		}

		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		page, err := clone.ParseFS(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}

		key := name[:len(name)-len(filepath.Ext(name))]
		pages[key] = page
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render executes the named page into w.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown template: %s", page)
	}

	// Render to a buffer first so a mid-render failure never produces a
	// half-written response body.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("execute template %s: %w", page, err)
	}

	_, err := buf.WriteTo(w)
	return err
}

// RenderHTTP renders a page as an HTML response. Render failures are logged
// and reported as a 500 since part of the response may not have been written.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, req *http.Request, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.Render(w, page, data); err != nil {
		r.logger.Error("template render failed",
			"template", page,
			"path", req.URL.Path,
			"error", err,
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
