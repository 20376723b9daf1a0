// Package export renders every public route through the real engine and
// writes the responses out as fixed HTML files for static hosting.
package export

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dsolberg/folio/internal/config"
	"github.com/dsolberg/folio/internal/content"
)

// Result summarizes a build.
type Result struct {
	Pages     int
	Assets    int
	OutputDir string
}

// Exporter drives the engine through recorded requests. Handlers already
// prefix links with the configured base path, so the written pages work
// unchanged under the production hosting prefix.
type Exporter struct {
	handler http.Handler
	store   *content.Store
	cfg     *config.Config
	log     *zap.Logger
}

// New builds an Exporter around an already-configured engine.
func New(handler http.Handler, store *content.Store, cfg *config.Config, log *zap.Logger) *Exporter {
	return &Exporter{handler: handler, store: store, cfg: cfg, log: log}
}

// Build writes the whole site into the configured output directory: one
// directory-index HTML file per route, a top-level 404.html, and a copy of
// the static assets.
func (e *Exporter) Build(ctx context.Context) (*Result, error) {
	out := e.cfg.OutputDir
	if err := os.MkdirAll(out, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	pages := map[string]string{
		"/":        "index.html",
		"/blog":    "blog/index.html",
		"/privacy": "privacy/index.html",
	}
	// Request targets must be escaped; tags in particular may contain
	// spaces. The written paths keep the raw form, matching what a static
	// host resolves the percent-encoded hrefs to.
	for _, post := range e.store.All() {
		pages["/blog/"+url.PathEscape(post.Slug)] = filepath.Join("blog", post.Slug, "index.html")
	}
	for _, tag := range e.store.Tags() {
		pages["/tags/"+url.PathEscape(tag)] = filepath.Join("tags", tag, "index.html")
	}

	result := &Result{OutputDir: out}

	for route, rel := range pages {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if err := e.writePage(route, rel, http.StatusOK); err != nil {
			return nil, err
		}
		result.Pages++
	}

	// Static hosts serve this file for unknown paths.
	if err := e.writePage("/this-page-does-not-exist", "404.html", http.StatusNotFound); err != nil {
		return nil, err
	}
	result.Pages++

	assets, err := e.copyAssets(ctx)
	if err != nil {
		return nil, err
	}
	result.Assets = assets

	e.log.Info("static build complete",
		zap.Int("pages", result.Pages),
		zap.Int("assets", result.Assets),
		zap.String("output", out))
	return result, nil
}

func (e *Exporter) writePage(route, rel string, wantStatus int) error {
	req := httptest.NewRequest(http.MethodGet, route, nil)
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	if rec.Code != wantStatus {
		return fmt.Errorf("render %s: got status %d, want %d", route, rec.Code, wantStatus)
	}

	dest := filepath.Join(e.cfg.OutputDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(dest, rec.Body.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

func (e *Exporter) copyAssets(ctx context.Context) (int, error) {
	src := e.cfg.StaticDir
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return 0, nil
	}

	count := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dest := filepath.Join(e.cfg.OutputDir, "static", rel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("copy assets: %w", err)
	}
	return count, nil
}
