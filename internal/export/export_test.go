package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dsolberg/folio/internal/config"
	"github.com/dsolberg/folio/internal/content"
	"github.com/dsolberg/folio/internal/markdown"
	"github.com/dsolberg/folio/internal/server"
)

const fixturePost = `---
title: "Exported Post"
slug: exported-post
excerpt: "For the build test."
tags: [build, machine learning]
date: 2025-03-01T00:00:00Z
---
Exported body.
`

func testSetup(t *testing.T, basePath string) (*Exporter, *config.Config) {
	t.Helper()

	contentDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(contentDir, "exported-post.md"), []byte(fixturePost), 0o644))

	cfg := &config.Config{
		BasePath:     basePath,
		ContentDir:   contentDir,
		TemplatesDir: "../../templates",
		StaticDir:    "../../static",
		OutputDir:    filepath.Join(t.TempDir(), "dist"),
	}

	log := zap.NewNop()
	store := content.NewStore(content.StoreConfig{Dir: contentDir},
		markdown.New(markdown.Options{Unsafe: true}), log)
	require.NoError(t, store.Load(context.Background()))

	srv, err := server.New(cfg, store, nil, log, server.WithStaticSite())
	require.NoError(t, err)

	return New(srv.Engine(), store, cfg, log), cfg
}

func TestBuildWritesAllPages(t *testing.T) {
	exporter, cfg := testSetup(t, "/")

	result, err := exporter.Build(context.Background())
	require.NoError(t, err)
	assert.Greater(t, result.Pages, 3)
	assert.Greater(t, result.Assets, 0)

	for _, rel := range []string{
		"index.html",
		"blog/index.html",
		"blog/exported-post/index.html",
		"tags/build/index.html",
		"tags/machine learning/index.html",
		"privacy/index.html",
		"404.html",
		filepath.Join("static", "css", "site.css"),
	} {
		_, err := os.Stat(filepath.Join(cfg.OutputDir, rel))
		assert.NoError(t, err, rel)
	}

	page, err := os.ReadFile(filepath.Join(cfg.OutputDir, "blog", "exported-post", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "Exported body.")

	// Tag pages whose names contain spaces must still render and link.
	tagPage, err := os.ReadFile(filepath.Join(cfg.OutputDir, "tags", "machine learning", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(tagPage), "Exported Post")
}

// The exported home page has no server behind it, so the contact section
// must carry the self-contained form rather than an HTMX endpoint swap.
func TestBuildStaticContactForm(t *testing.T) {
	exporter, cfg := testSetup(t, "/")

	_, err := exporter.Build(context.Background())
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	require.NoError(t, err)

	body := string(index)
	assert.Contains(t, body, "<form")
	assert.Contains(t, body, "data-email=")
	assert.NotContains(t, body, "hx-post")
	assert.NotContains(t, body, "hx-get")
	assert.NotContains(t, body, "Loading")
}

func TestBuildHonorsBasePath(t *testing.T) {
	exporter, cfg := testSetup(t, "/folio")

	_, err := exporter.Build(context.Background())
	require.NoError(t, err)

	index, err := os.ReadFile(filepath.Join(cfg.OutputDir, "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(index), `href="/folio/static/css/site.css"`)
	assert.Contains(t, string(index), `href="/folio/blog"`)
}

func TestBuildIsRepeatable(t *testing.T) {
	exporter, cfg := testSetup(t, "/")

	first, err := exporter.Build(context.Background())
	require.NoError(t, err)
	second, err := exporter.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Pages, second.Pages)

	a, err := os.ReadFile(filepath.Join(cfg.OutputDir, "blog", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(a), "Exported Post")
}
