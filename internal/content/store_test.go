package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dsolberg/folio/internal/markdown"
)

func writePost(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func newTestStore(t *testing.T, dir string, includeDrafts bool) *Store {
	t.Helper()
	return NewStore(StoreConfig{Dir: dir, IncludeDrafts: includeDrafts},
		markdown.New(markdown.Options{Unsafe: true}), zap.NewNop())
}

const alphaPost = `---
title: "Alpha"
slug: alpha
excerpt: "First."
tags: [mlops, Go]
date: 2025-06-01T00:00:00Z
---
Alpha body.
`

const betaPost = `---
title: "Beta"
slug: beta
excerpt: "Second."
tags: [llm]
date: 2025-07-01T00:00:00Z
featured: true
---
Beta body.
`

const draftPost = `---
title: "Hidden"
slug: hidden
date: 2025-08-01T00:00:00Z
draft: true
---
Not yet.
`

func TestLoadAndOrdering(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "alpha.md", alphaPost)
	writePost(t, dir, "beta.md", betaPost)
	writePost(t, dir, "hidden.md", draftPost)

	store := newTestStore(t, dir, false)
	require.NoError(t, store.Load(context.Background()))

	posts := store.All()
	require.Len(t, posts, 2)
	// Newest first.
	assert.Equal(t, "beta", posts[0].Slug)
	assert.Equal(t, "alpha", posts[1].Slug)
}

func TestDraftsIncludedInDevMode(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "hidden.md", draftPost)

	store := newTestStore(t, dir, true)
	require.NoError(t, store.Load(context.Background()))
	assert.Len(t, store.All(), 1)
}

func TestByTagIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "alpha.md", alphaPost)
	writePost(t, dir, "beta.md", betaPost)

	store := newTestStore(t, dir, false)
	require.NoError(t, store.Load(context.Background()))

	got := store.ByTag("MLOPS")
	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0].Slug)

	for _, p := range store.ByTag("go") {
		assert.True(t, p.HasTag("go"))
	}

	assert.Empty(t, store.ByTag("nonexistent"))
}

func TestTagsAreDistinctAndSorted(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "alpha.md", alphaPost)
	writePost(t, dir, "beta.md", betaPost)

	store := newTestStore(t, dir, false)
	require.NoError(t, store.Load(context.Background()))

	assert.Equal(t, []string{"Go", "llm", "mlops"}, store.Tags())
}

func TestBySlugFallsBackToFileRead(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "alpha.md", alphaPost)

	store := newTestStore(t, dir, false)
	require.NoError(t, store.Load(context.Background()))

	// Dropped in after the load: not indexed, but reachable via the
	// direct file read.
	writePost(t, dir, "beta.md", betaPost)

	post, err := store.BySlug("beta")
	require.NoError(t, err)
	assert.Equal(t, "Beta", post.Title)
}

func TestBySlugUnknownIsNotFound(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "alpha.md", alphaPost)

	store := newTestStore(t, dir, false)
	require.NoError(t, store.Load(context.Background()))

	_, err := store.BySlug("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	// Path traversal attempts never reach the filesystem.
	_, err = store.BySlug("../alpha")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateSlugKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "old.md", `---
title: "Old take"
slug: same
date: 2024-01-01T00:00:00Z
---
Old.
`)
	writePost(t, dir, "new.md", `---
title: "New take"
slug: same
date: 2025-01-01T00:00:00Z
---
New.
`)

	store := newTestStore(t, dir, false)
	require.NoError(t, store.Load(context.Background()))

	posts := store.All()
	require.Len(t, posts, 1)
	assert.Equal(t, "New take", posts[0].Title)
}

func TestEstimateReadTime(t *testing.T) {
	assert.Equal(t, 1, EstimateReadTime([]byte("a few words")))
	assert.Equal(t, 1, EstimateReadTime(nil))

	long := make([]byte, 0, 5*401)
	for i := 0; i < 401; i++ {
		long = append(long, []byte("word ")...)
	}
	assert.Equal(t, 3, EstimateReadTime(long))
}

func TestSlugDerivedFromTitleAndFilename(t *testing.T) {
	dir := t.TempDir()
	writePost(t, dir, "fancy title.md", `---
title: "A Fancy Title!"
date: 2025-01-01T00:00:00Z
---
Body.
`)
	writePost(t, dir, "bare-file.md", `---
date: 2025-02-01T00:00:00Z
---
Body.
`)

	store := newTestStore(t, dir, false)
	require.NoError(t, store.Load(context.Background()))

	_, err := store.BySlug("a-fancy-title")
	assert.NoError(t, err)
	_, err = store.BySlug("bare-file")
	assert.NoError(t, err)
}
