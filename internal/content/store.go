package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sluglib "github.com/goliatone/go-slug"
	"go.uber.org/zap"

	"github.com/dsolberg/folio/internal/markdown"
)

// ErrNotFound is returned when no post exists for a slug, after both the
// index lookup and the direct file read have been attempted.
var ErrNotFound = errors.New("post not found")

// StoreConfig configures a Store.
type StoreConfig struct {
	// Dir is the directory containing one markdown file per post.
	Dir string
	// IncludeDrafts exposes draft posts in listings and lookups (dev only).
	IncludeDrafts bool
}

// Store indexes the posts under a content directory. Load may be called again
// at any time (the file watcher does) and swaps the index atomically.
type Store struct {
	dir           string
	includeDrafts bool
	renderer      *markdown.Renderer
	log           *zap.Logger

	mu     sync.RWMutex
	posts  []Post
	bySlug map[string]Post
}

// NewStore builds an empty store; call Load before serving.
func NewStore(cfg StoreConfig, renderer *markdown.Renderer, log *zap.Logger) *Store {
	return &Store{
		dir:           cfg.Dir,
		includeDrafts: cfg.IncludeDrafts,
		renderer:      renderer,
		log:           log,
		bySlug:        map[string]Post{},
	}
}

// Load scans the content directory and rebuilds the index. A file that fails
// to parse is skipped with a warning rather than failing the whole load, so
// one bad article cannot take the site down on reload.
func (s *Store) Load(ctx context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("read content dir %s: %w", s.dir, err)
	}

	var posts []Post
	bySlug := map[string]Post{}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			s.log.Warn("skipping unreadable post", zap.String("path", path), zap.Error(err))
			continue
		}

		post, err := parsePost(path, data, s.renderer)
		if err != nil {
			s.log.Warn("skipping unparsable post", zap.String("path", path), zap.Error(err))
			continue
		}
		if post.Draft && !s.includeDrafts {
			continue
		}

		if existing, ok := bySlug[post.Slug]; ok {
			// Duplicate slugs keep the newest post.
			if !post.Date.After(existing.Date) {
				s.log.Warn("duplicate slug, keeping newer post",
					zap.String("slug", post.Slug),
					zap.String("kept", existing.FilePath),
					zap.String("dropped", post.FilePath))
				continue
			}
			s.log.Warn("duplicate slug, keeping newer post",
				zap.String("slug", post.Slug),
				zap.String("kept", post.FilePath),
				zap.String("dropped", existing.FilePath))
			for i := range posts {
				if posts[i].Slug == post.Slug {
					posts = append(posts[:i], posts[i+1:]...)
					break
				}
			}
		}

		bySlug[post.Slug] = post
		posts = append(posts, post)
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].Slug < posts[j].Slug
	})

	s.mu.Lock()
	s.posts = posts
	s.bySlug = bySlug
	s.mu.Unlock()

	s.log.Info("content loaded", zap.Int("posts", len(posts)), zap.String("dir", s.dir))
	return nil
}

// All returns every indexed post, newest first.
func (s *Store) All() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Post(nil), s.posts...)
}

// Featured returns the posts flagged for the home page strip, newest first.
func (s *Store) Featured() []Post {
	var out []Post
	for _, p := range s.All() {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// ByTag returns the posts carrying the tag, case-insensitively. An unknown
// tag yields an empty slice, not an error.
func (s *Store) ByTag(tag string) []Post {
	var out []Post
	for _, p := range s.All() {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Tags returns the distinct tags across all posts, sorted. Display case is
// taken from the first occurrence.
func (s *Store) Tags() []string {
	seen := map[string]string{}
	for _, p := range s.All() {
		for _, t := range p.Tags {
			key := strings.ToLower(t)
			if _, ok := seen[key]; !ok {
				seen[key] = t
			}
		}
	}
	out := make([]string, 0, len(seen))
	for _, t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// BySlug looks the slug up in the index and, on a miss, falls back to reading
// <slug>.md from the content directory directly. The fallback covers posts
// dropped into the directory after the last load. Anything else is
// ErrNotFound.
func (s *Store) BySlug(slug string) (Post, error) {
	s.mu.RLock()
	post, ok := s.bySlug[slug]
	s.mu.RUnlock()
	if ok {
		return post, nil
	}

	// Reject anything that could escape the content directory before
	// touching the filesystem.
	if !sluglib.IsValid(slug) {
		return Post{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}

	path := filepath.Join(s.dir, slug+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return Post{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}

	post, err = parsePost(path, data, s.renderer)
	if err != nil {
		s.log.Warn("fallback read failed to parse", zap.String("path", path), zap.Error(err))
		return Post{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	if post.Draft && !s.includeDrafts {
		return Post{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}

	return post, nil
}
