// Package content loads blog posts from a directory of markdown files and
// serves them from an in-memory index keyed by slug.
package content

import (
	"fmt"
	"html/template"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	sluglib "github.com/goliatone/go-slug"

	"github.com/dsolberg/folio/internal/markdown"
)

// Post is a single article. Metadata comes from frontmatter; HTML is the
// rendered body. Posts are immutable once loaded.
type Post struct {
	Slug     string
	Title    string
	Excerpt  string
	Tags     []string
	Date     time.Time
	ReadTime int
	Featured bool
	Draft    bool
	FilePath string
	HTML     template.HTML
}

// HasTag reports whether the post carries the tag, case-insensitively.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

type postMeta struct {
	Title    string    `yaml:"title"`
	Slug     string    `yaml:"slug"`
	Excerpt  string    `yaml:"excerpt"`
	Tags     []string  `yaml:"tags"`
	Date     time.Time `yaml:"date"`
	Draft    bool      `yaml:"draft"`
	Featured bool      `yaml:"featured"`
	ReadTime int       `yaml:"read_time"`
}

// wordsPerMinute is the reading-speed assumption behind the read-time badge.
const wordsPerMinute = 200

// EstimateReadTime returns ceil(words/200) with a minimum of one minute.
func EstimateReadTime(body []byte) int {
	words := len(strings.Fields(string(body)))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

func parsePost(path string, source []byte, renderer *markdown.Renderer) (Post, error) {
	var meta postMeta
	body, err := frontmatter.Parse(strings.NewReader(string(source)), &meta)
	if err != nil {
		return Post{}, fmt.Errorf("parse frontmatter %s: %w", path, err)
	}

	slug := meta.Slug
	if slug == "" {
		slug = meta.Title
	}
	if slug == "" {
		slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	normalized, err := sluglib.Normalize(slug)
	if err != nil {
		return Post{}, fmt.Errorf("normalize slug %q: %w", slug, err)
	}

	title := meta.Title
	if title == "" {
		title = normalized
	}

	readTime := meta.ReadTime
	if readTime <= 0 {
		readTime = EstimateReadTime(body)
	}

	html, err := renderer.Render(body)
	if err != nil {
		return Post{}, fmt.Errorf("render %s: %w", path, err)
	}

	return Post{
		Slug:     normalized,
		Title:    title,
		Excerpt:  meta.Excerpt,
		Tags:     append([]string(nil), meta.Tags...),
		Date:     meta.Date,
		ReadTime: readTime,
		Featured: meta.Featured,
		Draft:    meta.Draft,
		FilePath: path,
		HTML:     template.HTML(html),
	}, nil
}
