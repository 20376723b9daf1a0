// Package markdown renders article bodies to HTML. The renderer is stateless
// so a single instance can be shared across requests without locking.
package markdown

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/mermaid"
)

// Options controls the renderer. The zero value disables raw HTML
// passthrough; article content from the repo itself is trusted and sets
// Unsafe.
type Options struct {
	// Unsafe passes raw HTML blocks through to the output.
	Unsafe bool
	// HighlightStyle is a chroma style name; defaults to "github-dark".
	HighlightStyle string
}

// Renderer converts markdown to HTML with GFM tables, task lists,
// strikethrough, auto heading IDs, chroma-highlighted code fences, and
// mermaid diagram blocks rendered client-side.
type Renderer struct {
	engine goldmark.Markdown
}

// New builds a Renderer from opts.
func New(opts Options) *Renderer {
	style := opts.HighlightStyle
	if style == "" {
		style = "github-dark"
	}

	var rendererOptions []renderer.Option
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	engine := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
			&mermaid.Extender{},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)

	return &Renderer{engine: engine}
}

// Render converts a markdown body (frontmatter already stripped) to HTML.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}
