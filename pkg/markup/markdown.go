package markup

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"
)

// MarkdownOption customises the Markdown renderer.
type MarkdownOption func(*Markdown)

// WithSanitizer replaces the sanitisation policy applied to rendered output.
// Pass nil to disable sanitisation entirely.
func WithSanitizer(s Sanitizer) MarkdownOption {
	return func(m *Markdown) {
		m.sanitizer = s
		m.sanitizerSet = true
	}
}

// Markdown renders CommonMark plus the common extension set (tables, fenced
// code, strikethrough, autolinks) through the gomarkdown library. Rendered
// output passes through the UGC sanitisation policy unless a call opts out.
type Markdown struct {
	sanitizer    Sanitizer
	sanitizerSet bool
}

// NewMarkdown constructs the renderer with the default UGC sanitiser.
func NewMarkdown(options ...MarkdownOption) *Markdown {
	m := &Markdown{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	if !m.sanitizerSet {
		m.sanitizer = UGCSanitizer()
	}
	return m
}

// Name identifies the renderer inside a Registry.
func (m *Markdown) Name() string { return "markdown" }

// ContentType reports the MIME type of rendered output.
func (m *Markdown) ContentType() string { return "text/html; charset=utf-8" }

// Render converts Markdown source to HTML. Empty input yields empty output
// without invoking the backend.
func (m *Markdown) Render(ctx context.Context, src []byte, opts RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}

	extensions := mdparser.CommonExtensions | mdparser.AutoHeadingIDs
	if opts.HardLineBreaks {
		extensions |= mdparser.HardLineBreak
	}
	// gomarkdown parsers hold state across Parse calls, so build one per
	// render instead of sharing.
	p := mdparser.NewWithExtensions(extensions)

	doc := p.Parse(src)
	if doc == nil {
		return nil, fmt.Errorf("markup: markdown parse produced no document")
	}

	rendererOpts := mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags,
	}
	if opts.BaseURL != "" {
		rendererOpts.AbsolutePrefix = opts.BaseURL
	}

	out := markdown.Render(doc, mdhtml.NewRenderer(rendererOpts))
	if m.sanitizer != nil && !opts.SkipSanitize {
		out = m.sanitizer.SanitizeBytes(out)
	}
	return out, nil
}
