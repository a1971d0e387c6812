// Package contentkit composes the content-services layer: markup rendering,
// output sanitisation, and post-render text filters, behind a single
// Pipeline entry point with dependency-injection friendly options.
package contentkit

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-contentkit/pkg/filters"
	"github.com/goliatone/go-contentkit/pkg/markup"
)

const defaultRendererName = "markdown"
const fallbackRendererName = "nl2br"

// Option customises the pipeline configuration.
type Option func(*Pipeline)

// WithRegistry injects a markup renderer registry.
func WithRegistry(registry *markup.Registry) Option {
	return func(p *Pipeline) {
		p.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(p *Pipeline) {
		p.defaultRenderer = name
	}
}

// WithFilters appends post-render filters, applied in registration order.
func WithFilters(fs ...filters.Filter) Option {
	return func(p *Pipeline) {
		p.chain.Append(fs...)
	}
}

// WithFallback controls whether a missing renderer degrades to the nl2br
// fallback instead of failing. Enabled by default.
func WithFallback(enabled bool) Option {
	return func(p *Pipeline) {
		p.fallback = enabled
		p.fallbackSet = true
	}
}

// Pipeline coordinates renderer lookup, rendering and filtering. It applies
// sensible defaults (markdown renderer, nl2br fallback) while remaining open
// to dependency injection for advanced callers.
type Pipeline struct {
	registry        *markup.Registry
	defaultRenderer string
	chain           *filters.Chain
	fallback        bool
	fallbackSet     bool
	defaultsApplied bool
}

// New constructs a Pipeline applying any provided options. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
func New(options ...Option) *Pipeline {
	p := &Pipeline{
		defaultRenderer: defaultRendererName,
		chain:           filters.NewChain(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	p.applyDefaults()
	return p
}

// Request describes a single piece of content to process.
type Request struct {
	// Source is the raw markup input.
	Source []byte

	// Renderer names the markup renderer to use. If empty, the pipeline
	// falls back to the configured default renderer.
	Renderer string

	// Options carries per-request rendering instructions.
	Options markup.RenderOptions
}

// Process executes the renderer → filter sequence and returns the processed
// bytes.
func (p *Pipeline) Process(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("contentkit: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !p.defaultsApplied {
		p.applyDefaults()
	}

	renderer, err := p.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	rendered, err := renderer.Render(ctx, req.Source, req.Options)
	if err != nil {
		return nil, fmt.Errorf("contentkit: render %s: %w", renderer.Name(), err)
	}
	if len(rendered) == 0 {
		return nil, nil
	}

	filtered, err := p.chain.Apply(ctx, string(rendered))
	if err != nil {
		return nil, fmt.Errorf("contentkit: %w", err)
	}
	return []byte(filtered), nil
}

// Renderers exposes the registered renderer names, primarily for CLI
// discovery output.
func (p *Pipeline) Renderers() []string {
	if !p.defaultsApplied {
		p.applyDefaults()
	}
	return p.registry.List()
}

func (p *Pipeline) rendererFor(name string) (markup.Renderer, error) {
	target := name
	if target == "" {
		target = p.defaultRenderer
	}

	renderer, err := p.registry.Get(target)
	if err == nil {
		return renderer, nil
	}
	if !p.fallback {
		return nil, fmt.Errorf("contentkit: renderer %q: %w", target, err)
	}

	fallback, fbErr := p.registry.Get(fallbackRendererName)
	if fbErr != nil {
		return nil, fmt.Errorf("contentkit: renderer %q: %w", target, err)
	}
	return fallback, nil
}

func (p *Pipeline) applyDefaults() {
	if p.defaultsApplied {
		return
	}

	if p.registry == nil {
		p.registry = markup.NewRegistry()
		p.registry.MustRegister(markup.NewMarkdown())
		p.registry.MustRegister(markup.NewNL2BR())
	}
	if p.defaultRenderer == "" {
		p.defaultRenderer = defaultRendererName
	}
	if !p.fallbackSet {
		p.fallback = true
	}

	p.defaultsApplied = true
}
