package markup

import "context"

// Renderer converts raw markup source into HTML bytes.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, src []byte, opts RenderOptions) ([]byte, error)
}

// RenderOptions carry per-call instructions renderers can honour without
// mutating their configuration.
type RenderOptions struct {
	// SkipSanitize bypasses the output sanitisation policy. Only set this
	// for trusted, editor-authored content.
	SkipSanitize bool

	// HardLineBreaks treats every newline in the source as a line break
	// instead of requiring trailing spaces.
	HardLineBreaks bool

	// BaseURL prefixes relative links and image sources in the output.
	BaseURL string
}
