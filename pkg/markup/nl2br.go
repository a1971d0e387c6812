package markup

import (
	"bytes"
	"context"
	"html"
	"strings"
)

// NL2BR is the fallback renderer used when no richer markup backend applies:
// it HTML-escapes the source and converts newlines to <br /> tags, the same
// degradation path legacy content engines use when a Markdown library is
// unavailable.
type NL2BR struct{}

// NewNL2BR constructs the fallback renderer.
func NewNL2BR() *NL2BR { return &NL2BR{} }

// Name identifies the renderer inside a Registry.
func (n *NL2BR) Name() string { return "nl2br" }

// ContentType reports the MIME type of rendered output.
func (n *NL2BR) ContentType() string { return "text/html; charset=utf-8" }

// Render escapes the input and replaces newlines with break tags. Empty
// input yields empty output.
func (n *NL2BR) Render(ctx context.Context, src []byte, _ RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, nil
	}

	escaped := html.EscapeString(string(src))
	normalized := strings.ReplaceAll(escaped, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return []byte(strings.ReplaceAll(normalized, "\n", "<br />\n")), nil
}
