// Package markup adapts external markup backends behind a small Renderer
// interface plus a registry. The markdown renderer wraps gomarkdown; nl2br
// is the escape-and-break fallback used when richer rendering is not wanted
// or a named renderer is missing. Output passes through a bluemonday
// sanitisation policy unless a call opts out.
package markup
