package filters

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
)

// Mention tokens: one or two @ signs followed by a name starting with an
// alphanumeric. Names may contain dots, dashes and underscores but never end
// on punctuation (trailing dots belong to the sentence). The token must sit
// at the start of the text or after a non-word character so addresses like
// foo@bar.com are left alone.
var mentionPattern = regexp.MustCompile(`(^|[^[:alnum:]_@])(@{1,2})([[:alnum:]_](?:[[:alnum:]_.-]*[[:alnum:]_])?)`)

// ResolvedMention is what a Resolver returns for a known name.
type ResolvedMention struct {
	// URL is the profile link target.
	URL string
	// Label overrides the displayed name when non-empty.
	Label string
}

// Resolver looks up a mentioned name. Returning ok == false leaves the
// token untouched, which is how unknown users stay plain text.
type Resolver func(ctx context.Context, name string) (ResolvedMention, bool, error)

// MentionOption customises the mention filter.
type MentionOption func(*MentionFilter)

// WithURLTemplate sets the static profile URL template. The {name}
// placeholder is replaced with the path-escaped mention name. Ignored when a
// Resolver is configured.
func WithURLTemplate(template string) MentionOption {
	return func(f *MentionFilter) {
		f.urlTemplate = template
	}
}

// WithResolver installs a lookup callback consulted for every token.
func WithResolver(resolver Resolver) MentionOption {
	return func(f *MentionFilter) {
		f.resolver = resolver
	}
}

// WithMaxMentions caps how many tokens are converted per document; the rest
// stay plain text. Zero means no limit.
func WithMaxMentions(max int) MentionOption {
	return func(f *MentionFilter) {
		f.maxMentions = max
	}
}

// WithLinkClass adds a class attribute to generated anchors.
func WithLinkClass(class string) MentionOption {
	return func(f *MentionFilter) {
		f.linkClass = class
	}
}

// MentionFilter rewrites @name tokens into profile links. An escaped @@name
// renders as a literal @name.
type MentionFilter struct {
	urlTemplate string
	resolver    Resolver
	maxMentions int
	linkClass   string
}

const defaultURLTemplate = "/profiles/{name}"

// NewMention constructs the filter. Without options every token links to
// the default /profiles/{name} path.
func NewMention(options ...MentionOption) *MentionFilter {
	f := &MentionFilter{
		urlTemplate: defaultURLTemplate,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Name identifies the filter inside a chain.
func (f *MentionFilter) Name() string { return "mention" }

// Apply replaces mention tokens in text. Replacement output escapes every
// interpolated user-controlled part, so the filter is safe to run on
// rendered HTML.
func (f *MentionFilter) Apply(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !strings.Contains(text, "@") {
		return text, nil
	}

	var applyErr error
	replaced := 0

	out := mentionPattern.ReplaceAllStringFunc(text, func(match string) string {
		if applyErr != nil {
			return match
		}
		groups := mentionPattern.FindStringSubmatch(match)
		prefix, marker, name := groups[1], groups[2], groups[3]

		if marker == "@@" {
			// Escaped token renders as a literal @name.
			return prefix + "@" + name
		}
		if f.maxMentions > 0 && replaced >= f.maxMentions {
			return match
		}

		anchor, ok, err := f.link(ctx, name)
		if err != nil {
			applyErr = err
			return match
		}
		if !ok {
			return match
		}
		replaced++
		return prefix + anchor
	})

	if applyErr != nil {
		return "", applyErr
	}
	return out, nil
}

func (f *MentionFilter) link(ctx context.Context, name string) (string, bool, error) {
	target := ""
	label := name

	if f.resolver != nil {
		resolved, ok, err := f.resolver(ctx, name)
		if err != nil {
			return "", false, fmt.Errorf("resolve %q: %w", name, err)
		}
		if !ok {
			return "", false, nil
		}
		target = resolved.URL
		if resolved.Label != "" {
			label = resolved.Label
		}
	} else {
		target = strings.ReplaceAll(f.urlTemplate, "{name}", url.PathEscape(name))
	}

	if target == "" {
		return "", false, nil
	}

	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(target))
	b.WriteString(`"`)
	if f.linkClass != "" {
		b.WriteString(` class="`)
		b.WriteString(html.EscapeString(f.linkClass))
		b.WriteString(`"`)
	}
	b.WriteString(`>@`)
	b.WriteString(html.EscapeString(label))
	b.WriteString(`</a>`)
	return b.String(), true, nil
}
