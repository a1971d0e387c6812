package filters

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// CensorFilter masks configured words, whole-word and case-insensitive.
type CensorFilter struct {
	pattern *regexp.Regexp
	mask    string
}

// NewCensor builds the filter from the banned word list. An empty list
// yields a pass-through filter. The mask defaults to "****" when empty.
func NewCensor(words []string, mask string) (*CensorFilter, error) {
	if mask == "" {
		mask = "****"
	}

	cleaned := make([]string, 0, len(words))
	for _, word := range words {
		trimmed := strings.TrimSpace(word)
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, regexp.QuoteMeta(trimmed))
	}
	if len(cleaned) == 0 {
		return &CensorFilter{mask: mask}, nil
	}

	pattern, err := regexp.Compile(`(?i)\b(?:` + strings.Join(cleaned, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("filters: compile censor pattern: %w", err)
	}
	return &CensorFilter{pattern: pattern, mask: mask}, nil
}

// Name identifies the filter inside a chain.
func (f *CensorFilter) Name() string { return "censor" }

// Apply replaces every banned word with the mask.
func (f *CensorFilter) Apply(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.pattern == nil {
		return text, nil
	}
	return f.pattern.ReplaceAllString(text, f.mask), nil
}
