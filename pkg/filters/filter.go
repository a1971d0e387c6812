package filters

import (
	"context"
	"fmt"
)

// Filter transforms rendered content text. Filters run after markup
// rendering, so input and output are HTML fragments.
type Filter interface {
	Name() string
	Apply(ctx context.Context, text string) (string, error)
}

// Chain applies filters in registration order. A nil or empty chain is a
// no-op.
type Chain struct {
	filters []Filter
}

// NewChain builds a chain from the given filters, skipping nil entries.
func NewChain(filters ...Filter) *Chain {
	c := &Chain{}
	for _, f := range filters {
		if f == nil {
			continue
		}
		c.filters = append(c.filters, f)
	}
	return c
}

// Append adds filters to the end of the chain.
func (c *Chain) Append(filters ...Filter) {
	for _, f := range filters {
		if f == nil {
			continue
		}
		c.filters = append(c.filters, f)
	}
}

// Len reports the number of filters in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.filters)
}

// Apply runs every filter in order, threading the text through. The first
// failing filter aborts the chain.
func (c *Chain) Apply(ctx context.Context, text string) (string, error) {
	if c == nil {
		return text, nil
	}
	for _, f := range c.filters {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		out, err := f.Apply(ctx, text)
		if err != nil {
			return "", fmt.Errorf("filters: apply %s: %w", f.Name(), err)
		}
		text = out
	}
	return text, nil
}
