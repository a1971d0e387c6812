// Package filters provides post-render text filters and an ordered chain to
// run them. The mention filter rewrites @name tokens into profile links via
// a static URL template or a lookup callback; the censor filter masks
// banned words.
package filters
