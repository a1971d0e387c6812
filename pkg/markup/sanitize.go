package markup

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer is the subset of the bluemonday policy surface renderers rely
// on, kept as an interface so tests and callers can substitute policies.
type Sanitizer interface {
	Sanitize(string) string
	SanitizeBytes([]byte) []byte
}

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy

	commentPolicyOnce sync.Once
	commentPolicy     *bluemonday.Policy
)

// UGCSanitizer returns the shared policy for user-generated content: the
// bluemonday UGC baseline plus the class attribute on code blocks so fenced
// code language hints survive.
func UGCSanitizer() Sanitizer {
	ugcPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("code", "pre")
		policy.RequireNoFollowOnLinks(true)
		ugcPolicy = policy
	})
	return ugcPolicy
}

// CommentSanitizer returns a stricter policy for short-form comment bodies:
// inline formatting and links only, no images or block structure.
func CommentSanitizer() Sanitizer {
	commentPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("a", "b", "strong", "i", "em", "code", "br")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		commentPolicy = policy
	})
	return commentPolicy
}
