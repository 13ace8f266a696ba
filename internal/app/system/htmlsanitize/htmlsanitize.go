// Package htmlsanitize strips dangerous HTML from user-supplied rich
// text before it is persisted. Task and project descriptions accept
// basic formatting; scripts, event handlers, and javascript: URLs are
// removed.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with unsafe HTML removed. Plain text passes
// through unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
