// Package normalize holds small input-normalization helpers used by the
// stores before validation and persistence.
package normalize

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidEmail reports whether s looks like an email address. The pattern
// matches what registration accepts: something@something.tld with no
// whitespace.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// Username trims surrounding whitespace; case is preserved for display.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Name trims surrounding whitespace from a display name.
func Name(s string) string {
	return strings.TrimSpace(s)
}
