package auth

import "strings"

// NormalizeEmail canonicalizes an email address for identity comparison.
// The same normalization is applied everywhere an email is used as a key:
// account registration, profile updates, and sharing-grant lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
