// internal/app/system/normalize/normalize.go

// Package normalize holds the canonical forms for user-supplied identity
// fields. Emails are compared and indexed lowercase; names keep their
// case but never carry surrounding whitespace.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a name component, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}
