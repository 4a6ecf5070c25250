// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from client-supplied free text before it
// is persisted. Stored documents are plain text; rendering is the
// client's concern.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims the result.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
