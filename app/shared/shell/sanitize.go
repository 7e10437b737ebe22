package shell

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all markup from a free-text field and trims surrounding blanks.
// Entities produced by the policy are decoded again, the result is stored as plain text.
func SanitizeText(text string) string {
	if text == "" {
		return text
	}

	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(text)))
}
