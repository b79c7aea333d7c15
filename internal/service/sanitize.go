package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// maxDecodePasses bounds entity decoding of nested encodings like "&amp;lt;".
const maxDecodePasses = 5

var strictPolicy = bluemonday.StrictPolicy()

// sanitizeText strips markup from user-entered text, including markup written
// as HTML entities. The policy's own entity escaping is undone only when the
// unescaped text sanitizes to itself, so search operators such as "&&" keep
// working while no tag can come back.
func sanitizeText(s string) string {
	for range maxDecodePasses {
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}

	clean := strictPolicy.Sanitize(s)
	if unescaped := html.UnescapeString(clean); html.UnescapeString(strictPolicy.Sanitize(unescaped)) == unescaped {
		clean = unescaped
	}
	return strings.TrimSpace(clean)
}
