package form

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inputPolicyOnce sync.Once
	inputPolicy     *bluemonday.Policy
)

// Sanitize strips markup from a submitted display value and trims surrounding
// whitespace. The result is plain text, not safe HTML: entities are decoded,
// so "&lt;b&gt;" comes back as "<b>". Templates escape on output. It is lossy
// for anything that parses as a tag, e.g. "a<b c" becomes "a", so it must not
// be applied to identifiers such as emails.
func Sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := inputSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func inputSanitizer() *bluemonday.Policy {
	inputPolicyOnce.Do(func() {
		inputPolicy = bluemonday.StrictPolicy()
	})
	return inputPolicy
}
