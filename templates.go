package fragments

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the built-in page templates (base.html,
// counter.html, contacts.html) so the server can run without a templates
// directory on disk.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
