package template

import (
	"io"
)

// TemplateRenderer is the seam handlers rely on. Implementations resolve
// template names against their own loader and evaluate data against the
// requested block only.
type TemplateRenderer interface {
	RenderBlock(name, block string, data any, out ...io.Writer) (string, error)
	RenderBlocks(name string, blocks []string, data any) (map[string]string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}

// BlockRenderer is the narrow subset components need.
type BlockRenderer interface {
	RenderBlock(name, block string, data any, out ...io.Writer) (string, error)
}
