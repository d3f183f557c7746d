package template

import (
	"errors"
	"fmt"
)

var (
	// ErrTemplateNotFound reports a template name the loader could not resolve.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrBlockNotFound reports a block name missing from a loaded template.
	ErrBlockNotFound = errors.New("block not found")
	// ErrRenderEvaluation reports an expression that failed against the context.
	ErrRenderEvaluation = errors.New("render evaluation failed")
)

// RenderError carries the template and block that failed. Kind is one of the
// sentinel errors above so callers can use errors.Is without caring about the
// engine specific cause.
type RenderError struct {
	Template string
	Block    string
	Kind     error
	Err      error
}

func (e *RenderError) Error() string {
	target := e.Template
	if e.Block != "" {
		target += "#" + e.Block
	}
	if e.Err != nil {
		return fmt.Sprintf("template: %s %q: %v", e.Kind, target, e.Err)
	}
	return fmt.Sprintf("template: %s %q", e.Kind, target)
}

// Unwrap exposes both the classification and the underlying cause.
func (e *RenderError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NewRenderError builds a RenderError, defaulting Kind to ErrRenderEvaluation.
func NewRenderError(kind error, name, block string, cause error) *RenderError {
	if kind == nil {
		kind = ErrRenderEvaluation
	}
	return &RenderError{Template: name, Block: block, Kind: kind, Err: cause}
}
