// Package form carries submitted values and field errors back into a form
// render, and parses the contact submission.
package form

import (
	"strings"
)

// Field names shared by the contact form and its templates.
const (
	FieldName  = "name"
	FieldEmail = "email"
)

// Messages rendered next to rejected fields.
const (
	MsgEmailExists   = "Email already exists"
	MsgNameRequired  = "Name is required"
	MsgEmailRequired = "Email is required"
)

// State is the per-request form state handed to the form block. It is a value
// type: WithValue and WithError return updated copies and never modify the
// receiver, so an Empty state can be shared freely.
type State struct {
	Values map[string]string `json:"values"`
	Errors map[string]string `json:"errors"`
}

// Empty returns a state with no values and no errors.
func Empty() State {
	return State{
		Values: map[string]string{},
		Errors: map[string]string{},
	}
}

// WithValue returns a copy of s with field set to value.
func (s State) WithValue(field, value string) State {
	field = strings.TrimSpace(field)
	if field == "" {
		return s
	}
	return State{
		Values: withEntry(s.Values, field, value),
		Errors: cloneMap(s.Errors),
	}
}

// WithError returns a copy of s with message attached to field. Blank
// messages are ignored.
func (s State) WithError(field, message string) State {
	field = strings.TrimSpace(field)
	message = strings.TrimSpace(message)
	if field == "" || message == "" {
		return s
	}
	return State{
		Values: cloneMap(s.Values),
		Errors: withEntry(s.Errors, field, message),
	}
}

// Value returns the submitted value for field.
func (s State) Value(field string) string {
	return s.Values[field]
}

// Error returns the message attached to field.
func (s State) Error(field string) string {
	return s.Errors[field]
}

// HasErrors reports whether any field was rejected.
func (s State) HasErrors() bool {
	return len(s.Errors) > 0
}

func withEntry(base map[string]string, key, value string) map[string]string {
	out := cloneMap(base)
	out[key] = value
	return out
}

func cloneMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
