package form

import (
	"fmt"
	"net/http"
	"strings"
)

// ContactSubmission is the cleaned payload of the contact form.
type ContactSubmission struct {
	Name  string
	Email string
}

// ParseContact reads the form-encoded name and email fields. The name is
// passed through Sanitize; the email is only trimmed, so duplicate detection
// compares what the client sent. The returned
// State echoes the submitted values and carries a required-field error for
// each blank field; callers should reject the submission when it has errors.
// A non-nil error means the body could not be parsed at all.
func ParseContact(r *http.Request) (ContactSubmission, State, error) {
	if r == nil {
		return ContactSubmission{}, Empty(), fmt.Errorf("form: missing request")
	}
	if err := r.ParseForm(); err != nil {
		return ContactSubmission{}, Empty(), fmt.Errorf("form: parse body: %w", err)
	}

	sub := ContactSubmission{
		Name:  Sanitize(r.PostForm.Get(FieldName)),
		Email: strings.TrimSpace(r.PostForm.Get(FieldEmail)),
	}

	state := Empty()
	if sub.Name == "" {
		state = state.WithError(FieldName, MsgNameRequired)
	}
	if sub.Email == "" {
		state = state.WithError(FieldEmail, MsgEmailRequired)
	}
	if state.HasErrors() {
		state = state.WithValue(FieldName, sub.Name).WithValue(FieldEmail, sub.Email)
	}
	return sub, state, nil
}

// Rejected builds the state returned when a submission is refused for field.
func Rejected(sub ContactSubmission, field, message string) State {
	return Empty().
		WithValue(FieldName, sub.Name).
		WithValue(FieldEmail, sub.Email).
		WithError(field, message)
}
