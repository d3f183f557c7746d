package contacts

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrDuplicateEmail matches any DuplicateEmailError via errors.Is.
var ErrDuplicateEmail = errors.New("contacts: email already exists")

// DuplicateEmailError is returned when a submission reuses a stored email.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("contacts: email %q already exists", e.Email)
}

// Is reports whether target is ErrDuplicateEmail.
func (e *DuplicateEmailError) Is(target error) bool {
	return target == ErrDuplicateEmail
}

// StatusCode returns the HTTP status for a rejected submission.
func (e *DuplicateEmailError) StatusCode() int {
	return http.StatusUnprocessableEntity
}
