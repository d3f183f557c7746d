// Package contacts owns the in-memory contact list.
//
// The list keeps submission order and guarantees that no two live contacts
// share an email address. The uniqueness check and the append happen under
// the same lock, so concurrent submissions of one address produce exactly one
// contact and one DuplicateEmailError. Emails are compared exactly: letter case
// is significant.
package contacts
