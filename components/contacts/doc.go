// Package contacts serves the contact list and the contact form fragments.
//
// A successful POST answers with two fragments: a fresh form that replaces the
// submitted one and an out-of-band list item that htmx prepends to the
// contact list. A rejected POST answers 422 with the form only, echoing the
// submitted values next to the field errors.
package contacts
