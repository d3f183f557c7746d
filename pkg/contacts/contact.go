package contacts

// Contact is an accepted submission. Contacts are never mutated once stored.
type Contact struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Reversed returns a copy of list with the newest contact first.
func Reversed(list []Contact) []Contact {
	out := make([]Contact, len(list))
	for i, c := range list {
		out[len(list)-1-i] = c
	}
	return out
}
