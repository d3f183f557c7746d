package contacts

import "sync"

// Store is the shared contact collection. Construct it with NewStore.
type Store struct {
	mu       sync.Mutex
	contacts []Contact
	nextID   uint64
}

// NewStore returns a store seeded with the given contacts, in order. Seed ids
// are ignored and reassigned; a seed reusing an earlier email is skipped.
func NewStore(seed ...Contact) *Store {
	s := &Store{
		contacts: make([]Contact, 0, len(seed)),
		nextID:   1,
	}
	for _, c := range seed {
		if s.indexOfLocked(c.Email) >= 0 {
			continue
		}
		s.appendLocked(c.Name, c.Email)
	}
	return s
}

// List returns a snapshot of the collection in insertion order.
func (s *Store) List() []Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Len returns the number of stored contacts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

// InsertIfAbsent appends a new contact unless one with the same email is
// already stored. A rejected call neither mutates the list nor consumes an id.
func (s *Store) InsertIfAbsent(name, email string) (Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOfLocked(email) >= 0 {
		return Contact{}, &DuplicateEmailError{Email: email}
	}
	return s.appendLocked(name, email), nil
}

func (s *Store) indexOfLocked(email string) int {
	for i, c := range s.contacts {
		if c.Email == email {
			return i
		}
	}
	return -1
}

func (s *Store) appendLocked(name, email string) Contact {
	c := Contact{ID: s.nextID, Name: name, Email: email}
	s.nextID++
	s.contacts = append(s.contacts, c)
	return c
}
