// Package counter owns the shared click counter.
package counter

import "sync"

// Store holds a single unsigned value that only grows. The zero value is a
// usable store starting at 0.
type Store struct {
	mu    sync.Mutex
	value uint64
}

// New returns a store starting at seed.
func New(seed uint64) *Store {
	return &Store{value: seed}
}

// Value returns the current count.
func (s *Store) Value() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Increment adds one and returns the value produced by this call.
func (s *Store) Increment() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value++
	return s.value
}
