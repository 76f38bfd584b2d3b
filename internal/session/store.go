package session

import "sync"

// Store serializes events against one State.
type Store struct {
	mu    sync.Mutex
	state State
}

// NewStore wraps an initial state.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// Dispatch reduces ev into the held state and returns the result.
func (s *Store) Dispatch(ev Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, ev)
	return s.state.clone()
}

// State returns the current value.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}
