package session

import "sync"

// Store owns the current session State. Exactly one Store exists per client;
// all mutation goes through Dispatch so no reader can ever observe a
// partially-applied transition. Concurrent dispatchers are serialized and
// last-write-wins, matching independent callers racing their own refreshes.
type Store struct {
	mu    sync.RWMutex
	state State
}

// NewStore returns a store holding the initial logged-out state.
func NewStore() *Store {
	return &Store{state: InitialState()}
}

// Dispatch applies an action atomically. A failed transition leaves the
// current state in place and returns the reducer's error.
func (s *Store) Dispatch(action Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.state, action)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// State returns a snapshot of the current session. The snapshot is detached:
// mutating it (or its Scopes slice) does not affect the store.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state
	snapshot.Scopes = append([]string(nil), s.state.Scopes...)
	return snapshot
}

// Reset discards the session, returning the store to its initial state. Used
// on logout together with clearing the durable refresh-token slot.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = InitialState()
}
