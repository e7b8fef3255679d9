package store

import (
	"sync"

	"github.com/teamdraft/teamdraft/internal/errors"
	"github.com/teamdraft/teamdraft/internal/logging"
)

// Listener is a callback over the full state document, invoked after every
// dispatch in subscription order.
type Listener func(State)

type listenerEntry struct {
	id uint64
	fn Listener
}

// Store is the centralized state container. It applies pure reducers to
// actions and notifies subscribers of the resulting state.
//
// Dispatch is synchronous and non-reentrant: calling Dispatch from within a
// reducer or a subscriber fails with a ReentrancyError. This substitutes for
// a lock as the discipline serializing all mutation of the one document.
type Store struct {
	mu          sync.Mutex
	state       State
	listeners   []listenerEntry
	nextID      uint64
	dispatching bool
	reducer     Reducer
	log         *logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches a logger for dispatch diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.log = l.WithComponent("store") }
}

// New creates a Store over the given initial state and reducer.
func New(initial State, reducer Reducer, opts ...Option) *Store {
	s := &Store{
		state:   initial.Clone(),
		reducer: reducer,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetState returns the current state. The returned value is a copy; callers
// cannot mutate the stored document through it.
func (s *Store) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Dispatch runs the reducer synchronously, adopts the result when it differs
// from the current state, and then notifies every currently-registered
// subscriber in registration order.
//
// Re-entrant dispatch returns a ReentrancyError and leaves state unchanged.
// A reducer panic propagates to the caller; state is left at its
// pre-dispatch value.
func (s *Store) Dispatch(a Action) error {
	s.mu.Lock()
	if s.dispatching {
		s.mu.Unlock()
		return errors.NewReentrancyError(string(a.Type))
	}
	s.dispatching = true
	prev := s.state
	s.mu.Unlock()

	// The flag must clear even when the reducer or a subscriber panics,
	// otherwise the store would be stuck rejecting every future dispatch.
	defer func() {
		s.mu.Lock()
		s.dispatching = false
		s.mu.Unlock()
	}()

	next := s.reducer(prev, a)

	s.mu.Lock()
	changed := !next.Equal(prev)
	if changed {
		s.state = next
	}
	current := s.state
	snapshot := make([]listenerEntry, len(s.listeners))
	copy(snapshot, s.listeners)
	s.mu.Unlock()

	s.log.Debug("dispatched", "action", string(a.Type), "changed", changed, "members", len(current.Members))

	for _, entry := range snapshot {
		entry.fn(current)
	}
	return nil
}

// Subscribe registers a listener and returns an idempotent unsubscribe
// function. Unsubscribing during a notification pass does not disturb the
// in-flight pass but prevents all future ones.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, entry := range s.listeners {
			if entry.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (s *Store) ListenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// OnChange adapts the store to the bind.Source capability: the callback is
// invoked on every dispatch, without the state payload.
func (s *Store) OnChange(fn func()) (unsubscribe func()) {
	return s.Subscribe(func(State) { fn() })
}
