// Package state implements the application state store: a constructible
// container with an injectable initial snapshot, partial patches validated
// against the reconstructed full state, and selector-isolated subscriptions.
package state

import (
	"reflect"
	"sync"
)

// Selector projects the slice of state a subscriber cares about. The
// projection is compared structurally between commits; subscribers fire only
// when their projection changed.
type Selector func(Snapshot) interface{}

// Store is the single owner of application state. Mutation is expected on a
// single logical thread (event dispatch); the mutex makes concurrent writes
// atomic with last-write-wins semantics rather than partial merges.
type Store struct {
	mu      sync.Mutex
	current Snapshot
	initial Snapshot

	nextSub int
	subs    map[int]*subscriber
}

type subscriber struct {
	selector Selector
	callback func(interface{})
	last     interface{}
}

// New creates a store seeded with the given initial snapshot. The snapshot
// is normalized (current organization resolved) and frozen as the reset
// target.
func New(initial Snapshot) *Store {
	normalize(&initial)
	frozen := clone(initial)
	return &Store{
		current: clone(initial),
		initial: frozen,
		subs:    make(map[int]*subscriber),
	}
}

// GetState returns a deep copy of the current state.
func (s *Store) GetState() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.current)
}

// GetInitialState returns a deep copy of the frozen bootstrap snapshot.
func (s *Store) GetInitialState() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.initial)
}

// SetState merges a partial patch into state. Patches touching entity
// collections are validated against the reconstructed post-merge snapshot;
// on failure the prior state is unchanged and the structured validation
// error is returned. On success subscribers with changed projections fire.
func (s *Store) SetState(p Patch) error {
	s.mu.Lock()
	next := p.apply(clone(s.current))
	normalize(&next)
	if err := validateSnapshot(&next, p.touchesEntities()); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = next
	notify := s.changedSubscribers()
	s.mu.Unlock()

	for _, n := range notify {
		n.callback(n.value)
	}
	return nil
}

// Update applies an updater function to a copy of the current state and
// commits the patch it returns.
func (s *Store) Update(fn func(Snapshot) Patch) error {
	s.mu.Lock()
	snap := clone(s.current)
	s.mu.Unlock()
	return s.SetState(fn(snap))
}

// Reset restores the frozen initial snapshot, notifying affected
// subscribers. Used by "back to home" actions.
func (s *Store) Reset() {
	s.mu.Lock()
	s.current = clone(s.initial)
	notify := s.changedSubscribers()
	s.mu.Unlock()

	for _, n := range notify {
		n.callback(n.value)
	}
}

// Subscribe registers a callback fired when selector(state) changes between
// commits. Returns the unsubscribe function. Mutating a disjoint slice of
// state never invokes the callback.
func (s *Store) Subscribe(selector Selector, callback func(interface{})) func() {
	if selector == nil || callback == nil {
		panic("state: nil selector or callback")
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = &subscriber{
		selector: selector,
		callback: callback,
		last:     selector(clone(s.current)),
	}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

type pendingNotify struct {
	callback func(interface{})
	value    interface{}
}

// changedSubscribers recomputes every projection against the committed
// state and collects the callbacks whose projection changed. Caller holds
// the lock; callbacks run after it is released.
func (s *Store) changedSubscribers() []pendingNotify {
	var notify []pendingNotify
	for _, sub := range s.subs {
		next := sub.selector(clone(s.current))
		if !reflect.DeepEqual(sub.last, next) {
			sub.last = next
			notify = append(notify, pendingNotify{callback: sub.callback, value: next})
		}
	}
	return notify
}
