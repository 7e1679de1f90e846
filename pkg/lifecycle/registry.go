package lifecycle

import (
	"fmt"
	"reflect"
)

// Registry holds listeners in registration order and notifies them
// last-registered-first.
//
// Callbacks may add or remove listeners, including themselves, while a
// notification is in progress. Registry is not safe for concurrent use.
type Registry struct {
	listeners []Listener
	members   map[Listener]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{members: make(map[Listener]struct{})}
}

// Add registers a listener.
// Returns ErrInvalidArgument if l is nil, not comparable, or implements no
// callback, and ErrDuplicateListener if it is already registered.
func (r *Registry) Add(l Listener) error {
	if err := checkListener(l); err != nil {
		return err
	}
	if _, ok := r.members[l]; ok {
		return fmt.Errorf("%w: %T", ErrDuplicateListener, l)
	}

	r.listeners = append(r.listeners, l)
	r.members[l] = struct{}{}
	return nil
}

// Remove unregisters a listener. Persistent listeners stay registered and the
// call still succeeds. Returns ErrListenerNotFound if l is not registered.
func (r *Registry) Remove(l Listener) error {
	if err := checkListener(l); err != nil {
		return err
	}
	if _, ok := r.members[l]; !ok {
		return fmt.Errorf("%w: %T", ErrListenerNotFound, l)
	}
	if isPersistent(l) {
		return nil
	}

	r.delete(l)
	return nil
}

// Contains reports whether l is registered.
func (r *Registry) Contains(l Listener) bool {
	if checkListener(l) != nil {
		return false
	}
	_, ok := r.members[l]
	return ok
}

// Len returns the number of registered listeners.
func (r *Registry) Len() int {
	return len(r.listeners)
}

// Listeners returns a copy of the registered listeners in registration order.
func (r *Registry) Listeners() []Listener {
	return append([]Listener(nil), r.listeners...)
}

// Notify invokes the callback for kind on every registered listener that
// implements it, last-registered-first.
//
// The order is fixed when the pass starts. A listener removed before its turn
// is skipped; one added during the pass waits for the next notification.
func (r *Registry) Notify(kind EventKind, origin ContextID) {
	pending := r.Listeners()
	called := make(map[Listener]struct{}, len(pending))

	for i := len(pending) - 1; i >= 0; i-- {
		l := pending[i]
		if _, done := called[l]; done {
			continue
		}
		if _, ok := r.members[l]; !ok {
			continue
		}
		called[l] = struct{}{}
		dispatch(l, kind, origin)
	}
}

// purge removes every non-persistent listener.
func (r *Registry) purge() int {
	kept := r.listeners[:0]
	removed := 0
	for _, l := range r.listeners {
		if isPersistent(l) {
			kept = append(kept, l)
			continue
		}
		delete(r.members, l)
		removed++
	}
	clear(r.listeners[len(kept):])
	r.listeners = kept
	return removed
}

// reset removes every listener, persistent ones included.
func (r *Registry) reset() {
	r.listeners = nil
	r.members = make(map[Listener]struct{})
}

func (r *Registry) delete(l Listener) {
	delete(r.members, l)
	for i, cur := range r.listeners {
		if cur == l {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

func checkListener(l Listener) error {
	if l == nil {
		return fmt.Errorf("%w: listener is nil", ErrInvalidArgument)
	}
	if !reflect.ValueOf(l).Comparable() {
		return fmt.Errorf("%w: listener of type %T is not comparable", ErrInvalidArgument, l)
	}
	if !hasCapability(l) {
		return fmt.Errorf("%w: %T implements no lifecycle callback", ErrInvalidArgument, l)
	}
	return nil
}
