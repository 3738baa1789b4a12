package vango

import "sync"

// Ref holds a mutable reference to a value.
//
// Unlike Signal, writing a Ref is silent: Set never notifies. Reading
// Current during a pass subscribes the runtime, and NotifyChanged delivers a
// change notification on demand. Editors keep in-progress text in a Ref so
// typing does not re-render on every keystroke.
//
// Ref[T] is safe for concurrent access.
type Ref[T any] struct {
	base  signalBase
	value T
	mu    sync.RWMutex
}

// NewRef creates a new Ref with the given initial value.
func NewRef[T any](initial T) *Ref[T] {
	return &Ref[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}
}

// Current returns the current value of the ref and subscribes the current
// listener.
func (r *Ref[T]) Current() T {
	r.mu.RLock()
	value := r.value
	r.mu.RUnlock()

	r.base.track()
	return value
}

// Peek returns the current value without subscribing.
func (r *Ref[T]) Peek() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set replaces the ref's value without notifying anyone.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	r.value = value
	r.mu.Unlock()
}

// NotifyChanged notifies subscribers as if the value had changed.
// Inside a Batch the notification is deferred like any other.
func (r *Ref[T]) NotifyChanged() {
	r.base.notifySubscribers()
}

// ID returns the unique identifier for this ref.
func (r *Ref[T]) ID() uint64 {
	return r.base.id
}
