package vango

import (
	"reflect"
	"sync"
)

// signalBase provides type-erased subscriber management.
// It is embedded in Signal[T], Ref[T] and IdentityList[T] to share
// subscription logic.
type signalBase struct {
	id uint64

	// subs are the listeners subscribed to this signal.
	subs []Listener

	// subMu protects the subs slice.
	subMu sync.RWMutex
}

// track subscribes the current listener, if any.
func (s *signalBase) track() {
	if listener := getCurrentListener(); listener != nil {
		s.subscribe(listener)
	}
}

// subscribe adds a listener to this signal's subscribers.
// Deduplicates by listener ID to prevent double-subscription.
func (s *signalBase) subscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}

	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener from this signal's subscribers.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			// Remove by swapping with last element (order doesn't matter)
			s.subs[i] = s.subs[len(s.subs)-1]
			s.subs = s.subs[:len(s.subs)-1]
			return
		}
	}
}

// notifySubscribers notifies all subscribers that this signal changed.
// Uses copy-before-notify pattern to avoid holding locks during notification.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	if getBatchDepth() > 0 {
		for _, sub := range subs {
			queuePendingUpdate(sub)
		}
		return
	}

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// Signal is a reactive value container.
// Reading a Signal's value during a runtime pass automatically subscribes
// the runtime, which is marked dirty when the value changes.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex

	// equal is the equality function used to determine if the value changed.
	// If nil, uses default equality checking.
	equal func(T, T) bool
}

// NewSignal creates a new signal with the given initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}
}

// Get returns the current value and subscribes the current listener.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Track after releasing the value lock.
	s.base.track()
	return value
}

// Peek returns the current value without subscribing.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the signal's value and notifies subscribers if the value changed.
func (s *Signal[T]) Set(value T) {
	s.mu.Lock()
	changed := !s.equals(s.value, value)
	if changed {
		s.value = value
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// Update atomically reads and updates the signal's value.
// The function receives the current value and returns the new value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	newValue := fn(oldValue)
	changed := !s.equals(oldValue, newValue)
	if changed {
		s.value = newValue
	}
	s.mu.Unlock()

	if changed {
		s.base.notifySubscribers()
	}
}

// WithEquals returns the signal configured with a custom equality function.
// This is useful for types where reflect.DeepEqual is too expensive
// or has incorrect semantics, such as value.Value.
func (s *Signal[T]) WithEquals(fn func(T, T) bool) *Signal[T] {
	s.mu.Lock()
	s.equal = fn
	s.mu.Unlock()
	return s
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}

func (s *Signal[T]) equals(a, b T) bool {
	if s.equal != nil {
		return s.equal(a, b)
	}
	return defaultEquals(a, b)
}

// defaultEquals provides type-appropriate equality checking.
// Uses == for common comparable types and reflect.DeepEqual for others.
func defaultEquals[T any](a, b T) bool {
	switch av := any(a).(type) {
	case int:
		return av == any(b).(int)
	case int64:
		return av == any(b).(int64)
	case uint64:
		return av == any(b).(uint64)
	case float64:
		return av == any(b).(float64)
	case string:
		return av == any(b).(string)
	case bool:
		return av == any(b).(bool)
	default:
		// Values with an Equal method (value.Value, time.Time) compare by it.
		if eq, ok := any(a).(interface{ Equal(T) bool }); ok {
			return eq.Equal(b)
		}
		return reflect.DeepEqual(a, b)
	}
}
