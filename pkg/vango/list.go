package vango

import (
	"iter"
	"math"
	"slices"
	"sync"

	"github.com/vango-dev/jsonedit/internal/errors"
)

// Entry is one element of an IdentityList: the value and the id assigned to
// it when it entered the list.
type Entry[T any] struct {
	ID    uint64
	Value T
}

// IdentityList is an ordered list that gives every element a permanent id.
//
// Ids come from a per-list counter that starts at 0 and only grows, so an id
// is never reused within one list, even after its element is removed. Swap
// moves ids together with their values and Set keeps the id of the slot it
// overwrites. Editors key child state by id, which lets that state follow
// its element through reordering.
//
// Every mutating call fires the OnChange callback exactly once, after the
// list is consistent, and notifies subscribed listeners (batched by Batch).
// Calls that change nothing fire nothing. Indices outside the valid range
// panic with error code E001.
//
// IdentityList[T] is safe for concurrent access.
type IdentityList[T any] struct {
	base     signalBase
	mu       sync.RWMutex
	entries  []Entry[T]
	next     uint64
	equal    func(T, T) bool
	onChange func()
}

// NewIdentityList creates a list holding items, with ids 0 through
// len(items)-1 in order. Construction does not notify.
func NewIdentityList[T any](items []T) *IdentityList[T] {
	l := &IdentityList[T]{
		base:    signalBase{id: nextID()},
		entries: make([]Entry[T], 0, len(items)),
	}
	for _, item := range items {
		l.entries = append(l.entries, Entry[T]{ID: l.allocate(), Value: item})
	}
	return l
}

// WithEquals sets the equality used by Set to detect no-op writes.
func (l *IdentityList[T]) WithEquals(fn func(T, T) bool) *IdentityList[T] {
	l.mu.Lock()
	l.equal = fn
	l.mu.Unlock()
	return l
}

// OnChange registers fn to run after every mutation, replacing any previous
// callback. A nil fn removes the callback.
func (l *IdentityList[T]) OnChange(fn func()) {
	l.mu.Lock()
	l.onChange = fn
	l.mu.Unlock()
}

// ID returns the unique identifier of the list itself.
func (l *IdentityList[T]) ID() uint64 {
	return l.base.id
}

// Len returns the number of elements.
func (l *IdentityList[T]) Len() int {
	l.base.track()
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// At returns the value at index i.
func (l *IdentityList[T]) At(i int) T {
	l.base.track()
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.checkIndex(i, len(l.entries))
	return l.entries[i].Value
}

// IDAt returns the id of the element at index i.
func (l *IdentityList[T]) IDAt(i int) uint64 {
	l.base.track()
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.checkIndex(i, len(l.entries))
	return l.entries[i].ID
}

// IndexOf returns the current index of the element with the given id, or -1
// if no element carries it.
func (l *IdentityList[T]) IndexOf(id uint64) int {
	l.base.track()
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.IndexFunc(l.entries, func(e Entry[T]) bool { return e.ID == id })
}

// Entries returns a copy of the elements with their ids.
func (l *IdentityList[T]) Entries() []Entry[T] {
	l.base.track()
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

// Values returns a copy of the values in order.
func (l *IdentityList[T]) Values() []T {
	l.base.track()
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Value
	}
	return out
}

// All iterates over (id, value) pairs in order. The iteration works on a
// snapshot, so the body may mutate the list.
func (l *IdentityList[T]) All() iter.Seq2[uint64, T] {
	entries := l.Entries()
	return func(yield func(uint64, T) bool) {
		for _, e := range entries {
			if !yield(e.ID, e.Value) {
				return
			}
		}
	}
}

// Add appends v under a fresh id and returns the id.
func (l *IdentityList[T]) Add(v T) uint64 {
	var id uint64
	l.mutate(func() bool {
		id = l.allocate()
		l.entries = append(l.entries, Entry[T]{ID: id, Value: v})
		return true
	})
	return id
}

// Insert places v at index i under a fresh id and returns the id.
// i may equal Len, which appends.
func (l *IdentityList[T]) Insert(i int, v T) uint64 {
	var id uint64
	l.mutate(func() bool {
		l.checkIndex(i, len(l.entries)+1)
		id = l.allocate()
		l.entries = slices.Insert(l.entries, i, Entry[T]{ID: id, Value: v})
		return true
	})
	return id
}

// RemoveAt removes the element at index i and returns its value.
func (l *IdentityList[T]) RemoveAt(i int) T {
	var removed T
	l.mutate(func() bool {
		l.checkIndex(i, len(l.entries))
		removed = l.entries[i].Value
		l.entries = slices.Delete(l.entries, i, i+1)
		return true
	})
	return removed
}

// Set replaces the value at index i, keeping the slot's id.
// Writing a value equal to the current one is a no-op.
func (l *IdentityList[T]) Set(i int, v T) {
	l.mutate(func() bool {
		l.checkIndex(i, len(l.entries))
		if l.equals(l.entries[i].Value, v) {
			return false
		}
		l.entries[i].Value = v
		return true
	})
}

// Swap exchanges the elements at i and j together with their ids.
// Swapping an index with itself is a no-op.
func (l *IdentityList[T]) Swap(i, j int) {
	l.mutate(func() bool {
		l.checkIndex(i, len(l.entries))
		l.checkIndex(j, len(l.entries))
		if i == j {
			return false
		}
		l.entries[i], l.entries[j] = l.entries[j], l.entries[i]
		return true
	})
}

// Clear removes every element. Ids are not reset.
func (l *IdentityList[T]) Clear() {
	l.mutate(func() bool {
		if len(l.entries) == 0 {
			return false
		}
		l.entries = nil
		return true
	})
}

// mutate runs fn under the write lock and, if fn reports a change, fires
// the callback and notifies subscribers once the lock is released.
func (l *IdentityList[T]) mutate(fn func() bool) {
	changed, onChange := func() (bool, func()) {
		l.mu.Lock()
		defer l.mu.Unlock()
		return fn(), l.onChange
	}()
	if !changed {
		return
	}
	if onChange != nil {
		onChange()
	}
	l.base.notifySubscribers()
}

// allocate hands out the next id. Must be called with the write lock held.
func (l *IdentityList[T]) allocate() uint64 {
	if l.next == math.MaxUint64 {
		panic(errors.New("E002").WithDetailf("list %d has no ids left", l.base.id))
	}
	id := l.next
	l.next++
	return id
}

func (l *IdentityList[T]) checkIndex(i, n int) {
	if i < 0 || i >= n {
		panic(errors.New("E001").WithDetailf("index %d out of range [0,%d)", i, n))
	}
}

func (l *IdentityList[T]) equals(a, b T) bool {
	if l.equal != nil {
		return l.equal(a, b)
	}
	return defaultEquals(a, b)
}
