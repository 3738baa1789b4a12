package vango

import (
	"sync"

	"github.com/vango-dev/jsonedit/internal/errors"
)

// slotKey addresses one remembered cell: the node's path and the ordinal of
// the Remember call within that node.
type slotKey struct {
	path  Path
	index int
}

type slot struct {
	value any
	// pass is the last pass that visited this slot.
	pass uint64
}

// slotTable stores every remembered cell of a runtime.
type slotTable struct {
	mu    sync.Mutex
	slots map[slotKey]*slot
}

// visit returns the cell stored under key and marks it as seen in pass.
// seenBefore reports whether the slot was already visited in this pass.
func (t *slotTable) visit(key slotKey, pass uint64) (value any, ok, seenBefore bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.slots[key]
	if !ok {
		return nil, false, false
	}
	seenBefore = s.pass == pass
	s.pass = pass
	return s.value, true, seenBefore
}

func (t *slotTable) store(key slotKey, value any, pass uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.slots == nil {
		t.slots = make(map[slotKey]*slot)
	}
	t.slots[key] = &slot{value: value, pass: pass}
}

// sweep drops every slot not visited in pass and returns how many it dropped.
func (t *slotTable) sweep(pass uint64) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for k, s := range t.slots {
		if s.pass != pass {
			delete(t.slots, k)
			n++
		}
	}
	return n
}

func (t *slotTable) len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.slots)
}

func (t *slotTable) clear() {
	t.mu.Lock()
	t.slots = nil
	t.mu.Unlock()
}

// Remember returns the signal stored at the next slot of s, creating it with
// initial on the node's first pass. The same node gets the same signal on
// every later pass for as long as its path is evaluated.
//
// Like the slots of any node, Remember calls must run unconditionally and in
// the same order on every pass.
func Remember[T any](s *Scope, initial T) *Signal[T] {
	return useSlot(s, func() *Signal[T] { return NewSignal(initial) })
}

// RememberFunc is Remember with a lazily computed initial value. init runs
// only when the slot is created.
func RememberFunc[T any](s *Scope, init func() T) *Signal[T] {
	return useSlot(s, func() *Signal[T] { return NewSignal(init()) })
}

// RememberRef returns the ref stored at the next slot of s, creating it with
// initial on the node's first pass.
func RememberRef[T any](s *Scope, initial T) *Ref[T] {
	return useSlot(s, func() *Ref[T] { return NewRef(initial) })
}

// RememberList returns the identity list stored at the next slot of s. On the
// node's first pass the list is created from init() and configured with opts.
func RememberList[T any](s *Scope, init func() []T, opts ...func(*IdentityList[T])) *IdentityList[T] {
	return useSlot(s, func() *IdentityList[T] {
		l := NewIdentityList(init())
		for _, opt := range opts {
			opt(l)
		}
		return l
	})
}

// ListEquals is a RememberList option that sets the list's equality.
func ListEquals[T any](fn func(T, T) bool) func(*IdentityList[T]) {
	return func(l *IdentityList[T]) { l.WithEquals(fn) }
}

func useSlot[C any](s *Scope, create func() C) C {
	key := s.nextSlot()
	rt := s.rt

	if v, ok, seen := rt.slots.visit(key, rt.pass); ok {
		if seen && DebugMode {
			panic(errors.New("E006").WithDetailf("path %s slot %d", key.path, key.index))
		}
		c, ok := v.(C)
		if !ok {
			var want C
			panic(errors.New("E004").WithDetailf("slot %d of %s holds %T, read as %T", key.index, key.path, v, want))
		}
		return c
	}

	c := create()
	rt.slots.store(key, c, rt.pass)
	return c
}
