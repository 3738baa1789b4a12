package vango

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/jsonedit/internal/errors"
)

// Runtime evaluates a component tree and owns the state remembered by its
// nodes. It is the Listener every read during a pass subscribes, so a write
// to any of those cells marks the runtime dirty.
type Runtime struct {
	id     uint64
	slots  slotTable
	logger *slog.Logger

	// pass counts evaluations; slots remember the last pass that saw them.
	pass uint64

	passMu   sync.Mutex
	dirty    atomic.Bool
	disposed atomic.Bool

	mu       sync.Mutex
	onDirty  func()
	cleanups []func()
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithLogger sets the logger used for pass diagnostics.
func WithLogger(l *slog.Logger) RuntimeOption {
	return func(r *Runtime) { r.logger = l }
}

// NewRuntime creates an empty runtime.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	r := &Runtime{id: nextID(), logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID implements Listener.
func (r *Runtime) ID() uint64 {
	return r.id
}

// MarkDirty implements Listener. The OnDirty hook runs on the first change
// after a pass; later changes before the next pass are absorbed.
func (r *Runtime) MarkDirty() {
	if r.disposed.Load() {
		return
	}
	if !r.dirty.CompareAndSwap(false, true) {
		return
	}
	r.mu.Lock()
	fn := r.onDirty
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// IsDirty reports whether state read during the last pass has changed.
func (r *Runtime) IsDirty() bool {
	return r.dirty.Load()
}

// ClearDirty resets the dirty flag without running a pass.
func (r *Runtime) ClearDirty() {
	r.dirty.Store(false)
}

// OnDirty sets the scheduler hook run when the runtime becomes dirty.
func (r *Runtime) OnDirty(fn func()) {
	r.mu.Lock()
	r.onDirty = fn
	r.mu.Unlock()
}

// OnCleanup registers fn to run when the runtime is disposed.
// Cleanups run in reverse registration order.
func (r *Runtime) OnCleanup(fn func()) {
	r.mu.Lock()
	r.cleanups = append(r.cleanups, fn)
	r.mu.Unlock()
}

// Pass runs one evaluation of the tree rooted at fn. Reads inside fn
// subscribe the runtime. When fn returns, every slot that was not visited
// during the pass is discarded. If fn panics, no slot is discarded.
//
// Passes are serialized; Pass must not be called from inside fn.
func (r *Runtime) Pass(fn func(root *Scope)) {
	if r.disposed.Load() {
		panic(errors.New("E005").WithDetailf("runtime %d", r.id))
	}

	r.passMu.Lock()
	defer r.passMu.Unlock()

	r.pass++
	r.dirty.Store(false)

	root := &Scope{rt: r, path: Root}
	WithListener(r, func() { fn(root) })

	if n := r.slots.sweep(r.pass); n > 0 && DebugMode {
		r.logger.Debug("slots discarded", "runtime", r.id, "pass", r.pass, "count", n)
	}
}

// Passes returns the number of passes run so far.
func (r *Runtime) Passes() uint64 {
	r.passMu.Lock()
	defer r.passMu.Unlock()
	return r.pass
}

// SlotCount returns the number of remembered cells.
func (r *Runtime) SlotCount() int {
	return r.slots.len()
}

// Dispose runs the cleanups and drops all remembered state.
// Calling Dispose again does nothing.
func (r *Runtime) Dispose() {
	if !r.disposed.CompareAndSwap(false, true) {
		return
	}

	r.mu.Lock()
	cleanups := r.cleanups
	r.cleanups = nil
	r.onDirty = nil
	r.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	r.slots.clear()
}

// Scope is a node being evaluated in a pass. Its Remember calls are
// addressed by the node's path and their call order.
type Scope struct {
	rt   *Runtime
	path Path
	slot int
}

// Runtime returns the runtime running the pass.
func (s *Scope) Runtime() *Runtime {
	return s.rt
}

// Path returns the node's identity path.
func (s *Scope) Path() Path {
	return s.path
}

// Child returns the scope of the child node with the given key. Siblings
// must use distinct keys; reusing a key for a different child hands it the
// previous child's state.
func (s *Scope) Child(key uint64) *Scope {
	return &Scope{rt: s.rt, path: s.path.Child(key)}
}

func (s *Scope) nextSlot() slotKey {
	k := slotKey{path: s.path, index: s.slot}
	s.slot++
	return k
}
