package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/jsonedit/internal/errors"
	"github.com/vango-dev/jsonedit/pkg/render"
	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// Middleware wraps the execution of an event handler. It must call next to
// run the handler and may pass a derived event (for example one carrying a
// span context).
type Middleware func(e *Event, next func(*Event) error) error

// Session is one mounted root component with its state and handlers.
// Dispatch and Render are serialized by the session.
type Session struct {
	// ID is the unique session identifier.
	ID string

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	root       Component
	runtime    *vango.Runtime
	hidGen     *vdom.HIDGenerator
	renderer   *render.Renderer
	middleware []Middleware
	logger     *slog.Logger

	mu       sync.Mutex
	tree     *vdom.VNode
	handlers map[string]Handler
	ctx      context.Context

	lastActive atomic.Int64
	seq        atomic.Uint64
	renders    atomic.Uint64
	attached   atomic.Bool
	closed     atomic.Bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithSessionLogger sets the session logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// WithMiddleware appends middleware to the dispatch chain. The first
// middleware is the outermost.
func WithMiddleware(mw ...Middleware) SessionOption {
	return func(s *Session) { s.middleware = append(s.middleware, mw...) }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) SessionOption {
	return func(s *Session) { s.ID = id }
}

// WithRenderer sets the renderer used by HTML.
func WithRenderer(r *render.Renderer) SessionOption {
	return func(s *Session) { s.renderer = r }
}

// generateSessionID creates a cryptographically random session ID.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

// NewSession mounts root and runs the first render.
func NewSession(root Component, opts ...SessionOption) (*Session, error) {
	now := time.Now()
	s := &Session{
		ID:        generateSessionID(),
		CreatedAt: now,
		root:      root,
		hidGen:    vdom.NewHIDGenerator(),
		logger:    slog.Default(),
		handlers:  make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = render.NewRenderer(render.RendererConfig{})
	}
	s.logger = s.logger.With("session", s.ID)
	s.runtime = vango.NewRuntime(vango.WithLogger(s.logger))
	s.lastActive.Store(now.UnixNano())

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.render(); err != nil {
		s.runtime.Dispose()
		return nil, err
	}
	return s, nil
}

// Runtime returns the runtime that owns the session state.
func (s *Session) Runtime() *vango.Runtime {
	return s.runtime
}

// Tree returns the tree produced by the last render.
func (s *Session) Tree() *vdom.VNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree
}

// HTML renders the current tree.
func (s *Session) HTML() (string, error) {
	return s.renderer.RenderToString(s.Tree())
}

// Renders returns the number of renders so far, including the first.
func (s *Session) Renders() uint64 {
	return s.renders.Load()
}

// LastActive returns the time of the last dispatched event.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Attached reports whether a client connection is bound to the session.
func (s *Session) Attached() bool {
	return s.attached.Load()
}

// IsClosed reports whether Close was called.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Context returns the context of the event being dispatched. Outside of a
// dispatch it returns context.Background().
func (s *Session) Context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

// Render runs a pass and rebuilds the handler table.
func (s *Session) Render() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render()
}

func (s *Session) render() (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("render panic", "panic", r, "stack", string(debug.Stack()))
			if e, ok := r.(error); ok {
				err = NewSessionError(s.ID, "render", e)
				return
			}
			err = NewSessionError(s.ID, "render", fmt.Errorf("panic: %v", r))
		}
	}()

	var tree *vdom.VNode
	s.runtime.Pass(func(scope *vango.Scope) {
		tree = s.root(scope)
	})

	s.hidGen.Reset()
	vdom.AssignHIDs(tree, s.hidGen)
	s.tree = tree
	s.handlers = make(map[string]Handler)
	s.collectHandlers(tree)
	s.renders.Add(1)
	return nil
}

// collectHandlers registers the handlers of every node with a HID.
func (s *Session) collectHandlers(node *vdom.VNode) {
	vdom.Walk(node, func(n *vdom.VNode) bool {
		if n.HID == "" {
			return true
		}
		for _, ev := range n.Events() {
			h := wrapHandler(n.Handler(ev))
			if h == nil {
				s.logger.Warn("unsupported handler", "hid", n.HID, "event", ev)
				continue
			}
			s.handlers[handlerKey(n.HID, ev)] = h
		}
		return true
	})
}

// HasHandler reports whether the current tree handles eventType on hid.
func (s *Session) HasHandler(hid, eventType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.handlers[handlerKey(hid, eventType)]
	return ok
}

// Dispatch runs the handler registered for the event and re-renders if the
// handler changed state read by the last pass. An event for an unknown
// HID or event name returns an E009 error and leaves the session as is.
// A handler panic is recovered and returned as a *HandlerError.
func (s *Session) Dispatch(e *Event) error {
	if s.closed.Load() {
		return NewSessionError(s.ID, "dispatch", ErrSessionClosed)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e.Seq = s.seq.Add(1)
	e.Session = s
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	s.lastActive.Store(e.Time.UnixNano())

	if vango.DebugMode {
		s.logger.Debug("event received", "hid", e.HID, "event", e.Type, "seq", e.Seq)
	}

	handler, ok := s.handlers[e.key()]
	if !ok {
		s.logger.Warn("handler not found", "hid", e.HID, "event", e.Type, "key", e.key())
		return errors.New("E009").WithDetailf("no %s handler for %s", e.Type, e.HID).Wrap(ErrHandlerNotFound)
	}

	err := s.chain(func(ev *Event) error {
		s.ctx = ev.Context()
		defer func() { s.ctx = nil }()
		return s.safeExecute(handler, ev)
	})(e)

	if s.runtime.IsDirty() {
		if rerr := s.render(); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}

func (s *Session) chain(final func(*Event) error) func(*Event) error {
	next := final
	for i := len(s.middleware) - 1; i >= 0; i-- {
		mw, inner := s.middleware[i], next
		next = func(e *Event) error { return mw(e, inner) }
	}
	return next
}

// safeExecute runs a handler with panic recovery.
func (s *Session) safeExecute(handler Handler, event *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			s.logger.Error("handler panic",
				"panic", r,
				"hid", event.HID,
				"event", event.Type,
				"stack", string(stack))
			err = NewHandlerError(s.ID, event.HID, event.Type, r, stack)
		}
	}()

	handler(event)
	return nil
}

// Close disposes the session state. Calling Close again does nothing.
func (s *Session) Close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runtime.Dispose()
	s.handlers = nil
	s.logger.Debug("session closed")
}
