package server

import (
	"context"
	"strings"
	"time"

	"github.com/vango-dev/jsonedit/pkg/vango"
	"github.com/vango-dev/jsonedit/pkg/vdom"
)

// Component renders a subtree for one scope of a pass.
type Component func(s *vango.Scope) *vdom.VNode

// Handler is the internal event handler function type.
// It receives a decoded event and processes it.
type Handler func(event *Event)

// Event represents a decoded event from the client with runtime context.
type Event struct {
	// Seq is the sequence number of the event within its session.
	Seq uint64

	// Type is the event name without the "on" prefix (click, input, keydown...).
	Type string

	// HID is the hydration ID of the target element.
	HID string

	// Payload contains type-specific event data: a string for input and
	// change, a vango.KeyboardEvent for keydown, nil otherwise.
	Payload any

	// Session is the session that received the event.
	Session *Session

	// Time is when the event was received by the server.
	Time time.Time

	ctx context.Context
}

// NewEvent creates an event for the element with the given HID.
func NewEvent(hid, eventType string, payload any) *Event {
	return &Event{
		Type:    strings.TrimPrefix(strings.ToLower(eventType), "on"),
		HID:     hid,
		Payload: payload,
		Time:    time.Now(),
	}
}

// Context returns the context the event is dispatched under.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// WithContext returns a shallow copy of the event carrying ctx.
func (e *Event) WithContext(ctx context.Context) *Event {
	c := *e
	c.ctx = ctx
	return &c
}

func (e *Event) key() string {
	return handlerKey(e.HID, e.Type)
}

func handlerKey(hid, eventType string) string {
	return hid + "_on" + eventType
}

// wrapHandler converts a user-provided handler to the internal Handler type.
// It returns nil for unsupported signatures.
func wrapHandler(value any) Handler {
	switch h := value.(type) {
	// Simple click handler - no arguments
	case func():
		return func(e *Event) { h() }

	// Handler with event
	case func(*Event):
		return h

	// Input/Change handler - string value
	case func(string):
		return func(e *Event) {
			if s, ok := e.Payload.(string); ok {
				h(s)
			}
		}

	// Keyboard event handler
	case func(vango.KeyboardEvent):
		return func(e *Event) {
			switch k := e.Payload.(type) {
			case vango.KeyboardEvent:
				h(k)
			case *vango.KeyboardEvent:
				if k != nil {
					h(*k)
				}
			}
		}

	case Handler:
		return h
	}
	return nil
}
