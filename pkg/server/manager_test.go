package server

import (
	"testing"
	"time"
)

func TestSessionManagerLifecycle(t *testing.T) {
	m := NewSessionManager(nil)

	var created, closed []string
	m.OnSessionCreate(func(s *Session) { created = append(created, s.ID) })
	m.OnSessionClose(func(s *Session) { closed = append(closed, s.ID) })

	s, err := NewSession(counter(&counterState{}))
	if err != nil {
		t.Fatal(err)
	}
	m.Add(s)

	if m.Count() != 1 {
		t.Errorf("expected 1 session, got %d", m.Count())
	}
	if got, ok := m.Get(s.ID); !ok || got != s {
		t.Error("expected Get to return the session")
	}

	m.Remove(s.ID)
	m.Remove(s.ID)

	if !s.IsClosed() {
		t.Error("expected removed session to be closed")
	}
	if len(created) != 1 || len(closed) != 1 {
		t.Errorf("expected one create and one close, got %v %v", created, closed)
	}
	if c, cl := m.Stats(); c != 1 || cl != 1 {
		t.Errorf("expected stats 1/1, got %d/%d", c, cl)
	}
}

func TestSessionManagerSweep(t *testing.T) {
	m := NewSessionManager(nil)

	idle, _ := NewSession(counter(&counterState{}))
	attached, _ := NewSession(counter(&counterState{}))
	fresh, _ := NewSession(counter(&counterState{}))
	old := time.Now().Add(-time.Hour).UnixNano()
	idle.lastActive.Store(old)
	attached.lastActive.Store(old)
	attached.attached.Store(true)

	m.Add(idle)
	m.Add(attached)
	m.Add(fresh)

	if n := m.Sweep(time.Minute); n != 1 {
		t.Errorf("expected 1 swept, got %d", n)
	}
	if _, ok := m.Get(idle.ID); ok {
		t.Error("expected idle session removed")
	}
	if m.Count() != 2 {
		t.Errorf("expected 2 sessions left, got %d", m.Count())
	}

	m.CloseAll()
	if m.Count() != 0 {
		t.Errorf("expected no sessions, got %d", m.Count())
	}
	if !attached.IsClosed() || !fresh.IsClosed() {
		t.Error("expected CloseAll to close sessions")
	}
}
