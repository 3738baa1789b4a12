package server

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// SessionManager tracks the live sessions of a Server.
type SessionManager struct {
	sessions map[string]*Session
	mu       sync.RWMutex

	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64

	onSessionCreate func(*Session)
	onSessionClose  func(*Session)

	logger *slog.Logger
}

// NewSessionManager creates an empty manager.
func NewSessionManager(logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		sessions: make(map[string]*Session),
		logger:   logger,
	}
}

// OnSessionCreate sets a callback run after a session is added.
func (m *SessionManager) OnSessionCreate(fn func(*Session)) {
	m.mu.Lock()
	m.onSessionCreate = fn
	m.mu.Unlock()
}

// OnSessionClose sets a callback run after a session is closed.
func (m *SessionManager) OnSessionClose(fn func(*Session)) {
	m.mu.Lock()
	m.onSessionClose = fn
	m.mu.Unlock()
}

// Add registers a session.
func (m *SessionManager) Add(s *Session) {
	m.mu.Lock()
	m.sessions[s.ID] = s
	fn := m.onSessionCreate
	m.mu.Unlock()

	m.totalCreated.Add(1)
	if fn != nil {
		fn(s)
	}
}

// Get returns the session with the given ID.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove closes and unregisters the session with the given ID.
func (m *SessionManager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	fn := m.onSessionClose
	m.mu.Unlock()

	if !ok {
		return
	}
	s.Close()
	m.totalClosed.Add(1)
	if fn != nil {
		fn(s)
	}
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Stats returns the number of sessions created and closed so far.
func (m *SessionManager) Stats() (created, closed uint64) {
	return m.totalCreated.Load(), m.totalClosed.Load()
}

// Sweep closes detached sessions idle for longer than maxIdle and returns
// how many were closed.
func (m *SessionManager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.RLock()
	var stale []string
	for id, s := range m.sessions {
		if !s.Attached() && s.LastActive().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	m.mu.RUnlock()

	for _, id := range stale {
		m.Remove(id)
	}
	if len(stale) > 0 {
		m.logger.Debug("idle sessions closed", "count", len(stale))
	}
	return len(stale)
}

// CloseAll closes every session.
func (m *SessionManager) CloseAll() {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		m.Remove(id)
	}
}
