// Package session holds the transient per-operator state of the digest
// selection wizard. Sessions live in memory only: they are created when the
// operator starts the flow, mutated at each menu step, and discarded on
// completion or after an idle timeout.
package session

import (
	"sync"
	"time"
)

// DefaultTTL is how long an idle session survives before it is discarded.
const DefaultTTL = 30 * time.Minute

// Session is one in-flight wizard traversal. Exactly one per operator; a new
// /start simply replaces whatever was there (last write wins).
type Session struct {
	GroupID      int64  // selected group chat
	ByTopic      bool   // per-topic mode instead of one general digest
	ThreadID     *int64 // selected topic; nil means all threads
	AwaitingDate bool   // free-text date input is the next expected event
	MenuMsgID    int    // menu message being edited in place

	updatedAt time.Time
}

// Manager stores sessions keyed by operator id behind a mutex.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[int64]Session
}

// NewManager creates a session manager with the given idle TTL. A
// non-positive ttl falls back to DefaultTTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		ttl:      ttl,
		sessions: make(map[int64]Session),
	}
}

// Start creates a fresh session for the operator, replacing any previous one.
func (m *Manager) Start(userID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Session{updatedAt: time.Now()}
	m.sessions[userID] = s
	return s
}

// Get returns the operator's session. Expired sessions are removed and
// reported as absent.
func (m *Manager) Get(userID int64) (Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return Session{}, false
	}
	if time.Since(s.updatedAt) > m.ttl {
		delete(m.sessions, userID)
		return Session{}, false
	}
	return s, true
}

// Put stores the session for the operator and refreshes its idle timer.
func (m *Manager) Put(userID int64, s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.updatedAt = time.Now()
	m.sessions[userID] = s
}

// Clear discards the operator's session, if any.
func (m *Manager) Clear(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
}
