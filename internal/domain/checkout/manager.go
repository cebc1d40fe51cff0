// internal/domain/checkout/manager.go
package checkout

import (
	"sync"
	"time"
)

const sessionIdleCutoff = time.Hour

// Manager holds the live checkout sessions keyed by device session id.
// Sessions are in-memory only; abandoning checkout loses step state but
// never the cart, which is persisted separately.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Get returns the session for the key, or nil when checkout has not been
// entered
func (m *Manager) Get(key string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[key]
}

// Begin creates a fresh session for the key, replacing any previous one
func (m *Manager) Begin(key string, authenticated bool) *Session {
	session := NewSession(authenticated)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[key] = session
	return session
}

// End removes the session for the key
func (m *Manager) End(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, key)
}

// Prune drops sessions idle longer than the cutoff and returns how many
// were removed
func (m *Manager) Prune() int {
	cutoff := time.Now().Add(-sessionIdleCutoff)

	m.mu.Lock()
	keys := make([]string, 0)
	for key, session := range m.sessions {
		if session.idleSince(cutoff) {
			keys = append(keys, key)
		}
	}
	for _, key := range keys {
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	return len(keys)
}
