package session

import (
	"sync"

	"github.com/go-faster/errors"
)

// Manager tracks live sessions by id. Each session is created on first use
// with the mode the caller names; the mode is fixed for the session's
// lifetime.
type Manager struct {
	deps Deps

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session registry over the shared services.
func NewManager(deps Deps) *Manager {
	return &Manager{deps: deps, sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for id, creating it with the given mode
// when absent. Reusing an id with a different mode is a boundary error.
func (m *Manager) GetOrCreate(id string, mode Mode) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		if s.Mode() != mode {
			return nil, errors.Wrapf(ErrInvalidRequest, "session %q already runs in %s mode", id, s.Mode())
		}
		return s, nil
	}

	s := New(mode, m.deps)
	m.sessions[id] = s
	return s, nil
}

// Drop removes a session from the registry.
func (m *Manager) Drop(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
