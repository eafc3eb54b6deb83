package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store maps session IDs to live sessions for the HTTP server. Each
// session is owned by a single user flow; the store itself only needs
// a lock around the map.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]*Session)}
}

// Create registers and returns a new session.
func (st *Store) Create() *Session {
	sess := New()
	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

// Get returns the session for an ID, or nil when unknown.
func (st *Store) Get(id uuid.UUID) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Delete removes a session entirely.
func (st *Store) Delete(id uuid.UUID) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
