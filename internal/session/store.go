package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// entry holds data for one authenticated session.
type entry struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// Store is a thread-safe in-memory session store. Sessions are created at
// login, resolved on every authenticated request and deleted at logout.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]entry
	ttl      time.Duration
}

// NewStore creates an empty session store with the given TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
	}
}

// Create registers a new session for the user and returns its ID.
func (s *Store) Create(userID uuid.UUID) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = entry{
		userID:    userID,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()
	return id
}

// Resolve returns the user owning the session, or false when the session is
// missing or expired. Expired sessions are removed on access.
func (s *Store) Resolve(id string) (uuid.UUID, bool) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return uuid.Nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.Delete(id)
		return uuid.Nil, false
	}
	return e.userID, true
}

// Delete removes a session. Deleting an unknown session is a no-op, which
// keeps logout idempotent.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
