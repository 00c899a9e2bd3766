package store

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/wombat/core"
	"github.com/layer-3/wombat/ports"
)

type memoryEntry struct {
	session   core.Session
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the Store interface
type MemoryStore struct {
	sessions map[string]memoryEntry
	mu       sync.RWMutex
	now      func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() ports.Store {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

// SaveSession stores a copy of session until ttl elapses
func (s *MemoryStore) SaveSession(ctx context.Context, session *core.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *session
	cp.Accounts = append([]core.Account(nil), session.Accounts...)
	s.sessions[session.ID] = memoryEntry{session: cp, expiresAt: s.now().Add(ttl)}

	// Drop anything else that has expired while we hold the lock.
	now := s.now()
	for id, e := range s.sessions {
		if now.After(e.expiresAt) {
			delete(s.sessions, id)
		}
	}

	return nil
}

// GetSession returns the session or core.ErrSessionNotFound
func (s *MemoryStore) GetSession(ctx context.Context, id string) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.sessions[id]
	if !ok || s.now().After(e.expiresAt) {
		return nil, core.ErrSessionNotFound
	}

	cp := e.session
	cp.Accounts = append([]core.Account(nil), e.session.Accounts...)
	return &cp, nil
}

// DeleteSession removes the session; deleting an unknown id is not an error
func (s *MemoryStore) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
