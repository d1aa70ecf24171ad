// Package session provides an in-memory SessionStore used in development
// and in tests, where a Redis instance is not worth the ceremony.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/schoolhub/portal/internal/core/domain"
)

type entry struct {
	session  domain.Session
	expireAt time.Time
}

// MemoryStore is a mutex-guarded map with per-entry expiry. Expired entries
// read back as absent, matching the Redis repository's behaviour.
type MemoryStore struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]entry
	now func() time.Time
}

// NewMemoryStore creates a store whose entries expire after ttl. A ttl of
// zero disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl: ttl,
		m:   make(map[string]entry),
		now: time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, sid string, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{session: sess}
	if s.ttl > 0 {
		e.expireAt = s.now().Add(s.ttl)
	}
	s.m[sid] = e
	return nil
}

func (s *MemoryStore) Get(_ context.Context, sid string) (domain.Session, error) {
	s.mu.RLock()
	e, ok := s.m[sid]
	s.mu.RUnlock()

	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if !e.expireAt.IsZero() && s.now().After(e.expireAt) {
		s.mu.Lock()
		delete(s.m, sid)
		s.mu.Unlock()
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return e.session, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.m, sid)
	s.mu.Unlock()
	return nil
}
