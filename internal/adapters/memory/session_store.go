// Package memory holds in-process adapters used when Valkey is disabled.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

type entry struct {
	session domain.DrawingSession
	expires time.Time
}

// SessionStore implements ports.SessionStore with a mutex-guarded map.
// Entries expire ttl after their last write.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns a copy of the stored session.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.DrawingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if s.ttl > 0 && s.now().After(e.expires) {
		delete(s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	out := copySession(e.session)
	return &out, nil
}

// Put replaces the stored session.
func (s *SessionStore) Put(_ context.Context, session *domain.DrawingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = entry{
		session: copySession(*session),
		expires: s.now().Add(s.ttl),
	}
	return nil
}

// Delete removes a session. Unknown ids are ignored.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Len reports the number of stored sessions, including expired ones not yet
// evicted.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func copySession(s domain.DrawingSession) domain.DrawingSession {
	s.Points = slices.Clone(s.Points)
	s.Polygons = slices.Clone(s.Polygons)
	for i := range s.Polygons {
		s.Polygons[i].Positions = slices.Clone(s.Polygons[i].Positions)
	}
	return s
}
