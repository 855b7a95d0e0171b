package valkey

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

const sessionKeyPrefix = "drawing:session:"

// SessionStore implements ports.SessionStore. Each session is one JSON value
// whose expiry is refreshed on every write.
type SessionStore struct {
	cache *Cache
	ttl   time.Duration
}

// NewSessionStore stores sessions through cache with the given ttl.
func NewSessionStore(cache *Cache, ttl time.Duration) *SessionStore {
	return &SessionStore{cache: cache, ttl: ttl}
}

// Get loads a session.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.DrawingSession, error) {
	data, err := s.cache.Get(ctx, sessionKey(id))
	if valkey.IsValkeyNil(err) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	var sess domain.DrawingSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return &sess, nil
}

// Put writes the whole session.
func (s *SessionStore) Put(ctx context.Context, session *domain.DrawingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", session.ID, err)
	}
	return s.cache.Set(ctx, sessionKey(session.ID), data, int(s.ttl/time.Second))
}

// Delete removes a session.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, sessionKey(id))
}

func sessionKey(id string) string { return sessionKeyPrefix + id }
