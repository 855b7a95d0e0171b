package usecases_test

import (
	"context"
	"sync"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

// --- Mock CacheService ---

type mockCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	gets  int
	sets  int
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte) error
}

func newMockCache() *mockCache { return &mockCache{data: map[string][]byte{}} }

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	v, ok := m.data[key]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// --- Mock SessionStore ---

type mockSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.DrawingSession
	putFn    func(ctx context.Context, s *domain.DrawingSession) error
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]domain.DrawingSession{}}
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (*domain.DrawingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (m *mockSessionStore) Put(ctx context.Context, s *domain.DrawingSession) error {
	if m.putFn != nil {
		return m.putFn(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = *s
	return nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	finalized []*domain.PolygonEvent
	cleared   []string
	plans     []*domain.PlantingPlan
	err       error
}

func (m *mockPublisher) PublishPolygonFinalized(ctx context.Context, event *domain.PolygonEvent) error {
	m.finalized = append(m.finalized, event)
	return m.err
}

func (m *mockPublisher) PublishPolygonsCleared(ctx context.Context, sessionID string) error {
	m.cleared = append(m.cleared, sessionID)
	return m.err
}

func (m *mockPublisher) PublishPlantingPlan(ctx context.Context, plan *domain.PlantingPlan) error {
	m.plans = append(m.plans, plan)
	return m.err
}
