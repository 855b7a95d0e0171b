package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()

	in := &domain.DrawingSession{
		ID:       "s1",
		Drawing:  true,
		Points:   []domain.GeoPoint{{Lat: 1, Lon: 2}},
		Polygons: []domain.DrawnPolygon{{ID: "p", Positions: []domain.GeoPoint{{Lat: 3, Lon: 4}}}},
	}
	require.NoError(t, store.Put(ctx, in))

	in.Points[0].Lat = 99
	in.Polygons[0].Positions[0].Lat = 99

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Points[0].Lat)
	assert.Equal(t, 3.0, got.Polygons[0].Positions[0].Lat)

	got.Points[0].Lat = 50
	again, _ := store.Get(ctx, "s1")
	assert.Equal(t, 1.0, again.Points[0].Lat)
}

func TestSessionStore_NotFound(t *testing.T) {
	store := NewSessionStore(time.Hour)
	_, err := store.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, domain.ErrSessionNotFound))
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &domain.DrawingSession{ID: "s"}))

	now = now.Add(30 * time.Second)
	_, err := store.Get(ctx, "s")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "s")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore(time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, &domain.DrawingSession{ID: "s"}))
	require.NoError(t, store.Delete(ctx, "s"))
	require.NoError(t, store.Delete(ctx, "s"))
	_, err := store.Get(ctx, "s")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Concurrent(t *testing.T) {
	defer goleak.VerifyNone(t)
	store := NewSessionStore(time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := &domain.DrawingSession{ID: "shared", Points: []domain.GeoPoint{{Lat: float64(i)}}}
			_ = store.Put(ctx, s)
			_, _ = store.Get(ctx, "shared")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, store.Len())
}
