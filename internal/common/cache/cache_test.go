package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jgirmay/fps-trainer/internal/common/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*LocalCache, *time.Time) {
	t.Helper()
	lc := NewLocalCache(0)
	t.Cleanup(func() { _ = lc.Close() })

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lc.now = func() time.Time { return now }
	return lc, &now
}

func TestLocalCache_SetGet(t *testing.T) {
	lc, _ := newTestCache(t)
	ctx := context.Background()

	lc.Set(ctx, "lessons", []byte(`{"lessons":[]}`), time.Minute)

	val, ok := lc.Get(ctx, "lessons")
	require.True(t, ok)
	assert.Equal(t, `{"lessons":[]}`, string(val))

	_, ok = lc.Get(ctx, "progress")
	assert.False(t, ok)

	stats := lc.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, 50.0, stats.HitRate())
}

func TestLocalCache_Expiration(t *testing.T) {
	lc, now := newTestCache(t)
	ctx := context.Background()

	lc.Set(ctx, "lessons", []byte("x"), time.Second)
	*now = now.Add(2 * time.Second)

	_, ok := lc.Get(ctx, "lessons")
	assert.False(t, ok)
	assert.Equal(t, 0, lc.Size())
	assert.Equal(t, int64(1), lc.Stats().Expires)
}

func TestLocalCache_RemoveExpired(t *testing.T) {
	lc, now := newTestCache(t)
	ctx := context.Background()

	lc.Set(ctx, "short", []byte("a"), time.Second)
	lc.Set(ctx, "long", []byte("b"), time.Hour)
	*now = now.Add(time.Minute)

	lc.removeExpired()

	assert.Equal(t, 1, lc.Size())
	_, ok := lc.Get(ctx, "long")
	assert.True(t, ok)
}

func TestLocalCache_DeleteMany(t *testing.T) {
	lc, _ := newTestCache(t)
	ctx := context.Background()

	lc.Set(ctx, "a", []byte("1"), time.Minute)
	lc.Set(ctx, "b", []byte("2"), time.Minute)
	lc.Set(ctx, "c", []byte("3"), time.Minute)

	lc.Delete(ctx, "a", "b", "missing")

	assert.Equal(t, 1, lc.Size())
	assert.Equal(t, int64(2), lc.Stats().Deletes)
}

func TestLocalCache_CloseIsIdempotent(t *testing.T) {
	lc := NewLocalCache(time.Millisecond)

	assert.NoError(t, lc.Close())
	assert.NoError(t, lc.Close())
}

func TestInvalidateOn_EvictsStaleViews(t *testing.T) {
	lc, _ := newTestCache(t)
	ctx := context.Background()
	bus := events.NewBus()
	InvalidateOn(bus, lc)

	lc.Set(ctx, "lessons", []byte("list"), time.Minute)
	lc.Set(ctx, "lessons:1", []byte("detail 1"), time.Minute)
	lc.Set(ctx, "lessons:2", []byte("detail 2"), time.Minute)

	bus.Dispatch(events.Event{
		Type:       events.EventMeasurementRecorded,
		LessonID:   1,
		StaleViews: []string{"lessons", "lessons:1"},
	})

	_, ok := lc.Get(ctx, "lessons")
	assert.False(t, ok)
	_, ok = lc.Get(ctx, "lessons:1")
	assert.False(t, ok)
	_, ok = lc.Get(ctx, "lessons:2")
	assert.True(t, ok)
}

func TestInvalidateOn_BumpsGeneration(t *testing.T) {
	lc, _ := newTestCache(t)
	bus := events.NewBus()
	gen := InvalidateOn(bus, lc)
	assert.Equal(t, uint64(0), gen.Current())

	bus.Dispatch(events.Event{Type: events.EventLessonStarted, LessonID: 1})
	assert.Equal(t, uint64(0), gen.Current(), "events without stale views leave the generation alone")

	bus.Dispatch(events.Event{Type: events.EventLessonStarted, LessonID: 1, StaleViews: []string{"lessons"}})
	assert.Equal(t, uint64(1), gen.Current())

	var none *Generation
	assert.Equal(t, uint64(0), none.Current())
}

func TestNopCache(t *testing.T) {
	var c ViewCache = NopCache{}
	ctx := context.Background()

	c.Set(ctx, "lessons", []byte("x"), time.Minute)
	_, ok := c.Get(ctx, "lessons")

	assert.False(t, ok)
	assert.NoError(t, c.Close())
}

func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	rc, err := NewRedisCache(addr, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rc.Close() })
	ctx := context.Background()

	rc.Set(ctx, "test:lessons", []byte("payload"), time.Minute)
	val, ok := rc.Get(ctx, "test:lessons")
	require.True(t, ok)
	assert.Equal(t, "payload", string(val))

	rc.Delete(ctx, "test:lessons")
	_, ok = rc.Get(ctx, "test:lessons")
	assert.False(t, ok)
}

func TestNewRedisCache_RequiresAddress(t *testing.T) {
	_, err := NewRedisCache("", nil)
	assert.Error(t, err)
}
