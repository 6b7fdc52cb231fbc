package ratelimit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func TestInMemoryStore_SlidingWindow(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewInMemoryStore(WithClock(clock.Now))
	limit := Limit{Requests: 3, Window: time.Minute}
	key := Key(ClassAuth, "10.0.0.1")

	for i := 0; i < 3; i++ {
		res, err := store.Allow(ctx, key, limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
		clock.Advance(10 * time.Second)
	}

	res, err := store.Allow(ctx, key, limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, clock.t.Add(-30*time.Second).Add(time.Minute), res.ResetAt)
	assert.Equal(t, 30, res.RetryAfter(clock.t))

	// the first hit leaves the window
	clock.Advance(31 * time.Second)
	res, err = store.Allow(ctx, key, limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestInMemoryStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	limit := Limit{Requests: 1, Window: time.Minute}

	res, err := store.Allow(ctx, Key(ClassAuth, "a"), limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(ctx, Key(ClassAuth, "b"), limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(ctx, Key(ClassDefault, "a"), limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = store.Allow(ctx, Key(ClassAuth, "a"), limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
}

func TestResult_RetryAfterFloorsAtOneSecond(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 1, Result{ResetAt: now}.RetryAfter(now))
	assert.Equal(t, 1, Result{ResetAt: now.Add(-time.Second)}.RetryAfter(now))
	assert.Equal(t, 5, Result{ResetAt: now.Add(5 * time.Second)}.RetryAfter(now))
}

func TestInMemoryStore_SweepsIdleKeys(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewInMemoryStore(WithClock(clock.Now), WithSweepInterval(time.Minute))
	limit := Limit{Requests: 5, Window: time.Minute}

	for i := 0; i < 100; i++ {
		_, err := store.Allow(ctx, Key(ClassAuth, fmt.Sprintf("198.51.100.%d", i)), limit)
		require.NoError(t, err)
	}
	clock.Advance(30 * time.Second)
	_, err := store.Allow(ctx, Key(ClassAuth, "keep"), limit)
	require.NoError(t, err)
	assert.Len(t, store.windows, 101)

	clock.Advance(31 * time.Second)
	_, err = store.Allow(ctx, Key(ClassAuth, "trigger"), limit)
	require.NoError(t, err)
	assert.Len(t, store.windows, 2)
	assert.Contains(t, store.windows, Key(ClassAuth, "keep"))

	// a swept key starts over with a full budget
	res, err := store.Allow(ctx, Key(ClassAuth, "198.51.100.0"), limit)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Remaining)
}
