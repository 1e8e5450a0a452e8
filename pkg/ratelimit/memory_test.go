package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemory_AllowsUpToLimit(t *testing.T) {
	m := NewMemory(Config{Limit: 3, Window: time.Minute})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	for i := range 3 {
		d, err := m.Allow(t.Context(), "login:1.2.3.4:a@example.com")
		require.NoError(t, err)
		require.True(t, d.Allowed, "attempt %d should be allowed", i+1)
	}

	d, err := m.Allow(t.Context(), "login:1.2.3.4:a@example.com")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.Greater(t, d.RetryAfter, time.Duration(0))
	require.LessOrEqual(t, d.RetryAfter, 20*time.Second) // one token every 20s

	// Other keys have their own bucket
	d, err = m.Allow(t.Context(), "login:1.2.3.4:b@example.com")
	require.NoError(t, err)
	require.True(t, d.Allowed)
}

func TestMemory_RefillsOverTime(t *testing.T) {
	m := NewMemory(Config{Limit: 2, Window: time.Minute})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	for range 2 {
		d, _ := m.Allow(t.Context(), "k")
		require.True(t, d.Allowed)
	}
	d, _ := m.Allow(t.Context(), "k")
	require.False(t, d.Allowed)

	// Refused attempts must not eat into the refill
	now = now.Add(30 * time.Second)
	d, _ = m.Allow(t.Context(), "k")
	require.True(t, d.Allowed)
}

func TestMemory_Concurrent(t *testing.T) {
	m := NewMemory(Config{Limit: 50, Window: time.Hour})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d, err := m.Allow(t.Context(), "register:10.0.0.1")
			require.NoError(t, err)
			if d.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 50, allowed)
}

func TestMemory_CleanupDropsIdleKeys(t *testing.T) {
	m := NewMemory(Config{Limit: 1, Window: time.Second})
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	m.lastCleanup = now

	_, _ = m.Allow(t.Context(), "old")
	now = now.Add(10 * time.Minute)
	_, _ = m.Allow(t.Context(), "new") // triggers the sweep

	_, ok := m.limiters.Load("old")
	require.False(t, ok, "idle limiter should have been dropped")
}

func TestUnlimited(t *testing.T) {
	var l Limiter = Unlimited{}
	for range 100 {
		d, err := l.Allow(t.Context(), "x")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	}
}
