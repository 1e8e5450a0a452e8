package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupRedis starts a throwaway redis and returns a client for it. Skipped
// when there is no docker around.
func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := t.Context()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err())
	return client
}

func TestRedis_SlidingWindow(t *testing.T) {
	client := setupRedis(t)

	l := NewRedis(client, "flock:rl:", Config{Limit: 3, Window: time.Minute})
	now := time.Now()
	l.now = func() time.Time { return now }

	for i := range 3 {
		d, err := l.Allow(t.Context(), "login:1.2.3.4:a@example.com")
		require.NoError(t, err)
		require.True(t, d.Allowed, "attempt %d should be allowed", i+1)
		now = now.Add(time.Second)
	}

	d, err := l.Allow(t.Context(), "login:1.2.3.4:a@example.com")
	require.NoError(t, err)
	require.False(t, d.Allowed)
	require.InDelta(t, (57 * time.Second).Seconds(), d.RetryAfter.Seconds(), 1)

	// Once the first hit leaves the window there is room again
	now = now.Add(58 * time.Second)
	d, err = l.Allow(t.Context(), "login:1.2.3.4:a@example.com")
	require.NoError(t, err)
	require.True(t, d.Allowed)
}

func TestRedis_SharedAcrossInstances(t *testing.T) {
	client := setupRedis(t)

	// two app instances, same redis
	a := NewRedis(client, "flock:rl:", Config{Limit: 2, Window: time.Minute})
	b := NewRedis(client, "flock:rl:", Config{Limit: 2, Window: time.Minute})

	d, err := a.Allow(t.Context(), "register:10.0.0.1")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	d, err = b.Allow(t.Context(), "register:10.0.0.1")
	require.NoError(t, err)
	require.True(t, d.Allowed)
	d, err = a.Allow(t.Context(), "register:10.0.0.1")
	require.NoError(t, err)
	require.False(t, d.Allowed)
}
