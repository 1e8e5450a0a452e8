package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Memory is a token bucket per key held in process memory. It is only
// correct for a single instance deployment.
type Memory struct {
	limiters sync.Map // map[string]*rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
	now         func() time.Time
}

// NewMemory returns a limiter that refills Limit tokens evenly over Window
// and allows the full Limit as a burst.
func NewMemory(cfg Config) *Memory {
	return &Memory{
		rate:        rate.Limit(float64(cfg.Limit) / cfg.Window.Seconds()),
		burst:       cfg.Limit,
		lastCleanup: time.Now(),
		now:         time.Now,
	}
}

func (m *Memory) Allow(_ context.Context, key string) (Decision, error) {
	limiter := m.limiter(key)
	now := m.now()

	reservation := limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return Decision{Allowed: false, RetryAfter: time.Second}, nil
	}

	delay := reservation.DelayFrom(now)
	if delay == 0 {
		return Decision{Allowed: true}, nil
	}

	// Give the token back, the caller is refused rather than delayed
	reservation.CancelAt(now)
	return Decision{Allowed: false, RetryAfter: delay}, nil
}

func (m *Memory) limiter(key string) *rate.Limiter {
	if limiter, ok := m.limiters.Load(key); ok {
		return limiter.(*rate.Limiter)
	}

	m.maybeCleanup()
	actual, _ := m.limiters.LoadOrStore(key, rate.NewLimiter(m.rate, m.burst))
	return actual.(*rate.Limiter)
}

// maybeCleanup drops limiters whose bucket is full again. A full bucket
// behaves exactly like a fresh one so nothing is lost.
func (m *Memory) maybeCleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastCleanup) < 5*time.Minute {
		return
	}
	m.lastCleanup = now

	m.limiters.Range(func(key, value any) bool {
		if value.(*rate.Limiter).TokensAt(now) >= float64(m.burst) {
			m.limiters.Delete(key)
		}
		return true
	})
}
