// Package ratelimit provides keyed request limiters with an in-process and a
// Redis backed implementation behind one interface.
package ratelimit

import (
	"context"
	"time"
)

// Decision is the outcome of a single Allow call. RetryAfter is only set when
// the request was refused.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter admits at most Limit events per Window for each key.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Config defines a limit of Limit events per Window.
type Config struct {
	Limit  int
	Window time.Duration
}

// Common profiles.
var (
	// LoginLimit guards credential checks, keyed by ip and email.
	LoginLimit = Config{Limit: 5, Window: 15 * time.Minute}

	// RegisterLimit guards account creation, keyed by ip.
	RegisterLimit = Config{Limit: 3, Window: time.Hour}

	// StrictLimit is for unauthenticated endpoints that send mail or check tokens.
	StrictLimit = Config{Limit: 5, Window: time.Minute}

	// ModerateLimit is for authenticated writes.
	ModerateLimit = Config{Limit: 120, Window: time.Minute}
)

// Unlimited admits everything. Handy in tests and for disabled buckets.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (Decision, error) {
	return Decision{Allowed: true}, nil
}
