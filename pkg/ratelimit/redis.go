package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/oklog/ulid/v2"
)

// slidingWindow keeps one sorted set per key holding the timestamps (ms) of
// admitted events. It returns {allowed, retry_after_ms}.
var slidingWindow = redis.NewScript(`
local key    = KEYS[1]
local now    = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit  = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count < limit then
  redis.call('ZADD', key, now, member)
  redis.call('PEXPIRE', key, window)
  return {1, 0}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local retry = window
if oldest[2] then
  retry = tonumber(oldest[2]) + window - now
end
return {0, retry}
`)

// Redis is a sliding window limiter shared by every instance pointed at the
// same Redis.
type Redis struct {
	client redis.UniversalClient
	cfg    Config
	prefix string
	now    func() time.Time
}

// NewRedis returns a limiter storing its windows under prefix.
func NewRedis(client redis.UniversalClient, prefix string, cfg Config) *Redis {
	return &Redis{client: client, cfg: cfg, prefix: prefix, now: time.Now}
}

func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	now := r.now()
	member := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String()

	res, err := slidingWindow.Run(ctx, r.client,
		[]string{r.prefix + key},
		now.UnixMilli(),
		r.cfg.Window.Milliseconds(),
		r.cfg.Limit,
		member,
	).Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: redis eval: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("ratelimit: unexpected script reply %v", res)
	}

	allowed, _ := res[0].(int64)
	retryMs, _ := res[1].(int64)
	if allowed == 1 {
		return Decision{Allowed: true}, nil
	}

	retry := max(time.Duration(retryMs)*time.Millisecond, time.Second)
	return Decision{Allowed: false, RetryAfter: retry}, nil
}
