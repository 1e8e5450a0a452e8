package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/flock/pkg/ratelimit"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// LimitObserver is notified whenever a request is refused.
type LimitObserver interface {
	ObserveRateLimited(bucket string)
}

// RateLimitMiddleware refuses requests once limiter says no for the key
// produced by keyExtractor. If the limiter itself fails the request is let
// through and the failure logged; a broken redis should not take the API down.
func RateLimitMiddleware(limiter ratelimit.Limiter, bucket string, keyExtractor KeyExtractor, obs LimitObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			key := keyExtractor(r)
			if key == "" {
				log.Warn("rate limit: unable to extract key, allowing request", "bucket", bucket)
				next.ServeHTTP(w, r)
				return
			}

			decision, err := limiter.Allow(ctx, bucket+":"+key)
			if err != nil {
				log.Error("rate limit: limiter failed, allowing request", "bucket", bucket, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				if obs != nil {
					obs.ObserveRateLimited(bucket)
				}
				log.Warn("rate limit exceeded",
					"bucket", bucket,
					"endpoint", r.URL.Path,
					"retry_after", decision.RetryAfter,
				)

				SetRetryAfter(w, decision.RetryAfter)
				WriteJSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
