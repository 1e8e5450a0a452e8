package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/flock/pkg/httpx"
	"github.com/aussiebroadwan/flock/pkg/ratelimit"
	"github.com/stretchr/testify/require"
)

func TestClientIP(t *testing.T) {
	t.Run("uses RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.ClientIP(req, false))
	})

	t.Run("ignores X-Forwarded-For unless trusted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")

		require.Equal(t, "192.168.1.1", httpx.ClientIP(req, false))
		require.Equal(t, "203.0.113.1", httpx.ClientIP(req, true))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")

		require.Equal(t, "203.0.113.2", httpx.ClientIP(req, true))
	})

	t.Run("RemoteAddr without port", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.9"
		require.Equal(t, "10.0.0.9", httpx.ClientIP(req, false))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?email=a@example.com", nil)
	req.RemoteAddr = "192.168.1.1:12345"

	extractor := httpx.CompositeKeyExtractor(":",
		httpx.IPKeyExtractor(false),
		func(r *http.Request) string { return r.URL.Query().Get("email") },
		func(*http.Request) string { return "" }, // skipped
	)
	require.Equal(t, "192.168.1.1:a@example.com", extractor(req))

	prefixed := httpx.PrefixKeyExtractor("register:", httpx.IPKeyExtractor(false))
	require.Equal(t, "register:192.168.1.1", prefixed(req))
}

type countingObserver struct{ buckets []string }

func (c *countingObserver) ObserveRateLimited(bucket string) { c.buckets = append(c.buckets, bucket) }

func TestRateLimitMiddleware(t *testing.T) {
	limiter := ratelimit.NewMemory(ratelimit.Config{Limit: 2, Window: time.Minute})
	obs := &countingObserver{}

	h := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }),
		httpx.RateLimitMiddleware(limiter, "api", httpx.IPKeyExtractor(false), obs),
	)

	do := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusNoContent, do("1.1.1.1:1").Code)
	require.Equal(t, http.StatusNoContent, do("1.1.1.1:2").Code)

	rec := do("1.1.1.1:3")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Contains(t, rec.Body.String(), "Too many requests")
	require.Equal(t, []string{"api"}, obs.buckets)

	// Different client is unaffected
	require.Equal(t, http.StatusNoContent, do("2.2.2.2:1").Code)
}

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (ratelimit.Decision, error) {
	return ratelimit.Decision{}, errors.New("redis: connection refused")
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	h := httpx.RateLimitMiddleware(brokenLimiter{}, "api", httpx.IPKeyExtractor(false), nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }),
		mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	decode := func(raw string) (body, error) {
		var b body
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		err := httpx.DecodeJSON(httptest.NewRecorder(), req, &b)
		return b, err
	}

	b, err := decode(`{"name":"Grace"}`)
	require.NoError(t, err)
	require.Equal(t, "Grace", b.Name)

	for _, raw := range []string{`{"name":`, `{"nope":1}`, `{"name":"a"}{"name":"b"}`, ``} {
		_, err := decode(raw)
		require.ErrorIs(t, err, httpx.ErrMalformedBody, "input %q", raw)
	}
}

func TestSetRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.SetRetryAfter(rec, 1500*time.Millisecond)
	require.Equal(t, "2", rec.Header().Get("Retry-After"))

	rec = httptest.NewRecorder()
	httpx.SetRetryAfter(rec, 0)
	require.Equal(t, "1", rec.Header().Get("Retry-After"))
}
