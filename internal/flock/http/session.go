package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/httpx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// SessionCookie is the cookie holding the opaque session token.
const SessionCookie = "flock_session"

type sessionKey struct{}

// sessionFrom returns the session the request was authenticated with.
func sessionFrom(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domain.Session)
	return s, ok
}

// cookies issues and clears the session cookie.
type cookies struct {
	secure bool
	ttl    time.Duration
}

func (c cookies) set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c cookies) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionToken returns the cookie's token or "".
func sessionToken(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// SessionMiddleware resolves the session cookie and stores the user on the
// request context. Requests without a live session get a 401 and never reach
// the handler.
func SessionMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sess, user, err := auth.Authenticate(ctx, sessionToken(r))
			if err != nil {
				if !errors.Is(err, service.ErrUnauthorized) {
					slogx.FromContext(ctx).Error("session lookup failed", "error", err)
				}
				writeError(w, r, service.ErrUnauthorized)
				return
			}

			ctx = service.WithPrincipal(ctx, user)
			ctx = context.WithValue(ctx, sessionKey{}, sess)
			ctx = slogx.WithPrincipal(ctx, user.ID, user.OrgID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalKey keys rate limits on the signed in user.
func principalKey(r *http.Request) string {
	u, ok := service.PrincipalFrom(r.Context())
	if !ok {
		return ""
	}
	return u.ID
}

func clientMeta(r *http.Request, trustProxy bool) domain.ClientMeta {
	return domain.ClientMeta{
		UserAgent: r.UserAgent(),
		IPAddress: httpx.ClientIP(r, trustProxy),
	}
}
