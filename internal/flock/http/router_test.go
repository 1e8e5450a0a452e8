package http

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roomy = domain.PlanLimits{People: 100, Groups: 10, ServicePlans: 10}

func TestRegisterLoginLogout(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})

	rec := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"orgName":  "Grace Chapel",
		"name":     "Ada",
		"email":    "ada@grace.test",
		"password": testPassword,
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.NotEmpty(t, cookie.Value)

	me := s.do(http.MethodGet, "/api/v1/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, me.Code, me.Body.String())
	body := decodeBody[UserResponse](t, me)
	assert.Equal(t, "ada@grace.test", body.User.Email)
	assert.Equal(t, domain.RoleAdmin, body.User.Role)
	assert.Empty(t, body.User.PasswordHash)

	rec = s.do(http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusNoContent, rec.Code)
	cleared := sessionCookie(t, rec)
	assert.Negative(t, cleared.MaxAge)

	rec = s.do(http.MethodGet, "/api/v1/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSecondBootstrapIsRefused(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})
	s.org("Grace Chapel", roomy, domain.RoleAdmin, "ada@grace.test")

	rec := s.do(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Eve",
		"email":    "eve@elsewhere.test",
		"password": testPassword,
	}, nil)
	assert.GreaterOrEqual(t, rec.Code, 400)
	assert.Less(t, rec.Code, 500)
}

func TestMissingSession(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})

	tests := []struct {
		name   string
		method string
		path   string
		cookie *http.Cookie
	}{
		{"no cookie read", http.MethodGet, "/api/v1/people", nil},
		{"no cookie write", http.MethodPost, "/api/v1/tags", nil},
		{"unknown token", http.MethodGet, "/api/v1/auth/me", &http.Cookie{Name: SessionCookie, Value: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, nil, tt.cookie)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Unauthorized", decodeBody[ErrorResponse](t, rec).Error)
		})
	}
}

func TestWrongPassword(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})
	s.org("Grace Chapel", roomy, domain.RoleAdmin, "ada@grace.test")

	rec := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "ada@grace.test",
		"password": "not the password",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestPeopleCreateAndPlanLimit(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})
	admin := s.org("Small Church", domain.PlanLimits{People: 2, Groups: 1, ServicePlans: 1}, domain.RoleAdmin, "admin@small.test")
	cookie := s.login(admin)

	for _, name := range []string{"Anna", "Ben"} {
		rec := s.do(http.MethodPost, "/api/v1/people", map[string]string{"firstName": name, "lastName": "Smith"}, cookie)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		p := decodeBody[PersonResponse](t, rec)
		assert.Equal(t, name, p.Person.FirstName)
		assert.NotEmpty(t, p.Person.ID)
	}

	rec := s.do(http.MethodPost, "/api/v1/people", map[string]string{"firstName": "Cara", "lastName": "Smith"}, cookie)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, decodeBody[ErrorResponse](t, rec).Error, "2 people")

	rec = s.do(http.MethodGet, "/api/v1/people", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[PeopleResponse](t, rec)
	assert.Equal(t, 2, list.Total)
	assert.Len(t, list.People, 2)
}

func TestRequestBodyErrors(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})
	admin := s.org("Grace Chapel", roomy, domain.RoleAdmin, "ada@grace.test")
	cookie := s.login(admin)

	t.Run("missing fields", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/people", "{}", cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody[ErrorResponse](t, rec)
		assert.Equal(t, "Validation failed", body.Error)
		assert.Contains(t, body.Fields, "firstName")
		assert.Contains(t, body.Fields, "lastName")
	})

	t.Run("unknown field", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/people", `{"firstName":"A","lastName":"B","shoeSize":9}`, cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON body", decodeBody[ErrorResponse](t, rec).Error)
	})

	t.Run("not json", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/api/v1/people", "firstName=A", cookie)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid JSON body", decodeBody[ErrorResponse](t, rec).Error)
	})

	t.Run("bad paging", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/v1/people?limit=-1", nil, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTenantIsolation(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})
	alice := s.org("Grace Chapel", roomy, domain.RoleAdmin, "alice@grace.test")
	mallory := s.org("Other Church", roomy, domain.RoleAdmin, "mallory@other.test")
	aliceCookie := s.login(alice)
	malloryCookie := s.login(mallory)

	rec := s.do(http.MethodPost, "/api/v1/people", map[string]string{"firstName": "Anna", "lastName": "Smith"}, aliceCookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeBody[PersonResponse](t, rec).Person.ID

	rec = s.do(http.MethodGet, "/api/v1/people/"+id, nil, malloryCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodPatch, "/api/v1/people/"+id, map[string]string{"firstName": "Hacked", "lastName": "Smith"}, malloryCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/people/"+id, nil, malloryCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/people", nil, malloryCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decodeBody[PeopleResponse](t, rec).Total)

	rec = s.do(http.MethodGet, "/api/v1/people/"+id, nil, aliceCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Anna", decodeBody[PersonResponse](t, rec).Person.FirstName)
}

func TestDuplicateCustomFieldIsConflict(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})
	admin := s.org("Grace Chapel", roomy, domain.RoleAdmin, "admin@grace.test")
	cookie := s.login(admin)

	body := map[string]string{"name": "Shirt", "type": "text"}
	rec := s.do(http.MethodPost, "/api/v1/fields", body, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/fields", body, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, `A field named "Shirt" already exists.`, decodeBody[ErrorResponse](t, rec).Error)
}

func TestViewerCannotWrite(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})
	admin := s.org("Grace Chapel", roomy, domain.RoleAdmin, "ada@grace.test")
	viewer := s.user(admin.OrgID, domain.RoleViewer, "vic@grace.test")
	cookie := s.login(viewer)

	rec := s.do(http.MethodGet, "/api/v1/people", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/people", map[string]string{"firstName": "Anna", "lastName": "Smith"}, cookie)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", decodeBody[ErrorResponse](t, rec).Error)

	rec = s.do(http.MethodGet, "/api/v1/audit", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestWriteRateLimit(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"}, func(r *Router) {
		r.ModerateLimiter = ratelimit.NewMemory(ratelimit.Config{Limit: 1, Window: time.Minute})
	})
	admin := s.org("Grace Chapel", roomy, domain.RoleAdmin, "ada@grace.test")
	cookie := s.login(admin)

	rec := s.do(http.MethodPost, "/api/v1/tags", map[string]string{"name": "Youth"}, cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/v1/tags", map[string]string{"name": "Choir"}, cookie)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// reads are not limited
	rec = s.do(http.MethodGet, "/api/v1/tags", nil, cookie)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, s.scrape(), `flock_rate_limited_total{bucket="write"} 1`)
}

func TestCrossOriginWriteRejected(t *testing.T) {
	s := newTestServer(t, Config{Version: "test", CORSOrigins: []string{"https://app.grace.test"}})
	admin := s.org("Grace Chapel", roomy, domain.RoleAdmin, "ada@grace.test")
	cookie := s.login(admin)

	post := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tags", strings.NewReader(`{"name":"Youth"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Origin", origin)
		req.Header.Set("Sec-Fetch-Site", "cross-site")
		req.AddCookie(cookie)
		return s.send(req)
	}

	assert.Equal(t, http.StatusForbidden, post("https://evil.test").Code)
	assert.Equal(t, http.StatusCreated, post("https://app.grace.test").Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{Version: "1.2.3"})

	rec := s.do(http.MethodGet, "/livez", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	live := decodeBody[HealthResponse](t, rec)
	assert.Equal(t, "ok", live.Status)
	assert.Equal(t, "1.2.3", live.Version)

	rec = s.do(http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody[HealthResponse](t, rec).Checks["database"])

	s.router.AddReadyCheck("cache", func(context.Context) error { return errors.New("connection refused") })

	rec = s.do(http.MethodGet, "/readyz", nil, nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	ready := decodeBody[HealthResponse](t, rec)
	assert.Equal(t, "degraded", ready.Status)
	assert.Equal(t, "ok", ready.Checks["database"])
	assert.Contains(t, ready.Checks["cache"], "connection refused")
}

func TestPeopleCSVRoundTrip(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})
	admin := s.org("Grace Chapel", roomy, domain.RoleAdmin, "ada@grace.test")
	cookie := s.login(admin)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "people.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte("firstName,lastName,email\nAnna,Smith,anna@grace.test\n,Nobody,\nBen,Jones,\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/people/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	rec := s.send(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rep := decodeBody[ImportResponse](t, rec).Import
	assert.Equal(t, 2, rep.Imported)
	require.Len(t, rep.Errors, 1)
	assert.Equal(t, 3, rep.Errors[0].Row)

	rec = s.do(http.MethodGet, "/api/v1/people/export", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/csv"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "people.csv")

	out := rec.Body.String()
	assert.Contains(t, out, "firstName,lastName,email")
	assert.Contains(t, out, "Anna,Smith,anna@grace.test")
	assert.Contains(t, out, "Ben,Jones")
}

func TestImportWithoutFile(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})
	admin := s.org("Grace Chapel", roomy, domain.RoleAdmin, "ada@grace.test")
	cookie := s.login(admin)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("other", "x"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/people/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)
	rec := s.send(req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[ErrorResponse](t, rec).Fields, "file")
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t, Config{Version: "test"})

	s.do(http.MethodGet, "/livez", nil, nil)

	out := s.scrape()
	assert.Contains(t, out, "flock_http_requests_total")
	assert.Contains(t, out, `route="GET /livez"`)
}

func (s *testServer) scrape() string {
	s.t.Helper()
	rec := s.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(s.t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"validation", &service.ValidationError{Fields: map[string]string{"name": "is required"}}, http.StatusBadRequest, "Validation failed"},
		{"mfa required", service.ErrMFARequired, http.StatusUnauthorized, "Two-factor code required"},
		{"unauthorized", service.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"plan limit", &service.PlanLimitError{Resource: domain.ResourceGroups, Limit: 3}, http.StatusForbidden, "Plan limit reached: your plan allows 3 groups. Upgrade to add more."},
		{"permission", service.ErrPermissionDenied, http.StatusForbidden, "Forbidden"},
		{"not found", service.ErrNotFound, http.StatusNotFound, "Not found"},
		{"conflict", &service.ConflictError{Message: "email already in use"}, http.StatusBadRequest, "email already in use"},
		{"invite", service.ErrInvalidInvite, http.StatusBadRequest, "Invalid or expired invite"},
		{"totp", service.ErrInvalidTOTPCode, http.StatusBadRequest, "Invalid two-factor code"},
		{"rate limited", &service.RateLimitError{RetryAfter: 30 * time.Second}, http.StatusTooManyRequests, "Too many requests. Please try again later."},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody[ErrorResponse](t, rec)
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, errors.Is(tt.err, service.ErrMFARequired), body.MFARequired)
		})
	}

	rec := httptest.NewRecorder()
	writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), &service.RateLimitError{RetryAfter: 30 * time.Second})
	assert.Equal(t, "30", rec.Header().Get("Retry-After"))
}
