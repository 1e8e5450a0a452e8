package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/service"
	"github.com/aussiebroadwan/flock/internal/flock/store/drivers/sqlite"
	"github.com/aussiebroadwan/flock/pkg/cryptox"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/obs"
	"github.com/aussiebroadwan/flock/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse battery"

var (
	testHashOnce sync.Once
	testHash     string
)

func passwordHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		h, err := cryptox.HashPassword(testPassword)
		require.NoError(t, err)
		testHash = h
	})
	return testHash
}

type testServer struct {
	t       *testing.T
	store   *sqlite.Store
	router  *Router
	metrics *obs.Metrics
	mail    *service.MemoryMailer
}

// newTestServer wires every service against an in-memory database. Each
// tweak runs before routes are applied.
func newTestServer(t *testing.T, cfg Config, tweak ...func(*Router)) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	metrics := obs.New()
	deps := service.Deps{Store: st, Metrics: metrics}
	mail := &service.MemoryMailer{}
	mfa := &service.MFAService{Deps: deps, Issuer: "flock"}

	r, err := NewRouter(cfg, st, metrics, slogx.Discard())
	require.NoError(t, err)

	r.AuthService = &service.AuthService{
		Deps:          deps,
		MFA:           mfa,
		Mailer:        mail,
		AppURL:        "https://flock.test",
		DefaultLimits: domain.PlanLimits{People: 100, Groups: 10, ServicePlans: 20},
		TrialLength:   14 * 24 * time.Hour,
	}
	r.MFAService = mfa
	r.UserService = &service.UserService{Deps: deps}
	r.InviteService = &service.InviteService{Deps: deps, Mailer: mail, AppURL: "https://flock.test"}
	r.OrgService = &service.OrgService{Deps: deps}
	r.AuditService = &service.AuditService{Deps: deps}
	r.PeopleService = &service.PeopleService{Deps: deps}
	r.FieldService = &service.FieldService{Deps: deps}
	r.TagService = &service.TagService{Deps: deps}
	r.GroupService = &service.GroupService{Deps: deps}
	r.PlanService = &service.PlanService{Deps: deps}
	r.TemplateService = &service.TemplateService{Deps: deps}
	r.SongService = &service.SongService{Deps: deps}
	r.FormService = &service.FormService{Deps: deps}
	r.WorkflowService = &service.WorkflowService{Deps: deps}

	for _, fn := range tweak {
		fn(r)
	}
	r.ApplyRoutes()

	return &testServer{t: t, store: st, router: r, metrics: metrics, mail: mail}
}

// org creates an organization and an active user in it directly in the store.
func (s *testServer) org(name string, limits domain.PlanLimits, role domain.Role, email string) domain.User {
	s.t.Helper()
	ctx := context.Background()

	now := time.Now().UTC()
	o := domain.Organization{
		ID:         idx.New().String(),
		Name:       name,
		Plan:       domain.PlanStandard,
		PlanLimits: limits,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(s.t, s.store.Organizations().Create(ctx, o))
	return s.user(o.ID, role, email)
}

func (s *testServer) user(orgID string, role domain.Role, email string) domain.User {
	s.t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		OrgID:        orgID,
		Email:        email,
		Name:         string(role),
		Role:         role,
		PasswordHash: passwordHash(s.t),
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(s.t, s.store.Users().Create(context.Background(), domain.SystemScope(orgID), u))
	return u
}

// login signs u in through the API and returns the session cookie.
func (s *testServer) login(u domain.User) *http.Cookie {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    u.Email,
		"password": testPassword,
	}, nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(s.t, rec)
}

// do sends a JSON request through the full middleware chain.
func (s *testServer) do(method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return s.send(req)
}

func (s *testServer) send(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			return c
		}
	}
	require.FailNow(t, "no session cookie set")
	return nil
}

// decodeBody unmarshals the recorded body into a fresh T.
func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
