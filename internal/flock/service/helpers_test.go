package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store/drivers/sqlite"
	"github.com/aussiebroadwan/flock/pkg/cryptox"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse battery"

var (
	testHashOnce sync.Once
	testHash     string
)

// passwordHash is computed once; argon2 is slow on purpose.
func passwordHash(t *testing.T) string {
	t.Helper()
	testHashOnce.Do(func() {
		h, err := cryptox.HashPassword(testPassword)
		require.NoError(t, err)
		testHash = h
	})
	return testHash
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type harness struct {
	t     *testing.T
	store *sqlite.Store
	clock *fakeClock
	mail  *MemoryMailer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	return &harness{
		t:     t,
		store: s,
		clock: &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		mail:  &MemoryMailer{},
	}
}

func (h *harness) deps() Deps {
	return Deps{Store: h.store, Clock: h.clock.Now}
}

func (h *harness) org(name string, limits domain.PlanLimits) domain.Organization {
	h.t.Helper()

	now := h.clock.Now()
	o := domain.Organization{
		ID:         idx.New().String(),
		Name:       name,
		Plan:       domain.PlanStandard,
		PlanLimits: limits,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(h.t, h.store.Organizations().Create(context.Background(), o))
	return o
}

func (h *harness) user(o domain.Organization, role domain.Role, email string) domain.User {
	h.t.Helper()

	now := h.clock.Now()
	u := domain.User{
		ID:           idx.New().String(),
		OrgID:        o.ID,
		Email:        email,
		Name:         string(role),
		Role:         role,
		PasswordHash: passwordHash(h.t),
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(h.t, h.store.Users().Create(context.Background(), domain.SystemScope(o.ID), u))
	return u
}

// as returns a context signed in as u.
func as(u domain.User) context.Context {
	return WithPrincipal(context.Background(), u)
}

func (h *harness) auditRows(o domain.Organization) []domain.AuditLog {
	h.t.Helper()

	rows, err := h.store.Audit().List(context.Background(), domain.SystemScope(o.ID), domain.AuditFilter{})
	require.NoError(h.t, err)
	return rows
}

func (h *harness) person(u domain.User, first, last string) domain.PersonDetail {
	h.t.Helper()

	svc := &PeopleService{Deps: h.deps()}
	p, err := svc.Create(as(u), PersonInput{FirstName: first, LastName: last})
	require.NoError(h.t, err)
	return p
}
