package service

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/ratelimit"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

var testMeta = domain.ClientMeta{UserAgent: "test-agent", IPAddress: "192.0.2.10"}

func (h *harness) auth() *AuthService {
	d := h.deps()
	return &AuthService{
		Deps:        d,
		MFA:         &MFAService{Deps: d, Issuer: "flock"},
		Mailer:      h.mail,
		AppURL:      "https://flock.test",
		TrialLength: 14 * 24 * time.Hour,
		DefaultLimits: domain.PlanLimits{
			People: 100, Groups: 10, ServicePlans: 20,
		},
	}
}

func (h *harness) invites() *InviteService {
	return &InviteService{Deps: h.deps(), Mailer: h.mail, AppURL: "https://flock.test"}
}

// mailedToken pulls the token query parameter out of the last message sent.
func (h *harness) mailedToken() string {
	h.t.Helper()

	msg, ok := h.mail.Last()
	require.True(h.t, ok, "no mail sent")
	_, rest, found := strings.Cut(msg.Body, "token=")
	require.True(h.t, found, "mail has no token link: %q", msg.Body)
	raw, _, _ := strings.Cut(rest, "\n")
	tok, err := url.QueryUnescape(raw)
	require.NoError(h.t, err)
	return tok
}

func TestRegisterBootstrapsFirstOrganization(t *testing.T) {
	h := newHarness(t)
	auth := h.auth()
	ctx := context.Background()

	res, err := auth.Register(ctx, RegisterRequest{
		OrgName:  "Grace Chapel",
		Name:     "Pastor Sam",
		Email:    "Sam@Example.org ",
		Password: testPassword,
	}, testMeta)
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, domain.RoleAdmin, res.User.Role)
	require.Equal(t, "sam@example.org", res.User.Email)

	org, err := h.store.Organizations().Get(ctx, domain.ScopeOf(res.User))
	require.NoError(t, err)
	require.Equal(t, "Grace Chapel", org.Name)
	require.Equal(t, domain.PlanTrial, org.Plan)
	require.Equal(t, 100, org.PlanLimits.People)
	require.NotNil(t, org.TrialEndsAt)

	msg, ok := h.mail.Last()
	require.True(t, ok)
	require.Equal(t, "sam@example.org", msg.To)
	require.Contains(t, msg.Body, "https://flock.test/verify-email?token=")

	t.Run("second registration without invite is refused", func(t *testing.T) {
		_, err := auth.Register(ctx, RegisterRequest{
			OrgName:  "Another Church",
			Name:     "Alex",
			Email:    "alex@example.org",
			Password: testPassword,
		}, testMeta)
		require.ErrorIs(t, err, ErrInvalidInvite)

		// no organization name still gets the same generic answer
		_, err = auth.Register(ctx, RegisterRequest{
			Name:     "Alex",
			Email:    "alex@example.org",
			Password: testPassword,
		}, testMeta)
		require.ErrorIs(t, err, ErrInvalidInvite)
		require.NotErrorIs(t, err, ErrValidation)

		n, err := h.store.Organizations().Count(ctx)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("organization name required", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.auth().Register(ctx, RegisterRequest{
			Name:     "Sam",
			Email:    "sam@example.org",
			Password: testPassword,
		}, testMeta)
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestRegisterWithInvite(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	auth := h.auth()

	created, err := h.invites().Create(as(admin), CreateInviteRequest{Email: "Leader@Example.org", Role: domain.RoleLeader})
	require.NoError(t, err)
	require.Contains(t, created.Link, "https://flock.test/register?invite=")

	t.Run("email must match the invite", func(t *testing.T) {
		_, err := auth.Register(context.Background(), RegisterRequest{
			Name:       "Someone Else",
			Email:      "other@example.org",
			Password:   testPassword,
			InviteCode: created.Code,
		}, testMeta)
		require.ErrorIs(t, err, ErrInvalidInvite)
	})

	res, err := auth.Register(context.Background(), RegisterRequest{
		Name:       "Lee",
		Email:      "leader@example.org",
		Password:   testPassword,
		InviteCode: strings.ToLower(created.Code),
	}, testMeta)
	require.NoError(t, err)
	require.Equal(t, org.ID, res.User.OrgID)
	require.Equal(t, domain.RoleLeader, res.User.Role)

	t.Run("invite is single use", func(t *testing.T) {
		_, err := auth.Register(context.Background(), RegisterRequest{
			Name:       "Lee Again",
			Email:      "leader@example.org",
			Password:   testPassword,
			InviteCode: created.Code,
		}, testMeta)
		require.ErrorIs(t, err, ErrInvalidInvite)
	})

	t.Run("expired invite is refused", func(t *testing.T) {
		late, err := h.invites().Create(as(admin), CreateInviteRequest{Email: "late@example.org", Role: domain.RoleMember})
		require.NoError(t, err)

		h.clock.Advance(DefaultInviteTTL + time.Minute)
		_, err = auth.Register(context.Background(), RegisterRequest{
			Name:       "Late",
			Email:      "late@example.org",
			Password:   testPassword,
			InviteCode: late.Code,
		}, testMeta)
		require.ErrorIs(t, err, ErrInvalidInvite)
	})
}

func TestInviteConflicts(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	invites := h.invites()

	_, err := invites.Create(as(admin), CreateInviteRequest{Email: "leader@example.org", Role: domain.RoleMember})
	require.ErrorIs(t, err, ErrConflict)

	inv, err := invites.Create(as(admin), CreateInviteRequest{Email: "new@example.org", Role: domain.RoleMember})
	require.NoError(t, err)

	_, err = invites.Create(as(admin), CreateInviteRequest{Email: "new@example.org", Role: domain.RoleViewer})
	require.ErrorIs(t, err, ErrConflict)

	_, err = invites.Create(as(leader), CreateInviteRequest{Email: "x@example.org", Role: domain.RoleMember})
	require.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, invites.Revoke(as(admin), inv.Invite.ID))
	list, err := invites.List(as(admin))
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestInviteDoesNotRevealOtherOrganizations(t *testing.T) {
	h := newHarness(t)
	orgA := h.org("Grace Chapel", domain.PlanLimits{})
	h.user(orgA, domain.RoleMember, "secret@a.test")
	orgB := h.org("Open Door", domain.PlanLimits{})
	adminB := h.user(orgB, domain.RoleAdmin, "admin@b.test")
	invites := h.invites()

	// an account in another tenant looks exactly like an unknown address
	taken, err := invites.Create(as(adminB), CreateInviteRequest{Email: "secret@a.test", Role: domain.RoleMember})
	require.NoError(t, err)
	_, err = invites.Create(as(adminB), CreateInviteRequest{Email: "nobody@a.test", Role: domain.RoleMember})
	require.NoError(t, err)

	// the clash only shows up for the invitee, and the invite stays usable
	_, err = h.auth().Register(context.Background(), RegisterRequest{
		Name:       "Secret",
		Email:      "secret@a.test",
		Password:   testPassword,
		InviteCode: taken.Code,
	}, testMeta)
	require.ErrorIs(t, err, ErrConflict)
	require.NotContains(t, err.Error(), "Open Door")

	list, err := invites.List(as(adminB))
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, inv := range list {
		require.Nil(t, inv.AcceptedAt)
	}

	users, err := h.store.Users().List(context.Background(), domain.ScopeOf(adminB))
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	auth := h.auth()
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Login(ctx, LoginRequest{Email: "admin@example.org", Password: "nope nope"}, testMeta, "")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := auth.Login(ctx, LoginRequest{Email: "ghost@example.org", Password: testPassword}, testMeta, "")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("success and authenticate", func(t *testing.T) {
		res, err := auth.Login(ctx, LoginRequest{Email: "ADMIN@example.org", Password: testPassword}, testMeta, "")
		require.NoError(t, err)
		require.Equal(t, admin.ID, res.User.ID)
		require.NotNil(t, res.User.LastLoginAt)

		sess, u, err := auth.Authenticate(ctx, res.Token)
		require.NoError(t, err)
		require.Equal(t, admin.ID, u.ID)
		require.Equal(t, "test-agent", sess.UserAgent)
	})

	t.Run("expired session is deleted when presented", func(t *testing.T) {
		res, err := auth.Login(ctx, LoginRequest{Email: "admin@example.org", Password: testPassword}, testMeta, "")
		require.NoError(t, err)

		h.clock.Advance(DefaultSessionTTL + time.Second)
		_, _, err = auth.Authenticate(ctx, res.Token)
		require.ErrorIs(t, err, ErrUnauthorized)

		_, err = h.store.Sessions().Get(ctx, res.Session.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("expired cookie row is replaced on login", func(t *testing.T) {
		first, err := auth.Login(ctx, LoginRequest{Email: "admin@example.org", Password: testPassword}, testMeta, "")
		require.NoError(t, err)

		// the row outlives its expiry until something touches it
		h.clock.Advance(DefaultSessionTTL + time.Second)
		_, err = h.store.Sessions().Get(ctx, first.Session.ID)
		require.NoError(t, err)

		second, err := auth.Login(ctx, LoginRequest{Email: "admin@example.org", Password: testPassword}, testMeta, first.Token)
		require.NoError(t, err)
		require.NotEqual(t, first.Token, second.Token)

		_, err = h.store.Sessions().Get(ctx, first.Session.ID)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, u, err := auth.Authenticate(ctx, second.Token)
		require.NoError(t, err)
		require.Equal(t, admin.ID, u.ID)
	})

	t.Run("deactivated user cannot sign in", func(t *testing.T) {
		member := h.user(org, domain.RoleMember, "member@example.org")
		users := &UserService{Deps: h.deps()}
		_, err := users.UpdateStatus(as(admin), member.ID, UpdateStatusRequest{Status: domain.UserDeactivated})
		require.NoError(t, err)

		_, err = auth.Login(ctx, LoginRequest{Email: "member@example.org", Password: testPassword}, testMeta, "")
		require.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestLoginRateLimited(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	h.user(org, domain.RoleAdmin, "admin@example.org")

	auth := h.auth()
	auth.LoginLimiter = ratelimit.NewMemory(ratelimit.Config{Limit: 2, Window: time.Hour})

	req := LoginRequest{Email: "admin@example.org", Password: "wrong password"}
	for range 2 {
		_, err := auth.Login(context.Background(), req, testMeta, "")
		require.ErrorIs(t, err, ErrUnauthorized)
	}

	_, err := auth.Login(context.Background(), req, testMeta, "")
	require.ErrorIs(t, err, ErrRateLimited)

	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	require.Positive(t, rl.RetryAfter)

	// another address has its own bucket
	other := testMeta
	other.IPAddress = "192.0.2.99"
	_, err = auth.Login(context.Background(), LoginRequest{Email: "admin@example.org", Password: testPassword}, other, "")
	require.NoError(t, err)
}

func TestLoginWithSecondFactor(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	auth := h.auth()
	ctx := context.Background()

	enrollment, err := auth.MFA.Enroll(as(admin))
	require.NoError(t, err)

	code := func() string {
		c, err := totp.GenerateCodeCustom(enrollment.Secret, h.clock.Now(), totp.ValidateOpts{
			Period:    30,
			Digits:    otp.DigitsSix,
			Algorithm: otp.AlgorithmSHA1,
		})
		require.NoError(t, err)
		return c
	}

	_, err = auth.MFA.Confirm(as(admin), "000000x")
	require.ErrorIs(t, err, ErrInvalidTOTPCode)

	backup, err := auth.MFA.Confirm(as(admin), code())
	require.NoError(t, err)
	require.Len(t, backup, backupCodeCount)

	req := LoginRequest{Email: "admin@example.org", Password: testPassword}

	_, err = auth.Login(ctx, req, testMeta, "")
	require.ErrorIs(t, err, ErrMFARequired)
	require.ErrorIs(t, err, ErrUnauthorized)

	withCode := req
	withCode.TOTPCode = code()
	_, err = auth.Login(ctx, withCode, testMeta, "")
	require.NoError(t, err)

	withBackup := req
	withBackup.BackupCode = strings.ToLower(backup[0])
	_, err = auth.Login(ctx, withBackup, testMeta, "")
	require.NoError(t, err)

	_, err = auth.Login(ctx, withBackup, testMeta, "")
	require.ErrorIs(t, err, ErrUnauthorized, "backup codes are single use")

	enabled, remaining, err := auth.MFA.Status(as(admin))
	require.NoError(t, err)
	require.True(t, enabled)
	require.Equal(t, backupCodeCount-1, remaining)
}

func TestPasswordReset(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	auth := h.auth()
	ctx := context.Background()

	session, err := auth.Login(ctx, LoginRequest{Email: "admin@example.org", Password: testPassword}, testMeta, "")
	require.NoError(t, err)

	require.NoError(t, auth.RequestPasswordReset(ctx, "nobody@example.org"))
	require.Empty(t, h.mail.Sent(), "unknown emails get no mail")

	require.NoError(t, auth.RequestPasswordReset(ctx, "admin@example.org"))
	token := h.mailedToken()

	err = auth.ResetPassword(ctx, ResetPasswordRequest{Token: token, Password: "a brand new password"})
	require.NoError(t, err)

	_, _, err = auth.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, ErrUnauthorized, "reset signs out everywhere")

	err = auth.ResetPassword(ctx, ResetPasswordRequest{Token: token, Password: "yet another password"})
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.Login(ctx, LoginRequest{Email: admin.Email, Password: "a brand new password"}, testMeta, "")
	require.NoError(t, err)

	t.Run("expired token", func(t *testing.T) {
		require.NoError(t, auth.RequestPasswordReset(ctx, "admin@example.org"))
		token := h.mailedToken()
		h.clock.Advance(domain.TokenPasswordReset.TTL() + time.Second)

		err := auth.ResetPassword(ctx, ResetPasswordRequest{Token: token, Password: "too late password"})
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifyEmail(t *testing.T) {
	h := newHarness(t)
	auth := h.auth()
	ctx := context.Background()

	res, err := auth.Register(ctx, RegisterRequest{
		OrgName: "Grace Chapel", Name: "Sam", Email: "sam@example.org", Password: testPassword,
	}, testMeta)
	require.NoError(t, err)

	require.NoError(t, auth.VerifyEmail(ctx, h.mailedToken()))

	u, err := h.store.Users().GetByID(ctx, res.User.ID)
	require.NoError(t, err)
	require.NotNil(t, u.EmailVerifiedAt)

	require.ErrorIs(t, auth.VerifyEmail(ctx, "not-a-token"), ErrInvalidToken)
	require.ErrorIs(t, auth.ResendVerification(as(u)), ErrConflict)
}

func TestSessionsAndRevoke(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	member := h.user(org, domain.RoleMember, "member@example.org")
	auth := h.auth()
	ctx := context.Background()

	mine, err := auth.Login(ctx, LoginRequest{Email: admin.Email, Password: testPassword}, testMeta, "")
	require.NoError(t, err)
	theirs, err := auth.Login(ctx, LoginRequest{Email: member.Email, Password: testPassword}, testMeta, "")
	require.NoError(t, err)

	sessions, err := auth.Sessions(as(admin))
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.ErrorIs(t, auth.RevokeSession(as(admin), theirs.Session.ID), ErrNotFound)
	require.NoError(t, auth.RevokeSession(as(admin), mine.Session.ID))

	_, _, err = auth.Authenticate(ctx, mine.Token)
	require.ErrorIs(t, err, ErrUnauthorized)
	_, _, err = auth.Authenticate(ctx, theirs.Token)
	require.NoError(t, err)
}

func TestDeleteAccount(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	member := h.user(org, domain.RoleMember, "member@example.org")
	auth := h.auth()

	err := auth.DeleteAccount(as(admin), testPassword)
	require.ErrorIs(t, err, ErrConflict, "last admin")

	require.ErrorIs(t, auth.DeleteAccount(as(member), "wrong"), ErrValidation)
	require.NoError(t, auth.DeleteAccount(as(member), testPassword))

	u, err := h.store.Users().GetByID(context.Background(), member.ID)
	require.NoError(t, err)
	require.Equal(t, domain.UserDeleted, u.Status)
	require.Equal(t, domain.AnonymizedEmail(member.ID), u.Email)

	_, err = auth.Login(context.Background(), LoginRequest{Email: member.Email, Password: testPassword}, testMeta, "")
	require.ErrorIs(t, err, ErrUnauthorized)
}
