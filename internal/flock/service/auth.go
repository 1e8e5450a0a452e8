package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/cryptox"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/ratelimit"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

// DefaultSessionTTL is how long a login lasts.
const DefaultSessionTTL = 7 * 24 * time.Hour

// ErrMFARequired is returned by Login when the password was right but the
// account needs a second factor. It is an ErrUnauthorized.
var ErrMFARequired = fmt.Errorf("%w: two-factor code required", ErrUnauthorized)

type AuthService struct {
	Deps
	MFA    *MFAService
	Mailer Mailer

	// LoginLimiter is keyed "login:<ip>:<email>", RegisterLimiter
	// "register:<ip>". Nil admits everything.
	LoginLimiter    ratelimit.Limiter
	RegisterLimiter ratelimit.Limiter

	AppURL        string
	SessionTTL    time.Duration
	DefaultLimits domain.PlanLimits
	TrialLength   time.Duration
}

// AuthResult is a signed in user and the session token to put in the cookie.
type AuthResult struct {
	User    domain.User
	Session domain.Session
	Token   string
}

type RegisterRequest struct {
	OrgName    string `json:"orgName" validate:"omitempty,max=120"`
	Name       string `json:"name" validate:"required,max=120"`
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required,min=8,max=256"`
	InviteCode string `json:"inviteCode" validate:"omitempty,max=64"`
}

type LoginRequest struct {
	Email      string `json:"email" validate:"required,max=254"`
	Password   string `json:"password" validate:"required,max=256"`
	TOTPCode   string `json:"totpCode" validate:"omitempty,max=10"`
	BackupCode string `json:"backupCode" validate:"omitempty,max=20"`
}

// Register creates an account. With an invite code it joins the inviting
// organization; without one it bootstraps the very first organization and
// its admin, which is only possible while no organization exists.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest, meta domain.ClientMeta) (AuthResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Rate limit by client address
	if err := s.limit(ctx, s.RegisterLimiter, "register", "register:"+meta.IPAddress); err != nil {
		return AuthResult{}, err
	}

	// 2. Validate before touching the store
	req.Email = domain.NormalizeEmail(req.Email)
	if err := check(req); err != nil {
		return AuthResult{}, err
	}

	// 3. Hash outside the transaction; it is slow on purpose
	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return AuthResult{}, err
	}

	// 4. Create the user (and maybe the organization) atomically
	var u domain.User
	if req.InviteCode != "" {
		u, err = s.acceptInvite(ctx, req, hash)
	} else {
		u, err = s.bootstrap(ctx, req, hash)
	}
	if err != nil {
		return AuthResult{}, err
	}

	// 5. Verification mail is best effort; the account exists either way
	if err := s.sendToken(ctx, u, domain.TokenEmailVerification); err != nil {
		log.Error("failed to send verification email", slog.String("user_id", u.ID), slog.Any("error", err))
	}

	// 6. Sign them in
	return s.startSession(ctx, u, meta)
}

func (s *AuthService) bootstrap(ctx context.Context, req RegisterRequest, hash string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	now := s.now()
	org := domain.Organization{
		ID:         idx.New().String(),
		Name:       req.OrgName,
		Plan:       domain.PlanTrial,
		PlanLimits: s.DefaultLimits,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if s.TrialLength > 0 {
		ends := now.Add(s.TrialLength)
		org.TrialEndsAt = &ends
	}
	u := domain.User{
		ID:           idx.New().String(),
		OrgID:        org.ID,
		Email:        req.Email,
		Name:         req.Name,
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		// counted inside the write transaction so two bootstraps cannot race
		n, err := tx.Organizations().Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Warn("registration without invite after bootstrap")
			return ErrInvalidInvite
		}
		// only asked for once it is clear this really is the first organization
		if req.OrgName == "" {
			return invalid("orgName", "is required")
		}

		if err := tx.Organizations().Create(ctx, org); err != nil {
			return fmt.Errorf("create organization: %w", err)
		}
		return tx.Users().Create(ctx, domain.SystemScope(org.ID), u)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, conflict("An account with that email already exists.")
		}
		return domain.User{}, err
	}

	log.Info("organization bootstrapped",
		slog.String("org_id", org.ID),
		slog.String("user_id", u.ID),
	)
	return u, nil
}

// acceptInvite turns a pending invite into a user. Every way the code can be
// wrong fails with the same ErrInvalidInvite.
func (s *AuthService) acceptInvite(ctx context.Context, req RegisterRequest, hash string) (domain.User, error) {
	log := slogx.FromContext(ctx)
	now := s.now()

	inv, err := s.Store.Invites().GetByCodeHash(ctx, cryptox.FingerprintToken(cryptox.NormalizeCode(req.InviteCode)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("registration with unknown invite code")
			return domain.User{}, ErrInvalidInvite
		}
		return domain.User{}, err
	}
	if inv.State(now) != domain.InvitePending {
		log.Warn("registration with spent invite", slog.String("invite_id", inv.ID))
		return domain.User{}, ErrInvalidInvite
	}
	if domain.NormalizeEmail(inv.Email) != req.Email {
		log.Warn("registration with invite for another email", slog.String("invite_id", inv.ID))
		return domain.User{}, ErrInvalidInvite
	}

	// the invite row is what tells us which tenant this is
	scope := domain.SystemScope(inv.OrgID)
	u := domain.User{
		ID:           idx.New().String(),
		OrgID:        inv.OrgID,
		Email:        req.Email,
		Name:         req.Name,
		Role:         inv.Role,
		PasswordHash: hash,
		Status:       domain.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.Invites().MarkAccepted(ctx, scope, inv.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidInvite
		}
		if err := tx.Users().Create(ctx, scope, u); err != nil {
			return err
		}
		return s.audit(ctx, tx, actor{user: u, scope: scope}, domain.AuditCreated, domain.EntityUser, u.ID, u)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, conflict("An account with that email already exists.")
		}
		return domain.User{}, err
	}

	log.Info("invite accepted",
		slog.String("invite_id", inv.ID),
		slog.String("user_id", u.ID),
		slog.String("org_id", inv.OrgID),
	)
	return u, nil
}

// Login checks credentials and starts a session. staleToken is whatever
// session cookie the browser still sent; its row is removed so an expired
// login does not linger.
func (s *AuthService) Login(ctx context.Context, req LoginRequest, meta domain.ClientMeta, staleToken string) (AuthResult, error) {
	log := slogx.FromContext(ctx)
	req.Email = domain.NormalizeEmail(req.Email)

	// 1. Rate limit by address and account together
	if err := s.limit(ctx, s.LoginLimiter, "login", "login:"+meta.IPAddress+":"+req.Email); err != nil {
		s.Metrics.ObserveLogin("rate_limited")
		return AuthResult{}, err
	}

	if err := check(req); err != nil {
		return AuthResult{}, err
	}

	// 2. Look the user up; unknown emails still pay for a hash
	u, err := s.Store.Users().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.BurnVerify(req.Password)
			s.Metrics.ObserveLogin("failure")
			return AuthResult{}, ErrUnauthorized
		}
		return AuthResult{}, err
	}

	// 3. Password, then account state
	if !cryptox.VerifyPassword(u.PasswordHash, req.Password) || !u.IsActive() {
		log.Warn("login failed", slog.String("user_id", u.ID))
		s.Metrics.ObserveLogin("failure")
		return AuthResult{}, ErrUnauthorized
	}

	// 4. Second factor
	if u.MFAEnabled() {
		if req.TOTPCode == "" && req.BackupCode == "" {
			s.Metrics.ObserveLogin("mfa_required")
			return AuthResult{}, ErrMFARequired
		}
		if err := s.MFA.VerifySecondFactor(ctx, u, req.TOTPCode, req.BackupCode); err != nil {
			log.Warn("login second factor failed", slog.String("user_id", u.ID))
			s.Metrics.ObserveLogin("failure")
			if errors.Is(err, ErrInvalidTOTPCode) {
				return AuthResult{}, ErrUnauthorized
			}
			return AuthResult{}, err
		}
	}

	// 5. Drop the cookie's old row, if any
	if staleToken != "" {
		if err := s.Store.Sessions().Delete(ctx, cryptox.FingerprintToken(staleToken)); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to delete stale session", slog.Any("error", err))
		}
	}

	res, err := s.startSession(ctx, u, meta)
	if err != nil {
		return AuthResult{}, err
	}
	s.Metrics.ObserveLogin("success")
	return res, nil
}

// startSession mints a session token, stores its fingerprint and records the
// login time.
func (s *AuthService) startSession(ctx context.Context, u domain.User, meta domain.ClientMeta) (AuthResult, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate session token: %w", err)
	}

	now := s.now()
	sess := domain.Session{
		ID:        cryptox.FingerprintToken(token),
		UserID:    u.ID,
		OrgID:     u.OrgID,
		ExpiresAt: now.Add(s.ttl()),
		UserAgent: truncate(meta.UserAgent, 512),
		IPAddress: meta.IPAddress,
		CreatedAt: now,
	}
	if err := s.Store.Sessions().Create(ctx, sess); err != nil {
		return AuthResult{}, fmt.Errorf("create session: %w", err)
	}
	if err := s.Store.Users().SetLastLogin(ctx, u.ID, now); err != nil {
		return AuthResult{}, fmt.Errorf("set last login: %w", err)
	}
	u.LastLoginAt = &now

	slogx.FromContext(ctx).Info("session started",
		slog.String("user_id", u.ID),
		slog.String("org_id", u.OrgID),
	)
	return AuthResult{User: u, Session: sess, Token: token}, nil
}

// Authenticate resolves a session cookie to its session and active user.
// An expired session is deleted on the spot.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Session, domain.User, error) {
	if token == "" {
		return domain.Session{}, domain.User{}, ErrUnauthorized
	}

	sess, err := s.Store.Sessions().Get(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, domain.User{}, ErrUnauthorized
		}
		return domain.Session{}, domain.User{}, err
	}

	if sess.Expired(s.now()) {
		if err := s.Store.Sessions().Delete(ctx, sess.ID); err != nil && !errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Error("failed to delete expired session", slog.Any("error", err))
		}
		return domain.Session{}, domain.User{}, ErrUnauthorized
	}

	u, err := s.Store.Users().GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, domain.User{}, ErrUnauthorized
		}
		return domain.Session{}, domain.User{}, err
	}
	if !u.IsActive() {
		return domain.Session{}, domain.User{}, ErrUnauthorized
	}
	return sess, u, nil
}

// Logout deletes the session behind token. Unknown tokens are fine.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.Store.Sessions().Delete(ctx, cryptox.FingerprintToken(token))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}
	return nil
}

// Sessions lists the caller's live sessions.
func (s *AuthService) Sessions(ctx context.Context) ([]domain.Session, error) {
	u, err := RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	all, err := s.Store.Sessions().ListForUser(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	live := make([]domain.Session, 0, len(all))
	for _, sess := range all {
		if !sess.Expired(now) {
			live = append(live, sess)
		}
	}
	return live, nil
}

// RevokeSession signs out one of the caller's own sessions.
func (s *AuthService) RevokeSession(ctx context.Context, id string) error {
	u, err := RequireAuth(ctx)
	if err != nil {
		return err
	}

	sess, err := s.Store.Sessions().Get(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if sess.UserID != u.ID {
		return ErrNotFound
	}
	return notFound(s.Store.Sessions().Delete(ctx, id))
}

func (s *AuthService) ttl() time.Duration {
	if s.SessionTTL <= 0 {
		return DefaultSessionTTL
	}
	return s.SessionTTL
}

// limit consults limiter and converts a refusal into a *RateLimitError. The
// limiter failing open keeps logins possible when Redis is down.
func (s *AuthService) limit(ctx context.Context, limiter ratelimit.Limiter, bucket, key string) error {
	if limiter == nil {
		return nil
	}

	d, err := limiter.Allow(ctx, key)
	if err != nil {
		slogx.FromContext(ctx).Error("rate limiter unavailable",
			slog.String("bucket", bucket),
			slog.Any("error", err),
		)
		return nil
	}
	if !d.Allowed {
		slogx.FromContext(ctx).Warn("rate limited", slog.String("bucket", bucket))
		s.Metrics.ObserveRateLimited(bucket)
		return &RateLimitError{RetryAfter: d.RetryAfter}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
