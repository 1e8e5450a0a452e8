package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/cryptox"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required,max=128"`
	Password string `json:"password" validate:"required,min=8,max=256"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,max=256"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=256"`
}

// RequestPasswordReset mails a reset link when email belongs to an active
// user. It reports success either way so callers cannot probe for accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("password reset requested for unknown email")
			return nil
		}
		return err
	}
	if !u.IsActive() {
		log.Info("password reset requested for inactive user", slog.String("user_id", u.ID))
		return nil
	}

	if err := s.sendToken(ctx, u, domain.TokenPasswordReset); err != nil {
		log.Error("failed to send password reset", slog.String("user_id", u.ID), slog.Any("error", err))
		return err
	}
	return nil
}

// ResetPassword consumes a reset token, sets the new password and signs the
// user out everywhere, all in one transaction.
func (s *AuthService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	log := slogx.FromContext(ctx)

	if err := check(req); err != nil {
		return err
	}

	// 1. Resolve the token
	tok, err := s.usableToken(ctx, domain.TokenPasswordReset, req.Token)
	if err != nil {
		return err
	}

	// 2. Hash before the write transaction
	hash, err := cryptox.HashPassword(req.Password)
	if err != nil {
		return err
	}

	// 3. Spend the token, store the hash and revoke every session
	now := s.now()
	var revoked int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.UserTokens().MarkUsed(ctx, tok.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidToken
		}
		if err := tx.Users().UpdatePasswordHash(ctx, tok.UserID, hash, now); err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		revoked, err = tx.Sessions().DeleteForUser(ctx, tok.UserID)
		return err
	})
	if err != nil {
		return err
	}

	log.Info("password reset",
		slog.String("user_id", tok.UserID),
		slog.Int64("sessions_revoked", revoked),
	)
	return nil
}

// ChangePassword updates the signed in user's password and revokes every
// other session; keepSessionID stays signed in.
func (s *AuthService) ChangePassword(ctx context.Context, req ChangePasswordRequest, keepSessionID string) error {
	log := slogx.FromContext(ctx)

	u, err := RequireAuth(ctx)
	if err != nil {
		return err
	}
	if err := check(req); err != nil {
		return err
	}

	fresh, err := s.Store.Users().GetByID(ctx, u.ID)
	if err != nil {
		return notFound(err)
	}
	if !cryptox.VerifyPassword(fresh.PasswordHash, req.CurrentPassword) {
		return invalid("currentPassword", "is incorrect")
	}

	hash, err := cryptox.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	now := s.now()
	var revoked int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash, now); err != nil {
			return err
		}
		revoked, err = tx.Sessions().DeleteForUserExcept(ctx, u.ID, keepSessionID)
		return err
	})
	if err != nil {
		return err
	}

	log.Info("password changed", slog.Int64("sessions_revoked", revoked))
	return nil
}

// VerifyEmail consumes a verification token and marks the address verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	if token == "" {
		return ErrInvalidToken
	}

	tok, err := s.usableToken(ctx, domain.TokenEmailVerification, token)
	if err != nil {
		return err
	}

	now := s.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		ok, err := tx.UserTokens().MarkUsed(ctx, tok.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidToken
		}
		return tx.Users().MarkEmailVerified(ctx, tok.UserID, now)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("email verified", slog.String("user_id", tok.UserID))
	return nil
}

// ResendVerification mails a fresh verification link to the signed in user.
func (s *AuthService) ResendVerification(ctx context.Context) error {
	u, err := RequireAuth(ctx)
	if err != nil {
		return err
	}
	if u.EmailVerifiedAt != nil {
		return conflict("Your email address is already verified.")
	}
	return s.sendToken(ctx, u, domain.TokenEmailVerification)
}

// DeleteAccount anonymizes the signed in user after a password check and
// signs them out everywhere. The last active admin of an organization cannot
// delete themselves.
func (s *AuthService) DeleteAccount(ctx context.Context, password string) error {
	log := slogx.FromContext(ctx)

	u, err := RequireAuth(ctx)
	if err != nil {
		return err
	}

	fresh, err := s.Store.Users().GetByID(ctx, u.ID)
	if err != nil {
		return notFound(err)
	}
	if !cryptox.VerifyPassword(fresh.PasswordHash, password) {
		return invalid("password", "is incorrect")
	}

	a := actor{user: u, scope: domain.ScopeOf(u)}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if u.Role == domain.RoleAdmin {
			n, err := tx.Users().CountActiveAdmins(ctx, a.scope)
			if err != nil {
				return err
			}
			if n <= 1 {
				return conflict("You are the last admin. Promote someone else before deleting your account.")
			}
		}

		now := s.now()
		if err := tx.Users().Anonymize(ctx, a.scope, u.ID, now); err != nil {
			return err
		}
		if _, err := tx.Sessions().DeleteForUser(ctx, u.ID); err != nil {
			return err
		}
		if err := tx.BackupCodes().DeleteForUser(ctx, u.ID); err != nil {
			return err
		}
		return s.audit(ctx, tx, a, domain.AuditDeleted, domain.EntityUser, u.ID, map[string]string{"id": u.ID})
	})
	if err != nil {
		return err
	}

	log.Info("account deleted")
	return nil
}

// usableToken looks a mailed token up and checks it is unused and unexpired.
// Every failure is the same ErrInvalidToken.
func (s *AuthService) usableToken(ctx context.Context, kind domain.TokenKind, token string) (domain.UserToken, error) {
	tok, err := s.Store.UserTokens().GetByHash(ctx, kind, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserToken{}, ErrInvalidToken
		}
		return domain.UserToken{}, err
	}
	if !tok.Usable(s.now()) {
		return domain.UserToken{}, ErrInvalidToken
	}
	return tok, nil
}

// sendToken replaces any outstanding token of kind for u and mails the link.
func (s *AuthService) sendToken(ctx context.Context, u domain.User, kind domain.TokenKind) error {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}

	now := s.now()
	tok := domain.UserToken{
		ID:        idx.New().String(),
		Kind:      kind,
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(kind.TTL()),
		CreatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.UserTokens().DeleteForUser(ctx, u.ID, kind); err != nil {
			return err
		}
		return tx.UserTokens().Create(ctx, tok)
	})
	if err != nil {
		return fmt.Errorf("store %s token: %w", kind, err)
	}

	msg := Message{To: u.Email}
	switch kind {
	case domain.TokenPasswordReset:
		msg.Subject = "Reset your flock password"
		msg.Body = fmt.Sprintf("Use this link within the hour to choose a new password:\n\n%s/reset-password?token=%s\n",
			s.AppURL, url.QueryEscape(token))
	case domain.TokenEmailVerification:
		msg.Subject = "Verify your email address"
		msg.Body = fmt.Sprintf("Confirm your email address within 24 hours:\n\n%s/verify-email?token=%s\n",
			s.AppURL, url.QueryEscape(token))
	}

	if s.Mailer == nil {
		return nil
	}
	return s.Mailer.Send(ctx, msg)
}
