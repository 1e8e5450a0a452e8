package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/cryptox"
	"github.com/aussiebroadwan/flock/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	backupCodeCount  = 10
	backupCodeLength = 10 // characters, shown as XXXXX-XXXXX
	totpPeriod       = 30
)

var (
	ErrMFANotEnrolled    = errors.New("two-factor authentication has not been set up")
	ErrMFANotEnabled     = errors.New("two-factor authentication is not enabled")
	ErrMFAAlreadyEnabled = errors.New("two-factor authentication is already enabled")
	ErrInvalidTOTPCode   = errors.New("invalid two-factor code")
)

var totpOpts = totp.ValidateOpts{
	Period:    totpPeriod,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

type MFAService struct {
	Deps
	Issuer string // shown in authenticator apps
}

// MFAEnrollment is what a user needs to add flock to an authenticator app.
type MFAEnrollment struct {
	Secret string `json:"secret"`
	URL    string `json:"otpauthUrl"`
}

// Enroll creates a new pending TOTP secret for the signed in user. It does
// not enable 2FA; Confirm does that once the user proves they saved it.
func (s *MFAService) Enroll(ctx context.Context) (MFAEnrollment, error) {
	log := slogx.FromContext(ctx)

	u, err := RequireAuth(ctx)
	if err != nil {
		return MFAEnrollment{}, err
	}
	if u.MFAEnabled() {
		return MFAEnrollment{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: u.Email,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return MFAEnrollment{}, fmt.Errorf("generate totp key: %w", err)
	}

	if err := s.Store.Users().SetMFASecret(ctx, u.ID, key.Secret(), s.now()); err != nil {
		log.Error("failed to store mfa secret", slog.Any("error", err))
		return MFAEnrollment{}, err
	}

	log.Info("mfa enrollment started")
	return MFAEnrollment{Secret: key.Secret(), URL: key.URL()}, nil
}

// Confirm checks a code against the pending secret, enables 2FA and returns
// a fresh set of backup codes. The codes are shown once.
func (s *MFAService) Confirm(ctx context.Context, code string) ([]string, error) {
	log := slogx.FromContext(ctx)

	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.MFAEnabled() {
		return nil, ErrMFAAlreadyEnabled
	}
	if u.MFASecret == nil {
		return nil, ErrMFANotEnrolled
	}
	if !s.validTOTP(code, *u.MFASecret) {
		log.Warn("mfa confirmation with invalid code")
		return nil, ErrInvalidTOTPCode
	}

	codes, hashes, err := newBackupCodes()
	if err != nil {
		return nil, err
	}

	now := s.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.BackupCodes().Replace(ctx, u.ID, hashes, now); err != nil {
			return fmt.Errorf("store backup codes: %w", err)
		}
		if err := tx.Users().EnableMFA(ctx, u.ID, now); err != nil {
			return fmt.Errorf("enable mfa: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to enable mfa", slog.Any("error", err))
		return nil, err
	}

	log.Info("mfa enabled")
	return codes, nil
}

// RegenerateBackupCodes replaces every backup code after a TOTP check.
func (s *MFAService) RegenerateBackupCodes(ctx context.Context, code string) ([]string, error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.requireCode(u, code); err != nil {
		return nil, err
	}

	codes, hashes, err := newBackupCodes()
	if err != nil {
		return nil, err
	}
	if err := s.Store.BackupCodes().Replace(ctx, u.ID, hashes, s.now()); err != nil {
		return nil, fmt.Errorf("store backup codes: %w", err)
	}

	slogx.FromContext(ctx).Info("mfa backup codes regenerated")
	return codes, nil
}

// Disable turns 2FA off after a TOTP check and drops the backup codes.
func (s *MFAService) Disable(ctx context.Context, code string) error {
	u, err := s.currentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.requireCode(u, code); err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.BackupCodes().DeleteForUser(ctx, u.ID); err != nil {
			return fmt.Errorf("delete backup codes: %w", err)
		}
		return tx.Users().DisableMFA(ctx, u.ID, s.now())
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("mfa disabled")
	return nil
}

// Status reports whether 2FA is on and how many backup codes remain.
func (s *MFAService) Status(ctx context.Context) (enabled bool, remaining int, err error) {
	u, err := s.currentUser(ctx)
	if err != nil {
		return false, 0, err
	}
	if !u.MFAEnabled() {
		return false, 0, nil
	}
	remaining, err = s.Store.BackupCodes().Count(ctx, u.ID)
	return true, remaining, err
}

// VerifySecondFactor checks a login's TOTP or backup code. A backup code is
// consumed when it matches.
func (s *MFAService) VerifySecondFactor(ctx context.Context, u domain.User, totpCode, backupCode string) error {
	switch {
	case totpCode != "":
		if u.MFASecret != nil && s.validTOTP(totpCode, *u.MFASecret) {
			return nil
		}
		return ErrInvalidTOTPCode
	case backupCode != "":
		ok, err := s.Store.BackupCodes().Consume(ctx, u.ID, cryptox.FingerprintToken(cryptox.NormalizeCode(backupCode)))
		if err != nil {
			return fmt.Errorf("consume backup code: %w", err)
		}
		if !ok {
			return ErrInvalidTOTPCode
		}
		slogx.FromContext(ctx).Info("backup code used", slog.String("user_id", u.ID))
		return nil
	default:
		return ErrInvalidTOTPCode
	}
}

// currentUser reloads the signed in user so pending secrets are fresh.
func (s *MFAService) currentUser(ctx context.Context) (domain.User, error) {
	u, err := RequireAuth(ctx)
	if err != nil {
		return domain.User{}, err
	}
	fresh, err := s.Store.Users().GetByID(ctx, u.ID)
	if err != nil {
		return domain.User{}, notFound(err)
	}
	return fresh, nil
}

func (s *MFAService) requireCode(u domain.User, code string) error {
	if !u.MFAEnabled() || u.MFASecret == nil {
		return ErrMFANotEnabled
	}
	if !s.validTOTP(code, *u.MFASecret) {
		return ErrInvalidTOTPCode
	}
	return nil
}

func (s *MFAService) validTOTP(code, secret string) bool {
	ok, err := totp.ValidateCustom(strings.TrimSpace(code), secret, s.now(), totpOpts)
	return err == nil && ok
}

// newBackupCodes returns the codes to show and the fingerprints to store.
func newBackupCodes() (codes, hashes []string, err error) {
	codes = make([]string, backupCodeCount)
	hashes = make([]string, backupCodeCount)
	for i := range backupCodeCount {
		c, err := cryptox.GenerateCode(backupCodeLength)
		if err != nil {
			return nil, nil, fmt.Errorf("generate backup code: %w", err)
		}
		codes[i] = c
		hashes[i] = cryptox.FingerprintToken(cryptox.NormalizeCode(c))
	}
	return codes, hashes, nil
}
