package domain

import "time"

type TokenKind string

const (
	TokenPasswordReset     TokenKind = "password_reset"
	TokenEmailVerification TokenKind = "email_verification"
)

// TTL is how long a token of this kind stays usable.
func (k TokenKind) TTL() time.Duration {
	switch k {
	case TokenPasswordReset:
		return time.Hour
	case TokenEmailVerification:
		return 24 * time.Hour
	}
	return 0
}

// UserToken is a single use, time boxed token mailed to a user.
type UserToken struct {
	ID        string     `db:"id"`
	Kind      TokenKind  `db:"kind"`
	UserID    string     `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	ExpiresAt time.Time  `db:"expires_at"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

func (t UserToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}

// BackupCode is one single use 2FA recovery code, stored as a fingerprint.
type BackupCode struct {
	UserID    string    `db:"user_id"`
	CodeHash  string    `db:"code_hash"`
	CreatedAt time.Time `db:"created_at"`
}
