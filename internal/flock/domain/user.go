package domain

import (
	"fmt"
	"strings"
	"time"
)

type UserStatus string

const (
	UserActive      UserStatus = "active"
	UserDeactivated UserStatus = "deactivated"
	UserDeleted     UserStatus = "deleted"
)

type User struct {
	ID              string     `json:"id" db:"id"`
	OrgID           string     `json:"orgId" db:"org_id"`
	Email           string     `json:"email" db:"email"`
	Name            string     `json:"name" db:"name"`
	Role            Role       `json:"role" db:"role"`
	PasswordHash    string     `json:"-" db:"password_hash"` // argon2id PHC string
	Status          UserStatus `json:"status" db:"status"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty" db:"email_verified_at"`
	MFASecret       *string    `json:"-" db:"mfa_secret"`                          // base32 TOTP secret
	MFAEnabledAt    *time.Time `json:"mfaEnabledAt,omitempty" db:"mfa_enabled_at"` // nil until confirmed
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time  `json:"updatedAt" db:"updated_at"`
}

func (u User) IsActive() bool   { return u.Status == UserActive }
func (u User) MFAEnabled() bool { return u.MFAEnabledAt != nil }

// NormalizeEmail is the canonical form emails are stored and compared in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AnonymizedEmail is what a deleted account's email becomes. It keeps the
// unique index happy and can never receive mail.
func AnonymizedEmail(userID string) string {
	return fmt.Sprintf("deleted-%s@invalid", strings.ToLower(userID))
}
