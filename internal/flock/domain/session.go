package domain

import "time"

// Session is a signed in browser. The ID is the fingerprint of the cookie
// token; the token itself is never stored.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	OrgID     string    `json:"orgId" db:"org_id"`
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`
	UserAgent string    `json:"userAgent" db:"user_agent"`
	IPAddress string    `json:"ipAddress" db:"ip_address"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ClientMeta describes where a session was created from.
type ClientMeta struct {
	UserAgent string
	IPAddress string
}
