package domain

import "time"

type InviteState string

const (
	InvitePending  InviteState = "pending"
	InviteAccepted InviteState = "accepted"
	InviteExpired  InviteState = "expired"
)

type Invite struct {
	ID         string     `json:"id" db:"id"`
	OrgID      string     `json:"orgId" db:"org_id"`
	Email      string     `json:"email" db:"email"`
	Role       Role       `json:"role" db:"role"`
	CodeHash   string     `json:"-" db:"code_hash"`
	InvitedBy  string     `json:"invitedBy" db:"invited_by"`
	ExpiresAt  time.Time  `json:"expiresAt" db:"expires_at"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty" db:"accepted_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

// State derives the invite state. Accepted wins over expired.
func (i Invite) State(now time.Time) InviteState {
	switch {
	case i.AcceptedAt != nil:
		return InviteAccepted
	case !now.Before(i.ExpiresAt):
		return InviteExpired
	default:
		return InvitePending
	}
}
