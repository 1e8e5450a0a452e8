package domain

import "time"

type Group struct {
	ID          string    `json:"id" db:"id"`
	OrgID       string    `json:"orgId" db:"org_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	MeetingDay  string    `json:"meetingDay" db:"meeting_day"`
	Location    string    `json:"location" db:"location"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type GroupRole string

const (
	GroupLeader GroupRole = "leader"
	GroupMember GroupRole = "member"
)

func (r GroupRole) Valid() bool { return r == GroupLeader || r == GroupMember }

type GroupMembership struct {
	OrgID    string    `json:"-" db:"org_id"`
	GroupID  string    `json:"groupId" db:"group_id"`
	PersonID string    `json:"personId" db:"person_id"`
	Role     GroupRole `json:"role" db:"role"`
	JoinedAt time.Time `json:"joinedAt" db:"joined_at"`
}

type Attendance struct {
	OrgID       string `json:"-" db:"org_id"`
	GroupID     string `json:"groupId" db:"group_id"`
	PersonID    string `json:"personId" db:"person_id"`
	MeetingDate string `json:"meetingDate" db:"meeting_date"` // YYYY-MM-DD
	Present     bool   `json:"present" db:"present"`
}
