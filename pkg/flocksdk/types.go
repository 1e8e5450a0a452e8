package flocksdk

import "time"

// ============================================================================
// Auth
// ============================================================================

type RegisterRequest struct {
	OrgName    string `json:"orgName,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	InviteCode string `json:"inviteCode,omitempty"`
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	TOTPCode   string `json:"totpCode,omitempty"`
	BackupCode string `json:"backupCode,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// User is an account in an organization.
type User struct {
	ID              string     `json:"id"`
	OrgID           string     `json:"orgId"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Role            string     `json:"role"`
	Status          string     `json:"status"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt,omitempty"`
	MFAEnabledAt    *time.Time `json:"mfaEnabledAt,omitempty"`
	LastLoginAt     *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// SessionInfo is one of the signed in user's sessions.
type SessionInfo struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expiresAt"`
	UserAgent string    `json:"userAgent"`
	IPAddress string    `json:"ipAddress"`
	CreatedAt time.Time `json:"createdAt"`
	Current   bool      `json:"current"`
}

// ============================================================================
// Administration
// ============================================================================

type CreateInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Invite struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	InvitedBy  string     `json:"invitedBy"`
	ExpiresAt  time.Time  `json:"expiresAt"`
	AcceptedAt *time.Time `json:"acceptedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// CreatedInvite carries the plaintext code. It is only ever returned once.
type CreatedInvite struct {
	Invite Invite `json:"invite"`
	Code   string `json:"code"`
	Link   string `json:"link"`
}

type PlanLimits struct {
	People       int `json:"people"`
	Groups       int `json:"groups"`
	ServicePlans int `json:"servicePlans"`
}

type Organization struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Plan        string     `json:"plan"`
	Limits      PlanLimits `json:"limits"`
	TrialEndsAt *time.Time `json:"trialEndsAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ============================================================================
// People
// ============================================================================

type PersonInput struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	PreferredName string `json:"preferredName,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	BirthDate     string `json:"birthDate,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Status        string `json:"status,omitempty"`
}

type Person struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	PreferredName string    `json:"preferredName,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	BirthDate     string    `json:"birthDate,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	Status        string    `json:"status"`
	Tags          []Tag     `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PeopleQuery filters ListPeople. Zero values are ignored.
type PeopleQuery struct {
	Query  string
	Status string
	TagID  string
	Limit  int
	Offset int
}

type PeopleList struct {
	People []Person `json:"people"`
	Total  int      `json:"total"`
}

type MergeResult struct {
	Person Person `json:"person"`
	Report struct {
		Moved   map[string]int64 `json:"moved"`
		Skipped map[string]int64 `json:"skipped"`
	} `json:"report"`
}

type ImportReport struct {
	Imported int `json:"imported"`
	Errors   []struct {
		Row     int    `json:"row"`
		Message string `json:"message"`
	} `json:"errors"`
}

type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type GroupInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MeetingDay  string `json:"meetingDay,omitempty"`
	Location    string `json:"location,omitempty"`
}

type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MeetingDay  string    `json:"meetingDay"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ============================================================================
// System
// ============================================================================

type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error       string            `json:"error"`
	Fields      map[string]string `json:"fields,omitempty"`
	MFARequired bool              `json:"mfaRequired,omitempty"`
}
