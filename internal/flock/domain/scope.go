package domain

// Scope is the tenant predicate every org-owned query is filtered by. The
// field is unexported so the only ways to get a non-zero Scope are ScopeOf
// and SystemScope; a store handed the zero value refuses to run.
type Scope struct {
	orgID string
}

// ScopeOf returns the scope of an authenticated user.
func ScopeOf(u User) Scope {
	return Scope{orgID: u.OrgID}
}

// SystemScope is for flows that found the organization through a trusted
// record rather than a session: bootstrap, invite acceptance and background
// jobs.
func SystemScope(orgID string) Scope {
	return Scope{orgID: orgID}
}

func (s Scope) OrgID() string { return s.orgID }
func (s Scope) IsZero() bool  { return s.orgID == "" }

// Owns reports whether a row with the given org id is visible in this scope.
func (s Scope) Owns(orgID string) bool {
	return !s.IsZero() && s.orgID == orgID
}
