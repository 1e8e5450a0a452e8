package domain

import "time"

type Plan string

const (
	PlanTrial    Plan = "trial"
	PlanStandard Plan = "standard"
	PlanPro      Plan = "pro"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanTrial, PlanStandard, PlanPro:
		return true
	}
	return false
}

// PlanLimits caps how many of each resource an organization may hold.
// Zero means unlimited.
type PlanLimits struct {
	People       int `json:"people" db:"limit_people"`
	Groups       int `json:"groups" db:"limit_groups"`
	ServicePlans int `json:"servicePlans" db:"limit_service_plans"`
}

// Limit returns the cap for a limited resource.
func (l PlanLimits) Limit(r LimitedResource) int {
	switch r {
	case ResourcePeople:
		return l.People
	case ResourceGroups:
		return l.Groups
	case ResourceServicePlans:
		return l.ServicePlans
	}
	return 0
}

// LimitedResource names a resource counted against the plan.
type LimitedResource string

const (
	ResourcePeople       LimitedResource = "people"
	ResourceGroups       LimitedResource = "groups"
	ResourceServicePlans LimitedResource = "servicePlans"
)

type Organization struct {
	ID          string     `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Plan        Plan       `json:"plan" db:"plan"`
	PlanLimits  `json:"limits"` // flattened into limit_* columns
	TrialEndsAt *time.Time `json:"trialEndsAt,omitempty" db:"trial_ends_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
