package domain

import "time"

type PlanStatus string

const (
	PlanDraft     PlanStatus = "draft"
	PlanPublished PlanStatus = "published"
	PlanCompleted PlanStatus = "completed"
)

func (s PlanStatus) Valid() bool {
	switch s {
	case PlanDraft, PlanPublished, PlanCompleted:
		return true
	}
	return false
}

type ServicePlan struct {
	ID        string     `json:"id" db:"id"`
	OrgID     string     `json:"orgId" db:"org_id"`
	Title     string     `json:"title" db:"title"`
	Date      string     `json:"date" db:"date"` // YYYY-MM-DD
	Status    PlanStatus `json:"status" db:"status"`
	Notes     string     `json:"notes" db:"notes"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

type ItemKind string

const (
	ItemSong    ItemKind = "song"
	ItemReading ItemKind = "reading"
	ItemHeader  ItemKind = "header"
	ItemOther   ItemKind = "other"
)

func (k ItemKind) Valid() bool {
	switch k {
	case ItemSong, ItemReading, ItemHeader, ItemOther:
		return true
	}
	return false
}

type ServiceItem struct {
	ID              string    `json:"id" db:"id"`
	OrgID           string    `json:"-" db:"org_id"`
	PlanID          string    `json:"planId" db:"plan_id"`
	Kind            ItemKind  `json:"kind" db:"kind"`
	Title           string    `json:"title" db:"title"`
	SongID          *string   `json:"songId,omitempty" db:"song_id"`
	DurationSeconds int       `json:"durationSeconds" db:"duration_seconds"`
	Position        int       `json:"position" db:"position"`
	Notes           string    `json:"notes" db:"notes"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

type AssignmentStatus string

const (
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentConfirmed AssignmentStatus = "confirmed"
	AssignmentDeclined  AssignmentStatus = "declined"
)

func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentPending, AssignmentConfirmed, AssignmentDeclined:
		return true
	}
	return false
}

type ServiceAssignment struct {
	ID        string           `json:"id" db:"id"`
	OrgID     string           `json:"-" db:"org_id"`
	PlanID    string           `json:"planId" db:"plan_id"`
	PersonID  string           `json:"personId" db:"person_id"`
	Role      string           `json:"role" db:"role"` // e.g. "vocals", "sound"
	Status    AssignmentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time        `json:"updatedAt" db:"updated_at"`
}

// ServicePlanDetail is a plan with its running order and team.
type ServicePlanDetail struct {
	ServicePlan
	Items       []ServiceItem       `json:"items"`
	Assignments []ServiceAssignment `json:"assignments"`
}

// TotalDuration sums the item durations in seconds.
func (d ServicePlanDetail) TotalDuration() int {
	total := 0
	for _, it := range d.Items {
		total += it.DurationSeconds
	}
	return total
}
