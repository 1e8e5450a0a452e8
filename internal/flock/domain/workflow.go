package domain

import (
	"database/sql/driver"
	"time"
)

type WorkflowTrigger string

const (
	TriggerManual        WorkflowTrigger = "manual"
	TriggerPersonCreated WorkflowTrigger = "person_created"
)

type StepAction string

const (
	StepAddTag     StepAction = "add_tag"
	StepAddNote    StepAction = "add_note"
	StepAddToGroup StepAction = "add_to_group"
)

// WorkflowStep is one action applied to a person. Only the field matching
// Action is read.
type WorkflowStep struct {
	Action  StepAction `json:"action" validate:"required,oneof=add_tag add_note add_to_group"`
	TagID   string     `json:"tagId,omitempty" validate:"required_if=Action add_tag"`
	Note    string     `json:"note,omitempty" validate:"required_if=Action add_note,max=2000"`
	GroupID string     `json:"groupId,omitempty" validate:"required_if=Action add_to_group"`
}

type WorkflowSteps []WorkflowStep

func (s WorkflowSteps) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return jsonValue([]WorkflowStep(s))
}

func (s *WorkflowSteps) Scan(src any) error { return jsonScan(src, (*[]WorkflowStep)(s)) }

type Workflow struct {
	ID        string          `json:"id" db:"id"`
	OrgID     string          `json:"orgId" db:"org_id"`
	Name      string          `json:"name" db:"name"`
	Trigger   WorkflowTrigger `json:"trigger" db:"trigger_type"`
	Active    bool            `json:"active" db:"active"`
	Steps     WorkflowSteps   `json:"steps" db:"steps"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
