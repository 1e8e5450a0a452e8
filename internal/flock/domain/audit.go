package domain

import (
	"encoding/json"
	"time"
)

type AuditAction string

const (
	AuditCreated   AuditAction = "created"
	AuditUpdated   AuditAction = "updated"
	AuditDeleted   AuditAction = "deleted"
	AuditMerged    AuditAction = "merged"
	AuditReordered AuditAction = "reordered"
	AuditImported  AuditAction = "imported"
)

// Entity types as they appear in the audit log.
const (
	EntityPerson       = "person"
	EntityPersonNote   = "person_note"
	EntityCustomField  = "custom_field"
	EntityGroup        = "group"
	EntityServicePlan  = "service_plan"
	EntityServiceItem  = "service_item"
	EntityAssignment   = "service_assignment"
	EntitySong         = "song"
	EntityTag          = "tag"
	EntityTemplate     = "service_template"
	EntityForm         = "form"
	EntitySubmission   = "form_submission"
	EntityWorkflow     = "workflow"
	EntityUser         = "user"
	EntityInvite       = "invite"
	EntityOrganization = "organization"
)

// AuditLog is an append only record of one mutation.
type AuditLog struct {
	ID         string          `json:"id" db:"id"`
	OrgID      string          `json:"orgId" db:"org_id"`
	ActorID    string          `json:"actorId" db:"actor_id"`
	Action     AuditAction     `json:"action" db:"action"`
	EntityType string          `json:"entityType" db:"entity_type"`
	EntityID   string          `json:"entityId" db:"entity_id"`
	Changes    json.RawMessage `json:"changes" db:"changes"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
}

// Diff is the {old,new} document stored for updates.
type Diff struct {
	Old any `json:"old,omitempty"`
	New any `json:"new,omitempty"`
}

// AuditFilter narrows an audit listing.
type AuditFilter struct {
	EntityType string
	EntityID   string
	ActorID    string
	Page
}
