package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrNoScope is returned by every tenant owned query handed a zero
	// domain.Scope. It always indicates a programming error.
	ErrNoScope = errors.New("store: missing tenant scope")
)

// Store is the root data access interface. Concrete drivers implement this.
// It exposes sub-repositories to keep concerns tidy and testable, and so a
// Tx can hand out the same repositories bound to the transaction.
//
// Every repository method on organization owned data takes a domain.Scope.
// Reads, updates and deletes filter on its org id, creates stamp it.
type Store interface {
	Organizations() Organizations
	Users() Users
	Sessions() Sessions
	Invites() Invites
	UserTokens() UserTokens
	BackupCodes() BackupCodes
	Audit() Audit

	People() People
	Tags() Tags
	CustomFields() CustomFields
	Groups() Groups
	ServicePlans() ServicePlans
	Songs() Songs
	Templates() Templates
	Forms() Forms
	Workflows() Workflows

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Inside fn only use tx, never the
	// outer store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Organizations interface {
	// Count returns how many organizations exist at all; bootstrap is only
	// possible while it is zero.
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, o domain.Organization) error
	Get(ctx context.Context, s domain.Scope) (domain.Organization, error)
	UpdateName(ctx context.Context, s domain.Scope, name string, now time.Time) error
	SetPlan(ctx context.Context, s domain.Scope, plan domain.Plan, limits domain.PlanLimits, now time.Time) error

	// CountResource counts the rows a plan limit applies to.
	CountResource(ctx context.Context, s domain.Scope, r domain.LimitedResource) (int, error)
}

type Users interface {
	Create(ctx context.Context, s domain.Scope, u domain.User) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.User, error)
	GetByEmailInScope(ctx context.Context, s domain.Scope, email string) (domain.User, error)
	List(ctx context.Context, s domain.Scope) ([]domain.User, error)
	CountActiveAdmins(ctx context.Context, s domain.Scope) (int, error)
	UpdateRole(ctx context.Context, s domain.Scope, id string, role domain.Role, now time.Time) error
	UpdateStatus(ctx context.Context, s domain.Scope, id string, status domain.UserStatus, now time.Time) error
	Anonymize(ctx context.Context, s domain.Scope, id string, now time.Time) error

	// The lookups below resolve a principal before any tenant is known.

	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateName(ctx context.Context, id, name string, now time.Time) error
	UpdatePasswordHash(ctx context.Context, id, hash string, now time.Time) error
	SetLastLogin(ctx context.Context, id string, now time.Time) error
	MarkEmailVerified(ctx context.Context, id string, now time.Time) error

	// SetMFASecret stores a pending TOTP secret; EnableMFA confirms it.
	SetMFASecret(ctx context.Context, id, secret string, now time.Time) error
	EnableMFA(ctx context.Context, id string, now time.Time) error
	DisableMFA(ctx context.Context, id string, now time.Time) error
}

type Sessions interface {
	Create(ctx context.Context, sess domain.Session) error
	Get(ctx context.Context, id string) (domain.Session, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteForUser(ctx context.Context, userID string) (int64, error)
	DeleteForUserExcept(ctx context.Context, userID, keepID string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type Invites interface {
	Create(ctx context.Context, s domain.Scope, inv domain.Invite) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.Invite, error)
	List(ctx context.Context, s domain.Scope) ([]domain.Invite, error)
	Delete(ctx context.Context, s domain.Scope, id string) error
	HasPending(ctx context.Context, s domain.Scope, email string, now time.Time) (bool, error)

	// MarkAccepted only succeeds once; it reports false when the invite was
	// already accepted by someone else.
	MarkAccepted(ctx context.Context, s domain.Scope, id string, now time.Time) (bool, error)

	// GetByCodeHash looks an invite up by the fingerprint of its code. The
	// invite row is what establishes the tenant for acceptance.
	GetByCodeHash(ctx context.Context, hash string) (domain.Invite, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type UserTokens interface {
	Create(ctx context.Context, t domain.UserToken) error
	GetByHash(ctx context.Context, kind domain.TokenKind, hash string) (domain.UserToken, error)
	MarkUsed(ctx context.Context, id string, now time.Time) (bool, error)
	DeleteForUser(ctx context.Context, userID string, kind domain.TokenKind) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type BackupCodes interface {
	// Replace drops any existing codes for the user and stores hashes.
	Replace(ctx context.Context, userID string, hashes []string, now time.Time) error
	// Consume deletes the code if present and reports whether it was.
	Consume(ctx context.Context, userID, hash string) (bool, error)
	Count(ctx context.Context, userID string) (int, error)
	DeleteForUser(ctx context.Context, userID string) error
}

type Audit interface {
	Append(ctx context.Context, s domain.Scope, entry domain.AuditLog) error
	List(ctx context.Context, s domain.Scope, f domain.AuditFilter) ([]domain.AuditLog, error)
}

type People interface {
	Create(ctx context.Context, s domain.Scope, p domain.Person) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.Person, error)
	Detail(ctx context.Context, s domain.Scope, id string) (domain.PersonDetail, error)
	List(ctx context.Context, s domain.Scope, f domain.PersonFilter) ([]domain.Person, int, error)
	Update(ctx context.Context, s domain.Scope, p domain.Person) error
	Delete(ctx context.Context, s domain.Scope, id string) error

	// ReplaceContacts swaps the person's phones, emails, addresses and
	// emergency contacts for the given set.
	ReplaceContacts(ctx context.Context, s domain.Scope, personID string, c domain.ContactSet) error

	AddNote(ctx context.Context, s domain.Scope, n domain.PersonNote) error
	ListNotes(ctx context.Context, s domain.Scope, personID string) ([]domain.PersonNote, error)
	DeleteNote(ctx context.Context, s domain.Scope, personID, noteID string) error

	// AddTag is idempotent.
	AddTag(ctx context.Context, s domain.Scope, personID, tagID string, now time.Time) error
	RemoveTag(ctx context.Context, s domain.Scope, personID, tagID string) error
	TagsOf(ctx context.Context, s domain.Scope, personID string) ([]domain.Tag, error)

	SetFieldValue(ctx context.Context, s domain.Scope, v domain.PersonFieldValue) error
	DeleteFieldValue(ctx context.Context, s domain.Scope, personID, fieldID string) error

	// Reassign moves every row that references source over to target,
	// skipping rows the target already has an equivalent of, then deletes
	// source. Run it inside a transaction.
	Reassign(ctx context.Context, s domain.Scope, sourceID, targetID string) (domain.MergeReport, error)
}

type Tags interface {
	Create(ctx context.Context, s domain.Scope, t domain.Tag) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.Tag, error)
	GetByName(ctx context.Context, s domain.Scope, name string) (domain.Tag, error)
	List(ctx context.Context, s domain.Scope) ([]domain.Tag, error)
	Update(ctx context.Context, s domain.Scope, t domain.Tag) error
	Delete(ctx context.Context, s domain.Scope, id string) error
}

type CustomFields interface {
	Create(ctx context.Context, s domain.Scope, f domain.CustomField) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.CustomField, error)
	List(ctx context.Context, s domain.Scope) ([]domain.CustomField, error)
	Delete(ctx context.Context, s domain.Scope, id string) error
}

type Groups interface {
	Create(ctx context.Context, s domain.Scope, g domain.Group) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.Group, error)
	List(ctx context.Context, s domain.Scope, p domain.Page) ([]domain.Group, error)
	Update(ctx context.Context, s domain.Scope, g domain.Group) error
	Delete(ctx context.Context, s domain.Scope, id string) error

	// AddMember inserts or updates the person's role in the group.
	AddMember(ctx context.Context, s domain.Scope, m domain.GroupMembership) error
	RemoveMember(ctx context.Context, s domain.Scope, groupID, personID string) error
	Members(ctx context.Context, s domain.Scope, groupID string) ([]domain.GroupMembership, error)

	// RecordAttendance inserts or updates the person's mark for the meeting.
	RecordAttendance(ctx context.Context, s domain.Scope, a domain.Attendance) error
	Attendance(ctx context.Context, s domain.Scope, groupID, meetingDate string) ([]domain.Attendance, error)
}

type ServicePlans interface {
	Create(ctx context.Context, s domain.Scope, p domain.ServicePlan) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.ServicePlan, error)
	List(ctx context.Context, s domain.Scope, p domain.Page) ([]domain.ServicePlan, error)
	Update(ctx context.Context, s domain.Scope, p domain.ServicePlan) error
	Delete(ctx context.Context, s domain.Scope, id string) error

	// Items returns the running order sorted by position.
	Items(ctx context.Context, s domain.Scope, planID string) ([]domain.ServiceItem, error)
	GetItem(ctx context.Context, s domain.Scope, planID, itemID string) (domain.ServiceItem, error)
	CreateItem(ctx context.Context, s domain.Scope, it domain.ServiceItem) error
	UpdateItem(ctx context.Context, s domain.Scope, it domain.ServiceItem) error
	DeleteItem(ctx context.Context, s domain.Scope, planID, itemID string) error
	// SetPositions writes position i to the item ids[i].
	SetPositions(ctx context.Context, s domain.Scope, planID string, ids []string, now time.Time) error

	Assign(ctx context.Context, s domain.Scope, a domain.ServiceAssignment) error
	Assignments(ctx context.Context, s domain.Scope, planID string) ([]domain.ServiceAssignment, error)
	GetAssignment(ctx context.Context, s domain.Scope, planID, id string) (domain.ServiceAssignment, error)
	UpdateAssignmentStatus(ctx context.Context, s domain.Scope, id string, status domain.AssignmentStatus, now time.Time) error
	DeleteAssignment(ctx context.Context, s domain.Scope, planID, id string) error
}

type Songs interface {
	Create(ctx context.Context, s domain.Scope, song domain.Song) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.Song, error)
	List(ctx context.Context, s domain.Scope, query string, p domain.Page) ([]domain.Song, error)
	Update(ctx context.Context, s domain.Scope, song domain.Song) error
	Delete(ctx context.Context, s domain.Scope, id string) error
}

type Templates interface {
	Create(ctx context.Context, s domain.Scope, t domain.ServiceTemplate) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.ServiceTemplate, error)
	List(ctx context.Context, s domain.Scope) ([]domain.ServiceTemplate, error)
	Update(ctx context.Context, s domain.Scope, t domain.ServiceTemplate) error
	Delete(ctx context.Context, s domain.Scope, id string) error
}

type Forms interface {
	Create(ctx context.Context, s domain.Scope, f domain.Form) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.Form, error)
	List(ctx context.Context, s domain.Scope) ([]domain.Form, error)
	Update(ctx context.Context, s domain.Scope, f domain.Form) error
	Delete(ctx context.Context, s domain.Scope, id string) error

	CreateSubmission(ctx context.Context, s domain.Scope, sub domain.FormSubmission) error
	Submissions(ctx context.Context, s domain.Scope, formID string) ([]domain.FormSubmission, error)
}

type Workflows interface {
	Create(ctx context.Context, s domain.Scope, w domain.Workflow) error
	Get(ctx context.Context, s domain.Scope, id string) (domain.Workflow, error)
	List(ctx context.Context, s domain.Scope) ([]domain.Workflow, error)
	ListActive(ctx context.Context, s domain.Scope, trigger domain.WorkflowTrigger) ([]domain.Workflow, error)
	Update(ctx context.Context, s domain.Scope, w domain.Workflow) error
	Delete(ctx context.Context, s domain.Scope, id string) error
}
