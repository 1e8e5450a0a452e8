package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/stretchr/testify/require"
)

func TestCreatePersonEnforcesPlanLimit(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{People: 2})
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	people := &PeopleService{Deps: h.deps()}

	h.person(leader, "Ada", "Lovelace")
	h.person(leader, "Grace", "Hopper")

	_, err := people.Create(as(leader), PersonInput{FirstName: "Third", LastName: "Person"})
	require.ErrorIs(t, err, ErrPlanLimit)
	require.Contains(t, err.Error(), "allows 2 people")

	_, total, err := people.List(as(leader), domain.PersonFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, h.auditRows(org), 2, "a refused create leaves no audit row")

	t.Run("zero means unlimited", func(t *testing.T) {
		other := h.org("Open Door", domain.PlanLimits{})
		admin := h.user(other, domain.RoleAdmin, "admin@opendoor.org")
		for range 5 {
			h.person(admin, "Many", "People")
		}
	})
}

func TestPermissionDeniedWritesNothing(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	viewer := h.user(org, domain.RoleViewer, "viewer@example.org")
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	people := &PeopleService{Deps: h.deps()}

	_, err := people.Create(as(viewer), PersonInput{FirstName: "No", LastName: "Access"})
	require.ErrorIs(t, err, ErrPermissionDenied)

	p := h.person(leader, "Ada", "Lovelace")
	require.ErrorIs(t, people.Delete(as(leader), p.ID), ErrPermissionDenied, "leaders cannot delete people")

	rows := h.auditRows(org)
	require.Len(t, rows, 1)
	require.Equal(t, domain.AuditCreated, rows[0].Action)

	_, err = people.Create(context.Background(), PersonInput{FirstName: "Anon", LastName: "User"})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestPeopleTenantIsolation(t *testing.T) {
	h := newHarness(t)
	orgA := h.org("Grace Chapel", domain.PlanLimits{})
	orgB := h.org("Open Door", domain.PlanLimits{})
	adminA := h.user(orgA, domain.RoleAdmin, "admin@grace.org")
	adminB := h.user(orgB, domain.RoleAdmin, "admin@opendoor.org")
	people := &PeopleService{Deps: h.deps()}

	p := h.person(adminA, "Ada", "Lovelace")

	_, err := people.Get(as(adminB), p.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = people.Update(as(adminB), p.ID, PersonInput{FirstName: "Stolen", LastName: "Record"})
	require.ErrorIs(t, err, ErrNotFound)

	require.ErrorIs(t, people.Delete(as(adminB), p.ID), ErrNotFound)

	_, total, err := people.List(as(adminB), domain.PersonFilter{})
	require.NoError(t, err)
	require.Zero(t, total)

	_, err = people.Get(as(adminA), "not-an-id")
	require.ErrorIs(t, err, ErrNotFound)

	got, err := people.Get(as(adminA), p.ID)
	require.NoError(t, err)
	require.Equal(t, "Ada", got.FirstName)
}

func TestUpdatePersonAuditsDiff(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	people := &PeopleService{Deps: h.deps()}

	p := h.person(admin, "Ada", "Lovelace")
	updated, err := people.Update(as(admin), p.ID, PersonInput{
		FirstName: "Ada",
		LastName:  "King",
		Email:     "ADA@example.org",
		Contacts: &domain.ContactSet{
			Phones: []domain.PersonPhone{{Label: "mobile", Number: "0400 000 000"}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "King", updated.LastName)
	require.Equal(t, "ada@example.org", updated.Email)
	require.Len(t, updated.Phones, 1)

	rows := h.auditRows(org)
	require.Len(t, rows, 2)

	var update domain.AuditLog
	for _, r := range rows {
		if r.Action == domain.AuditUpdated {
			update = r
		}
	}
	require.Equal(t, p.ID, update.EntityID)
	require.Equal(t, admin.ID, update.ActorID)
	require.Contains(t, string(update.Changes), `"lastName":"Lovelace"`)
	require.Contains(t, string(update.Changes), `"lastName":"King"`)

	t.Run("invalid input", func(t *testing.T) {
		_, err := people.Update(as(admin), p.ID, PersonInput{FirstName: "Ada", LastName: "King", BirthDate: "31/12/1990"})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Contains(t, ve.Fields, "birthDate")
	})
}

func TestPersonTagsNotesAndFields(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	deps := h.deps()
	people := &PeopleService{Deps: deps}
	tags := &TagService{Deps: deps}
	fields := &FieldService{Deps: deps}

	p := h.person(admin, "Ada", "Lovelace")

	tag, err := tags.Create(as(admin), TagInput{Name: "Volunteer", Color: "#33aa55"})
	require.NoError(t, err)
	_, err = tags.Create(as(admin), TagInput{Name: "volunteer"})
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, people.AddTag(as(admin), p.ID, tag.ID))
	require.NoError(t, people.AddTag(as(admin), p.ID, tag.ID), "tagging twice is fine")

	tagged, total, err := people.List(as(admin), domain.PersonFilter{TagID: tag.ID})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, p.ID, tagged[0].ID)

	_, err = people.AddNote(as(admin), p.ID, NoteInput{Body: "First visit"})
	require.NoError(t, err)
	notes, err := people.Notes(as(admin), p.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, admin.ID, notes[0].AuthorID)

	size, err := fields.Create(as(admin), FieldInput{Name: "Shirt size", Type: domain.FieldSelect, Options: []string{"S", "M", "L"}})
	require.NoError(t, err)

	_, err = fields.Create(as(admin), FieldInput{Name: "shirt SIZE", Type: domain.FieldText})
	require.ErrorIs(t, err, ErrConflict)
	var cerr *ConflictError
	require.ErrorAs(t, err, &cerr)
	require.Contains(t, cerr.Message, "shirt SIZE")
	defs, err := fields.List(as(admin))
	require.NoError(t, err)
	require.Len(t, defs, 1)

	err = people.SetFieldValue(as(admin), p.ID, size.ID, FieldValueInput{Value: "XXL"})
	require.ErrorIs(t, err, ErrValidation)

	require.NoError(t, people.SetFieldValue(as(admin), p.ID, size.ID, FieldValueInput{Value: "M"}))
	detail, err := people.Get(as(admin), p.ID)
	require.NoError(t, err)
	require.Len(t, detail.Tags, 1)
	require.Len(t, detail.Fields, 1)
	require.Equal(t, "M", detail.Fields[0].Value)

	require.NoError(t, people.SetFieldValue(as(admin), p.ID, size.ID, FieldValueInput{Value: ""}))
	require.NoError(t, people.SetFieldValue(as(admin), p.ID, size.ID, FieldValueInput{Value: ""}), "clearing twice is fine")

	require.NoError(t, people.RemoveTag(as(admin), p.ID, tag.ID))
	detail, err = people.Get(as(admin), p.ID)
	require.NoError(t, err)
	require.Empty(t, detail.Tags)
	require.Empty(t, detail.Fields)
}

func TestMergePeople(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	deps := h.deps()
	people := &PeopleService{Deps: deps}
	tags := &TagService{Deps: deps}
	groups := &GroupService{Deps: deps}

	source, err := people.Create(as(admin), PersonInput{
		FirstName: "Bob", LastName: "Smith", Email: "bob@example.org", Phone: "0400 111 222",
	})
	require.NoError(t, err)
	target, err := people.Create(as(admin), PersonInput{FirstName: "Robert", LastName: "Smith"})
	require.NoError(t, err)

	tag, err := tags.Create(as(admin), TagInput{Name: "Choir"})
	require.NoError(t, err)
	require.NoError(t, people.AddTag(as(admin), source.ID, tag.ID))
	require.NoError(t, people.AddTag(as(admin), target.ID, tag.ID))

	_, err = people.AddNote(as(admin), source.ID, NoteInput{Body: "Prefers Bob"})
	require.NoError(t, err)

	g, err := groups.Create(as(admin), GroupInput{Name: "Men's breakfast"})
	require.NoError(t, err)
	_, err = groups.AddMember(as(admin), g.ID, MemberInput{PersonID: source.ID})
	require.NoError(t, err)

	_, err = people.Merge(as(leader), MergeRequest{SourceID: source.ID, TargetID: target.ID})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = people.Merge(as(admin), MergeRequest{SourceID: source.ID, TargetID: source.ID})
	require.ErrorIs(t, err, ErrValidation)

	res, err := people.Merge(as(admin), MergeRequest{SourceID: source.ID, TargetID: target.ID})
	require.NoError(t, err)

	require.Equal(t, "Robert", res.Person.FirstName, "target keeps its own values")
	require.Equal(t, "bob@example.org", res.Person.Email, "and takes what it lacked")
	require.Equal(t, "0400 111 222", res.Person.Phone)
	require.Len(t, res.Person.Tags, 1)
	require.EqualValues(t, 1, res.Report.Skipped["person_tags"])
	require.EqualValues(t, 1, res.Report.Moved["person_notes"])
	require.EqualValues(t, 1, res.Report.Moved["group_members"])

	_, err = people.Get(as(admin), source.ID)
	require.ErrorIs(t, err, ErrNotFound)

	notes, err := people.Notes(as(admin), target.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	detail, err := groups.Get(as(admin), g.ID)
	require.NoError(t, err)
	require.Len(t, detail.Members, 1)
	require.Equal(t, target.ID, detail.Members[0].PersonID)

	var merged int
	for _, r := range h.auditRows(org) {
		if r.Action == domain.AuditMerged {
			merged++
			require.Equal(t, target.ID, r.EntityID)
		}
	}
	require.Equal(t, 1, merged)
}
