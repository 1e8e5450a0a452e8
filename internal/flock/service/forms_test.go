package service

import (
	"testing"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/pkg/idx"
	"github.com/stretchr/testify/require"
)

func signupForm() FormInput {
	return FormInput{
		Name:      "Camp signup",
		Published: true,
		Fields: []domain.FormField{
			{Key: "name", Label: "Name", Type: domain.FieldText, Required: true},
			{Key: "age", Label: "Age", Type: domain.FieldNumber},
			{Key: "arrival", Label: "Arrival", Type: domain.FieldDate},
			{Key: "shirt", Label: "Shirt", Type: domain.FieldSelect, Options: []string{"S", "M", "L"}},
		},
	}
}

func TestFormDefinitionChecks(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	member := h.user(org, domain.RoleMember, "member@example.org")
	forms := &FormService{Deps: h.deps()}

	in := signupForm()
	in.Fields = append(in.Fields, domain.FormField{Key: "name", Label: "Again", Type: domain.FieldText})
	in.Fields = append(in.Fields, domain.FormField{Key: "size", Label: "Size", Type: domain.FieldSelect})

	_, err := forms.Create(as(leader), in)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "fields[4].key")
	require.Contains(t, ve.Fields, "fields[5].options")

	_, err = forms.Create(as(member), signupForm())
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestFormSubmit(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	member := h.user(org, domain.RoleMember, "member@example.org")
	viewer := h.user(org, domain.RoleViewer, "viewer@example.org")
	forms := &FormService{Deps: h.deps()}

	form, err := forms.Create(as(leader), signupForm())
	require.NoError(t, err)

	t.Run("values are checked against their fields", func(t *testing.T) {
		_, err := forms.Submit(as(member), form.ID, SubmitRequest{Data: map[string]string{
			"age":     "twelve",
			"arrival": "next friday",
			"shirt":   "XXL",
			"extra":   "nope",
		}})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		require.Equal(t, "is required", ve.Fields["data.name"])
		require.Contains(t, ve.Fields, "data.age")
		require.Contains(t, ve.Fields, "data.arrival")
		require.Contains(t, ve.Fields, "data.shirt")
		require.Equal(t, "is not a field of this form", ve.Fields["data.extra"])
	})

	t.Run("unknown person", func(t *testing.T) {
		_, err := forms.Submit(as(member), form.ID, SubmitRequest{
			PersonID: idx.New().String(),
			Data:     map[string]string{"name": "Kid"},
		})
		require.ErrorIs(t, err, ErrValidation)
	})

	p := h.person(leader, "Kid", "Smith")
	_, err = forms.Submit(as(member), form.ID, SubmitRequest{
		PersonID: p.ID,
		Data:     map[string]string{"name": "Kid Smith", "age": "12", "arrival": "2026-07-01", "shirt": "M", "age2": ""},
	})
	require.ErrorIs(t, err, ErrValidation, "unknown keys fail even when empty")

	sub, err := forms.Submit(as(member), form.ID, SubmitRequest{
		PersonID: p.ID,
		Data:     map[string]string{"name": "Kid Smith", "age": "12", "arrival": "2026-07-01", "shirt": "M"},
	})
	require.NoError(t, err)
	require.Equal(t, member.ID, sub.SubmittedBy)
	require.NotNil(t, sub.PersonID)

	_, err = forms.Submit(as(viewer), form.ID, SubmitRequest{Data: map[string]string{"name": "x"}})
	require.ErrorIs(t, err, ErrPermissionDenied)

	_, err = forms.Submissions(as(member), form.ID)
	require.ErrorIs(t, err, ErrPermissionDenied)

	subs, err := forms.Submissions(as(leader), form.ID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, "12", subs[0].Data["age"])

	t.Run("unpublished forms are hidden from submitters", func(t *testing.T) {
		draft := signupForm()
		draft.Published = false
		f, err := forms.Create(as(leader), draft)
		require.NoError(t, err)

		_, err = forms.Submit(as(member), f.ID, SubmitRequest{Data: map[string]string{"name": "x"}})
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestWorkflowTriggersOnPersonCreate(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	deps := h.deps()
	workflows := &WorkflowService{Deps: deps}
	people := &PeopleService{Deps: deps}
	tags := &TagService{Deps: deps}
	groups := &GroupService{Deps: deps}

	newcomer, err := tags.Create(as(leader), TagInput{Name: "Newcomer"})
	require.NoError(t, err)
	welcome, err := groups.Create(as(leader), GroupInput{Name: "Welcome team"})
	require.NoError(t, err)
	unused, err := tags.Create(as(leader), TagInput{Name: "Unused"})
	require.NoError(t, err)

	_, err = workflows.Create(as(leader), WorkflowInput{
		Name:    "Welcome",
		Trigger: domain.TriggerPersonCreated,
		Active:  true,
		Steps: []domain.WorkflowStep{
			{Action: domain.StepAddTag, TagID: newcomer.ID},
			{Action: domain.StepAddNote, Note: "Send a welcome pack"},
			{Action: domain.StepAddToGroup, GroupID: welcome.ID},
		},
	})
	require.NoError(t, err)

	_, err = workflows.Create(as(leader), WorkflowInput{
		Name:    "Paused",
		Trigger: domain.TriggerPersonCreated,
		Active:  false,
		Steps:   []domain.WorkflowStep{{Action: domain.StepAddTag, TagID: unused.ID}},
	})
	require.NoError(t, err)

	_, err = workflows.Create(as(leader), WorkflowInput{
		Name:    "Broken",
		Trigger: domain.TriggerManual,
		Steps:   []domain.WorkflowStep{{Action: domain.StepAddTag, TagID: idx.New().String()}},
	})
	require.ErrorIs(t, err, ErrValidation)

	p, err := people.Create(as(leader), PersonInput{FirstName: "New", LastName: "Face"})
	require.NoError(t, err)
	require.Len(t, p.Tags, 1)
	require.Equal(t, "Newcomer", p.Tags[0].Name)

	notes, err := people.Notes(as(leader), p.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "Send a welcome pack", notes[0].Body)

	g, err := groups.Get(as(leader), welcome.ID)
	require.NoError(t, err)
	require.Len(t, g.Members, 1)
	require.Equal(t, p.ID, g.Members[0].PersonID)
}

func TestWorkflowRun(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	member := h.user(org, domain.RoleMember, "member@example.org")
	deps := h.deps()
	workflows := &WorkflowService{Deps: deps}
	groups := &GroupService{Deps: deps}
	tags := &TagService{Deps: deps}

	g, err := groups.Create(as(admin), GroupInput{Name: "Youth"})
	require.NoError(t, err)
	tag, err := tags.Create(as(admin), TagInput{Name: "Youth"})
	require.NoError(t, err)
	p := h.person(admin, "Teen", "Ager")

	_, err = groups.AddMember(as(admin), g.ID, MemberInput{PersonID: p.ID, Role: domain.GroupLeader})
	require.NoError(t, err)

	w, err := workflows.Create(as(admin), WorkflowInput{
		Name:    "Youth intake",
		Trigger: domain.TriggerManual,
		Steps: []domain.WorkflowStep{
			{Action: domain.StepAddToGroup, GroupID: g.ID},
			{Action: domain.StepAddTag, TagID: tag.ID},
		},
	})
	require.NoError(t, err)

	require.ErrorIs(t, workflows.Run(as(member), w.ID, RunWorkflowRequest{PersonID: p.ID}), ErrPermissionDenied)

	// the tag disappears after the workflow was saved
	require.NoError(t, tags.Delete(as(admin), tag.ID))
	require.NoError(t, workflows.Run(as(admin), w.ID, RunWorkflowRequest{PersonID: p.ID}))

	detail, err := groups.Get(as(admin), g.ID)
	require.NoError(t, err)
	require.Len(t, detail.Members, 1)
	require.Equal(t, domain.GroupLeader, detail.Members[0].Role, "existing members keep their role")
}
