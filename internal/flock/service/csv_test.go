package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/stretchr/testify/require"
)

func TestImportPeople(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{People: 4})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	people := &PeopleService{Deps: h.deps()}

	h.person(admin, "Already", "Here")

	file := "\ufefffirstName,lastName,email,tags,notes,status\n" +
		`Ada,Lovelace,ada@example.org,"[""Choir"",""Volunteer""]",Met at the welcome desk,member` + "\n" +
		`,Nameless,,,,` + "\n" +
		`Grace,Hopper,not-an-email,,,` + "\n" +
		`Alan,Turing,,"[""choir""]",,visitor` + "\n" +
		`Bad,Tags,,not json,,` + "\n" +
		`Over,Limit,,,,` + "\n"

	rep, err := people.Import(as(admin), strings.NewReader(file))
	require.NoError(t, err)
	require.Equal(t, 3, rep.Imported)

	rows := make([]int, len(rep.Errors))
	for i, e := range rep.Errors {
		rows[i] = e.Row
	}
	require.Equal(t, []int{3, 4, 6}, rows)

	_, total, err := people.List(as(admin), domain.PersonFilter{})
	require.NoError(t, err)
	require.Equal(t, 4, total)

	found, _, err := people.List(as(admin), domain.PersonFilter{Query: "lovelace"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	ada, err := people.Get(as(admin), found[0].ID)
	require.NoError(t, err)
	require.Equal(t, domain.PersonMember, ada.Status)
	require.Len(t, ada.Tags, 2)

	notes, err := people.Notes(as(admin), ada.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)

	tags, err := (&TagService{Deps: h.deps()}).List(as(admin))
	require.NoError(t, err)
	require.Len(t, tags, 2, "Choir is matched without regard to case")

	imports := 0
	for _, r := range h.auditRows(org) {
		if r.Action == domain.AuditImported {
			imports++
		}
	}
	require.Equal(t, 1, imports)
}

func TestImportPlanLimitIsReportedPerRow(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{People: 1})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	people := &PeopleService{Deps: h.deps()}

	rep, err := people.Import(as(admin), strings.NewReader("firstName,lastName\nA,One\nB,Two\n"))
	require.NoError(t, err)
	require.Equal(t, 1, rep.Imported)
	require.Len(t, rep.Errors, 1)
	require.Equal(t, 3, rep.Errors[0].Row)
	require.Contains(t, rep.Errors[0].Message, "Plan limit reached")
}

func TestImportRejectsBadFiles(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	people := &PeopleService{Deps: h.deps()}

	_, err := people.Import(as(admin), strings.NewReader(""))
	require.ErrorIs(t, err, ErrValidation)

	_, err = people.Import(as(admin), strings.NewReader("first,last\nA,B\n"))
	require.ErrorIs(t, err, ErrValidation)

	_, err = people.Import(as(leader), strings.NewReader("firstName,lastName\nA,B\n"))
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestExportPeople(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{})
	admin := h.user(org, domain.RoleAdmin, "admin@example.org")
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	people := &PeopleService{Deps: h.deps()}

	p := h.person(admin, "Ada", "Lovelace")
	_, err := people.AddNote(as(admin), p.ID, NoteInput{Body: "first, with a comma"})
	require.NoError(t, err)
	_, err = people.AddNote(as(admin), p.ID, NoteInput{Body: "second"})
	require.NoError(t, err)
	h.person(admin, "Grace", "Hopper")

	require.ErrorIs(t, people.Export(as(leader), &bytes.Buffer{}), ErrPermissionDenied)

	var buf bytes.Buffer
	require.NoError(t, people.Export(as(admin), &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, CSVHeader, records[0])

	byName := map[string][]string{}
	for _, rec := range records[1:] {
		byName[rec[0]] = rec
	}
	require.Equal(t, "[]", byName["Ada"][4])
	require.Contains(t, byName["Ada"][5], "first, with a comma")
	require.Contains(t, byName["Ada"][5], "second")
	require.Equal(t, "active", byName["Grace"][6])

	t.Run("export feeds import", func(t *testing.T) {
		h2 := newHarness(t)
		org2 := h2.org("Copy", domain.PlanLimits{})
		admin2 := h2.user(org2, domain.RoleAdmin, "admin@copy.org")

		rep, err := (&PeopleService{Deps: h2.deps()}).Import(as(admin2), bytes.NewReader(exportBytes(t, people, admin)))
		require.NoError(t, err)
		require.Equal(t, 2, rep.Imported)
		require.Empty(t, rep.Errors)
	})
}

func exportBytes(t *testing.T, people *PeopleService, u domain.User) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, people.Export(as(u), &buf))
	return buf.Bytes()
}
