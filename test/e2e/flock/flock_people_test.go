package flock_test

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/flock/pkg/flocksdk"
)

// TestPlanLimitsFromEnvironment checks that the limit flags reach a newly
// registered organization when set through the container environment.
func TestPlanLimitsFromEnvironment(t *testing.T) {
	baseURL := setupFlockContainer(t, map[string]string{
		"FLOCK_LIMIT_PEOPLE":        "2",
		"FLOCK_LIMIT_GROUPS":        "1",
		"FLOCK_LIMIT_SERVICE_PLANS": "1",
	})
	client := flocksdk.NewSDKClient(baseURL)
	ctx := t.Context()

	admin := bootstrapAdmin(t, client)

	org, err := admin.Organization(ctx)
	require.NoError(t, err)
	require.Equal(t, orgName, org.Name)
	require.Equal(t, flocksdk.PlanLimits{People: 2, Groups: 1, ServicePlans: 1}, org.Limits)
	require.NotNil(t, org.TrialEndsAt, "new organizations start on a trial")

	_, err = admin.CreatePerson(ctx, flocksdk.PersonInput{FirstName: "Anna", LastName: "Smith"})
	require.NoError(t, err)
	_, err = admin.CreatePerson(ctx, flocksdk.PersonInput{FirstName: "Ben", LastName: "Jones"})
	require.NoError(t, err)

	_, err = admin.CreatePerson(ctx, flocksdk.PersonInput{FirstName: "Cara", LastName: "Lee"})
	requireStatus(t, err, http.StatusForbidden)
	require.True(t, flocksdk.IsPlanLimit(err))

	_, err = admin.CreateGroup(ctx, flocksdk.GroupInput{Name: "Choir"})
	require.NoError(t, err)
	_, err = admin.CreateGroup(ctx, flocksdk.GroupInput{Name: "Youth"})
	require.True(t, flocksdk.IsPlanLimit(err), "second group should hit the plan limit")
}

func TestPeopleRoundTrip(t *testing.T) {
	client := flocksdk.NewSDKClient(setupFlockContainer(t, nil))
	ctx := t.Context()
	admin := bootstrapAdmin(t, client)

	rep, err := admin.ImportPeople(ctx, strings.NewReader(
		"firstName,lastName,email\n"+
			"Anna,Smith,anna@grace.test\n"+
			"Anne,Smith,anna@grace.test\n"+
			",Nobody,\n"))
	require.NoError(t, err)
	require.Equal(t, 2, rep.Imported)
	require.Len(t, rep.Errors, 1)
	require.Equal(t, 4, rep.Errors[0].Row)

	list, err := admin.ListPeople(ctx, flocksdk.PeopleQuery{Query: "smith"})
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)

	source, target := list.People[0], list.People[1]
	merged, err := admin.MergePeople(ctx, source.ID, target.ID)
	require.NoError(t, err)
	require.Equal(t, target.ID, merged.Person.ID)

	_, err = admin.GetPerson(ctx, source.ID)
	require.True(t, flocksdk.IsNotFound(err), "merged source should be gone")

	var out bytes.Buffer
	require.NoError(t, admin.ExportPeople(ctx, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2, "header plus the surviving person")
}
