package service

import (
	"testing"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/stretchr/testify/require"
)

func TestGroupAttendance(t *testing.T) {
	h := newHarness(t)
	org := h.org("Grace Chapel", domain.PlanLimits{Groups: 1})
	leader := h.user(org, domain.RoleLeader, "leader@example.org")
	viewer := h.user(org, domain.RoleViewer, "viewer@example.org")
	groups := &GroupService{Deps: h.deps()}

	g, err := groups.Create(as(leader), GroupInput{Name: "Thursday study", MeetingDay: "thursday"})
	require.NoError(t, err)

	_, err = groups.Create(as(leader), GroupInput{Name: "One too many"})
	require.ErrorIs(t, err, ErrPlanLimit)

	_, err = groups.Create(as(leader), GroupInput{Name: "Bad day", MeetingDay: "someday"})
	require.ErrorIs(t, err, ErrValidation)

	ada := h.person(leader, "Ada", "Lovelace")
	grace := h.person(leader, "Grace", "Hopper")
	outsider := h.person(leader, "Alan", "Turing")

	for _, p := range []domain.PersonDetail{ada, grace} {
		m, err := groups.AddMember(as(leader), g.ID, MemberInput{PersonID: p.ID})
		require.NoError(t, err)
		require.Equal(t, domain.GroupMember, m.Role)
	}

	_, err = groups.RecordAttendance(as(leader), g.ID, AttendanceInput{
		MeetingDate: "2026-03-05",
		Records: []AttendanceRecord{
			{PersonID: ada.ID, Present: true},
			{PersonID: outsider.ID, Present: true},
		},
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Fields, "records[1].personId")

	records, err := groups.RecordAttendance(as(leader), g.ID, AttendanceInput{
		MeetingDate: "2026-03-05",
		Records: []AttendanceRecord{
			{PersonID: ada.ID, Present: true},
			{PersonID: grace.ID, Present: false},
		},
	})
	require.NoError(t, err)
	require.Len(t, records, 2)

	// recording again overwrites
	_, err = groups.RecordAttendance(as(leader), g.ID, AttendanceInput{
		MeetingDate: "2026-03-05",
		Records:     []AttendanceRecord{{PersonID: grace.ID, Present: true}},
	})
	require.NoError(t, err)

	records, err = groups.Attendance(as(viewer), g.ID, "2026-03-05")
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		require.True(t, r.Present)
	}

	_, err = groups.RecordAttendance(as(viewer), g.ID, AttendanceInput{
		MeetingDate: "2026-03-12",
		Records:     []AttendanceRecord{{PersonID: ada.ID, Present: true}},
	})
	require.ErrorIs(t, err, ErrPermissionDenied)

	require.NoError(t, groups.RemoveMember(as(leader), g.ID, grace.ID))
	require.ErrorIs(t, groups.RemoveMember(as(leader), g.ID, grace.ID), ErrNotFound)

	detail, err := groups.Get(as(viewer), g.ID)
	require.NoError(t, err)
	require.Len(t, detail.Members, 1)
}
